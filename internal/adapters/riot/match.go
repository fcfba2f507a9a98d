package riot

import (
	"context"
	"net/http"
)

func (c *Client) PregameMatchID(ctx context.Context, puuid string) (string, error) {
	var out struct {
		MatchID string `json:"MatchID"`
	}
	err := c.doJSON(ctx, call{op: "riot.PregameMatchID", svc: GLZ, method: http.MethodGet, path: "/pregame/v1/players/" + puuid}, &out)
	return out.MatchID, err
}

func (c *Client) PregameMatch(ctx context.Context, matchID string) (PregameMatch, error) {
	var out PregameMatch
	err := c.doJSON(ctx, call{op: "riot.PregameMatch", svc: GLZ, method: http.MethodGet, path: "/pregame/v1/matches/" + matchID}, &out)
	return out, err
}

func (c *Client) PregameLoadouts(ctx context.Context, matchID string) (PregameLoadouts, error) {
	var out PregameLoadouts
	err := c.doJSON(ctx, call{op: "riot.PregameLoadouts", svc: GLZ, method: http.MethodGet, path: "/pregame/v1/matches/" + matchID + "/loadouts"}, &out)
	return out, err
}

func (c *Client) CoregameMatchID(ctx context.Context, puuid string) (string, error) {
	var out struct {
		MatchID string `json:"MatchID"`
	}
	err := c.doJSON(ctx, call{op: "riot.CoregameMatchID", svc: GLZ, method: http.MethodGet, path: "/core-game/v1/players/" + puuid}, &out)
	return out.MatchID, err
}

func (c *Client) CoregameMatch(ctx context.Context, matchID string) (CoregameMatch, error) {
	var out CoregameMatch
	err := c.doJSON(ctx, call{op: "riot.CoregameMatch", svc: GLZ, method: http.MethodGet, path: "/core-game/v1/matches/" + matchID}, &out)
	return out, err
}

func (c *Client) CoregameLoadouts(ctx context.Context, matchID string) (CoregameLoadouts, error) {
	var out CoregameLoadouts
	err := c.doJSON(ctx, call{op: "riot.CoregameLoadouts", svc: GLZ, method: http.MethodGet, path: "/core-game/v1/matches/" + matchID + "/loadouts"}, &out)
	return out, err
}

func (c *Client) MatchDetails(ctx context.Context, matchID string) (MatchDetails, error) {
	var out MatchDetails
	err := c.doJSON(ctx, call{op: "riot.MatchDetails", svc: PD, method: http.MethodGet, path: "/match-details/v1/matches/" + matchID}, &out)
	return out, err
}
