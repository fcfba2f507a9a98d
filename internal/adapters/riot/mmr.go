package riot

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) MMR(ctx context.Context, puuid string) (MMR, error) {
	var out MMR
	err := c.doJSON(ctx, call{op: "riot.MMR", svc: PD, method: http.MethodGet, path: "/mmr/v1/players/" + puuid}, &out)
	return out, err
}

// CompetitiveUpdates pide [start, end) de la cola dada.
func (c *Client) CompetitiveUpdates(ctx context.Context, puuid string, start, end int, queue string) (CompetitiveUpdates, error) {
	q := url.Values{}
	q.Set("startIndex", strconv.Itoa(start))
	q.Set("endIndex", strconv.Itoa(end))
	if queue != "" {
		q.Set("queue", queue)
	}
	var out CompetitiveUpdates
	err := c.doJSON(ctx, call{op: "riot.CompetitiveUpdates", svc: PD, method: http.MethodGet, path: "/mmr/v1/players/" + puuid + "/competitiveupdates", query: q}, &out)
	return out, err
}
