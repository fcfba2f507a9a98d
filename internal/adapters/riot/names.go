package riot

import (
	"context"
	"net/http"
)

type nameDTO struct {
	Subject  string `json:"Subject"`
	GameName string `json:"GameName"`
	TagLine  string `json:"TagLine"`
}

// Names: puuid -> "GameName#TagLine".
func (c *Client) Names(ctx context.Context, puuids []string) (map[string]string, error) {
	out := map[string]string{}
	if len(puuids) == 0 {
		return out, nil
	}
	var res []nameDTO
	if err := c.doJSON(ctx, call{op: "riot.Names", svc: PD, method: http.MethodPut, path: "/name-service/v2/players", body: puuids}, &res); err != nil {
		return nil, err
	}
	for _, n := range res {
		out[n.Subject] = n.GameName + "#" + n.TagLine
	}
	return out, nil
}
