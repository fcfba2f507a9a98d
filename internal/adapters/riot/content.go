package riot

import (
	"context"
	"net/http"
)

func (c *Client) Seasons(ctx context.Context) ([]Season, error) {
	var out Content
	if err := c.doJSON(ctx, call{op: "riot.Content", svc: Shared, method: http.MethodGet, path: "/content-service/v3/content"}, &out); err != nil {
		return nil, err
	}
	return out.Seasons, nil
}
