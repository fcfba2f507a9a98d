package riot

import (
	"context"
	"net/http"
)

// Entitlements de /entitlements/v1/token.
type Entitlements struct {
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
	Subject     string `json:"subject"`
}

// Authenticate pide tokens nuevos a la API local.
func (c *Client) Authenticate(ctx context.Context) error {
	var e Entitlements
	if err := c.doJSON(ctx, call{op: "riot.Entitlements", svc: Local, method: http.MethodGet, path: "/entitlements/v1/token"}, &e); err != nil {
		return err
	}
	c.mu.Lock()
	c.auth = e
	c.mu.Unlock()
	return nil
}

// PUUID del usuario logueado.
func (c *Client) PUUID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth.Subject
}
