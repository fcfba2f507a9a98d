package riot

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

type Option func(*Client)

// WithHTTPClient reemplaza el cliente de la API local (TLS autofirmado).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.local = h }
}
func WithRemoteHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.remote = h }
}
func WithLocalURL(u string) Option {
	return func(c *Client) { c.baseURL[Local] = u }
}
func WithPDURL(u string) Option {
	return func(c *Client) { c.baseURL[PD] = u }
}
func WithGLZURL(u string) Option {
	return func(c *Client) { c.baseURL[GLZ] = u }
}
func WithSharedURL(u string) Option {
	return func(c *Client) { c.baseURL[Shared] = u }
}
func WithClientVersion(v string) Option {
	return func(c *Client) { c.clientVersion = v }
}
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}
