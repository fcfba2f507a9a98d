package riot

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jose-valero/vry/internal/infra/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ClientPlatform es fijo: PC / Windows 10.
const ClientPlatform = "ew0KCSJwbGF0Zm9ybVR5cGUiOiAiUEMiLA0KCSJwbGF0Zm9ybU9TIjogIldpbmRvd3MiLA0KCSJwbGF0Zm9ybU9TVmVyc2lvbiI6ICIxMC4wLjE5MDQyLjEuMjU2LjY0Yml0IiwNCgkicGxhdGZvcm1DaGlwc2V0IjogIlVua25vd24iDQp9"

type Service string

const (
	Local  Service = "local"
	PD     Service = "pd"
	GLZ    Service = "glz"
	Shared Service = "shared"
)

type Client struct {
	lock    Lockfile
	region  string
	shard   string
	local   *http.Client
	remote  *http.Client
	baseURL map[Service]string
	tracer  trace.Tracer

	mu            sync.RWMutex
	auth          Entitlements
	clientVersion string
}

func New(lock Lockfile, region, shard string, opts ...Option) *Client {
	c := &Client{
		lock:   lock,
		region: region,
		shard:  shard,
		local: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // cert autofirmado de Riot
			},
		},
		remote: &http.Client{Timeout: 10 * time.Second},
		baseURL: map[Service]string{
			Local:  fmt.Sprintf("https://127.0.0.1:%d", lock.Port),
			PD:     fmt.Sprintf("https://pd.%s.a.pvp.net", shard),
			GLZ:    fmt.Sprintf("https://glz-%s-1.%s.a.pvp.net", region, shard),
			Shared: fmt.Sprintf("https://shared.%s.a.pvp.net", shard),
		},
		tracer: telemetry.Tracer("riot"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Region() string { return c.region }
func (c *Client) Shard() string  { return c.shard }
func (c *Client) Port() int      { return c.lock.Port }

func (c *Client) SetClientVersion(v string) {
	c.mu.Lock()
	c.clientVersion = v
	c.mu.Unlock()
}

type call struct {
	op     string
	svc    Service
	method string
	path   string
	query  url.Values
	body   any
}

// doJSON: arma la request según el servicio, maneja 404, 429 con Retry-After
// y un refresh de entitlements si el token venció.
func (c *Client) doJSON(ctx context.Context, cl call, out any) error {
	ctx, span := c.tracer.Start(ctx, cl.op, trace.WithAttributes(
		attribute.String("riot.service", string(cl.svc)),
		attribute.String("http.method", cl.method),
	))
	defer span.End()

	err := c.do(ctx, cl, out, false, false)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, cl call, out any, retried429, refreshed bool) error {
	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return err
	}
	h := c.remote
	if cl.svc == Local {
		h = c.local
	}
	res, err := h.Do(req)
	if err != nil {
		return fmt.Errorf("riot http %s: %w", cl.svc, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests && !retried429 {
		// backoff básico leyendo Retry-After (segundos)
		if ra := res.Header.Get("Retry-After"); ra != "" {
			if sec, _ := strconv.Atoi(ra); sec > 0 {
				select {
				case <-time.After(time.Duration(sec) * time.Second):
				case <-ctx.Done():
					return ctx.Err()
				}
				return c.do(ctx, cl, out, true, refreshed)
			}
		}
	}

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		apiErr := &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
		if cl.svc != Local && !refreshed && apiErr.tokenExpired() {
			if err := c.Authenticate(ctx); err != nil {
				return fmt.Errorf("refresh entitlements: %w", err)
			}
			return c.do(ctx, cl, out, retried429, true)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	u := c.baseURL[cl.svc] + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}
	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if cl.svc == Local {
		req.SetBasicAuth("riot", c.lock.Password)
		return req, nil
	}

	c.mu.RLock()
	auth, version := c.auth, c.clientVersion
	c.mu.RUnlock()
	if auth.AccessToken == "" {
		return nil, ErrNoAuth
	}
	req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
	req.Header.Set("X-Riot-Entitlements-JWT", auth.Token)
	req.Header.Set("X-Riot-ClientPlatform", ClientPlatform)
	req.Header.Set("X-Riot-ClientVersion", version)
	return req, nil
}

// IsNotFound es un atajo para los llamadores.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
