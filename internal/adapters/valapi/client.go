package valapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBase = "https://valorant-api.com/v1"

var ErrNotFound = errors.New("not found")

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("valorant-api status %d: %s", e.Status, e.Body)
}

type Client struct {
	http    *http.Client
	baseURL string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBase,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// getData baja {"status":200,"data":...} y decodifica data en out.
func (c *Client) getData(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("valorant-api http: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	var env struct {
		Status int             `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("valorant-api %s: %w", path, err)
	}
	return json.Unmarshal(env.Data, out)
}

func (c *Client) Version(ctx context.Context) (Version, error) {
	var v Version
	err := c.getData(ctx, "/version", &v)
	return v, err
}

func (c *Client) Agents(ctx context.Context) ([]Agent, error) {
	var out []Agent
	err := c.getData(ctx, "/agents?isPlayableCharacter=true", &out)
	return out, err
}

func (c *Client) Maps(ctx context.Context) ([]Map, error) {
	var out []Map
	err := c.getData(ctx, "/maps", &out)
	return out, err
}

func (c *Client) Weapons(ctx context.Context) ([]Weapon, error) {
	var out []Weapon
	err := c.getData(ctx, "/weapons", &out)
	return out, err
}

func (c *Client) Buddies(ctx context.Context) ([]Buddy, error) {
	var out []Buddy
	err := c.getData(ctx, "/buddies", &out)
	return out, err
}

func (c *Client) Sprays(ctx context.Context) ([]Spray, error) {
	var out []Spray
	err := c.getData(ctx, "/sprays", &out)
	return out, err
}

func (c *Client) PlayerTitles(ctx context.Context) ([]PlayerTitle, error) {
	var out []PlayerTitle
	err := c.getData(ctx, "/playertitles", &out)
	return out, err
}

func (c *Client) PlayerCards(ctx context.Context) ([]PlayerCard, error) {
	var out []PlayerCard
	err := c.getData(ctx, "/playercards", &out)
	return out, err
}

func (c *Client) ContentTiers(ctx context.Context) ([]ContentTier, error) {
	var out []ContentTier
	err := c.getData(ctx, "/contenttiers", &out)
	return out, err
}
