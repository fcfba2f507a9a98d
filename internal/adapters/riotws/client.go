package riotws

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jose-valero/vry/internal/domain"
	"github.com/rs/zerolog/log"
)

// Client escucha el websocket local del Riot Client.
type Client struct {
	url      string
	password string
	dialer   *websocket.Dialer
	onChat   func(domain.ChatMessage)
	onOwn    func(domain.PrivatePresence)

	mu   sync.Mutex
	seen map[string]struct{}
	ring []string
}

type Option func(*Client)

func WithURL(u string) Option {
	return func(c *Client) { c.url = u }
}
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}
func WithChatHandler(fn func(domain.ChatMessage)) Option {
	return func(c *Client) { c.onChat = fn }
}

// WithPresenceHandler recibe cada actualización de la presencia propia (marcador incluido).
func WithPresenceHandler(fn func(domain.PrivatePresence)) Option {
	return func(c *Client) { c.onOwn = fn }
}

func New(port int, password string, opts ...Option) *Client {
	c := &Client{
		url:      fmt.Sprintf("wss://127.0.0.1:%d", port),
		password: password,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
			TLSClientConfig:  &tls.Config{InsecureSkipVerify: true},
		},
		seen: map[string]struct{}{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	h := http.Header{}
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("riot:"+c.password)))
	conn, _, err := c.dialer.DialContext(ctx, c.url, h)
	if err != nil {
		return nil, fmt.Errorf("riotws dial: %w", err)
	}
	for _, ev := range []string{EventPresences, EventMessages} {
		if err := conn.WriteJSON([]any{opSubscribe, ev}); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("riotws subscribe: %w", err)
		}
	}
	return conn, nil
}

// WaitForStateChange bloquea hasta que el estado propio deje de ser current.
func (c *Client) WaitForStateChange(ctx context.Context, puuid string, current domain.GameState) (domain.GameState, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return current, err
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return current, ctx.Err()
			}
			return current, fmt.Errorf("riotws read: %w", err)
		}
		ev, ok, err := parseEvent(msg)
		if err != nil {
			log.Debug().Err(err).Msg("riotws: bad frame")
			continue
		}
		if !ok {
			continue
		}
		switch ev.Name {
		case EventPresences:
			own := ownPresence(ev.Data, puuid)
			if own == nil || own.SessionLoopState == domain.StateUnknown {
				continue
			}
			if own.SessionLoopState != current {
				return own.SessionLoopState, nil
			}
			if c.onOwn != nil {
				c.onOwn(*own)
			}
		case EventMessages:
			c.deliver(ev)
		}
	}
}

func (c *Client) deliver(ev Event) {
	if c.onChat == nil || ev.EventType == "Delete" {
		return
	}
	msgs, err := parseMessages(ev.Data)
	if err != nil {
		log.Debug().Err(err).Msg("riotws: bad chat payload")
		return
	}
	for _, m := range msgs {
		if !c.markSeen(m.ID) {
			continue
		}
		c.onChat(m)
	}
}

const seenLimit = 512

// markSeen devuelve false si el id ya pasó.
func (c *Client) markSeen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.seen[id]; dup {
		return false
	}
	c.seen[id] = struct{}{}
	c.ring = append(c.ring, id)
	if len(c.ring) > seenLimit {
		delete(c.seen, c.ring[0])
		c.ring = c.ring[1:]
	}
	return true
}
