package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrDisabled = errors.New("rpc: no client id")

// Client habla con Discord por IPC. Reconecta en el próximo SetActivity si la conexión cae.
type Client struct {
	clientID string
	dial     func(context.Context) (net.Conn, error)

	mu   sync.Mutex
	conn net.Conn
	last *Activity
}

func New(clientID string) *Client {
	return &Client{clientID: clientID, dial: dialIPC}
}

func (c *Client) connectLocked(ctx context.Context) error {
	if c.clientID == "" {
		return ErrDisabled
	}
	if c.conn != nil {
		return nil
	}
	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("rpc dial: %w", err)
	}
	if err := writeFrame(conn, opHandshake, map[string]any{"v": 1, "client_id": c.clientID}); err != nil {
		_ = conn.Close()
		return fmt.Errorf("rpc handshake: %w", err)
	}
	op, body, err := readFrame(conn)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rpc handshake: %w", err)
	}
	if op == opClose {
		_ = conn.Close()
		return fmt.Errorf("rpc handshake rejected: %s", body)
	}
	c.conn = conn
	log.Debug().Msg("rpc connected")
	return nil
}

// SetActivity manda SET_ACTIVITY; si es igual al último no hace nada.
func (c *Client) SetActivity(ctx context.Context, a Activity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last != nil && sameActivity(*c.last, a) {
		return nil
	}
	if err := c.connectLocked(ctx); err != nil {
		return err
	}
	req := map[string]any{
		"cmd":   "SET_ACTIVITY",
		"args":  map[string]any{"pid": os.Getpid(), "activity": a},
		"nonce": uuid.NewString(),
	}
	if err := writeFrame(c.conn, opFrame, req); err != nil {
		c.dropLocked()
		return fmt.Errorf("rpc write: %w", err)
	}
	op, body, err := readFrame(c.conn)
	if err != nil {
		c.dropLocked()
		return fmt.Errorf("rpc read: %w", err)
	}
	if op == opClose {
		c.dropLocked()
		return fmt.Errorf("rpc closed: %s", body)
	}
	var res struct {
		Evt  string `json:"evt"`
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &res); err == nil && res.Evt == "ERROR" {
		return fmt.Errorf("rpc error: %s", res.Data.Message)
	}
	c.last = &a
	return nil
}

func sameActivity(a, b Activity) bool {
	x, _ := json.Marshal(a)
	y, _ := json.Marshal(b)
	return string(x) == string(y)
}

func (c *Client) dropLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.last = nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	_ = writeFrame(c.conn, opClose, map[string]any{})
	err := c.conn.Close()
	c.conn = nil
	return err
}
