package overlay

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// tipos que no se repiten al conectar (van aparte o son efímeros)
var noReplay = map[string]bool{"chat": true, "version": true, "theme": true, "loadouts": true}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

func (c *client) writeLoop() {
	defer close(c.done)
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Debug().Err(err).Msg("overlay: write failed")
			// vaciar para no bloquear al hub
			for range c.send {
			}
			return
		}
	}
}

// Hub guarda el último mensaje de cada tipo y difunde a los clientes.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	last     map[string][]byte
	order    []string
	version  string
	theme    string
	loadouts []byte
}

func NewHub(version, theme string) *Hub {
	return &Hub{
		clients: map[*client]struct{}{},
		last:    map[string][]byte{},
		version: version,
		theme:   theme,
	}
}

// withType agrega "type" al objeto JSON de payload.
func withType(typ string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	obj := map[string]json.RawMessage{}
	if string(b) != "null" {
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil, fmt.Errorf("overlay payload %q is not an object: %w", typ, err)
		}
	}
	t, _ := json.Marshal(typ)
	obj["type"] = t
	return json.Marshal(obj)
}

// SendPayload guarda el mensaje como último de su tipo y lo difunde.
func (h *Hub) SendPayload(typ string, payload any) error {
	msg, err := withType(typ, payload)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.last[typ]; !ok {
		h.order = append(h.order, typ)
	}
	h.last[typ] = msg
	h.broadcastLocked(msg)
	return nil
}

func (h *Hub) UpdateTheme(name string) error {
	h.mu.Lock()
	h.theme = name
	h.mu.Unlock()
	return h.SendPayload("theme", map[string]string{"theme": name})
}

func (h *Hub) UpdateLoadouts(payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	// vacío limpia a los conectados pero no se repite a los nuevos
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err == nil && len(obj) == 0 {
		b = nil
	}
	h.mu.Lock()
	h.loadouts = b
	h.mu.Unlock()
	return h.SendPayload("loadouts", payload)
}

func (h *Hub) broadcastLocked(msg []byte) {
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Warn().Msg("overlay: slow client dropped")
			h.removeLocked(c)
		}
	}
}

// add registra el cliente y le manda el estado inicial.
func (h *Hub) add(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, 64), done: make(chan struct{})}
	go c.writeLoop()

	h.mu.Lock()
	defer h.mu.Unlock()
	initial := make([][]byte, 0, len(h.order)+3)
	if m, err := withType("version", map[string]string{"core": h.version}); err == nil {
		initial = append(initial, m)
	}
	if m, err := withType("theme", map[string]string{"theme": h.theme}); err == nil {
		initial = append(initial, m)
	}
	if h.loadouts != nil {
		if m, err := withType("loadouts", json.RawMessage(h.loadouts)); err == nil {
			initial = append(initial, m)
		}
	}
	for _, typ := range h.order {
		if !noReplay[typ] {
			initial = append(initial, h.last[typ])
		}
	}
	for _, m := range initial {
		c.send <- m
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
	<-c.done
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	_ = c.conn.Close()
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// closeAll corta todas las conexiones y espera a los writers.
func (h *Hub) closeAll() {
	h.mu.Lock()
	cs := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		cs = append(cs, c)
		h.removeLocked(c)
	}
	h.mu.Unlock()
	for _, c := range cs {
		<-c.done
	}
}
