package overlay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Server expone el hub por websocket a los overlays del navegador.
type Server struct {
	*Hub
	router    *mux.Router
	upgrader  websocket.Upgrader
	snapshot  func() any
	accessLog io.Writer

	srv *http.Server
}

type Option func(*Server)

// WithSnapshot da el contenido de GET /api/snapshot.
func WithSnapshot(fn func() any) Option {
	return func(s *Server) { s.snapshot = fn }
}

// WithAccessLog cambia el destino del log de acceso (default stdout).
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.accessLog = w }
}

func New(version, theme string, opts ...Option) *Server {
	s := &Server{
		Hub:    NewHub(version, theme),
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		accessLog: os.Stdout,
	}
	for _, o := range opts {
		o(s)
	}
	s.routes()
	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.router.Handle("/healthz", handlers.CombinedLoggingHandler(s.accessLog,
		http.HandlerFunc(s.handleHealth),
	)).Methods("GET")
	s.router.Handle("/api/snapshot", handlers.CombinedLoggingHandler(s.accessLog,
		http.HandlerFunc(s.handleSnapshot),
	)).Methods("GET")
	// los overlays se conectan a la raíz
	s.router.HandleFunc("/", s.handleWS).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWS).Methods("GET")
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "clients": s.Clients()})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshot == nil {
		http.Error(w, "no snapshot", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshot())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, "websocket only", http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("overlay: upgrade")
		return
	}
	c := s.add(conn)
	defer s.remove(c)

	// leer es obligatorio para notar el cierre del lado del cliente
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Start escucha en addr; bloquea hasta Shutdown.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	log.Info().Str("addr", ln.Addr().String()).Msg("overlay listening")
	err := s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.closeAll()
	return s.srv.Shutdown(ctx)
}
