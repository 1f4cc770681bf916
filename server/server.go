// Package server exposes editor sessions over websockets. Each connection
// owns one session; clients send steps and receive snapshots and the surface
// commands their own player should follow.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/clipedit/clipedit/key"
	"github.com/clipedit/clipedit/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	// AllowedOrigins limits who may open sessions. "*" allows everyone.
	AllowedOrigins []string
	Publisher      Publisher
	Fade           time.Duration
}

type Server struct {
	upgrader  websocket.Upgrader
	origins   []string
	publisher Publisher
	fade      time.Duration
	log       *log.Scoped

	mu    sync.RWMutex
	conns map[string]*conn
}

func New(opts Options) *Server {
	if opts.Publisher == nil {
		opts.Publisher = nopPublisher{}
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		origins:   opts.AllowedOrigins,
		publisher: opts.Publisher,
		fade:      opts.Fade,
		log:       log.Component("server"),
		conns:     make(map[string]*conn),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	return s
}

// NewFromConfig builds a server from the server.* and player.fade_ms keys.
func NewFromConfig() (*Server, error) {
	opts := Options{
		AllowedOrigins: viper.GetStringSlice(key.ServerAllowedOrigins),
		Fade:           time.Duration(viper.GetInt(key.PlayerFadeMs)) * time.Millisecond,
	}

	if url := viper.GetString(key.ServerRedisURL); url != "" {
		publisher, err := NewRedisPublisher(url, viper.GetString(key.ServerRedisChannel))
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()
		if err := publisher.Ping(ctx); err != nil {
			_ = publisher.Close()
			return nil, err
		}
		opts.Publisher = publisher
	}

	return New(opts), nil
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || lo.Contains(s.origins, "*") {
		return true
	}
	return lo.Contains(s.origins, origin)
}

// Router returns the HTTP handler with all routes mounted.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)
	r.Get("/sessions", s.handleSessions)
	r.Get("/sessions/{id}", s.handleSession)
	r.Get("/ws", s.handleWS)

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(r)
}

// ListenAndServe serves until ctx is done, then closes every session.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Infof("listening on %s", addr)
	err := srv.ListenAndServe()
	s.Close()

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Sessions lists the ids of open sessions in order.
func (s *Server) Sessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := lo.Keys(s.conns)
	sort.Strings(ids)
	return ids
}

// Close ends every session and releases the publisher.
func (s *Server) Close() {
	s.mu.RLock()
	conns := lo.Values(s.conns)
	s.mu.RUnlock()

	for _, c := range conns {
		c.close()
	}

	if err := s.publisher.Close(); err != nil {
		s.log.Warnf("close publisher: %v", err)
	}
}

func (s *Server) register(c *conn) {
	s.mu.Lock()
	s.conns[c.id] = c
	s.mu.Unlock()
	s.log.Infof("session %s opened from %s", c.id, c.ws.RemoteAddr())
}

func (s *Server) forget(c *conn) {
	s.mu.Lock()
	delete(s.conns, c.id)
	s.mu.Unlock()
	s.log.Infof("session %s closed", c.id)
}

func (s *Server) lookup(id string) (*conn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conns[id]
	return c, ok
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSessions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.Sessions()})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorMessage{Error: "session not found"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), snapshotDeadline)
	defer cancel()

	snapshot, err := c.snapshot(ctx)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorMessage{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("upgrade: %v", err)
		return
	}

	c := newConn(s, ws)
	s.register(c)

	go c.writePump()
	go c.readPump()
	go c.loop()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debugf("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
