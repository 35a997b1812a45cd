package bridge

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/live/pkg/live"
)

// Server accepts WebSocket connections and runs one Session per client.
type Server struct {
	config   *Config
	router   chi.Router
	upgrader websocket.Upgrader
	logger   *slog.Logger

	metrics       *metrics
	engineMetrics *live.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
	wg       sync.WaitGroup

	httpServer *http.Server
}

// New creates a Server. A nil config uses DefaultConfig.
func New(config *Config) *Server {
	config = config.withDefaults()
	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:   config.Logger.With("component", "bridge"),
		metrics:  newMetrics(config.Registry, config.MetricsNamespace),
		sessions: make(map[string]*Session),
		engineMetrics: live.NewMetrics(
			live.WithRegistry(config.Registry),
			live.WithNamespace(config.MetricsNamespace),
		),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	if config.MetricsPath != "" {
		r.Method(http.MethodGet, config.MetricsPath,
			promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{}))
	}
	r.Get(config.Path, s.HandleWebSocket)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Config returns the effective configuration.
func (s *Server) Config() *Config { return s.config }

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// HandleWebSocket upgrades the request and serves the session until the
// client disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess, err := s.newSession(conn, middleware.GetReqID(r.Context()))
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session setup failed"),
			time.Now().Add(s.config.WriteTimeout))
		conn.Close()
		return
	}

	s.track(sess)
	defer s.untrack(sess)

	sess.logger.Info("session opened", "remote", r.RemoteAddr)
	sess.send(FrameHello, 0, HelloData{Session: sess.id})

	go sess.WriteLoop()
	sess.ReadLoop(context.WithoutCancel(r.Context()))
	sess.logger.Info("session closed", "duration", time.Since(sess.created).Round(time.Millisecond))
}

func (s *Server) track(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.wg.Add(1)
	s.metrics.sessions.Inc()
	s.metrics.opened.Inc()
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	s.metrics.sessions.Dec()
	s.wg.Done()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.SessionCount(),
	})
}

// Run serves on the configured address until ctx is done, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address, "path", s.config.Path)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Info("server shutdown complete")
	return nil
}
