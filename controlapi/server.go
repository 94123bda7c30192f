package controlapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/steersuite/crowdsim/engine"
)

// Server is an HTTP control surface over an engine.Engine: pause/resume
// toggle a flag the simulation's own driving loop consults before calling
// Update, and stop is surfaced through ShouldStop so it satisfies
// engine.Controller directly.
type Server struct {
	eng *engine.Engine

	mu      sync.Mutex
	paused  bool
	stopped bool

	router *gin.Engine
	http   *http.Server
}

// NewServer constructs a Server bound to eng, with routes registered but
// no listener started; call ListenAndServe to start serving.
func NewServer(eng *engine.Engine) *Server {
	s := &Server{eng: eng}
	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.registerRoutes()

	return s
}

// Router exposes the underlying gin engine, chiefly so tests can drive
// routes directly through httptest without a listening socket.
func (s *Server) Router() *gin.Engine { return s.router }

// Paused reports the most recently requested pause state; a caller's tick
// loop should pass this as engine.Update's pausedOnly argument.
func (s *Server) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.paused
}

// ShouldStop implements engine.Controller: the engine polls this once at
// the end of every tick (§5 cancellation).
func (s *Server) ShouldStop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopped
}

// ListenAndServe starts the HTTP server on addr, blocking until it stops
// or ctx is cancelled, in which case it shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() { errCh <- s.http.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return s.http.Shutdown(shutdownCtx)
	}
}

var _ engine.Controller = (*Server)(nil)
