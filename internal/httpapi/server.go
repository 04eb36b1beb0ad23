package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/latoulicious/artgallery/pkg/logging"
)

// Server runs the HTTP surface in the background
type Server struct {
	srv    *http.Server
	logger logging.Logger
	errc   chan error
}

func NewServer(addr string, handler http.Handler, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
		errc:   make(chan error, 1),
	}
}

// Start binds the listener and serves in a goroutine. Bind errors are
// returned; later serve errors arrive on Err.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}

	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": ln.Addr().String(),
	})
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", err, nil)
			s.errc <- err
		}
		close(s.errc)
	}()
	return nil
}

// Err is closed once the server stops
func (s *Server) Err() <-chan error {
	return s.errc
}

// Shutdown gracefully stops the server within timeout
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", err, nil)
		return err
	}
	s.logger.Info("HTTP server shutdown complete", nil)
	return nil
}
