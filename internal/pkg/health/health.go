// Package health serves the HTTP side of the server: liveness, counters and the spectator feed.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kurve/internal/pkg/metrics"
	"kurve/internal/pkg/spectate"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

const shutdownTimeout = 5 * time.Second

// Server is the HTTP health server.
type Server struct {
	srv      *http.Server
	counters *metrics.Counters
	hub      *spectate.Hub
}

// NewServer creates a Server listening on port. hub may be nil, in which case /spectate is not served.
func NewServer(port uint16, counters *metrics.Counters, hub *spectate.Hub) *Server {
	s := &Server{counters: counters, hub: hub}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/metrics", s.handleMetrics)
	if hub != nil {
		mux.Handle("/spectate", hub)
	}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routes served.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	payload := s.counters.Snapshot()
	if s.hub != nil {
		payload["spectators"] = s.hub.Len()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Warn("encode metrics failed")
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() {
		logger.WithField("addr", s.srv.Addr).Info("health server listening")
		errs <- s.srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return errors.Wrap(err, "serve health failed")
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown health server failed")
	}
	return nil
}
