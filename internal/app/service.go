package app

import (
	"context"
	"errors"
	stdhttp "net/http"

	"examplar-api/internal/config"
	"examplar-api/internal/http"

	log "github.com/sirupsen/logrus"
)

// Service represents the product and user API
type Service struct {
	config *config.Config
	logger log.FieldLogger
	server *http.Server
}

// Start serves HTTP until Shutdown is called. A clean shutdown returns nil.
func (s *Service) Start() error {
	addr := s.config.Server.Addr()
	s.logger.WithField("addr", addr).Info("starting HTTP server")

	if err := s.server.Start(addr); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the HTTP handler without binding a listener
func (s *Service) Handler() stdhttp.Handler {
	return s.server.Handler()
}
