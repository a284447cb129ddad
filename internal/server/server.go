// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the transliterator over HTTP.
//
// The conversion endpoint takes a greektext parameter (query string or
// form body) and answers with the plain transliteration, or with a
// {"greektext", "elot743text"} JSON object when a json parameter is
// present. A missing greektext is answered with 406 Not Acceptable.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/elot743/internal/history"
	"github.com/pdiddy/elot743/pkg/types"
)

const (
	defaultAddr              = ":8743"
	defaultReadHeaderTimeout = 10 * time.Second
	defaultShutdownTimeout   = 5 * time.Second
)

// Transliterator converts Greek text. *translit.Transliterator satisfies it.
type Transliterator interface {
	Transliterate(text string) (string, error)
}

// History records and lists conversions. *history.Store satisfies it.
type History interface {
	Record(ctx context.Context, c *types.Conversion) error
	Query(ctx context.Context, opts history.QueryOptions) ([]types.Conversion, error)
}

// Server is the HTTP adapter around a Transliterator.
type Server struct {
	cfg     types.ServerConfig
	tr      Transliterator
	history History
	logger  zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithHistory records successful conversions in h and enables /history.
func WithHistory(h History) Option {
	return func(s *Server) {
		s.history = h
	}
}

// WithLogger sets the request and lifecycle logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server. Without WithLogger it logs nothing.
func New(cfg types.ServerConfig, tr Transliterator, opts ...Option) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = defaultReadHeaderTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		cfg:    cfg,
		tr:     tr,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve listens on the configured address and blocks until ctx is
// cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
	}

	s.logger.Info().
		Str("addr", ln.Addr().String()).
		Bool("history", s.history != nil).
		Bool("auth", s.cfg.Token != "").
		Msg("server listening")

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Debug().Msg("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
