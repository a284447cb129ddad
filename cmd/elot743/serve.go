// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/elot743/internal/history"
	"github.com/pdiddy/elot743/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP transliteration endpoint",
	Long: `Serve exposes the transliterator over HTTP.

  GET /?greektext=...          plain-text transliteration
  GET /?greektext=...&json     {"greektext": ..., "elot743text": ...}
  GET /history?q=&limit=       recorded conversions (with --history)
  GET /healthz                 liveness

A request without greektext is answered with 406 Not Acceptable. When a
token is configured (server.token or .secrets/elot743-api-token) requests
must carry it as a bearer token.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"addr":           "server.addr",
		"max-text-bytes": "server.max_text_bytes",
		"history":        "history.enabled",
		"db":             "history.db_path",
		"nfc":            "transliteration.nfc",
	}); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	opts := []server.Option{server.WithLogger(logger)}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info().Str("db", store.Path()).Msg("recording history")
		opts = append(opts, server.WithHistory(store))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, newTransliterator(cfg), opts...).Serve(ctx)
}

func init() {
	serveCmd.Flags().String("addr", ":8743", "listen address")
	serveCmd.Flags().Int("max-text-bytes", 64*1024, "reject larger greektext values (0 = no limit)")
	serveCmd.Flags().Bool("history", false, "record conversions in the history database")
	serveCmd.Flags().String("db", "data/history.db", "history database path")
	serveCmd.Flags().Bool("nfc", false, "normalize input to NFC before transliterating")

	rootCmd.AddCommand(serveCmd)
}
