// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/elot743/internal/history"
	"github.com/pdiddy/elot743/internal/translit"
	"github.com/pdiddy/elot743/pkg/types"
)

const (
	paramText = "greektext"
	paramJSON = "json"
)

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		RequestLogger(s.logger),
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)

		for _, path := range []string{"/", "/convert"} {
			r.Get(path, s.handleConvert)
			r.Post(path, s.handleConvert)
		}
		r.Get("/history", s.handleHistory)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed request: "+err.Error(), http.StatusBadRequest)
		return
	}

	values, ok := r.Form[paramText]
	if !ok || len(values) == 0 {
		http.Error(w, "greektext parameter required", http.StatusNotAcceptable)
		return
	}
	text := values[0]

	if s.cfg.MaxTextBytes > 0 && len(text) > s.cfg.MaxTextBytes {
		http.Error(w, "greektext too large", http.StatusRequestEntityTooLarge)
		return
	}

	out, err := s.tr.Transliterate(text)
	if err != nil {
		if errors.Is(err, translit.ErrInvalidEncoding) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error().Err(err).Msg("transliteration failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.record(r, text, out)

	if _, wantJSON := r.Form[paramJSON]; wantJSON {
		writeJSON(w, http.StatusOK, types.Conversion{GreekText: text, LatinText: out})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, out)
}

// record logs the conversion in history. Failures are logged only.
func (s *Server) record(r *http.Request, text, out string) {
	if s.history == nil {
		return
	}
	c := &types.Conversion{GreekText: text, LatinText: out, Source: types.SourceHTTP}
	if err := s.history.Record(r.Context(), c); err != nil {
		s.logger.Warn().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("recording conversion")
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "history is disabled", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	opts := history.QueryOptions{
		Contains: q.Get("q"),
		Source:   types.ConversionSource(q.Get("source")),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		opts.MaxResults = limit
	}

	results, err := s.history.Query(r.Context(), opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("querying history")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []types.Conversion{}
	}
	writeJSON(w, http.StatusOK, results)
}

// writeJSON encodes v leaving non-ASCII and HTML characters unescaped.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}
