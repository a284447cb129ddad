// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/elot743/internal/history"
	"github.com/pdiddy/elot743/internal/translit"
	"github.com/pdiddy/elot743/pkg/types"
)

// --- test helpers ---

func newTestServer(t *testing.T, cfg types.ServerConfig, opts ...Option) *httptest.Server {
	t.Helper()
	s := New(cfg, translit.New(), opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func openHistory(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(types.HistoryConfig{DBPath: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// syncBuffer guards a buffer written by server goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type failingTransliterator struct{}

func (failingTransliterator) Transliterate(string) (string, error) {
	return "", errors.New("boom")
}

// --- conversion endpoint ---

func TestConvert_PlainText(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{})

	for _, path := range []string{"/", "/convert"} {
		resp, body := get(t, ts, path+"?greektext="+url.QueryEscape("Θεός"))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, "Theos", body)
	}
}

func TestConvert_JSON(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{})

	resp, body := get(t, ts, "/?json&greektext="+url.QueryEscape("<αύρα>"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, `{"greektext":"<αύρα>","elot743text":"<avra>"}`+"\n", body)
}

func TestConvert_MissingText(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{})

	resp, _ := get(t, ts, "/?json=1")
	assert.Equal(t, http.StatusNotAcceptable, resp.StatusCode)
}

func TestConvert_EmptyText(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{})

	resp, body := get(t, ts, "/?greektext=")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
}

func TestConvert_InvalidEncoding(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{})

	resp, _ := get(t, ts, "/?greektext=%CE%B1%FF")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConvert_TooLarge(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{MaxTextBytes: 4})

	resp, _ := get(t, ts, "/?greektext="+url.QueryEscape("αβγ"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestConvert_PostForm(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{})

	form := url.Values{"greektext": {"μπαμπάς"}}
	resp, err := ts.Client().PostForm(ts.URL+"/", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bampas", string(body))
}

func TestConvert_InternalError(t *testing.T) {
	s := New(types.ServerConfig{}, failingTransliterator{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, _ := get(t, ts, "/?greektext=x")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

// --- auth ---

func TestRequireToken(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{Token: "s3cret"})

	resp, _ := get(t, ts, "/?greektext=α")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := get(t, ts, "/?token=s3cret&greektext="+url.QueryEscape("α"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a", body)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/?greektext="+url.QueryEscape("β"), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = get(t, ts, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "health check is public")
}

// --- history ---

func TestHistory_RecordsConversions(t *testing.T) {
	store := openHistory(t)
	ts := newTestServer(t, types.ServerConfig{}, WithHistory(store))

	get(t, ts, "/?greektext="+url.QueryEscape("Θεός"))
	get(t, ts, "/?json&greektext="+url.QueryEscape("αυτός"))
	get(t, ts, "/?json=1")

	resp, body := get(t, ts, "/history")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []types.Conversion
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "aftos", got[0].LatinText)
	assert.Equal(t, "Theos", got[1].LatinText)
	assert.Equal(t, types.SourceHTTP, got[1].Source)

	resp, body = get(t, ts, "/history?q="+url.QueryEscape("Θε")+"&limit=5")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Θεός", got[0].GreekText)
}

func TestHistory_Empty(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{}, WithHistory(openHistory(t)))

	resp, body := get(t, ts, "/history")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]\n", body)
}

func TestHistory_BadLimit(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{}, WithHistory(openHistory(t)))

	resp, _ := get(t, ts, "/history?limit=many")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistory_Disabled(t *testing.T) {
	ts := newTestServer(t, types.ServerConfig{})

	resp, _ := get(t, ts, "/history")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// --- logging ---

func TestRequestLogger(t *testing.T) {
	var buf syncBuffer
	logger := zerolog.New(&buf)
	ts := newTestServer(t, types.ServerConfig{}, WithLogger(logger))

	get(t, ts, "/convert?greektext=x")
	get(t, ts, "/")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "/convert", first["path"])
	assert.Equal(t, float64(200), first["status"])
	assert.NotEmpty(t, first["request_id"])

	assert.Equal(t, "warn", second["level"])
	assert.Equal(t, float64(406), second["status"])
}

// --- lifecycle ---

func TestServeListener_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(types.ServerConfig{ShutdownTimeout: time.Second}, translit.New())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServe_BadAddress(t *testing.T) {
	s := New(types.ServerConfig{Addr: "256.0.0.1:bad"}, translit.New())
	err := s.Serve(context.Background())
	assert.Error(t, err)
}
