// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client calls a remote elot743 server. A Client satisfies the
// same Transliterate contract as the local engine, so batch conversion can
// run against either.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/elot743/internal/httputil"
	"github.com/pdiddy/elot743/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "elot743-client/1"
)

var (
	// ErrMissingText is returned when the server answers 406 Not Acceptable.
	ErrMissingText = errors.New("server rejected request: greektext missing")

	// ErrUnauthorized is returned on 401 responses.
	ErrUnauthorized = errors.New("server rejected request: unauthorized")
)

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

// Client talks to the server's JSON endpoint.
type Client struct {
	baseURL    string
	http       *http.Client
	userAgent  string
	token      string
	maxRetries int
}

// New returns a Client for cfg.BaseURL.
func New(cfg types.ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		userAgent:  ua,
		token:      cfg.Token,
		maxRetries: cfg.MaxRetries,
	}
}

// Transliterate converts text on the server.
func (c *Client) Transliterate(text string) (string, error) {
	return c.TransliterateContext(context.Background(), text)
}

// TransliterateContext converts text on the server, retrying on 429.
func (c *Client) TransliterateContext(ctx context.Context, text string) (string, error) {
	conv, err := c.Convert(ctx, text)
	if err != nil {
		return "", err
	}
	return conv.LatinText, nil
}

// Convert returns the server's {greektext, elot743text} pair for text.
func (c *Client) Convert(ctx context.Context, text string) (types.Conversion, error) {
	form := url.Values{}
	form.Set("greektext", text)
	form.Set("json", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", strings.NewReader(form.Encode()))
	if err != nil {
		return types.Conversion{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.maxRetries)
	if err != nil {
		return types.Conversion{}, fmt.Errorf("calling %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotAcceptable:
		return types.Conversion{}, ErrMissingText
	case http.StatusUnauthorized:
		return types.Conversion{}, ErrUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.Conversion{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var conv types.Conversion
	if err := json.NewDecoder(resp.Body).Decode(&conv); err != nil {
		return types.Conversion{}, fmt.Errorf("decoding response: %w", err)
	}
	return conv, nil
}
