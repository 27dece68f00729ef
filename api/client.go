// Package api is the client for the tracking backend's REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/key"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/network"
	"github.com/anitrack-cli/anitrack/session"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 4 << 10

// Client performs backend requests on behalf of a session.
type Client struct {
	base    string
	http    *http.Client
	session *session.Session
	genres  *genreCache
	catalog bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// WithCache enables the on-disk genre and catalog caches.
func WithCache(enabled bool) Option {
	return func(client *Client) {
		if enabled {
			client.genres = newGenreCache()
		} else {
			client.genres = nil
		}
		client.catalog = enabled
	}
}

// New creates a client for the backend at baseURL. The session may be nil for anonymous use.
func New(baseURL string, s *session.Session, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", baseURL)
	}

	client := &Client{
		base:    u.String(),
		http:    network.Client,
		session: s,
	}

	for _, option := range options {
		option(client)
	}

	return client, nil
}

// FromConfig creates a client from the api.* configuration keys.
func FromConfig(s *session.Session) (*Client, error) {
	timeout := time.Duration(viper.GetInt(key.APITimeout)) * time.Second

	return New(
		viper.GetString(key.APIURL),
		s,
		WithHTTPClient(network.New(timeout)),
		WithCache(viper.GetBool(key.APICache)),
	)
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("X-Request-Id", requestID)

	if c.session != nil {
		// The backend expects the raw token, without a scheme.
		if token, ok := c.session.Token().Get(); ok {
			req.Header.Set("Authorization", token)
		}
	}

	entry := log.WithFields(log.Fields{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	})

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Error("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer util.Ignore(resp.Body.Close)

	entry = entry.WithFields(log.Fields{
		"status": resp.StatusCode,
		"took":   time.Since(started).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := statusError(resp.StatusCode, raw)
		entry.Warn(err)
		return err
	}

	entry.Debug("request done")

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
