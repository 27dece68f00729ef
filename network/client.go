// Package network provides the pre-configured HTTP client used to reach the tracking backend.
package network

import (
	"net/http"
	"time"
)

// base is the transport every client is cloned from. It is captured once,
// before anything (a test interceptor, for one) can replace http.DefaultTransport.
var base = defaultTransport()

// Client is the shared HTTP client used when no per-command timeout is configured.
var Client = New(time.Minute)

// New returns an http.Client with the tuned transport and the given overall timeout.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: newTransport(timeout),
	}
}

func defaultTransport() *http.Transport {
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		return t
	}
	return &http.Transport{Proxy: http.ProxyFromEnvironment}
}

// newTransport clones the base transport with pool and timeout parameters suited to a single backend host.
func newTransport(timeout time.Duration) *http.Transport {
	t := base.Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 90 * time.Second
	t.ResponseHeaderTimeout = timeout
	t.ExpectContinueTimeout = time.Second
	return t
}
