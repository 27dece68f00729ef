// Package session holds the user's backend token.
//
// A Session is created once per process and passed explicitly to every component that needs
// credentials. The token itself lives in a Store, by default the system keyring.
package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/anitrack-cli/anitrack/log"
	"github.com/samber/mo"
	"github.com/zalando/go-keyring"
)

// Store persists a single token.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// Session is a concurrency-safe view over a Store with an in-memory copy of the token.
type Session struct {
	mu     sync.RWMutex
	store  Store
	token  mo.Option[string]
	loaded bool
}

// New wraps store. The token is read lazily on first use.
func New(store Store) *Session {
	return &Session{store: store}
}

// Default returns a session backed by the system keyring.
func Default() *Session {
	return New(Keyring{})
}

// Token returns the current token, if any.
func (s *Session) Token() mo.Option[string] {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.token
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.token = s.read()
		s.loaded = true
	}

	return s.token
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	return s.Token().IsPresent()
}

// Login stores token.
func (s *Session) Login(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(token); err != nil {
		return err
	}

	s.token = mo.Some(token)
	s.loaded = true
	return nil
}

// Logout forgets the token. A token that was never stored is not an error.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = mo.None[string]()
	s.loaded = true

	if err := s.store.Delete(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}

	return nil
}

func (s *Session) read() mo.Option[string] {
	token, err := s.store.Get()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			log.Warnf("reading token: %s", err)
		}
		return mo.None[string]()
	}

	if token == "" {
		return mo.None[string]()
	}

	return mo.Some(token)
}
