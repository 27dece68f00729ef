package listing

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/session"
)

// Mode selects where sorting and paging happen.
type Mode int

const (
	// ServerMode requests one sorted page at a time.
	ServerMode Mode = iota
	// ClientMode downloads the catalog once and pages it locally.
	ClientMode
)

func (m Mode) String() string {
	if m == ClientMode {
		return "client"
	}
	return "server"
}

// ParseMode maps the browse.mode setting. Anything unknown is ServerMode.
func ParseMode(name string) Mode {
	if strings.EqualFold(strings.TrimSpace(name), ClientMode.String()) {
		return ClientMode
	}
	return ServerMode
}

// Backend is the part of the API a listing needs.
type Backend interface {
	GenreName(ctx context.Context, id int) (string, error)
	GenreCount(ctx context.Context, id int) (int, error)
	AnimesByGenre(ctx context.Context, id int, sort string, start, end int) ([]api.Anime, error)
	Catalog(ctx context.Context) ([]api.Anime, error)
}

// Query is what a single fetch asks for.
type Query struct {
	GenreID int
	Page    int
	Sort    Sort
	Display Display
	Search  string
}

// Ticket identifies an issued fetch. Only the latest ticket is current.
type Ticket struct {
	Seq   uint64
	Query Query
}

// Result is the outcome of a fetch.
type Result struct {
	Ticket Ticket
	Items  []api.Anime
	// Count is the number of items in the genre, or -1 when unknown.
	Count int
	// LoggedOut is set when the token was rejected and the page was reloaded without it.
	LoggedOut bool
}

// Service fetches listing pages on behalf of a session.
type Service struct {
	backend Backend
	session *session.Session
	mode    Mode

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewService creates a listing service.
func NewService(backend Backend, s *session.Session, mode Mode) *Service {
	return &Service{
		backend: backend,
		session: s,
		mode:    mode,
	}
}

// Mode returns the listing strategy.
func (s *Service) Mode() Mode {
	return s.mode
}

// Session returns the session used for authentication.
func (s *Service) Session() *session.Session {
	return s.session
}

// Name returns the genre's display name.
func (s *Service) Name(ctx context.Context, genreID int) (string, error) {
	return s.backend.GenreName(ctx, genreID)
}

// Issue starts a new fetch for q, cancelling the one in flight.
// The returned context must be passed to Fetch.
func (s *Service) Issue(parent context.Context, q Query) (context.Context, Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.seq++

	return ctx, Ticket{Seq: s.seq, Query: q}
}

// Current reports whether t is the latest issued ticket.
func (s *Service) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return t.Seq == s.seq
}

// Close cancels the fetch in flight, if any.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Fetch performs the request described by t.
// A rejected token is removed from the session and the page is requested once more without it.
func (s *Service) Fetch(ctx context.Context, t Ticket) (Result, error) {
	result, err := s.fetch(ctx, t.Query)

	if api.IsTokenRejected(err) && s.session != nil && s.session.LoggedIn() {
		log.Warnf("token rejected while loading genre %d: %s", t.Query.GenreID, err)

		if logoutErr := s.session.Logout(); logoutErr != nil {
			return Result{Ticket: t, Count: -1}, fmt.Errorf("logout: %w", logoutErr)
		}

		result, err = s.fetch(ctx, t.Query)
		result.LoggedOut = true
	}

	result.Ticket = t

	if err != nil {
		log.Errorf("loading genre %d page %d: %s", t.Query.GenreID, t.Query.Page, err)
		return result, err
	}

	return result, nil
}

// Run issues and performs a fetch in one step. Useful outside the event loop.
func (s *Service) Run(ctx context.Context, q Query) (Result, error) {
	ctx, ticket := s.Issue(ctx, q)
	return s.Fetch(ctx, ticket)
}

func (s *Service) fetch(ctx context.Context, q Query) (Result, error) {
	if s.mode == ClientMode {
		catalog, err := s.backend.Catalog(ctx)
		if err != nil {
			return Result{Count: -1}, err
		}

		items, count := Local(catalog, q)
		return Result{Items: items, Count: count}, nil
	}

	start, end := Range(q.Page)
	items, err := s.backend.AnimesByGenre(ctx, q.GenreID, q.Sort.String(), start, end)
	if err != nil {
		return Result{Count: -1}, err
	}

	count, err := s.backend.GenreCount(ctx, q.GenreID)
	if err != nil {
		return Result{Count: -1}, err
	}

	return Result{Items: items, Count: count}, nil
}
