// Package mini implements a line-oriented interface built on interactive prompts.
package mini

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/icon"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/notify"
	"github.com/anitrack-cli/anitrack/open"
	"github.com/anitrack-cli/anitrack/profile"
	"github.com/anitrack-cli/anitrack/session"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/samber/lo"
)

var truncateAt = 100

// Asker runs a prompt and writes the answer into response.
type Asker func(p survey.Prompt, response any, opts ...survey.AskOpt) error

// Options of a mini session.
type Options struct {
	// GenreID opens the listing of a genre. Ignored when Profile is set.
	GenreID int
	Sort    listing.Sort
	Page    int
	Profile bool

	Service *listing.Service
	Backend profile.Backend
	Session *session.Session
	WebURL  string

	Out io.Writer
	Ask Asker
	// Open shows a URL. Defaults to the system browser.
	Open func(string) error
}

type mini struct {
	ctx context.Context

	state         state
	statesHistory util.Stack[state]

	service *listing.Service
	session *session.Session
	webURL  string

	listing  *listing.Listing
	stale    bool
	selected api.Anime

	form *profile.Form

	out  io.Writer
	ask  Asker
	open func(string) error
}

func newMini(ctx context.Context, options *Options) *mini {
	m := &mini{
		ctx:           ctx,
		statesHistory: util.Stack[state]{},
		service:       options.Service,
		session:       options.Session,
		webURL:        options.WebURL,
		out:           options.Out,
		ask:           options.Ask,
		open:          options.Open,
	}

	if m.out == nil {
		m.out = os.Stdout
	}
	if m.ask == nil {
		m.ask = survey.AskOne
	}
	if m.open == nil {
		m.open = open.Start
	}

	sink := notify.SinkFunc(m.notify)
	m.form = profile.NewForm(options.Backend, options.Session, sink)

	return m
}

func (m *mini) previousState() {
	if s, ok := m.statesHistory.Pop(); ok {
		m.setState(s)
	} else {
		m.setState(quitState)
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{loginState, pageInputState, searchState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

// Run starts the prompt loop and returns when the user quits.
func Run(ctx context.Context, options *Options) error {
	m := newMini(ctx, options)

	if options.Profile {
		m.state = profileLoadState
	} else {
		m.listing = listing.New(options.GenreID)
		m.listing.Sort = options.Sort
		if options.Page > 0 {
			m.listing.Page = options.Page
		}
		m.stale = true
		m.state = genreState
	}

	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	for m.state != quitState {
		if err := m.handleState(); err != nil {
			return err
		}
	}

	return nil
}

func (m *mini) handleState() error {
	switch m.state {
	case genreState:
		return m.handleGenreState()
	case animeState:
		return m.handleAnimeState()
	case pageInputState:
		return m.handlePageInputState()
	case searchState:
		return m.handleSearchState()
	case loginState:
		return m.handleLoginState()
	case profileLoadState:
		return m.handleProfileLoadState()
	case profileState:
		return m.handleProfileState()
	}

	return nil
}

func (m *mini) notify(n notify.Notification) {
	ic := icon.Success
	if n.Status == notify.Failure {
		ic = icon.Fail
	}
	fmt.Fprintf(m.out, "%s %s\n", icon.Get(ic), n.Message)
}
