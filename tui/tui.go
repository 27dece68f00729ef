package tui

import (
	"errors"

	"github.com/anitrack-cli/anitrack/history"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/profile"
	"github.com/anitrack-cli/anitrack/session"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoRecent is returned when there is nothing to continue from.
var ErrNoRecent = errors.New("no recently visited genre")

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Profile opens the profile settings instead of a genre listing.
	Profile bool
	// Continue reopens the most recently visited genre page.
	Continue bool

	GenreID int
	Page    int
	Sort    listing.Sort
	Display listing.Display
	Compact bool

	Service *listing.Service
	Backend profile.Backend
	Session *session.Session
	WebURL  string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	if options.Continue {
		visit, ok := history.Last().Get()
		if !ok {
			return ErrNoRecent
		}

		options.GenreID = visit.GenreID
		options.Page = visit.Page
		options.Display = listing.ParseDisplay(visit.Display)
		options.Compact = visit.Compact

		if sort, err := listing.ParseSort(visit.Sort); err == nil {
			options.Sort = sort
		} else {
			log.Warn(err)
		}
	}

	bubble := newBubble(options)
	defer bubble.close()

	if options.Profile {
		bubble.setState(loadingState)
	} else {
		bubble.setState(genreState)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
