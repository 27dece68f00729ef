package tui

import (
	"time"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/history"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/notify"
	"github.com/anitrack-cli/anitrack/open"
	"github.com/anitrack-cli/anitrack/query"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

type (
	genreNameMsg struct {
		name string
		err  error
	}

	pageMsg struct {
		ticket listing.Ticket
		result listing.Result
		err    error
	}

	profileLoadedMsg struct {
		profile api.Profile
		err     error
	}

	profileUpdatedMsg struct {
		err error
	}

	// notificationMsg is a notification raised outside the event loop.
	notificationMsg notify.Notification
)

// Notification texts shown by the listing.
const (
	msgLoggedOut  = "Session expired. Logged out"
	msgPageFailed = "Failed to load page"
	msgLoggedIn   = "Logged in"
)

func (b *statefulBubble) waitForNotification() tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-b.notifications:
			return notificationMsg(n)
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *statefulBubble) loadName() tea.Cmd {
	id := b.listing.GenreID
	return func() tea.Msg {
		name, err := b.service.Name(b.ctx, id)
		return genreNameMsg{name: name, err: err}
	}
}

// fetchPage issues a request for the current listing state. Any request in flight is superseded.
func (b *statefulBubble) fetchPage() tea.Cmd {
	ctx, ticket := b.service.Issue(b.ctx, b.listing.Query())
	b.loading = true

	return tea.Batch(b.spinnerC.Tick, func() tea.Msg {
		result, err := b.service.Fetch(ctx, ticket)
		return pageMsg{ticket: ticket, result: result, err: err}
	})
}

func (b *statefulBubble) loadProfile() tea.Cmd {
	return func() tea.Msg {
		p, err := b.form.Fetch(b.ctx)
		return profileLoadedMsg{profile: p, err: err}
	}
}

// submitProfile sends the form as it is now. Later edits do not affect the request.
func (b *statefulBubble) submitProfile() tea.Cmd {
	update := b.form.Snapshot()
	return func() tea.Msg {
		return profileUpdatedMsg{err: b.form.Submit(b.ctx, update)}
	}
}

func (b *statefulBubble) openDetails(id int) tea.Cmd {
	url := listing.DetailsURL(b.webURL, id)
	return func() tea.Msg {
		if err := open.Run(url); err != nil {
			log.Error(err)
			return notify.Fail("Could not open " + url)
		}
		return nil
	}
}

func (b *statefulBubble) rememberQuery(q string) tea.Cmd {
	return func() tea.Msg {
		if err := query.Remember(q, 1); err != nil {
			log.Warn(err)
		}
		return nil
	}
}

// saveVisit records the listing as the most recently visited genre page.
func (b *statefulBubble) saveVisit() tea.Cmd {
	l := b.listing
	visit := history.Visit{
		GenreID:   l.GenreID,
		Name:      l.Name,
		Page:      l.Page,
		Sort:      l.Sort.String(),
		Display:   l.Display.String(),
		Compact:   l.Compact,
		VisitedAt: time.Now(),
	}

	return func() tea.Msg {
		if err := history.Save(visit); err != nil {
			log.Warn(err)
		}
		return nil
	}
}

// syncItems pushes the visible items into both layouts, keeping the cursor where it was.
func (b *statefulBubble) syncItems() tea.Cmd {
	visible := b.listing.Visible()

	index := b.animesC.Index()
	if b.listing.Compact {
		index = b.tableC.Cursor()
	}

	cmd := b.animesC.SetItems(lo.Map(visible, func(anime api.Anime, _ int) list.Item {
		return &listItem{internal: anime}
	}))
	b.tableC.SetRows(rows(visible))

	b.selectIndex(index)
	return cmd
}

// selectIndex moves both layouts to index, clamped to the visible items.
func (b *statefulBubble) selectIndex(index int) {
	n := len(b.animesC.Items())
	if n == 0 {
		b.animesC.Select(0)
		b.tableC.SetCursor(0)
		return
	}

	index = lo.Clamp(index, 0, n-1)
	b.animesC.Select(index)
	b.tableC.SetCursor(index)
}

// selected returns the anime under the cursor of the active layout.
func (b *statefulBubble) selected() (api.Anime, bool) {
	visible := b.listing.Visible()

	index := b.animesC.Index()
	if b.listing.Compact {
		index = b.tableC.Cursor()
	}

	if index < 0 || index >= len(visible) {
		return api.Anime{}, false
	}
	return visible[index], true
}
