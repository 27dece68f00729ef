package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/internal/ui"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/modal"
	"github.com/anitrack-cli/anitrack/notify"
	"github.com/anitrack-cli/anitrack/profile"
	"github.com/anitrack-cli/anitrack/query"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// notify.Notification and ui.ClearNotificationMsg
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case notificationMsg:
		return b, tea.Batch(b.notifier.Update(notify.Notification(msg)), b.waitForNotification())
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, cmd
	case spinner.TickMsg:
		if !b.loading && b.state != loadingState {
			return b, nil
		}
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case genreNameMsg:
		if errors.Is(msg.err, api.ErrEmptyResult) {
			b.raiseError(fmt.Errorf("genre %d not found", b.listing.GenreID))
			return b, nil
		}
		if msg.err != nil {
			log.Warnf("loading genre %d name: %s", b.listing.GenreID, msg.err)
			return b, nil
		}
		b.listing.Name = msg.name
		return b, nil
	case pageMsg:
		return b, b.onPage(msg)
	case profileLoadedMsg:
		return b, b.onProfileLoaded(msg)
	case profileUpdatedMsg:
		b.loading = false
		return b, nil
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.close()
			return b, tea.Quit
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case loadingState:
		stateCmd = b.updateLoading(msg)
	case genreState:
		stateCmd = b.updateGenre(msg)
	case searchState:
		stateCmd = b.updateSearch(msg)
	case pageInputState:
		stateCmd = b.updatePageInput(msg)
	case sortState:
		stateCmd = b.updateSort(msg)
	case modalState:
		stateCmd = b.updateModal(msg)
	case loginState:
		stateCmd = b.updateLogin(msg)
	case profileState:
		stateCmd = b.updateProfile(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

// onPage applies a fetch result. Responses to superseded requests are dropped.
func (b *statefulBubble) onPage(msg pageMsg) tea.Cmd {
	if !b.service.Current(msg.ticket) || errors.Is(msg.err, context.Canceled) {
		return nil
	}

	b.loading = false

	var cmds []tea.Cmd
	if msg.result.LoggedOut {
		cmds = append(cmds, ui.Notify(notify.Fail(msgLoggedOut)))
	}

	if msg.err != nil {
		b.listing.Fail()
		return tea.Batch(append(cmds, ui.Notify(notify.Fail(msgPageFailed)))...)
	}

	b.listing.Apply(msg.result)
	return tea.Batch(append(cmds, b.syncItems(), b.saveVisit())...)
}

func (b *statefulBubble) onProfileLoaded(msg profileLoadedMsg) tea.Cmd {
	b.loading = false
	if msg.err == nil {
		b.form.Apply(msg.profile)
	}
	b.birthdayC.SetValue(b.form.Birthday)
	b.profileFocus = focusGender
	b.birthdayC.Blur()
	b.newState(profileState)

	if msg.err != nil {
		if _, ok := api.AsUnauthorized(msg.err); !ok {
			return ui.Notify(notify.Fail("Failed to load profile"))
		}
	}

	return nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.back, b.keymap.quit) {
		if b.statesHistory.Len() > 0 {
			b.previousState()
			return nil
		}
		b.close()
		return tea.Quit
	}
	return nil
}

func (b *statefulBubble) updateGenre(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.close()
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.listing.Search != "" {
				return b.applySearch("")
			}
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.nextPage):
			if b.listing.Next() {
				return b.fetchPage()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.prevPage):
			if b.listing.Prev() {
				return b.fetchPage()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.goTo):
			if b.listing.TotalPages() == 0 {
				return nil
			}
			b.pageC.SetValue("")
			b.pageC.Focus()
			b.newState(pageInputState)
			return textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.sort):
			b.sortC.Select(lo.IndexOf(listing.Sorts, b.listing.Sort))
			b.newState(sortState)
			return nil
		case bubblesKey.Matches(msg, b.keymap.display):
			b.listing.CycleDisplay()
			return tea.Batch(b.syncItems(), b.fetchPage())
		case bubblesKey.Matches(msg, b.keymap.compact):
			b.toggleCompact()
			return b.saveVisit()
		case bubblesKey.Matches(msg, b.keymap.search):
			b.searchC.SetValue(b.listing.Search)
			b.searchC.CursorEnd()
			b.searchC.Focus()
			b.searchSuggestion = mo.None[string]()
			b.newState(searchState)
			return textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.retry):
			return b.fetchPage()
		case bubblesKey.Matches(msg, b.keymap.rate):
			if anime, ok := b.selected(); ok {
				return b.openRequest(listing.RateAction(b.session, anime))
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.watchlist):
			if anime, ok := b.selected(); ok {
				return b.openRequest(listing.WatchlistAction(b.session, anime))
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if anime, ok := b.selected(); ok {
				return b.openDetails(anime.ID)
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.login):
			return b.openRequest(modal.Login())
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
			return nil
		}
	}

	if b.listing.Compact {
		b.tableC, cmd = b.tableC.Update(msg)
	} else {
		b.animesC, cmd = b.animesC.Update(msg)
	}
	return cmd
}

// toggleCompact switches layouts without refetching. The cursor follows.
func (b *statefulBubble) toggleCompact() {
	if b.listing.Compact {
		b.animesC.Select(b.tableC.Cursor())
	} else {
		b.tableC.SetCursor(b.animesC.Index())
	}
	b.listing.ToggleCompact()
}

// applySearch filters the listing. In client mode the search spans the catalog, so the first page is refetched.
func (b *statefulBubble) applySearch(q string) tea.Cmd {
	b.listing.Search = q

	cmds := []tea.Cmd{b.syncItems()}
	if b.service.Mode() == listing.ClientMode {
		b.listing.Page = 1
		cmds = append(cmds, b.fetchPage())
	}

	return tea.Batch(cmds...)
}

func (b *statefulBubble) openRequest(request modal.Request) tea.Cmd {
	b.request = mo.Some(request)

	if request.Body == modal.RequireLogin {
		b.tokenC.SetValue("")
		b.tokenC.Focus()
		b.newState(loginState)
		return textinput.Blink
	}

	b.newState(modalState)
	return nil
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			q := strings.TrimSpace(b.searchC.Value())
			b.searchC.Blur()
			b.previousState()

			cmds := []tea.Cmd{b.applySearch(q)}
			if q != "" {
				cmds = append(cmds, b.rememberQuery(q))
			}
			return tea.Batch(cmds...)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.searchC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.searchC.CursorEnd()
			return nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.searchC.Blur()
			b.previousState()
			return nil
		}
	}

	b.searchC, cmd = b.searchC.Update(msg)

	if value := b.searchC.Value(); value != "" {
		if suggestion, ok := query.Suggest(value).Get(); ok && suggestion != strings.ToLower(value) {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else if b.searchSuggestion.IsPresent() {
		b.searchSuggestion = mo.None[string]()
	}

	return cmd
}

func (b *statefulBubble) updatePageInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			page, err := strconv.Atoi(strings.TrimSpace(b.pageC.Value()))
			if err != nil {
				return ui.Notify(notify.Fail("Not a page number"))
			}

			b.pageC.Blur()
			b.previousState()

			if b.listing.GoTo(page) {
				return b.fetchPage()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.pageC.Blur()
			b.previousState()
			return nil
		}
	}

	b.pageC, cmd = b.pageC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSort(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.sortC.SelectedItem().(*listItem)
			b.previousState()
			if !ok {
				return nil
			}

			if b.listing.SetSort(item.internal.(listing.Sort)) {
				return b.fetchPage()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return nil
		}
	}

	b.sortC, cmd = b.sortC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateModal(msg tea.Msg) tea.Cmd {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case bubblesKey.Matches(msgKey, b.keymap.openURL):
		if request, ok := b.request.Get(); ok && request.Extra != nil {
			return b.openDetails(request.Extra.ID)
		}
	case bubblesKey.Matches(msgKey, b.keymap.back, b.keymap.quit):
		b.request = mo.None[modal.Request]()
		b.previousState()
	}

	return nil
}

func (b *statefulBubble) updateLogin(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if err := b.session.Login(b.tokenC.Value()); err != nil {
				return ui.Notify(notify.Fail(err.Error()))
			}

			b.tokenC.SetValue("")
			b.tokenC.Blur()
			b.request = mo.None[modal.Request]()
			b.previousState()

			cmds := []tea.Cmd{ui.Notify(notify.Ok(msgLoggedIn))}
			switch b.state {
			case genreState:
				cmds = append(cmds, b.fetchPage())
			case profileState:
				b.loading = true
				cmds = append(cmds, b.spinnerC.Tick, b.loadProfile())
			}
			return tea.Batch(cmds...)
		case bubblesKey.Matches(msg, b.keymap.back):
			b.tokenC.SetValue("")
			b.tokenC.Blur()
			b.request = mo.None[modal.Request]()
			b.previousState()
			return nil
		}
	}

	b.tokenC, cmd = b.tokenC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateProfile(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
				return nil
			}
			b.close()
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.nextField):
			b.focusProfile(b.profileFocus + 1)
			return nil
		case bubblesKey.Matches(msg, b.keymap.prevField):
			b.focusProfile(b.profileFocus - 1)
			return nil
		case b.profileFocus == focusGender && bubblesKey.Matches(msg, b.keymap.toggle):
			if !b.loading {
				b.cycleGender()
			}
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.loading {
				return nil
			}

			if err := b.form.SetBirthday(b.birthdayC.Value()); err != nil {
				return ui.Notify(notify.Fail(err.Error()))
			}

			if b.form.Gender == "" {
				b.cycleGender()
			}

			b.loading = true
			return tea.Batch(b.spinnerC.Tick, b.submitProfile())
		case b.profileFocus != focusBirthday && bubblesKey.Matches(msg, b.keymap.login):
			return b.openRequest(modal.Login())
		}
	}

	if b.profileFocus == focusBirthday {
		b.birthdayC, cmd = b.birthdayC.Update(msg)
	}
	return cmd
}

// focusProfile moves the focus between gender, birthday and the update button, wrapping around.
func (b *statefulBubble) focusProfile(focus int) {
	b.profileFocus = (focus + focusCount) % focusCount

	if b.profileFocus == focusBirthday {
		b.birthdayC.Focus()
		b.birthdayC.CursorEnd()
	} else {
		b.birthdayC.Blur()
	}
}

// cycleGender selects the next gender. Edits stay local until update.
func (b *statefulBubble) cycleGender() {
	next := profile.Genders[(lo.IndexOf(profile.Genders, b.form.Gender)+1)%len(profile.Genders)]
	if err := b.form.SetGender(next); err != nil {
		log.Error(err)
	}
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
				return nil
			}
			b.close()
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.close()
			return tea.Quit
		}
	}
	return nil
}
