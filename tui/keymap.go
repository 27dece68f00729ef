package tui

import (
	"github.com/anitrack-cli/anitrack/color"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
)

// statefulKeymap holds every binding and reports the ones relevant to the current state.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	confirm, back,
	up, down, top, bottom,
	nextPage, prevPage, goTo,
	sort, display, compact, search, retry,
	rate, watchlist, openURL, login,
	acceptSearchSuggestion,
	nextField, prevField, toggle,
	showHelp key.Binding

	disabled key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "bottom"),
		),
		nextPage: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→", "next page"),
		),
		prevPage: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←", "prev page"),
		),
		goTo: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to page"),
		),
		sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		display: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "display"),
		),
		compact: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "compact"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		retry: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		rate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp(style.Fg(color.Orange)("r"), style.Fg(color.Orange)("rate")),
		),
		watchlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp(style.Fg(color.Orange)("w"), style.Fg(color.Orange)("watchlist")),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open details"),
		),
		login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "login"),
		),
		acceptSearchSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		nextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		prevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		toggle: key.NewBinding(
			key.WithKeys("left", "right", " "),
			key.WithHelp("←/→", "change"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		disabled: key.NewBinding(key.WithDisabled()),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit))
	case genreState:
		return h(k.rate, k.watchlist, k.prevPage, k.nextPage, k.sort, k.display, k.showHelp),
			h(k.rate, k.watchlist, k.openURL, k.prevPage, k.nextPage, k.goTo, k.sort, k.display, k.compact, k.search, k.retry, k.login, k.quit)
	case searchState:
		return to2(h(k.confirm, k.acceptSearchSuggestion, k.back))
	case pageInputState:
		return to2(h(withDescription(k.confirm, "go"), k.back))
	case sortState:
		return to2(h(withDescription(k.confirm, "sort"), k.back))
	case modalState:
		return to2(h(k.openURL, k.back))
	case loginState:
		return to2(h(withDescription(k.confirm, "login"), k.back))
	case profileState:
		return to2(h(k.nextField, k.prevField, k.toggle, withDescription(k.confirm, "update"), k.login, k.back))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

// forList leaves paging to the listing itself, so the list's own page keys are disabled.
func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.disabled,
		PrevPage:             k.disabled,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		Filter:               k.disabled,
		ClearFilter:          k.disabled,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.disabled,
		ForceQuit:            k.disabled,
	}
}

func (k *statefulKeymap) forTable() table.KeyMap {
	return table.KeyMap{
		LineUp:       k.up,
		LineDown:     k.down,
		PageUp:       k.disabled,
		PageDown:     k.disabled,
		HalfPageUp:   k.disabled,
		HalfPageDown: k.disabled,
		GotoTop:      k.top,
		GotoBottom:   k.bottom,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
