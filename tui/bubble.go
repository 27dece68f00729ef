// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/anitrack-cli/anitrack/internal/ui"
	"github.com/anitrack-cli/anitrack/key"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/modal"
	"github.com/anitrack-cli/anitrack/notify"
	"github.com/anitrack-cli/anitrack/profile"
	"github.com/anitrack-cli/anitrack/session"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/anitrack-cli/anitrack/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// profile form focus
const (
	focusGender = iota
	focusBirthday
	focusUpdate
	focusCount
)

// statefulBubble encapsulates the application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	searchC   textinput.Model
	pageC     textinput.Model
	tokenC    textinput.Model
	birthdayC textinput.Model
	animesC   list.Model
	sortC     list.Model
	tableC    table.Model
	helpC     help.Model

	ctx    context.Context
	cancel context.CancelFunc

	service *listing.Service
	session *session.Session
	form    *profile.Form
	webURL  string

	listing      *listing.Listing
	request      mo.Option[modal.Request]
	profileFocus int

	notifications chan notify.Notification
	notifier      *ui.Model

	lastError        error
	width, height    int
	searchSuggestion mo.Option[string]

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// transient states are never returned to
	if !lo.Contains([]state{
		loadingState,
		errorState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if s, ok := b.statesHistory.Pop(); ok {
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	// header and status lines sit above the list
	listHeight := height - yy - 2

	b.animesC.SetSize(listWidth, listHeight)
	b.animesC.Help.Width = listWidth

	b.sortC.SetSize(listWidth, listHeight)
	b.sortC.Help.Width = listWidth

	b.tableC.SetColumns(columns(listWidth))
	b.tableC.SetWidth(listWidth)
	b.tableC.SetHeight(listHeight - 2)

	b.searchC.Width = listWidth
	b.pageC.Width = listWidth
	b.tokenC.Width = listWidth
	b.birthdayC.Width = listWidth

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	ctx, cancel := context.WithCancel(context.Background())

	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		ctx:    ctx,
		cancel: cancel,

		service: options.Service,
		session: options.Session,
		webURL:  options.WebURL,

		notifications: make(chan notify.Notification, 8),
		notifier:      &ui.Model{},

		options: options,
	}

	bubble.form = profile.NewForm(options.Backend, options.Session, notify.SinkFunc(bubble.push))

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
		Delegate   mo.Option[list.ItemDelegate]
	}

	makeList := func(title string, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = false
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))

		listC := list.New([]list.Item{}, options.Delegate.OrElse(delegate), 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)
		listC.SetShowTitle(false)
		listC.SetShowHelp(false)
		listC.SetFilteringEnabled(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.searchC = textinput.New()
	bubble.searchC.Placeholder = "Search titles"
	bubble.searchC.CharLimit = 60
	bubble.searchC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.pageC = textinput.New()
	bubble.pageC.Placeholder = "Page number"
	bubble.pageC.CharLimit = 6
	bubble.pageC.Prompt = "Page: "

	bubble.tokenC = textinput.New()
	bubble.tokenC.Placeholder = "Paste your token"
	bubble.tokenC.EchoMode = textinput.EchoPassword
	bubble.tokenC.EchoCharacter = '•'
	bubble.tokenC.Prompt = "Token: "

	bubble.birthdayC = textinput.New()
	bubble.birthdayC.Placeholder = "YYYY-MM-DD"
	bubble.birthdayC.CharLimit = len(profile.DateLayout)
	bubble.birthdayC.Prompt = ""

	bubble.animesC = makeList("Anime", &listOptions{
		Delegate: mo.Some[list.ItemDelegate](cardDelegate{
			synopsisLines: lo.Max([]int{viper.GetInt(key.TUISynopsisLines), 0}),
			spacing:       viper.GetInt(key.TUIItemSpacing),
		}),
	})

	bubble.sortC = makeList("Sort By", &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
		),
	})
	bubble.sortC.SetShowTitle(true)
	bubble.sortC.SetItems(lo.Map(listing.Sorts, func(s listing.Sort, _ int) list.Item {
		return &listItem{internal: s}
	}))

	bubble.tableC = table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithKeyMap(bubble.keymap.forTable()),
	)
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(style.BorderColor).
		BorderBottom(true).
		Bold(true)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(style.Base).
		Background(style.AccentColor).
		Bold(false)
	bubble.tableC.SetStyles(tableStyles)

	bubble.listing = listing.New(options.GenreID)
	bubble.listing.Sort = options.Sort
	bubble.listing.Compact = options.Compact
	if options.Page > 0 {
		bubble.listing.Page = options.Page
	}
	bubble.listing.Display = options.Display

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}

// push forwards a notification from outside the event loop. It never blocks.
func (b *statefulBubble) push(n notify.Notification) {
	select {
	case b.notifications <- n:
	default:
	}
}

// genreTitle is the listing header.
func (b *statefulBubble) genreTitle() string {
	if b.listing.Name == "" {
		return fmt.Sprintf("Genre #%d", b.listing.GenreID)
	}
	return b.listing.Header()
}
