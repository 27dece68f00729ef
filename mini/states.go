package mini

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/icon"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/modal"
	"github.com/anitrack-cli/anitrack/notify"
	"github.com/anitrack-cli/anitrack/profile"
	"github.com/anitrack-cli/anitrack/query"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/samber/lo"
)

type state int

const (
	genreState state = iota + 1
	animeState
	pageInputState
	searchState
	loginState
	profileLoadState
	profileState
	quitState
)

// bind is a menu entry that is not an item.
type bind struct {
	name string
}

func (b *bind) String() string {
	return b.name
}

var (
	next        = &bind{"Next page"}
	prev        = &bind{"Previous page"}
	goTo        = &bind{"Go to page"}
	changeSort  = &bind{"Change sort"}
	display     = &bind{"Cycle display"}
	search      = &bind{"Search"}
	clearSearch = &bind{"Clear search"}
	reload      = &bind{"Retry"}
	back        = &bind{"Back"}
	quit        = &bind{"Quit"}

	rate      = &bind{"Add rating"}
	watchlist = &bind{"Add to watchlist"}
	details   = &bind{"Open details"}

	gender         = &bind{"Change gender"}
	birthday       = &bind{"Change birthday"}
	update         = &bind{"Update"}
	changePassword = &bind{"Change password"}
	deleteAccount  = &bind{"Delete account"}
)

// menu asks to pick one of items followed by binds.
// It returns the chosen bind, or nil and the index of the chosen item.
func (m *mini) menu(message string, items []string, binds ...*bind) (*bind, int, error) {
	options := make([]string, 0, len(items)+len(binds))
	for i, item := range items {
		options = append(options, fmt.Sprintf("%d. %s", i+1, truncate(item)))
	}
	for _, b := range binds {
		options = append(options, b.name)
	}

	var answer int
	err := m.ask(&survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}, &answer)

	if errors.Is(err, terminal.InterruptErr) {
		return quit, -1, nil
	}
	if err != nil {
		return nil, -1, err
	}

	if answer < len(items) {
		return nil, answer, nil
	}

	return binds[answer-len(items)], -1, nil
}

func (m *mini) title(s string) {
	fmt.Fprintln(m.out, style.Title(s))
}

func truncate(s string) string {
	if truncateAt > 8 && len([]rune(s)) > truncateAt-8 {
		return string([]rune(s)[:truncateAt-9]) + "…"
	}
	return s
}

func itemLine(anime api.Anime) string {
	line := fmt.Sprintf("%s  %s%s", anime.Name, icon.Get(icon.Star), anime.ScoreString())
	if anime.WatchStatus != "" {
		line += "  [" + anime.WatchStatus + "]"
	}
	return line
}

func (m *mini) load() {
	result, err := m.service.Run(m.ctx, m.listing.Query())
	if err != nil {
		m.listing.Fail()
		return
	}

	if result.LoggedOut {
		m.notify(notify.Fail("Session expired, showing results without login"))
	}

	m.listing.Apply(result)
}

func (m *mini) handleGenreState() error {
	l := m.listing

	if l.Name == "" {
		name, err := m.service.Name(m.ctx, l.GenreID)
		if err != nil {
			return err
		}
		l.Name = name
	}

	if m.stale {
		m.load()
		m.stale = false
	}

	m.title(l.Header())
	fmt.Fprintln(m.out, style.Faint(fmt.Sprintf(
		"%s · Display %s · Page %d of %d",
		l.Sort.Label(), l.Display, l.Page, l.TotalPages(),
	)))
	if l.Failed {
		fmt.Fprintln(m.out, style.Faint("failed to load"))
	}

	var binds []*bind
	if l.CanNext() {
		binds = append(binds, next)
	}
	if l.CanPrev() {
		binds = append(binds, prev)
	}
	if l.TotalPages() > 1 {
		binds = append(binds, goTo)
	}
	binds = append(binds, changeSort, display, search)
	if l.Search != "" {
		binds = append(binds, clearSearch)
	}
	if l.Failed {
		binds = append(binds, reload)
	}
	binds = append(binds, quit)

	visible := l.Visible()
	b, index, err := m.menu("Select an anime", lo.Map(visible, func(a api.Anime, _ int) string {
		return itemLine(a)
	}), binds...)
	if err != nil {
		return err
	}

	switch b {
	case nil:
		m.selected = visible[index]
		m.newState(animeState)
	case next:
		m.stale = l.Next()
	case prev:
		m.stale = l.Prev()
	case goTo:
		m.newState(pageInputState)
	case changeSort:
		var answer string
		if err := m.ask(&survey.Select{
			Message: "Sort by",
			Options: listing.SortNames(),
			Default: l.Sort.String(),
		}, &answer); err != nil {
			return err
		}
		s, err := listing.ParseSort(answer)
		if err != nil {
			return err
		}
		m.stale = l.SetSort(s)
	case display:
		l.CycleDisplay()
		m.stale = true
	case search:
		m.newState(searchState)
	case clearSearch:
		l.Search = ""
		m.stale = m.service.Mode() == listing.ClientMode
	case reload:
		m.stale = true
	case quit:
		m.setState(quitState)
	}

	return nil
}

func (m *mini) handlePageInputState() error {
	total := m.listing.TotalPages()

	var answer string
	err := m.ask(&survey.Input{
		Message: fmt.Sprintf("Page (1-%d)", total),
	}, &answer, survey.WithValidator(func(ans any) error {
		if _, err := strconv.Atoi(strings.TrimSpace(ans.(string))); err != nil {
			return errors.New("enter a number")
		}
		return nil
	}))
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(strings.TrimSpace(answer))
	m.stale = m.listing.GoTo(page)
	m.previousState()
	return nil
}

func (m *mini) handleSearchState() error {
	var answer string
	err := m.ask(&survey.Input{
		Message: "Search titles",
		Suggest: query.SuggestMany,
	}, &answer)
	if err != nil {
		return err
	}

	answer = strings.TrimSpace(answer)
	if answer != "" {
		if err := query.Remember(answer, 1); err != nil {
			log.Warn(err)
		}
	}

	m.listing.Search = answer
	if m.service.Mode() == listing.ClientMode {
		m.listing.Page = 1
		m.stale = true
	}

	m.previousState()
	return nil
}

func (m *mini) handleAnimeState() error {
	anime := m.selected
	m.title(anime.Name)
	fmt.Fprintln(m.out, style.Faint(fmt.Sprintf("%s%s  %s", icon.Get(icon.Star), anime.ScoreString(), anime.WatchStatus)))
	if anime.Synopsis != "" {
		fmt.Fprintln(m.out, truncate(anime.Synopsis))
	}

	b, _, err := m.menu("Action", nil, rate, watchlist, details, back, quit)
	if err != nil {
		return err
	}

	switch b {
	case rate:
		return m.present(listing.RateAction(m.session, anime))
	case watchlist:
		return m.present(listing.WatchlistAction(m.session, anime))
	case details:
		if err := m.open(listing.DetailsURL(m.webURL, anime.ID)); err != nil {
			m.notify(notify.Fail(err.Error()))
		}
	case back:
		m.previousState()
	case quit:
		m.setState(quitState)
	}

	return nil
}

// present shows a dialog request. Rating and watchlist dialogs belong to the web front end,
// so they are described together with the link that opens them.
func (m *mini) present(req modal.Request) error {
	if req.Body == modal.RequireLogin {
		m.notify(notify.Fail(req.Title))
		m.newState(loginState)
		return nil
	}

	m.title(req.Title)
	if req.Extra != nil {
		state := req.Extra.State
		if state == "" {
			state = "none"
		}
		fmt.Fprintf(m.out, "%s (current: %s)\n", req.Extra.Name, state)
		fmt.Fprintln(m.out, style.Faint(listing.DetailsURL(m.webURL, req.Extra.ID)))
	}

	return nil
}

func (m *mini) handleLoginState() error {
	var token string
	err := m.ask(&survey.Password{
		Message: "Backend token (empty to cancel)",
	}, &token)
	if err != nil {
		return err
	}

	if strings.TrimSpace(token) != "" {
		if err := m.session.Login(token); err != nil {
			return err
		}
		m.notify(notify.Ok("Logged in"))
		m.stale = m.listing != nil
	}

	m.previousState()
	return nil
}

func (m *mini) handleProfileLoadState() error {
	if err := m.form.Load(m.ctx); err != nil {
		return err
	}

	m.setState(profileState)
	return nil
}

func (m *mini) handleProfileState() error {
	f := m.form

	m.title("Profile Settings")
	fmt.Fprintf(m.out, "Username  %s\nGender    %s\nBirthday  %s\n", f.Username, f.Gender, f.Birthday)

	b, _, err := m.menu("Edit", nil, gender, birthday, update, changePassword, deleteAccount, quit)
	if err != nil {
		return err
	}

	switch b {
	case gender:
		var answer string
		if err := m.ask(&survey.Select{
			Message: "Gender",
			Options: profile.Genders,
			Default: lo.Ternary(lo.Contains(profile.Genders, f.Gender), f.Gender, profile.Male),
		}, &answer); err != nil {
			return err
		}
		return f.SetGender(answer)
	case birthday:
		var answer string
		if err := m.ask(&survey.Input{
			Message: "Birthday (YYYY-MM-DD)",
			Default: f.Birthday,
		}, &answer, survey.WithValidator(func(ans any) error {
			return profile.ValidateBirthday(ans.(string))
		})); err != nil {
			return err
		}
		return f.SetBirthday(answer)
	case update:
		if err := f.Update(m.ctx); err != nil {
			log.Error(err)
		}
	case changePassword, deleteAccount:
		fmt.Fprintln(m.out, style.Faint("Not available from the terminal yet"))
	case quit:
		m.setState(quitState)
	}

	return nil
}
