package tui

import (
	"fmt"
	"strings"

	"github.com/anitrack-cli/anitrack/color"
	"github.com/anitrack-cli/anitrack/icon"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/profile"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
	focusedStyle          = lipgloss.NewStyle().Foreground(style.AccentColor).Bold(true)
	buttonStyle           = lipgloss.NewStyle().Padding(0, 2).Foreground(style.Base).Background(style.Overlay)
	focusedButtonStyle    = buttonStyle.Background(style.AccentColor)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case genreState:
		output = b.viewGenre()
	case searchState:
		output = b.viewSearch()
	case pageInputState:
		output = b.viewPageInput()
	case sortState:
		output = b.viewSort()
	case modalState:
		output = b.viewModal()
	case loginState:
		output = b.viewLogin()
	case profileState:
		output = b.viewProfile()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " Fetching profile...",
		},
	)
}

// genreHeader renders the title line and the status line of the listing.
func (b *statefulBubble) genreHeader() string {
	l := b.listing

	title := style.Title(b.genreTitle()) + " " +
		style.Tag(style.Base, style.Lavender)(l.Sort.Label()) + " " +
		style.Tag(style.Base, style.Peach)(l.Display.String())

	var status []string
	if total := l.TotalPages(); total > 0 {
		status = append(status, fmt.Sprintf("Page %d of %d", l.Page, total))
	} else {
		status = append(status, "No pages")
	}

	if l.Search != "" {
		status = append(status, style.Fg(color.Purple)("/"+l.Search))
	}

	if b.loading {
		status = append(status, b.spinnerC.View()+"Loading")
	} else if l.Failed {
		status = append(status, icon.Get(icon.Fail)+" failed to load, press R to retry")
	}

	if !b.session.LoggedIn() {
		status = append(status, "not logged in")
	}

	return title + "\n" + style.Faint(strings.Join(status, " • "))
}

func (b *statefulBubble) viewGenre() string {
	var body string
	if b.listing.Compact {
		body = b.tableC.View()
	} else {
		body = b.animesC.View()
	}

	if len(b.listing.Visible()) == 0 && !b.loading {
		body = style.Faint("No anime to show")
	}

	content := b.genreHeader() + "\n\n" + body

	if h := lipgloss.Height(content); b.height > h+1 {
		content += strings.Repeat("\n", b.height-h-1)
	}

	return listExtraPaddingStyle.Render(content + "\n" + b.helpC.View(b.keymap))
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Titles"),
		"",
		b.searchC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("%s %s", icon.Get(icon.Search), suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPageInput() string {
	return b.renderLines(true, []string{
		style.Title("Go To Page"),
		"",
		style.Faint(fmt.Sprintf("1 - %d", b.listing.TotalPages())),
		"",
		b.pageC.View(),
	})
}

func (b *statefulBubble) viewSort() string {
	return listExtraPaddingStyle.Render(b.sortC.View())
}

func (b *statefulBubble) viewModal() string {
	request, ok := b.request.Get()
	if !ok {
		return b.renderLines(true, nil)
	}

	lines := []string{
		style.Title(request.Title),
		"",
	}

	if extra := request.Extra; extra != nil {
		lines = append(lines,
			style.Bold(extra.Name),
			style.Faint(fmt.Sprintf("#%d", extra.ID)),
		)

		if status := style.Status(extra.State); status != "" {
			lines = append(lines, "", status)
		}

		lines = append(lines,
			"",
			style.Faint(wrap.String(
				fmt.Sprintf("%s is handled on the web. Press o to open %s", request.Body, listing.DetailsURL(b.webURL, extra.ID)),
				b.width,
			)),
		)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewLogin() string {
	title := "Login"
	if request, ok := b.request.Get(); ok {
		title = request.Title
	}

	return b.renderLines(true, []string{
		style.Title(title),
		"",
		style.Faint("The token is stored in the system keyring."),
		"",
		b.tokenC.View(),
	})
}

func (b *statefulBubble) viewProfile() string {
	label := func(focus int, text string) string {
		if b.profileFocus == focus {
			return focusedStyle.Render("> " + text)
		}
		return "  " + text
	}

	genders := make([]string, len(profile.Genders))
	for i, g := range profile.Genders {
		if g == b.form.Gender {
			genders[i] = style.Accent("(•) " + g)
		} else {
			genders[i] = style.Faint("( ) " + g)
		}
	}

	button := buttonStyle.Render("Update")
	if b.profileFocus == focusUpdate {
		button = focusedButtonStyle.Render("Update")
	}
	if b.loading {
		button += " " + b.spinnerC.View()
	}

	username := b.form.Username
	if username == "" {
		username = style.Faint("unknown")
	}

	lines := []string{
		style.Title("Profile"),
		"",
		"  Username  " + username,
		"",
		label(focusGender, "Gender    ") + strings.Join(genders, "  "),
		label(focusBirthday, "Birthday  ") + b.birthdayC.View(),
		"",
		"  " + button,
		"",
	}

	placeholder := func(title string, fields []string) []string {
		out := []string{style.Faint(style.Bold(title))}
		for _, field := range fields {
			out = append(out, style.Faint("  "+field+"  ________"))
		}
		return append(out, "")
	}

	lines = append(lines, placeholder("Change Password", profile.PasswordFields)...)
	lines = append(lines, placeholder("Delete Account", profile.DeleteFields)...)

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(b.lastError.Error())
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
