package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/icon"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/style"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

// listItem wraps a value shown in a list.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case api.Anime:
		return e.Name
	case listing.Sort:
		return e.String()
	default:
		return fmt.Sprint(e)
	}
}

func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case api.Anime:
		return score(e) + "  " + e.WatchStatus
	default:
		return ""
	}
}

func (t *listItem) FilterValue() string {
	return t.Title()
}

func score(anime api.Anime) string {
	return icon.Get(icon.Star) + anime.ScoreString()
}

// cardDelegate renders an anime as a card: name, score with status, and a few lines of synopsis.
type cardDelegate struct {
	synopsisLines int
	spacing       int
}

var (
	cardStyle         = lipgloss.NewStyle().Padding(0, 0, 0, 2)
	selectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(style.AccentColor).
				Padding(0, 0, 0, 1)
)

func (d cardDelegate) Height() int {
	return 2 + d.synopsisLines
}

func (d cardDelegate) Spacing() int {
	return d.spacing
}

func (d cardDelegate) Update(tea.Msg, *list.Model) tea.Cmd {
	return nil
}

func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(*listItem)
	if !ok {
		return
	}

	anime, ok := it.internal.(api.Anime)
	if !ok {
		return
	}

	width := m.Width() - cardStyle.GetHorizontalFrameSize()
	if width < 10 {
		width = 10
	}

	selected := index == m.Index()

	name := style.Truncate(width)(anime.Name)
	if selected {
		name = style.New().Bold(true).Foreground(style.AccentColor).Render(name)
	}

	meta := score(anime)
	if status := style.Status(anime.WatchStatus); status != "" {
		meta += "  " + status
	}

	lines := append([]string{name, meta}, synopsis(anime.Synopsis, width, d.synopsisLines)...)
	body := strings.Join(lines, "\n")

	if selected {
		_, _ = fmt.Fprint(w, selectedCardStyle.Render(body))
	} else {
		_, _ = fmt.Fprint(w, cardStyle.Render(body))
	}
}

// synopsis wraps text to width and returns exactly n lines, the last one ellipsized when cut.
func synopsis(text string, width, n int) []string {
	if n <= 0 {
		return nil
	}

	text = strings.Join(strings.Fields(text), " ")
	wrapped := strings.Split(wrap.String(text, width), "\n")

	lines := make([]string, n)
	for i := 0; i < n && i < len(wrapped); i++ {
		lines[i] = wrapped[i]
	}

	if len(wrapped) > n {
		last := []rune(lines[n-1])
		if len(last) >= width {
			last = last[:width-1]
		}
		lines[n-1] = string(last) + "…"
	}

	for i := range lines {
		lines[i] = style.Faint(lines[i])
	}

	return lines
}

// columns of the compact table for a given width.
func columns(width int) []table.Column {
	const scoreWidth, statusWidth = 8, 16

	titleWidth := width - scoreWidth - statusWidth - 6
	if titleWidth < 10 {
		titleWidth = 10
	}

	return []table.Column{
		{Title: "Title", Width: titleWidth},
		{Title: "Score", Width: scoreWidth},
		{Title: "Watch Status", Width: statusWidth},
	}
}

func rows(animes []api.Anime) []table.Row {
	out := make([]table.Row, len(animes))
	for i, anime := range animes {
		out[i] = table.Row{anime.Name, "⭐" + anime.ScoreString(), anime.WatchStatus}
	}
	return out
}
