// Package ui provides state and rendering for ephemeral terminal notifications.
package ui

import (
	"strings"
	"time"

	"github.com/anitrack-cli/anitrack/notify"
	"github.com/anitrack-cli/anitrack/style"
	tea "github.com/charmbracelet/bubbletea"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model holds the notification currently shown.
type Model struct {
	notification notify.Notification
	shown        bool
	notifiedAt   time.Time
}

// ClearNotificationMsg resets the notification. It is ignored if a newer one arrived meanwhile.
type ClearNotificationMsg struct {
	at time.Time
}

// Notify returns a tea.Cmd that shows n.
func Notify(n notify.Notification) tea.Cmd {
	return func() tea.Msg {
		return n
	}
}

// ClearNotification returns a delayed tea.Cmd that clears the notification shown at at.
func ClearNotification(at time.Time) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Current returns the notification on screen, if any.
func (m *Model) Current() (notify.Notification, bool) {
	return m.notification, m.shown
}

// Update processes incoming messages. A plain string is a neutral notification.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notify.Notification:
		return m.show(msg)
	case string:
		return m.show(notify.Ok(msg))
	case ClearNotificationMsg:
		if msg.at.Equal(m.notifiedAt) {
			m.shown = false
		}
		return nil
	}
	return nil
}

func (m *Model) show(n notify.Notification) tea.Cmd {
	m.notification = n
	m.shown = true
	m.notifiedAt = time.Now()
	return ClearNotification(m.notifiedAt)
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if !m.shown {
		return mainContent
	}

	render := style.Success
	if m.notification.Status == notify.Failure {
		render = style.Failure
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + render(m.notification.Message)
	return strings.Join(lines, "\n")
}
