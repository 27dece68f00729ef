package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the first loads for the opened view and the notification listener.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{b.waitForNotification(), b.spinnerC.Tick}

	if b.options.Profile {
		cmds = append(cmds, b.loadProfile())
	} else {
		cmds = append(cmds, b.loadName(), b.fetchPage())
	}

	return tea.Batch(cmds...)
}

// close cancels everything in flight.
func (b *statefulBubble) close() {
	if b.service != nil {
		b.service.Close()
	}
	b.cancel()
}
