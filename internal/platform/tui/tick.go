// Package tui provides the Bubble Tea front end for the dessert clicker.
// It handles the terminal UI loop, input mapping and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dessert-clicker/internal/clicker"
)

// stateMsg carries a state published by the controller.
type stateMsg clicker.GameState

// waitForState blocks on the watch channel and delivers the next state.
// Returns nil once the channel is closed.
func waitForState(ch <-chan clicker.GameState) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

// clearNoticeMsg expires the notice with the given sequence number.
type clearNoticeMsg int

// clearNoticeAfter returns a command that expires a notice after d.
func clearNoticeAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearNoticeMsg(seq)
	})
}
