// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, and result persistence.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one logic step of the round identified by Gen.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// BlinkMsg triggers one particle blink step of the round identified by Gen.
type BlinkMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd schedules the next logic tick after interval.
// The interval is read from the game on every re-arm so a level-up
// changes the cadence right away.
func tickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// blinkCmd schedules the next blink step after interval.
func blinkCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return BlinkMsg{Gen: gen, Time: t}
	})
}
