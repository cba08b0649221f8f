// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen names the Model
// whose loop scheduled it; other models drop it.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickGen hands every Model its own loop generation, so a tick still in
// flight from a game that was left cannot drive the next one.
var tickGen atomic.Uint64

// tickInterval converts a tick rate to the time between ticks.
// Rates below one fall back to the default rate.
func tickInterval(tickRate int) time.Duration {
	if tickRate < 1 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd returns a Bubble Tea command that sends one tick message for
// loop gen after the interval for tickRate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
