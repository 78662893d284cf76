package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-starmap/internal/anim"
)

// FrameInterval is the terminal's stand-in for a display frame.
const FrameInterval = 16 * time.Millisecond

// TokenMsg carries a scheduler token back into the update loop.
type TokenMsg struct {
	Token anim.Token
}

// Driver turns scheduler requests into tea.Tick commands. Requests made
// while handling a message are collected and returned by Drain.
type Driver struct {
	pending []tea.Cmd
}

// NewDriver returns an empty driver.
func NewDriver() *Driver {
	return &Driver{}
}

func (d *Driver) RequestFrame(tok anim.Token) {
	d.After(FrameInterval, tok)
}

func (d *Driver) After(delay time.Duration, tok anim.Token) {
	d.pending = append(d.pending, tea.Tick(delay, func(time.Time) tea.Msg {
		return TokenMsg{Token: tok}
	}))
}

// Pending reports how many commands are waiting to be drained.
func (d *Driver) Pending() int { return len(d.pending) }

// Drain returns the collected commands and clears them.
func (d *Driver) Drain() []tea.Cmd {
	cmds := d.pending
	d.pending = nil
	return cmds
}
