// Package anim schedules the player-position pulse and caps repaint rate.
//
// Neither the pulse nor the throttle owns a timer. They ask a Driver for
// future callbacks, identified by a Token, and the host loop hands the token
// back when the callback is due. Cancelling bumps a generation counter so
// late deliveries are dropped.
package anim

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TokenKind distinguishes callbacks requested by the pulse and the throttle.
type TokenKind int

const (
	FrameToken TokenKind = iota + 1
	RepaintToken
)

func (k TokenKind) String() string {
	switch k {
	case FrameToken:
		return "frame"
	case RepaintToken:
		return "repaint"
	default:
		return "unknown"
	}
}

// Token identifies one requested callback.
type Token struct {
	Kind TokenKind
	Gen  uint64
}

// Driver delivers tokens back to the owner on the host's event loop.
type Driver interface {
	// RequestFrame asks for delivery on the next display frame.
	RequestFrame(tok Token)
	// After asks for delivery once d has elapsed.
	After(d time.Duration, tok Token)
}
