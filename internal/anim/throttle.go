package anim

import (
	"time"

	"golang.org/x/time/rate"
)

// MinRepaintInterval caps paints at roughly 60 per second.
const MinRepaintInterval = 16 * time.Millisecond

// Throttle coalesces redraw requests. A request inside the interval after
// the last paint schedules one deferred paint; further requests before it
// fires are absorbed.
type Throttle struct {
	driver Driver
	paint  func()
	lim    *rate.Limiter

	gen     uint64
	pending bool
	res     *rate.Reservation
}

// NewThrottle returns a throttle that calls paint at most once per
// MinRepaintInterval.
func NewThrottle(d Driver, paint func()) *Throttle {
	return &Throttle{
		driver: d,
		paint:  paint,
		lim:    rate.NewLimiter(rate.Every(MinRepaintInterval), 1),
	}
}

// Pending reports whether a deferred paint is scheduled.
func (t *Throttle) Pending() bool { return t.pending }

// Request asks for a paint at now. It paints immediately when the interval
// has elapsed, otherwise defers.
func (t *Throttle) Request(now time.Time) {
	if t.pending {
		return
	}
	r := t.lim.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if !r.OK() || delay <= 0 {
		t.paint()
		return
	}
	t.pending = true
	t.res = r
	t.gen++
	t.driver.After(delay, Token{Kind: RepaintToken, Gen: t.gen})
}

// OnTimer handles a delivered repaint token and reports whether it painted.
func (t *Throttle) OnTimer(tok Token, now time.Time) bool {
	if tok.Kind != RepaintToken || tok.Gen != t.gen || !t.pending {
		return false
	}
	t.pending = false
	t.res = nil
	t.restart(now)
	t.paint()
	return true
}

// restart starts the limiter's timeline at a paint that happened at now,
// which is later than the reserved slot when the driver delivers late.
func (t *Throttle) restart(now time.Time) {
	t.lim = rate.NewLimiter(rate.Every(MinRepaintInterval), 1)
	t.lim.AllowN(now, 1)
}

// Cancel drops a pending paint and returns its reserved slot.
func (t *Throttle) Cancel(now time.Time) {
	if !t.pending {
		return
	}
	t.pending = false
	t.gen++
	if t.res != nil {
		t.res.CancelAt(now)
		t.res = nil
	}
}
