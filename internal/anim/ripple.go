package anim

import "time"

const (
	RippleLifetime = 750 * time.Millisecond
	RippleMinSize  = 5.0
	RippleMaxSize  = 30.0
)

// Ripple is one expanding ring around the player position. Size is in
// pixels; Opacity is in [0, 1].
type Ripple struct {
	Start   time.Time
	Size    float64
	Opacity float64
}

// NewRipple returns a ripple born at now.
func NewRipple(now time.Time) Ripple {
	return Ripple{Start: now, Size: RippleMinSize, Opacity: 1}
}

// Advance returns the ripple as it looks at now. alive is false once the
// ripple is older than RippleLifetime.
func (r Ripple) Advance(now time.Time) (next Ripple, alive bool) {
	age := now.Sub(r.Start)
	if age < 0 {
		age = 0
	}
	if age > RippleLifetime {
		return r, false
	}
	progress := float64(age) / float64(RippleLifetime)
	r.Size = RippleMinSize + progress*(RippleMaxSize-RippleMinSize)
	r.Opacity = 1 - progress
	return r, true
}
