package anim

import (
	"math"
	"time"
)

const (
	// PulseInterval is the minimum spacing between pulse ticks.
	PulseInterval = 50 * time.Millisecond
	// PhaseStep is how far the phase advances per tick, in radians.
	PhaseStep = 0.05
)

// Pulse drives the ripple animation around the player position.
//
// The loop is scheduled only while the pulse is started and not paused.
// Pausing cancels the pending frame but keeps ripple data so the last state
// can be redrawn on resume.
type Pulse struct {
	driver Driver

	gen     uint64
	active  bool
	paused  bool
	last    time.Time
	phase   float64
	ripples []Ripple
}

// NewPulse returns a stopped pulse.
func NewPulse(d Driver) *Pulse {
	return &Pulse{driver: d}
}

// Start (re)starts the animation from a clean state.
func (p *Pulse) Start() {
	p.active = true
	p.ripples = nil
	p.phase = 0
	p.last = time.Time{}
	p.gen++
	if !p.paused {
		p.schedule()
	}
}

// Stop cancels the animation and drops all ripples.
func (p *Pulse) Stop() {
	p.active = false
	p.ripples = nil
	p.gen++
}

// Pause cancels the pending frame. It reports false if already paused.
func (p *Pulse) Pause() bool {
	if p.paused {
		return false
	}
	p.paused = true
	p.gen++
	return true
}

// Resume re-arms the loop if the pulse is started. It reports false if the
// pulse was not paused.
func (p *Pulse) Resume() bool {
	if !p.paused {
		return false
	}
	p.paused = false
	p.gen++
	if p.active {
		p.schedule()
	}
	return true
}

// Running reports whether a frame callback is currently expected.
func (p *Pulse) Running() bool { return p.active && !p.paused }

// Active reports whether the pulse has been started and not stopped.
func (p *Pulse) Active() bool { return p.active }

// Paused reports whether the pulse is paused.
func (p *Pulse) Paused() bool { return p.paused }

// Phase returns the current phase in [0, 2π).
func (p *Pulse) Phase() float64 { return p.phase }

func (p *Pulse) schedule() {
	p.driver.RequestFrame(Token{Kind: FrameToken, Gen: p.gen})
}

// OnFrame handles a delivered frame token. It reports whether the pulse
// ticked, in which case the caller should request a redraw. Stale tokens
// and frames arriving sooner than PulseInterval after the last tick are
// ignored.
func (p *Pulse) OnFrame(tok Token, now time.Time) bool {
	if tok.Kind != FrameToken || tok.Gen != p.gen || !p.Running() {
		return false
	}
	p.schedule()

	if !p.last.IsZero() && now.Sub(p.last) < PulseInterval {
		return false
	}
	p.last = now
	p.tick(now)
	return true
}

func (p *Pulse) tick(now time.Time) {
	if math.Mod(p.phase, 2*math.Pi) < PhaseStep {
		p.ripples = append(p.ripples, NewRipple(now))
	}
	p.phase = math.Mod(p.phase+PhaseStep, 2*math.Pi)

	kept := p.ripples[:0]
	for _, r := range p.ripples {
		if next, alive := r.Advance(now); alive {
			kept = append(kept, next)
		}
	}
	p.ripples = kept
}

// Current returns a copy of the ripples as of the last tick. Paints use it
// so the picture only moves when the pulse ticks.
func (p *Pulse) Current() []Ripple {
	out := make([]Ripple, len(p.ripples))
	copy(out, p.ripples)
	return out
}

// Ripples returns the ripples alive at now, advanced to now.
func (p *Pulse) Ripples(now time.Time) []Ripple {
	out := make([]Ripple, 0, len(p.ripples))
	for _, r := range p.ripples {
		if next, alive := r.Advance(now); alive {
			out = append(out, next)
		}
	}
	return out
}
