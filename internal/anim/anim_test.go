package anim

import (
	"math"
	"testing"
	"time"
)

type timer struct {
	delay time.Duration
	tok   Token
}

type fakeDriver struct {
	frames []Token
	timers []timer
}

func (d *fakeDriver) RequestFrame(tok Token) { d.frames = append(d.frames, tok) }

func (d *fakeDriver) After(delay time.Duration, tok Token) {
	d.timers = append(d.timers, timer{delay: delay, tok: tok})
}

func (d *fakeDriver) lastFrame() Token {
	if len(d.frames) == 0 {
		return Token{}
	}
	return d.frames[len(d.frames)-1]
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRippleLifecycle(t *testing.T) {
	r := NewRipple(t0)

	got, alive := r.Advance(t0)
	if !alive || got.Opacity != 1 || got.Size != 5 {
		t.Errorf("at t0: %+v alive=%v, want size 5 opacity 1", got, alive)
	}

	got, alive = r.Advance(t0.Add(375 * time.Millisecond))
	if !alive || !near(got.Size, 17.5) || !near(got.Opacity, 0.5) {
		t.Errorf("at t0+375ms: %+v, want size 17.5 opacity 0.5", got)
	}

	got, alive = r.Advance(t0.Add(750 * time.Millisecond))
	if !alive || !near(got.Size, 30) || !near(got.Opacity, 0) {
		t.Errorf("at t0+750ms: %+v alive=%v, want size 30 opacity 0", got, alive)
	}

	if _, alive = r.Advance(t0.Add(751 * time.Millisecond)); alive {
		t.Error("ripple still alive at t0+751ms")
	}
}

func TestPulseSpawnsRippleOnFirstTick(t *testing.T) {
	d := &fakeDriver{}
	p := NewPulse(d)
	p.Start()

	if len(d.frames) != 1 {
		t.Fatalf("Start requested %d frames, want 1", len(d.frames))
	}
	if !p.OnFrame(d.lastFrame(), t0) {
		t.Fatal("first frame should tick")
	}
	rs := p.Ripples(t0)
	if len(rs) != 1 || rs[0].Size != 5 || rs[0].Opacity != 1 {
		t.Errorf("Ripples = %+v, want one fresh ripple", rs)
	}
	if len(d.frames) != 2 {
		t.Errorf("OnFrame should request the next frame, frames = %d", len(d.frames))
	}
}

func TestPulseRippleExpires(t *testing.T) {
	d := &fakeDriver{}
	p := NewPulse(d)
	p.Start()
	p.OnFrame(d.lastFrame(), t0)

	if rs := p.Ripples(t0.Add(750 * time.Millisecond)); len(rs) != 1 || !near(rs[0].Size, 30) {
		t.Errorf("Ripples at t0+750ms = %+v, want one at size 30", rs)
	}
	if rs := p.Ripples(t0.Add(751 * time.Millisecond)); len(rs) != 0 {
		t.Errorf("Ripples at t0+751ms = %+v, want none", rs)
	}

	// A tick past the lifetime prunes the stored ripple too.
	p.OnFrame(d.lastFrame(), t0.Add(800*time.Millisecond))
	if len(p.ripples) != 0 {
		t.Errorf("stored ripples after prune = %d, want 0", len(p.ripples))
	}
}

func TestPulseFrameGate(t *testing.T) {
	d := &fakeDriver{}
	p := NewPulse(d)
	p.Start()

	if !p.OnFrame(d.lastFrame(), t0) {
		t.Fatal("first frame should tick")
	}
	if p.OnFrame(d.lastFrame(), t0.Add(16*time.Millisecond)) {
		t.Error("frame at +16ms should be gated")
	}
	if p.OnFrame(d.lastFrame(), t0.Add(49*time.Millisecond)) {
		t.Error("frame at +49ms should be gated")
	}
	if !p.OnFrame(d.lastFrame(), t0.Add(50*time.Millisecond)) {
		t.Error("frame at +50ms should tick")
	}
	if !near(p.Phase(), 2*PhaseStep) {
		t.Errorf("Phase = %v, want %v after two ticks", p.Phase(), 2*PhaseStep)
	}
}

func TestPulseOneRipplePerCycle(t *testing.T) {
	d := &fakeDriver{}
	p := NewPulse(d)
	p.Start()

	spawned := 0
	now := t0
	ticksPerCycle := int(math.Ceil(2 * math.Pi / PhaseStep))
	for i := 0; i < 2*ticksPerCycle+10; i++ {
		before := len(p.ripples)
		p.OnFrame(d.lastFrame(), now)
		// Ripples live 15 ticks, so a cycle never overlaps two.
		if len(p.ripples) > before {
			spawned++
		}
		now = now.Add(PulseInterval)
	}
	if spawned != 3 {
		t.Errorf("spawned %d ripples over two full cycles, want 3", spawned)
	}
}

func TestPulsePauseCancelsTick(t *testing.T) {
	d := &fakeDriver{}
	p := NewPulse(d)
	p.Start()
	p.OnFrame(d.lastFrame(), t0)
	pending := d.lastFrame()

	if !p.Pause() {
		t.Fatal("Pause should report true the first time")
	}
	if p.Pause() {
		t.Error("second Pause should be a no-op")
	}
	if p.OnFrame(pending, t0.Add(time.Second)) {
		t.Error("stale frame fired after pause")
	}
	if len(p.Current()) != 1 {
		t.Error("pause should keep ripple data")
	}

	frames := len(d.frames)
	if !p.Resume() {
		t.Fatal("Resume should report true after pause")
	}
	if len(d.frames) != frames+1 {
		t.Errorf("Resume requested %d frames, want 1", len(d.frames)-frames)
	}
	if p.OnFrame(pending, t0.Add(time.Second)) {
		t.Error("token from before the pause fired after resume")
	}
	if !p.OnFrame(d.lastFrame(), t0.Add(time.Second)) {
		t.Error("fresh frame after resume should tick")
	}
}

func TestPulseCurrentHoldsLastTick(t *testing.T) {
	d := &fakeDriver{}
	p := NewPulse(d)
	p.Start()
	p.OnFrame(d.lastFrame(), t0)

	rs := p.Current()
	if len(rs) != 1 || rs[0].Size != RippleMinSize {
		t.Fatalf("Current = %+v, want one fresh ripple", rs)
	}
	// Time passing without a tick leaves the state alone.
	p.Pause()
	if got := p.Current(); len(got) != 1 || got[0] != rs[0] {
		t.Errorf("Current after pause = %+v, want %+v", got, rs)
	}

	rs[0].Size = 99
	if p.Current()[0].Size == 99 {
		t.Error("Current returned internal slice")
	}
}

func TestPulseResumeWithoutPause(t *testing.T) {
	d := &fakeDriver{}
	p := NewPulse(d)
	p.Start()
	frames := len(d.frames)

	if p.Resume() {
		t.Error("Resume without Pause should be a no-op")
	}
	if len(d.frames) != frames {
		t.Error("Resume without Pause scheduled a frame")
	}
}

func TestPulseStartWhilePaused(t *testing.T) {
	d := &fakeDriver{}
	p := NewPulse(d)
	p.Pause()
	p.Start()

	if len(d.frames) != 0 {
		t.Errorf("Start while paused requested %d frames, want 0", len(d.frames))
	}
	p.Resume()
	if !p.Running() || len(d.frames) != 1 {
		t.Errorf("Running = %v frames = %d after resume, want true/1", p.Running(), len(d.frames))
	}
}

func TestPulseStopClearsRipples(t *testing.T) {
	d := &fakeDriver{}
	p := NewPulse(d)
	p.Start()
	p.OnFrame(d.lastFrame(), t0)
	pending := d.lastFrame()

	p.Stop()
	if p.Running() {
		t.Error("Running after Stop")
	}
	if len(p.Current()) != 0 {
		t.Error("Stop should clear ripples")
	}
	if p.OnFrame(pending, t0.Add(time.Second)) {
		t.Error("stale frame fired after Stop")
	}
}

func TestThrottleImmediatePaint(t *testing.T) {
	d := &fakeDriver{}
	paints := 0
	th := NewThrottle(d, func() { paints++ })

	th.Request(t0)
	if paints != 1 {
		t.Errorf("paints = %d, want 1", paints)
	}
	if th.Pending() || len(d.timers) != 0 {
		t.Error("first request should not defer")
	}

	th.Request(t0.Add(40 * time.Millisecond))
	if paints != 2 {
		t.Errorf("request after interval: paints = %d, want 2", paints)
	}
}

func TestThrottleCoalesces(t *testing.T) {
	d := &fakeDriver{}
	paints := 0
	th := NewThrottle(d, func() { paints++ })

	th.Request(t0)
	th.Request(t0.Add(5 * time.Millisecond))
	th.Request(t0.Add(8 * time.Millisecond))
	th.Request(t0.Add(12 * time.Millisecond))

	if paints != 1 {
		t.Errorf("paints = %d, want 1 before the timer fires", paints)
	}
	if len(d.timers) != 1 {
		t.Fatalf("timers = %d, want exactly one deferred paint", len(d.timers))
	}
	delay := d.timers[0].delay
	if delay < 10*time.Millisecond || delay > 12*time.Millisecond {
		t.Errorf("deferred delay = %v, want about 11ms", delay)
	}

	if !th.OnTimer(d.timers[0].tok, t0.Add(5*time.Millisecond+delay)) {
		t.Fatal("OnTimer should paint")
	}
	if paints != 2 {
		t.Errorf("paints = %d, want 2", paints)
	}
	if th.OnTimer(d.timers[0].tok, t0.Add(30*time.Millisecond)) {
		t.Error("the same token painted twice")
	}
}

func TestThrottleLateTimer(t *testing.T) {
	d := &fakeDriver{}
	paints := 0
	th := NewThrottle(d, func() { paints++ })

	th.Request(t0)
	th.Request(t0.Add(time.Millisecond))
	if len(d.timers) != 1 {
		t.Fatalf("timers = %d, want 1", len(d.timers))
	}

	// The deferred paint lands 24ms after its slot.
	th.OnTimer(d.timers[0].tok, t0.Add(40*time.Millisecond))
	if paints != 2 {
		t.Fatalf("paints = %d, want 2", paints)
	}

	th.Request(t0.Add(45 * time.Millisecond))
	if paints != 2 {
		t.Errorf("request 5ms after the late paint painted immediately")
	}
	if len(d.timers) != 2 {
		t.Fatalf("timers = %d, want a second deferred paint", len(d.timers))
	}
	if delay := d.timers[1].delay; delay < 10*time.Millisecond || delay > 12*time.Millisecond {
		t.Errorf("deferred delay = %v, want about 11ms", delay)
	}
}

func TestThrottleCancel(t *testing.T) {
	d := &fakeDriver{}
	paints := 0
	th := NewThrottle(d, func() { paints++ })

	th.Request(t0)
	th.Request(t0.Add(2 * time.Millisecond))
	if !th.Pending() {
		t.Fatal("second request should be pending")
	}

	th.Cancel(t0.Add(3 * time.Millisecond))
	if th.Pending() {
		t.Error("Pending after Cancel")
	}
	if th.OnTimer(d.timers[0].tok, t0.Add(20*time.Millisecond)) {
		t.Error("cancelled timer painted")
	}
	if paints != 1 {
		t.Errorf("paints = %d, want 1", paints)
	}
}

func TestQueueDriverPoll(t *testing.T) {
	clock := &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	q := NewQueueDriver(clock)

	q.After(20*time.Millisecond, Token{Kind: RepaintToken, Gen: 2})
	q.After(10*time.Millisecond, Token{Kind: RepaintToken, Gen: 1})
	q.RequestFrame(Token{Kind: FrameToken, Gen: 7})

	got := q.Poll(clock.now)
	if len(got) != 1 || got[0].Kind != FrameToken {
		t.Fatalf("Poll at start = %v, want the frame token", got)
	}
	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2 timers left", q.Len())
	}

	got = q.Poll(clock.now.Add(25 * time.Millisecond))
	if len(got) != 2 || got[0].Gen != 1 || got[1].Gen != 2 {
		t.Errorf("Poll after timers = %v, want gen 1 then 2", got)
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }
