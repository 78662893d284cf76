package anim

import (
	"sort"
	"time"
)

// QueueDriver is a Driver for hosts that poll once per display frame. Frame
// requests are released on the next Poll; timers once their due time has
// passed.
type QueueDriver struct {
	clock  Clock
	frames []Token
	timers []queuedTimer
}

type queuedTimer struct {
	due time.Time
	tok Token
}

// NewQueueDriver returns a driver that reads due times from clock.
func NewQueueDriver(clock Clock) *QueueDriver {
	if clock == nil {
		clock = SystemClock{}
	}
	return &QueueDriver{clock: clock}
}

func (q *QueueDriver) RequestFrame(tok Token) {
	q.frames = append(q.frames, tok)
}

func (q *QueueDriver) After(d time.Duration, tok Token) {
	q.timers = append(q.timers, queuedTimer{due: q.clock.Now().Add(d), tok: tok})
}

// Len returns the number of queued tokens.
func (q *QueueDriver) Len() int { return len(q.frames) + len(q.timers) }

// Poll returns the tokens due at now: every frame request, then expired
// timers in due order. Requests made while handling them wait for the next
// Poll.
func (q *QueueDriver) Poll(now time.Time) []Token {
	due := q.frames
	q.frames = nil

	var keep []queuedTimer
	var expired []queuedTimer
	for _, t := range q.timers {
		if t.due.After(now) {
			keep = append(keep, t)
		} else {
			expired = append(expired, t)
		}
	}
	q.timers = keep

	sort.SliceStable(expired, func(i, j int) bool { return expired[i].due.Before(expired[j].due) })
	for _, t := range expired {
		due = append(due, t.tok)
	}
	return due
}
