// Package state provides thread-safe storage of loaded star-map datasets.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-starmap/internal/universe"
	"github.com/litescript/ls-starmap/internal/viewport"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventLoaded         EventType = "LOADED"
	EventLoadFailed     EventType = "LOAD_FAILED"
	EventJourneyGrew    EventType = "JOURNEY_GREW"
	EventSystemsChanged EventType = "SYSTEMS_CHANGED"
	EventPlayerMoved    EventType = "PLAYER_MOVED"
)

// Event represents a change between two loads.
type Event struct {
	Type      EventType             `json:"type"`
	Timestamp time.Time             `json:"timestamp"`
	Count     int                   `json:"count,omitempty"`
	Position  viewport.LogicalPoint `json:"position,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// String is the one-line form shown in the footer and the summary.
func (e Event) String() string {
	switch e.Type {
	case EventLoaded:
		return fmt.Sprintf("loaded %d systems", e.Count)
	case EventLoadFailed:
		return "load failed: " + e.Message
	case EventJourneyGrew:
		return fmt.Sprintf("journey +%d", e.Count)
	case EventSystemsChanged:
		return fmt.Sprintf("systems now %d", e.Count)
	case EventPlayerMoved:
		return fmt.Sprintf("moved to (%g, %g)", e.Position.X, e.Position.Y)
	}
	return string(e.Type)
}

// Manager handles shared load state with thread-safe access.
type Manager struct {
	mu sync.RWMutex
	// now is replaceable in tests
	now func() time.Time

	// Current state
	current      *universe.Dataset
	stats        universe.Stats
	revision     int
	lastLoad     time.Time
	lastError    error
	loadDuration time.Duration

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:       50, // Last 50 events
		RefreshInterval: 30 * time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		now:             time.Now,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
	}
}

// Update records the outcome of one load. A nil dataset keeps the previous
// data and only records the error.
func (m *Manager) Update(data *universe.Dataset, loadDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.lastLoad = now
	m.lastError = err
	m.loadDuration = loadDuration

	if err != nil {
		m.addEvent(Event{Type: EventLoadFailed, Timestamp: now, Message: err.Error()})
	}
	if data == nil {
		return
	}

	m.detectEvents(data, now)

	m.current = data
	m.stats = universe.ComputeStats(*data)
	m.revision++
}

// detectEvents compares new data with the previous load.
func (m *Manager) detectEvents(next *universe.Dataset, now time.Time) {
	if m.current == nil {
		m.addEvent(Event{Type: EventLoaded, Timestamp: now, Count: len(next.Systems)})
		return
	}
	prev := m.current

	if grew := len(next.Journal) - len(prev.Journal); grew > 0 {
		m.addEvent(Event{Type: EventJourneyGrew, Timestamp: now, Count: grew})
	}
	if len(next.Systems) != len(prev.Systems) {
		m.addEvent(Event{Type: EventSystemsChanged, Timestamp: now, Count: len(next.Systems)})
	}

	oldPos, oldErr := universe.PlayerPosition(prev.Journal)
	newPos, newErr := universe.PlayerPosition(next.Journal)
	if newErr == nil && (oldErr != nil || oldPos != newPos) {
		m.addEvent(Event{Type: EventPlayerMoved, Timestamp: now, Position: newPos})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Data         *universe.Dataset
	Stats        universe.Stats
	Revision     int
	LastLoad     time.Time
	LastError    error
	LoadDuration time.Duration
	Events       []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Data:         m.current,
		Stats:        m.stats,
		Revision:     m.revision,
		LastLoad:     m.lastLoad,
		LastError:    m.lastError,
		LoadDuration: m.loadDuration,
		Events:       m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Revision increments on every successful load.
func (m *Manager) Revision() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}
