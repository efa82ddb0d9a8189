package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

const latencySamples = 1000

// Metrics tracks key handling counts and latency.
type Metrics struct {
	keyEventsTotal  atomic.Uint64
	keysHandled     atomic.Uint64
	ignoredEvents   atomic.Uint64
	actionsTotal    atomic.Uint64
	unknownActions  atomic.Uint64
	lettersTyped    atomic.Uint64
	chordsAbandoned atomic.Uint64
	clueJumps       atomic.Uint64

	// Latency ring buffer
	mu         sync.RWMutex
	latencies  []time.Duration
	latencyIdx int

	peakLatency atomic.Int64

	startTime time.Time

	enabled atomic.Bool
}

// NewMetrics creates an enabled Metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		latencies: make([]time.Duration, latencySamples),
		startTime: time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// RecordKeyEvent records one key event, whether it was handled, and how
// long handling took.
func (m *Metrics) RecordKeyEvent(handled bool, latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	m.keyEventsTotal.Add(1)
	if handled {
		m.keysHandled.Add(1)
	}

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if latencyNs <= current || m.peakLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.latencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % len(m.latencies)
	m.mu.Unlock()
}

func (m *Metrics) add(c *atomic.Uint64) {
	if m.enabled.Load() {
		c.Add(1)
	}
}

// RecordIgnored records an event dropped by the text-input or modifier
// filter.
func (m *Metrics) RecordIgnored() { m.add(&m.ignoredEvents) }

// RecordAction records a dispatched action.
func (m *Metrics) RecordAction() { m.add(&m.actionsTotal) }

// RecordUnknownAction records a dispatch to a missing action.
func (m *Metrics) RecordUnknownAction() { m.add(&m.unknownActions) }

// RecordLetter records a letter submitted for commit.
func (m *Metrics) RecordLetter() { m.add(&m.lettersTyped) }

// RecordAbandonedChord records a pending chord broken by a stray key.
func (m *Metrics) RecordAbandonedChord() { m.add(&m.chordsAbandoned) }

// RecordClueJump records a command-line clue jump.
func (m *Metrics) RecordClueJump() { m.add(&m.clueJumps) }

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyEventsTotal  uint64
	KeysHandled     uint64
	IgnoredEvents   uint64
	ActionsTotal    uint64
	UnknownActions  uint64
	LettersTyped    uint64
	ChordsAbandoned uint64
	ClueJumps       uint64

	AvgLatency  time.Duration
	P99Latency  time.Duration
	PeakLatency time.Duration

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	valid := make([]time.Duration, 0, len(m.latencies))
	for _, l := range m.latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	start := m.startTime
	m.mu.RUnlock()

	snap := MetricsSnapshot{
		KeyEventsTotal:  m.keyEventsTotal.Load(),
		KeysHandled:     m.keysHandled.Load(),
		IgnoredEvents:   m.ignoredEvents.Load(),
		ActionsTotal:    m.actionsTotal.Load(),
		UnknownActions:  m.unknownActions.Load(),
		LettersTyped:    m.lettersTyped.Load(),
		ChordsAbandoned: m.chordsAbandoned.Load(),
		ClueJumps:       m.clueJumps.Load(),
		PeakLatency:     time.Duration(m.peakLatency.Load()),
		Uptime:          time.Since(start),
	}

	if len(valid) > 0 {
		var sum time.Duration
		for _, l := range valid {
			sum += l
		}
		snap.AvgLatency = sum / time.Duration(len(valid))

		slices.Sort(valid)
		idx := min(int(float64(len(valid))*0.99), len(valid)-1)
		snap.P99Latency = valid[idx]
	}
	return snap
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Uint64{
		&m.keyEventsTotal, &m.keysHandled, &m.ignoredEvents, &m.actionsTotal,
		&m.unknownActions, &m.lettersTyped, &m.chordsAbandoned, &m.clueJumps,
	} {
		c.Store(0)
	}
	m.peakLatency.Store(0)

	m.mu.Lock()
	m.latencies = make([]time.Duration, latencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
