package input

import (
	"testing"
	"time"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordKeyEvent(true, 2*time.Millisecond)
	m.RecordKeyEvent(false, 4*time.Millisecond)
	m.RecordIgnored()
	m.RecordAction()
	m.RecordLetter()
	m.RecordAbandonedChord()

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 2 || snap.KeysHandled != 1 {
		t.Errorf("events=%d handled=%d, want 2 and 1", snap.KeyEventsTotal, snap.KeysHandled)
	}
	if snap.IgnoredEvents != 1 || snap.ActionsTotal != 1 || snap.LettersTyped != 1 || snap.ChordsAbandoned != 1 {
		t.Errorf("counters = %+v", snap)
	}
	if snap.AvgLatency != 3*time.Millisecond {
		t.Errorf("AvgLatency = %v, want 3ms", snap.AvgLatency)
	}
	if snap.PeakLatency != 4*time.Millisecond || snap.P99Latency != 4*time.Millisecond {
		t.Errorf("peak=%v p99=%v, want 4ms", snap.PeakLatency, snap.P99Latency)
	}
}

func TestMetrics_Disabled(t *testing.T) {
	m := NewMetrics()
	m.SetEnabled(false)
	m.RecordKeyEvent(true, time.Millisecond)
	m.RecordClueJump()

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 0 || snap.ClueJumps != 0 || snap.AvgLatency != 0 {
		t.Errorf("disabled metrics recorded: %+v", snap)
	}
}

func TestMetrics_RingWraps(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < latencySamples+10; i++ {
		m.RecordKeyEvent(true, time.Millisecond)
	}
	snap := m.Snapshot()
	if snap.KeyEventsTotal != latencySamples+10 {
		t.Errorf("KeyEventsTotal = %d", snap.KeyEventsTotal)
	}
	if snap.AvgLatency != time.Millisecond {
		t.Errorf("AvgLatency = %v", snap.AvgLatency)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordKeyEvent(true, time.Second)
	m.RecordUnknownAction()
	m.Reset()

	snap := m.Snapshot()
	if snap != (MetricsSnapshot{Uptime: snap.Uptime}) {
		t.Errorf("after Reset: %+v", snap)
	}
}
