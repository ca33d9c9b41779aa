package app

import (
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest(10 * time.Millisecond)
	m.RecordRequest(30 * time.Millisecond)
	m.RecordSwap()
	m.RecordError()
	m.RecordNoop()
	m.RecordReload()

	s := m.Snapshot()
	if s.Requests != 2 {
		t.Errorf("Requests = %d, want 2", s.Requests)
	}
	if s.AvgNs != (20 * time.Millisecond).Nanoseconds() {
		t.Errorf("AvgNs = %d, want 20ms", s.AvgNs)
	}
	if s.MaxNs != (30 * time.Millisecond).Nanoseconds() {
		t.Errorf("MaxNs = %d, want 30ms", s.MaxNs)
	}
	if s.Swaps != 1 || s.Noops != 1 || s.Errors != 1 || s.Reloads != 1 {
		t.Errorf("snapshot = %+v", s)
	}
	if s.ErrorRate() != 50 {
		t.Errorf("ErrorRate() = %v, want 50", s.ErrorRate())
	}
	if (MetricsSnapshot{}).ErrorRate() != 0 {
		t.Error("ErrorRate() of empty snapshot should be 0")
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	if timer.Elapsed() <= 0 {
		t.Error("Elapsed() <= 0")
	}
}
