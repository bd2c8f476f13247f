package profiler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/engine/clock"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	p := NewProfiler(WithClock(clk), WithInterval(time.Second))

	for i := 0; i < 49; i++ {
		clk.Advance(20 * time.Millisecond)
		if p.Tick(Sample{}) {
			t.Fatalf("Expected no log before the interval elapsed, got one at tick %d", i)
		}
	}
	clk.Advance(20 * time.Millisecond)
	if !p.Tick(Sample{Scenes: 2, PendingCommits: 9, FiredCommits: 30}) {
		t.Fatalf("Expected a log once the interval elapsed")
	}

	want := "TPS: 50.00 | Scenes: 2 | Pending: 9 | Commits: 30.00/s"
	if p.LastLine() != want {
		t.Errorf("Expected %q, got %q", want, p.LastLine())
	}
}

func TestCommitRateUsesDelta(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	p := NewProfiler(WithClock(clk), WithInterval(time.Second))

	clk.Advance(time.Second)
	p.Tick(Sample{FiredCommits: 100})
	clk.Advance(2 * time.Second)
	p.Tick(Sample{FiredCommits: 140})

	want := "TPS: 0.50 | Scenes: 0 | Pending: 0 | Commits: 20.00/s"
	if p.LastLine() != want {
		t.Errorf("Expected %q, got %q", want, p.LastLine())
	}
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	if p.updateInterval != time.Second {
		t.Errorf("Expected default interval, got %v", p.updateInterval)
	}
}
