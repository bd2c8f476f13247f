package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/engine/clock"
)

// Sample is the spread state reported alongside each engine tick.
type Sample struct {
	// Scenes is the number of active scenes animated this tick.
	Scenes int

	// PendingCommits is the number of delayed yaw commits waiting to fire across all scenes.
	PendingCommits int

	// FiredCommits is the running total of commits fired across all scenes.
	FiredCommits uint64
}

// Profiler tracks tick rate, commit throughput and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	clk            clock.Clock
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	lastFired      uint64
	lastLine       string
}

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often statistics are logged. Non-positive values keep the default of 1 second.
//
// Parameters:
//   - interval: the logging interval
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock sets the time source used to measure intervals.
//
// Parameters:
//   - clk: the clock to read
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithClock(clk clock.Clock) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.clk = clk
	}
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and time is read from the system clock.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		clk:            clock.NewSystemClock(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.clk.Now()
	return p
}

// Tick should be called once per engine tick with the current spread state.
// Logs statistics when the update interval has elapsed: tick rate, active scenes, pending commits,
// commit rate, heap usage, GC count and pause times.
//
// Parameters:
//   - s: the spread state for this tick
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(s Sample) bool {
	p.frameCount++
	currentTime := p.clk.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	secs := elapsed.Seconds()
	fps := float64(p.frameCount) / secs
	commitRate := float64(s.FiredCommits-p.lastFired) / secs

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / secs

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.lastLine = formatLine(fps, s, commitRate)
	log.Printf("[Profiler] %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs)",
		p.lastLine, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.lastFired = s.FiredCommits
	return true
}

// LastLine returns the spread portion of the most recent log line, or "" before the first one.
func (p *Profiler) LastLine() string {
	return p.lastLine
}

func formatLine(fps float64, s Sample, commitRate float64) string {
	return fmt.Sprintf("TPS: %.2f | Scenes: %d | Pending: %d | Commits: %.2f/s",
		fps, s.Scenes, s.PendingCommits, commitRate)
}
