package clock

import (
	"sync"
	"time"
)

// Clock supplies frame timestamps to the animation driver and the engine loop.
type Clock interface {
	// Now returns the current time.
	//
	// Returns:
	//   - time.Time: the current time
	Now() time.Time
}

// systemClock reads the monotonic system clock.
type systemClock struct{}

// NewSystemClock returns a Clock backed by time.Now.
//
// Returns:
//   - Clock: the system clock
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a Clock that only moves when told to. Used to step frames and commit timers deterministically.
type MockClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewMockClock creates a MockClock starting at start.
//
// Parameters:
//   - start: the initial time
//
// Returns:
//   - *MockClock: the mock clock
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start}
}

// Now returns the mocked time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set moves the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the clock forward by d and returns the new time.
func (m *MockClock) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
	return m.current
}
