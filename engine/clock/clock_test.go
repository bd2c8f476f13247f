package clock

import (
	"testing"
	"time"
)

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	t1 := c.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := c.Now()
	if !t2.After(t1) {
		t.Errorf("Expected t2 after t1, got t1=%v, t2=%v", t1, t2)
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMockClock(start)
	if !c.Now().Equal(start) {
		t.Errorf("Expected %v, got %v", start, c.Now())
	}

	got := c.Advance(300 * time.Millisecond)
	want := start.Add(300 * time.Millisecond)
	if !got.Equal(want) || !c.Now().Equal(want) {
		t.Errorf("Expected %v after Advance, got %v", want, c.Now())
	}

	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("Expected %v after Set, got %v", start, c.Now())
	}
}
