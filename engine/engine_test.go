package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/Carmen-Shannon/oxy-spread/engine/clock"
	"github.com/Carmen-Shannon/oxy-spread/engine/input"
	"github.com/Carmen-Shannon/oxy-spread/engine/panel"
	"github.com/Carmen-Shannon/oxy-spread/engine/scene"
	"github.com/Carmen-Shannon/oxy-spread/engine/spread"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newScene(t *testing.T, name string, n int, active bool) scene.Scene {
	t.Helper()
	els := make([]*common.Element, n)
	for i := range els {
		els[i] = &common.Element{Name: name, Position: [3]float32{0, float32(i-n/2) * 0.1, 0}}
	}
	reg, err := panel.Build(els, n/2, panel.WithRand(rand.New(rand.NewPCG(1, 1))))
	if err != nil {
		t.Fatalf("Expected registry to build, got %v", err)
	}
	drv, err := spread.NewDriver(reg)
	if err != nil {
		t.Fatalf("Expected driver to build, got %v", err)
	}
	s, err := scene.NewScene(name, drv, scene.WithActive(active))
	if err != nil {
		t.Fatalf("Expected scene to build, got %v", err)
	}
	return s
}

func TestPostPointerMapsOnStep(t *testing.T) {
	e := NewEngine(WithViewport(800, 600), WithMapper(input.NewMapper(input.WithMaxYawDeg(5))))

	e.PostPointer(800, 0)
	if e.Signal() != (input.Signal{}) {
		t.Errorf("Expected signal untouched before the engine steps, got %+v", e.Signal())
	}

	e.Step(epoch)
	sig := e.Signal()
	if sig.SpacingFactor != 1 {
		t.Errorf("Expected spacing factor 1 at the top edge, got %v", sig.SpacingFactor)
	}
	if !common.ApproxEqual(sig.TargetYaw, common.Rad(5), 1e-6) {
		t.Errorf("Expected yaw of 5 degrees at the right edge, got %v", sig.TargetYaw)
	}
}

func TestPostPointerLatestWins(t *testing.T) {
	e := NewEngine(WithViewport(800, 600))
	e.PostPointer(0, 0)
	e.PostPointer(400, 300)
	e.Step(epoch)
	if e.Signal() != (input.Signal{}) {
		t.Errorf("Expected only the centered pointer to apply, got %+v", e.Signal())
	}
}

func TestZeroViewportMapsAsCenter(t *testing.T) {
	e := NewEngine()
	e.PostPointer(10, 10)
	e.Step(epoch)
	if e.Signal() != (input.Signal{}) {
		t.Errorf("Expected zero signal for an unset viewport, got %+v", e.Signal())
	}
	e.SetViewport(100, 100)
	if w, h := e.Viewport(); w != 100 || h != 100 {
		t.Errorf("Expected viewport 100x100, got %vx%v", w, h)
	}
}

func TestStepFramesActiveScenesOnly(t *testing.T) {
	a := newScene(t, "a", 3, true)
	b := newScene(t, "b", 3, false)
	var ticks int
	var lastDt float32
	e := NewEngine(
		WithScene(1, a),
		WithScene(0, b),
		WithTickCallback(func(dt float32) {
			ticks++
			lastDt = dt
		}),
	)

	e.Step(epoch)
	e.Step(epoch.Add(20 * time.Millisecond))

	if a.Stats().Frames != 2 {
		t.Errorf("Expected active scene framed twice, got %d", a.Stats().Frames)
	}
	if b.Stats().Frames != 0 {
		t.Errorf("Expected inactive scene not framed, got %d", b.Stats().Frames)
	}
	if ticks != 2 {
		t.Errorf("Expected 2 tick callbacks, got %d", ticks)
	}
	if !common.ApproxEqual(lastDt, 0.02, 1e-6) {
		t.Errorf("Expected dt 0.02, got %v", lastDt)
	}
}

func TestQuitTearsDownOnce(t *testing.T) {
	a := newScene(t, "a", 5, true)
	e := NewEngine(WithScene(0, a))
	e.Step(epoch)
	if a.Stats().PendingCommits != 5 {
		t.Fatalf("Expected 5 pending commits, got %d", a.Stats().PendingCommits)
	}

	e.Quit()
	e.Quit()

	if !a.TornDown() {
		t.Errorf("Expected scene torn down")
	}
	if a.Stats().PendingCommits != 0 {
		t.Errorf("Expected no pending commits after quit, got %d", a.Stats().PendingCommits)
	}
	select {
	case <-e.Done():
	default:
		t.Errorf("Expected Done to be closed")
	}
}

func TestRunHeadlessUntilQuit(t *testing.T) {
	clk := clock.NewMockClock(epoch)
	a := newScene(t, "a", 3, true)

	var e Engine
	ticks := 0
	e = NewEngine(
		WithClock(clk),
		WithTickRate(1000),
		WithScene(0, a),
		WithTickCallback(func(float32) {
			clk.Advance(time.Second / 60)
			ticks++
			if ticks == 10 {
				e.Quit()
			}
		}),
	)

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected Run to return after Quit")
	}
	if ticks != 10 {
		t.Errorf("Expected exactly 10 ticks, got %d", ticks)
	}
	if !a.TornDown() {
		t.Errorf("Expected scene torn down on quit")
	}
}

func TestQuitFromAnotherGoroutineWhileTicking(t *testing.T) {
	a := newScene(t, "a", 9, true)
	b := newScene(t, "b", 9, true)

	ticked := make(chan struct{}, 1)
	e := NewEngine(
		WithTickRate(1000),
		WithScene(0, a),
		WithScene(1, b),
		WithTickCallback(func(float32) {
			select {
			case ticked <- struct{}{}:
			default:
			}
		}),
	)

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	// Quit the way a window close does: from a goroutine other than the tick loop.
	for i := 0; i < 5; i++ {
		<-ticked
		e.PostPointer(float32(i), 0)
	}
	e.Quit()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected Run to return after Quit")
	}
	for _, s := range []scene.Scene{a, b} {
		if !s.TornDown() {
			t.Errorf("%s: expected scene torn down", s.Name())
		}
		if st := s.Stats(); st.PendingCommits != 0 {
			t.Errorf("%s: expected no pending commits, got %d", s.Name(), st.PendingCommits)
		}
	}
}

func TestSceneRegistry(t *testing.T) {
	e := NewEngine()
	a := newScene(t, "a", 2, true)
	e.AddScene(3, a)
	if e.Scene(3) != a {
		t.Errorf("Expected scene at key 3")
	}
	cp := e.Scenes()
	delete(cp, 3)
	if e.Scene(3) == nil {
		t.Errorf("Expected Scenes to return a copy")
	}
	e.RemoveScene(3)
	if e.Scene(3) != nil {
		t.Errorf("Expected scene removed")
	}
}

func TestProfilerToggle(t *testing.T) {
	e := NewEngine(WithProfiling(true))
	if !e.ProfilerEnabled() {
		t.Errorf("Expected profiling enabled")
	}
	e.DisableProfiler()
	if e.ProfilerEnabled() {
		t.Errorf("Expected profiling disabled")
	}
}
