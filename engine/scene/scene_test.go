package scene

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/Carmen-Shannon/oxy-spread/engine/game_object"
	"github.com/Carmen-Shannon/oxy-spread/engine/input"
	"github.com/Carmen-Shannon/oxy-spread/engine/panel"
	"github.com/Carmen-Shannon/oxy-spread/engine/spread"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newDriver(t *testing.T, n int) spread.Driver {
	t.Helper()
	els := make([]*common.Element, n)
	for i := range els {
		els[i] = &common.Element{
			Name:     "Card_" + string(rune('0'+i)),
			Position: [3]float32{2, float32(i-n/2) * 0.1, -1},
		}
	}
	reg, err := panel.Build(els, n/2,
		panel.WithRand(rand.New(rand.NewPCG(3, 5))),
		panel.WithDelayRange(100*time.Millisecond, 100*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("Expected registry to build, got %v", err)
	}
	drv, err := spread.NewDriver(reg)
	if err != nil {
		t.Fatalf("Expected driver to build, got %v", err)
	}
	return drv
}

func TestNewSceneNilDriver(t *testing.T) {
	if _, err := NewScene("deck", nil); !errors.Is(err, ErrNilDriver) {
		t.Errorf("Expected ErrNilDriver, got %v", err)
	}
}

func TestNewSceneCreatesObjects(t *testing.T) {
	s, err := NewScene("deck", newDriver(t, 5))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.Count() != 5 {
		t.Errorf("Expected 5 objects, got %d", s.Count())
	}
	if s.Active() {
		t.Errorf("Expected scene to start inactive")
	}
	obj := s.Get(1)
	if obj == nil || obj.Name() != "Card_0" {
		t.Errorf("Expected object 1 to be Card_0, got %v", obj)
	}
}

func TestNewSceneObjectCountMismatch(t *testing.T) {
	_, err := NewScene("deck", newDriver(t, 3), WithObjects(game_object.NewGameObject()))
	if err == nil {
		t.Errorf("Expected an error for 1 object on 3 panels")
	}
}

func TestWithObjectsAssignsIDs(t *testing.T) {
	objs := []game_object.GameObject{
		game_object.NewGameObject(game_object.WithID(10)),
		game_object.NewGameObject(),
	}
	s, err := NewScene("deck", newDriver(t, 2), WithObjects(objs...))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if objs[1].ID() != 11 {
		t.Errorf("Expected second object to get ID 11, got %d", objs[1].ID())
	}
	if s.Get(10) != objs[0] {
		t.Errorf("Expected lookup by ID to return the supplied object")
	}
}

func TestFrameWritesTransforms(t *testing.T) {
	drv := newDriver(t, 5)
	s, _ := NewScene("deck", drv, WithActive(true))

	sig := input.Signal{SpacingFactor: 1, TargetYaw: 0.05}
	now := epoch
	for i := 0; i < 120; i++ {
		s.Frame(now, sig)
		now = now.Add(time.Second / 60)
	}

	objs := s.Objects()
	for _, tr := range drv.Transforms() {
		pos, rot, _ := objs[tr.Index].TransformData()
		if pos[1] != tr.Offset {
			t.Errorf("Panel %d: expected Y %v, got %v", tr.Index, tr.Offset, pos[1])
		}
		if pos[0] != 2 || pos[2] != -1 {
			t.Errorf("Panel %d: expected X/Z at rest, got %v", tr.Index, pos)
		}
		if rot[1] != tr.Yaw || rot[2] != tr.Tilt {
			t.Errorf("Panel %d: expected rotation (_, %v, %v), got %v", tr.Index, tr.Yaw, tr.Tilt, rot)
		}
	}
	if _, y, _ := objs[0].Position(); y >= -0.2 {
		t.Errorf("Expected outer panel pushed outward past -0.2, got %v", y)
	}
}

func TestInactiveSceneSkipsFrames(t *testing.T) {
	drv := newDriver(t, 3)
	s, _ := NewScene("deck", drv)
	s.Frame(epoch, input.Signal{SpacingFactor: 1})
	if drv.Frames() != 0 {
		t.Errorf("Expected inactive scene not to advance the driver, got %d frames", drv.Frames())
	}
}

func TestTeardown(t *testing.T) {
	drv := newDriver(t, 5)
	s, _ := NewScene("deck", drv, WithActive(true))
	s.Frame(epoch, input.Signal{SpacingFactor: 0.5})

	if n := s.Teardown(); n != 5 {
		t.Errorf("Expected 5 cancelled commits, got %d", n)
	}
	if n := s.Teardown(); n != 0 {
		t.Errorf("Expected second teardown to cancel nothing, got %d", n)
	}
	if s.Active() || !s.TornDown() {
		t.Errorf("Expected scene inactive and torn down")
	}
	s.SetActive(true)
	if s.Active() {
		t.Errorf("Expected SetActive to be ignored after teardown")
	}
	s.Frame(epoch.Add(time.Second), input.Signal{SpacingFactor: 1})
	if st := s.Frame(epoch.Add(2*time.Second), input.Signal{SpacingFactor: 1}); st.Frames != 1 || st.PendingCommits != 0 {
		t.Errorf("Expected 1 frame and no pending commits after teardown, got %+v", st)
	}
}

func TestFrameReturnsStats(t *testing.T) {
	drv := newDriver(t, 5)
	s, _ := NewScene("deck", drv, WithActive(true))

	st := s.Frame(epoch, input.Signal{SpacingFactor: 0.5})
	if st.Frames != 1 || st.PendingCommits != 5 || st.FiredCommits != 0 {
		t.Errorf("Expected 1 frame, 5 pending, 0 fired, got %+v", st)
	}
	if s.Stats() != st {
		t.Errorf("Expected Stats to match the frame result, got %+v", s.Stats())
	}

	tr := s.Transforms()
	tr[0].Offset = 99
	if s.Transforms()[0].Offset == 99 {
		t.Errorf("Expected Transforms to return a copy")
	}
}

func TestTeardownConcurrentWithFrames(t *testing.T) {
	drv := newDriver(t, 9)
	s, _ := NewScene("deck", drv, WithActive(true))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		now := epoch
		for i := 0; i < 500; i++ {
			st := s.Frame(now, input.Signal{SpacingFactor: 1, TargetYaw: 0.05})
			_ = st.PendingCommits
			_ = s.Transforms()
			now = now.Add(time.Second / 60)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = s.Stats()
		}
		s.Teardown()
	}()
	wg.Wait()

	if !s.TornDown() {
		t.Errorf("Expected scene torn down")
	}
	if st := s.Stats(); st.PendingCommits != 0 {
		t.Errorf("Expected no pending commits after teardown, got %d", st.PendingCommits)
	}
}
