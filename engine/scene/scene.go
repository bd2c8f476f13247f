package scene

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/engine/game_object"
	"github.com/Carmen-Shannon/oxy-spread/engine/input"
	"github.com/Carmen-Shannon/oxy-spread/engine/panel"
	"github.com/Carmen-Shannon/oxy-spread/engine/spread"
)

// ErrNilDriver is returned by NewScene when no driver is given.
var ErrNilDriver = errors.New("scene: driver is nil")

// Stats is a snapshot of a scene's driver counters.
type Stats struct {
	Frames         uint64
	PendingCommits int
	FiredCommits   uint64
}

// Scene binds one deck of panels to its animation driver and the game objects that render it.
// Each frame the driver's output is written back into the objects.
// Scenes can be switched via the Active flag; an inactive scene keeps its state and skips frames.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently animated.
	Active() bool

	// SetActive sets whether this scene is animated. Has no effect after Teardown.
	SetActive(active bool)

	// Driver returns the scene's animation driver. The driver is not synchronized: use it only from the
	// goroutine that calls Frame, and prefer Stats and Transforms elsewhere.
	Driver() spread.Driver

	// Stats returns the driver counters, read under the scene lock.
	Stats() Stats

	// Transforms returns a copy of the driver's last per-panel output, read under the scene lock.
	Transforms() []spread.Transform

	// Registry returns the panel registry the driver animates.
	Registry() panel.Registry

	// Count returns the number of objects in the scene.
	Count() int

	// Objects returns the scene's objects in panel order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the object list
	Objects() []game_object.GameObject

	// Get retrieves an object by ID.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil if not found
	Get(id uint64) game_object.GameObject

	// Frame advances the driver to now with the given pointer signal and writes the resulting
	// panel transforms into the scene's objects. Inactive or torn down scenes do nothing.
	//
	// Parameters:
	//   - now: the frame time
	//   - sig: the current pointer signal
	//
	// Returns:
	//   - Stats: the driver counters after the frame, taken before the lock is released
	Frame(now time.Time, sig input.Signal) Stats

	// Teardown stops the driver, cancelling all of its pending commits, and deactivates the scene.
	// Safe to call multiple times; only the first call cancels anything.
	//
	// Returns:
	//   - int: the number of pending commits cancelled
	Teardown() int

	// TornDown reports whether Teardown has been called.
	TornDown() bool
}

// scene implements the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name     string
	active   bool
	tornDown bool

	drv     spread.Driver
	objects []game_object.GameObject          // in panel order
	byID    map[uint64]game_object.GameObject // all objects by ID
	nextID  uint64
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene around a driver. Unless WithObjects supplies them, one game object
// per panel is created from the registry's elements. Supplied objects are matched to panels by order.
//
// Parameters:
//   - name: the name of the scene
//   - drv: the animation driver (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: ErrNilDriver, or an error if the object count does not match the panel count
func NewScene(name string, drv spread.Driver, options ...SceneBuilderOption) (Scene, error) {
	if drv == nil {
		return nil, ErrNilDriver
	}

	s := &scene{
		mu:     &sync.RWMutex{},
		name:   name,
		active: false,
		drv:    drv,
		byID:   make(map[uint64]game_object.GameObject),
		nextID: 1,
	}

	for _, option := range options {
		option(s)
	}

	reg := drv.Registry()
	if s.objects == nil {
		s.add(game_object.FromElements(reg.Elements())...)
	}
	if len(s.objects) != reg.Len() {
		return nil, fmt.Errorf("scene %q: %d objects for %d panels", name, len(s.objects), reg.Len())
	}

	return s, nil
}

// add appends objects in panel order, assigning IDs to those without one.
func (s *scene) add(objects ...game_object.GameObject) {
	for _, obj := range objects {
		if obj.ID() == 0 {
			obj.SetID(s.nextID)
		}
		if obj.ID() >= s.nextID {
			s.nextID = obj.ID() + 1
		}
		s.objects = append(s.objects, obj)
		s.byID[obj.ID()] = obj
	}
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tornDown {
		return
	}
	s.active = active
}

func (s *scene) Driver() spread.Driver {
	return s.drv
}

func (s *scene) Registry() panel.Registry {
	return s.drv.Registry()
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

func (s *scene) Frame(now time.Time, sig input.Signal) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || s.tornDown {
		return s.stats()
	}

	s.drv.Frame(now, sig)

	axis := s.drv.Registry().Axis()
	for _, t := range s.drv.Transforms() {
		s.objects[t.Index].SetPanelTransform(axis, t.Offset, t.Pitch, t.Yaw, t.Tilt)
	}
	return s.stats()
}

func (s *scene) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats()
}

// stats reads the driver counters; the caller holds the lock.
func (s *scene) stats() Stats {
	return Stats{
		Frames:         s.drv.Frames(),
		PendingCommits: s.drv.PendingCommits(),
		FiredCommits:   s.drv.FiredCommits(),
	}
}

func (s *scene) Transforms() []spread.Transform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]spread.Transform(nil), s.drv.Transforms()...)
}

func (s *scene) Teardown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tornDown {
		return 0
	}
	s.tornDown = true
	s.active = false

	cancelled := s.drv.Stop()
	log.Printf("[Scene] %s torn down after %d frames, cancelled %d pending commits", s.name, s.drv.Frames(), cancelled)
	return cancelled
}

func (s *scene) TornDown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tornDown
}
