package engine

import (
	"errors"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/engine/clock"
	"github.com/Carmen-Shannon/oxy-spread/engine/input"
	"github.com/Carmen-Shannon/oxy-spread/engine/profiler"
	"github.com/Carmen-Shannon/oxy-spread/engine/scene"
	"github.com/Carmen-Shannon/oxy-spread/engine/window"
)

// pointerEvent is a raw pointer position waiting to be mapped on the engine goroutine.
type pointerEvent struct {
	x, y float32
}

// engine implements the Engine interface.
// A single goroutine owns the pointer signal and every scene frame, so panel state is never shared.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates
	pointerChannel  chan pointerEvent  // Latest pointer position; older ones are dropped

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed and scenes torn down once

	window window.Window
	clk    clock.Clock
	mapper input.Mapper

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	lastTick       time.Time

	mu       sync.RWMutex
	scenes   map[int]scene.Scene
	signal   input.Signal
	viewport [2]float32
}

// Engine is the host loop of the spread.
// It drains pointer events into the shared input signal and frames every active scene at a fixed tick rate.
type Engine interface {
	// Window returns the window feeding pointer events, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ProfilerEnabled reports whether profiling output is enabled.
	ProfilerEnabled() bool

	// SetTickRate sets the engine tick rate in frames per second.
	// Scene frames and the tick callback run at this rate.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick after all scenes have been framed.
	// It runs on the engine goroutine.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given key.
	// Active scenes are framed in ascending key order each tick.
	//
	// Parameters:
	//   - key: the ordering key (lower frames first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given key without tearing it down.
	//
	// Parameters:
	//   - key: the key of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given key.
	//
	// Parameters:
	//   - key: the key of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by ordering key.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// PostPointer queues a pointer position in window coordinates. Safe to call from any goroutine.
	// When a position is already waiting it is replaced; only the latest matters.
	//
	// Parameters:
	//   - x, y: the pointer position
	PostPointer(x, y float32)

	// SetViewport sets the dimensions pointer positions are mapped against.
	// Non-positive dimensions map every pointer position as the screen center.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	SetViewport(width, height float32)

	// Viewport returns the current viewport dimensions.
	//
	// Returns:
	//   - width, height: the viewport size in pixels
	Viewport() (width, height float32)

	// Signal returns a copy of the current pointer signal.
	//
	// Returns:
	//   - input.Signal: the signal the next frame will read
	Signal() input.Signal

	// Step runs a single tick at now on the caller's goroutine: pending pointer events are mapped,
	// active scenes are framed, and the tick callback runs. Intended for hosts that drive their own
	// cadence; must not be called while Run is active.
	//
	// Parameters:
	//   - now: the tick time
	Step(now time.Time)

	// Run starts the engine loop. Blocks until the window closes, or until Quit when headless.
	Run()

	// Quit stops the engine loop and tears down every scene, cancelling all pending commits.
	// Safe to call multiple times and from the tick callback; subsequent calls are no-ops.
	Quit()

	// Done returns a channel closed once Quit has run.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
// When a window is given, its pointer, resize and close events are wired into the engine.
//
// Parameters:
//   - options: functional options for engine configuration (window, clock, mapper, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		pointerChannel:  make(chan pointerEvent, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		wg:              sync.WaitGroup{},
		clk:             clock.NewSystemClock(),
		mapper:          input.NewMapper(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.clk))
	}

	if e.window != nil {
		e.viewport = [2]float32{float32(e.window.Width()), float32(e.window.Height())}
		e.window.SetMouseMoveCallback(e.PostPointer)
		e.window.SetResizeCallback(func(width, height int) {
			e.SetViewport(float32(width), float32(height))
		})
		e.window.SetCloseCallback(e.Quit)
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				_ = e.window.Close()
			default:
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.running.Store(true)
	log.Printf("[Engine] running at %v per tick, %d scenes", e.engineTickRate, len(e.Scenes()))
	e.handle()

	if e.window != nil {
		e.window.ProcessMessages()
		e.Quit()
		if err := e.window.Close(); err != nil && !errors.Is(err, window.ErrNotInitialized) {
			log.Printf("[Engine] failed to close window: %v", err)
		}
	} else {
		<-e.quitChannel
	}

	e.wg.Wait()
	e.running.Store(false)
	log.Printf("[Engine] stopped")
}

func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel and tears every scene down.
// Uses sync.Once to ensure both happen only once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)

		cancelled := 0
		for _, s := range e.orderedScenes(false) {
			cancelled += s.Teardown()
		}
		log.Printf("[Engine] quit, cancelled %d pending commits", cancelled)
	})
}

// handle launches the engine goroutine, tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(1)
	go e.handleEngine()
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Pointer events are mapped as they arrive; ticks frame the scenes. Listens for dynamic rate
// changes via tickRateChannel and exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	for {
		select {
		case <-e.quitChannel:
			return
		case p := <-e.pointerChannel:
			e.applyPointer(p)
		case <-ticker.C:
			select {
			case <-e.quitChannel:
				return
			default:
			}
			e.Step(e.clk.Now())
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

func (e *engine) Step(now time.Time) {
	for drained := false; !drained; {
		select {
		case p := <-e.pointerChannel:
			e.applyPointer(p)
		default:
			drained = true
		}
	}

	dt := float32(0)
	if !e.lastTick.IsZero() {
		dt = float32(now.Sub(e.lastTick).Seconds())
	}
	e.lastTick = now

	sig := e.Signal()
	sample := profiler.Sample{}
	for _, s := range e.orderedScenes(true) {
		st := s.Frame(now, sig)
		sample.Scenes++
		sample.PendingCommits += st.PendingCommits
		sample.FiredCommits += st.FiredCommits
	}

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.profilingEnabled.Load() {
		e.profiler.Tick(sample)
	}
}

// applyPointer maps a pointer position into the shared signal.
func (e *engine) applyPointer(p pointerEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mapper.Apply(&e.signal, p.x, p.y, e.viewport[0], e.viewport[1])
}

// orderedScenes returns the registered scenes in ascending key order, optionally only the active ones.
func (e *engine) orderedScenes(activeOnly bool) []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		s := e.scenes[k]
		if activeOnly && !s.Active() {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (e *engine) PostPointer(x, y float32) {
	ev := pointerEvent{x: x, y: y}
	select {
	case e.pointerChannel <- ev:
	default:
		// A position is already waiting; drop it and send the newer one.
		select {
		case <-e.pointerChannel:
		default:
		}
		select {
		case e.pointerChannel <- ev:
		default:
		}
	}
}

func (e *engine) SetViewport(width, height float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewport = [2]float32{width, height}
}

func (e *engine) Viewport() (width, height float32) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.viewport[0], e.viewport[1]
}

func (e *engine) Signal() input.Signal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.signal
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) ProfilerEnabled() bool {
	return e.profilingEnabled.Load()
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if e.running.Load() {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
