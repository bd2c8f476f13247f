package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-spread/engine/clock"
	"github.com/Carmen-Shannon/oxy-spread/engine/input"
	"github.com/Carmen-Shannon/oxy-spread/engine/profiler"
	"github.com/Carmen-Shannon/oxy-spread/engine/scene"
	"github.com/Carmen-Shannon/oxy-spread/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to tick
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithTickCallback registers the function called each engine tick after all scenes have been framed.
//
// Parameters:
//   - callback: function receiving the delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithWindow sets the window whose pointer, resize and close events drive the engine.
// Without a window the engine runs headless.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithClock sets the time source frames are stamped with.
//
// Parameters:
//   - clk: the clock to read
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(clk clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clk = clk
	}
}

// WithMapper sets the mapper turning pointer positions into the input signal.
//
// Parameters:
//   - m: the pointer mapper
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMapper(m input.Mapper) EngineBuilderOption {
	return func(e *engine) {
		e.mapper = m
	}
}

// WithViewport sets the initial viewport for headless engines. A window's framebuffer size takes precedence.
//
// Parameters:
//   - width, height: the viewport size in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewport(width, height float32) EngineBuilderOption {
	return func(e *engine) {
		e.viewport = [2]float32{width, height}
	}
}

// WithScene registers a scene at the given key during engine construction.
// Active scenes are framed in ascending key order.
//
// Parameters:
//   - key: the ordering key (lower frames first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}
