package panel

import (
	"math/rand/v2"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/common"
)

// RegistryBuilderOption is a functional option for configuring a Registry during Build.
type RegistryBuilderOption func(*registry)

// WithLayoutMode selects the layout mode. Defaults to LayoutWeighted.
//
// Parameters:
//   - mode: the layout mode
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithLayoutMode(mode LayoutMode) RegistryBuilderOption {
	return func(r *registry) {
		r.mode = mode
	}
}

// WithAxis sets the spread axis base offsets are read from. Defaults to common.AxisY.
//
// Parameters:
//   - axis: the spread axis
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithAxis(axis common.Axis) RegistryBuilderOption {
	return func(r *registry) {
		r.axis = axis
	}
}

// WithDelayRange sets the range per-panel commit delays are drawn from. Defaults to 200ms..500ms.
//
// Parameters:
//   - min: shortest delay (must be >= 0)
//   - max: longest delay (must be >= min)
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithDelayRange(min, max time.Duration) RegistryBuilderOption {
	return func(r *registry) {
		r.delayMin = min
		r.delayMax = max
	}
}

// WithDampingRange sets the range per-panel yaw damping rates are drawn from. Defaults to 0.05..0.10.
//
// Parameters:
//   - min: lowest rate, in (0, 1)
//   - max: highest rate, in (0, 1) and >= min
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithDampingRange(min, max float32) RegistryBuilderOption {
	return func(r *registry) {
		r.rateMin = min
		r.rateMax = max
	}
}

// WithSafeRatio sets the fraction of the distance to the center a panel may travel. Defaults to 0.9.
//
// Parameters:
//   - ratio: the safe travel fraction, in (0, 1]
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithSafeRatio(ratio float32) RegistryBuilderOption {
	return func(r *registry) {
		r.safeRatio = ratio
	}
}

// WithRand sets the random source for per-panel timing draws. Use a seeded source for reproducible builds.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithRand(rng *rand.Rand) RegistryBuilderOption {
	return func(r *registry) {
		r.rng = rng
	}
}

// WithShadows controls whether Build marks elements as shadow casters and receivers. Defaults to true.
//
// Parameters:
//   - enabled: true to set the shadow flags
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithShadows(enabled bool) RegistryBuilderOption {
	return func(r *registry) {
		r.shadows = enabled
	}
}
