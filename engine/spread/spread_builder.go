package spread

import "github.com/Carmen-Shannon/oxy-spread/common"

// DriverBuilderOption is a functional option for configuring a Driver.
type DriverBuilderOption func(*driver)

// WithPositionDamping sets the per-frame position damping rate shared by all panels at the reference cadence.
// Must lie in (0, 1). Defaults to 0.1.
//
// Parameters:
//   - rate: the damping rate
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithPositionDamping(rate float32) DriverBuilderOption {
	return func(d *driver) {
		d.positionDamping = rate
	}
}

// WithSpreadGain sets how far a fully weighted panel travels at full spacing factor, before the safe limit.
// Defaults to 1.2.
//
// Parameters:
//   - gain: travel in world units
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithSpreadGain(gain float32) DriverBuilderOption {
	return func(d *driver) {
		d.spreadGain = gain
	}
}

// WithChainedGain sets the extra fraction of rest spacing added at full spacing factor in Chained mode.
// Defaults to 0.5.
//
// Parameters:
//   - gain: fraction of rest spacing
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithChainedGain(gain float32) DriverBuilderOption {
	return func(d *driver) {
		d.chainedGain = gain
	}
}

// WithBoost sets the spacing factor above which commit candidates lean outward, and by how much.
// Defaults to 0.95 and 2 degrees.
//
// Parameters:
//   - threshold: spacing factor that must be exceeded
//   - deg: extra yaw in degrees, signed by each panel's direction
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithBoost(threshold, deg float32) DriverBuilderOption {
	return func(d *driver) {
		d.boostThreshold = threshold
		d.boostYaw = common.Rad(deg)
	}
}

// WithTiltDeg sets the tilt magnitude at full spacing factor, in degrees. Defaults to 2.
//
// Parameters:
//   - deg: tilt in degrees
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithTiltDeg(deg float32) DriverBuilderOption {
	return func(d *driver) {
		d.tiltMax = common.Rad(deg)
	}
}

// WithChainedRotation sets how far chained panels pitch and roll toward the pointer, in degrees.
// A pointer at the top edge pitches every panel by deg and one at the right edge rolls it by deg.
// Defaults to 4; 0 keeps chained panels flat. Weighted layouts ignore it.
//
// Parameters:
//   - deg: rotation at the screen edge in degrees
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithChainedRotation(deg float32) DriverBuilderOption {
	return func(d *driver) {
		d.chainedRotation = common.Rad(deg)
	}
}

// WithCommitPolicy sets how delayed rotation commits are armed. Defaults to CommitPolicySingle.
//
// Parameters:
//   - policy: the commit policy
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithCommitPolicy(policy CommitPolicy) DriverBuilderOption {
	return func(d *driver) {
		d.policy = policy
	}
}

// WithReferenceRate sets the frame rate the damping rates are tuned for. Damping is rescaled for
// any other frame interval so the motion looks the same at every refresh rate. Defaults to 60.
//
// Parameters:
//   - fps: reference frames per second
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithReferenceRate(fps float32) DriverBuilderOption {
	return func(d *driver) {
		if fps <= 0 {
			d.refDt = 0
			return
		}
		d.refDt = 1 / fps
	}
}

// WithSpringYaw replaces exponential yaw damping with a damped spring.
//
// Parameters:
//   - frequency: angular frequency of the spring
//   - dampingRatio: damping ratio (1 = critically damped)
//
// Returns:
//   - DriverBuilderOption: option function to apply
func WithSpringYaw(frequency, dampingRatio float64) DriverBuilderOption {
	return func(d *driver) {
		d.yawSmoothing = YawSmoothingSpring
		d.springFrequency = frequency
		d.springDamping = dampingRatio
	}
}
