package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound (must be >= lo)
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]. NaN maps to 0.
func Clamp01(v float32) float32 {
	if v != v {
		return 0
	}
	return Clamp(v, 0, 1)
}

// Sign returns -1, 0 or 1 according to the sign of v. Sign(0) is 0.
func Sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Damp moves current toward target by the fraction f of the remaining distance.
// With f in (0, 1) repeated calls converge geometrically on target.
//
// Parameters:
//   - current: the live value
//   - target: the desired value
//   - f: the fraction of the gap closed this step
//
// Returns:
//   - float32: the damped value
func Damp(current, target, f float32) float32 {
	return current + (target-current)*f
}

// DampFactor converts a per-frame damping rate tuned at a reference frame interval into the
// factor for an arbitrary interval dt. The result is 1 - exp(-k*dt) with k = -ln(1-rate)/refDt,
// so DampFactor(rate, refDt, refDt) == rate and two half-steps equal one full step.
//
// Parameters:
//   - rate: per-frame damping rate at the reference interval, in (0, 1)
//   - dt: elapsed time of this step in seconds
//   - refDt: reference frame interval in seconds (e.g. 1/60)
//
// Returns:
//   - float32: the damping factor for this step, in [0, 1)
func DampFactor(rate, dt, refDt float32) float32 {
	if dt <= 0 || refDt <= 0 {
		return 0
	}
	k := -math32.Log(1-rate) / refDt
	return 1 - math32.Exp(-k*dt)
}

// Rad converts degrees to radians.
func Rad(deg float32) float32 {
	return mgl32.DegToRad(deg)
}

// Deg converts radians to degrees.
func Deg(rad float32) float32 {
	return mgl32.RadToDeg(rad)
}

// ApproxEqual reports whether a and b differ by no more than eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
