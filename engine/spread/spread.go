package spread

import (
	"time"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/Carmen-Shannon/oxy-spread/engine/input"
	"github.com/Carmen-Shannon/oxy-spread/engine/panel"
)

// Default tuning of the card spread.
const (
	DefaultPositionDamping    = float32(0.1)
	DefaultSpreadGain         = float32(1.2)
	DefaultChainedGain        = float32(0.5)
	DefaultBoostThreshold     = float32(0.95)
	DefaultBoostDeg           = float32(2)
	DefaultTiltDeg            = float32(2)
	DefaultChainedRotationDeg = float32(4)
	DefaultReferenceRate      = 60.0
	DefaultSpringFrequency    = 6.0
	DefaultSpringDampingRatio = 0.8
)

// YawSmoothing selects how the live yaw follows its target.
type YawSmoothing int

const (
	// YawSmoothingExponential closes a fixed fraction of the gap each reference frame.
	YawSmoothingExponential YawSmoothing = iota

	// YawSmoothingSpring follows the target with a damped spring.
	YawSmoothingSpring
)

// Transform is the per-panel output written back into the host's renderables each frame.
type Transform struct {
	// Index is the panel index.
	Index int

	// Offset is the live position along the spread axis.
	Offset float32

	// Yaw is the live rotation about the vertical axis, in radians.
	Yaw float32

	// Tilt is the rotation about the depth axis, in radians.
	Tilt float32

	// Pitch is the rotation about the horizontal axis, in radians. Only chained layouts pitch.
	Pitch float32
}

// driver is the implementation of the Driver interface.
type driver struct {
	reg     panel.Registry
	records []*panel.Record
	commits *commitQueue
	tilts   []float32
	pitches []float32
	out     []Transform

	positionDamping float32
	spreadGain      float32
	chainedGain     float32
	boostThreshold  float32
	boostYaw        float32
	tiltMax         float32
	chainedRotation float32
	policy          CommitPolicy
	refDt           float32
	yawSmoothing    YawSmoothing
	springFrequency float64
	springDamping   float64

	lastFrame time.Time
	started   bool
	stopped   bool
	frames    uint64
	fired     uint64
}

// Driver advances the panels of one registry toward the pointer-derived targets, one frame at a time.
// All methods must be called from the goroutine that owns the frame loop.
type Driver interface {
	// Frame advances every panel by one frame. In a weighted layout commits due at or before now fire
	// first, then positions, yaw, new commits and tilt are updated from sig. In a chained layout positions
	// are placed and pitch and roll follow the pointer. Calls after Stop are ignored.
	//
	// Parameters:
	//   - now: the frame timestamp
	//   - sig: the input signal, read once for the whole frame
	Frame(now time.Time, sig input.Signal)

	// Transforms returns the per-panel output of the last frame. The slice is reused between frames.
	//
	// Returns:
	//   - []Transform: one entry per panel, in spread order
	Transforms() []Transform

	// Snapshot returns a copy of every panel record.
	//
	// Returns:
	//   - []panel.Record: copied records
	Snapshot() []panel.Record

	// Registry returns the registry being driven.
	//
	// Returns:
	//   - panel.Registry: the registry
	Registry() panel.Registry

	// PendingCommits returns the number of armed commits that have not fired.
	//
	// Returns:
	//   - int: pending commit count
	PendingCommits() int

	// Frames returns the number of frames processed.
	//
	// Returns:
	//   - uint64: frame count
	Frames() uint64

	// FiredCommits returns the number of commits that have fired.
	//
	// Returns:
	//   - uint64: fired commit count
	FiredCommits() uint64

	// Stop cancels every pending commit and stops the driver. Safe to call more than once.
	//
	// Returns:
	//   - int: the number of commits cancelled by this call
	Stop() int

	// Stopped reports whether Stop has been called.
	//
	// Returns:
	//   - bool: true once stopped
	Stopped() bool
}

var _ Driver = &driver{}

// NewDriver creates a Driver for reg with the given options.
//
// Parameters:
//   - reg: the panel registry to drive
//   - options: functional options for tuning
//
// Returns:
//   - Driver: the driver
//   - error: *panel.ConfigurationError if a tuning value would make the animation unstable
func NewDriver(reg panel.Registry, options ...DriverBuilderOption) (Driver, error) {
	d := &driver{
		reg:             reg,
		positionDamping: DefaultPositionDamping,
		spreadGain:      DefaultSpreadGain,
		chainedGain:     DefaultChainedGain,
		boostThreshold:  DefaultBoostThreshold,
		boostYaw:        common.Rad(DefaultBoostDeg),
		tiltMax:         common.Rad(DefaultTiltDeg),
		chainedRotation: common.Rad(DefaultChainedRotationDeg),
		policy:          CommitPolicySingle,
		refDt:           1 / DefaultReferenceRate,
		yawSmoothing:    YawSmoothingExponential,
		springFrequency: DefaultSpringFrequency,
		springDamping:   DefaultSpringDampingRatio,
	}
	for _, opt := range options {
		opt(d)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	d.records = reg.Records()
	d.commits = newCommitQueue(d.policy, len(d.records))
	d.tilts = make([]float32, len(d.records))
	d.pitches = make([]float32, len(d.records))
	d.out = make([]Transform, len(d.records))
	d.collect()

	return d, nil
}

func (d *driver) validate() error {
	if d.reg == nil || d.reg.Len() == 0 {
		return &panel.RegistryBuildError{Reason: "driver needs a non-empty registry", Index: -1}
	}
	if !(d.positionDamping > 0 && d.positionDamping < 1) {
		return &panel.ConfigurationError{Field: "position_damping", Reason: "must lie in (0, 1)"}
	}
	if d.refDt <= 0 {
		return &panel.ConfigurationError{Field: "reference_rate", Reason: "must be positive"}
	}
	if d.spreadGain < 0 || d.chainedGain < 0 {
		return &panel.ConfigurationError{Field: "spread_gain", Reason: "gains must not be negative"}
	}
	if d.chainedRotation < 0 {
		return &panel.ConfigurationError{Field: "chained_rotation_deg", Reason: "must not be negative"}
	}
	if d.policy != CommitPolicySingle && d.policy != CommitPolicyQueue {
		return &panel.ConfigurationError{Field: "commit_policy", Reason: "unknown policy"}
	}
	if d.yawSmoothing == YawSmoothingSpring && (d.springFrequency <= 0 || d.springDamping <= 0) {
		return &panel.ConfigurationError{Field: "spring", Reason: "frequency and damping ratio must be positive"}
	}
	return nil
}

func (d *driver) Frame(now time.Time, sig input.Signal) {
	if d.stopped {
		return
	}
	dt := d.advance(now)
	sf := common.Clamp01(sig.SpacingFactor)

	d.fired += uint64(d.commits.fire(now, d.records))

	switch d.reg.Mode() {
	case panel.LayoutWeighted:
		d.updateWeightedPositions(sf, dt)
		d.updateYaw(dt)
		d.armCommits(now, sf, sig.TargetYaw)
		d.updateTilt(sf)
	case panel.LayoutChained:
		d.updateChainedPositions(sf)
		d.updateChainedRotation(sig.PointerX, sig.PointerY, dt)
	}

	d.frames++
	d.collect()
}

// advance records now as the latest frame time and returns the elapsed seconds.
// The first frame counts as one reference interval; time going backwards counts as zero.
func (d *driver) advance(now time.Time) float32 {
	if !d.started {
		d.started = true
		d.lastFrame = now
		return d.refDt
	}
	dt := float32(now.Sub(d.lastFrame).Seconds())
	if dt < 0 {
		dt = 0
	} else {
		d.lastFrame = now
	}
	return dt
}

func (d *driver) collect() {
	for i, rec := range d.records {
		d.out[i] = Transform{
			Index:  rec.Index,
			Offset: rec.CurrentOffset,
			Yaw:    rec.CurrentYaw,
			Tilt:   d.tilts[i],
			Pitch:  d.pitches[i],
		}
	}
}

func (d *driver) Transforms() []Transform {
	return d.out
}

func (d *driver) Snapshot() []panel.Record {
	out := make([]panel.Record, len(d.records))
	for i, rec := range d.records {
		out[i] = *rec
	}
	return out
}

func (d *driver) Registry() panel.Registry {
	return d.reg
}

func (d *driver) PendingCommits() int {
	return d.commits.len()
}

func (d *driver) Frames() uint64 {
	return d.frames
}

func (d *driver) FiredCommits() uint64 {
	return d.fired
}

func (d *driver) Stop() int {
	if d.stopped {
		return 0
	}
	d.stopped = true
	return d.commits.cancel(d.records)
}

func (d *driver) Stopped() bool {
	return d.stopped
}
