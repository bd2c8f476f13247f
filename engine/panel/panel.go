package panel

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

// LayoutMode selects which derived fields a registry populates and how the driver moves its panels.
type LayoutMode int

const (
	// LayoutWeighted spreads panels away from a designated center, each by its own spacing weight,
	// with damped positions and delayed rotation commits.
	LayoutWeighted LayoutMode = iota

	// LayoutChained places each panel relative to its predecessor using a uniform spacing factor.
	// There is no center, no per-panel timing, and no damping.
	LayoutChained
)

// String returns the configuration name of the mode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutWeighted:
		return "weighted"
	case LayoutChained:
		return "chained"
	}
	return fmt.Sprintf("layout(%d)", int(m))
}

// ParseLayoutMode converts "weighted" or "chained" into a LayoutMode.
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch s {
	case "weighted", "":
		return LayoutWeighted, nil
	case "chained":
		return LayoutChained, nil
	}
	return LayoutWeighted, configError("layout_mode", "unknown layout mode %q", s)
}

// Default tuning of per-panel timing and spread limits.
const (
	DefaultDelayMin       = 200 * time.Millisecond
	DefaultDelayMax       = 500 * time.Millisecond
	DefaultDampingRateMin = float32(0.05)
	DefaultDampingRateMax = float32(0.10)
	DefaultSafeRatio      = float32(0.9)
)

// Record is the live state of one card panel. Records are created by Build, owned by the Registry,
// and mutated every frame by the animation driver.
type Record struct {
	// Index is the stable ordinal in spread order. Its parity picks the tilt sign.
	Index int

	// Name is the identity string of the source element.
	Name string

	// BaseOffset is the rest position along the spread axis.
	BaseOffset float32

	// SpacingWeight in [0, 1] scales the panel's response to the spacing factor. Zero at the center.
	SpacingWeight float32

	// Direction is the sign of BaseOffset relative to the center panel's BaseOffset (Weighted only).
	Direction float32

	// SafeLimit is the largest allowed displacement from BaseOffset (Weighted only).
	SafeLimit float32

	// DistanceToNext is BaseOffset[i+1] - BaseOffset[i]; zero for the last panel (Chained only).
	DistanceToNext float32

	CurrentOffset float32
	TargetOffset  float32

	CurrentYaw float32
	TargetYaw  float32

	// YawVelocity carries spring state when yaw uses spring smoothing.
	YawVelocity float32

	// CommitDelay is how long a rotation commit waits before overwriting TargetYaw (Weighted only).
	CommitDelay time.Duration

	// DampingRate in (0, 1) is the per-frame yaw damping rate at the reference cadence (Weighted only).
	DampingRate float32

	// PendingCommitArmed is true while a delayed commit for this panel is in flight.
	PendingCommitArmed bool
}

// registry is the implementation of the Registry interface.
type registry struct {
	id          string
	mode        LayoutMode
	axis        common.Axis
	centerIndex int
	records     []*Record
	elements    []*common.Element

	// build parameters, applied through RegistryBuilderOption
	delayMin, delayMax time.Duration
	rateMin, rateMax   float32
	safeRatio          float32
	shadows            bool
	rng                *rand.Rand
}

// Registry holds the ordered panel records extracted once from a loaded scene.
// It is built at load time and read-mostly afterward; only the records' live fields change.
type Registry interface {
	// ID returns a unique identifier assigned at build time.
	//
	// Returns:
	//   - string: the registry ID
	ID() string

	// Mode returns the layout mode the registry was built for.
	//
	// Returns:
	//   - LayoutMode: Weighted or Chained
	Mode() LayoutMode

	// Axis returns the spread axis the base offsets were read from.
	//
	// Returns:
	//   - common.Axis: the spread axis
	Axis() common.Axis

	// CenterIndex returns the index of the center panel, or -1 in Chained mode.
	//
	// Returns:
	//   - int: the center index
	CenterIndex() int

	// Len returns the number of panels.
	//
	// Returns:
	//   - int: the panel count
	Len() int

	// Record returns the record at index i, or nil if i is out of range.
	//
	// Parameters:
	//   - i: the panel index
	//
	// Returns:
	//   - *Record: the live record
	Record(i int) *Record

	// Records returns the live records in spread order. The slice is shared; do not append to it.
	//
	// Returns:
	//   - []*Record: all records
	Records() []*Record

	// Elements returns the source elements in spread order.
	//
	// Returns:
	//   - []*common.Element: the elements the registry was built from
	Elements() []*common.Element
}

var _ Registry = &registry{}

// Build creates a Registry from elements already sorted in spread order (see SortByNameSuffix).
// In Weighted mode centerIndex designates the panel with spacing weight 0; in Chained mode it is ignored.
// Per-panel delay and damping rate are drawn uniformly from the configured ranges.
// The only change made to the elements is setting their shadow flags when shadows are enabled.
//
// Parameters:
//   - elements: the sorted elements, one per panel
//   - centerIndex: index of the center panel (Weighted mode)
//   - options: functional options for layout mode, axis, and timing ranges
//
// Returns:
//   - Registry: the built registry
//   - error: *ConfigurationError for invalid tuning, *RegistryBuildError for invalid input
func Build(elements []*common.Element, centerIndex int, options ...RegistryBuilderOption) (Registry, error) {
	r := &registry{
		id:          uuid.NewString(),
		mode:        LayoutWeighted,
		axis:        common.AxisY,
		centerIndex: centerIndex,
		delayMin:    DefaultDelayMin,
		delayMax:    DefaultDelayMax,
		rateMin:     DefaultDampingRateMin,
		rateMax:     DefaultDampingRateMax,
		safeRatio:   DefaultSafeRatio,
		shadows:     true,
	}
	for _, opt := range options {
		opt(r)
	}

	if err := r.validateConfig(); err != nil {
		return nil, err
	}
	if err := r.validateInput(elements); err != nil {
		return nil, err
	}

	r.elements = make([]*common.Element, len(elements))
	copy(r.elements, elements)
	r.records = make([]*Record, len(elements))

	for i, el := range elements {
		if r.shadows {
			el.CastShadow = true
			el.ReceiveShadow = true
		}
		base := el.Component(r.axis)
		r.records[i] = &Record{
			Index:         i,
			Name:          el.Name,
			BaseOffset:    base,
			CurrentOffset: base,
			TargetOffset:  base,
		}
	}

	switch r.mode {
	case LayoutWeighted:
		r.populateWeighted()
	case LayoutChained:
		r.centerIndex = -1
		r.populateChained()
	}

	return r, nil
}

func (r *registry) validateConfig() error {
	if r.mode != LayoutWeighted && r.mode != LayoutChained {
		return configError("layout_mode", "unknown layout mode %d", int(r.mode))
	}
	if r.axis < common.AxisX || r.axis > common.AxisZ {
		return configError("axis", "unknown axis %d", int(r.axis))
	}
	if r.mode == LayoutChained {
		return nil
	}
	if r.delayMin < 0 || r.delayMax < 0 {
		return configError("commit_delay", "delay must not be negative (got %v..%v)", r.delayMin, r.delayMax)
	}
	if r.delayMin > r.delayMax {
		return configError("commit_delay", "min %v exceeds max %v", r.delayMin, r.delayMax)
	}
	if !openUnit(r.rateMin) || !openUnit(r.rateMax) {
		return configError("damping_rate", "rates must lie in (0, 1) (got %v..%v)", r.rateMin, r.rateMax)
	}
	if r.rateMin > r.rateMax {
		return configError("damping_rate", "min %v exceeds max %v", r.rateMin, r.rateMax)
	}
	if !(r.safeRatio > 0 && r.safeRatio <= 1) {
		return configError("safe_ratio", "must lie in (0, 1] (got %v)", r.safeRatio)
	}
	return nil
}

func (r *registry) validateInput(elements []*common.Element) error {
	if len(elements) == 0 {
		return buildError(-1, "no elements")
	}
	for i, el := range elements {
		if el == nil {
			return buildError(i, "nil element")
		}
	}
	if r.mode == LayoutWeighted && (r.centerIndex < 0 || r.centerIndex >= len(elements)) {
		return buildError(r.centerIndex, "center index out of bounds for %d elements", len(elements))
	}
	return nil
}

// populateWeighted fills the center-relative fields and draws per-panel timing.
func (r *registry) populateWeighted() {
	c := r.centerIndex
	center := r.records[c].BaseOffset
	for i, rec := range r.records {
		rec.SpacingWeight = spacingWeight(i, c)
		rel := rec.BaseOffset - center
		rec.Direction = common.Sign(rel)
		rec.SafeLimit = r.safeRatio * math32.Abs(rel)
		rec.CommitDelay = r.drawDelay()
		rec.DampingRate = r.drawRate()
	}
}

// populateChained records the rest distance from each panel to the next.
func (r *registry) populateChained() {
	for i := 0; i < len(r.records)-1; i++ {
		r.records[i].DistanceToNext = r.records[i+1].BaseOffset - r.records[i].BaseOffset
	}
}

// spacingWeight is |i - c| / c clamped to [0, 1]. A center at index 0 gives every other panel weight 1.
func spacingWeight(i, c int) float32 {
	if i == c {
		return 0
	}
	if c == 0 {
		return 1
	}
	d := i - c
	if d < 0 {
		d = -d
	}
	return common.Clamp01(float32(d) / float32(c))
}

func (r *registry) drawDelay() time.Duration {
	span := int64(r.delayMax - r.delayMin)
	if span <= 0 {
		return r.delayMin
	}
	var n int64
	if r.rng != nil {
		n = r.rng.Int64N(span + 1)
	} else {
		n = rand.Int64N(span + 1)
	}
	return r.delayMin + time.Duration(n)
}

func (r *registry) drawRate() float32 {
	var u float32
	if r.rng != nil {
		u = r.rng.Float32()
	} else {
		u = rand.Float32()
	}
	return r.rateMin + u*(r.rateMax-r.rateMin)
}

func openUnit(v float32) bool {
	return v > 0 && v < 1
}

func (r *registry) ID() string {
	return r.id
}

func (r *registry) Mode() LayoutMode {
	return r.mode
}

func (r *registry) Axis() common.Axis {
	return r.axis
}

func (r *registry) CenterIndex() int {
	return r.centerIndex
}

func (r *registry) Len() int {
	return len(r.records)
}

func (r *registry) Record(i int) *Record {
	if i < 0 || i >= len(r.records) {
		return nil
	}
	return r.records[i]
}

func (r *registry) Records() []*Record {
	return r.records
}

func (r *registry) Elements() []*common.Element {
	return r.elements
}
