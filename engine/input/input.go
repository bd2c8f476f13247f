package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/chewxy/math32"
)

// Signal is the pointer-derived input read by the animation driver once per frame.
// The host owns a single Signal; only the pointer mapper writes it.
type Signal struct {
	// SpacingFactor in [0, 1] controls how far panels spread apart.
	SpacingFactor float32

	// TargetYaw is the desired panel rotation about the vertical axis, in radians.
	TargetYaw float32

	// PointerX is the signed horizontal pointer position in [-1, 1], positive right of center.
	PointerX float32

	// PointerY is the signed vertical pointer position in [-1, 1], positive above center.
	PointerY float32
}

// Mapping selects how vertical pointer distance becomes a spacing factor.
type Mapping int

const (
	// MappingDistance uses the normalized vertical distance from screen center directly.
	MappingDistance Mapping = iota

	// MappingInverted uses one minus the normalized vertical distance, so the spread is widest at center.
	MappingInverted

	// MappingUpper spreads only while the pointer is above center; the lower half reads as zero.
	MappingUpper
)

// String returns the configuration name of the mapping.
func (m Mapping) String() string {
	switch m {
	case MappingDistance:
		return "distance"
	case MappingInverted:
		return "inverted"
	case MappingUpper:
		return "upper"
	}
	return fmt.Sprintf("mapping(%d)", int(m))
}

// ParseMapping converts "distance", "inverted" or "upper" into a Mapping.
func ParseMapping(s string) (Mapping, error) {
	switch s {
	case "distance", "":
		return MappingDistance, nil
	case "inverted":
		return MappingInverted, nil
	case "upper":
		return MappingUpper, nil
	}
	return MappingDistance, fmt.Errorf("unknown pointer mapping %q", s)
}

// DefaultMaxYawDeg is the yaw produced by a pointer at the horizontal screen edge.
const DefaultMaxYawDeg = 5

// mapper is the implementation of the Mapper interface.
type mapper struct {
	mapping   Mapping
	maxYaw    float32 // radians
	negateYaw bool
}

// Mapper converts raw pointer coordinates into a Signal. It never reads panel state.
type Mapper interface {
	// Map computes the signal for a pointer at (x, y) on a viewport of width w and height h.
	// A non-positive dimension is treated as a pointer resting at the center of that dimension.
	//
	// Parameters:
	//   - x, y: pointer position in pixels, origin top-left
	//   - w, h: viewport size in pixels
	//
	// Returns:
	//   - Signal: the mapped signal with both fields clamped
	Map(x, y, w, h float32) Signal

	// Apply writes the mapped signal into sig.
	//
	// Parameters:
	//   - sig: the signal to overwrite
	//   - x, y: pointer position in pixels
	//   - w, h: viewport size in pixels
	Apply(sig *Signal, x, y, w, h float32)

	// Mapping returns the configured vertical mapping.
	//
	// Returns:
	//   - Mapping: the mapping
	Mapping() Mapping

	// MaxYaw returns the yaw at the horizontal edge, in radians.
	//
	// Returns:
	//   - float32: the maximum yaw magnitude
	MaxYaw() float32
}

var _ Mapper = &mapper{}

// NewMapper creates a pointer Mapper with the given options.
// Defaults to MappingDistance and a 5 degree maximum yaw.
//
// Parameters:
//   - options: functional options to configure the mapper
//
// Returns:
//   - Mapper: the configured mapper
func NewMapper(options ...MapperBuilderOption) Mapper {
	m := &mapper{
		mapping: MappingDistance,
		maxYaw:  common.Rad(DefaultMaxYawDeg),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *mapper) Map(x, y, w, h float32) Signal {
	ny := float32(0)
	if h > 0 {
		half := h / 2
		ny = common.Clamp((half-y)/half, -1, 1)
	}

	var factor float32
	switch m.mapping {
	case MappingInverted:
		factor = 1 - math32.Abs(ny)
	case MappingUpper:
		factor = ny
	default:
		factor = math32.Abs(ny)
	}

	nx := float32(0)
	if w > 0 {
		half := w / 2
		nx = common.Clamp((x-half)/half, -1, 1)
	}
	yaw := nx * m.maxYaw
	if m.negateYaw {
		yaw = -yaw
	}

	return Signal{
		SpacingFactor: common.Clamp01(factor),
		TargetYaw:     yaw,
		PointerX:      nx,
		PointerY:      ny,
	}
}

func (m *mapper) Apply(sig *Signal, x, y, w, h float32) {
	*sig = m.Map(x, y, w, h)
}

func (m *mapper) Mapping() Mapping {
	return m.mapping
}

func (m *mapper) MaxYaw() float32 {
	return m.maxYaw
}
