// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "fmt"

// Axis selects one component of a 3D position.
type Axis int

const (
	// AxisX is the horizontal axis.
	AxisX Axis = iota
	// AxisY is the vertical axis. Card spreads fan along Y by default.
	AxisY
	// AxisZ is the depth axis.
	AxisZ
)

// String returns the lowercase axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis converts "x", "y" or "z" into an Axis.
//
// Parameters:
//   - s: the axis letter (case-sensitive, lowercase)
//
// Returns:
//   - Axis: the parsed axis
//   - error: error if s is not a known axis
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x":
		return AxisX, nil
	case "y", "":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return AxisY, fmt.Errorf("unknown axis %q", s)
}

// Element is a named renderable taken from a loaded scene.
// The loader produces these and the panel registry consumes them.
type Element struct {
	// Name is the stable identity string of the element. Card elements carry a numeric suffix (e.g. "Card_07")
	// that defines their order in the spread.
	Name string

	// Position is the element's rest position in world space.
	Position [3]float32

	// CastShadow marks the element as a shadow caster for the rendering host.
	CastShadow bool

	// ReceiveShadow marks the element as a shadow receiver for the rendering host.
	ReceiveShadow bool
}

// Component returns the position component along the given axis.
//
// Parameters:
//   - a: the axis to read
//
// Returns:
//   - float32: the position along a
func (e *Element) Component(a Axis) float32 {
	return e.Position[a]
}
