package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	id      uint64
	name    string
	enabled atomic.Bool

	mu       sync.RWMutex
	rest     [3]float32
	position [3]float32
	rotation [3]float32
	scale    [3]float32

	castShadow    bool
	receiveShadow bool
}

// GameObject is the renderable transform of one scene element.
// The spread scene writes panel output into it every frame; a rendering host reads it back.
// Transform accessors are safe to call from a goroutine other than the writer.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the name of the element this object renders.
	//
	// Returns:
	//   - string: the element name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// RestPosition returns the position the object was created at.
	//
	// Returns:
	//   - [3]float32: the rest position
	RestPosition() [3]float32

	// Position returns the current position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the current rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the current scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// TransformData reads position, rotation and scale under a single lock.
	//
	// Returns:
	//   - pos: position as [3]float32 (x, y, z)
	//   - rot: rotation as [3]float32 (rx, ry, rz)
	//   - scale: scale as [3]float32 (x, y, z)
	TransformData() (pos, rot, scale [3]float32)

	// ModelMatrix builds the object's model matrix as T * Ry * Rx * Rz * S.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major model matrix
	ModelMatrix() mgl32.Mat4

	// Shadows returns the object's shadow flags.
	//
	// Returns:
	//   - cast: true if the object casts shadows
	//   - receive: true if the object receives shadows
	Shadows() (cast, receive bool)

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition updates the position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation updates the rotation.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles in radians
	SetRotation(rx, ry, rz float32)

	// SetScale updates the scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)

	// SetPanelTransform writes a panel's spread output: offset replaces the rest position along axis,
	// and pitch, yaw and tilt replace the X, Y and Z rotations.
	//
	// Parameters:
	//   - axis: the spread axis
	//   - offset: position along the spread axis
	//   - pitch: rotation about X in radians
	//   - yaw: rotation about Y in radians
	//   - tilt: rotation about Z in radians
	SetPanelTransform(axis common.Axis, offset, pitch, yaw, tilt float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

// FromElements creates one enabled GameObject per element, resting at the element's position.
// IDs are assigned from 1 in element order.
//
// Parameters:
//   - elements: the scene elements
//
// Returns:
//   - []GameObject: the objects, in element order
func FromElements(elements []*common.Element) []GameObject {
	out := make([]GameObject, len(elements))
	for i, el := range elements {
		out[i] = NewGameObject(
			WithID(uint64(i+1)),
			WithElement(el),
		)
	}
	return out
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) RestPosition() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rest
}

func (g *gameObject) Position() (x, y, z float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) TransformData() (pos, rot, scale [3]float32) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position, g.rotation, g.scale
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	pos, rot, scale := g.TransformData()
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3DY(rot[1])).
		Mul4(mgl32.HomogRotate3DX(rot[0])).
		Mul4(mgl32.HomogRotate3DZ(rot[2])).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

func (g *gameObject) Shadows() (cast, receive bool) {
	return g.castShadow, g.receiveShadow
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	g.position = [3]float32{x, y, z}
	g.mu.Unlock()
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	g.rotation = [3]float32{rx, ry, rz}
	g.mu.Unlock()
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	g.scale = [3]float32{sx, sy, sz}
	g.mu.Unlock()
}

func (g *gameObject) SetPanelTransform(axis common.Axis, offset, pitch, yaw, tilt float32) {
	g.mu.Lock()
	g.position = g.rest
	g.position[axis] = offset
	g.rotation = [3]float32{pitch, yaw, tilt}
	g.mu.Unlock()
}
