package game_object

import "github.com/Carmen-Shannon/oxy-spread/common"

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the name of the GameObject.
//
// Parameters:
//   - name: the element name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering. Objects start enabled.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets both the rest and the current position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rest = [3]float32{x, y, z}
		obj.position = obj.rest
	}
}

// WithScale sets the initial scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the initial rotation of the GameObject in radians.
//
// Parameters:
//   - rx: the x rotation angle
//   - ry: the y rotation angle
//   - rz: the z rotation angle
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithShadows sets the shadow flags handed to the rendering host.
//
// Parameters:
//   - cast: true if the object casts shadows
//   - receive: true if the object receives shadows
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the shadow flags
func WithShadows(cast, receive bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.castShadow = cast
		obj.receiveShadow = receive
	}
}

// WithElement copies name, rest position and shadow flags from a scene element.
//
// Parameters:
//   - el: the source element
//
// Returns:
//   - GameObjectBuilderOption: functional option to bind the element
func WithElement(el *common.Element) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = el.Name
		obj.rest = el.Position
		obj.position = el.Position
		obj.castShadow = el.CastShadow
		obj.receiveShadow = el.ReceiveShadow
	}
}
