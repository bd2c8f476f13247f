package loader

import (
	"io"
)

// sceneNode is a named node of a loaded scene with its world-space position.
type sceneNode struct {
	name  string
	world [3]float32
	mesh  bool
}

// loaderBackend defines the generic interface for reading named scene nodes from files or streams.
// Concrete implementations (e.g., gltfLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Load reads every named node of the file's default scene.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - []sceneNode: the named nodes in traversal order
	//   - error: error if loading fails
	Load(path string) ([]sceneNode, error)

	// LoadReader reads every named node of the stream's default scene.
	//
	// Parameters:
	//   - r: the reader providing scene data
	//   - isGLB: true if the reader provides GLB binary data, false for text-based formats
	//
	// Returns:
	//   - []sceneNode: the named nodes in traversal order
	//   - error: error if loading fails
	LoadReader(r io.Reader, isGLB bool) ([]sceneNode, error)
}
