package loader

import (
	"io"
)

// gltfLoaderBackendImpl is the loaderBackend for glTF/GLB files.
// Each load uses a fresh parser, so a backend may serve concurrent loads.
type gltfLoaderBackendImpl struct{}

var _ loaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - loaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(path string) ([]sceneNode, error) {
	p := newGLTFParser()
	if err := p.Parse(path); err != nil {
		return nil, err
	}
	return collectNodes(p.Document())
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader, isGLB bool) ([]sceneNode, error) {
	p := newGLTFParser()
	if err := p.ParseReader(r, isGLB); err != nil {
		return nil, err
	}
	return collectNodes(p.Document())
}

func collectNodes(doc *gltfDocument) ([]sceneNode, error) {
	var nodes []sceneNode
	err := walkNodes(doc, func(name string, world [3]float32, mesh bool) {
		nodes = append(nodes, sceneNode{name: name, world: world, mesh: mesh})
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}
