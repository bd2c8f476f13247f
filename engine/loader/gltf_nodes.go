package loader

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	errNodeIndex = errors.New("node index out of range")
	errNodeCycle = errors.New("node hierarchy contains a cycle")
)

// localMatrix returns the node's local transform: its matrix when present, otherwise T * R * S.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#transformations
func (n *gltfNode) localMatrix() mgl32.Mat4 {
	if n.Matrix != nil {
		return mgl32.Mat4(*n.Matrix)
	}

	m := mgl32.Ident4()
	if t := n.Translation; t != nil {
		m = mgl32.Translate3D(t[0], t[1], t[2])
	}
	if r := n.Rotation; r != nil {
		// glTF stores quaternions as (x, y, z, w).
		q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		m = m.Mul4(q.Normalize().Mat4())
	}
	if s := n.Scale; s != nil {
		m = m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	}
	return m
}

// sceneRoots returns the root node indices of the document's default scene.
// Without scenes, every node that is nobody's child is a root.
func sceneRoots(doc *gltfDocument) ([]int, error) {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil {
			idx = *doc.Scene
		}
		if idx < 0 || idx >= len(doc.Scenes) {
			return nil, fmt.Errorf("default scene %d of %d: %w", idx, len(doc.Scenes), errNodeIndex)
		}
		return doc.Scenes[idx].Nodes, nil
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

// walkNodes visits every named node reachable from the default scene depth-first, in document order,
// passing its name, world-space position and whether it draws a mesh.
func walkNodes(doc *gltfDocument, visit func(name string, world [3]float32, mesh bool)) error {
	roots, err := sceneRoots(doc)
	if err != nil {
		return err
	}

	onPath := make([]bool, len(doc.Nodes))
	var walk func(idx int, parent mgl32.Mat4) error
	walk = func(idx int, parent mgl32.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node %d: %w", idx, errNodeIndex)
		}
		if onPath[idx] {
			return fmt.Errorf("node %d: %w", idx, errNodeCycle)
		}
		onPath[idx] = true
		defer func() { onPath[idx] = false }()

		node := &doc.Nodes[idx]
		world := parent.Mul4(node.localMatrix())
		if node.Name != "" {
			visit(node.Name, world.Col(3).Vec3(), node.Mesh != nil)
		}
		for _, c := range node.Children {
			if err := walk(c, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range roots {
		if err := walk(r, mgl32.Ident4()); err != nil {
			return err
		}
	}
	return nil
}
