package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaults(t *testing.T) {
	g := NewGameObject()
	if !g.Enabled() {
		t.Errorf("Expected new objects to be enabled")
	}
	if sx, sy, sz := g.Scale(); sx != 1 || sy != 1 || sz != 1 {
		t.Errorf("Expected unit scale, got %v %v %v", sx, sy, sz)
	}
}

func TestFromElements(t *testing.T) {
	els := []*common.Element{
		{Name: "Card_1", Position: [3]float32{1, 2, 3}, CastShadow: true},
		{Name: "Card_2", Position: [3]float32{4, 5, 6}, ReceiveShadow: true},
	}
	objs := FromElements(els)
	if len(objs) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(objs))
	}
	if objs[1].ID() != 2 || objs[1].Name() != "Card_2" {
		t.Errorf("Expected ID 2 named Card_2, got %d %s", objs[1].ID(), objs[1].Name())
	}
	if x, y, z := objs[0].Position(); x != 1 || y != 2 || z != 3 {
		t.Errorf("Expected position (1,2,3), got (%v,%v,%v)", x, y, z)
	}
	if cast, receive := objs[0].Shadows(); !cast || receive {
		t.Errorf("Expected shadow flags copied, got %v %v", cast, receive)
	}
}

func TestSetPanelTransform(t *testing.T) {
	g := NewGameObject(WithPosition(1, 2, 3), WithRotation(0.5, 0, 0))
	g.SetPanelTransform(common.AxisY, 7, 0.05, 0.1, -0.2)

	pos, rot, _ := g.TransformData()
	if pos != [3]float32{1, 7, 3} {
		t.Errorf("Expected position (1,7,3), got %v", pos)
	}
	if rot != [3]float32{0.05, 0.1, -0.2} {
		t.Errorf("Expected rotation (0.05,0.1,-0.2), got %v", rot)
	}
	if g.RestPosition() != [3]float32{1, 2, 3} {
		t.Errorf("Expected rest position unchanged, got %v", g.RestPosition())
	}

	// Writing again starts from the rest position, not the previous offset.
	g.SetPanelTransform(common.AxisX, 9, 0, 0, 0)
	if x, y, _ := g.Position(); x != 9 || y != 2 {
		t.Errorf("Expected (9,2,_), got (%v,%v,_)", x, y)
	}
}

func TestModelMatrixTranslation(t *testing.T) {
	g := NewGameObject(WithPosition(1, 2, 3))
	m := g.ModelMatrix()
	if !m.ApproxEqual(mgl32.Translate3D(1, 2, 3)) {
		t.Errorf("Expected pure translation, got %v", m)
	}
}

func TestModelMatrixYaw(t *testing.T) {
	g := NewGameObject()
	g.SetRotation(0, mgl32.DegToRad(90), 0)
	v := g.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	// +X rotated 90 degrees about Y points along -Z.
	if !v.ApproxEqualThreshold(mgl32.Vec4{0, 0, -1, 1}, 1e-5) {
		t.Errorf("Expected (0,0,-1,1), got %v", v)
	}
}
