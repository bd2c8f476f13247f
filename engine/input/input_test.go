package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spread/common"
)

func TestMapDistance(t *testing.T) {
	m := NewMapper()
	cases := []struct {
		y, want float32
	}{
		{300, 0},
		{150, 0.5},
		{450, 0.5},
		{0, 1},
		{600, 1},
		{-200, 1},
		{900, 1},
	}
	for _, c := range cases {
		got := m.Map(400, c.y, 800, 600).SpacingFactor
		if !common.ApproxEqual(got, c.want, 1e-6) {
			t.Errorf("y=%v: expected spacing %v, got %v", c.y, c.want, got)
		}
	}
}

func TestMapInverted(t *testing.T) {
	m := NewMapper(WithMapping(MappingInverted))
	if got := m.Map(400, 300, 800, 600).SpacingFactor; got != 1 {
		t.Errorf("Expected 1 at center, got %v", got)
	}
	if got := m.Map(400, 0, 800, 600).SpacingFactor; got != 0 {
		t.Errorf("Expected 0 at edge, got %v", got)
	}
	if got := m.Map(400, -500, 800, 600).SpacingFactor; got != 0 {
		t.Errorf("Expected 0 beyond edge, got %v", got)
	}
}

func TestMapUpper(t *testing.T) {
	m := NewMapper(WithMapping(MappingUpper))
	cases := []struct {
		y, want float32
	}{
		{0, 1},
		{150, 0.5},
		{300, 0},
		{450, 0},
		{600, 0},
		{-100, 1},
	}
	for _, c := range cases {
		got := m.Map(400, c.y, 800, 600).SpacingFactor
		if !common.ApproxEqual(got, c.want, 1e-6) {
			t.Errorf("y=%v: expected spacing %v, got %v", c.y, c.want, got)
		}
	}
}

func TestMapSignedPointer(t *testing.T) {
	m := NewMapper()
	sig := m.Map(600, 450, 800, 600)
	if !common.ApproxEqual(sig.PointerX, 0.5, 1e-6) || !common.ApproxEqual(sig.PointerY, -0.5, 1e-6) {
		t.Errorf("Expected pointer (0.5, -0.5), got (%v, %v)", sig.PointerX, sig.PointerY)
	}
	sig = m.Map(-400, -900, 800, 600)
	if sig.PointerX != -1 || sig.PointerY != 1 {
		t.Errorf("Expected clamped pointer (-1, 1), got (%v, %v)", sig.PointerX, sig.PointerY)
	}
}

func TestMapYaw(t *testing.T) {
	m := NewMapper(WithMaxYawDeg(6))
	max := common.Rad(6)
	if got := m.Map(800, 300, 800, 600).TargetYaw; !common.ApproxEqual(got, max, 1e-6) {
		t.Errorf("Expected %v at right edge, got %v", max, got)
	}
	if got := m.Map(0, 300, 800, 600).TargetYaw; !common.ApproxEqual(got, -max, 1e-6) {
		t.Errorf("Expected %v at left edge, got %v", -max, got)
	}
	if got := m.Map(5000, 300, 800, 600).TargetYaw; !common.ApproxEqual(got, max, 1e-6) {
		t.Errorf("Expected clamped yaw %v, got %v", max, got)
	}
	if got := m.Map(400, 300, 800, 600).TargetYaw; got != 0 {
		t.Errorf("Expected 0 at center, got %v", got)
	}
}

func TestMapNegateYaw(t *testing.T) {
	m := NewMapper(WithNegateYaw(true))
	if got := m.Map(800, 300, 800, 600).TargetYaw; got >= 0 {
		t.Errorf("Expected negative yaw at right edge, got %v", got)
	}
}

func TestMapZeroViewport(t *testing.T) {
	m := NewMapper()
	sig := m.Map(10, 10, 0, 0)
	if sig.SpacingFactor != 0 || sig.TargetYaw != 0 {
		t.Errorf("Expected rest signal for empty viewport, got %+v", sig)
	}
}

func TestApply(t *testing.T) {
	m := NewMapper()
	sig := Signal{SpacingFactor: 0.7, TargetYaw: 1}
	m.Apply(&sig, 400, 0, 800, 600)
	if sig.SpacingFactor != 1 || sig.TargetYaw != 0 {
		t.Errorf("Expected {1 0}, got %+v", sig)
	}
}

func TestParseMapping(t *testing.T) {
	if m, err := ParseMapping("inverted"); err != nil || m != MappingInverted {
		t.Errorf("Expected inverted, got %v (%v)", m, err)
	}
	if m, err := ParseMapping("upper"); err != nil || m != MappingUpper || m.String() != "upper" {
		t.Errorf("Expected upper, got %v (%v)", m, err)
	}
	if _, err := ParseMapping("radial"); err == nil {
		t.Errorf("Expected error for unknown mapping")
	}
}
