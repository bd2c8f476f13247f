package common

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float32
	}{
		{0.5, 0, 1, 0.5},
		{-2, -1, 1, -1},
		{3, -1, 1, 1},
		{1, 1, 1, 1},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v): expected %v, got %v", c.v, c.lo, c.hi, c.want, got)
		}
	}
}

func TestClamp01NaN(t *testing.T) {
	var zero float32
	nan := zero / zero
	if got := Clamp01(nan); got != 0 {
		t.Errorf("Expected NaN to clamp to 0, got %v", got)
	}
	if got := Clamp01(1.5); got != 1 {
		t.Errorf("Expected 1, got %v", got)
	}
}

func TestSign(t *testing.T) {
	if Sign(0) != 0 {
		t.Errorf("Expected Sign(0) == 0, got %v", Sign(0))
	}
	if Sign(-0.001) != -1 {
		t.Errorf("Expected -1, got %v", Sign(-0.001))
	}
	if Sign(42) != 1 {
		t.Errorf("Expected 1, got %v", Sign(42))
	}
}

func TestDampFactorMatchesReferenceRate(t *testing.T) {
	const ref = float32(1.0 / 60.0)
	for _, rate := range []float32{0.05, 0.1, 0.5} {
		got := DampFactor(rate, ref, ref)
		if !ApproxEqual(got, rate, 1e-5) {
			t.Errorf("Expected factor %v at reference interval, got %v", rate, got)
		}
	}
}

func TestDampFactorComposes(t *testing.T) {
	// Two half-interval steps must land where one full step does.
	const ref = float32(1.0 / 60.0)
	full := Damp(0, 1, DampFactor(0.1, ref, ref))

	half := DampFactor(0.1, ref/2, ref)
	v := Damp(0, 1, half)
	v = Damp(v, 1, half)

	if !ApproxEqual(full, v, 1e-5) {
		t.Errorf("Expected two half steps (%v) to equal one full step (%v)", v, full)
	}
}

func TestDampFactorNonPositiveDt(t *testing.T) {
	if got := DampFactor(0.1, 0, 1.0/60.0); got != 0 {
		t.Errorf("Expected 0 for dt == 0, got %v", got)
	}
	if got := DampFactor(0.1, -1, 1.0/60.0); got != 0 {
		t.Errorf("Expected 0 for negative dt, got %v", got)
	}
}

func TestRadDegRoundTrip(t *testing.T) {
	if got := Deg(Rad(2)); !ApproxEqual(got, 2, 1e-5) {
		t.Errorf("Expected 2 degrees after round trip, got %v", got)
	}
}

func TestParseAxis(t *testing.T) {
	for s, want := range map[string]Axis{"x": AxisX, "y": AxisY, "z": AxisZ, "": AxisY} {
		got, err := ParseAxis(s)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q): expected %v, got %v (err %v)", s, want, got, err)
		}
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Errorf("Expected error for unknown axis")
	}
}
