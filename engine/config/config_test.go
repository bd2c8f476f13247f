package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/Carmen-Shannon/oxy-spread/engine/panel"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.CommitDelayMs.Min != 200 || cfg.CommitDelayMs.Max != 500 {
		t.Errorf("Expected default delays 200..500, got %+v", cfg.CommitDelayMs)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spread.yaml")
	data := []byte(`
asset: deck.glb
center_index: 0
commit_delay_ms:
  min: 100
  max: 150
pointer:
  mapping: upper
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Asset != "deck.glb" {
		t.Errorf("Expected asset deck.glb, got %q", cfg.Asset)
	}
	if cfg.CenterIndex != 0 {
		t.Errorf("Expected explicit center_index 0 to survive, got %d", cfg.CenterIndex)
	}
	if cfg.CommitDelayMs.Max != 150 {
		t.Errorf("Expected max delay 150, got %d", cfg.CommitDelayMs.Max)
	}
	if cfg.Pointer.Mapping != "upper" || cfg.Pointer.MaxYawDeg != 5 {
		t.Errorf("Expected upper mapping with default yaw, got %+v", cfg.Pointer)
	}
	if cfg.DampingRate.Min != panel.DefaultDampingRateMin {
		t.Errorf("Expected default damping min, got %v", cfg.DampingRate.Min)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spread.yaml")
	if err := os.WriteFile(path, []byte("spred_gain: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Expected an error for an unknown key")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spread.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Expected an empty file to load as defaults, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spread.yaml")
	cfg := Default()
	cfg.LayoutMode = "chained"
	cfg.Spring.Frequency = 9
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}
	if got.LayoutMode != "chained" || got.Spring.Frequency != 9 {
		t.Errorf("Expected saved fields back, got %q %v", got.LayoutMode, got.Spring.Frequency)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(c *Config)
	}{
		{"layout_mode", func(c *Config) { c.LayoutMode = "fan" }},
		{"axis", func(c *Config) { c.Axis = "w" }},
		{"center_index", func(c *Config) { c.CenterIndex = -2 }},
		{"commit_delay_ms", func(c *Config) { c.CommitDelayMs.Min = -1 }},
		{"commit_delay_ms", func(c *Config) { c.CommitDelayMs = DelayRange{Min: 600, Max: 500} }},
		{"damping_rate", func(c *Config) { c.DampingRate.Max = 1 }},
		{"damping_rate", func(c *Config) { c.DampingRate = RateRange{Min: 0.2, Max: 0.1} }},
		{"position_damping", func(c *Config) { c.PositionDamping = 0 }},
		{"safe_ratio", func(c *Config) { c.SafeRatio = 1.5 }},
		{"spread_gain", func(c *Config) { c.ChainedGain = -1 }},
		{"chained_rotation_deg", func(c *Config) { c.ChainedRotationDeg = -4 }},
		{"commit_boost_threshold", func(c *Config) { c.CommitBoostThreshold = 2 }},
		{"commit_policy", func(c *Config) { c.CommitPolicy = "latest" }},
		{"yaw_smoothing", func(c *Config) { c.YawSmoothing = "linear" }},
		{"spring", func(c *Config) { c.YawSmoothing = "spring"; c.Spring.Damping = 0 }},
		{"pointer.mapping", func(c *Config) { c.Pointer.Mapping = "radial" }},
		{"pointer.max_yaw_deg", func(c *Config) { c.Pointer.MaxYawDeg = -1 }},
		{"tick_rate", func(c *Config) { c.TickRate = 0 }},
		{"reference_rate", func(c *Config) { c.ReferenceRate = 0 }},
		{"window", func(c *Config) { c.Window.Width = 0 }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		err := cfg.Validate()
		var ce *panel.ConfigurationError
		if !errors.As(err, &ce) {
			t.Errorf("%s: expected ConfigurationError, got %v", tc.field, err)
			continue
		}
		if ce.Field != tc.field {
			t.Errorf("Expected field %q, got %q", tc.field, ce.Field)
		}
	}
}

func TestSoftYawRangeOnlyWarns(t *testing.T) {
	cfg := Default()
	cfg.Pointer.MaxYawDeg = 12
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected out-of-range yaw to be accepted, got %v", err)
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	cp, err := cfg.Clone()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	cp.Asset = "other.gltf"
	cp.Pointer.NegateYaw = true
	if cfg.Asset != "" || cfg.Pointer.NegateYaw {
		t.Errorf("Expected original untouched, got %+v", cfg)
	}
	if cp.Spring != cfg.Spring || cp.Window != cfg.Window {
		t.Errorf("Expected nested fields copied")
	}
}

func TestResolveCenter(t *testing.T) {
	els := []*common.Element{{Name: "Card_1"}, {Name: "Card_2"}, {Name: "Card_3"}, {Name: "Card_4"}}
	cfg := Default()

	if c, _ := cfg.ResolveCenter(els); c != 2 {
		t.Errorf("Expected middle index 2, got %d", c)
	}
	cfg.CenterIndex = 1
	if c, _ := cfg.ResolveCenter(els); c != 1 {
		t.Errorf("Expected explicit index 1, got %d", c)
	}
	cfg.CenterName = "card_4"
	if c, _ := cfg.ResolveCenter(els); c != 3 {
		t.Errorf("Expected named center at 3, got %d", c)
	}
	cfg.CenterName = "Card_9"
	var ce *panel.ConfigurationError
	if _, err := cfg.ResolveCenter(els); !errors.As(err, &ce) {
		t.Errorf("Expected ConfigurationError for unknown center name, got %v", err)
	}
}

func TestOptionsBuildRegistry(t *testing.T) {
	cfg := Default()
	cfg.Axis = "x"
	cfg.YawSmoothing = "spring"

	regOpts, err := cfg.RegistryOptions()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	els := []*common.Element{
		{Name: "Card_1", Position: [3]float32{-1, 0, 0}},
		{Name: "Card_2", Position: [3]float32{0, 0, 0}},
		{Name: "Card_3", Position: [3]float32{1, 0, 0}},
	}
	reg, err := panel.Build(els, 1, regOpts...)
	if err != nil {
		t.Fatalf("Expected registry to build, got %v", err)
	}
	if reg.Axis() != common.AxisX || reg.Record(2).BaseOffset != 1 {
		t.Errorf("Expected X axis offsets, got %v %v", reg.Axis(), reg.Record(2).BaseOffset)
	}

	drvOpts, err := cfg.DriverOptions()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(drvOpts) != 9 {
		t.Errorf("Expected 9 driver options with spring smoothing, got %d", len(drvOpts))
	}
	if _, err := cfg.MapperOptions(); err != nil {
		t.Errorf("Expected mapper options, got %v", err)
	}
	if len(cfg.EngineOptions()) != 2 {
		t.Errorf("Expected 2 engine options")
	}
}
