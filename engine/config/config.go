package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-spread/common"
	"github.com/Carmen-Shannon/oxy-spread/engine"
	"github.com/Carmen-Shannon/oxy-spread/engine/input"
	"github.com/Carmen-Shannon/oxy-spread/engine/panel"
	"github.com/Carmen-Shannon/oxy-spread/engine/spread"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// Soft bounds of the pointer yaw range; values outside only warn.
const (
	softMaxYawMinDeg = 4
	softMaxYawMaxDeg = 7
)

// DelayRange is an inclusive range of commit delays in milliseconds.
type DelayRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// RateRange is an inclusive range of per-frame damping rates.
type RateRange struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// Spring tunes the optional spring yaw smoothing.
type Spring struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// Pointer tunes how pointer positions map into the input signal.
type Pointer struct {
	Mapping   string  `yaml:"mapping"`
	MaxYawDeg float32 `yaml:"max_yaw_deg"`
	NegateYaw bool    `yaml:"negate_yaw"`
}

// Window holds the windowed host's settings.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Config is the full tuning of one spread deck and its host.
type Config struct {
	Asset      string `yaml:"asset"`
	NamePrefix string `yaml:"name_prefix"`

	LayoutMode  string `yaml:"layout_mode"`
	CenterIndex int    `yaml:"center_index"` // -1 picks the middle panel
	CenterName  string `yaml:"center_name"`  // takes precedence over CenterIndex when set
	Axis        string `yaml:"axis"`

	CommitDelayMs DelayRange `yaml:"commit_delay_ms"`
	DampingRate   RateRange  `yaml:"damping_rate"`

	PositionDamping      float32 `yaml:"position_damping"`
	SafeRatio            float32 `yaml:"safe_ratio"`
	SpreadGain           float32 `yaml:"spread_gain"`
	ChainedGain          float32 `yaml:"chained_gain"`
	CommitBoostThreshold float32 `yaml:"commit_boost_threshold"`
	CommitBoostDeg       float32 `yaml:"commit_boost_deg"`
	TiltDeg              float32 `yaml:"tilt_deg"`
	ChainedRotationDeg   float32 `yaml:"chained_rotation_deg"`
	CommitPolicy         string  `yaml:"commit_policy"`
	YawSmoothing         string  `yaml:"yaw_smoothing"`
	Spring               Spring  `yaml:"spring"`

	Pointer Pointer `yaml:"pointer"`

	TickRate      float64 `yaml:"tick_rate"`
	ReferenceRate float32 `yaml:"reference_rate"`
	Profiling     bool    `yaml:"profiling"`

	Window Window `yaml:"window"`
}

// Default returns the reference tuning.
func Default() *Config {
	return &Config{
		NamePrefix:  "Card",
		LayoutMode:  panel.LayoutWeighted.String(),
		CenterIndex: -1,
		Axis:        common.AxisY.String(),
		CommitDelayMs: DelayRange{
			Min: int(panel.DefaultDelayMin / time.Millisecond),
			Max: int(panel.DefaultDelayMax / time.Millisecond),
		},
		DampingRate: RateRange{
			Min: panel.DefaultDampingRateMin,
			Max: panel.DefaultDampingRateMax,
		},
		PositionDamping:      spread.DefaultPositionDamping,
		SafeRatio:            panel.DefaultSafeRatio,
		SpreadGain:           spread.DefaultSpreadGain,
		ChainedGain:          spread.DefaultChainedGain,
		CommitBoostThreshold: spread.DefaultBoostThreshold,
		CommitBoostDeg:       spread.DefaultBoostDeg,
		TiltDeg:              spread.DefaultTiltDeg,
		ChainedRotationDeg:   spread.DefaultChainedRotationDeg,
		CommitPolicy:         spread.CommitPolicySingle.String(),
		YawSmoothing:         "exponential",
		Spring: Spring{
			Frequency: spread.DefaultSpringFrequency,
			Damping:   spread.DefaultSpringDampingRatio,
		},
		Pointer: Pointer{
			Mapping:   input.MappingDistance.String(),
			MaxYawDeg: input.DefaultMaxYawDeg,
		},
		TickRate:      60,
		ReferenceRate: spread.DefaultReferenceRate,
		Window: Window{
			Title:  "oxy-spread",
			Width:  1280,
			Height: 720,
		},
	}
}

// Load reads a YAML config from path over the defaults. Keys absent from the file keep their default.
// A missing file is not an error; the defaults are returned.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the loaded and validated config
//   - error: a read or decode error, or *panel.ConfigurationError
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.Decode(data); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode unmarshals YAML over c; keys absent from data are left unchanged.
// Unknown keys are rejected.
func (c *Config) Decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() (*Config, error) {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to clone config: %w", err)
	}
	return out, nil
}

// Validate checks every field and returns the first problem as a *panel.ConfigurationError.
// A pointer yaw range outside the usual 4 to 7 degrees is logged but accepted.
func (c *Config) Validate() error {
	if _, err := panel.ParseLayoutMode(c.LayoutMode); err != nil {
		return err
	}
	if _, err := common.ParseAxis(c.Axis); err != nil {
		return &panel.ConfigurationError{Field: "axis", Reason: err.Error()}
	}
	if c.CenterIndex < -1 {
		return &panel.ConfigurationError{Field: "center_index", Reason: fmt.Sprintf("must be -1 or a panel index, got %d", c.CenterIndex)}
	}
	if c.CommitDelayMs.Min < 0 || c.CommitDelayMs.Max < 0 {
		return &panel.ConfigurationError{Field: "commit_delay_ms", Reason: "delays must be non-negative"}
	}
	if c.CommitDelayMs.Min > c.CommitDelayMs.Max {
		return &panel.ConfigurationError{Field: "commit_delay_ms", Reason: fmt.Sprintf("min %d exceeds max %d", c.CommitDelayMs.Min, c.CommitDelayMs.Max)}
	}
	if !openUnit(c.DampingRate.Min) || !openUnit(c.DampingRate.Max) {
		return &panel.ConfigurationError{Field: "damping_rate", Reason: "rates must lie in (0, 1)"}
	}
	if c.DampingRate.Min > c.DampingRate.Max {
		return &panel.ConfigurationError{Field: "damping_rate", Reason: fmt.Sprintf("min %v exceeds max %v", c.DampingRate.Min, c.DampingRate.Max)}
	}
	if !openUnit(c.PositionDamping) {
		return &panel.ConfigurationError{Field: "position_damping", Reason: "must lie in (0, 1)"}
	}
	if c.SafeRatio <= 0 || c.SafeRatio > 1 {
		return &panel.ConfigurationError{Field: "safe_ratio", Reason: "must lie in (0, 1]"}
	}
	if c.SpreadGain < 0 || c.ChainedGain < 0 {
		return &panel.ConfigurationError{Field: "spread_gain", Reason: "gains must be non-negative"}
	}
	if c.ChainedRotationDeg < 0 {
		return &panel.ConfigurationError{Field: "chained_rotation_deg", Reason: "must be non-negative"}
	}
	if c.CommitBoostThreshold < 0 || c.CommitBoostThreshold > 1 {
		return &panel.ConfigurationError{Field: "commit_boost_threshold", Reason: "must lie in [0, 1]"}
	}
	if _, err := spread.ParseCommitPolicy(c.CommitPolicy); err != nil {
		return err
	}
	spring, err := c.springYaw()
	if err != nil {
		return err
	}
	if spring && (c.Spring.Frequency <= 0 || c.Spring.Damping <= 0) {
		return &panel.ConfigurationError{Field: "spring", Reason: "frequency and damping must be positive"}
	}
	if _, err := input.ParseMapping(c.Pointer.Mapping); err != nil {
		return &panel.ConfigurationError{Field: "pointer.mapping", Reason: err.Error()}
	}
	if c.Pointer.MaxYawDeg < 0 {
		return &panel.ConfigurationError{Field: "pointer.max_yaw_deg", Reason: "must be non-negative"}
	}
	if c.Pointer.MaxYawDeg < softMaxYawMinDeg || c.Pointer.MaxYawDeg > softMaxYawMaxDeg {
		log.Printf("[Config] pointer.max_yaw_deg %.1f is outside the usual %d to %d degrees", c.Pointer.MaxYawDeg, softMaxYawMinDeg, softMaxYawMaxDeg)
	}
	if c.TickRate <= 0 {
		return &panel.ConfigurationError{Field: "tick_rate", Reason: "must be positive"}
	}
	if c.ReferenceRate <= 0 {
		return &panel.ConfigurationError{Field: "reference_rate", Reason: "must be positive"}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return &panel.ConfigurationError{Field: "window", Reason: "width and height must be positive"}
	}
	return nil
}

func (c *Config) springYaw() (bool, error) {
	switch strings.ToLower(c.YawSmoothing) {
	case "", "exponential":
		return false, nil
	case "spring":
		return true, nil
	}
	return false, &panel.ConfigurationError{Field: "yaw_smoothing", Reason: fmt.Sprintf("unknown smoothing %q", c.YawSmoothing)}
}

func openUnit(v float32) bool {
	return v > 0 && v < 1
}

// ResolveCenter picks the center panel for sorted elements: by CenterName when set,
// otherwise CenterIndex, with -1 meaning the middle panel.
//
// Parameters:
//   - elements: the panels in spread order
//
// Returns:
//   - int: the center index
//   - error: *panel.ConfigurationError if CenterName matches no element
func (c *Config) ResolveCenter(elements []*common.Element) (int, error) {
	if c.CenterName != "" {
		i := panel.IndexByName(elements, c.CenterName)
		if i < 0 {
			return 0, &panel.ConfigurationError{Field: "center_name", Reason: fmt.Sprintf("no panel named %q", c.CenterName)}
		}
		return i, nil
	}
	if c.CenterIndex == -1 {
		return len(elements) / 2, nil
	}
	return c.CenterIndex, nil
}

// RegistryOptions translates the config into panel registry options.
func (c *Config) RegistryOptions() ([]panel.RegistryBuilderOption, error) {
	mode, err := panel.ParseLayoutMode(c.LayoutMode)
	if err != nil {
		return nil, err
	}
	axis, err := common.ParseAxis(c.Axis)
	if err != nil {
		return nil, &panel.ConfigurationError{Field: "axis", Reason: err.Error()}
	}
	return []panel.RegistryBuilderOption{
		panel.WithLayoutMode(mode),
		panel.WithAxis(axis),
		panel.WithDelayRange(
			time.Duration(c.CommitDelayMs.Min)*time.Millisecond,
			time.Duration(c.CommitDelayMs.Max)*time.Millisecond,
		),
		panel.WithDampingRange(c.DampingRate.Min, c.DampingRate.Max),
		panel.WithSafeRatio(c.SafeRatio),
	}, nil
}

// DriverOptions translates the config into animation driver options.
func (c *Config) DriverOptions() ([]spread.DriverBuilderOption, error) {
	policy, err := spread.ParseCommitPolicy(c.CommitPolicy)
	if err != nil {
		return nil, err
	}
	spring, err := c.springYaw()
	if err != nil {
		return nil, err
	}
	opts := []spread.DriverBuilderOption{
		spread.WithPositionDamping(c.PositionDamping),
		spread.WithSpreadGain(c.SpreadGain),
		spread.WithChainedGain(c.ChainedGain),
		spread.WithBoost(c.CommitBoostThreshold, c.CommitBoostDeg),
		spread.WithTiltDeg(c.TiltDeg),
		spread.WithChainedRotation(c.ChainedRotationDeg),
		spread.WithCommitPolicy(policy),
		spread.WithReferenceRate(c.ReferenceRate),
	}
	if spring {
		opts = append(opts, spread.WithSpringYaw(c.Spring.Frequency, c.Spring.Damping))
	}
	return opts, nil
}

// MapperOptions translates the config into pointer mapper options.
func (c *Config) MapperOptions() ([]input.MapperBuilderOption, error) {
	mapping, err := input.ParseMapping(c.Pointer.Mapping)
	if err != nil {
		return nil, &panel.ConfigurationError{Field: "pointer.mapping", Reason: err.Error()}
	}
	return []input.MapperBuilderOption{
		input.WithMapping(mapping),
		input.WithMaxYawDeg(c.Pointer.MaxYawDeg),
		input.WithNegateYaw(c.Pointer.NegateYaw),
	}, nil
}

// EngineOptions translates the config into engine options. The window, mapper and scenes are added by the host.
func (c *Config) EngineOptions() []engine.EngineBuilderOption {
	return []engine.EngineBuilderOption{
		engine.WithTickRate(c.TickRate),
		engine.WithProfiling(c.Profiling),
	}
}
