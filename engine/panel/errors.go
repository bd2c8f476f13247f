package panel

import "fmt"

// RegistryBuildError reports input that cannot form a panel registry: an empty element sequence,
// a center index out of bounds, or element names that do not yield a usable order.
// It is fatal to the effect; the host should surface it as a load failure.
type RegistryBuildError struct {
	// Reason describes what was wrong with the input.
	Reason string

	// Index is the offending element or center index, or -1 when not applicable.
	Index int
}

func (e *RegistryBuildError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("panel registry build failed at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("panel registry build failed: %s", e.Reason)
}

// ConfigurationError reports a tuning parameter that would make the animation unstable,
// such as a damping rate outside (0, 1) or a negative delay. Values are never clamped silently.
type ConfigurationError struct {
	// Field names the rejected parameter.
	Field string

	// Reason describes the constraint that was violated.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

func buildError(index int, format string, args ...any) error {
	return &RegistryBuildError{Reason: fmt.Sprintf(format, args...), Index: index}
}

func configError(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
