package input

import "github.com/Carmen-Shannon/oxy-spread/common"

// MapperBuilderOption is a functional option for configuring a Mapper.
type MapperBuilderOption func(*mapper)

// WithMapping sets the vertical mapping.
//
// Parameters:
//   - mapping: MappingDistance, MappingInverted or MappingUpper
//
// Returns:
//   - MapperBuilderOption: option function to apply
func WithMapping(mapping Mapping) MapperBuilderOption {
	return func(m *mapper) {
		m.mapping = mapping
	}
}

// WithMaxYawDeg sets the yaw produced at the horizontal screen edge, in degrees.
// The effect is tuned for values between 4 and 7 degrees.
//
// Parameters:
//   - deg: the edge yaw in degrees
//
// Returns:
//   - MapperBuilderOption: option function to apply
func WithMaxYawDeg(deg float32) MapperBuilderOption {
	return func(m *mapper) {
		m.maxYaw = common.Rad(deg)
	}
}

// WithNegateYaw flips the yaw sign for hosts whose screen X runs opposite to world yaw.
//
// Parameters:
//   - negate: true to negate
//
// Returns:
//   - MapperBuilderOption: option function to apply
func WithNegateYaw(negate bool) MapperBuilderOption {
	return func(m *mapper) {
		m.negateYaw = negate
	}
}
