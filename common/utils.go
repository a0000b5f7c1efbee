package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp restricts value to the inclusive range [minValue, maxValue].
//
// Parameters:
//   - value: the value to clamp
//   - minValue: the lower bound
//   - maxValue: the upper bound
//
// Returns:
//   - T: minValue if value < minValue, maxValue if value > maxValue, value otherwise
func Clamp[T float32 | float64 | int](value, minValue, maxValue T) T {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
