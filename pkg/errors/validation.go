package errors

import "math"

// ValidatePositive checks that v is a finite number strictly greater than zero.
// The name is used in the message (e.g., "item width").
func ValidatePositive(code Code, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(code, "%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return New(code, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative checks that v is a finite number greater than or equal to zero.
func ValidateNonNegative(code Code, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(code, "%s must be a finite number, got %v", name, v)
	}
	if v < 0 {
		return New(code, "%s must not be negative, got %v", name, v)
	}
	return nil
}

// ValidateUnitInterval checks that v lies in the half-open interval (0, 1].
func ValidateUnitInterval(code Code, name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v > 1 {
		return New(code, "%s must be in (0, 1], got %v", name, v)
	}
	return nil
}

// ValidateCount checks that n is at least min.
func ValidateCount(code Code, name string, n, min int) error {
	if n < min {
		return New(code, "%s must be at least %d, got %d", name, min, n)
	}
	return nil
}
