package paramspace

import (
	"errors"
	"fmt"
)

// ErrGridTooLarge is returned when a grid enumeration would exceed MaxGridPoints
var ErrGridTooLarge = errors.New("grid enumeration too large")

// ErrInvalidGridSize is returned when a grid is requested with fewer than one value per dimension
var ErrInvalidGridSize = errors.New("grid values per dimension must be at least 1")

// InvalidDomainError indicates a descriptor whose domain cannot be sampled
type InvalidDomainError struct {
	Parameter string
	Reason    string
}

func (e *InvalidDomainError) Error() string {
	return fmt.Sprintf("invalid domain for parameter %q: %s", e.Parameter, e.Reason)
}

// InvalidSamplingFractionError indicates a neighborhood scale outside [0, 1]
type InvalidSamplingFractionError struct {
	Operation string
	Fraction  float64
}

func (e *InvalidSamplingFractionError) Error() string {
	return fmt.Sprintf("invalid sampling fraction for %s: %v (must be within [0, 1])", e.Operation, e.Fraction)
}

// DuplicateParameterError indicates two descriptors sharing a name within one space
type DuplicateParameterError struct {
	Name string
}

func (e *DuplicateParameterError) Error() string {
	return "duplicate parameter name: " + e.Name
}

// PointMismatchError indicates a center point whose value does not fit the descriptor
type PointMismatchError struct {
	Parameter string
	Expected  Kind
	Got       Kind
}

func (e *PointMismatchError) Error() string {
	return fmt.Sprintf("point value for parameter %q has kind %s, expected %s", e.Parameter, e.Got, e.Expected)
}

func checkFraction(op string, scale float64) error {
	// NaN fails both comparisons
	if !(scale >= 0 && scale <= 1) {
		return &InvalidSamplingFractionError{Operation: op, Fraction: scale}
	}
	return nil
}
