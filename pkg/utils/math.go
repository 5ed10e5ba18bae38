package utils

import (
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Clamp clamps a value between min and max
func Clamp[T constraints.Integer | constraints.Float](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// MulUint64 multiplies a and b and reports whether the product overflowed
func MulUint64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi != 0
}

// CeilPow returns ceil(coeff * base^exp) as an int, saturating at math.MaxInt
func CeilPow(coeff, base, exp float64) int {
	v := math.Ceil(coeff * math.Pow(base, exp))
	if v >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(v)
}
