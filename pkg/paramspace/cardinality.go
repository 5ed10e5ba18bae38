package paramspace

import (
	"math"
	"strconv"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

// Cardinality counts the distinct points of a domain or space.
//
// A continuous dimension, or a finite product that no longer fits in 64 bits,
// is Unbounded. Unbounded absorbs every further multiplication, so composing
// spaces never wraps around.
type Cardinality struct {
	n         uint64
	unbounded bool
}

// Finite returns the cardinality of a domain with n distinct values
func Finite(n uint64) Cardinality {
	return Cardinality{n: n}
}

// Unbounded returns the cardinality of a domain with no finite enumeration
func Unbounded() Cardinality {
	return Cardinality{unbounded: true}
}

// IsUnbounded reports whether the cardinality is unbounded
func (c Cardinality) IsUnbounded() bool {
	return c.unbounded
}

// Count returns the finite count and true, or 0 and false when unbounded
func (c Cardinality) Count() (uint64, bool) {
	if c.unbounded {
		return 0, false
	}
	return c.n, true
}

// Mul returns the cardinality of the Cartesian product of c and o
func (c Cardinality) Mul(o Cardinality) Cardinality {
	if c.unbounded || o.unbounded {
		return Unbounded()
	}
	v, overflow := utils.MulUint64(c.n, o.n)
	if overflow {
		return Unbounded()
	}
	return Finite(v)
}

// Less reports whether c is a finite count strictly below n
func (c Cardinality) Less(n int) bool {
	if c.unbounded || n <= 0 {
		return false
	}
	return c.n < uint64(n)
}

// Int returns the count as an int, saturating at math.MaxInt.
// Unbounded maps to math.MaxInt.
func (c Cardinality) Int() int {
	if c.unbounded || c.n > math.MaxInt {
		return math.MaxInt
	}
	return int(c.n)
}

func (c Cardinality) String() string {
	if c.unbounded {
		return "unbounded"
	}
	return strconv.FormatUint(c.n, 10)
}
