package paramspace

import (
	"math"
	"math/bits"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

// TaskEffect tags which execution phase a parameter influences.
// It is informational and never changes how the parameter is sampled.
type TaskEffect string

const (
	EffectNone      TaskEffect = ""
	EffectMap       TaskEffect = "map"
	EffectReduce    TaskEffect = "reduce"
	EffectMapReduce TaskEffect = "map_reduce"
)

// ParseTaskEffect converts a configuration string into a TaskEffect
func ParseTaskEffect(s string) (TaskEffect, bool) {
	switch TaskEffect(s) {
	case EffectNone, EffectMap, EffectReduce, EffectMapReduce:
		return TaskEffect(s), true
	default:
		return EffectNone, false
	}
}

// Descriptor describes one tunable dimension. It is a closed variant over Kind;
// the bounds fields are meaningful only for the matching kind. Descriptors are
// immutable once constructed.
type Descriptor struct {
	name   string
	effect TaskEffect
	kind   Kind

	intLo, intHi     int64
	floatLo, floatHi float64
	values           []string
}

// NewBoolean creates a descriptor over {false, true}
func NewBoolean(name string, effect TaskEffect) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, &InvalidDomainError{Reason: "parameter name cannot be empty"}
	}
	return Descriptor{name: name, effect: effect, kind: KindBoolean}, nil
}

// NewInteger creates a descriptor over the inclusive integer range [lo, hi]
func NewInteger(name string, effect TaskEffect, lo, hi int64) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, &InvalidDomainError{Reason: "parameter name cannot be empty"}
	}
	if lo > hi {
		return Descriptor{}, &InvalidDomainError{Parameter: name, Reason: "min is greater than max"}
	}
	return Descriptor{name: name, effect: effect, kind: KindInteger, intLo: lo, intHi: hi}, nil
}

// NewContinuous creates a descriptor over the real interval [lo, hi]
func NewContinuous(name string, effect TaskEffect, lo, hi float64) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, &InvalidDomainError{Reason: "parameter name cannot be empty"}
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Descriptor{}, &InvalidDomainError{Parameter: name, Reason: "bounds must be finite"}
	}
	if lo > hi {
		return Descriptor{}, &InvalidDomainError{Parameter: name, Reason: "min is greater than max"}
	}
	return Descriptor{name: name, effect: effect, kind: KindContinuous, floatLo: lo, floatHi: hi}, nil
}

// NewEnum creates a descriptor over an ordered list of distinct string values
func NewEnum(name string, effect TaskEffect, values ...string) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, &InvalidDomainError{Reason: "parameter name cannot be empty"}
	}
	if len(values) == 0 {
		return Descriptor{}, &InvalidDomainError{Parameter: name, Reason: "enum requires at least one value"}
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return Descriptor{}, &InvalidDomainError{Parameter: name, Reason: "duplicate enum value " + v}
		}
		seen[v] = true
	}
	return Descriptor{name: name, effect: effect, kind: KindEnum, values: append([]string(nil), values...)}, nil
}

// Name returns the configuration key the descriptor tunes
func (d Descriptor) Name() string { return d.name }

// Effect returns the task phase the parameter influences
func (d Descriptor) Effect() TaskEffect { return d.effect }

// Kind returns the domain variant
func (d Descriptor) Kind() Kind { return d.kind }

// IntBounds returns the inclusive bounds of an integer domain
func (d Descriptor) IntBounds() (int64, int64) { return d.intLo, d.intHi }

// FloatBounds returns the bounds of a continuous domain
func (d Descriptor) FloatBounds() (float64, float64) {
	return d.floatLo, d.floatHi
}

// Values returns a copy of the enumerated values
func (d Descriptor) Values() []string {
	return append([]string(nil), d.values...)
}

// Cardinality returns the number of distinct values the descriptor can produce
func (d Descriptor) Cardinality() Cardinality {
	switch d.kind {
	case KindBoolean:
		return Finite(2)
	case KindInteger:
		span := uint64(d.intHi) - uint64(d.intLo)
		if span == math.MaxUint64 {
			return Unbounded()
		}
		return Finite(span + 1)
	case KindEnum:
		return Finite(uint64(len(d.values)))
	default:
		return Unbounded()
	}
}

// SampleRandom draws a uniformly random value from the domain
func (d Descriptor) SampleRandom(rng *utils.RandSource) Value {
	switch d.kind {
	case KindBoolean:
		return BoolValue(rng.Intn(2) == 1)
	case KindInteger:
		return IntValue(rng.Int64Range(d.intLo, d.intHi))
	case KindEnum:
		return EnumValue(d.values[rng.Intn(len(d.values))])
	default:
		return FloatValue(rng.UniformFloat64(d.floatLo, d.floatHi))
	}
}

// SampleNear draws a value within scale*(hi-lo) of center, clipped to the
// domain. Booleans ignore scale and sample uniformly.
func (d Descriptor) SampleNear(rng *utils.RandSource, center Value, scale float64) (Value, error) {
	if err := checkFraction("sample near "+d.name, scale); err != nil {
		return Value{}, err
	}
	if d.kind == KindBoolean {
		return d.SampleRandom(rng), nil
	}
	if center.kind != d.kind {
		return Value{}, &PointMismatchError{Parameter: d.name, Expected: d.kind, Got: center.kind}
	}

	switch d.kind {
	case KindInteger:
		radius := scale * float64(uint64(d.intHi)-uint64(d.intLo))
		c := float64(utils.Clamp(center.i, d.intLo, d.intHi))
		lo := clampToInt64(math.Ceil(c-radius), d.intLo, d.intHi)
		hi := clampToInt64(math.Floor(c+radius), d.intLo, d.intHi)
		if lo > hi {
			return IntValue(utils.Clamp(center.i, d.intLo, d.intHi)), nil
		}
		return IntValue(rng.Int64Range(lo, hi)), nil
	case KindEnum:
		idx := d.indexOf(center.s)
		if idx < 0 {
			return d.SampleRandom(rng), nil
		}
		radius := scale * float64(len(d.values)-1)
		lo := utils.Clamp(int(math.Ceil(float64(idx)-radius)), 0, len(d.values)-1)
		hi := utils.Clamp(int(math.Floor(float64(idx)+radius)), 0, len(d.values)-1)
		return EnumValue(d.values[lo+rng.Intn(hi-lo+1)]), nil
	default:
		radius := scale*d.floatHi - scale*d.floatLo
		c := utils.Clamp(center.f, d.floatLo, d.floatHi)
		lo := math.Max(d.floatLo, c-radius)
		hi := math.Min(d.floatHi, c+radius)
		return FloatValue(rng.UniformFloat64(lo, hi)), nil
	}
}

// GridValues returns representative values for grid enumeration.
//
// Finite domains yield min(count, cardinality) values; continuous domains yield
// exactly count values; booleans always yield {false, true}. Without random the
// values are equi-spaced as lo + i*(hi-lo)/(count-1), and count == 1 yields lo.
func (d Descriptor) GridValues(rng *utils.RandSource, count int, random bool) ([]Value, error) {
	if count < 1 {
		return nil, ErrInvalidGridSize
	}

	switch d.kind {
	case KindBoolean:
		return []Value{BoolValue(false), BoolValue(true)}, nil

	case KindInteger:
		card, _ := d.Cardinality().Count()
		if !d.Cardinality().IsUnbounded() && uint64(count) >= card {
			out := make([]Value, 0, card)
			for v := d.intLo; ; v++ {
				out = append(out, IntValue(v))
				if v == d.intHi {
					break
				}
			}
			return out, nil
		}
		if random {
			return d.distinctRandomInts(rng, count), nil
		}
		return d.equiSpacedInts(count), nil

	case KindEnum:
		n := len(d.values)
		if count >= n {
			out := make([]Value, n)
			for i, v := range d.values {
				out[i] = EnumValue(v)
			}
			return out, nil
		}
		out := make([]Value, count)
		if random {
			perm := partialPerm(rng, n, count)
			for i, idx := range perm {
				out[i] = EnumValue(d.values[idx])
			}
			return out, nil
		}
		for i := 0; i < count; i++ {
			idx := 0
			if count > 1 {
				idx = i * (n - 1) / (count - 1)
			}
			out[i] = EnumValue(d.values[idx])
		}
		return out, nil

	default:
		out := make([]Value, count)
		for i := 0; i < count; i++ {
			if random {
				out[i] = d.SampleRandom(rng)
				continue
			}
			f := equiFraction(i, count)
			out[i] = FloatValue(d.floatLo*(1-f) + d.floatHi*f)
		}
		return out, nil
	}
}

func (d Descriptor) indexOf(s string) int {
	for i, v := range d.values {
		if v == s {
			return i
		}
	}
	return -1
}

// distinctRandomInts draws count distinct integers; count is below the cardinality.
func (d Descriptor) distinctRandomInts(rng *utils.RandSource, count int) []Value {
	seen := make(map[int64]bool, count)
	out := make([]Value, 0, count)
	for len(out) < count {
		v := rng.Int64Range(d.intLo, d.intHi)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, IntValue(v))
	}
	return out
}

// equiFraction is i/(count-1), or 0 when count is 1
func equiFraction(i, count int) float64 {
	if count <= 1 {
		return 0
	}
	return float64(i) / float64(count-1)
}

func clampToInt64(f float64, lo, hi int64) int64 {
	if f <= float64(lo) {
		return lo
	}
	if f >= float64(hi) {
		return hi
	}
	return int64(f)
}

// partialPerm returns k distinct indices from [0, n) using a partial Fisher-Yates shuffle
func partialPerm(rng *utils.RandSource, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// equiSpacedInts returns lo + i*(hi-lo)/(count-1) under integer division,
// computed in 128 bits so that wide domains do not overflow.
func (d Descriptor) equiSpacedInts(count int) []Value {
	out := make([]Value, count)
	if count == 1 {
		out[0] = IntValue(d.intLo)
		return out
	}
	span := uint64(d.intHi) - uint64(d.intLo)
	steps := uint64(count - 1)
	for i := 0; i < count; i++ {
		hi, lo := bits.Mul64(uint64(i), span)
		q, _ := bits.Div64(hi, lo, steps)
		out[i] = IntValue(int64(uint64(d.intLo) + q))
	}
	return out
}
