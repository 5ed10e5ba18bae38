package utils

import (
	"math"
	"testing"
)

func TestNewRandSource(t *testing.T) {
	rng1 := NewRandSource(12345)
	if rng1 == nil {
		t.Fatal("Expected RandSource to be created")
	}
	if rng1.Seed() != 12345 {
		t.Fatalf("Expected seed 12345, got %d", rng1.Seed())
	}

	// Zero seed should pick a time-based seed
	rng2 := NewRandSource(0)
	if rng2 == nil {
		t.Fatal("Expected RandSource to be created with zero seed")
	}
	if rng2.Seed() == 0 {
		t.Fatal("Expected a non-zero seed to be chosen")
	}
}

func TestRandSourceFloat64(t *testing.T) {
	rng := NewRandSource(12345)

	for i := 0; i < 100; i++ {
		val := rng.Float64()
		if val < 0 || val >= 1.0 {
			t.Errorf("Float64() returned value outside [0, 1): %f", val)
		}
	}
}

func TestRandSourceIntn(t *testing.T) {
	rng := NewRandSource(12345)

	for i := 0; i < 100; i++ {
		val := rng.Intn(10)
		if val < 0 || val >= 10 {
			t.Errorf("Intn(10) returned value outside [0, 10): %d", val)
		}
	}
}

func TestRandSourceInt64Range(t *testing.T) {
	rng := NewRandSource(12345)

	tests := []struct {
		name   string
		lo, hi int64
	}{
		{"small", 2, 5},
		{"single", 7, 7},
		{"negative", -10, -3},
		{"full range", math.MinInt64, math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				v := rng.Int64Range(tt.lo, tt.hi)
				if v < tt.lo || v > tt.hi {
					t.Fatalf("Int64Range(%d, %d) returned %d", tt.lo, tt.hi, v)
				}
			}
		})
	}
}

func TestRandSourceInt64RangeCoversBounds(t *testing.T) {
	rng := NewRandSource(99)
	seen := map[int64]bool{}
	for i := 0; i < 500; i++ {
		seen[rng.Int64Range(2, 5)] = true
	}
	for v := int64(2); v <= 5; v++ {
		if !seen[v] {
			t.Errorf("expected value %d to be drawn at least once", v)
		}
	}
}

func TestRandSourceUniformFloat64(t *testing.T) {
	rng := NewRandSource(12345)
	for i := 0; i < 100; i++ {
		v := rng.UniformFloat64(5, 10)
		if v < 5 || v > 10 {
			t.Errorf("UniformFloat64(5, 10) returned %f", v)
		}
	}
}

func TestRandSourceUniformFloat64WideRange(t *testing.T) {
	rng := NewRandSource(12345)
	for i := 0; i < 100; i++ {
		v := rng.UniformFloat64(-math.MaxFloat64, math.MaxFloat64)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("UniformFloat64 over the full float range returned %f", v)
		}
	}
}

func TestRandSourceDeterministic(t *testing.T) {
	a := NewRandSource(42)
	b := NewRandSource(42)
	for i := 0; i < 50; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d differs for identical seeds", i)
		}
	}
}

func TestSetSeedAffectsDefault(t *testing.T) {
	prev := ResetDefault(nil)
	t.Cleanup(func() { ResetDefault(prev) })

	SetSeed(7)
	first := []float64{Default().Float64(), Default().Float64(), Default().UniformFloat64(1, 2)}

	SetSeed(7)
	second := []float64{Default().Float64(), Default().Float64(), Default().UniformFloat64(1, 2)}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d differs after reseeding: %f vs %f", i, first[i], second[i])
		}
	}
}

func TestResetDefault(t *testing.T) {
	mine := NewRandSource(3)
	prev := ResetDefault(mine)
	defer ResetDefault(prev)

	if Default() != mine {
		t.Fatal("expected Default to return the installed source")
	}
	if got := Default().Intn(1); got != 0 {
		t.Fatalf("Intn(1) = %d, expected 0", got)
	}
}
