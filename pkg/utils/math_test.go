package utils

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		value, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		result := Clamp(tt.value, tt.min, tt.max)
		if result != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.value, tt.min, tt.max, result, tt.expected)
		}
	}
}

func TestClampFloat(t *testing.T) {
	tests := []struct {
		value, min, max, expected float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.1, 0, 1, 0},
		{1.2, 0, 1, 1},
	}

	for _, tt := range tests {
		result := Clamp(tt.value, tt.min, tt.max)
		if result != tt.expected {
			t.Errorf("Clamp(%f, %f, %f) = %f, expected %f", tt.value, tt.min, tt.max, result, tt.expected)
		}
	}
}

func TestMulUint64(t *testing.T) {
	if v, overflow := MulUint64(6, 7); overflow || v != 42 {
		t.Errorf("MulUint64(6, 7) = %d, %v", v, overflow)
	}
	if _, overflow := MulUint64(math.MaxUint64, 2); !overflow {
		t.Error("MulUint64(MaxUint64, 2) should overflow")
	}
	if v, overflow := MulUint64(math.MaxUint64, 1); overflow || v != math.MaxUint64 {
		t.Errorf("MulUint64(MaxUint64, 1) = %d, %v", v, overflow)
	}
}

func TestCeilPow(t *testing.T) {
	tests := []struct {
		coeff, base, exp float64
		expected         int
	}{
		{150, 1, 1.2, 150},
		{80, 1, 1.2, 80},
		{150, 2, 1.2, 345},
		{80, 3, 1.2, 299},
		{1, 10, 400, math.MaxInt},
	}

	for _, tt := range tests {
		result := CeilPow(tt.coeff, tt.base, tt.exp)
		if result != tt.expected {
			t.Errorf("CeilPow(%f, %f, %f) = %d, expected %d", tt.coeff, tt.base, tt.exp, result, tt.expected)
		}
	}
}
