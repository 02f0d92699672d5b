package core

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, expected {4 2}", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, expected {2 6}", got)
	}
	if got := a.Scale(30); got != V(90, 120) {
		t.Errorf("Scale() = %v, expected {90 120}", got)
	}
	if got := a.Len(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Len() = %v, expected 5", got)
	}
}

func TestBoundsExtent(t *testing.T) {
	b := Bounds{Left: 10, Right: 1900, Ceiling: 0, Floor: 900}
	if b.Width() != 1890 || b.Height() != 900 {
		t.Errorf("Width/Height = %v/%v, expected 1890/900", b.Width(), b.Height())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{50, 60, 1900, 60},
		{2000, 60, 1900, 1900},
		{100.5, 0, 100, 100},
		{-0.1, 0, 100, 0},
		{42, 0, 100, 42},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
