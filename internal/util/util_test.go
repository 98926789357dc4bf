package util

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.1, 0, 1, 0},
		{1.5, 0, 1, 1},
		{0.15, 0.15, 1, 0.15},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	if got := Clamp01(2); got != 1 {
		t.Errorf("Clamp01(2) = %v, want 1", got)
	}
	if got := Clamp01(-1); got != 0 {
		t.Errorf("Clamp01(-1) = %v, want 0", got)
	}
}

func TestSafeDenom(t *testing.T) {
	if got := SafeDenom(0); got != 1 {
		t.Errorf("SafeDenom(0) = %v, want 1", got)
	}
	if got := SafeDenom(2.5); got != 2.5 {
		t.Errorf("SafeDenom(2.5) = %v, want 2.5", got)
	}
}
