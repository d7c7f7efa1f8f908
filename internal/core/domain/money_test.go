package domain

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 1},
		{2.674, 2.67},
		{2.675, 2.68}, // half rounds up, despite the binary float sitting below .675
		{2.676, 2.68},
		{1.005, 1.01},
		{24.6912, 24.69},
		{255.375, 255.38},
		{100.0, 100.0},
		{-1.005, -1.01}, // half away from zero on the negative side
		{-2.674, -2.67},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
