// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import "math"

// RelToAbs converts an imaginary-time point from relative format on
// [-1/2, 1/2] ∪ {1} to absolute format on [0, 1]. Negative values,
// including negative zero, encode 1+t.
//
// The conversion loses the relative accuracy that the relative format
// carries near τ = 1; library entry points accept relative values directly
// so that this conversion is never needed on the hot path.
func RelToAbs(t float64) float64 {
	if t < 0 || math.Signbit(t) {
		return t + 1
	}
	return t
}

// AbsToRel converts an imaginary-time point from absolute format on [0, 1]
// to relative format. Points above 1/2 map to t-1; the right endpoint maps
// to negative zero.
func AbsToRel(t float64) float64 {
	if t > 0.5 {
		r := t - 1
		if r == 0 {
			return math.Copysign(0, -1)
		}
		return r
	}
	return t
}

// EquispacedRel returns the n-point equispaced grid on [0, 1], endpoints
// included, in relative format: i/(n-1) while that does not exceed 1/2,
// and -(n-1-i)/(n-1) beyond. EquispacedRel panics if n < 2.
func EquispacedRel(n int) []float64 {
	if n < 2 {
		panic(badGridLen)
	}
	t := make([]float64, n)
	for i := range t {
		x := float64(i) / float64(n-1)
		if x > 0.5 {
			t[i] = -float64(n-1-i) / float64(n-1)
		} else {
			t[i] = x
		}
	}
	return t
}
