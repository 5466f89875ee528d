// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cheb provides Chebyshev nodes and barycentric Lagrange
// interpolation on composite panels, used by the fine discretization of the
// Lehmann kernel.
package cheb

import "math"

// Nodes returns the p Chebyshev points of the first kind on [-1, 1] in
// increasing order,
//
//	x_k = -cos((2k+1)π/(2p)),  k = 0, …, p-1.
//
// The endpoints are not included. Nodes panics if p < 1.
func Nodes(p int) []float64 {
	if p < 1 {
		panic("cheb: non-positive number of nodes")
	}
	x := make([]float64, p)
	for k := range x {
		x[k] = -math.Cos((2*float64(k) + 1) * math.Pi / (2 * float64(p)))
	}
	return x
}

// Map affinely maps x from [-1, 1] onto [a, b].
func Map(x, a, b float64) float64 {
	return (a+b)/2 + (b-a)/2*x
}

// BaryWeights returns barycentric interpolation weights for the nodes x,
//
//	w_j = 1 / Π_{k≠j} (x_j - x_k).
//
// The common scale of the weights is irrelevant to Interp. BaryWeights
// panics if two nodes coincide.
func BaryWeights(x []float64) []float64 {
	w := make([]float64, len(x))
	for j := range x {
		p := 1.0
		for k := range x {
			if k == j {
				continue
			}
			d := x[j] - x[k]
			if d == 0 {
				panic("cheb: coincident interpolation nodes")
			}
			p *= d
		}
		w[j] = 1 / p
	}
	return w
}

// Interp evaluates at t the barycentric Lagrange interpolant through the
// nodes x with weights w and sample values f. If t coincides with a node
// the sample value is returned exactly. Interp panics if the slice lengths
// differ.
func Interp(x, w, f []float64, t float64) float64 {
	if len(w) != len(x) || len(f) != len(x) {
		panic("cheb: slice length mismatch")
	}
	var num, den float64
	for j := range x {
		d := t - x[j]
		if d == 0 {
			return f[j]
		}
		c := w[j] / d
		num += c * f[j]
		den += c
	}
	return num / den
}
