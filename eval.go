// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"math"

	"gonum.org/v1/dlr/kernel"
)

// EvalTau evaluates the DLR expansion with the given coefficients at the
// imaginary-time point t in relative format. For negative t, including
// negative zero, the kernel symmetry K(1+t, ω) = K(-t, -ω) is used so that
// no relative accuracy is lost near τ = 1. EvalTau panics if the slice
// lengths differ.
func EvalTau(freqs, coeffs []float64, t float64) float64 {
	if len(coeffs) != len(freqs) {
		panic(badLength)
	}
	var s float64
	if t > 0 || (t == 0 && !math.Signbit(t)) {
		for i, w := range freqs {
			s += coeffs[i] * kernel.ItAbs(t, w)
		}
		return s
	}
	for i, w := range freqs {
		s += coeffs[i] * kernel.ItAbs(-t, -w)
	}
	return s
}

// EvalMF evaluates the DLR expansion with the given coefficients at the
// Matsubara index n for the given statistics. The result is dimensionless;
// physical Green's function values carry an additional factor of β fixed
// by the caller's transform conventions. EvalMF panics if the slice
// lengths differ.
func EvalMF(freqs []float64, stat Statistics, coeffs []float64, n int) complex128 {
	if len(coeffs) != len(freqs) {
		panic(badLength)
	}
	m := stat.matsubara(n)
	var s complex128
	for i, w := range freqs {
		s += complex(coeffs[i], 0) * kernel.MF(m, w)
	}
	return s
}

// Eval evaluates the expansion with the given coefficients on b at the
// relative imaginary-time point t.
func (b *Basis) Eval(coeffs []float64, t float64) float64 {
	return EvalTau(b.Freqs, coeffs, t)
}

// EvalMF evaluates the expansion with the given coefficients on b at the
// Matsubara index n.
func (b *Basis) EvalMF(stat Statistics, coeffs []float64, n int) complex128 {
	return EvalMF(b.Freqs, stat, coeffs, n)
}

// FreeGreens returns the imaginary-time node values of the free Green's
// function with a single pole at the dimensionless frequency omega,
//
//	G₀(τ) = -K(τ, ω),
//
// sampled on the basis nodes. It is the usual right-hand side of the Dyson
// equation.
func FreeGreens(b *Basis, omega float64) []float64 {
	g := make([]float64, b.Rank())
	for j, t := range b.Tau {
		g[j] = -kernel.It(t, omega)
	}
	return g
}
