// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel evaluates the Lehmann kernel relating a spectral density
// to an imaginary-time or Matsubara-frequency Green's function,
//
//	K(τ, ω) = e^{-τω} / (1 + e^{-ω}),  τ ∈ [0, 1],
//
// in double and quadruple precision. All arguments are dimensionless: the
// inverse temperature β is scaled out by the caller.
package kernel // import "gonum.org/v1/dlr/kernel"

import "math"

// ItAbs returns the imaginary-time kernel K(t, omega) for t in absolute
// format on [0, 1]. The two algebraically equivalent forms
//
//	e^{-tω}/(1+e^{-ω})  and  e^{(1-t)ω}/(1+e^{ω})
//
// are selected by the sign of omega so that every exponent is non-positive;
// the result is in [0, 1] and cannot overflow for any representable omega.
// It underflows to zero when the exponent is below about -745.
func ItAbs(t, omega float64) float64 {
	if omega >= 0 {
		return math.Exp(-t*omega) / (1 + math.Exp(-omega))
	}
	return math.Exp((1-t)*omega) / (1 + math.Exp(omega))
}

// It returns the imaginary-time kernel for t in relative format on
// [-1/2, 1/2] ∪ {1}. Negative t encodes the absolute point 1+t, evaluated
// through the reflection K(1-τ, -ω) = K(τ, ω) to preserve relative accuracy
// near τ = 1. A negative zero is treated as τ = 1.
func It(t, omega float64) float64 {
	if t > 0 || (t == 0 && !math.Signbit(t)) {
		return ItAbs(t, omega)
	}
	return ItAbs(-t, -omega)
}

// MF returns the Matsubara-frequency kernel
//
//	K(iν, ω) = 1 / (iπm - ω)
//
// where m is an integer parameterizing the dimensionless frequency ν = πm.
// Fermionic frequencies have odd m = 2n+1 and bosonic frequencies even
// m = 2n. The bosonic kernel is singular at m = 0, ω = 0; the caller is
// responsible for keeping ω away from zero there.
func MF(m int, omega float64) complex128 {
	return 1 / complex(-omega, math.Pi*float64(m))
}

// ExpFun returns the statistics factor
//
//	(1 - ξ e^{-ω}) / (1 + e^{-ω})
//
// with ξ = -1 for fermions and ξ = +1 for bosons, evaluated
// branch-symmetrically so that it does not overflow for large |ω|.
// For fermions the value is identically 1; for bosons it is tanh(ω/2).
func ExpFun(omega, xi float64) float64 {
	if omega >= 0 {
		return (1 - xi*math.Exp(-omega)) / (1 + math.Exp(-omega))
	}
	e := math.Exp(omega)
	return (e - xi) / (e + 1)
}
