// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dlr constructs and operates with the discrete Lehmann
// representation (DLR), a compact basis for single-particle imaginary-time
// Green's functions at finite temperature.
//
// Given a dimensionless cutoff Λ = βω_max and an accuracy ε, the DLR
// consists of r = O(log(Λ)log(1/ε)) real frequencies ω_k, together with
// matching imaginary-time and Matsubara-frequency interpolation nodes, such
// that any Green's function with spectral density supported in [-Λ/β, Λ/β]
// is represented as
//
//	G(τ) ≈ Σ_k c_k K(τ, ω_k)
//
// to accuracy ε, where K is the Lehmann kernel. The package provides the
// basis construction, transforms between the coefficient, imaginary-time
// and Matsubara-frequency representations, imaginary-time convolution, the
// L² inner product, and a weighted fixed-point solver for the Dyson
// equation.
//
// All imaginary-time arguments are dimensionless, τ ∈ [0, 1] after scaling
// by β, and are passed in relative format: values in (1/2, 1) are stored as
// τ-1 ∈ (-1/2, 0) so that points near τ = 1 keep full relative precision.
// See RelToAbs and AbsToRel. The right endpoint τ = 1 is represented either
// by the literal value 1 or by a negative zero.
//
// References:
//   - J. Kaye, K. Chen, O. Parcollet, "Discrete Lehmann representation of
//     imaginary time Green's functions", Phys. Rev. B 105, 235115 (2022).
//   - J. Kaye, K. Chen, H. U. R. Strand, "libdlr: Efficient imaginary time
//     calculations using the discrete Lehmann representation", Comput.
//     Phys. Commun. 280, 108458 (2022).
package dlr // import "gonum.org/v1/dlr"
