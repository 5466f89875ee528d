// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

// Statistics selects the particle statistics of a Green's function. Its
// value is the sign ξ entering the convolution and inner-product weights.
type Statistics int

const (
	// Fermion selects antiperiodic functions with Matsubara frequencies
	// ν_n = (2n+1)π/β.
	Fermion Statistics = -1

	// Boson selects periodic functions with Matsubara frequencies
	// ν_n = 2nπ/β. The bosonic path follows the defining formulas but is
	// not exercised by the reference physics harnesses; see the package
	// tests for its coverage.
	Boson Statistics = 1
)

// xi returns the statistics sign as a float64.
func (s Statistics) xi() float64 { return float64(s) }

// matsubara returns the integer m parameterizing the dimensionless
// Matsubara frequency πm for index n: odd 2n+1 for fermions, even 2n for
// bosons.
func (s Statistics) matsubara(n int) int {
	if s == Fermion {
		return 2*n + 1
	}
	return 2 * n
}
