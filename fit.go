// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"gonum.org/v1/dlr/internal/rrqr"
	"gonum.org/v1/dlr/kernel"
)

// Fit computes DLR coefficients from scattered imaginary-time samples by
// least squares: the collocation matrix K(τ_i, ω_j) over the sample points
// is factorized by column-pivoted QR truncated at the basis tolerance, and
// the returned rank is the numerical rank used. Sample points are in
// relative format and need not be basis nodes; with fewer samples than
// basis functions the minimum-residual coefficients over the revealed rank
// are returned. Fit panics if the slice lengths differ.
func Fit(b *Basis, ts, vals []float64) (coeffs []float64, rank int) {
	if len(vals) != len(ts) {
		panic(badLength)
	}
	m := len(ts)
	r := b.Rank()
	a := make([]float64, m*r)
	for i, t := range ts {
		for j, w := range b.Freqs {
			a[i*r+j] = kernel.It(t, w)
		}
	}
	qr := rrqr.Decompose(m, r, a, b.Eps, 0)
	return qr.Solve(vals), qr.Rank
}
