// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/dlr/kernel"
)

// TestFitScattered fits DLR coefficients to scattered imaginary-time
// samples of a two-pole Green's function and checks the recovered
// expansion away from the sample points.
func TestFitScattered(t *testing.T) {
	t.Parallel()
	const (
		lambda = 100
		eps    = 1e-12
		m      = 300
		tol    = 1e-9
	)
	b, err := New(lambda, eps)
	if err != nil {
		t.Fatalf("unexpected error building basis: %v", err)
	}
	gf := func(tt float64) float64 {
		return 0.7*kernel.It(tt, 3.3) - 0.4*kernel.It(tt, -20)
	}

	rnd := rand.New(rand.NewSource(11))
	ts := make([]float64, m)
	vals := make([]float64, m)
	for i := range ts {
		ts[i] = AbsToRel(rnd.Float64())
		vals[i] = gf(ts[i])
	}
	coeffs, rank := Fit(b, ts, vals)
	if rank <= 0 || rank > b.Rank() {
		t.Fatalf("numerical rank %d outside (0, %d]", rank, b.Rank())
	}
	for _, tt := range EquispacedRel(517) {
		if d := math.Abs(b.Eval(coeffs, tt) - gf(tt)); d > tol {
			t.Errorf("fitted expansion at τ=%g off by %g", tt, d)
		}
	}
}

// TestFitAtNodes fits using the interpolation nodes themselves, which
// must reproduce the direct transform.
func TestFitAtNodes(t *testing.T) {
	t.Parallel()
	const tol = 1e-10
	b, err := New(100, 1e-12)
	if err != nil {
		t.Fatalf("unexpected error building basis: %v", err)
	}
	tr := NewTransforms(b)
	r := b.Rank()
	g := make([]float64, r)
	for j, tt := range b.Tau {
		g[j] = kernel.It(tt, -7.7)
	}
	want := make([]float64, r)
	if err := tr.CoeffsFromValues(want, g); err != nil {
		t.Fatalf("unexpected transform error: %v", err)
	}
	got, rank := Fit(b, b.Tau, g)
	if rank <= 0 || rank > r {
		t.Fatalf("numerical rank %d outside (0, %d]", rank, r)
	}
	// Both expansions interpolate the same data; compare them as
	// functions rather than coefficient-wise.
	for _, tt := range EquispacedRel(101) {
		if d := math.Abs(b.Eval(got, tt) - b.Eval(want, tt)); d > tol {
			t.Errorf("fit and transform expansions differ by %g at τ=%g", d, tt)
		}
	}
}
