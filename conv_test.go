// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"

	"gonum.org/v1/dlr/kernel"
)

// convTestSetup builds a Λ=100 basis with transforms and the fermionic
// convolution tensor at the given β.
func convTestSetup(t *testing.T, eps, beta float64) (*Basis, *Transforms, *Conv) {
	t.Helper()
	b, err := New(100, eps)
	if err != nil {
		t.Fatalf("unexpected error building basis: %v", err)
	}
	tr := NewTransforms(b)
	return b, tr, NewConv(tr, beta, Fermion)
}

// TestConvExponentials convolves two Lehmann basis functions and compares
// with the fermionic closed form
//
//	(K_a ∗ K_b)(τ) = β (K(τ, ω_b) - K(τ, ω_a)) / (ω_a - ω_b).
func TestConvExponentials(t *testing.T) {
	t.Parallel()
	const (
		eps  = 1e-14
		beta = 10
		wa   = 0.2
		wb   = -0.7
		tol  = 1e-12
	)
	b, _, cv := convTestSetup(t, eps, beta)
	r := b.Rank()

	g := make([]float64, r)
	f := make([]float64, r)
	for j, tt := range b.Tau {
		g[j] = kernel.It(tt, wa)
		f[j] = kernel.It(tt, wb)
	}
	got := make([]float64, r)
	if err := cv.Apply(got, g, f); err != nil {
		t.Fatalf("unexpected convolution error: %v", err)
	}
	for j, tt := range b.Tau {
		want := beta * (kernel.It(tt, wb) - kernel.It(tt, wa)) / (wa - wb)
		if d := math.Abs(got[j] - want); d > tol {
			t.Errorf("convolution at node %d off by %g", j, d)
		}
	}
}

// TestConvQuadrature compares the convolution operator against direct
// Gauss–Legendre evaluation of the antiperiodic convolution integral.
func TestConvQuadrature(t *testing.T) {
	t.Parallel()
	const (
		eps  = 1e-14
		beta = 10
		wa   = 0.2
		wb   = -0.7
		nq   = 60
		tol  = 1e-11
	)
	b, _, cv := convTestSetup(t, eps, beta)
	r := b.Rank()

	g := make([]float64, r)
	f := make([]float64, r)
	for j, tt := range b.Tau {
		g[j] = kernel.It(tt, wa)
		f[j] = kernel.It(tt, wb)
	}
	got := make([]float64, r)
	if err := cv.Apply(got, g, f); err != nil {
		t.Fatalf("unexpected convolution error: %v", err)
	}

	x := make([]float64, nq)
	w := make([]float64, nq)
	for j, tt := range b.Tau {
		ta := RelToAbs(tt)
		// β ∫₀^τ K(τ-s, ω_a) K(s, ω_b) ds
		//   - β ∫_τ^1 K(τ-s+1, ω_a) K(s, ω_b) ds.
		var want float64
		quad.Legendre{}.FixedLocations(x, w, 0, ta)
		for i := range x {
			want += beta * w[i] * kernel.ItAbs(ta-x[i], wa) * kernel.ItAbs(x[i], wb)
		}
		quad.Legendre{}.FixedLocations(x, w, ta, 1)
		for i := range x {
			want -= beta * w[i] * kernel.ItAbs(ta-x[i]+1, wa) * kernel.ItAbs(x[i], wb)
		}
		if d := math.Abs(got[j] - want); d > tol {
			t.Errorf("convolution at node %d (τ=%g): got %g, want %g", j, tt, got[j], want)
		}
	}
}

// TestConvBasisFunction checks the tensor entries against the divided
// difference form for a pair of exact basis frequencies.
func TestConvBasisFunction(t *testing.T) {
	t.Parallel()
	const (
		eps  = 1e-14
		beta = 2
		tol  = 1e-12
	)
	b, _, cv := convTestSetup(t, eps, beta)
	r := b.Rank()
	wm, wl := b.Freqs[2%r], b.Freqs[5%r]
	if wm == wl {
		t.Skip("degenerate frequency pair")
	}

	g := make([]float64, r)
	f := make([]float64, r)
	for j, tt := range b.Tau {
		g[j] = kernel.It(tt, wm)
		f[j] = kernel.It(tt, wl)
	}
	got := make([]float64, r)
	if err := cv.Apply(got, g, f); err != nil {
		t.Fatalf("unexpected convolution error: %v", err)
	}
	for j, tt := range b.Tau {
		want := beta * (kernel.It(tt, wl) - kernel.It(tt, wm)) / (wm - wl)
		if d := math.Abs(got[j] - want); d > tol {
			t.Errorf("convolution at node %d off by %g", j, d)
		}
	}
}

func TestConvLinearity(t *testing.T) {
	t.Parallel()
	const (
		eps  = 1e-12
		beta = 5
		tol  = 1e-11
	)
	b, _, cv := convTestSetup(t, eps, beta)
	r := b.Rank()

	rnd := rand.New(rand.NewSource(7))
	g1 := make([]float64, r)
	g2 := make([]float64, r)
	sum := make([]float64, r)
	const a1, a2 = 0.7, -1.9
	for j := range g1 {
		g1[j] = rnd.NormFloat64()
		g2[j] = rnd.NormFloat64()
		sum[j] = a1*g1[j] + a2*g2[j]
	}
	m1, err := cv.Matrix(nil, g1)
	if err != nil {
		t.Fatalf("unexpected convolution error: %v", err)
	}
	m2, err := cv.Matrix(nil, g2)
	if err != nil {
		t.Fatalf("unexpected convolution error: %v", err)
	}
	ms, err := cv.Matrix(nil, sum)
	if err != nil {
		t.Fatalf("unexpected convolution error: %v", err)
	}
	var lin mat.Dense
	lin.Scale(a1, m1)
	var m2s mat.Dense
	m2s.Scale(a2, m2)
	lin.Add(&lin, &m2s)
	var norm float64
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			if a := math.Abs(ms.At(i, j)); a > norm {
				norm = a
			}
		}
	}
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			if d := math.Abs(ms.At(i, j) - lin.At(i, j)); d > tol*norm {
				t.Fatalf("linearity violated at (%d, %d): off by %g", i, j, d)
			}
		}
	}
}

// TestConvXP compares the extended-precision values-to-values tensor with
// the double-precision path at a moderate cutoff where both are accurate.
func TestConvXP(t *testing.T) {
	t.Parallel()
	const (
		eps  = 1e-12
		beta = 3
		tol  = 1e-9
	)
	b, tr, cv := convTestSetup(t, eps, beta)
	cvxp, err := NewConvXP(tr, beta, Fermion)
	if err != nil {
		t.Fatalf("unexpected error building tensor: %v", err)
	}
	r := b.Rank()

	g := make([]float64, r)
	for j, tt := range b.Tau {
		g[j] = kernel.It(tt, 4.2) - 0.8*kernel.It(tt, -17)
	}
	m1, err := cv.Matrix(nil, g)
	if err != nil {
		t.Fatalf("unexpected convolution error: %v", err)
	}
	m2, err := cvxp.Matrix(nil, g)
	if err != nil {
		t.Fatalf("unexpected convolution error: %v", err)
	}
	var norm float64
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			if a := math.Abs(m1.At(i, j)); a > norm {
				norm = a
			}
		}
	}
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			if d := math.Abs(m1.At(i, j) - m2.At(i, j)); d > tol*norm {
				t.Fatalf("tensor variants disagree at (%d, %d) by %g", i, j, d)
			}
		}
	}
}
