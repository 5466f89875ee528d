// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"

	"gonum.org/v1/dlr/kernel"
)

func TestValuesCoeffsRoundtrip(t *testing.T) {
	t.Parallel()
	const tol = 1e-12
	b, err := New(100, 1e-14)
	if err != nil {
		t.Fatalf("unexpected error building basis: %v", err)
	}
	tr := NewTransforms(b)
	r := b.Rank()

	rnd := rand.New(rand.NewSource(1))
	g := make([]float64, r)
	for j, tt := range b.Tau {
		g[j] = kernel.It(tt, 7.5) - 0.3*kernel.It(tt, -42) + 1e-3*rnd.Float64()
	}
	c := make([]float64, r)
	if err := tr.CoeffsFromValues(c, g); err != nil {
		t.Fatalf("unexpected transform error: %v", err)
	}
	back := make([]float64, r)
	tr.ValuesFromCoeffs(back, c)
	if d := floats.Distance(back, g, math.Inf(1)); d > tol {
		t.Errorf("values-coefficients roundtrip off by %g", d)
	}

	// The interpolation identity: evaluating the expansion at a node
	// reproduces the node value.
	for j, tt := range b.Tau {
		if d := math.Abs(b.Eval(c, tt) - g[j]); d > tol {
			t.Errorf("interpolation identity off by %g at node %d", d, j)
		}
	}
}

// TestReflect checks the reflection operator against the kernel identity
// K(1-τ, ω) at ω = 0.3, and its involution property.
func TestReflect(t *testing.T) {
	t.Parallel()
	const (
		lambda = 100
		eps    = 1e-12
		tol    = 100 * eps
	)
	b, err := New(lambda, eps)
	if err != nil {
		t.Fatalf("unexpected error building basis: %v", err)
	}
	tr := NewTransforms(b)
	r := b.Rank()

	g := make([]float64, r)
	for j, tt := range b.Tau {
		g[j] = kernel.It(tt, 0.3)
	}
	refl := make([]float64, r)
	if err := tr.Reflect(refl, g); err != nil {
		t.Fatalf("unexpected reflection error: %v", err)
	}
	for j, tt := range b.Tau {
		want := kernel.It(reflectRel(tt), 0.3)
		if d := math.Abs(refl[j] - want); d > tol {
			t.Errorf("reflected value at node %d off by %g", j, d)
		}
	}

	// Reflection is an involution.
	back := make([]float64, r)
	if err := tr.Reflect(back, refl); err != nil {
		t.Fatalf("unexpected reflection error: %v", err)
	}
	if d := floats.Distance(back, g, math.Inf(1)); d > tol {
		t.Errorf("double reflection off by %g", d)
	}
}

func TestTransformsLengthPanics(t *testing.T) {
	t.Parallel()
	b, err := New(10, 1e-8)
	if err != nil {
		t.Fatalf("unexpected error building basis: %v", err)
	}
	tr := NewTransforms(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on short slice")
		}
	}()
	tr.ValuesFromCoeffs(make([]float64, b.Rank()-1), make([]float64, b.Rank()))
}
