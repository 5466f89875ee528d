// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cheb

import (
	"math"
	"sort"
	"testing"
)

func TestNodes(t *testing.T) {
	t.Parallel()
	for _, p := range []int{1, 2, 5, 24} {
		x := Nodes(p)
		if len(x) != p {
			t.Fatalf("Nodes(%d) returned %d nodes", p, len(x))
		}
		if !sort.Float64sAreSorted(x) {
			t.Errorf("Nodes(%d) not in increasing order: %v", p, x)
		}
		if x[0] <= -1 || x[p-1] >= 1 {
			t.Errorf("Nodes(%d) includes endpoints: %v", p, x)
		}
	}
}

func TestInterp(t *testing.T) {
	t.Parallel()
	const (
		p   = 24
		tol = 1e-13
	)
	x := Nodes(p)
	w := BaryWeights(x)
	for _, test := range []struct {
		name string
		f    func(float64) float64
	}{
		{"exp", math.Exp},
		{"cos5", func(t float64) float64 { return math.Cos(5 * t) }},
		{"rational", func(t float64) float64 { return 1 / (t*t + 0.5) }},
	} {
		f := make([]float64, p)
		for j, xj := range x {
			f[j] = test.f(xj)
		}
		// Check at twice as many fresh Chebyshev points and at the nodes.
		for _, tt := range append(Nodes(2*p), x...) {
			got := Interp(x, w, f, tt)
			want := test.f(tt)
			if math.Abs(got-want) > tol*math.Max(1, math.Abs(want)) {
				t.Errorf("%s: interpolant at %g = %g, want %g", test.name, tt, got, want)
			}
		}
	}
}

func TestMap(t *testing.T) {
	t.Parallel()
	if got := Map(-1, 0.25, 0.5); got != 0.25 {
		t.Errorf("Map(-1, 0.25, 0.5) = %g, want 0.25", got)
	}
	if got := Map(1, 0.25, 0.5); got != 0.5 {
		t.Errorf("Map(1, 0.25, 0.5) = %g, want 0.5", got)
	}
	if got := Map(0, -2, 6); got != 2 {
		t.Errorf("Map(0, -2, 6) = %g, want 2", got)
	}
}
