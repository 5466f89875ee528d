// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qprec

import (
	"math"
	"math/rand"
	"testing"
)

const testPrec = 128

func TestSolve(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewSource(1))
	const (
		n   = 12
		m   = 3
		tol = 1e-14
	)
	for _, trans := range []bool{false, true} {
		a := NewMatrix(n, n, testPrec)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				a.SetFloat64(i, j, rnd.NormFloat64())
			}
		}
		want := make([]float64, n*m)
		for i := range want {
			want[i] = rnd.NormFloat64()
		}
		// b = A·x (or Aᵀ·x) computed in extended precision.
		b := NewMatrix(n, m, testPrec)
		tmp := NewMatrix(1, 1, testPrec)
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				for k := 0; k < n; k++ {
					aik := a.At(i, k)
					if trans {
						aik = a.At(k, i)
					}
					tmp.At(0, 0).SetFloat64(want[k*m+j])
					tmp.At(0, 0).Mul(tmp.At(0, 0), aik)
					b.At(i, j).Add(b.At(i, j), tmp.At(0, 0))
				}
			}
		}
		lu, err := Factorize(a)
		if err != nil {
			t.Fatalf("trans=%v: unexpected factorization error: %v", trans, err)
		}
		lu.SolveTo(b, trans)
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				if got := b.Float64(i, j); math.Abs(got-want[i*m+j]) > tol {
					t.Errorf("trans=%v: solution mismatch at (%d, %d): got %g, want %g", trans, i, j, got, want[i*m+j])
				}
			}
		}
	}
}

func TestHilbert(t *testing.T) {
	t.Parallel()
	// The 10×10 Hilbert system is hopeless in float64 but easy at 128
	// bits: solve H·x = H·1 and recover the exact ones vector.
	const (
		n   = 10
		tol = 1e-20
	)
	h := NewMatrix(n, n, testPrec)
	one := NewMatrix(1, 1, testPrec)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			one.At(0, 0).SetInt64(1)
			h.At(i, j).SetInt64(int64(i + j + 1))
			h.At(i, j).Quo(one.At(0, 0), h.At(i, j))
		}
	}
	b := NewMatrix(n, 1, testPrec)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b.At(i, 0).Add(b.At(i, 0), h.At(i, j))
		}
	}
	lu, err := Factorize(h)
	if err != nil {
		t.Fatalf("unexpected factorization error: %v", err)
	}
	lu.SolveTo(b, false)
	for i := 0; i < n; i++ {
		if got := b.Float64(i, 0); math.Abs(got-1) > tol {
			t.Errorf("solution entry %d = %v, want 1", i, got)
		}
	}
}

func TestFactorizeSingular(t *testing.T) {
	t.Parallel()
	a := NewMatrix(2, 2, testPrec)
	a.SetFloat64(0, 0, 1)
	a.SetFloat64(0, 1, 2)
	a.SetFloat64(1, 0, 2)
	a.SetFloat64(1, 1, 4)
	if _, err := Factorize(a); err != ErrSingular {
		t.Errorf("got error %v, want ErrSingular", err)
	}
}
