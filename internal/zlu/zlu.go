// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zlu provides an LU factorization with partial pivoting for dense
// complex matrices. Gonum's mat package has no complex dense solver, so the
// small zgetrf/zgetrs pair needed by the Matsubara transforms is ported
// here in the style of the float64 LAPACK routines.
package zlu

import (
	"errors"
	"math"
)

// ErrSingular is returned when a zero pivot is encountered.
var ErrSingular = errors.New("zlu: matrix is singular")

// LU is an LU factorization with partial pivoting of an n×n complex
// matrix, P·A = L·U.
type LU struct {
	n   int
	lu  []complex128 // combined factors, row-major
	piv []int        // row swapped with i at step i
}

// Factorize computes the factorization of the n×n row-major matrix a,
// which is not modified. It returns ErrSingular on a zero pivot.
func Factorize(n int, a []complex128) (*LU, error) {
	if len(a) < n*n {
		panic("zlu: insufficient matrix slice length")
	}
	lu := &LU{
		n:   n,
		lu:  make([]complex128, n*n),
		piv: make([]int, n),
	}
	copy(lu.lu, a[:n*n])
	w := lu.lu
	for k := 0; k < n; k++ {
		// Partial pivoting on |Re| + |Im|, as in the reference zgetrf.
		p, pmax := k, cabs1(w[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := cabs1(w[i*n+k]); v > pmax {
				p, pmax = i, v
			}
		}
		lu.piv[k] = p
		if pmax == 0 {
			return nil, ErrSingular
		}
		if p != k {
			for j := 0; j < n; j++ {
				w[k*n+j], w[p*n+j] = w[p*n+j], w[k*n+j]
			}
		}
		inv := 1 / w[k*n+k]
		for i := k + 1; i < n; i++ {
			l := w[i*n+k] * inv
			w[i*n+k] = l
			for j := k + 1; j < n; j++ {
				w[i*n+j] -= l * w[k*n+j]
			}
		}
	}
	return lu, nil
}

// Solve overwrites b with the solution of A·x = b. Solve panics if
// len(b) != n.
func (lu *LU) Solve(b []complex128) {
	n := lu.n
	if len(b) != n {
		panic("zlu: right-hand side length mismatch")
	}
	for k := 0; k < n; k++ {
		if p := lu.piv[k]; p != k {
			b[k], b[p] = b[p], b[k]
		}
	}
	// Forward substitution with the unit lower triangle.
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			b[i] -= lu.lu[i*n+j] * b[j]
		}
	}
	// Back substitution with the upper triangle.
	for i := n - 1; i >= 0; i-- {
		for j := i + 1; j < n; j++ {
			b[i] -= lu.lu[i*n+j] * b[j]
		}
		b[i] /= lu.lu[i*n+i]
	}
}

func cabs1(z complex128) float64 {
	return math.Abs(real(z)) + math.Abs(imag(z))
}
