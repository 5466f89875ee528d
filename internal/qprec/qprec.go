// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qprec provides dense matrices of big.Float values and an LU
// solver with partial pivoting over them. It backs the two operators of the
// discrete Lehmann representation that require wider-than-double
// arithmetic: the inner-product weight matrix and the extended-precision
// convolution tensor.
package qprec

import (
	"errors"
	"math/big"
)

// ErrSingular is returned when a zero pivot is encountered.
var ErrSingular = errors.New("qprec: matrix is singular")

// Matrix is a dense row-major matrix of big.Float values sharing one
// precision.
type Matrix struct {
	r, c int
	prec uint
	data []*big.Float
}

// NewMatrix returns an r×c zero matrix with entries of precision prec.
func NewMatrix(r, c int, prec uint) *Matrix {
	if r <= 0 || c <= 0 {
		panic("qprec: non-positive dimension")
	}
	m := &Matrix{r: r, c: c, prec: prec, data: make([]*big.Float, r*c)}
	for i := range m.data {
		m.data[i] = new(big.Float).SetPrec(prec)
	}
	return m
}

// Dims returns the dimensions of the matrix.
func (m *Matrix) Dims() (r, c int) { return m.r, m.c }

// Prec returns the precision of the matrix entries.
func (m *Matrix) Prec() uint { return m.prec }

// At returns the entry at (i, j). The returned value is the backing
// big.Float, not a copy.
func (m *Matrix) At(i, j int) *big.Float {
	return m.data[i*m.c+j]
}

// Set copies v into the entry at (i, j).
func (m *Matrix) Set(i, j int, v *big.Float) {
	m.data[i*m.c+j].Set(v)
}

// SetFloat64 sets the entry at (i, j) to v.
func (m *Matrix) SetFloat64(i, j int, v float64) {
	m.data[i*m.c+j].SetFloat64(v)
}

// Float64 returns the entry at (i, j) rounded to float64.
func (m *Matrix) Float64(i, j int) float64 {
	f, _ := m.data[i*m.c+j].Float64()
	return f
}

// LU is an LU factorization with partial pivoting, P·A = L·U.
type LU struct {
	lu  *Matrix
	piv []int
}

// Factorize computes the factorization of the square matrix a, which is
// not modified. It returns ErrSingular on a zero pivot.
func Factorize(a *Matrix) (*LU, error) {
	n, c := a.Dims()
	if n != c {
		panic("qprec: matrix is not square")
	}
	w := NewMatrix(n, n, a.prec)
	for i := range w.data {
		w.data[i].Set(a.data[i])
	}
	lu := &LU{lu: w, piv: make([]int, n)}
	t := new(big.Float).SetPrec(a.prec)
	for k := 0; k < n; k++ {
		p := k
		pmax := new(big.Float).Abs(w.At(k, k))
		for i := k + 1; i < n; i++ {
			if t.Abs(w.At(i, k)); t.Cmp(pmax) > 0 {
				p = i
				pmax.Set(t)
			}
		}
		lu.piv[k] = p
		if pmax.Sign() == 0 {
			return nil, ErrSingular
		}
		if p != k {
			for j := 0; j < n; j++ {
				w.data[k*n+j], w.data[p*n+j] = w.data[p*n+j], w.data[k*n+j]
			}
		}
		for i := k + 1; i < n; i++ {
			l := w.At(i, k)
			l.Quo(l, w.At(k, k))
			for j := k + 1; j < n; j++ {
				t.Mul(l, w.At(k, j))
				w.At(i, j).Sub(w.At(i, j), t)
			}
		}
	}
	return lu, nil
}

// SolveTo overwrites the n×m matrix b with the solution of A·X = b, or of
// Aᵀ·X = b if trans is true.
func (lu *LU) SolveTo(b *Matrix, trans bool) {
	n, _ := lu.lu.Dims()
	br, bc := b.Dims()
	if br != n {
		panic("qprec: right-hand side dimension mismatch")
	}
	t := new(big.Float).SetPrec(lu.lu.prec)
	if !trans {
		// P·A = L·U: apply P to b, then solve L and U.
		for k := 0; k < n; k++ {
			if p := lu.piv[k]; p != k {
				for j := 0; j < bc; j++ {
					b.data[k*bc+j], b.data[p*bc+j] = b.data[p*bc+j], b.data[k*bc+j]
				}
			}
		}
		for j := 0; j < bc; j++ {
			for i := 1; i < n; i++ {
				x := b.At(i, j)
				for k := 0; k < i; k++ {
					t.Mul(lu.lu.At(i, k), b.At(k, j))
					x.Sub(x, t)
				}
			}
			for i := n - 1; i >= 0; i-- {
				x := b.At(i, j)
				for k := i + 1; k < n; k++ {
					t.Mul(lu.lu.At(i, k), b.At(k, j))
					x.Sub(x, t)
				}
				x.Quo(x, lu.lu.At(i, i))
			}
		}
		return
	}
	// Aᵀ = Uᵀ·Lᵀ·P: solve Uᵀ (forward), then Lᵀ (backward), then apply
	// the swaps in reverse.
	for j := 0; j < bc; j++ {
		for i := 0; i < n; i++ {
			x := b.At(i, j)
			for k := 0; k < i; k++ {
				t.Mul(lu.lu.At(k, i), b.At(k, j))
				x.Sub(x, t)
			}
			x.Quo(x, lu.lu.At(i, i))
		}
		for i := n - 1; i >= 0; i-- {
			x := b.At(i, j)
			for k := i + 1; k < n; k++ {
				t.Mul(lu.lu.At(k, i), b.At(k, j))
				x.Sub(x, t)
			}
		}
	}
	for k := n - 1; k >= 0; k-- {
		if p := lu.piv[k]; p != k {
			for j := 0; j < bc; j++ {
				b.data[k*bc+j], b.data[p*bc+j] = b.data[p*bc+j], b.data[k*bc+j]
			}
		}
	}
}
