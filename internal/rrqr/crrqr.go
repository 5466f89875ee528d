// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rrqr

import (
	"math"
	"math/cmplx"
)

// CQR is the complex analogue of QR.
type CQR struct {
	M, N      int
	Rank      int
	Converged bool
	Q         []complex128
	R         []complex128
	Swaps     []int
}

// DecomposeCmplx computes a column-pivoted QR factorization of the m×n
// row-major complex matrix a, which is not modified. The tolerance and cap
// semantics match Decompose.
func DecomposeCmplx(m, n int, a []complex128, tol float64, kmax int) *CQR {
	if len(a) < m*n {
		panic("rrqr: insufficient matrix slice length")
	}
	if kmax <= 0 || kmax > min(m, n) {
		kmax = min(m, n)
	}

	cols := make([]complex128, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			cols[j*m+i] = a[i*n+j]
		}
	}

	qr := &CQR{
		M:     m,
		N:     n,
		Q:     make([]complex128, 0, m*kmax),
		R:     make([]complex128, kmax*n),
		Swaps: make([]int, 0, kmax),
	}
	var nrm1 float64
	for k := 0; k < kmax; k++ {
		jmax, best := k, -1.0
		for j := k; j < n; j++ {
			s := real(cdot(cols[j*m:(j+1)*m], cols[j*m:(j+1)*m]))
			if s > best {
				best, jmax = s, j
			}
		}
		pnorm := math.Sqrt(best)
		if k == 0 {
			nrm1 = pnorm
		}
		if tol >= 0 && (pnorm == 0 || pnorm <= tol*nrm1) {
			qr.Rank = k
			qr.Converged = true
			return qr
		}
		if jmax != k {
			cswapCols(cols, m, k, jmax)
			for i := 0; i < k; i++ {
				qr.R[i*n+k], qr.R[i*n+jmax] = qr.R[i*n+jmax], qr.R[i*n+k]
			}
		}
		qr.Swaps = append(qr.Swaps, jmax)

		v := cols[k*m : (k+1)*m]
		for i := 0; i < k; i++ {
			qi := qr.Q[i*m : (i+1)*m]
			c := cdot(qi, v)
			caxpy(-c, qi, v)
			qr.R[i*n+k] += c
		}
		nrm := math.Sqrt(real(cdot(v, v)))
		if nrm == 0 {
			qr.Rank = k
			qr.Swaps = qr.Swaps[:k]
			return qr
		}
		qr.R[k*n+k] = complex(nrm, 0)
		inv := complex(1/nrm, 0)
		for i := range v {
			v[i] *= inv
		}
		qr.Q = append(qr.Q, v...)
		for j := k + 1; j < n; j++ {
			cj := cols[j*m : (j+1)*m]
			c := cdot(v, cj)
			qr.R[k*n+j] = c
			caxpy(-c, v, cj)
		}
	}
	qr.Rank = kmax
	qr.Converged = tol < 0 || kmax == min(m, n)
	if !qr.Converged {
		// The cap may coincide with the ε-rank: test the next pivot.
		best := 0.0
		for j := kmax; j < n; j++ {
			if s := real(cdot(cols[j*m:(j+1)*m], cols[j*m:(j+1)*m])); s > best {
				best = s
			}
		}
		qr.Converged = math.Sqrt(best) <= tol*nrm1
	}
	return qr
}

// DecomposeCmplxRank computes exactly k steps of the pivoted factorization
// of the m×n row-major complex matrix a.
func DecomposeCmplxRank(m, n int, a []complex128, k int) *CQR {
	return DecomposeCmplx(m, n, a, -1, k)
}

// cdot is the conjugated dot product x^H·y.
func cdot(x, y []complex128) complex128 {
	var s complex128
	for i, v := range x {
		s += cmplx.Conj(v) * y[i]
	}
	return s
}

func caxpy(alpha complex128, x, y []complex128) {
	for i, v := range x {
		y[i] += alpha * v
	}
}

func cswapCols(cols []complex128, m, j, k int) {
	cj := cols[j*m : (j+1)*m]
	ck := cols[k*m : (k+1)*m]
	for i := range cj {
		cj[i], ck[i] = ck[i], cj[i]
	}
}
