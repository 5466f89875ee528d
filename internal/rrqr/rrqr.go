// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rrqr implements greedy column-pivoted, rank-revealing QR
// factorization with an adaptive stopping tolerance, together with the
// pivoted least-squares solve built on it.
//
// The factorization is computed by modified Gram-Schmidt with a single
// reorthogonalization pass on each pivot column. At step k the residual
// column of largest Euclidean norm is swapped into position k; the norm of
// that column is the diagonal entry R[k,k], so the adaptive criterion
// |R[k,k]| ≤ tol·|R[0,0]| reveals the ε-rank of the input.
//
// Pivots are reported in swap form: Swaps[k] records the column exchanged
// with column k at step k, as returned by LAPACK-style pivoted
// factorizations. Rearrange composes the swaps into an absolute
// permutation.
package rrqr

import "math"

// QR is a column-pivoted QR factorization A·P = Q·R truncated at Rank
// columns.
type QR struct {
	M, N int

	// Rank is the number of factorization steps taken.
	Rank int

	// Converged reports whether the factorization reached the requested
	// tolerance (or requested rank) rather than being cut off by the step
	// cap or by an exactly rank-deficient input.
	Converged bool

	// Q holds the Rank orthonormal basis columns; column k occupies
	// Q[k*M : (k+1)*M].
	Q []float64

	// R is Rank×N in row-major order, with columns in pivoted order. The
	// leading Rank×Rank block is upper triangular.
	R []float64

	// Swaps holds the swap-form pivots, one per factorization step.
	Swaps []int
}

// Decompose computes a column-pivoted QR factorization of the m×n row-major
// matrix a, which is not modified.
//
// If tol ≥ 0 the factorization stops adaptively at the first step k whose
// pivot column norm does not exceed tol times the first pivot norm; kmax
// caps the number of steps (kmax ≤ 0 means min(m, n)). If tol < 0 exactly
// kmax steps are requested. Decompose panics if a is shorter than m*n.
func Decompose(m, n int, a []float64, tol float64, kmax int) *QR {
	if len(a) < m*n {
		panic("rrqr: insufficient matrix slice length")
	}
	if kmax <= 0 || kmax > min(m, n) {
		kmax = min(m, n)
	}

	// Work on columns for contiguous access; column j is cols[j*m : (j+1)*m].
	cols := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			cols[j*m+i] = a[i*n+j]
		}
	}

	qr := &QR{
		M:     m,
		N:     n,
		Q:     make([]float64, 0, m*kmax),
		R:     make([]float64, kmax*n),
		Swaps: make([]int, 0, kmax),
	}
	var nrm1 float64
	for k := 0; k < kmax; k++ {
		// Residual norms are recomputed exactly; downdating is not worth
		// its cancellation safeguards at the sizes the kernel produces.
		jmax, best := k, -1.0
		for j := k; j < n; j++ {
			s := dot(cols[j*m:(j+1)*m], cols[j*m:(j+1)*m])
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
			swapCols(cols, m, k, jmax)
			for i := 0; i < k; i++ {
				qr.R[i*n+k], qr.R[i*n+jmax] = qr.R[i*n+jmax], qr.R[i*n+k]
			}
		}
		qr.Swaps = append(qr.Swaps, jmax)

		// Reorthogonalize the pivot column against the basis built so far,
		// folding the corrections into R.
		v := cols[k*m : (k+1)*m]
		for i := 0; i < k; i++ {
			qi := qr.Q[i*m : (i+1)*m]
			c := dot(qi, v)
			axpy(-c, qi, v)
			qr.R[i*n+k] += c
		}
		nrm := math.Sqrt(dot(v, v))
		if nrm == 0 {
			qr.Rank = k
			qr.Swaps = qr.Swaps[:k]
			return qr
		}
		qr.R[k*n+k] = nrm
		inv := 1 / nrm
		for i := range v {
			v[i] *= inv
		}
		qr.Q = append(qr.Q, v...)
		for j := k + 1; j < n; j++ {
			cj := cols[j*m : (j+1)*m]
			c := dot(v, cj)
			qr.R[k*n+j] = c
			axpy(-c, v, cj)
		}
	}
	qr.Rank = kmax
	qr.Converged = tol < 0 || kmax == min(m, n)
	if !qr.Converged {
		// The cap may coincide with the ε-rank: test the next pivot.
		best := 0.0
		for j := kmax; j < n; j++ {
			if s := dot(cols[j*m:(j+1)*m], cols[j*m:(j+1)*m]); s > best {
				best = s
			}
		}
		qr.Converged = math.Sqrt(best) <= tol*nrm1
	}
	return qr
}

// DecomposeRank computes exactly k steps of the pivoted factorization of
// the m×n row-major matrix a.
func DecomposeRank(m, n int, a []float64, k int) *QR {
	return Decompose(m, n, a, -1, k)
}

// Solve returns the minimum-residual solution of A·x ≈ b using the
// rank-truncated factors, with entries of x indexed by the original columns
// of A. Columns outside the revealed rank receive zero coefficients. Solve
// panics if len(b) != M.
func (qr *QR) Solve(b []float64) []float64 {
	if len(b) != qr.M {
		panic("rrqr: right-hand side length mismatch")
	}
	k := qr.Rank
	y := make([]float64, k)
	for i := 0; i < k; i++ {
		y[i] = dot(qr.Q[i*qr.M:(i+1)*qr.M], b)
	}
	// Back substitution on the leading upper triangle.
	for i := k - 1; i >= 0; i-- {
		s := y[i]
		for j := i + 1; j < k; j++ {
			s -= qr.R[i*qr.N+j] * y[j]
		}
		y[i] = s / qr.R[i*qr.N+i]
	}
	x := make([]float64, qr.N)
	perm := Rearrange(qr.Swaps, qr.N)
	for i := 0; i < k; i++ {
		x[perm[i]] = y[i]
	}
	return x
}

// Rearrange composes swap-form pivots into an absolute permutation: the
// result's entry k is the original index of the column standing at position
// k after all swaps have been applied. The first rank entries therefore
// list the selected columns.
func Rearrange(swaps []int, n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for k, s := range swaps {
		p[k], p[s] = p[s], p[k]
	}
	return p
}

func dot(x, y []float64) float64 {
	var s float64
	for i, v := range x {
		s += v * y[i]
	}
	return s
}

func axpy(alpha float64, x, y []float64) {
	for i, v := range x {
		y[i] += alpha * v
	}
}

func swapCols(cols []float64, m, j, k int) {
	cj := cols[j*m : (j+1)*m]
	ck := cols[k*m : (k+1)*m]
	for i := range cj {
		cj[i], ck[i] = ck[i], cj[i]
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
