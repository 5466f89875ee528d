// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"gonum.org/v1/dlr/internal/rrqr"
)

// DefaultRankCap is the rank cap used by New. The ε-rank of the Lehmann
// kernel grows like log(Λ)·log(1/ε) and stays far below this for any
// practical cutoff.
const DefaultRankCap = 500

// A Basis is a discrete Lehmann representation of cutoff Lambda and
// accuracy Eps: a set of real frequencies and matching imaginary-time
// interpolation nodes selected from a fine composite discretization of the
// Lehmann kernel. A Basis is immutable after construction.
type Basis struct {
	// Lambda is the dimensionless cutoff βω_max and Eps the target
	// accuracy of the representation.
	Lambda, Eps float64

	// Freqs holds the r selected real frequencies, in pivot order.
	// FreqIndex holds their indices into the fine frequency grid.
	Freqs     []float64
	FreqIndex []int

	// Tau holds the r selected imaginary-time nodes in relative format,
	// in pivot order. TauIndex holds their indices into the fine
	// imaginary-time grid; the indices are needed only for diagnostics.
	Tau      []float64
	TauIndex []int

	// FineErrTau and FineErrOmega are the self-measured panel
	// interpolation errors of the fine kernel discretization in each
	// variable. Values well above Eps indicate that the fine grid did
	// not resolve the kernel and the basis accuracy is degraded.
	FineErrTau, FineErrOmega float64
}

// Rank returns the number of basis functions r.
func (b *Basis) Rank() int { return len(b.Freqs) }

// New builds the discrete Lehmann representation for the dimensionless
// cutoff lambda and target accuracy eps, with the default rank cap. New
// panics if lambda is not positive or eps is not in (0, 1).
func New(lambda, eps float64) (*Basis, error) {
	return NewMaxRank(lambda, eps, DefaultRankCap)
}

// NewMaxRank builds the discrete Lehmann representation with a caller
// supplied rank cap. It returns ErrRankOverflow if the ε-rank of the
// kernel discretization exceeds the cap.
func NewMaxRank(lambda, eps float64, maxRank int) (*Basis, error) {
	if lambda <= 0 {
		panic(badLambda)
	}
	if eps <= 0 || eps >= 1 {
		panic(badEps)
	}
	if maxRank <= 0 {
		panic(badRankCap)
	}

	g := newFineGrid(lambda)
	kmax := maxRank
	if m := min(len(g.t), len(g.om)); kmax > m {
		kmax = m
	}
	qro := rrqr.Decompose(len(g.t), len(g.om), g.k, eps, kmax)
	if !qro.Converged {
		return nil, ErrRankOverflow
	}
	return newBasis(lambda, eps, g, qro)
}

// NewAtRank builds a discrete Lehmann representation with exactly rank
// basis functions, selecting the best-conditioned nodes the fine grid
// offers regardless of the accuracy they achieve. The Eps field of the
// result reports the relative magnitude of the last retained pivot, which
// estimates the accuracy attained.
func NewAtRank(lambda float64, rank int) (*Basis, error) {
	if lambda <= 0 {
		panic(badLambda)
	}
	if rank <= 0 {
		panic(badRank)
	}

	g := newFineGrid(lambda)
	if rank > min(len(g.t), len(g.om)) {
		panic(badRank)
	}
	qro := rrqr.DecomposeRank(len(g.t), len(g.om), g.k, rank)
	if !qro.Converged {
		return nil, ErrSingular
	}
	no := len(g.om)
	eps := qro.R[(qro.Rank-1)*no+qro.Rank-1] / qro.R[0]
	return newBasis(lambda, eps, g, qro)
}

// newBasis finishes basis construction from the frequency-selecting
// factorization: it extracts the frequency nodes and runs the fixed-rank
// pivoted factorization over the restricted τ rows to select the matching
// imaginary-time nodes.
func newBasis(lambda, eps float64, g *fineGrid, qro *rrqr.QR) (*Basis, error) {
	nt := len(g.t)
	no := len(g.om)
	r := qro.Rank
	b := &Basis{
		Lambda:       lambda,
		Eps:          eps,
		Freqs:        make([]float64, r),
		FreqIndex:    make([]int, r),
		Tau:          make([]float64, r),
		TauIndex:     make([]int, r),
		FineErrTau:   g.errT,
		FineErrOmega: g.errOm,
	}
	copy(b.FreqIndex, rrqr.Rearrange(qro.Swaps, no)[:r])
	for k, j := range b.FreqIndex {
		b.Freqs[k] = g.om[j]
	}

	sel := make([]float64, r*nt)
	for k, j := range b.FreqIndex {
		for i := 0; i < nt; i++ {
			sel[k*nt+i] = g.k[i*no+j]
		}
	}
	qrt := rrqr.DecomposeRank(r, nt, sel, r)
	if !qrt.Converged {
		return nil, ErrSingular
	}
	copy(b.TauIndex, rrqr.Rearrange(qrt.Swaps, nt)[:r])
	for k, i := range b.TauIndex {
		b.Tau[k] = g.t[i]
	}
	return b, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
