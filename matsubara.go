// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"gonum.org/v1/gonum/mat"

	"gonum.org/v1/dlr/internal/rrqr"
	"gonum.org/v1/dlr/internal/zlu"
	"gonum.org/v1/dlr/kernel"
)

// Matsubara holds the Matsubara-frequency interpolation nodes of a basis
// and the transforms between DLR coefficients and values on those nodes.
// The nodes are selected by a fixed-rank pivoted factorization of the
// Fourier-transformed kernel over the index window [-nmax, nmax].
type Matsubara struct {
	basis *Basis
	stat  Statistics

	// N holds the r selected signed Matsubara integers, in pivot order.
	N []int

	cf2mf *mat.CDense
	mf2cf *zlu.LU
}

// NewMatsubara selects r Matsubara-frequency nodes for b from the index
// window [-nmax, nmax] and builds the associated transforms. It panics if
// the window holds fewer than r indices, and returns ErrSingular if the
// resulting collocation matrix cannot be factorized.
func NewMatsubara(b *Basis, stat Statistics, nmax int) (*Matsubara, error) {
	r := b.Rank()
	nw := 2*nmax + 1
	if nmax < 0 || nw < r {
		panic(badNMax)
	}

	a := make([]complex128, r*nw)
	for k, w := range b.Freqs {
		for j := 0; j < nw; j++ {
			a[k*nw+j] = kernel.MF(stat.matsubara(j-nmax), w)
		}
	}
	qr := rrqr.DecomposeCmplxRank(r, nw, a, r)
	if !qr.Converged {
		return nil, ErrSingular
	}

	m := &Matsubara{
		basis: b,
		stat:  stat,
		N:     make([]int, r),
	}
	for k, j := range rrqr.Rearrange(qr.Swaps, nw)[:r] {
		m.N[k] = j - nmax
	}

	cf2mf := make([]complex128, r*r)
	for i, n := range m.N {
		for j, w := range b.Freqs {
			cf2mf[i*r+j] = kernel.MF(stat.matsubara(n), w)
		}
	}
	m.cf2mf = mat.NewCDense(r, r, cf2mf)
	lu, err := zlu.Factorize(r, cf2mf)
	if err != nil {
		return nil, ErrSingular
	}
	m.mf2cf = lu
	return m, nil
}

// Basis returns the basis the transforms were built on.
func (m *Matsubara) Basis() *Basis { return m.basis }

// Statistics returns the particle statistics of the node set.
func (m *Matsubara) Statistics() Statistics { return m.stat }

// ValuesFromCoeffs overwrites dst with the Matsubara node values of the
// expansion with real coefficients c. It panics if the slice lengths do
// not match the basis rank.
func (m *Matsubara) ValuesFromCoeffs(dst []complex128, c []float64) {
	r := m.basis.Rank()
	if len(dst) != r || len(c) != r {
		panic(badLength)
	}
	for i := range dst {
		var s complex128
		for j := 0; j < r; j++ {
			s += m.cf2mf.At(i, j) * complex(c[j], 0)
		}
		dst[i] = s
	}
}

// CoeffsFromValues overwrites dst with the DLR coefficients of the
// expansion whose Matsubara node values are v. The coefficients of a
// physical Green's function are real up to rounding; the imaginary parts
// are returned for diagnostics. It panics if the slice lengths do not
// match the basis rank.
func (m *Matsubara) CoeffsFromValues(dst, v []complex128) {
	r := m.basis.Rank()
	if len(dst) != r || len(v) != r {
		panic(badLength)
	}
	copy(dst, v)
	m.mf2cf.Solve(dst)
}
