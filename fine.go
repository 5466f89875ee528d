// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"math"

	"gonum.org/v1/dlr/internal/cheb"
	"gonum.org/v1/dlr/kernel"
)

// degree is the Chebyshev degree per panel of the fine composite grid.
const degree = 24

// fineGrid is the composite Chebyshev discretization of the Lehmann kernel
// from which the DLR nodes are selected. Panels are dyadically graded
// toward τ = 0, τ = 1 and ω = 0 so that the kernel is resolved uniformly.
// It is built transiently during basis construction and dropped afterwards.
type fineGrid struct {
	npt, npo int

	// t holds the 2·npt·degree τ nodes on [0, 1] in relative format: the
	// first half is in (0, 1/2], the second half mirrors it as negative
	// values encoding τ > 1/2.
	t []float64

	// om holds the 2·npo·degree ω nodes on [-Λ, Λ] in increasing order.
	om []float64

	// k is the sampled kernel, row i corresponding to t[i] and column j
	// to om[j], in row-major order.
	k []float64

	// errT and errOm are the relative L∞ panel-interpolation errors of
	// the sampled kernel in each variable.
	errT, errOm float64
}

func newFineGrid(lambda float64) *fineGrid {
	npt := int(math.Ceil(math.Log2(lambda))) - 2
	if npt < 1 {
		npt = 1
	}
	npo := int(math.Ceil(math.Log2(lambda)))
	if npo < 1 {
		npo = 1
	}
	const p = degree
	nt := 2 * npt * p
	no := 2 * npo * p

	g := &fineGrid{
		npt: npt,
		npo: npo,
		t:   make([]float64, nt),
		om:  make([]float64, no),
		k:   make([]float64, nt*no),
	}

	xc := cheb.Nodes(p)

	// τ panel break points 0, 2^{-npt}, …, 1/2; the mirror half of the
	// grid is stored in relative format, t[i] = -t[nt-1-i].
	tb := make([]float64, npt+1)
	for i := 1; i <= npt; i++ {
		tb[i] = math.Exp2(float64(i - 1 - npt))
	}
	for pi := 0; pi < npt; pi++ {
		for k, x := range xc {
			g.t[pi*p+k] = cheb.Map(x, tb[pi], tb[pi+1])
		}
	}
	for i := nt / 2; i < nt; i++ {
		g.t[i] = -g.t[nt-1-i]
	}

	// ω panel break points -Λ, …, -Λ/2^{npo-1}, 0, Λ/2^{npo-1}, …, Λ.
	ob := make([]float64, 2*npo+1)
	for i := 0; i < npo; i++ {
		ob[i] = -lambda * math.Exp2(-float64(i))
		ob[2*npo-i] = -ob[i]
	}
	// Map the negative half and mirror it, so that om[no-1-j] = -om[j]
	// holds exactly and the symmetry fill below introduces no rounding.
	for pj := 0; pj < npo; pj++ {
		for k, x := range xc {
			g.om[pj*p+k] = cheb.Map(x, ob[pj], ob[pj+1])
		}
	}
	for j := no / 2; j < no; j++ {
		g.om[j] = -g.om[no-1-j]
	}

	// Sample the kernel on the first τ half only; the second half follows
	// from K(1-τ, -ω) = K(τ, ω), which holds exactly on the mirrored grid
	// and avoids re-rounding the small-τ values.
	for i := 0; i < nt/2; i++ {
		for j := 0; j < no; j++ {
			g.k[i*no+j] = kernel.ItAbs(g.t[i], g.om[j])
		}
	}
	for i := nt / 2; i < nt; i++ {
		mi := nt - 1 - i
		for j := 0; j < no; j++ {
			g.k[i*no+j] = g.k[mi*no+no-1-j]
		}
	}

	g.selfCheck(xc, tb, ob)
	return g
}

// selfCheck measures how well the composite panel interpolant reproduces
// the kernel between the sample nodes, in each variable. The errors are
// relative to the largest sampled kernel value and should be of the order
// of the basis tolerance; they are reported on the Basis for diagnostics.
func (g *fineGrid) selfCheck(xc, tb, ob []float64) {
	const p = degree
	no := len(g.om)
	w := cheb.BaryWeights(xc)
	x2 := cheb.Nodes(2 * p)

	var kmax float64
	for _, v := range g.k {
		if v > kmax {
			kmax = v
		}
	}

	f := make([]float64, p)
	for pi := 0; pi < g.npt; pi++ {
		for j := 0; j < no; j++ {
			for k := 0; k < p; k++ {
				f[k] = g.k[(pi*p+k)*no+j]
			}
			for _, x := range x2 {
				tt := cheb.Map(x, tb[pi], tb[pi+1])
				d := math.Abs(cheb.Interp(xc, w, f, x) - kernel.ItAbs(tt, g.om[j]))
				if d/kmax > g.errT {
					g.errT = d / kmax
				}
			}
		}
	}

	nt2 := len(g.t) / 2
	for pj := 0; pj < 2*g.npo; pj++ {
		for i := 0; i < nt2; i++ {
			for k := 0; k < p; k++ {
				f[k] = g.k[i*no+pj*p+k]
			}
			for _, x := range x2 {
				om := cheb.Map(x, ob[pj], ob[pj+1])
				d := math.Abs(cheb.Interp(xc, w, f, x) - kernel.ItAbs(g.t[i], om))
				if d/kmax > g.errOm {
					g.errOm = d / kmax
				}
			}
		}
	}
}
