// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"math/big"

	"gonum.org/v1/gonum/mat"

	"gonum.org/v1/dlr/internal/qprec"
	"gonum.org/v1/dlr/kernel"
)

// Conv is the imaginary-time convolution operator on a DLR grid at inverse
// temperature beta. It holds the rank³ tensor φ whose contraction with one
// function of a convolution pair yields the matrix of convolution by that
// function acting on the other.
//
// The periodic (bosonic) or antiperiodic (fermionic) extension of the
// convolved functions is selected by the statistics.
type Conv struct {
	r    int
	beta float64
	stat Statistics
	tr   *Transforms

	// phi is (r·r)×r in row-major order; row k·r+j holds the dependence
	// of matrix entry (j, k) on the contracted function. For the double
	// precision tensor the contracted index is a DLR coefficient; for the
	// extended-precision tensor (vv set) it is a node value.
	phi []float64
	vv  bool
}

// NewConv builds the convolution tensor for the transforms' basis at
// inverse temperature beta. The tensor entries follow from convolving
// pairs of Lehmann basis functions in closed form:
//
//	φ_jkl = β (K(τ_j, ω_l) e(ω_k) - K(τ_j, ω_k) e(ω_l)) / (ω_k - ω_l)
//
// off the frequency diagonal, with e the ExpFun statistics factor, and the
// confluent limit on it. The divided difference loses accuracy when nearly
// equal frequencies are selected at extreme cutoffs; NewConvXP avoids that
// at the cost of extended-precision construction. NewConv panics if beta
// is not positive.
func NewConv(tr *Transforms, beta float64, stat Statistics) *Conv {
	if beta <= 0 {
		panic(badBeta)
	}
	b := tr.basis
	r := b.Rank()
	xi := stat.xi()

	e := make([]float64, r)
	k1 := make([]float64, r)
	k0 := make([]float64, r)
	for k, w := range b.Freqs {
		e[k] = kernel.ExpFun(w, xi)
		k1[k] = kernel.ItAbs(1, w)
		k0[k] = kernel.ItAbs(0, w)
	}
	kt := make([]float64, r*r)
	for j, t := range b.Tau {
		for l, w := range b.Freqs {
			kt[j*r+l] = kernel.It(t, w)
		}
	}

	phi := make([]float64, r*r*r)
	for k := 0; k < r; k++ {
		wk := b.Freqs[k]
		for j := 0; j < r; j++ {
			row := (k*r + j) * r
			tj := b.Tau[j]
			for l := 0; l < r; l++ {
				var v float64
				if l != k {
					v = (kt[j*r+l]*e[k] - kt[j*r+k]*e[l]) / (wk - b.Freqs[l])
				} else if tj > 0 {
					v = (tj*e[k] + xi*k1[k]) * kt[j*r+k]
				} else {
					v = (tj*e[k] + k0[k]) * kt[j*r+k]
				}
				phi[row+l] = beta * v
			}
		}
	}
	return &Conv{r: r, beta: beta, stat: stat, tr: tr, phi: phi}
}

// NewConvXP builds the convolution tensor in extended precision and
// composes it with the values-to-coefficients transform on both function
// slots before rounding to double, yielding a tensor contracted directly
// with node values. It is the variant of NewConv to use when Λ is large
// enough that the double-precision divided differences lose accuracy.
// NewConvXP panics if beta is not positive, and returns ErrSingular if the
// extended-precision collocation factorization fails.
func NewConvXP(tr *Transforms, beta float64, stat Statistics) (*Conv, error) {
	if beta <= 0 {
		panic(badBeta)
	}
	b := tr.basis
	r := b.Rank()
	xi := stat.xi()
	const prec = kernel.Prec

	e := make([]*big.Float, r)
	k1 := make([]*big.Float, r)
	k0 := make([]*big.Float, r)
	bw := make([]*big.Float, r)
	bt := make([]*big.Float, r)
	for k, w := range b.Freqs {
		e[k] = kernel.BigExpFun(w, xi)
		k1[k] = kernel.BigItAbs(1, w)
		k0[k] = kernel.BigItAbs(0, w)
		bw[k] = big.NewFloat(w).SetPrec(prec)
	}
	for j, t := range b.Tau {
		bt[j] = big.NewFloat(t).SetPrec(prec)
	}
	kt := make([]*big.Float, r*r)
	for j, t := range b.Tau {
		for l, w := range b.Freqs {
			kt[j*r+l] = kernel.BigIt(t, w)
		}
	}

	// Extended-precision collocation matrix and its factorization.
	c := qprec.NewMatrix(r, r, prec)
	for i, t := range b.Tau {
		for j, w := range b.Freqs {
			c.Set(i, j, kernel.BigIt(t, w))
		}
	}
	lu, err := qprec.Factorize(c)
	if err != nil {
		return nil, ErrSingular
	}

	// g holds, for each k, the tensor slice composed with the transform
	// on the l slot; row k lists the slice in (j, m) order.
	g := qprec.NewMatrix(r, r*r, prec)
	t1 := new(big.Float).SetPrec(prec)
	t2 := new(big.Float).SetPrec(prec)
	ft := qprec.NewMatrix(r, r, prec)
	for k := 0; k < r; k++ {
		for l := 0; l < r; l++ {
			for j := 0; j < r; j++ {
				x := ft.At(l, j)
				tj := b.Tau[j]
				if l != k {
					t1.Mul(kt[j*r+l], e[k])
					t2.Mul(kt[j*r+k], e[l])
					x.Sub(t1, t2)
					t1.Sub(bw[k], bw[l])
					x.Quo(x, t1)
				} else {
					t1.Mul(bt[j], e[k])
					if tj > 0 {
						t2.Mul(big.NewFloat(xi).SetPrec(prec), k1[k])
					} else {
						t2.Set(k0[k])
					}
					t1.Add(t1, t2)
					x.Mul(t1, kt[j*r+k])
				}
			}
		}
		lu.SolveTo(ft, true)
		for j := 0; j < r; j++ {
			for m := 0; m < r; m++ {
				g.Set(k, j*r+m, ft.At(m, j))
			}
		}
	}
	lu.SolveTo(g, true)

	phi := make([]float64, r*r*r)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			for m := 0; m < r; m++ {
				phi[(i*r+j)*r+m] = beta * g.Float64(i, j*r+m)
			}
		}
	}
	return &Conv{r: r, beta: beta, stat: stat, tr: tr, phi: phi, vv: true}, nil
}

// Beta returns the inverse temperature the tensor was scaled with.
func (cv *Conv) Beta() float64 { return cv.beta }

// Matrix returns the r×r matrix mapping imaginary-time node values of f to
// the node values of the convolution g∗f, for g given by its node values.
// If dst is nil a new matrix is allocated; otherwise it must be r×r and is
// overwritten. Matrix returns ErrSingular if a collocation solve fails.
func (cv *Conv) Matrix(dst *mat.Dense, g []float64) (*mat.Dense, error) {
	r := cv.r
	if len(g) != r {
		panic(badLength)
	}
	if dst == nil {
		dst = mat.NewDense(r, r, nil)
	} else if rr, rc := dst.Dims(); rr != r || rc != r {
		panic(mat.ErrShape)
	}

	contract := g
	if !cv.vv {
		contract = make([]float64, r)
		if err := cv.tr.CoeffsFromValues(contract, g); err != nil {
			return nil, err
		}
	}
	var v mat.VecDense
	v.MulVec(mat.NewDense(r*r, r, cv.phi), mat.NewVecDense(r, contract))
	for k := 0; k < r; k++ {
		for j := 0; j < r; j++ {
			dst.Set(j, k, v.AtVec(k*r+j))
		}
	}
	if cv.vv {
		return dst, nil
	}
	// The tensor contraction maps coefficients of f to values of g∗f;
	// compose with the values-to-coefficients transform on the right.
	var xt mat.Dense
	if err := cv.tr.it2cf.SolveTo(&xt, true, dst.T()); err != nil {
		return nil, asSingular(err)
	}
	dst.Copy(xt.T())
	return dst, nil
}

// Apply overwrites dst with the imaginary-time node values of the
// convolution g∗f given the node values of the two functions. It panics if
// any slice length does not match the basis rank.
func (cv *Conv) Apply(dst, g, f []float64) error {
	r := cv.r
	if len(dst) != r || len(g) != r || len(f) != r {
		panic(badLength)
	}
	m, err := cv.Matrix(nil, g)
	if err != nil {
		return err
	}
	v := mat.NewVecDense(r, dst)
	v.MulVec(m, mat.NewVecDense(r, f))
	return nil
}
