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

// InnerProduct is the L² inner product on [0, β] between functions given
// by their imaginary-time node values on a DLR grid.
type InnerProduct struct {
	r int
	w *mat.Dense
}

// NewInnerProduct builds the inner-product weight matrix for b at inverse
// temperature beta. For basis functions with frequencies ω_j, ω_k the
// primitive integral has the closed form
//
//	∫₀¹ K(τ, ω_j) K(τ, ω_k) dτ = K(0, ω_j) K(0, ω_k) (1 - e^{-s}) / s,
//
// with s = ω_j + ω_k and limit value 1 at s = 0. Both the prefactors and
// (1 - e^{-s})/s span many orders of magnitude with opposite exponents, so
// the matrix is assembled and composed with the values-to-coefficients
// transform in extended precision and only the final weight is rounded to
// double. NewInnerProduct panics if beta is not positive, and returns
// ErrSingular if the extended-precision factorization fails.
func NewInnerProduct(b *Basis, beta float64) (*InnerProduct, error) {
	if beta <= 0 {
		panic(badBeta)
	}
	r := b.Rank()
	const prec = kernel.Prec

	k0 := make([]*big.Float, r)
	bw := make([]*big.Float, r)
	for j, w := range b.Freqs {
		k0[j] = kernel.BigItAbs(0, w)
		bw[j] = big.NewFloat(w).SetPrec(prec)
	}

	one := new(big.Float).SetPrec(prec).SetInt64(1)
	s := new(big.Float).SetPrec(prec)
	t := new(big.Float).SetPrec(prec)
	m := qprec.NewMatrix(r, r, prec)
	for j := 0; j < r; j++ {
		for k := j; k < r; k++ {
			x := m.At(j, k)
			s.Add(bw[j], bw[k])
			if s.Sign() == 0 {
				x.SetInt64(1)
			} else {
				t.Neg(s)
				x.Sub(one, kernel.Exp(t))
				x.Quo(x, s)
			}
			x.Mul(x, k0[j])
			x.Mul(x, k0[k])
			m.At(k, j).Set(x)
		}
	}

	// Compose with the values-to-coefficients map on both sides,
	// W = C⁻ᵀ M C⁻¹, still in extended precision.
	c := qprec.NewMatrix(r, r, prec)
	for i, tt := range b.Tau {
		for j, w := range b.Freqs {
			c.Set(i, j, kernel.BigIt(tt, w))
		}
	}
	lu, err := qprec.Factorize(c)
	if err != nil {
		return nil, ErrSingular
	}
	lu.SolveTo(m, true)
	// m = C⁻ᵀ M; transpose in place and solve again for (C⁻ᵀ M C⁻¹)ᵀ,
	// which is the (symmetric) weight.
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			t.Set(m.At(i, j))
			m.At(i, j).Set(m.At(j, i))
			m.At(j, i).Set(t)
		}
	}
	lu.SolveTo(m, true)

	w := mat.NewDense(r, r, nil)
	bb := new(big.Float).SetPrec(prec).SetFloat64(beta)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			t.Mul(m.At(j, i), bb)
			f, _ := t.Float64()
			w.Set(i, j, f)
		}
	}
	return &InnerProduct{r: r, w: w}, nil
}

// Weight returns the r×r weight matrix. The returned matrix is owned by
// the inner product and must not be modified.
func (ip *InnerProduct) Weight() *mat.Dense { return ip.w }

// Dot returns the inner product ∫₀^β f(τ) g(τ) dτ of two functions given
// by their imaginary-time node values. It panics if a slice length does
// not match the basis rank.
func (ip *InnerProduct) Dot(f, g []float64) float64 {
	if len(f) != ip.r || len(g) != ip.r {
		panic(badLength)
	}
	var s float64
	for i := 0; i < ip.r; i++ {
		var row float64
		for j := 0; j < ip.r; j++ {
			row += ip.w.At(i, j) * g[j]
		}
		s += f[i] * row
	}
	return s
}
