// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SelfEnergy evaluates a self-energy functional Σ[G]: given the
// imaginary-time node values of G it writes the node values of Σ into
// sigma. Implementations may capture couplings and workspace; they are
// invoked synchronously from the solver loop.
type SelfEnergy func(sigma, g []float64)

// DysonSettings controls the weighted fixed-point iteration of the Dyson
// solvers. The zero value selects full updates (weight 1), a tolerance of
// 1e-12 and a cap of 100 iterations.
type DysonSettings struct {
	// Weight is the mixing weight w in g ← w·g_new + (1-w)·g. It must
	// lie in (0, 1]; zero selects 1.
	Weight float64

	// Tol is the termination threshold on the maximum absolute update of
	// the node values. Zero selects 1e-12.
	Tol float64

	// MaxIter caps the number of fixed-point iterations. Zero selects
	// 100.
	MaxIter int

	// Callback, if non-nil, is invoked after each iteration with the
	// iteration count and the current node values. Returning false stops
	// the solver, which then reports ErrNotConverged with the iterate
	// reached.
	Callback func(iter int, g []float64) bool
}

func (s *DysonSettings) defaults() {
	if s.Weight == 0 {
		s.Weight = 1
	}
	if s.Weight < 0 || s.Weight > 1 {
		panic(badWeight)
	}
	if s.Tol == 0 {
		s.Tol = 1e-12
	}
	if s.MaxIter == 0 {
		s.MaxIter = 100
	}
}

// SolveDysonTau solves the Dyson equation G = G₀ + G₀∗Σ[G]∗G on the
// imaginary-time grid by weighted fixed-point iteration. g0 holds the node
// values of G₀ and is also used as the initial iterate. Each step
// evaluates the self-energy, forms the linear system
//
//	(I - G₀mat·Σmat)·g = g0
//
// from the convolution matrices and solves it by dense LU.
//
// It returns the node values of G together with the number of iterations
// taken. The error is ErrNotConverged if the iteration cap was reached or
// the callback stopped the solver, and ErrSingular if a linear system was
// singular; the returned values then hold the last iterate.
func SolveDysonTau(tr *Transforms, cv *Conv, sigma SelfEnergy, g0 []float64, s DysonSettings) ([]float64, int, error) {
	s.defaults()
	r := tr.basis.Rank()
	if len(g0) != r {
		panic(badLength)
	}

	g0mat, err := cv.Matrix(nil, g0)
	if err != nil {
		return nil, 0, err
	}

	g := make([]float64, r)
	gnew := make([]float64, r)
	sig := make([]float64, r)
	copy(g, g0)
	smat := mat.NewDense(r, r, nil)
	var (
		sys mat.Dense
		lu  mat.LU
	)
	g0vec := mat.NewVecDense(r, g0)
	gvec := mat.NewVecDense(r, gnew)
	for it := 1; it <= s.MaxIter; it++ {
		sigma(sig, g)
		if _, err := cv.Matrix(smat, sig); err != nil {
			return g, it, err
		}
		sys.Mul(g0mat, smat)
		sys.Scale(-1, &sys)
		for i := 0; i < r; i++ {
			sys.Set(i, i, sys.At(i, i)+1)
		}
		lu.Factorize(&sys)
		if err := lu.SolveVecTo(gvec, false, g0vec); err != nil {
			if err := asSingular(err); err != nil {
				return g, it, err
			}
		}
		if floats.Distance(gnew, g, math.Inf(1)) < s.Tol {
			copy(g, gnew)
			return g, it, nil
		}
		floats.Scale(1-s.Weight, g)
		floats.AddScaled(g, s.Weight, gnew)
		if s.Callback != nil && !s.Callback(it, g) {
			return g, it, ErrNotConverged
		}
	}
	return g, s.MaxIter, ErrNotConverged
}

// SolveDysonMF solves the Dyson equation with the linear step performed
// diagonally on the Matsubara grid: the self-energy is evaluated on the
// imaginary-time grid, transformed to Matsubara values through the DLR
// coefficients, and the update
//
//	ĝ = ĝ₀ / (1 - β²·ĝ₀·σ̂)
//
// is applied frequency by frequency before transforming back. g0mf holds
// the Matsubara node values of G₀. The returned values are on the
// imaginary-time grid; termination and errors follow SolveDysonTau.
func SolveDysonMF(beta float64, tr *Transforms, m *Matsubara, sigma SelfEnergy, g0mf []complex128, s DysonSettings) ([]float64, int, error) {
	if beta <= 0 {
		panic(badBeta)
	}
	s.defaults()
	r := tr.basis.Rank()
	if len(g0mf) != r {
		panic(badLength)
	}

	cwork := make([]complex128, r)
	sigmf := make([]complex128, r)
	gmf := make([]complex128, r)
	c := make([]float64, r)
	g := make([]float64, r)
	gnew := make([]float64, r)
	sig := make([]float64, r)

	// Initial iterate: G₀ carried to the imaginary-time grid.
	m.CoeffsFromValues(cwork, g0mf)
	for i := range c {
		c[i] = real(cwork[i])
	}
	tr.ValuesFromCoeffs(g, c)

	b2 := complex(beta*beta, 0)
	for it := 1; it <= s.MaxIter; it++ {
		sigma(sig, g)
		if err := tr.CoeffsFromValues(c, sig); err != nil {
			return g, it, err
		}
		m.ValuesFromCoeffs(sigmf, c)
		for i := range gmf {
			den := 1 - b2*g0mf[i]*sigmf[i]
			if den == 0 {
				return g, it, ErrSingular
			}
			gmf[i] = g0mf[i] / den
		}
		m.CoeffsFromValues(cwork, gmf)
		for i := range c {
			c[i] = real(cwork[i])
		}
		tr.ValuesFromCoeffs(gnew, c)
		if floats.Distance(gnew, g, math.Inf(1)) < s.Tol {
			copy(g, gnew)
			return g, it, nil
		}
		floats.Scale(1-s.Weight, g)
		floats.AddScaled(g, s.Weight, gnew)
		if s.Callback != nil && !s.Callback(it, g) {
			return g, it, ErrNotConverged
		}
	}
	return g, s.MaxIter, ErrNotConverged
}
