// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"gonum.org/v1/dlr/kernel"
)

// Transforms maps between the DLR coefficient representation and the
// imaginary-time node value representation of an expansion on a Basis. The
// coefficient-to-value map is the collocation matrix K(τ_i, ω_j); its LU
// factorization backs the inverse direction. Transforms are pure functions
// of the basis and are safe to reuse across expansions.
type Transforms struct {
	basis *Basis
	cf2it *mat.Dense
	it2cf mat.LU
	refl  *mat.Dense
}

// NewTransforms builds the value transforms for b.
func NewTransforms(b *Basis) *Transforms {
	r := b.Rank()
	cf2it := mat.NewDense(r, r, nil)
	for i, t := range b.Tau {
		for j, w := range b.Freqs {
			cf2it.Set(i, j, kernel.It(t, w))
		}
	}
	tr := &Transforms{basis: b, cf2it: cf2it}
	tr.it2cf.Factorize(cf2it)
	return tr
}

// Basis returns the basis the transforms were built on.
func (tr *Transforms) Basis() *Basis { return tr.basis }

// ValuesFromCoeffs overwrites dst with the imaginary-time node values of
// the expansion with coefficients c. It panics if the slice lengths do not
// match the basis rank.
func (tr *Transforms) ValuesFromCoeffs(dst, c []float64) {
	r := tr.basis.Rank()
	if len(dst) != r || len(c) != r {
		panic(badLength)
	}
	v := mat.NewVecDense(r, dst)
	v.MulVec(tr.cf2it, mat.NewVecDense(r, c))
}

// CoeffsFromValues overwrites dst with the DLR coefficients of the
// expansion whose imaginary-time node values are v. It returns ErrSingular
// if the collocation matrix is singular to working precision. It panics if
// the slice lengths do not match the basis rank.
func (tr *Transforms) CoeffsFromValues(dst, v []float64) error {
	r := tr.basis.Rank()
	if len(dst) != r || len(v) != r {
		panic(badLength)
	}
	d := mat.NewVecDense(r, dst)
	if err := tr.it2cf.SolveVecTo(d, false, mat.NewVecDense(r, v)); err != nil {
		return asSingular(err)
	}
	return nil
}

// ReflectMatrix returns the r×r matrix applying the reflection τ ↦ 1-τ to
// imaginary-time node values. The returned matrix is owned by the
// transforms and must not be modified.
func (tr *Transforms) ReflectMatrix() (*mat.Dense, error) {
	if tr.refl != nil {
		return tr.refl, nil
	}
	b := tr.basis
	r := b.Rank()
	// Values of the reflected basis functions at the nodes, composed with
	// the values-to-coefficients map: refl = K(-τ_i, ω_j)·cf2it⁻¹.
	krefl := mat.NewDense(r, r, nil)
	for i, t := range b.Tau {
		for j, w := range b.Freqs {
			krefl.Set(i, j, kernel.It(reflectRel(t), w))
		}
	}
	var xt mat.Dense
	if err := tr.it2cf.SolveTo(&xt, true, krefl.T()); err != nil {
		return nil, asSingular(err)
	}
	refl := mat.NewDense(r, r, nil)
	refl.Copy(xt.T())
	tr.refl = refl
	return refl, nil
}

// Reflect overwrites dst with the imaginary-time node values of the
// reflected function g(1-τ) given the node values of g. It panics if the
// slice lengths do not match the basis rank.
func (tr *Transforms) Reflect(dst, g []float64) error {
	r := tr.basis.Rank()
	if len(dst) != r || len(g) != r {
		panic(badLength)
	}
	m, err := tr.ReflectMatrix()
	if err != nil {
		return err
	}
	v := mat.NewVecDense(r, dst)
	v.MulVec(m, mat.NewVecDense(r, g))
	return nil
}

// reflectRel negates a relative imaginary-time point, mapping τ to 1-τ.
// The sign of zero is significant: it distinguishes τ = 0 from τ = 1.
func reflectRel(t float64) float64 {
	if t == 0 {
		if math.Signbit(t) {
			return 0
		}
		return math.Copysign(0, -1)
	}
	return -t
}

// asSingular maps an exactly singular mat condition error to ErrSingular
// and discards finite condition warnings, which the DLR collocation
// matrices do not produce for meaningful bases.
func asSingular(err error) error {
	if c, ok := err.(mat.Condition); ok {
		if math.IsInf(float64(c), 1) {
			return ErrSingular
		}
		return nil
	}
	return err
}
