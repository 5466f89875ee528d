// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// Prec is the mantissa precision, in bits, of the extended-precision kernel
// variants. It exceeds IEEE binary128 so that divided differences of nearly
// equal kernel values retain full double accuracy after cancellation.
const Prec = 128

func newBig(x float64) *big.Float {
	return big.NewFloat(x).SetPrec(Prec)
}

// Exp returns e^x at the precision of x.
func Exp(x *big.Float) *big.Float {
	return bigfloat.Exp(x)
}

// BigItAbs returns the imaginary-time kernel at extended precision for t in
// absolute format on [0, 1]. The exponent -tω (respectively (1-t)ω) is
// formed exactly from the float64 arguments before exponentiation.
func BigItAbs(t, omega float64) *big.Float {
	bt := newBig(t)
	bw := newBig(omega)
	one := newBig(1)
	e := new(big.Float).SetPrec(Prec)
	den := new(big.Float).SetPrec(Prec)
	if omega >= 0 {
		e.Mul(bt, bw).Neg(e)
		den.Neg(bw)
	} else {
		e.Sub(one, bt).Mul(e, bw)
		den.Set(bw)
	}
	num := Exp(e)
	den.Add(one, Exp(den))
	return e.Quo(num, den)
}

// BigIt returns the imaginary-time kernel at extended precision for t in
// relative format on [-1/2, 1/2] ∪ {1}.
func BigIt(t, omega float64) *big.Float {
	if t > 0 || (t == 0 && !math.Signbit(t)) {
		return BigItAbs(t, omega)
	}
	return BigItAbs(-t, -omega)
}

// BigExpFun returns the statistics factor ExpFun at extended precision.
func BigExpFun(omega, xi float64) *big.Float {
	bw := newBig(omega)
	bxi := newBig(xi)
	one := newBig(1)
	num := new(big.Float).SetPrec(Prec)
	den := new(big.Float).SetPrec(Prec)
	if omega >= 0 {
		e := Exp(new(big.Float).SetPrec(Prec).Neg(bw))
		num.Mul(bxi, e).Sub(one, num)
		den.Add(one, e)
	} else {
		e := Exp(bw)
		num.Sub(e, bxi)
		den.Add(e, one)
	}
	return num.Quo(num, den)
}
