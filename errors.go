// Copyright ©2026 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dlr

import "errors"

var (
	// ErrRankOverflow is returned by basis construction when the adaptive
	// pivoted factorization would exceed the rank cap.
	ErrRankOverflow = errors.New("dlr: kernel ε-rank exceeds the rank cap")

	// ErrSingular is returned when a linear system arising in a transform
	// or solver is singular to working precision. It does not occur for
	// well-formed DLR grids and indicates numerical pathology.
	ErrSingular = errors.New("dlr: singular linear system")

	// ErrNotConverged is returned by the Dyson solvers when the
	// fixed-point iteration reaches its iteration cap, or is stopped by
	// the caller, before meeting the tolerance.
	ErrNotConverged = errors.New("dlr: fixed-point iteration did not converge")
)

const (
	badLambda  = "dlr: cutoff lambda is not positive"
	badEps     = "dlr: tolerance eps is not in (0,1)"
	badRankCap = "dlr: rank cap is not positive"
	badRank    = "dlr: requested rank is not positive"
	badLength  = "dlr: slice length mismatch"
	badNMax    = "dlr: Matsubara grid does not cover the basis rank"
	badBeta    = "dlr: inverse temperature is not positive"
	badWeight  = "dlr: mixing weight is not in (0,1]"
	badGridLen = "dlr: grid needs at least two points"
)
