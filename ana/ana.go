// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements reference solutions for the Laplace potential:
// the exact pairwise summation and error norms against it
package ana

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Eval computes the exact potential and field at one point (x,y,z) by summing
// over all charges. A source sitting exactly on the point is skipped.
func Eval(sources, charges []float64, x, y, z float64) (pot, fx, fy, fz float64) {
	for j := 0; j < len(charges); j++ {
		j3 := 3 * j
		rx := x - sources[j3]
		ry := y - sources[j3+1]
		rz := z - sources[j3+2]
		rr := rx*rx + ry*ry + rz*rz
		if rr > 0 {
			rdis := math.Sqrt(rr)
			pot += charges[j] / rdis
			rmul := charges[j] / (rdis * rr)
			fx += rmul * rx
			fy += rmul * ry
			fz += rmul * rz
		}
	}
	return
}

// Direct fills pot and field with the exact O(NM) summation
func Direct(sources, charges, targets, pot, field []float64) {
	la.VecFill(pot, 0)
	la.VecFill(field, 0)
	for i := 0; i < len(pot); i++ {
		i3 := 3 * i
		p, fx, fy, fz := Eval(sources, charges, targets[i3], targets[i3+1], targets[i3+2])
		pot[i] = p
		field[i3] = fx
		field[i3+1] = fy
		field[i3+2] = fz
	}
}

// ErrorNorms compares computed potentials and fields against the exact
// summation over the first nverify targets.
//  Output:
//   l2pot   -- relative L2 error of the potential
//   linfpot -- absolute L-infinity error of the potential
//   l2field -- relative L2 error of the field
func ErrorNorms(sources, charges, targets, pot, field []float64, nverify int) (l2pot, linfpot, l2field float64) {
	if nverify > len(pot) {
		nverify = len(pot)
	}
	refpot := make([]float64, nverify)
	reffield := make([]float64, 3*nverify)
	Direct(sources, charges, targets[:3*nverify], refpot, reffield)

	dpot := la.VecClone(refpot)
	la.VecAdd(dpot, -1, pot[:nverify])
	dfield := la.VecClone(reffield)
	la.VecAdd(dfield, -1, field[:3*nverify])

	l2pot = la.VecNorm(dpot) / la.VecNorm(refpot)
	linfpot = la.VecLargest(dpot, 1)
	l2field = la.VecNorm(dfield) / la.VecNorm(reffield)
	return
}
