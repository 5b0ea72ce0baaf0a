// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import (
	"math"

	"github.com/cpmech/gofmm/tree"
)

// DirectEvaluation adds the exact 1/r contribution of every source in sbox to
// every target in tbox. A source sitting exactly on a target is skipped.
func (o *Solver) DirectEvaluation(tbox, sbox *tree.Box) {
	start1, end1 := tbox.Addr, tbox.Addr+tbox.Npts-1
	start2, end2 := sbox.Addr, sbox.Addr+sbox.Npts-1

	for i := start1; i <= end1; i++ {
		var pot, fx, fy, fz float64
		i3 := i * 3
		for j := start2; j <= end2; j++ {
			j3 := j * 3
			q := o.Charges[j]
			rx := o.Targets[i3] - o.Sources[j3]
			ry := o.Targets[i3+1] - o.Sources[j3+1]
			rz := o.Targets[i3+2] - o.Sources[j3+2]
			rr := rx*rx + ry*ry + rz*rz
			if rr > 0 {
				rdis := math.Sqrt(rr)
				pot += q / rdis
				rmul := q / (rdis * rr)
				fx += rmul * rx
				fy += rmul * ry
				fz += rmul * rz
			}
		}
		o.Potential[i] += pot
		o.Field[i3] += fx
		o.Field[i3+1] += fy
		o.Field[i3+2] += fz
	}
}

// ProcessList13 evaluates the near-field lists of a target leaf directly
func (o *Solver) ProcessList13(ibox *tree.Box) {
	for _, sid := range ibox.List3 {
		o.DirectEvaluation(ibox, o.Dom.SBox[sid])
	}
	for _, sid := range ibox.List1 {
		o.DirectEvaluation(ibox, o.Dom.SBox[sid])
	}
}

// ProcessList4 evaluates the coarse-level adjacent boxes directly
func (o *Solver) ProcessList4(ibox *tree.Box) {
	for _, sid := range ibox.List4 {
		o.DirectEvaluation(ibox, o.Dom.SBox[sid])
	}
}
