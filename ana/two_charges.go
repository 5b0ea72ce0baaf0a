// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// TwoCharges implements the closed-form potential and field of a pair of
// point charges: q1 at the origin and q2 at (d,0,0)
type TwoCharges struct {

	// input
	q1 float64 // first charge, at the origin
	q2 float64 // second charge, at (d,0,0)
	d  float64 // separation along x
}

// Init initialises this structure
func (o *TwoCharges) Init(prms fun.Prms) {

	// default values
	o.q1 = 1.0
	o.q2 = -1.0
	o.d = 1.0

	// parameters
	for _, p := range prms {
		switch p.N {
		case "q1":
			o.q1 = p.V
		case "q2":
			o.q2 = p.V
		case "d":
			o.d = p.V
		}
	}
}

// Sources returns the source and charge arrays of this configuration
func (o *TwoCharges) Sources() (sources, charges []float64) {
	return []float64{0, 0, 0, o.d, 0, 0}, []float64{o.q1, o.q2}
}

// Eval computes the potential and field at (x,y,z). A charge sitting exactly
// on the point contributes nothing.
func (o *TwoCharges) Eval(x, y, z float64) (pot, fx, fy, fz float64) {
	r1 := math.Sqrt(x*x + y*y + z*z)
	if r1 > 0 {
		pot += o.q1 / r1
		rmul := o.q1 / (r1 * r1 * r1)
		fx += rmul * x
		fy += rmul * y
		fz += rmul * z
	}
	dx := x - o.d
	r2 := math.Sqrt(dx*dx + y*y + z*z)
	if r2 > 0 {
		pot += o.q2 / r2
		rmul := o.q2 / (r2 * r2 * r2)
		fx += rmul * dx
		fy += rmul * y
		fz += rmul * z
	}
	return
}
