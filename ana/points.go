// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/rnd"
)

// Cube samples points uniformly inside an axis-aligned cube centred at the
// origin
type Cube struct {
	l float64 // side length
}

// Init initialises this structure
func (o *Cube) Init(prms fun.Prms) {
	o.l = 1.0
	for _, p := range prms {
		switch p.N {
		case "l":
			o.l = p.V
		}
	}
}

// Gen generates n points
func (o *Cube) Gen(n int) (pts []float64) {
	pts = make([]float64, 3*n)
	for i := 0; i < 3*n; i++ {
		pts[i] = rnd.Float64(-o.l/2, o.l/2)
	}
	return
}

// Sphere samples points uniformly over a spherical surface centred at the
// origin
type Sphere struct {
	r float64 // radius
}

// Init initialises this structure
func (o *Sphere) Init(prms fun.Prms) {
	o.r = 1.0
	for _, p := range prms {
		switch p.N {
		case "r":
			o.r = p.V
		}
	}
}

// Gen generates n points
func (o *Sphere) Gen(n int) (pts []float64) {
	pts = make([]float64, 3*n)
	for i := 0; i < n; i++ {
		ctheta := rnd.Float64(-1, 1)
		stheta := math.Sqrt(1 - ctheta*ctheta)
		phi := rnd.Float64(0, 2*math.Pi)
		j := 3 * i
		pts[j] = o.r * stheta * math.Cos(phi)
		pts[j+1] = o.r * stheta * math.Sin(phi)
		pts[j+2] = o.r * ctheta
	}
	return
}

// Torus samples points over a torus with major radius R and minor radius r
type Torus struct {
	R float64 // major radius
	r float64 // minor radius
}

// Init initialises this structure
func (o *Torus) Init(prms fun.Prms) {
	o.R = 2.0
	o.r = 0.5
	for _, p := range prms {
		switch p.N {
		case "R":
			o.R = p.V
		case "r":
			o.r = p.V
		}
	}
}

// Gen generates n points
func (o *Torus) Gen(n int) (pts []float64) {
	pts = make([]float64, 3*n)
	for i := 0; i < n; i++ {
		t := rnd.Float64(0, 2*math.Pi)
		u := rnd.Float64(0, 2*math.Pi)
		j := 3 * i
		pts[j] = math.Cos(t) * (o.R + o.r*math.Cos(u))
		pts[j+1] = math.Sin(t) * (o.R + o.r*math.Cos(u))
		pts[j+2] = o.r * math.Sin(u)
	}
	return
}

// Charges generates n charges uniformly distributed in [-q/2, q/2]
func Charges(n int, q float64) (charges []float64) {
	charges = make([]float64, n)
	for i := 0; i < n; i++ {
		charges[i] = rnd.Float64(-q/2, q/2)
	}
	return
}
