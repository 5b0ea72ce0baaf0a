// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/rnd"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_ana01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana01. two point charges")

	var sol TwoCharges
	sol.Init([]*fun.Prm{
		&fun.Prm{N: "q1", V: 1},
		&fun.Prm{N: "q2", V: -1},
		&fun.Prm{N: "d", V: 1},
	})

	// on the axis, midway: the potentials cancel and the fields add
	pot, fx, fy, fz := sol.Eval(0.5, 0, 0)
	chk.Scalar(tst, "pot", 1e-15, pot, 0)
	chk.Scalar(tst, "fx", 1e-14, fx, 1/0.25+1/0.25)
	chk.Scalar(tst, "fy", 1e-15, fy, 0)
	chk.Scalar(tst, "fz", 1e-15, fz, 0)

	// off axis
	d1 := math.Sqrt(0.25 + 1)
	pot, _, _, _ = sol.Eval(0.5, 1, 0)
	chk.Scalar(tst, "pot off-axis", 1e-15, pot, 1/d1-1/d1)

	// the closed form agrees with the pairwise summation
	sources, charges := sol.Sources()
	p1, f1x, f1y, f1z := sol.Eval(0.2, -0.3, 0.7)
	p2, f2x, f2y, f2z := Eval(sources, charges, 0.2, -0.3, 0.7)
	chk.Scalar(tst, "pot vs sum", 1e-15, p1, p2)
	chk.Vector(tst, "field vs sum", 1e-15, []float64{f1x, f1y, f1z}, []float64{f2x, f2y, f2z})
}

func Test_ana02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana02. symmetry of the direct kernel")

	rnd.Init(101)
	a := []float64{rnd.Float64(0, 1), rnd.Float64(0, 1), rnd.Float64(0, 1)}
	b := []float64{rnd.Float64(0, 1), rnd.Float64(0, 1), rnd.Float64(0, 1)}
	q := 0.75

	p1, _, _, _ := Eval(a, []float64{q}, b[0], b[1], b[2])
	p2, _, _, _ := Eval(b, []float64{q}, a[0], a[1], a[2])
	chk.Scalar(tst, "pot symmetry", 1e-15, p1, p2)
}

func Test_ana03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana03. the field is minus the potential gradient")

	rnd.Init(202)
	var cube Cube
	cube.Init([]*fun.Prm{&fun.Prm{N: "l", V: 1}})
	n := 50
	src := cube.Gen(n)
	charges := Charges(n, 1)

	x := []float64{1.2, 0.3, -0.4} // outside the cloud
	_, fx, fy, fz := Eval(src, charges, x[0], x[1], x[2])
	f := []float64{fx, fy, fz}
	for i := 0; i < 3; i++ {
		dpot, _ := num.DerivCentral(func(t float64, args ...interface{}) float64 {
			xt := []float64{x[0], x[1], x[2]}
			xt[i] = t
			p, _, _, _ := Eval(src, charges, xt[0], xt[1], xt[2])
			return p
		}, x[i], 1e-3)
		chk.Scalar(tst, io.Sf("-dpot/dx%d", i), 1e-6, -dpot, f[i])
	}
}

func Test_ana04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana04. point distributions")

	rnd.Init(303)
	n := 500

	var cube Cube
	cube.Init([]*fun.Prm{&fun.Prm{N: "l", V: 2}})
	pts := cube.Gen(n)
	for i := 0; i < 3*n; i++ {
		if pts[i] < -1 || pts[i] > 1 {
			tst.Errorf("cube point out of range: %v", pts[i])
			return
		}
	}

	var sph Sphere
	sph.Init([]*fun.Prm{&fun.Prm{N: "r", V: 1.5}})
	pts = sph.Gen(n)
	for i := 0; i < n; i++ {
		j := 3 * i
		r := math.Sqrt(pts[j]*pts[j] + pts[j+1]*pts[j+1] + pts[j+2]*pts[j+2])
		chk.Scalar(tst, "sphere radius", 1e-14, r, 1.5)
	}

	var tor Torus
	tor.Init([]*fun.Prm{&fun.Prm{N: "R", V: 2}, &fun.Prm{N: "r", V: 0.5}})
	pts = tor.Gen(n)
	for i := 0; i < n; i++ {
		j := 3 * i
		rho := math.Sqrt(pts[j]*pts[j] + pts[j+1]*pts[j+1])
		d := math.Sqrt((rho-2)*(rho-2) + pts[j+2]*pts[j+2])
		chk.Scalar(tst, "torus surface", 1e-14, d, 0.5)
	}

	if chk.Verbose {
		x := make([]float64, n)
		y := make([]float64, n)
		for i := 0; i < n; i++ {
			x[i] = pts[3*i]
			y[i] = pts[3*i+1]
		}
		plt.SetForEps(0.8, 455)
		plt.Plot(x, y, "'b.'")
		plt.Equal()
		plt.Gll("x", "y", "")
		plt.SaveD("/tmp/gofmm", "ana_torus.eps")
	}
}
