// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import (
	"runtime"
	"testing"

	"github.com/cpmech/gofmm/ana"
	"github.com/cpmech/gofmm/param"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// run_solve is a small helper returning freshly allocated outputs
func run_solve(tst *testing.T, sources, charges, targets []float64, accuracy, s int) (pot, field []float64) {
	m := len(targets) / 3
	pot = make([]float64, m)
	field = make([]float64, 3*m)
	err := Solve(sources, charges, targets, pot, field, accuracy, s)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return nil, nil
	}
	return
}

func Test_fmm01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmm01. two charges against analytic values")

	var sol ana.TwoCharges
	sol.Init([]*fun.Prm{
		&fun.Prm{N: "q1", V: 1},
		&fun.Prm{N: "q2", V: -1},
		&fun.Prm{N: "d", V: 1},
	})
	sources, charges := sol.Sources()
	targets := []float64{0.5, 0, 0, 0.5, 1, 0}
	pot, field := run_solve(tst, sources, charges, targets, 3, 1)
	if pot == nil {
		return
	}

	for i := 0; i < 2; i++ {
		p, fx, fy, fz := sol.Eval(targets[3*i], targets[3*i+1], targets[3*i+2])
		chk.Scalar(tst, io.Sf("pot%d", i), 1e-14, pot[i], p)
		chk.Scalar(tst, io.Sf("fx%d", i), 1e-14, field[3*i], fx)
		chk.Scalar(tst, io.Sf("fy%d", i), 1e-14, field[3*i+1], fy)
		chk.Scalar(tst, io.Sf("fz%d", i), 1e-14, field[3*i+2], fz)
	}
}

func Test_fmm02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmm02. uniform cube, accuracy=3")

	rnd.Init(1111)
	var cube ana.Cube
	cube.Init([]*fun.Prm{&fun.Prm{N: "l", V: 1}})
	n := 10000
	pts := cube.Gen(n)
	charges := ana.Charges(n, 1)

	pot, field := run_solve(tst, pts, charges, pts, 3, 40)
	if pot == nil {
		return
	}

	l2pot, linfpot, l2field := ana.ErrorNorms(pts, charges, pts, pot, field, 200)
	io.Pforan("l2pot=%v linfpot=%v l2field=%v\n", l2pot, linfpot, l2field)
	if l2pot > 1e-3 || linfpot > 1e-3 {
		tst.Errorf("potential error too large: l2=%v linf=%v", l2pot, linfpot)
	}
}

func Test_fmm03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmm03. unit sphere, accuracy=6")

	rnd.Init(2222)
	var sph ana.Sphere
	sph.Init([]*fun.Prm{&fun.Prm{N: "r", V: 1}})
	n := 10000
	pts := sph.Gen(n)
	charges := ana.Charges(n, 1)

	pot, field := run_solve(tst, pts, charges, pts, 6, 40)
	if pot == nil {
		return
	}

	l2pot, _, _ := ana.ErrorNorms(pts, charges, pts, pot, field, 200)
	io.Pforan("l2pot=%v\n", l2pot)
	if l2pot > 5e-6 {
		tst.Errorf("potential error too large: l2=%v", l2pot)
	}
}

func Test_fmm04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmm04. torus, accuracy=3")

	rnd.Init(3333)
	var tor ana.Torus
	tor.Init([]*fun.Prm{&fun.Prm{N: "R", V: 2}, &fun.Prm{N: "r", V: 0.5}})
	n := 10000
	src := tor.Gen(n)
	tar := tor.Gen(n)
	charges := ana.Charges(n, 1)

	pot, field := run_solve(tst, src, charges, tar, 3, 40)
	if pot == nil {
		return
	}

	l2pot, _, l2field := ana.ErrorNorms(src, charges, tar, pot, field, 200)
	io.Pforan("l2pot=%v l2field=%v\n", l2pot, l2field)
	if l2pot > 2e-3 {
		tst.Errorf("potential error too large: l2=%v", l2pot)
	}
	if l2field > 5e-3 {
		tst.Errorf("field error too large: l2=%v", l2field)
	}
}

func Test_fmm05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmm05. determinism across processor counts")

	rnd.Init(4444)
	var cube ana.Cube
	cube.Init(nil)
	n := 3000
	pts := cube.Gen(n)
	charges := ana.Charges(n, 1)

	old := runtime.GOMAXPROCS(1)
	pot1, field1 := run_solve(tst, pts, charges, pts, 3, 40)
	runtime.GOMAXPROCS(runtime.NumCPU())
	pot2, field2 := run_solve(tst, pts, charges, pts, 3, 40)
	runtime.GOMAXPROCS(old)
	if pot1 == nil || pot2 == nil {
		return
	}

	for i := range pot1 {
		if pot1[i] != pot2[i] {
			tst.Errorf("potential %d differs between runs: %v != %v", i, pot1[i], pot2[i])
			return
		}
	}
	for i := range field1 {
		if field1[i] != field2[i] {
			tst.Errorf("field component %d differs between runs", i)
			return
		}
	}
}

func Test_fmm06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmm06. linearity in the charges")

	rnd.Init(5555)
	var cube ana.Cube
	cube.Init(nil)
	n := 2000
	pts := cube.Gen(n)
	charges := ana.Charges(n, 1)
	doubled := make([]float64, n)
	for i := range charges {
		doubled[i] = 2 * charges[i]
	}

	pot1, field1 := run_solve(tst, pts, charges, pts, 3, 40)
	pot2, field2 := run_solve(tst, pts, doubled, pts, 3, 40)
	if pot1 == nil || pot2 == nil {
		return
	}

	for i := range pot1 {
		chk.Scalar(tst, "pot", 1e-10, pot2[i], 2*pot1[i])
	}
	for i := range field1 {
		chk.Scalar(tst, "field", 1e-9, field2[i], 2*field1[i])
	}
}

func Test_fmm07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmm07. boundary cases")

	// single source, single target
	pot, field := run_solve(tst, []float64{0, 0, 0}, []float64{3}, []float64{1, 1, 1}, 3, 10)
	if pot == nil {
		return
	}
	p, fx, fy, fz := ana.Eval([]float64{0, 0, 0}, []float64{3}, 1, 1, 1)
	chk.Scalar(tst, "pot", 1e-14, pot[0], p)
	chk.Vector(tst, "field", 1e-14, field, []float64{fx, fy, fz})

	// coincident source and target: the self term is skipped, no NaN
	sources := []float64{0.25, 0.25, 0.25, 0.75, 0.75, 0.75}
	charges := []float64{1, 1}
	targets := []float64{0.25, 0.25, 0.25}
	pot, _ = run_solve(tst, sources, charges, targets, 3, 1)
	if pot == nil {
		return
	}
	p, _, _, _ = ana.Eval(sources, charges, 0.25, 0.25, 0.25)
	chk.Scalar(tst, "pot skip self", 1e-12, pot[0], p)

	// invalid accuracy
	err := Solve(sources, charges, targets, make([]float64, 1), make([]float64, 3), 4, 10)
	if err == nil {
		tst.Errorf("accuracy=4 must be rejected")
		return
	}
	io.Pforan("expected failure: %v\n", err)
}

func Test_fmm08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmm08. translation invariance")

	rnd.Init(6666)
	var cube ana.Cube
	cube.Init(nil)
	n := 2000
	pts := cube.Gen(n)
	charges := ana.Charges(n, 1)
	shifted := make([]float64, len(pts))
	for i := 0; i < n; i++ {
		shifted[3*i] = pts[3*i] + 2.0
		shifted[3*i+1] = pts[3*i+1] - 1.0
		shifted[3*i+2] = pts[3*i+2] + 0.5
	}

	pot1, field1 := run_solve(tst, pts, charges, pts, 3, 40)
	pot2, field2 := run_solve(tst, shifted, charges, shifted, 3, 40)
	if pot1 == nil || pot2 == nil {
		return
	}

	for i := range pot1 {
		chk.Scalar(tst, "pot", 1e-10, pot2[i], pot1[i])
	}
	for i := range field1 {
		chk.Scalar(tst, "field", 1e-9, field2[i], field1[i])
	}
}

func Test_fmm09(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmm09. shared tables across solves")

	rnd.Init(7777)
	var cube ana.Cube
	cube.Init(nil)
	n := 1500
	pts := cube.Gen(n)
	charges := ana.Charges(n, 1)

	prm, err := param.New(3)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	// two concurrent solves sharing one Param
	done := make(chan int, 2)
	pots := make([][]float64, 2)
	for k := 0; k < 2; k++ {
		go func(k int) {
			s, err := NewSolver(prm, pts, charges, pts, 40)
			if err == nil {
				s.Run()
				pots[k] = make([]float64, n)
				s.Extract(pots[k], make([]float64, 3*n))
			}
			done <- 1
		}(k)
	}
	for k := 0; k < 2; k++ {
		<-done
	}
	if pots[0] == nil || pots[1] == nil {
		tst.Errorf("concurrent solves failed")
		return
	}
	for i := range pots[0] {
		if pots[0][i] != pots[1][i] {
			tst.Errorf("concurrent solves disagree at %d", i)
			return
		}
	}
}
