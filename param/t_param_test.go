// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package param

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_param01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param01. table sizes and identities")

	for _, accuracy := range []int{3, 6} {
		prm, err := New(accuracy)
		if err != nil {
			tst.Errorf("New failed:\n%v", err)
			return
		}
		if accuracy == 3 {
			chk.IntAssert(prm.Pterms, 9)
			chk.IntAssert(prm.Nlambs, 9)
			chk.IntAssert(prm.Pgsz, 100)
		} else {
			chk.IntAssert(prm.Pterms, 18)
			chk.IntAssert(prm.Nlambs, 18)
			chk.IntAssert(prm.Pgsz, 361)
		}
		chk.IntAssert(prm.Pgsz, (prm.Pterms+1)*(prm.Pterms+1))

		// mode totals
		nf, np, nth := 0, 0, 0
		for i := 0; i < prm.Nlambs; i++ {
			nf += prm.Numfour[i]
			np += prm.Numphys[i]
			if prm.Numfour[i] > nth {
				nth = prm.Numfour[i]
			}
		}
		chk.IntAssert(prm.Nexptot, nf)
		chk.IntAssert(prm.Nexptotp, np/2)
		chk.IntAssert(prm.Nthmax, nth)
		io.Pforan("accuracy=%d: nexptot=%v nexptotp=%v nexpmax=%v\n", accuracy, prm.Nexptot, prm.Nexptotp, prm.Nexpmax)

		// merge tables must fit the bound the tables imply
		nexte, nexto := 0, 0
		for i := 0; i < prm.Nlambs; i++ {
			nexte += prm.Numphys[i] / 2 * (prm.Numfour[i] / 2)
			nexto += prm.Numphys[i] / 2 * ((prm.Numfour[i] - 1) / 2)
		}
		chk.IntAssert(len(prm.Fexpe), nexte)
		chk.IntAssert(len(prm.Fexpo), nexto)
		chk.IntAssert(len(prm.Fexpback), nexte+nexto)
		chk.IntAssertLessThan(len(prm.Fexpback), 15000)

		// normalization identities
		for idx := 0; idx < prm.Pgsz; idx++ {
			if prm.Ytopcsinv[idx] > 0 {
				chk.Float64(tst, io.Sf("ytopcs*ytopcsinv @ %d", idx), 1e-14, prm.Ytopcs[idx]*prm.Ytopcsinv[idx], 1.0)
			}
		}

		// rlsc with m=0 equals lambda^l / l!
		for nell := 0; nell < prm.Nlambs; nell++ {
			lam := prm.Rlams[nell]
			fact := 1.0
			for ell := 0; ell <= prm.Pterms; ell++ {
				if ell > 0 {
					fact *= float64(ell)
				}
				correct := math.Pow(lam, float64(ell)) / fact
				chk.Float64(tst, "rlsc", 1e-13*(1+correct), prm.Rlsc[ell+nell*prm.Pgsz], correct)
			}
		}

		// plane-wave shifts carry unit modulus in x and y and decay in z
		for j := 0; j < prm.Nexptotp; j++ {
			chk.Float64(tst, "xs modulus", 1e-14, cmplx.Abs(prm.Xs[3*j]), 1.0)
			chk.Float64(tst, "ys modulus", 1e-14, cmplx.Abs(prm.Ys[3*j]), 1.0)
			if prm.Zs[3*j] <= 0 || prm.Zs[3*j] >= 1 {
				tst.Errorf("zs[%d]=%v out of (0,1)", 3*j, prm.Zs[3*j])
				return
			}
			chk.Float64(tst, "zs square", 1e-14, prm.Zs[3*j+1], prm.Zs[3*j]*prm.Zs[3*j])
		}
	}
}

func Test_param02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param02. unsupported accuracy")

	_, err := New(5)
	if err == nil {
		tst.Errorf("accuracy=5 must be rejected")
		return
	}
	io.Pforan("expected failure: %v\n", err)
}

func Test_lgndr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lgndr01. associated Legendre recursion")

	nmax := 9
	y := make([]float64, (nmax+1)*(nmax+1))
	for _, x := range []float64{-0.9, -0.3, 0.0, 0.5, 0.99} {
		Lgndr(nmax, x, y)
		u := math.Sqrt(1 - x*x)
		chk.Float64(tst, "P0", 1e-15, y[0], 1.0)
		chk.Float64(tst, "P1", 1e-15, y[1], x)
		chk.Float64(tst, "P2", 1e-14, y[2], 0.5*(3*x*x-1))
		chk.Float64(tst, "P3", 1e-14, y[3], 0.5*(5*x*x*x-3*x))
		chk.Float64(tst, "P11", 1e-14, y[1+1*(nmax+1)], -u)
		chk.Float64(tst, "P21", 1e-14, y[2+1*(nmax+1)], -3*x*u)
		chk.Float64(tst, "P22", 1e-13, y[2+2*(nmax+1)], 3*(1-x*x))
	}
}

func Test_rot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rot01. rotations preserve the monopole")

	prm, err := New(3)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	mp := make([]complex128, prm.Pgsz)
	out := make([]complex128, prm.Pgsz)
	mp[0] = 2.5

	prm.RotZ2Y(mp, prm.Rdminus, out)
	chk.Float64(tst, "z2y monopole", 1e-14, real(out[0]), 2.5)
	prm.RotZ2X(mp, prm.Rdplus, out)
	chk.Float64(tst, "z2x monopole", 1e-14, real(out[0]), 2.5)
	prm.RotY2Z(mp, prm.Rdplus, out)
	chk.Float64(tst, "y2z monopole", 1e-14, real(out[0]), 2.5)
}
