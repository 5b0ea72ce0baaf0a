// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import (
	"math/cmplx"

	"github.com/cpmech/gofmm/tree"
)

// MultipoleToExponential converts a source box's multipole expansion into its
// six directional plane-wave expansions. The z-axis pair needs no rotation;
// the y and x pairs rotate the multipole into the axis first.
func (o *Solver) MultipoleToExponential(ibox *tree.Box) {
	boxid := ibox.ID
	nexp := o.Prm.Nexptotp
	mw := make([]complex128, o.Prm.Pgsz)
	mexpf1 := make([]complex128, o.Prm.Nexpmax)
	mexpf2 := make([]complex128, o.Prm.Nexpmax)
	multipole := o.mpoleOf(boxid)

	o.multipoleToExponentialPhase1(multipole, mexpf1, mexpf2)
	o.multipoleToExponentialPhase2(mexpf1, o.Expu[nexp*boxid:nexp*(boxid+1)])
	o.multipoleToExponentialPhase2(mexpf2, o.Expd[nexp*boxid:nexp*(boxid+1)])

	o.Prm.RotZ2Y(multipole, o.Prm.Rdminus, mw)
	o.multipoleToExponentialPhase1(mw, mexpf1, mexpf2)
	o.multipoleToExponentialPhase2(mexpf1, o.Expn[nexp*boxid:nexp*(boxid+1)])
	o.multipoleToExponentialPhase2(mexpf2, o.Exps[nexp*boxid:nexp*(boxid+1)])

	o.Prm.RotZ2X(multipole, o.Prm.Rdplus, mw)
	o.multipoleToExponentialPhase1(mw, mexpf1, mexpf2)
	o.multipoleToExponentialPhase2(mexpf1, o.Expe[nexp*boxid:nexp*(boxid+1)])
	o.multipoleToExponentialPhase2(mexpf2, o.Expw[nexp*boxid:nexp*(boxid+1)])
}

// multipoleToExponentialPhase1 turns spherical-harmonic coefficients into the
// up and down Fourier representations, splitting even and odd degrees
func (o *Solver) multipoleToExponentialPhase1(multipole, mexpu, mexpd []complex128) {
	pterms := o.Prm.Pterms
	ntot := 0
	for nell := 0; nell < o.Prm.Nlambs; nell++ {
		sgn := -1.0
		zeyep := complex(1, 0)
		for mth := 0; mth <= o.Prm.Numfour[nell]-1; mth++ {
			ncurrent := ntot + mth
			ztmp1 := complex(0, 0)
			ztmp2 := complex(0, 0)
			sgn = -sgn
			offset := mth * (pterms + 1)
			offset1 := offset + nell*o.Prm.Pgsz
			for nm := mth; nm <= pterms; nm += 2 {
				ztmp1 += complex(o.Prm.Rlsc[nm+offset1], 0) * multipole[nm+offset]
			}
			for nm := mth + 1; nm <= pterms; nm += 2 {
				ztmp2 += complex(o.Prm.Rlsc[nm+offset1], 0) * multipole[nm+offset]
			}
			mexpu[ncurrent] = (ztmp1 + ztmp2) * zeyep
			mexpd[ncurrent] = complex(sgn, 0) * (ztmp1 - ztmp2) * zeyep
			zeyep *= complex(0, 1)
		}
		ntot += o.Prm.Numfour[nell]
	}
}

// multipoleToExponentialPhase2 evaluates the Fourier representation at the
// physical quadrature angles; even modes feed the imaginary part, odd modes
// the real part
func (o *Solver) multipoleToExponentialPhase2(mexpf, mexpphys []complex128) {
	nftot, nptot, nexte, nexto := 0, 0, 0, 0
	for i := 0; i < o.Prm.Nlambs; i++ {
		for ival := 0; ival < o.Prm.Numphys[i]/2; ival++ {
			mexpphys[nptot+ival] = mexpf[nftot]
			for nm := 1; nm < o.Prm.Numfour[i]; nm += 2 {
				rt1 := imag(o.Prm.Fexpe[nexte]) * real(mexpf[nftot+nm])
				rt2 := real(o.Prm.Fexpe[nexte]) * imag(mexpf[nftot+nm])
				rtmp := 2 * (rt1 + rt2)
				nexte++
				mexpphys[nptot+ival] += complex(0, rtmp)
			}
			for nm := 2; nm < o.Prm.Numfour[i]; nm += 2 {
				rt1 := real(o.Prm.Fexpo[nexto]) * real(mexpf[nftot+nm])
				rt2 := imag(o.Prm.Fexpo[nexto]) * imag(mexpf[nftot+nm])
				rtmp := 2 * (rt1 - rt2)
				nexto++
				mexpphys[nptot+ival] += complex(rtmp, 0)
			}
		}
		nftot += o.Prm.Numfour[i]
		nptot += o.Prm.Numphys[i] / 2
	}
}

// makeUList sums the plane-wave expansions of an upward merged list, applying
// the tabulated phase shifts. Returns nil when the list is empty.
func (o *Solver) makeUList(expo []complex128, l *tree.List) (mexpo []complex128) {
	if l.N() == 0 {
		return nil
	}
	nexp := o.Prm.Nexptotp
	mexpo = make([]complex128, nexp)
	for i, boxid := range l.B {
		offset := boxid * nexp
		for j := 0; j < nexp; j++ {
			zmul := complex(1, 0)
			if l.X[i] > 0 {
				zmul *= o.Prm.Xs[3*j+l.X[i]-1]
			}
			if l.X[i] < 0 {
				zmul *= cmplx.Conj(o.Prm.Xs[3*j-l.X[i]-1])
			}
			if l.Y[i] > 0 {
				zmul *= o.Prm.Ys[3*j+l.Y[i]-1]
			}
			if l.Y[i] < 0 {
				zmul *= cmplx.Conj(o.Prm.Ys[3*j-l.Y[i]-1])
			}
			mexpo[j] += zmul * expo[offset+j]
		}
	}
	return
}

// makeDList is the downward counterpart of makeUList: the phase shifts are
// conjugated
func (o *Solver) makeDList(expo []complex128, l *tree.List) (mexpo []complex128) {
	if l.N() == 0 {
		return nil
	}
	nexp := o.Prm.Nexptotp
	mexpo = make([]complex128, nexp)
	for i, boxid := range l.B {
		offset := boxid * nexp
		for j := 0; j < nexp; j++ {
			zmul := complex(1, 0)
			if l.X[i] > 0 {
				zmul *= cmplx.Conj(o.Prm.Xs[3*j+l.X[i]-1])
			}
			if l.X[i] < 0 {
				zmul *= o.Prm.Xs[3*j-l.X[i]-1]
			}
			if l.Y[i] > 0 {
				zmul *= cmplx.Conj(o.Prm.Ys[3*j+l.Y[i]-1])
			}
			if l.Y[i] < 0 {
				zmul *= o.Prm.Ys[3*j-l.Y[i]-1]
			}
			mexpo[j] += zmul * expo[offset+j]
		}
	}
	return
}
