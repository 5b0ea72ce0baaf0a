// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gofmm/param"
	"github.com/cpmech/gofmm/tree"
)

// expterm selects one merged expansion and the plane-wave shifts bringing it
// into a child's frame: zi indexes the power of the z-decay, fx/fy choose the
// tabulated x/y shift (+1), its conjugate (-1) or no shift (0)
type expterm struct {
	mex []complex128
	zi  int
	fx  int
	fy  int
}

// mergeShift accumulates the shifted merged expansions into temp and returns
// how many non-empty lists contributed
func (o *Solver) mergeShift(temp []complex128, terms []expterm, scale float64) (n int) {
	nexp := o.Prm.Nexptotp
	for j := 0; j < nexp; j++ {
		temp[j] = 0
	}
	for _, t := range terms {
		if t.mex == nil {
			continue
		}
		n++
		for j := 0; j < nexp; j++ {
			zmul := complex(o.Prm.Zs[3*j+t.zi]*scale, 0)
			switch t.fx {
			case 1:
				zmul *= o.Prm.Xs[3*j]
			case -1:
				zmul *= cmplx.Conj(o.Prm.Xs[3*j])
			}
			switch t.fy {
			case 1:
				zmul *= o.Prm.Ys[3*j]
			case -1:
				zmul *= cmplx.Conj(o.Prm.Ys[3*j])
			}
			temp[j] += zmul * t.mex[j]
		}
	}
	return
}

// axes of the three exponential batches
const (
	alongZ = iota
	alongY
	alongX
)

// x2lPass translates one child's share of one axis batch: gather the two
// direction groups, convert them back to spherical harmonics, rotate into the
// child's frame if the batch is not along z, and accumulate into the child's
// local expansion
func (o *Solver) x2lPass(local []complex128, g1, g2 []expterm, scale float64, axis int,
	temp, mexpf1, mexpf2, mw1, mw2 []complex128) {
	n1 := o.mergeShift(temp, g1, scale)
	if n1 > 0 {
		o.exponentialToLocalPhase1(temp, mexpf1)
	}
	n2 := o.mergeShift(temp, g2, scale)
	if n2 > 0 {
		o.exponentialToLocalPhase1(temp, mexpf2)
	}
	if n1+n2 == 0 {
		return
	}
	o.exponentialToLocalPhase2(n2, mexpf2, n1, mexpf1, mw1)
	res := mw1
	switch axis {
	case alongY:
		o.Prm.RotY2Z(mw1, o.Prm.Rdplus, mw2)
		res = mw2
	case alongX:
		o.Prm.RotZ2X(mw1, o.Prm.Rdminus, mw2)
		res = mw2
	}
	for j := 0; j < o.Prm.Pgsz; j++ {
		local[j] += res[j]
	}
}

// ExponentialToLocal scatters the merged directional expansions of the target
// box's colleagues into the local expansions of its children
func (o *Solver) ExponentialToLocal(ibox *tree.Box) {
	m := o.Dom.BuildMergedLists(ibox)
	scale := o.Scale[ibox.Level+1]

	temp := make([]complex128, o.Prm.Nexpmax)
	mexpf1 := make([]complex128, o.Prm.Nexpmax)
	mexpf2 := make([]complex128, o.Prm.Nexpmax)
	mw1 := make([]complex128, o.Prm.Pgsz)
	mw2 := make([]complex128, o.Prm.Pgsz)

	child := func(k int) []complex128 {
		if ibox.Child[k] == 0 {
			return nil
		}
		return o.localOf(ibox.Child[k])
	}

	// z-direction batch: up and down lists
	mexuall := o.makeUList(o.Expd, &m.Uall)
	mexu1234 := o.makeUList(o.Expd, &m.U1234)
	mexdall := o.makeDList(o.Expu, &m.Dall)
	mexd5678 := o.makeDList(o.Expu, &m.D5678)

	if local := child(0); local != nil {
		o.x2lPass(local,
			[]expterm{{mexuall, 2, 0, 0}, {mexu1234, 1, 0, 0}},
			[]expterm{{mexdall, 1, 0, 0}},
			scale, alongZ, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(1); local != nil {
		o.x2lPass(local,
			[]expterm{{mexuall, 2, -1, 0}, {mexu1234, 1, -1, 0}},
			[]expterm{{mexdall, 1, 1, 0}},
			scale, alongZ, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(2); local != nil {
		o.x2lPass(local,
			[]expterm{{mexuall, 2, 0, -1}, {mexu1234, 1, 0, -1}},
			[]expterm{{mexdall, 1, 0, 1}},
			scale, alongZ, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(3); local != nil {
		o.x2lPass(local,
			[]expterm{{mexuall, 2, -1, -1}, {mexu1234, 1, -1, -1}},
			[]expterm{{mexdall, 1, 1, 1}},
			scale, alongZ, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(4); local != nil {
		o.x2lPass(local,
			[]expterm{{mexuall, 1, 0, 0}},
			[]expterm{{mexdall, 2, 0, 0}, {mexd5678, 1, 0, 0}},
			scale, alongZ, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(5); local != nil {
		o.x2lPass(local,
			[]expterm{{mexuall, 1, -1, 0}},
			[]expterm{{mexdall, 2, 1, 0}, {mexd5678, 1, 1, 0}},
			scale, alongZ, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(6); local != nil {
		o.x2lPass(local,
			[]expterm{{mexuall, 1, 0, -1}},
			[]expterm{{mexdall, 2, 0, 1}, {mexd5678, 1, 0, 1}},
			scale, alongZ, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(7); local != nil {
		o.x2lPass(local,
			[]expterm{{mexuall, 1, -1, -1}},
			[]expterm{{mexdall, 2, 1, 1}, {mexd5678, 1, 1, 1}},
			scale, alongZ, temp, mexpf1, mexpf2, mw1, mw2)
	}

	// y-direction batch: north and south lists
	mexnall := o.makeUList(o.Exps, &m.Nall)
	mexn1256 := o.makeUList(o.Exps, &m.N1256)
	mexn12 := o.makeUList(o.Exps, &m.N12)
	mexn56 := o.makeUList(o.Exps, &m.N56)
	mexsall := o.makeDList(o.Expn, &m.Sall)
	mexs3478 := o.makeDList(o.Expn, &m.S3478)
	mexs34 := o.makeDList(o.Expn, &m.S34)
	mexs78 := o.makeDList(o.Expn, &m.S78)

	if local := child(0); local != nil {
		o.x2lPass(local,
			[]expterm{{mexnall, 2, 0, 0}, {mexn1256, 1, 0, 0}, {mexn12, 1, 0, 0}},
			[]expterm{{mexsall, 1, 0, 0}},
			scale, alongY, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(1); local != nil {
		o.x2lPass(local,
			[]expterm{{mexnall, 2, 0, -1}, {mexn1256, 1, 0, -1}, {mexn12, 1, 0, -1}},
			[]expterm{{mexsall, 1, 0, 1}},
			scale, alongY, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(2); local != nil {
		o.x2lPass(local,
			[]expterm{{mexnall, 1, 0, 0}},
			[]expterm{{mexsall, 2, 0, 0}, {mexs3478, 1, 0, 0}, {mexs34, 1, 0, 0}},
			scale, alongY, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(3); local != nil {
		o.x2lPass(local,
			[]expterm{{mexnall, 1, 0, -1}},
			[]expterm{{mexsall, 2, 0, 1}, {mexs3478, 1, 0, 1}, {mexs34, 1, 0, 1}},
			scale, alongY, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(4); local != nil {
		o.x2lPass(local,
			[]expterm{{mexnall, 2, -1, 0}, {mexn1256, 1, -1, 0}, {mexn56, 1, -1, 0}},
			[]expterm{{mexsall, 1, 1, 0}},
			scale, alongY, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(5); local != nil {
		o.x2lPass(local,
			[]expterm{{mexnall, 2, -1, -1}, {mexn1256, 1, -1, -1}, {mexn56, 1, -1, -1}},
			[]expterm{{mexsall, 1, 1, 1}},
			scale, alongY, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(6); local != nil {
		o.x2lPass(local,
			[]expterm{{mexnall, 1, -1, 0}},
			[]expterm{{mexsall, 2, 1, 0}, {mexs3478, 1, 1, 0}, {mexs78, 1, 1, 0}},
			scale, alongY, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(7); local != nil {
		o.x2lPass(local,
			[]expterm{{mexnall, 1, -1, -1}},
			[]expterm{{mexsall, 2, 1, 1}, {mexs3478, 1, 1, 1}, {mexs78, 1, 1, 1}},
			scale, alongY, temp, mexpf1, mexpf2, mw1, mw2)
	}

	// x-direction batch: east and west lists
	mexeall := o.makeUList(o.Expw, &m.Eall)
	mexe1357 := o.makeUList(o.Expw, &m.E1357)
	mexe13 := o.makeUList(o.Expw, &m.E13)
	mexe57 := o.makeUList(o.Expw, &m.E57)
	mexe1 := o.makeUList(o.Expw, &m.E1)
	mexe3 := o.makeUList(o.Expw, &m.E3)
	mexe5 := o.makeUList(o.Expw, &m.E5)
	mexe7 := o.makeUList(o.Expw, &m.E7)
	mexwall := o.makeDList(o.Expe, &m.Wall)
	mexw2468 := o.makeDList(o.Expe, &m.W2468)
	mexw24 := o.makeDList(o.Expe, &m.W24)
	mexw68 := o.makeDList(o.Expe, &m.W68)
	mexw2 := o.makeDList(o.Expe, &m.W2)
	mexw4 := o.makeDList(o.Expe, &m.W4)
	mexw6 := o.makeDList(o.Expe, &m.W6)
	mexw8 := o.makeDList(o.Expe, &m.W8)

	if local := child(0); local != nil {
		o.x2lPass(local,
			[]expterm{{mexeall, 2, 0, 0}, {mexe1357, 1, 0, 0}, {mexe13, 1, 0, 0}, {mexe1, 1, 0, 0}},
			[]expterm{{mexwall, 1, 0, 0}},
			scale, alongX, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(1); local != nil {
		o.x2lPass(local,
			[]expterm{{mexeall, 1, 0, 0}},
			[]expterm{{mexwall, 2, 0, 0}, {mexw2468, 1, 0, 0}, {mexw24, 1, 0, 0}, {mexw2, 1, 0, 0}},
			scale, alongX, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(2); local != nil {
		o.x2lPass(local,
			[]expterm{{mexeall, 2, 0, -1}, {mexe1357, 1, 0, -1}, {mexe13, 1, 0, -1}, {mexe3, 1, 0, -1}},
			[]expterm{{mexwall, 1, 0, 1}},
			scale, alongX, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(3); local != nil {
		o.x2lPass(local,
			[]expterm{{mexeall, 1, 0, -1}},
			[]expterm{{mexwall, 2, 0, 1}, {mexw2468, 1, 0, 1}, {mexw24, 1, 0, 1}, {mexw4, 1, 0, 1}},
			scale, alongX, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(4); local != nil {
		o.x2lPass(local,
			[]expterm{{mexeall, 2, 1, 0}, {mexe1357, 1, 1, 0}, {mexe57, 1, 1, 0}, {mexe5, 1, 1, 0}},
			[]expterm{{mexwall, 1, -1, 0}},
			scale, alongX, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(5); local != nil {
		o.x2lPass(local,
			[]expterm{{mexeall, 1, 1, 0}},
			[]expterm{{mexwall, 2, -1, 0}, {mexw2468, 1, -1, 0}, {mexw68, 1, -1, 0}, {mexw6, 1, -1, 0}},
			scale, alongX, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(6); local != nil {
		o.x2lPass(local,
			[]expterm{{mexeall, 2, 1, -1}, {mexe1357, 1, 1, -1}, {mexe57, 1, 1, -1}, {mexe7, 1, 1, -1}},
			[]expterm{{mexwall, 1, -1, 1}},
			scale, alongX, temp, mexpf1, mexpf2, mw1, mw2)
	}
	if local := child(7); local != nil {
		o.x2lPass(local,
			[]expterm{{mexeall, 1, 1, -1}},
			[]expterm{{mexwall, 2, -1, 1}, {mexw2468, 1, -1, 1}, {mexw68, 1, -1, 1}, {mexw8, 1, -1, 1}},
			scale, alongX, temp, mexpf1, mexpf2, mw1, mw2)
	}
}

// exponentialToLocalPhase1 averages the physical samples of each ring back
// into Fourier modes, respecting the parity split
func (o *Solver) exponentialToLocalPhase1(mexpphys, mexpf []complex128) {
	nftot, nptot, next := 0, 0, 0
	for i := 0; i < o.Prm.Nlambs; i++ {
		nalpha := o.Prm.Numphys[i]
		nalpha2 := nalpha / 2

		mexpf[nftot] = 0
		for ival := 0; ival < nalpha2; ival++ {
			mexpf[nftot] += complex(2.0*real(mexpphys[nptot+ival]), 0)
		}
		mexpf[nftot] /= complex(float64(nalpha), 0)

		for nm := 2; nm < o.Prm.Numfour[i]; nm += 2 {
			mexpf[nftot+nm] = 0
			for ival := 0; ival < nalpha2; ival++ {
				rtmp := 2 * real(mexpphys[nptot+ival])
				mexpf[nftot+nm] += o.Prm.Fexpback[next] * complex(rtmp, 0)
				next++
			}
			mexpf[nftot+nm] /= complex(float64(nalpha), 0)
		}

		for nm := 1; nm < o.Prm.Numfour[i]; nm += 2 {
			mexpf[nftot+nm] = 0
			for ival := 0; ival < nalpha2; ival++ {
				ztmp := complex(0, 2*imag(mexpphys[nptot+ival]))
				mexpf[nftot+nm] += o.Prm.Fexpback[next] * ztmp
				next++
			}
			mexpf[nftot+nm] /= complex(float64(nalpha), 0)
		}

		nftot += o.Prm.Numfour[i]
		nptot += o.Prm.Numphys[i] / 2
	}
}

// exponentialToLocalPhase2 converts the up and down Fourier representations
// into spherical-harmonic local coefficients
func (o *Solver) exponentialToLocalPhase2(iexpu int, mexpu []complex128, iexpd int, mexpd, local []complex128) {
	pterms := o.Prm.Pterms
	rlampow := make([]float64, pterms+1)
	zeye := make([]complex128, pterms+1)
	mexpplus := make([]complex128, o.Prm.Nexptot)
	mexpminus := make([]complex128, o.Prm.Nexptot)

	zeye[0] = 1.0
	for i := 1; i <= pterms; i++ {
		zeye[i] = zeye[i-1] * complex(0, 1)
	}

	for i := 0; i < o.Prm.Pgsz; i++ {
		local[i] = 0.0
	}

	for i := 0; i < o.Prm.Nexptot; i++ {
		if iexpu <= 0 {
			mexpplus[i] = mexpd[i]
			mexpminus[i] = mexpd[i]
		} else if iexpd <= 0 {
			mexpplus[i] = mexpu[i]
			mexpminus[i] = -mexpu[i]
		} else {
			mexpplus[i] = mexpd[i] + mexpu[i]
			mexpminus[i] = mexpd[i] - mexpu[i]
		}
	}

	ntot := 0
	for nell := 0; nell < o.Prm.Nlambs; nell++ {
		rlampow[0] = o.Prm.Whts[nell]
		rmul := o.Prm.Rlams[nell]
		for j := 1; j <= pterms; j++ {
			rlampow[j] = rlampow[j-1] * rmul
		}

		mmax := o.Prm.Numfour[nell] - 1
		for mth := 0; mth <= mmax; mth += 2 {
			offset := mth * (pterms + 1)
			ncurrent := ntot + mth
			for nm := mth; nm <= pterms; nm += 2 {
				local[offset+nm] += complex(rlampow[nm], 0) * mexpplus[ncurrent]
			}
			for nm := mth + 1; nm <= pterms; nm += 2 {
				local[offset+nm] += complex(rlampow[nm], 0) * mexpminus[ncurrent]
			}
		}
		for mth := 1; mth <= mmax; mth += 2 {
			offset := mth * (pterms + 1)
			ncurrent := ntot + mth
			for nm := mth + 1; nm <= pterms; nm += 2 {
				local[offset+nm] += complex(rlampow[nm], 0) * mexpplus[ncurrent]
			}
			for nm := mth; nm <= pterms; nm += 2 {
				local[offset+nm] += complex(rlampow[nm], 0) * mexpminus[ncurrent]
			}
		}
		ntot += o.Prm.Numfour[nell]
	}

	for mth := 0; mth <= pterms; mth++ {
		offset := mth * (pterms + 1)
		for nm := mth; nm <= pterms; nm++ {
			index := nm + offset
			local[index] *= zeye[mth] * complex(o.Prm.Ytopcs[index], 0)
		}
	}
}

// LocalToLocal shifts the parent's local expansion into ibox: the mirror of
// MultipoleToMultipole with the dual octant table, the opposite shift sign
// and a quarter of the distance
func (o *Solver) LocalToLocal(ibox *tree.Box) {
	var vard = [5]complex128{1, 1 - 1i, -1 - 1i, -1 + 1i, 1 + 1i}
	arg := math.Sqrt(2) / 2.0
	pterms := o.Prm.Pterms
	pgsz := o.Prm.Pgsz

	localn := make([]complex128, pgsz)
	marray := make([]complex128, pgsz)
	ephi := make([]complex128, 1+pterms)
	powers := make([]float64, 1+pterms)

	sc1 := o.Scale[ibox.Level-1]
	sc2 := o.Scale[ibox.Level]
	pbox := o.Dom.TBox[ibox.Parent]
	plocal := o.localOf(ibox.Parent)

	var ifl int
	var rd []float64
	for i := 0; i < 8; i++ {
		if ibox.ID == pbox.Child[i] {
			ifl = ifld[i]
			rd = o.Prm.Rdsq3
			if i >= 4 {
				rd = o.Prm.Rdmsq3
			}
			break
		}
	}

	ephi[0] = 1.0
	ephi[1] = complex(arg, 0) * vard[ifl]
	dd := -math.Sqrt(3) / 4.0
	powers[0] = 1.0
	for ell := 1; ell <= pterms; ell++ {
		powers[ell] = powers[ell-1] * dd
	}
	for ell := 2; ell <= pterms; ell++ {
		ephi[ell] = ephi[ell-1] * ephi[1]
	}

	for m := 0; m <= pterms; m++ {
		offset := m * (pterms + 1)
		for ell := m; ell <= pterms; ell++ {
			index := ell + offset
			localn[index] = cmplx.Conj(ephi[m]) * plocal[index]
		}
	}

	for m := 0; m <= pterms; m++ {
		offset := m * (pterms + 1)
		offset1 := (pterms + m) * pgsz
		offset2 := (pterms - m) * pgsz
		for ell := m; ell <= pterms; ell++ {
			index := ell + offset
			marray[index] = localn[ell] * complex(rd[ell+offset1], 0)
			for mp := 1; mp <= ell; mp++ {
				index1 := ell + mp*(pterms+1)
				marray[index] += localn[index1]*complex(rd[index1+offset1], 0) +
					cmplx.Conj(localn[index1])*complex(rd[index1+offset2], 0)
			}
		}
	}

	for k := 0; k <= pterms; k++ {
		offset := k * (pterms + 1)
		for j := k; j <= pterms; j++ {
			index := j + offset
			localn[index] = marray[index]
			for ell := 1; ell <= pterms-j; ell++ {
				index1 := ell + index
				index2 := ell + j + k + ell*(2*pterms+1)
				index3 := ell + j - k + ell*(2*pterms+1)
				localn[index] += marray[index1] * complex(powers[ell]*o.Prm.Dc[index2]*o.Prm.Dc[index3], 0)
			}
		}
	}

	for m := 0; m <= pterms; m++ {
		offset := m * (pterms + 1)
		offset1 := (pterms + m) * pgsz
		offset2 := (pterms - m) * pgsz
		for ell := m; ell <= pterms; ell++ {
			index := ell + offset
			marray[index] = localn[ell] * complex(rd[ell+offset1], 0)
			for mp := 1; mp <= ell; mp += 2 {
				index1 := ell + mp*(pterms+1)
				marray[index] -= localn[index1]*complex(rd[index1+offset1], 0) +
					cmplx.Conj(localn[index1])*complex(rd[index1+offset2], 0)
			}
			for mp := 2; mp <= ell; mp += 2 {
				index1 := ell + mp*(pterms+1)
				marray[index] += localn[index1]*complex(rd[index1+offset1], 0) +
					cmplx.Conj(localn[index1])*complex(rd[index1+offset2], 0)
			}
		}
	}

	for m := 1; m <= pterms; m += 2 {
		offset := m * (pterms + 1)
		offset1 := (pterms + m) * pgsz
		offset2 := (pterms - m) * pgsz
		for ell := m; ell <= pterms; ell++ {
			index := ell + offset
			marray[index] = -localn[ell] * complex(rd[ell+offset1], 0)
			for mp := 1; mp <= ell; mp += 2 {
				index1 := ell + mp*(pterms+1)
				marray[index] += localn[index1]*complex(rd[index1+offset1], 0) +
					cmplx.Conj(localn[index1])*complex(rd[index1+offset2], 0)
			}
			for mp := 2; mp <= ell; mp += 2 {
				index1 := ell + mp*(pterms+1)
				marray[index] -= localn[index1]*complex(rd[index1+offset1], 0) +
					cmplx.Conj(localn[index1])*complex(rd[index1+offset2], 0)
			}
		}
	}

	powers[0] = 1.0
	dd = sc1 / sc2
	for ell := 1; ell <= pterms; ell++ {
		powers[ell] = powers[ell-1] * dd
	}
	for m := 0; m <= pterms; m++ {
		offset := m * (pterms + 1)
		for ell := m; ell <= pterms; ell++ {
			index := offset + ell
			localn[index] = ephi[m] * marray[index] * complex(powers[ell], 0)
		}
	}

	local := o.localOf(ibox.ID)
	for m := 0; m < pgsz; m++ {
		local[m] += localn[m]
	}
}

// LocalToTarget evaluates the local expansion of a target leaf at every
// contained target, accumulating potential and field
func (o *Solver) LocalToTarget(ibox *tree.Box) {
	pterms := o.Prm.Pterms
	local := o.localOf(ibox.ID)
	scale := o.Scale[ibox.Level]
	x0, y0, z0 := o.boxCenter(ibox)

	p := make([]float64, o.Prm.Pgsz)
	powers := make([]float64, 1+pterms)
	ephi := make([]complex128, 1+pterms)
	precision := 1.0e-14

	for i := 0; i < ibox.Npts; i++ {
		ptr := ibox.Addr + i
		rpotz := 0.0
		var zs1, zs2, zs3 complex128

		rx := o.Targets[3*ptr] - x0
		ry := o.Targets[3*ptr+1] - y0
		rz := o.Targets[3*ptr+2] - z0
		proj := rx*rx + ry*ry
		rr := proj + rz*rz
		proj = math.Sqrt(proj)
		d := math.Sqrt(rr)
		ctheta := 0.0
		if d > precision {
			ctheta = rz / d
		}
		ephi[0] = 1.0
		if proj > precision*d {
			ephi[0] = complex(rx/proj, ry/proj)
		}
		d *= scale
		dd := d

		powers[0] = 1.0
		for ell := 1; ell <= pterms; ell++ {
			powers[ell] = dd
			dd *= d
			ephi[ell] = ephi[ell-1] * ephi[0]
		}

		param.Lgndr(pterms, ctheta, p)
		o.Potential[ptr] += real(local[0])

		field2 := 0.0
		for ell := 1; ell <= pterms; ell++ {
			rloc := real(local[ell])
			cp := rloc * powers[ell] * p[ell]
			o.Potential[ptr] += cp
			cp = powers[ell-1] * p[ell-1] * o.Prm.Ytopcs[ell-1]
			cpz := local[ell+pterms+1] * complex(cp*o.Prm.Ytopcsinv[ell+pterms+1], 0)
			zs2 += cpz
			cp = rloc * cp * o.Prm.Ytopcsinv[ell]
			field2 += cp
		}

		for ell := 1; ell <= pterms; ell++ {
			for m := 1; m <= ell; m++ {
				index := ell + m*(pterms+1)
				cpz := local[index] * ephi[m-1]
				rpotz += real(cpz) * powers[ell] * o.Prm.Ytopc[index] * p[index]
			}
			for m := 1; m <= ell-1; m++ {
				index1 := ell + m*(pterms+1)
				index2 := index1 - 1
				zs3 += local[index1] * ephi[m-1] *
					complex(powers[ell-1]*o.Prm.Ytopc[index2]*p[index2]*o.Prm.Ytopcs[index2]*o.Prm.Ytopcsinv[index1], 0)
			}
			for m := 2; m <= ell; m++ {
				index1 := ell + m*(pterms+1)
				index2 := ell - 1 + (m-1)*(pterms+1)
				zs2 += local[index1] * ephi[m-2] *
					complex(o.Prm.Ytopcs[index2]*o.Prm.Ytopcsinv[index1]*powers[ell-1]*o.Prm.Ytopc[index2]*p[index2], 0)
			}
			for m := 0; m <= ell-2; m++ {
				index1 := ell + m*(pterms+1)
				index2 := ell - 1 + (m+1)*(pterms+1)
				zs1 += local[index1] * ephi[m] *
					complex(o.Prm.Ytopcs[index2]*o.Prm.Ytopcsinv[index1]*powers[ell-1]*o.Prm.Ytopc[index2]*p[index2], 0)
			}
		}

		o.Potential[ptr] += 2.0 * rpotz
		field0 := real(zs2 - zs1)
		field1 := -imag(zs2 + zs1)
		field2 += 2.0 * real(zs3)

		o.Field[3*ptr] += field0 * scale
		o.Field[3*ptr+1] += field1 * scale
		o.Field[3*ptr+2] -= field2 * scale
	}
}
