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

// SourceToMultipole accumulates the multipole expansion of a source leaf from
// its contained charges
func (o *Solver) SourceToMultipole(ibox *tree.Box) {
	pterms := o.Prm.Pterms
	multipole := o.mpoleOf(ibox.ID)
	scale := o.Scale[ibox.Level]
	x0, y0, z0 := o.boxCenter(ibox)

	precision := 1.0e-14
	powers := make([]float64, pterms+1)
	p := make([]float64, o.Prm.Pgsz)
	ephi := make([]complex128, pterms+1)

	for i := 0; i < ibox.Npts; i++ {
		j := 3 * (ibox.Addr + i)
		q := o.Charges[ibox.Addr+i]
		rx := o.Sources[j] - x0
		ry := o.Sources[j+1] - y0
		rz := o.Sources[j+2] - z0
		proj := rx*rx + ry*ry
		rr := proj + rz*rz
		proj = math.Sqrt(proj)
		d := math.Sqrt(rr)
		ctheta := 1.0
		if d > precision {
			ctheta = rz / d
		}
		ephi[0] = 1.0
		if proj > precision*d {
			ephi[0] = complex(rx/proj, ry/proj)
		}

		d *= scale
		powers[0] = 1.0
		for ell := 1; ell <= pterms; ell++ {
			powers[ell] = powers[ell-1] * d
			ephi[ell] = ephi[ell-1] * ephi[0]
		}

		multipole[0] += complex(q, 0)

		param.Lgndr(pterms, ctheta, p)
		for ell := 1; ell <= pterms; ell++ {
			cp := q * powers[ell] * p[ell]
			multipole[ell] += complex(cp, 0)
		}

		for m := 1; m <= pterms; m++ {
			offset := m * (pterms + 1)
			for ell := m; ell <= pterms; ell++ {
				cp := q * powers[ell] * o.Prm.Ytopc[ell+offset] * p[ell+offset]
				multipole[ell+offset] += complex(cp, 0) * cmplx.Conj(ephi[m-1])
			}
		}
	}
}

// MultipoleToMultipole shifts the children's multipole expansions into the
// parent: rotate the child's octant onto the z-axis, shift along z by half
// the parent size, rotate back, and rescale
func (o *Solver) MultipoleToMultipole(pbox *tree.Box) {
	var vard = [5]complex128{1, -1 + 1i, 1 + 1i, 1 - 1i, -1 - 1i}
	arg := math.Sqrt(2) / 2.0
	pterms := o.Prm.Pterms
	pgsz := o.Prm.Pgsz

	pmultipole := o.mpoleOf(pbox.ID)
	sc1 := o.Scale[pbox.Level+1]
	sc2 := o.Scale[pbox.Level]

	powers := make([]float64, pterms+3)
	mpolen := make([]complex128, pgsz)
	marray := make([]complex128, pgsz)
	ephi := make([]complex128, pterms+3)

	for i := 0; i < 8; i++ {
		child := pbox.Child[i]
		if child == 0 {
			continue
		}
		ifl := iflu[i]
		rd := o.Prm.Rdsq3
		if i >= 4 {
			rd = o.Prm.Rdmsq3
		}
		cmultipole := o.mpoleOf(child)

		ephi[0] = 1.0
		ephi[1] = complex(arg, 0) * vard[ifl]
		dd := -math.Sqrt(3) / 2.0
		powers[0] = 1.0
		for ell := 1; ell <= pterms+1; ell++ {
			powers[ell] = powers[ell-1] * dd
			ephi[ell+1] = ephi[ell] * ephi[1]
		}

		// z-rotation by the octant phase
		for m := 0; m <= pterms; m++ {
			offset := m * (pterms + 1)
			for ell := m; ell <= pterms; ell++ {
				index := ell + offset
				mpolen[index] = cmplx.Conj(ephi[m]) * cmultipole[index]
			}
		}

		// tilt onto the diagonal axis
		for m := 0; m <= pterms; m++ {
			offset := m * (pterms + 1)
			offset1 := (m + pterms) * pgsz
			offset2 := (-m + pterms) * pgsz
			for ell := m; ell <= pterms; ell++ {
				index := offset + ell
				marray[index] = mpolen[ell] * complex(rd[ell+offset1], 0)
				for mp := 1; mp <= ell; mp++ {
					index1 := ell + mp*(pterms+1)
					marray[index] += mpolen[index1]*complex(rd[index1+offset1], 0) +
						cmplx.Conj(mpolen[index1])*complex(rd[index1+offset2], 0)
				}
			}
		}

		// shift along the rotated z-axis
		for k := 0; k <= pterms; k++ {
			offset := k * (pterms + 1)
			for j := k; j <= pterms; j++ {
				index := offset + j
				mpolen[index] = marray[index]
				for ell := 1; ell <= j-k; ell++ {
					index2 := j - k + ell*(2*pterms+1)
					index3 := j + k + ell*(2*pterms+1)
					mpolen[index] += marray[index-ell] * complex(powers[ell]*o.Prm.Dc[index2]*o.Prm.Dc[index3], 0)
				}
			}
		}

		// reverse tilt; the sign flips on odd azimuthal orders fold in the
		// reverse z-rotation
		for m := 0; m <= pterms; m += 2 {
			offset := m * (pterms + 1)
			offset1 := (m + pterms) * pgsz
			offset2 := (-m + pterms) * pgsz
			for ell := m; ell <= pterms; ell++ {
				index := ell + offset
				marray[index] = mpolen[ell] * complex(rd[ell+offset1], 0)
				for mp := 1; mp <= ell; mp += 2 {
					index1 := ell + mp*(pterms+1)
					marray[index] -= mpolen[index1]*complex(rd[index1+offset1], 0) +
						cmplx.Conj(mpolen[index1])*complex(rd[index1+offset2], 0)
				}
				for mp := 2; mp <= ell; mp += 2 {
					index1 := ell + mp*(pterms+1)
					marray[index] += mpolen[index1]*complex(rd[index1+offset1], 0) +
						cmplx.Conj(mpolen[index1])*complex(rd[index1+offset2], 0)
				}
			}
		}
		for m := 1; m <= pterms; m += 2 {
			offset := m * (pterms + 1)
			offset1 := (m + pterms) * pgsz
			offset2 := (-m + pterms) * pgsz
			for ell := m; ell <= pterms; ell++ {
				index := ell + offset
				marray[index] = -mpolen[ell] * complex(rd[ell+offset1], 0)
				for mp := 1; mp <= ell; mp += 2 {
					index1 := ell + mp*(pterms+1)
					marray[index] += mpolen[index1]*complex(rd[index1+offset1], 0) +
						cmplx.Conj(mpolen[index1])*complex(rd[index1+offset2], 0)
				}
				for mp := 2; mp <= ell; mp += 2 {
					index1 := ell + mp*(pterms+1)
					marray[index] -= mpolen[index1]*complex(rd[index1+offset1], 0) +
						cmplx.Conj(mpolen[index1])*complex(rd[index1+offset2], 0)
				}
			}
		}

		// undo the octant phase and rescale
		powers[0] = 1.0
		dd = sc2 / sc1
		for ell := 1; ell <= pterms+1; ell++ {
			powers[ell] = powers[ell-1] * dd
		}
		for m := 0; m <= pterms; m++ {
			offset := m * (pterms + 1)
			for ell := m; ell <= pterms; ell++ {
				index := ell + offset
				mpolen[index] = ephi[m] * marray[index] * complex(powers[ell], 0)
			}
		}

		for m := 0; m < pgsz; m++ {
			pmultipole[m] += mpolen[m]
		}
	}
}
