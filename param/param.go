// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package param implements the precomputed coefficient tables of the fast
// multipole method. A Param value depends only on the requested accuracy, is
// immutable after construction, and may be shared by concurrent solves.
package param

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"
)

// Param holds every table required by the translation operators
type Param struct {

	// sizes
	Pterms   int // order of the multipole/local expansions
	Nlambs   int // number of terms in the exponential expansion
	Pgsz     int // (Pterms+1)^2, stride of one packed expansion
	Nexptot  int // total number of Fourier modes over all lambda rings
	Nthmax   int // largest number of Fourier modes on one ring
	Nexptotp int // number of retained physical plane-wave directions
	Nexpmax  int // buffer bound: max(Nexptot, Nexptotp) + 1

	// quadrature
	Numphys []int     // physical modes per lambda ring
	Numfour []int     // Fourier modes per lambda ring
	Rlams   []float64 // quadrature nodes
	Whts    []float64 // quadrature weights

	// rotations and shifts
	Rdplus  []float64 // Wigner small-d matrix, angle +pi/2
	Rdminus []float64 // Wigner small-d matrix, angle -pi/2
	Rdsq3   []float64 // Wigner small-d matrix, angle acos(sqrt(3)/3)
	Rdmsq3  []float64 // Wigner small-d matrix, angle acos(-sqrt(3)/3)
	Dc      []float64 // square roots of binomial coefficients

	// normalizations
	Ytopc     []float64 // sqrt((l-m)!/(l+m)!)
	Ytopcs    []float64 // 1/sqrt((l-m)!(l+m)!)
	Ytopcsinv []float64 // sqrt((l-m)!(l+m)!)
	Rlsc      []float64 // lambda^l / sqrt((l-m)!(l+m)!) per ring

	// plane-wave shift tables, pre-cubed: entry 3j+k holds the (k+1)-th power
	Zs []float64    // exp(-lambda)
	Xs []complex128 // exp(i lambda cos(alpha))
	Ys []complex128 // exp(i lambda sin(alpha))

	// Fourier-physical merge coefficients
	Fexpe    []complex128
	Fexpo    []complex128
	Fexpback []complex128
}

// New builds the tables for the given accuracy. Only accuracies 3 and 6 are
// supported (three resp. six correct digits).
func New(accuracy int) (o *Param, err error) {
	o = new(Param)
	switch accuracy {
	case 3:
		o.Pterms, o.Nlambs, o.Pgsz = 9, 9, 100
	case 6:
		o.Pterms, o.Nlambs, o.Pgsz = 18, 18, 361
	default:
		return nil, chk.Err("accuracy=%d is not available; use 3 or 6", accuracy)
	}

	o.Numphys = make([]int, o.Nlambs)
	o.Numfour = make([]int, o.Nlambs)
	o.Whts = make([]float64, o.Nlambs)
	o.Rlams = make([]float64, o.Nlambs)

	n := o.Pgsz * (2*o.Pterms + 1)
	o.Rdplus = make([]float64, n)
	o.Rdminus = make([]float64, n)
	o.Rdsq3 = make([]float64, n)
	o.Rdmsq3 = make([]float64, n)
	n = (2*o.Pterms + 1) * (2*o.Pterms + 1) * (2*o.Pterms + 1)
	o.Dc = make([]float64, n)

	o.Ytopc = make([]float64, o.Pgsz)
	o.Ytopcs = make([]float64, o.Pgsz)
	o.Ytopcsinv = make([]float64, o.Pgsz)
	o.Rlsc = make([]float64, o.Pgsz*o.Nlambs)

	o.frmini()
	o.rotgen()
	o.vwts()
	o.numthetahalf()
	o.numthetafour()
	o.rlscini()

	for i := 0; i < o.Nlambs; i++ {
		o.Nexptot += o.Numfour[i]
		if o.Numfour[i] > o.Nthmax {
			o.Nthmax = o.Numfour[i]
		}
		o.Nexptotp += o.Numphys[i]
	}
	o.Nexptotp /= 2
	o.Nexpmax = o.Nexptot
	if o.Nexptotp > o.Nexpmax {
		o.Nexpmax = o.Nexptotp
	}
	o.Nexpmax++

	o.Xs = make([]complex128, o.Nexpmax*3)
	o.Ys = make([]complex128, o.Nexpmax*3)
	o.Zs = make([]float64, o.Nexpmax*3)

	// merge-table bounds follow from the mode counts
	nexte, nexto := 0, 0
	for i := 0; i < o.Nlambs; i++ {
		nexte += o.Numphys[i] / 2 * (o.Numfour[i] / 2)
		nexto += o.Numphys[i] / 2 * ((o.Numfour[i] - 1) / 2)
	}
	o.Fexpe = make([]complex128, nexte)
	o.Fexpo = make([]complex128, nexto)
	o.Fexpback = make([]complex128, nexte+nexto)

	o.mkfexp()
	o.mkexps()
	return
}

// frmini fills the factorial-ratio normalization tables
func (o *Param) frmini() {
	factorial := make([]float64, 1+2*o.Pterms)
	d := 1.0
	factorial[0] = d
	for ell := 1; ell <= 2*o.Pterms; ell++ {
		d *= math.Sqrt(float64(ell))
		factorial[ell] = d
	}
	o.Ytopcs[0] = 1.0
	o.Ytopcsinv[0] = 1.0
	for m := 0; m <= o.Pterms; m++ {
		offset := m * (o.Pterms + 1)
		for ell := m; ell <= o.Pterms; ell++ {
			o.Ytopc[ell+offset] = factorial[ell-m] / factorial[ell+m]
			o.Ytopcsinv[ell+offset] = factorial[ell-m] * factorial[ell+m]
			o.Ytopcs[ell+offset] = 1.0 / o.Ytopcsinv[ell+offset]
		}
	}
}

// rotgen fills the four Wigner rotation matrices
func (o *Param) rotgen() {
	bnlcft(o.Dc, 2*o.Pterms)
	theta := math.Acos(0)
	o.fstrtn(o.Pterms, o.Rdplus, o.Dc, theta)
	o.fstrtn(o.Pterms, o.Rdminus, o.Dc, -theta)
	theta = math.Acos(math.Sqrt(3) / 3)
	o.fstrtn(o.Pterms, o.Rdsq3, o.Dc, theta)
	theta = math.Acos(-math.Sqrt(3) / 3)
	o.fstrtn(o.Pterms, o.Rdmsq3, o.Dc, theta)
}

// bnlcft computes the square roots of the binomial coefficients
func bnlcft(c []float64, p int) {
	for n := 0; n <= p; n++ {
		c[n] = 1.0
	}
	for m := 1; m <= p; m++ {
		offset := m * (p + 1)
		offset1 := offset - p - 1
		c[m+offset] = 1.0
		for n := m + 1; n <= p; n++ {
			c[n+offset] = c[n-1+offset] + c[n-1+offset1]
		}
	}
	for m := 1; m <= p; m++ {
		offset := m * (p + 1)
		for n := m + 1; n <= p; n++ {
			c[n+offset] = math.Sqrt(c[n+offset])
		}
	}
}

// fstrtn evaluates the Wigner small-d rotation matrix of angle theta by the
// standard three-term recursion
func (o *Param) fstrtn(p int, d, sqc []float64, theta float64) {
	precision := 1.0e-19
	ww := math.Sqrt(2) / 2
	ctheta := math.Cos(theta)
	if math.Abs(ctheta) <= precision {
		ctheta = 0.0
	}
	stheta := math.Sin(-theta)
	if math.Abs(stheta) <= precision {
		stheta = 0.0
	}
	hsthta := ww * stheta
	cthtap := ww * (1.0 + ctheta)
	cthtan := -ww * (1.0 - ctheta)
	pgsz := o.Pgsz

	d[p*pgsz] = 1.0

	for ij := 1; ij <= p; ij++ {
		for im := -ij; im <= -1; im++ {
			index := ij + (im+p)*pgsz
			d[index] = -sqc[ij-im+2*(1+2*p)] * d[ij-1+(im+1+p)*pgsz]
			if im > 1-ij {
				d[index] += sqc[ij+im+2*(1+2*p)] * d[ij-1+(im-1+p)*pgsz]
			}
			d[index] *= hsthta
			if im > -ij {
				d[index] += d[ij-1+(im+p)*pgsz] * ctheta * sqc[ij+im+2*p+1] * sqc[ij-im+2*p+1]
			}
			d[index] /= float64(ij)
		}

		d[ij+p*pgsz] = d[ij-1+p*pgsz] * ctheta
		if ij > 1 {
			d[ij+p*pgsz] += hsthta * sqc[ij+2*(1+2*p)] *
				(d[ij-1+(-1+p)*pgsz] + d[ij-1+(1+p)*pgsz]) / float64(ij)
		}

		for im := 1; im <= ij; im++ {
			index := ij + (im+p)*pgsz
			d[index] = -sqc[ij+im+2*(1+2*p)] * d[ij-1+(im-1+p)*pgsz]
			if im < ij-1 {
				d[index] += sqc[ij-im+2*(1+2*p)] * d[ij-1+(im+1+p)*pgsz]
			}
			d[index] *= hsthta
			if im < ij {
				d[index] += d[ij-1+(im+p)*pgsz] * ctheta * sqc[ij+im+2*p+1] * sqc[ij-im+2*p+1]
			}
			d[index] /= float64(ij)
		}

		for imp := 1; imp <= ij; imp++ {
			for im := -ij; im <= -1; im++ {
				index1 := ij + imp*(p+1) + (im+p)*pgsz
				index2 := ij - 1 + (imp-1)*(p+1) + (im+p)*pgsz
				d[index1] = d[index2+pgsz] * cthtan * sqc[ij-im+2*(2*p+1)]
				if im > 1-ij {
					d[index1] -= d[index2-pgsz] * cthtap * sqc[ij+im+2*(2*p+1)]
				}
				if im > -ij {
					d[index1] += d[index2] * stheta * sqc[ij+im+2*p+1] * sqc[ij-im+2*p+1]
				}
				d[index1] *= ww / sqc[ij+imp+2*(2*p+1)]
			}

			index3 := ij + imp*(p+1) + p*pgsz
			index4 := ij - 1 + (imp-1)*(p+1) + p*pgsz
			d[index3] = float64(ij) * stheta * d[index4]
			if ij > 1 {
				d[index3] -= sqc[ij+2*(2*p+1)] * (d[index4-pgsz]*cthtap + d[index4+pgsz]*cthtan)
			}
			d[index3] *= ww / sqc[ij+imp+2*(2*p+1)]

			for im := 1; im <= ij; im++ {
				index5 := ij + imp*(p+1) + (im+p)*pgsz
				index6 := ij - 1 + (imp-1)*(p+1) + (im+p)*pgsz
				d[index5] = d[index6-pgsz] * cthtap * sqc[ij+im+2*(2*p+1)]
				if im < ij-1 {
					d[index5] -= d[index6+pgsz] * cthtan * sqc[ij-im+2*(2*p+1)]
				}
				if im < ij {
					d[index5] += d[index6] * stheta * sqc[ij+im+2*p+1] * sqc[ij-im+2*p+1]
				}
				d[index5] *= ww / sqc[ij+imp+2*(2*p+1)]
			}
		}
	}
}

// rlscini fills lambda^l over the normalization factorials for every ring
func (o *Param) rlscini() {
	factorial := make([]float64, 2*o.Pterms+1)
	rlampow := make([]float64, o.Pterms+1)
	factorial[0] = 1
	for i := 1; i <= 2*o.Pterms; i++ {
		factorial[i] = factorial[i-1] * math.Sqrt(float64(i))
	}
	for nell := 0; nell < o.Nlambs; nell++ {
		rmul := o.Rlams[nell]
		rlampow[0] = 1
		for j := 1; j <= o.Pterms; j++ {
			rlampow[j] = rlampow[j-1] * rmul
		}
		for j := 0; j <= o.Pterms; j++ {
			for k := 0; k <= j; k++ {
				o.Rlsc[j+k*(o.Pterms+1)+nell*o.Pgsz] = rlampow[j] / factorial[j-k] / factorial[j+k]
			}
		}
	}
}

// mkfexp fills the Fourier-physical merge coefficient tables
func (o *Param) mkfexp() {
	nexte, nexto := 0, 0
	for i := 0; i < o.Nlambs; i++ {
		nalpha := o.Numphys[i]
		nalpha2 := nalpha / 2
		halpha := 2.0 * math.Pi / float64(nalpha)
		for j := 1; j <= nalpha2; j++ {
			alpha := float64(j-1) * halpha
			for nm := 2; nm <= o.Numfour[i]; nm += 2 {
				o.Fexpe[nexte] = cmplx.Exp(complex(0, float64(nm-1)*alpha))
				nexte++
			}
			for nm := 3; nm <= o.Numfour[i]; nm += 2 {
				o.Fexpo[nexto] = cmplx.Exp(complex(0, float64(nm-1)*alpha))
				nexto++
			}
		}
	}

	next := 0
	for i := 0; i < o.Nlambs; i++ {
		nalpha := o.Numphys[i]
		nalpha2 := nalpha / 2
		halpha := 2.0 * math.Pi / float64(nalpha)
		for nm := 3; nm <= o.Numfour[i]; nm += 2 {
			for j := 1; j <= nalpha2; j++ {
				alpha := float64(j-1) * halpha
				o.Fexpback[next] = cmplx.Exp(complex(0, -float64(nm-1)*alpha))
				next++
			}
		}
		for nm := 2; nm <= o.Numfour[i]; nm += 2 {
			for j := 1; j <= nalpha2; j++ {
				alpha := float64(j-1) * halpha
				o.Fexpback[next] = cmplx.Exp(complex(0, -float64(nm-1)*alpha))
				next++
			}
		}
	}
}

// mkexps fills the plane-wave shift tables and their squares and cubes
func (o *Param) mkexps() {
	ntot := 0
	for nell := 0; nell < o.Nlambs; nell++ {
		hu := 2.0 * math.Pi / float64(o.Numphys[nell])
		for mth := 0; mth < o.Numphys[nell]/2; mth++ {
			u := float64(mth) * hu
			ncurrent := 3 * (ntot + mth)
			o.Zs[ncurrent] = math.Exp(-o.Rlams[nell])
			o.Zs[ncurrent+1] = o.Zs[ncurrent] * o.Zs[ncurrent]
			o.Zs[ncurrent+2] = o.Zs[ncurrent] * o.Zs[ncurrent+1]
			o.Xs[ncurrent] = cmplx.Exp(complex(0, math.Cos(u)*o.Rlams[nell]))
			o.Xs[ncurrent+1] = o.Xs[ncurrent] * o.Xs[ncurrent]
			o.Xs[ncurrent+2] = o.Xs[ncurrent+1] * o.Xs[ncurrent]
			o.Ys[ncurrent] = cmplx.Exp(complex(0, math.Sin(u)*o.Rlams[nell]))
			o.Ys[ncurrent+1] = o.Ys[ncurrent] * o.Ys[ncurrent]
			o.Ys[ncurrent+2] = o.Ys[ncurrent+1] * o.Ys[ncurrent]
		}
		ntot += o.Numphys[nell] / 2
	}
}

// Lgndr evaluates the associated Legendre functions P_l^m(x) for all
// 0 <= m <= l <= nmax into y, packed as l + m*(nmax+1)
func Lgndr(nmax int, x float64, y []float64) {
	n := (nmax + 1) * (nmax + 1)
	for m := 0; m < n; m++ {
		y[m] = 0.0
	}

	u := -math.Sqrt(1 - x*x)
	y[0] = 1

	y[1] = x * y[0]
	for n := 2; n <= nmax; n++ {
		y[n] = (float64(2*n-1)*x*y[n-1] - float64(n-1)*y[n-2]) / float64(n)
	}

	offset1 := nmax + 2
	for m := 1; m <= nmax-1; m++ {
		offset2 := m * offset1
		y[offset2] = y[offset2-offset1] * u * float64(2*m-1)
		y[offset2+1] = y[offset2] * x * float64(2*m+1)
		for n := m + 2; n <= nmax; n++ {
			offset3 := n + m*(nmax+1)
			y[offset3] = (float64(2*n-1)*x*y[offset3-1] - float64(n+m-1)*y[offset3-2]) / float64(n-m)
		}
	}

	y[nmax+nmax*(nmax+1)] = y[nmax-1+(nmax-1)*(nmax+1)] * u * float64(2*nmax-1)
}

// RotZ2Y rotates a packed expansion taking the z-axis into the y-axis
func (o *Param) RotZ2Y(multipole []complex128, rd []float64, mrotate []complex128) {
	mwork := make([]complex128, o.Pgsz)
	ephi := make([]complex128, o.Pterms+1)

	ephi[0] = 1.0
	for m := 1; m <= o.Pterms; m++ {
		ephi[m] = -ephi[m-1] * complex(0, 1)
	}

	for m := 0; m <= o.Pterms; m++ {
		offset := m * (o.Pterms + 1)
		for ell := m; ell <= o.Pterms; ell++ {
			index := offset + ell
			mwork[index] = ephi[m] * multipole[index]
		}
	}

	for m := 0; m <= o.Pterms; m++ {
		offset := m * (o.Pterms + 1)
		for ell := m; ell <= o.Pterms; ell++ {
			index := ell + offset
			mrotate[index] = mwork[ell] * complex(rd[ell+(m+o.Pterms)*o.Pgsz], 0)
			for mp := 1; mp <= ell; mp++ {
				index1 := ell + mp*(o.Pterms+1)
				mrotate[index] += mwork[index1]*complex(rd[ell+mp*(o.Pterms+1)+(m+o.Pterms)*o.Pgsz], 0) +
					cmplx.Conj(mwork[index1])*complex(rd[ell+mp*(o.Pterms+1)+(-m+o.Pterms)*o.Pgsz], 0)
			}
		}
	}
}

// RotY2Z rotates a packed expansion taking the y-axis back into the z-axis
func (o *Param) RotY2Z(multipole []complex128, rd []float64, mrotate []complex128) {
	mwork := make([]complex128, o.Pgsz)
	ephi := make([]complex128, 1+o.Pterms)

	ephi[0] = 1.0
	for m := 1; m <= o.Pterms; m++ {
		ephi[m] = ephi[m-1] * complex(0, 1)
	}

	for m := 0; m <= o.Pterms; m++ {
		offset := m * (o.Pterms + 1)
		for ell := m; ell <= o.Pterms; ell++ {
			index := ell + offset
			mwork[index] = multipole[ell] * complex(rd[ell+(m+o.Pterms)*o.Pgsz], 0)
			for mp := 1; mp <= ell; mp++ {
				index1 := ell + mp*(o.Pterms+1)
				mwork[index] += multipole[index1]*complex(rd[ell+mp*(o.Pterms+1)+(m+o.Pterms)*o.Pgsz], 0) +
					cmplx.Conj(multipole[index1])*complex(rd[ell+mp*(o.Pterms+1)+(o.Pterms-m)*o.Pgsz], 0)
			}
		}
	}

	for m := 0; m <= o.Pterms; m++ {
		offset := m * (o.Pterms + 1)
		for ell := m; ell <= o.Pterms; ell++ {
			index := ell + offset
			mrotate[index] = ephi[m] * mwork[index]
		}
	}
}

// RotZ2X rotates a packed expansion taking the z-axis into the x-axis
func (o *Param) RotZ2X(multipole []complex128, rd []float64, mrotate []complex128) {
	offset1 := o.Pterms * o.Pgsz
	for m := 0; m <= o.Pterms; m++ {
		offset2 := m * (o.Pterms + 1)
		offset3 := m*o.Pgsz + offset1
		offset4 := -m*o.Pgsz + offset1
		for ell := m; ell <= o.Pterms; ell++ {
			mrotate[ell+offset2] = multipole[ell] * complex(rd[ell+offset3], 0)
			for mp := 1; mp <= ell; mp++ {
				offset5 := mp * (o.Pterms + 1)
				mrotate[ell+offset2] += multipole[ell+offset5]*complex(rd[ell+offset3+offset5], 0) +
					cmplx.Conj(multipole[ell+offset5])*complex(rd[ell+offset4+offset5], 0)
			}
		}
	}
}
