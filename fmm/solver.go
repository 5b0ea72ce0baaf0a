// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fmm implements an adaptive fast multipole solver for the 3-D
// Laplace kernel with diagonal plane-wave translation operators
package fmm

import (
	"math"

	"github.com/cpmech/gofmm/param"
	"github.com/cpmech/gofmm/tree"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// child-octant => quarter-turn phase index; iflu drives the upward
// (multipole) shift, ifld the downward (local) shift
var (
	iflu = [8]int{3, 4, 2, 1, 3, 4, 2, 1}
	ifld = [8]int{1, 2, 4, 3, 1, 2, 4, 3}
)

// Solver carries the state of one solve: trees, reordered points, expansion
// arrays and the task futures. The Param tables are shared and read-only.
type Solver struct {

	// shared, immutable
	Prm *param.Param

	// trees and geometry
	Dom *tree.Domain

	// reordered point data
	Sources []float64 // 3N source coordinates, box order
	Charges []float64 // N charges, box order
	Targets []float64 // 3M target coordinates, box order

	// accumulated results, box order
	Potential []float64 // M potentials
	Field     []float64 // 3M field components

	// per-level scale factors 2^L/size
	Scale []float64

	// expansions, partitioned by box id
	Mpole []complex128 // multipole expansions, stride Pgsz, source boxes
	Local []complex128 // local expansions, stride Pgsz, target boxes
	Expu  []complex128 // plane-wave expansions +z, stride Nexptotp
	Expd  []complex128 // plane-wave expansions -z
	Expn  []complex128 // plane-wave expansions +y
	Exps  []complex128 // plane-wave expansions -y
	Expe  []complex128 // plane-wave expansions +x
	Expw  []complex128 // plane-wave expansions -x

	// futures, closed when the corresponding task has completed
	futMpole []chan struct{}
	futExpo  []chan struct{}
	futLocal []chan struct{}
}

// Solve computes the potential and the field (negative gradient) produced by
// the charged sources at every target.
//  Input:
//   sources  -- 3N flat source coordinates
//   charges  -- N charges
//   targets  -- 3M flat target coordinates
//   accuracy -- 3 or 6 correct digits
//   s        -- leaf capacity: maximum number of points per leaf box
//  Output:
//   outPotential -- M potentials, in the input target order
//   outField     -- 3M field components, in the input target order
func Solve(sources, charges, targets, outPotential, outField []float64, accuracy, s int) (err error) {
	if len(outPotential)*3 != len(targets) || len(outField) != len(targets) {
		return chk.Err("output arrays must hold one potential and three field components per target")
	}
	prm, err := param.New(accuracy)
	if err != nil {
		return
	}
	o, err := NewSolver(prm, sources, charges, targets, s)
	if err != nil {
		return
	}
	o.Run()
	o.Extract(outPotential, outField)
	return
}

// NewSolver builds the dual tree over the given points and allocates the
// expansion storage. prm may be reused across solves of the same accuracy.
func NewSolver(prm *param.Param, sources, charges, targets []float64, s int) (o *Solver, err error) {

	// input
	nsources := len(sources) / 3
	ntargets := len(targets) / 3
	if len(sources) != 3*nsources || len(targets) != 3*ntargets {
		return nil, chk.Err("coordinate arrays must hold 3 values per point")
	}
	if len(charges) != nsources {
		return nil, chk.Err("len(charges)=%d differs from the number of sources %d", len(charges), nsources)
	}

	// trees
	o = new(Solver)
	o.Prm = prm
	o.Dom, err = tree.BuildDomain(sources, targets, s)
	if err != nil {
		return nil, err
	}

	// reorder points so each box owns a contiguous slice
	o.Sources = make([]float64, 3*nsources)
	o.Charges = make([]float64, nsources)
	o.Targets = make([]float64, 3*ntargets)
	o.Potential = make([]float64, ntargets)
	o.Field = make([]float64, 3*ntargets)
	for i := 0; i < nsources; i++ {
		j := o.Dom.MapSrc[i]
		o.Charges[i] = charges[j]
		copy(o.Sources[3*i:3*i+3], sources[3*j:3*j+3])
	}
	for i := 0; i < ntargets; i++ {
		j := o.Dom.MapTar[i]
		copy(o.Targets[3*i:3*i+3], targets[3*j:3*j+3])
	}

	// scale factors. A zero-extent cloud never refines and is handled by the
	// direct lists alone, so any finite scale does.
	o.Scale = make([]float64, 1+o.Dom.NsLev)
	o.Scale[0] = 1
	if o.Dom.Size > 0 {
		o.Scale[0] = 1 / o.Dom.Size
	}
	for i := 1; i <= o.Dom.NsLev; i++ {
		o.Scale[i] = o.Scale[i-1] * 2
	}

	// expansion storage
	pgsz := prm.Pgsz
	nexp := prm.Nexptotp
	o.Mpole = make([]complex128, (1+o.Dom.NsBoxes)*pgsz)
	o.Local = make([]complex128, (1+o.Dom.NtBoxes)*pgsz)
	o.Expu = make([]complex128, (1+o.Dom.NsBoxes)*nexp)
	o.Expd = make([]complex128, (1+o.Dom.NsBoxes)*nexp)
	o.Expn = make([]complex128, (1+o.Dom.NsBoxes)*nexp)
	o.Exps = make([]complex128, (1+o.Dom.NsBoxes)*nexp)
	o.Expe = make([]complex128, (1+o.Dom.NsBoxes)*nexp)
	o.Expw = make([]complex128, (1+o.Dom.NsBoxes)*nexp)

	if io.Verbose {
		io.Pf("fmm: pterms=%d nlambs=%d nexptotp=%d\n", prm.Pterms, prm.Nlambs, prm.Nexptotp)
	}
	return
}

// Extract un-permutes the accumulated results into the input target order
func (o *Solver) Extract(outPotential, outField []float64) {
	for i := range o.Potential {
		j := o.Dom.MapTar[i]
		outPotential[j] = o.Potential[i]
		copy(outField[3*j:3*j+3], o.Field[3*i:3*i+3])
	}
}

// boxCenter returns the centre of a box
func (o *Solver) boxCenter(ibox *tree.Box) (x0, y0, z0 float64) {
	h := o.Dom.Size / math.Pow(2, float64(ibox.Level+1))
	x0 = o.Dom.Corner[0] + float64(2*ibox.Ix+1)*h
	y0 = o.Dom.Corner[1] + float64(2*ibox.Iy+1)*h
	z0 = o.Dom.Corner[2] + float64(2*ibox.Iz+1)*h
	return
}

// mpoleOf returns the multipole expansion slice of a source box
func (o *Solver) mpoleOf(boxid int) []complex128 {
	return o.Mpole[o.Prm.Pgsz*boxid : o.Prm.Pgsz*(boxid+1)]
}

// localOf returns the local expansion slice of a target box
func (o *Solver) localOf(boxid int) []complex128 {
	return o.Local[o.Prm.Pgsz*boxid : o.Prm.Pgsz*(boxid+1)]
}
