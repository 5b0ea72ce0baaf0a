// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fmm

// Run executes the task graph: one task per source box for the multipole
// pass, one per source box for the exponential pass, one per target box for
// the local pass. Futures are channels closed on completion; every expansion
// slice has a single writer and writes along an ancestor chain are ordered by
// the parent future, so the outputs do not depend on how many processors run
// the goroutines.
func (o *Solver) Run() {
	nsb := o.Dom.NsBoxes
	ntb := o.Dom.NtBoxes

	o.futMpole = make([]chan struct{}, 1+nsb)
	o.futExpo = make([]chan struct{}, 1+nsb)
	o.futLocal = make([]chan struct{}, 1+ntb)
	for i := 1; i <= nsb; i++ {
		o.futMpole[i] = make(chan struct{})
		o.futExpo[i] = make(chan struct{})
	}
	for i := 1; i <= ntb; i++ {
		o.futLocal[i] = make(chan struct{})
	}

	for i := nsb; i >= 1; i-- {
		go o.computeMultipole(i)
	}
	for i := nsb; i >= 1; i-- {
		go o.computeExponential(i)
	}
	for i := 1; i <= ntb; i++ {
		go o.computeLocal(i)
	}

	for i := 1; i <= ntb; i++ {
		<-o.futLocal[i]
	}
}

// computeMultipole runs S2M on leaves and M2M on internal boxes, after every
// child's multipole is ready
func (o *Solver) computeMultipole(boxid int) {
	defer close(o.futMpole[boxid])
	sbox := o.Dom.SBox[boxid]
	if sbox.Nchild > 0 {
		for i := 0; i < 8; i++ {
			if sbox.Child[i] > 0 {
				<-o.futMpole[sbox.Child[i]]
			}
		}
		o.MultipoleToMultipole(sbox)
		return
	}
	o.SourceToMultipole(sbox)
}

// computeExponential converts a box's finished multipole expansion into its
// six plane-wave expansions
func (o *Solver) computeExponential(boxid int) {
	defer close(o.futExpo[boxid])
	<-o.futMpole[boxid]
	o.MultipoleToExponential(o.Dom.SBox[boxid])
}

// computeLocal runs the downward pass of one target box: scatter the
// colleagues' children exponentials into the children's locals, inherit the
// parent's local, evaluate list 4, and for leaves evaluate the expansion and
// the near-field lists
func (o *Solver) computeLocal(boxid int) {
	defer close(o.futLocal[boxid])
	tbox := o.Dom.TBox[boxid]

	if tbox.Nchild > 0 {
		for _, sid := range tbox.List5 {
			sbox := o.Dom.SBox[sid]
			for j := 0; j < 8; j++ {
				if sbox.Child[j] > 0 {
					<-o.futExpo[sbox.Child[j]]
				}
			}
		}
		o.ExponentialToLocal(tbox)
	}

	if tbox.Parent > 0 {
		<-o.futLocal[tbox.Parent]
		o.LocalToLocal(tbox)
	}

	o.ProcessList4(tbox)

	if tbox.Nchild == 0 {
		o.LocalToTarget(tbox)
		o.ProcessList13(tbox)
	}
}
