// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

// IsAdjacent tells whether box2 touches box1. box2 must not be coarser than
// box1: with d = 2^(L2-L1), the boxes are adjacent iff box2's grid index lies
// within [d*i - 1, d*i + d] on every axis.
func IsAdjacent(box1, box2 *Box) bool {
	dim := 1 << uint(box2.Level-box1.Level)
	return box2.Ix >= dim*box1.Ix-1 && box2.Ix <= dim*box1.Ix+dim &&
		box2.Iy >= dim*box1.Iy-1 && box2.Iy <= dim*box1.Iy+dim &&
		box2.Iz >= dim*box1.Iz-1 && box2.Iz <= dim*box1.Iz+dim
}

// buildList134 splits the parent's list 1 into the still-adjacent part and
// list 4, then finishes list 1 (and list 3 for leaves) and recurses over the
// target children.
func (o *Domain) buildList134(boxid int) {
	tbox := o.TBox[boxid]
	parent := o.TBox[tbox.Parent]

	var list1, list4 []int
	for _, sid := range parent.List1 {
		sbox := o.SBox[sid]
		if IsAdjacent(sbox, tbox) {
			list1 = append(list1, sbox.ID)
		} else {
			list4 = append(list4, sbox.ID)
		}
	}
	tbox.List4 = list4

	if tbox.Nchild > 0 {
		// childless colleagues are source leaves adjacent at this level
		for _, sid := range tbox.List5 {
			if o.SBox[sid].Nchild == 0 {
				list1 = append(list1, sid)
			}
		}
		tbox.List1 = list1
		for j := 0; j < 8; j++ {
			if tbox.Child[j] > 0 {
				o.buildList134(tbox.Child[j])
			}
		}
		return
	}

	o.buildList13(boxid, list1)
}

// buildList13 descends every colleague of the leaf tbox: adjacent source
// leaves go to list 1, the first non-adjacent descendants to list 3. The
// coarse-level adjacents inherited from the parent precede the fresh entries.
func (o *Domain) buildList13(boxid int, coarse []int) {
	tbox := o.TBox[boxid]
	var list1, list3 []int
	for _, sid := range tbox.List5 {
		list1, list3 = o.buildList13FromBox(tbox, o.SBox[sid], list1, list3)
	}
	if len(coarse)+len(list1) > 0 {
		tbox.List1 = append(append([]int{}, coarse...), list1...)
	}
	tbox.List3 = list3
}

func (o *Domain) buildList13FromBox(tbox, sbox *Box, list1, list3 []int) ([]int, []int) {
	if IsAdjacent(tbox, sbox) {
		if sbox.Nchild > 0 {
			for j := 0; j < 8; j++ {
				if sbox.Child[j] > 0 {
					list1, list3 = o.buildList13FromBox(tbox, o.SBox[sbox.Child[j]], list1, list3)
				}
			}
		} else {
			list1 = append(list1, sbox.ID)
		}
	} else {
		list3 = append(list3, sbox.ID)
	}
	return list1, list3
}
