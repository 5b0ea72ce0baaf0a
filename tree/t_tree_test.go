// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/gosl/utl"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// gen_cloud returns n random points inside the unit cube
func gen_cloud(n int, seed int) (pts []float64) {
	rnd.Init(seed)
	pts = make([]float64, 3*n)
	for i := range pts {
		pts[i] = rnd.Float64(-0.5, 0.5)
	}
	return
}

func Test_tree01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tree01. dual tree invariants")

	pts := gen_cloud(2000, 1234)
	dom, err := BuildDomain(pts, pts, 20)
	if err != nil {
		tst.Errorf("BuildDomain failed:\n%v", err)
		return
	}

	io.Pforan("nsboxes=%v ntboxes=%v levels=%v\n", dom.NsBoxes, dom.NtBoxes, dom.NsLev)
	if dom.NsLev < 1 {
		tst.Errorf("cloud of 2000 points with s=20 must refine at least once")
		return
	}

	// grid indices of children and partition of the point slices
	check_tree := func(levels [][]Box, boxptr []*Box, label string) {
		for lev := range levels {
			for i := range levels[lev] {
				b := &levels[lev][i]
				if b.Parent > 0 {
					p := boxptr[b.Parent]
					found := false
					for k := 0; k < 8; k++ {
						if p.Child[k] == b.ID {
							found = true
							chk.IntAssert(b.Ix, 2*p.Ix+Xoff[k])
							chk.IntAssert(b.Iy, 2*p.Iy+Yoff[k])
							chk.IntAssert(b.Iz, 2*p.Iz+Zoff[k])
						}
					}
					if !found {
						tst.Errorf("%s box %d missing from its parent's children", label, b.ID)
						return
					}
				}
				if b.Nchild > 0 {
					npts, addr := 0, -1
					for k := 0; k < 8; k++ {
						if b.Child[k] > 0 {
							c := boxptr[b.Child[k]]
							if addr < 0 {
								chk.IntAssert(c.Addr, b.Addr)
							} else {
								chk.IntAssert(c.Addr, addr)
							}
							addr = c.Addr + c.Npts
							npts += c.Npts
						}
					}
					chk.IntAssert(npts, b.Npts)
				}
			}
		}
	}
	check_tree(dom.SLevels, dom.SBox, "source")
	check_tree(dom.TLevels, dom.TBox, "target")

	// box ids are dense and per-level ranges are contiguous
	var ids []int
	for lev := 0; lev <= dom.NsLev; lev++ {
		for i := range dom.SLevels[lev] {
			ids = append(ids, dom.SLevels[lev][i].ID)
		}
	}
	chk.Ints(tst, "source ids", ids, utl.IntRange2(1, dom.NsBoxes+1))

	// colleagues are same-level adjacent boxes and, since sources and targets
	// coincide here, include the co-located source box
	for id := 1; id <= dom.NtBoxes; id++ {
		t := dom.TBox[id]
		self := false
		for _, sid := range t.List5 {
			s := dom.SBox[sid]
			chk.IntAssert(s.Level, t.Level)
			if !IsAdjacent(t, s) {
				tst.Errorf("colleague %d of box %d is not adjacent", sid, id)
				return
			}
			if s.Ix == t.Ix && s.Iy == t.Iy && s.Iz == t.Iz {
				self = true
			}
		}
		if t.Npts > 0 && !self {
			tst.Errorf("list5 of box %d misses the co-located source box", id)
			return
		}
	}
}

func Test_tree02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tree02. lists 1, 3 and 4")

	rnd.Init(4321)
	src := gen_cloud(3000, 43)
	tar := gen_cloud(1500, 44)
	dom, err := BuildDomain(src, tar, 30)
	if err != nil {
		tst.Errorf("BuildDomain failed:\n%v", err)
		return
	}

	for id := 1; id <= dom.NtBoxes; id++ {
		t := dom.TBox[id]

		// list 1 holds only adjacent source leaves
		for _, sid := range t.List1 {
			s := dom.SBox[sid]
			chk.IntAssert(s.Nchild, 0)
			if s.Level >= t.Level {
				if !IsAdjacent(t, s) {
					tst.Errorf("list1 box %d not adjacent to %d", sid, id)
					return
				}
			} else if !IsAdjacent(s, t) {
				tst.Errorf("coarse list1 box %d not adjacent to %d", sid, id)
				return
			}
		}

		// lists 3 and 4 hold only non-adjacent boxes
		for _, sid := range t.List3 {
			if IsAdjacent(t, dom.SBox[sid]) {
				tst.Errorf("list3 box %d adjacent to %d", sid, id)
				return
			}
		}
		for _, sid := range t.List4 {
			if IsAdjacent(dom.SBox[sid], t) {
				tst.Errorf("list4 box %d adjacent to %d", sid, id)
				return
			}
		}
	}

	// each (source, target) pair is accounted at most once by the direct
	// lists along any root-to-leaf path
	for id := 1; id <= dom.NtBoxes; id++ {
		t := dom.TBox[id]
		if t.Nchild > 0 {
			continue
		}
		seen := make(map[int]bool)
		mark := func(sid int) {
			s := dom.SBox[sid]
			for i := s.Addr; i < s.Addr+s.Npts; i++ {
				if seen[i] {
					tst.Errorf("source point %d covered twice for leaf %d", i, id)
				}
				seen[i] = true
			}
		}
		for _, sid := range t.List1 {
			mark(sid)
		}
		for _, sid := range t.List3 {
			mark(sid)
		}
		for b := t; b != nil; {
			for _, sid := range b.List4 {
				mark(sid)
			}
			if b.Parent == 0 {
				break
			}
			b = dom.TBox[b.Parent]
		}
		if tst.Failed() {
			return
		}
	}
}

func Test_tree03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tree03. degenerate clouds")

	// coincident points beyond the leaf capacity cannot be split
	pts := make([]float64, 3*50)
	_, err := BuildDomain(pts, pts, 8)
	if err == nil {
		tst.Errorf("coincident points must raise an error")
		return
	}
	io.Pforan("expected failure: %v\n", err)

	// collinear and coplanar clouds refine normally
	rnd.Init(77)
	n := 600
	line := make([]float64, 3*n)
	plane := make([]float64, 3*n)
	for i := 0; i < n; i++ {
		line[3*i] = rnd.Float64(0, 1)
		plane[3*i] = rnd.Float64(0, 1)
		plane[3*i+1] = rnd.Float64(0, 1)
	}
	_, err = BuildDomain(line, line, 10)
	if err != nil {
		tst.Errorf("collinear cloud failed:\n%v", err)
		return
	}
	_, err = BuildDomain(plane, plane, 10)
	if err != nil {
		tst.Errorf("coplanar cloud failed:\n%v", err)
		return
	}
}

func Test_merged01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("merged01. directional merged lists")

	pts := gen_cloud(4000, 99)
	dom, err := BuildDomain(pts, pts, 30)
	if err != nil {
		tst.Errorf("BuildDomain failed:\n%v", err)
		return
	}

	nchecked := 0
	for id := 1; id <= dom.NtBoxes; id++ {
		t := dom.TBox[id]
		if t.Nchild == 0 {
			continue
		}
		m := dom.BuildMergedLists(t)
		lists := []*List{
			&m.Uall, &m.U1234, &m.Dall, &m.D5678,
			&m.Nall, &m.N1256, &m.N12, &m.N56,
			&m.Sall, &m.S3478, &m.S34, &m.S78,
			&m.Eall, &m.E1357, &m.E13, &m.E57, &m.E1, &m.E3, &m.E5, &m.E7,
			&m.Wall, &m.W2468, &m.W24, &m.W68, &m.W2, &m.W4, &m.W6, &m.W8,
		}

		// every dispatched box is a child of a non-co-located colleague, and
		// the phase offsets index the pre-cubed shift tables
		members := make(map[int]int)
		for _, l := range lists {
			for i, b := range l.B {
				members[b]++
				if l.X[i] < -2 || l.X[i] > 3 || l.Y[i] < -2 || l.Y[i] > 3 {
					tst.Errorf("phase offset out of range for box %d", b)
					return
				}
			}
		}
		for _, sid := range t.List5 {
			s := dom.SBox[sid]
			offset := s.Ix != t.Ix || s.Iy != t.Iy || s.Iz != t.Iz
			for k := 0; k < 8; k++ {
				if s.Child[k] > 0 {
					if offset && members[s.Child[k]] < 1 {
						tst.Errorf("child %d of colleague %d missing from the merged lists", s.Child[k], sid)
						return
					}
					delete(members, s.Child[k])
				}
			}
		}
		if len(members) > 0 {
			tst.Errorf("merged lists of box %d hold boxes that are not colleague children", id)
			return
		}
		nchecked++
	}
	io.Pforan("checked %v internal boxes\n", nchecked)
	if nchecked == 0 {
		tst.Errorf("no internal boxes checked")
	}
}
