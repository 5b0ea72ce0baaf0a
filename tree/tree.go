// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tree implements the dual adaptive octree and the interaction lists
// of the fast multipole method
package tree

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// MAXLEV is the hard cap on the refinement depth. Reaching it means the input
// holds more coincident (or nearly coincident) points than one leaf may carry.
const MAXLEV = 128

// octant offset tables. the bit-index i of a child encodes its octant as
// (Xoff[i], Yoff[i], Zoff[i])
var (
	Xoff = [8]int{0, 1, 0, 1, 0, 1, 0, 1}
	Yoff = [8]int{0, 0, 1, 1, 0, 0, 1, 1}
	Zoff = [8]int{0, 0, 0, 0, 1, 1, 1, 1}
)

// Box is a node of the source or target octree
type Box struct {
	Level  int    // refinement level; 0 is the root
	ID     int    // global box id, densely assigned in construction order
	Parent int    // parent box id; 0 for the root
	Child  [8]int // child box ids; 0 where the octant is empty
	Nchild int    // number of non-empty children
	Ix     int    // integer grid coordinate at Level, x-direction
	Iy     int    // integer grid coordinate at Level, y-direction
	Iz     int    // integer grid coordinate at Level, z-direction
	Npts   int    // number of points contained in the box
	Addr   int    // offset of the first contained point in the permuted arrays
	List1  []int  // adjacent source leaves (target boxes only)
	List3  []int  // non-adjacent descendants of colleagues (target boxes only)
	List4  []int  // coarser boxes adjacent to the parent but not to this box
	List5  []int  // same-level adjacent source boxes (colleagues)
}

// Domain holds the source and target trees built over one point set pair
type Domain struct {

	// geometry
	Size   float64    // side length of the bounding cube
	Corner [3]float64 // low corner of the bounding cube

	// trees
	NsLev   int     // deepest level of the source tree
	NsBoxes int     // total number of source boxes
	NtLev   int     // deepest level of the target tree
	NtBoxes int     // total number of target boxes
	SLevels [][]Box // source boxes, per level
	TLevels [][]Box // target boxes, per level
	SBox    []*Box  // source box id => box
	TBox    []*Box  // target box id => box

	// permutations: position in the reordered arrays => original index
	MapSrc []int
	MapTar []int

	// scratch used during construction
	swap   []int
	record []int
}

// BuildDomain partitions sources and targets into the dual octree. A target
// box is subdivided iff it holds more than s points and at least one of its
// colleague source boxes does too; the same colleagues are subdivided
// symmetrically. Lists 1, 3 and 4 are built once refinement terminates.
func BuildDomain(sources, targets []float64, s int) (o *Domain, err error) {

	// input
	nsources := len(sources) / 3
	ntargets := len(targets) / 3
	if nsources < 1 || ntargets < 1 {
		return nil, chk.Err("at least one source and one target are required")
	}
	if s < 1 {
		return nil, chk.Err("leaf capacity s=%d must be positive", s)
	}

	// bounding cube enclosing sources and targets
	o = new(Domain)
	xmin, xmax := sources[0], sources[0]
	ymin, ymax := sources[1], sources[1]
	zmin, zmax := sources[2], sources[2]
	for i := 1; i < nsources; i++ {
		j := 3 * i
		xmin, xmax = min(xmin, sources[j]), max(xmax, sources[j])
		ymin, ymax = min(ymin, sources[j+1]), max(ymax, sources[j+1])
		zmin, zmax = min(zmin, sources[j+2]), max(zmax, sources[j+2])
	}
	for i := 0; i < ntargets; i++ {
		j := 3 * i
		xmin, xmax = min(xmin, targets[j]), max(xmax, targets[j])
		ymin, ymax = min(ymin, targets[j+1]), max(ymax, targets[j+1])
		zmin, zmax = min(zmin, targets[j+2]), max(zmax, targets[j+2])
	}
	o.Size = max(max(xmax-xmin, ymax-ymin), zmax-zmin)
	o.Corner[0] = (xmax + xmin - o.Size) * 0.5
	o.Corner[1] = (ymax + ymin - o.Size) * 0.5
	o.Corner[2] = (zmax + zmin - o.Size) * 0.5

	// identity permutations
	o.MapSrc = make([]int, nsources)
	o.MapTar = make([]int, ntargets)
	for i := 0; i < nsources; i++ {
		o.MapSrc[i] = i
	}
	for i := 0; i < ntargets; i++ {
		o.MapTar[i] = i
	}
	nscratch := nsources
	if ntargets > nscratch {
		nscratch = ntargets
	}
	o.swap = make([]int, nscratch)
	o.record = make([]int, nscratch)

	// roots. the root target's colleague list holds the root source
	o.SLevels = make([][]Box, 1, 8)
	o.TLevels = make([][]Box, 1, 8)
	o.NsBoxes++
	o.SLevels[0] = []Box{{ID: o.NsBoxes, Npts: nsources}}
	o.NtBoxes++
	o.TLevels[0] = []Box{{ID: o.NtBoxes, Npts: ntargets, List5: []int{1}}}

	// level-synchronous dual refinement
	ns, nt := 1, 1
	h := o.Size
	for lev := 0; ; lev++ {
		if lev == MAXLEV {
			return nil, chk.Err("too many levels of partitions have been attempted; the input has more than s=%d coincident points", s)
		}

		// dual criterion: mark target boxes and their populous colleagues
		sbox0 := o.SLevels[lev][0].ID
		mp := false
		for ibox := 0; ibox < nt; ibox++ {
			tbox := &o.TLevels[lev][ibox]
			if tbox.Npts > s && tbox.List5 != nil {
				for _, sid := range tbox.List5 {
					sbox := &o.SLevels[lev][sid-sbox0]
					if sbox.Npts > s {
						tbox.Nchild = 1
						sbox.Nchild = 1
						mp = true
					}
				}
			}
		}

		h /= 2

		if !mp {
			o.NsLev = lev
			o.NtLev = lev
			break
		}

		// split marked source boxes and emit their children
		for ibox := 0; ibox < ns; ibox++ {
			if o.SLevels[lev][ibox].Nchild > 0 {
				o.partitionBox(&o.SLevels[lev][ibox], sources, o.MapSrc, h)
			}
		}
		nns := 0
		for ibox := 0; ibox < ns; ibox++ {
			nns += o.SLevels[lev][ibox].Nchild
		}
		o.SLevels = append(o.SLevels, make([]Box, nns))
		iter := 0
		for ibox := 0; ibox < ns; ibox++ {
			pbox := &o.SLevels[lev][ibox]
			if pbox.Nchild > 0 {
				offset := 0
				for i := 0; i < 8; i++ {
					if pbox.Child[i] > 0 {
						cbox := &o.SLevels[lev+1][iter]
						o.NsBoxes++
						cbox.Level = lev + 1
						cbox.ID = o.NsBoxes
						cbox.Parent = pbox.ID
						cbox.Ix = 2*pbox.Ix + Xoff[i]
						cbox.Iy = 2*pbox.Iy + Yoff[i]
						cbox.Iz = 2*pbox.Iz + Zoff[i]
						cbox.Npts = pbox.Child[i]
						cbox.Addr = pbox.Addr + offset
						offset += cbox.Npts
						pbox.Child[i] = cbox.ID
						iter++
					}
				}
			}
		}
		ns = nns

		// split marked target boxes and emit their children
		for ibox := 0; ibox < nt; ibox++ {
			if o.TLevels[lev][ibox].Nchild > 0 {
				o.partitionBox(&o.TLevels[lev][ibox], targets, o.MapTar, h)
			}
		}
		nnt := 0
		for ibox := 0; ibox < nt; ibox++ {
			nnt += o.TLevels[lev][ibox].Nchild
		}
		o.TLevels = append(o.TLevels, make([]Box, nnt))
		iter = 0
		for ibox := 0; ibox < nt; ibox++ {
			pbox := &o.TLevels[lev][ibox]
			if pbox.Nchild > 0 {
				offset := 0
				for i := 0; i < 8; i++ {
					if pbox.Child[i] > 0 {
						cbox := &o.TLevels[lev+1][iter]
						o.NtBoxes++
						cbox.Level = lev + 1
						cbox.ID = o.NtBoxes
						cbox.Parent = pbox.ID
						cbox.Ix = 2*pbox.Ix + Xoff[i]
						cbox.Iy = 2*pbox.Iy + Yoff[i]
						cbox.Iz = 2*pbox.Iz + Zoff[i]
						cbox.Npts = pbox.Child[i]
						cbox.Addr = pbox.Addr + offset
						offset += cbox.Npts
						pbox.Child[i] = cbox.ID
						iter++
					}
				}
			}
		}

		// colleague lists of the fresh target children: same-level source
		// children of the parent's colleagues within one grid cell
		tbox0 := o.TLevels[lev][0].ID
		for ibox := 0; ibox < nnt; ibox++ {
			tbox := &o.TLevels[lev+1][ibox]
			pbox := &o.TLevels[lev][tbox.Parent-tbox0]
			var list5 []int
			for _, sid := range pbox.List5 {
				sbox := &o.SLevels[lev][sid-sbox0]
				for k := 0; k < 8; k++ {
					child := sbox.Child[k]
					if child > 0 {
						cbox := &o.SLevels[lev+1][child-o.SLevels[lev+1][0].ID]
						if iabs(tbox.Ix-cbox.Ix) <= 1 && iabs(tbox.Iy-cbox.Iy) <= 1 && iabs(tbox.Iz-cbox.Iz) <= 1 {
							list5 = append(list5, child)
						}
					}
				}
			}
			tbox.List5 = list5
		}
		nt = nnt
	}

	// flat id => box tables; per-level id ranges are contiguous
	o.SBox = make([]*Box, 1+o.NsBoxes)
	o.TBox = make([]*Box, 1+o.NtBoxes)
	for lev := 0; lev <= o.NsLev; lev++ {
		for i := range o.SLevels[lev] {
			o.SBox[o.SLevels[lev][i].ID] = &o.SLevels[lev][i]
		}
	}
	for lev := 0; lev <= o.NtLev; lev++ {
		for i := range o.TLevels[lev] {
			o.TBox[o.TLevels[lev][i].ID] = &o.TLevels[lev][i]
		}
	}

	// lists 1, 3 and 4 over the finished trees. An unrefined root is a leaf
	// and collects the whole source tree into its own lists.
	root := o.TBox[1]
	if root.Nchild == 0 {
		o.buildList13(1, nil)
	}
	for i := 0; i < 8; i++ {
		if root.Child[i] > 0 {
			o.buildList134(root.Child[i])
		}
	}

	o.swap = nil
	o.record = nil

	if io.Verbose {
		io.Pf("tree: %d source boxes (%d levels), %d target boxes (%d levels)\n",
			o.NsBoxes, o.NsLev+1, o.NtBoxes, o.NtLev+1)
	}
	return
}

// partitionBox buckets the points of ibox into its eight octants and reorders
// the permutation so each bucket is contiguous. On return Child[k] holds the
// bucket cardinalities; they are replaced by box ids when the children are
// emitted.
func (o *Domain) partitionBox(ibox *Box, points []float64, imap []int, h float64) {
	npoints := ibox.Npts
	begin := ibox.Addr
	xc := o.Corner[0] + float64(2*ibox.Ix+1)*h
	yc := o.Corner[1] + float64(2*ibox.Iy+1)*h
	zc := o.Corner[2] + float64(2*ibox.Iz+1)*h

	for i := 0; i < 8; i++ {
		ibox.Child[i] = 0
	}

	var addrs, assigned [8]int
	for i := 0; i < npoints; i++ {
		j := 3 * imap[begin+i]
		bin := 0
		if points[j+2] > zc {
			bin += 4
		}
		if points[j+1] > yc {
			bin += 2
		}
		if points[j] > xc {
			bin++
		}
		ibox.Child[bin]++
		o.record[begin+i] = bin
	}

	for i := 1; i < 8; i++ {
		addrs[i] = addrs[i-1] + ibox.Child[i-1]
	}
	for i := 0; i < npoints; i++ {
		bin := o.record[begin+i]
		o.swap[begin+addrs[bin]+assigned[bin]] = imap[begin+i]
		assigned[bin]++
	}
	copy(imap[begin:begin+npoints], o.swap[begin:begin+npoints])

	ibox.Nchild = 0
	for i := 0; i < 8; i++ {
		if ibox.Child[i] > 0 {
			ibox.Nchild++
		}
	}
}

func iabs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
