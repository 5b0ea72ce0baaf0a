// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

// List is one directional merged list: source child box ids together with the
// per-entry plane-wave phase offsets. Offsets lie in {-2,...,3}; positive k
// selects the k-th power of the tabulated shift, negative k its conjugate,
// zero no shift at all.
type List struct {
	B []int // source child box ids
	X []int // x-direction phase offsets
	Y []int // y-direction phase offsets
}

func (o *List) add(boxid, ix, iy int) {
	o.B = append(o.B, boxid)
	o.X = append(o.X, ix)
	o.Y = append(o.Y, iy)
}

// N returns the number of entries
func (o *List) N() int { return len(o.B) }

// MergedLists holds the twenty-eight directional partial-sum lists feeding the
// exponential-to-local translation of one target box
type MergedLists struct {
	Uall, U1234                            List
	Dall, D5678                            List
	Nall, N1256, N12, N56                  List
	Sall, S3478, S34, S78                  List
	Eall, E1357, E13, E57, E1, E3, E5, E7  List
	Wall, W2468, W24, W68, W2, W4, W6, W8  List
}

// BuildMergedLists dispatches every child of every colleague of tbox into the
// directional lists. The 27 offsets (the zero offset contributes nothing) each
// hand-pick the receiving lists and phases; the enumeration must not be
// altered.
func (o *Domain) BuildMergedLists(tbox *Box) (m *MergedLists) {
	m = new(MergedLists)
	for _, sid := range tbox.List5 {
		sbox := o.SBox[sid]
		offset := 9*(sbox.Iz-tbox.Iz) + 3*(sbox.Iy-tbox.Iy) + (sbox.Ix - tbox.Ix) + 13
		c := &sbox.Child

		switch offset {

		case 0: // (-1,-1,-1)
			if c[0] > 0 {
				m.Dall.add(c[0], -2, -2)
			}
			if c[1] > 0 {
				m.Dall.add(c[1], -1, -2)
			}
			if c[2] > 0 {
				m.Dall.add(c[2], -2, -1)
			}
			if c[3] > 0 {
				m.Dall.add(c[3], -1, -1)
			}
			if c[4] > 0 {
				m.Sall.add(c[4], -1, -2)
			}
			if c[5] > 0 {
				m.Sall.add(c[5], -1, -1)
			}
			if c[6] > 0 {
				m.Wall.add(c[6], 1, -1)
			}
			if c[7] > 0 {
				m.D5678.add(c[7], -1, -1)
				m.S34.add(c[7], -1, -1)
				m.W2.add(c[7], 1, -1)
			}

		case 1: // (0,-1,-1)
			if c[0] > 0 {
				m.Dall.add(c[0], 0, -2)
			}
			if c[1] > 0 {
				m.Dall.add(c[1], 1, -2)
			}
			if c[2] > 0 {
				m.Dall.add(c[2], 0, -1)
			}
			if c[3] > 0 {
				m.Dall.add(c[3], 1, -1)
			}
			if c[4] > 0 {
				m.Sall.add(c[4], -1, 0)
			}
			if c[5] > 0 {
				m.Sall.add(c[5], -1, 1)
			}
			if c[6] > 0 {
				m.D5678.add(c[6], 0, -1)
				m.S34.add(c[6], -1, 0)
			}
			if c[7] > 0 {
				m.D5678.add(c[7], 1, -1)
				m.S34.add(c[7], -1, 1)
			}

		case 2: // (1,-1,-1)
			if c[0] > 0 {
				m.Dall.add(c[0], 2, -2)
			}
			if c[1] > 0 {
				m.Dall.add(c[1], 3, -2)
			}
			if c[2] > 0 {
				m.Dall.add(c[2], 2, -1)
			}
			if c[3] > 0 {
				m.Dall.add(c[3], 3, -1)
			}
			if c[4] > 0 {
				m.Sall.add(c[4], -1, 2)
			}
			if c[5] > 0 {
				m.Sall.add(c[5], -1, 3)
			}
			if c[6] > 0 {
				m.D5678.add(c[6], 2, -1)
				m.S34.add(c[6], -1, 2)
				m.E1.add(c[6], 1, -1)
			}
			if c[7] > 0 {
				m.Eall.add(c[7], 1, -1)
			}

		case 3: // (-1,0,-1)
			if c[0] > 0 {
				m.Dall.add(c[0], -2, 0)
			}
			if c[1] > 0 {
				m.Dall.add(c[1], -1, 0)
			}
			if c[2] > 0 {
				m.Dall.add(c[2], -2, 1)
			}
			if c[3] > 0 {
				m.Dall.add(c[3], -1, 1)
			}
			if c[4] > 0 {
				m.Wall.add(c[4], 1, 0)
			}
			if c[5] > 0 {
				m.D5678.add(c[5], -1, 0)
				m.W24.add(c[5], 1, 0)
			}
			if c[6] > 0 {
				m.Wall.add(c[6], 1, 1)
			}
			if c[7] > 0 {
				m.D5678.add(c[7], -1, 1)
				m.W24.add(c[7], 1, 1)
			}

		case 4: // (0,0,-1)
			if c[0] > 0 {
				m.Dall.add(c[0], 0, 0)
			}
			if c[1] > 0 {
				m.Dall.add(c[1], 1, 0)
			}
			if c[2] > 0 {
				m.Dall.add(c[2], 0, 1)
			}
			if c[3] > 0 {
				m.Dall.add(c[3], 1, 1)
			}
			if c[4] > 0 {
				m.D5678.add(c[4], 0, 0)
			}
			if c[5] > 0 {
				m.D5678.add(c[5], 1, 0)
			}
			if c[6] > 0 {
				m.D5678.add(c[6], 0, 1)
			}
			if c[7] > 0 {
				m.D5678.add(c[7], 1, 1)
			}

		case 5: // (1,0,-1)
			if c[0] > 0 {
				m.Dall.add(c[0], 2, 0)
			}
			if c[1] > 0 {
				m.Dall.add(c[1], 3, 0)
			}
			if c[2] > 0 {
				m.Dall.add(c[2], 2, 1)
			}
			if c[3] > 0 {
				m.Dall.add(c[3], 3, 1)
			}
			if c[4] > 0 {
				m.D5678.add(c[4], 2, 0)
				m.E13.add(c[4], 1, 0)
			}
			if c[5] > 0 {
				m.Eall.add(c[5], 1, 0)
			}
			if c[6] > 0 {
				m.D5678.add(c[6], 2, 1)
				m.E13.add(c[6], 1, 1)
			}
			if c[7] > 0 {
				m.Eall.add(c[7], 1, 1)
			}

		case 6: // (-1,1,-1)
			if c[0] > 0 {
				m.Dall.add(c[0], -2, 2)
			}
			if c[1] > 0 {
				m.Dall.add(c[1], -1, 2)
			}
			if c[2] > 0 {
				m.Dall.add(c[2], -2, 3)
			}
			if c[3] > 0 {
				m.Dall.add(c[3], -1, 3)
			}
			if c[4] > 0 {
				m.Wall.add(c[4], 1, 2)
			}
			if c[5] > 0 {
				m.D5678.add(c[5], -1, 2)
				m.N12.add(c[5], -1, -1)
				m.W4.add(c[5], 1, 2)
			}
			if c[6] > 0 {
				m.Nall.add(c[6], -1, -2)
			}
			if c[7] > 0 {
				m.Nall.add(c[7], -1, -1)
			}

		case 7: // (0,1,-1)
			if c[0] > 0 {
				m.Dall.add(c[0], 0, 2)
			}
			if c[1] > 0 {
				m.Dall.add(c[1], 1, 2)
			}
			if c[2] > 0 {
				m.Dall.add(c[2], 0, 3)
			}
			if c[3] > 0 {
				m.Dall.add(c[3], 1, 3)
			}
			if c[4] > 0 {
				m.D5678.add(c[4], 0, 2)
				m.N12.add(c[4], -1, 0)
			}
			if c[5] > 0 {
				m.D5678.add(c[5], 1, 2)
				m.N12.add(c[5], -1, 1)
			}
			if c[6] > 0 {
				m.Nall.add(c[6], -1, 0)
			}
			if c[7] > 0 {
				m.Nall.add(c[7], -1, 1)
			}

		case 8: // (1,1,-1)
			if c[0] > 0 {
				m.Dall.add(c[0], 2, 2)
			}
			if c[1] > 0 {
				m.Dall.add(c[1], 3, 2)
			}
			if c[2] > 0 {
				m.Dall.add(c[2], 2, 3)
			}
			if c[3] > 0 {
				m.Dall.add(c[3], 3, 3)
			}
			if c[4] > 0 {
				m.D5678.add(c[4], 2, 2)
				m.N12.add(c[4], -1, 2)
				m.E3.add(c[4], 1, 2)
			}
			if c[5] > 0 {
				m.Eall.add(c[5], 1, 2)
			}
			if c[6] > 0 {
				m.Nall.add(c[6], -1, 2)
			}
			if c[7] > 0 {
				m.Nall.add(c[7], -1, 3)
			}

		case 9: // (-1,-1,0)
			if c[0] > 0 {
				m.Sall.add(c[0], 0, -2)
			}
			if c[1] > 0 {
				m.Sall.add(c[1], 0, -1)
			}
			if c[2] > 0 {
				m.Wall.add(c[2], 0, -1)
			}
			if c[3] > 0 {
				m.S3478.add(c[3], 0, -1)
				m.W2.add(c[3], 0, -1)
				m.W6.add(c[3], 0, -1)
			}
			if c[4] > 0 {
				m.Sall.add(c[4], 1, -2)
			}
			if c[5] > 0 {
				m.Sall.add(c[5], 1, -1)
			}
			if c[6] > 0 {
				m.Wall.add(c[6], -1, -1)
			}
			if c[7] > 0 {
				m.S3478.add(c[7], 1, -1)
				m.W2.add(c[7], -1, -1)
				m.W6.add(c[7], -1, -1)
			}

		case 10: // (0,-1,0)
			if c[0] > 0 {
				m.Sall.add(c[0], 0, 0)
			}
			if c[1] > 0 {
				m.Sall.add(c[1], 0, 1)
			}
			if c[2] > 0 {
				m.S3478.add(c[2], 0, 0)
			}
			if c[3] > 0 {
				m.S3478.add(c[3], 0, 1)
			}
			if c[4] > 0 {
				m.Sall.add(c[4], 1, 0)
			}
			if c[5] > 0 {
				m.Sall.add(c[5], 1, 1)
			}
			if c[6] > 0 {
				m.S3478.add(c[6], 1, 0)
			}
			if c[7] > 0 {
				m.S3478.add(c[7], 1, 1)
			}

		case 11: // (1,-1,0)
			if c[0] > 0 {
				m.Sall.add(c[0], 0, 2)
			}
			if c[1] > 0 {
				m.Sall.add(c[1], 0, 3)
			}
			if c[2] > 0 {
				m.S3478.add(c[2], 0, 2)
				m.E1.add(c[2], 0, -1)
				m.E5.add(c[2], 0, -1)
			}
			if c[3] > 0 {
				m.Eall.add(c[3], 0, -1)
			}
			if c[4] > 0 {
				m.Sall.add(c[4], 1, 2)
			}
			if c[5] > 0 {
				m.Sall.add(c[5], 1, 3)
			}
			if c[6] > 0 {
				m.S3478.add(c[6], 1, 2)
				m.E1.add(c[6], -1, -1)
				m.E5.add(c[6], -1, -1)
			}
			if c[7] > 0 {
				m.Eall.add(c[7], -1, -1)
			}

		case 12: // (-1,0,0)
			if c[0] > 0 {
				m.Wall.add(c[0], 0, 0)
			}
			if c[1] > 0 {
				m.W2468.add(c[1], 0, 0)
			}
			if c[2] > 0 {
				m.Wall.add(c[2], 0, 1)
			}
			if c[3] > 0 {
				m.W2468.add(c[3], 0, 1)
			}
			if c[4] > 0 {
				m.Wall.add(c[4], -1, 0)
			}
			if c[5] > 0 {
				m.W2468.add(c[5], -1, 0)
			}
			if c[6] > 0 {
				m.Wall.add(c[6], -1, 1)
			}
			if c[7] > 0 {
				m.W2468.add(c[7], -1, 1)
			}

		case 13: // (0,0,0): the box itself

		case 14: // (1,0,0)
			if c[0] > 0 {
				m.E1357.add(c[0], 0, 0)
			}
			if c[1] > 0 {
				m.Eall.add(c[1], 0, 0)
			}
			if c[2] > 0 {
				m.E1357.add(c[2], 0, 1)
			}
			if c[3] > 0 {
				m.Eall.add(c[3], 0, 1)
			}
			if c[4] > 0 {
				m.E1357.add(c[4], -1, 0)
			}
			if c[5] > 0 {
				m.Eall.add(c[5], -1, 0)
			}
			if c[6] > 0 {
				m.E1357.add(c[6], -1, 1)
			}
			if c[7] > 0 {
				m.Eall.add(c[7], -1, 1)
			}

		case 15: // (-1,1,0)
			if c[0] > 0 {
				m.Wall.add(c[0], 0, 2)
			}
			if c[1] > 0 {
				m.N1256.add(c[1], 0, -1)
				m.W4.add(c[1], 0, 2)
				m.W8.add(c[1], 0, 2)
			}
			if c[2] > 0 {
				m.Nall.add(c[2], 0, -2)
			}
			if c[3] > 0 {
				m.Nall.add(c[3], 0, -1)
			}
			if c[4] > 0 {
				m.Wall.add(c[4], -1, 2)
			}
			if c[5] > 0 {
				m.N1256.add(c[5], 1, -1)
				m.W4.add(c[5], -1, 2)
				m.W8.add(c[5], -1, 2)
			}
			if c[6] > 0 {
				m.Nall.add(c[6], 1, -2)
			}
			if c[7] > 0 {
				m.Nall.add(c[7], 1, -1)
			}

		case 16: // (0,1,0)
			if c[0] > 0 {
				m.N1256.add(c[0], 0, 0)
			}
			if c[1] > 0 {
				m.N1256.add(c[1], 0, 1)
			}
			if c[2] > 0 {
				m.Nall.add(c[2], 0, 0)
			}
			if c[3] > 0 {
				m.Nall.add(c[3], 0, 1)
			}
			if c[4] > 0 {
				m.N1256.add(c[4], 1, 0)
			}
			if c[5] > 0 {
				m.N1256.add(c[5], 1, 1)
			}
			if c[6] > 0 {
				m.Nall.add(c[6], 1, 0)
			}
			if c[7] > 0 {
				m.Nall.add(c[7], 1, 1)
			}

		case 17: // (1,1,0)
			if c[0] > 0 {
				m.N1256.add(c[0], 0, 2)
				m.E3.add(c[0], 0, 2)
				m.E7.add(c[0], 0, 2)
			}
			if c[1] > 0 {
				m.Eall.add(c[1], 0, 2)
			}
			if c[2] > 0 {
				m.Nall.add(c[2], 0, 2)
			}
			if c[3] > 0 {
				m.Nall.add(c[3], 0, 3)
			}
			if c[4] > 0 {
				m.N1256.add(c[4], 1, 2)
				m.E3.add(c[4], -1, 2)
				m.E7.add(c[4], -1, 2)
			}
			if c[5] > 0 {
				m.Eall.add(c[5], -1, 2)
			}
			if c[6] > 0 {
				m.Nall.add(c[6], 1, 2)
			}
			if c[7] > 0 {
				m.Nall.add(c[7], 1, 3)
			}

		case 18: // (-1,-1,1)
			if c[0] > 0 {
				m.Sall.add(c[0], 2, -2)
			}
			if c[1] > 0 {
				m.Sall.add(c[1], 2, -1)
			}
			if c[2] > 0 {
				m.Wall.add(c[2], -2, -1)
			}
			if c[3] > 0 {
				m.U1234.add(c[3], -1, -1)
				m.S78.add(c[3], 2, -1)
				m.W6.add(c[3], -2, -1)
			}
			if c[4] > 0 {
				m.Uall.add(c[4], -2, -2)
			}
			if c[5] > 0 {
				m.Uall.add(c[5], -1, -2)
			}
			if c[6] > 0 {
				m.Uall.add(c[6], -2, -1)
			}
			if c[7] > 0 {
				m.Uall.add(c[7], -1, -1)
			}

		case 19: // (0,-1,1)
			if c[0] > 0 {
				m.Sall.add(c[0], 2, 0)
			}
			if c[1] > 0 {
				m.Sall.add(c[1], 2, 1)
			}
			if c[2] > 0 {
				m.U1234.add(c[2], 0, -1)
				m.S78.add(c[2], 2, 0)
			}
			if c[3] > 0 {
				m.U1234.add(c[3], 1, -1)
				m.S78.add(c[3], 2, 1)
			}
			if c[4] > 0 {
				m.Uall.add(c[4], 0, -2)
			}
			if c[5] > 0 {
				m.Uall.add(c[5], 1, -2)
			}
			if c[6] > 0 {
				m.Uall.add(c[6], 0, -1)
			}
			if c[7] > 0 {
				m.Uall.add(c[7], 1, -1)
			}

		case 20: // (1,-1,1)
			if c[0] > 0 {
				m.Sall.add(c[0], 2, 2)
			}
			if c[1] > 0 {
				m.Sall.add(c[1], 2, 3)
			}
			if c[2] > 0 {
				m.U1234.add(c[2], 2, -1)
				m.S78.add(c[2], 2, 2)
				m.E5.add(c[2], -2, -1)
			}
			if c[3] > 0 {
				m.Eall.add(c[3], -2, -1)
			}
			if c[4] > 0 {
				m.Uall.add(c[4], 2, -2)
			}
			if c[5] > 0 {
				m.Uall.add(c[5], 3, -2)
			}
			if c[6] > 0 {
				m.Uall.add(c[6], 2, -1)
			}
			if c[7] > 0 {
				m.Uall.add(c[7], 3, -1)
			}

		case 21: // (-1,0,1)
			if c[0] > 0 {
				m.Wall.add(c[0], -2, 0)
			}
			if c[1] > 0 {
				m.U1234.add(c[1], -1, 0)
				m.W68.add(c[1], -2, 0)
			}
			if c[2] > 0 {
				m.Wall.add(c[2], -2, 1)
			}
			if c[3] > 0 {
				m.U1234.add(c[3], -1, 1)
				m.W68.add(c[3], -2, 1)
			}
			if c[4] > 0 {
				m.Uall.add(c[4], -2, 0)
			}
			if c[5] > 0 {
				m.Uall.add(c[5], -1, 0)
			}
			if c[6] > 0 {
				m.Uall.add(c[6], -2, 1)
			}
			if c[7] > 0 {
				m.Uall.add(c[7], -1, 1)
			}

		case 22: // (0,0,1)
			if c[0] > 0 {
				m.U1234.add(c[0], 0, 0)
			}
			if c[1] > 0 {
				m.U1234.add(c[1], 1, 0)
			}
			if c[2] > 0 {
				m.U1234.add(c[2], 0, 1)
			}
			if c[3] > 0 {
				m.U1234.add(c[3], 1, 1)
			}
			if c[4] > 0 {
				m.Uall.add(c[4], 0, 0)
			}
			if c[5] > 0 {
				m.Uall.add(c[5], 1, 0)
			}
			if c[6] > 0 {
				m.Uall.add(c[6], 0, 1)
			}
			if c[7] > 0 {
				m.Uall.add(c[7], 1, 1)
			}

		case 23: // (1,0,1)
			if c[0] > 0 {
				m.U1234.add(c[0], 2, 0)
				m.E57.add(c[0], -2, 0)
			}
			if c[1] > 0 {
				m.Eall.add(c[1], -2, 0)
			}
			if c[2] > 0 {
				m.U1234.add(c[2], 2, 1)
				m.E57.add(c[2], -2, 1)
			}
			if c[3] > 0 {
				m.Eall.add(c[3], -2, 1)
			}
			if c[4] > 0 {
				m.Uall.add(c[4], 2, 0)
			}
			if c[5] > 0 {
				m.Uall.add(c[5], 3, 0)
			}
			if c[6] > 0 {
				m.Uall.add(c[6], 2, 1)
			}
			if c[7] > 0 {
				m.Uall.add(c[7], 3, 1)
			}

		case 24: // (-1,1,1)
			if c[0] > 0 {
				m.Wall.add(c[0], -2, 2)
			}
			if c[1] > 0 {
				m.U1234.add(c[1], -1, 2)
				m.N56.add(c[1], 2, -1)
				m.W8.add(c[1], -2, 2)
			}
			if c[2] > 0 {
				m.Nall.add(c[2], 2, -2)
			}
			if c[3] > 0 {
				m.Nall.add(c[3], 2, -1)
			}
			if c[4] > 0 {
				m.Uall.add(c[4], -2, 2)
			}
			if c[5] > 0 {
				m.Uall.add(c[5], -1, 2)
			}
			if c[6] > 0 {
				m.Uall.add(c[6], -2, 3)
			}
			if c[7] > 0 {
				m.Uall.add(c[7], -1, 3)
			}

		case 25: // (0,1,1)
			if c[0] > 0 {
				m.U1234.add(c[0], 0, 2)
				m.N56.add(c[0], 2, 0)
			}
			if c[1] > 0 {
				m.U1234.add(c[1], 1, 2)
				m.N56.add(c[1], 2, 1)
			}
			if c[2] > 0 {
				m.Nall.add(c[2], 2, 0)
			}
			if c[3] > 0 {
				m.Nall.add(c[3], 2, 1)
			}
			if c[4] > 0 {
				m.Uall.add(c[4], 0, 2)
			}
			if c[5] > 0 {
				m.Uall.add(c[5], 1, 2)
			}
			if c[6] > 0 {
				m.Uall.add(c[6], 0, 3)
			}
			if c[7] > 0 {
				m.Uall.add(c[7], 1, 3)
			}

		case 26: // (1,1,1)
			if c[0] > 0 {
				m.U1234.add(c[0], 2, 2)
				m.N56.add(c[0], 2, 2)
				m.E7.add(c[0], -2, 2)
			}
			if c[1] > 0 {
				m.Eall.add(c[1], -2, 2)
			}
			if c[2] > 0 {
				m.Nall.add(c[2], 2, 2)
			}
			if c[3] > 0 {
				m.Nall.add(c[3], 2, 3)
			}
			if c[4] > 0 {
				m.Uall.add(c[4], 2, 2)
			}
			if c[5] > 0 {
				m.Uall.add(c[5], 3, 2)
			}
			if c[6] > 0 {
				m.Uall.add(c[6], 2, 3)
			}
			if c[7] > 0 {
				m.Uall.add(c[7], 3, 3)
			}
		}
	}
	return
}
