/*
 * boundary.go, part of goCSG.
 *
 * Copyright 2026 The goCSG Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package csg

import (
	"math"

	v3 "github.com/rmera/gocsg/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// BoxType is the kind of simulation cell.
type BoxType int

const (
	OpenBox BoxType = iota
	OrthorhombicBox
	TriclinicBox
)

func (t BoxType) String() string {
	switch t {
	case OrthorhombicBox:
		return "orthorhombic"
	case TriclinicBox:
		return "triclinic"
	default:
		return "open"
	}
}

// NewBoundaryCondition returns a boundary condition of type t, with a zero box.
func NewBoundaryCondition(t BoxType) BoundaryCondition {
	base := boxBase{box: v3.Zeros(3)}
	switch t {
	case OrthorhombicBox:
		return &orthorhombic{base}
	case TriclinicBox:
		return &triclinic{boxBase: base}
	default:
		return &open{base}
	}
}

// AutoDetectBoxType returns OpenBox if all the elements of box are zero,
// OrthorhombicBox if only the off-diagonal ones are, and TriclinicBox
// otherwise. The comparisons are exact unless an epsilon is given, in which
// case elements with absolute value not larger than epsilon[0] count as zero.
func AutoDetectBoxType(box *v3.Matrix, epsilon ...float64) BoxType {
	if box == nil {
		return OpenBox
	}
	if r, c := box.Dims(); r != 3 || c != 3 {
		panic(v3.ErrShape)
	}
	eps := 0.0
	if len(epsilon) > 0 && epsilon[0] > 0 {
		eps = epsilon[0]
	}
	iszero := func(i, j int) bool { return math.Abs(box.At(i, j)) <= eps }
	offdiag := true
	diag := true
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if iszero(i, j) {
				continue
			}
			if i == j {
				diag = false
			} else {
				offdiag = false
			}
		}
	}
	if diag && offdiag {
		return OpenBox
	}
	if offdiag {
		return OrthorhombicBox
	}
	return TriclinicBox
}

// BoxFromVectors returns a box matrix with the lattice vectors a, b and c
// as columns.
func BoxFromVectors(a, b, c r3.Vec) *v3.Matrix {
	box := v3.Zeros(3)
	box.SetCol(0, a)
	box.SetCol(1, b)
	box.SetCol(2, c)
	return box
}

// DiagonalBox returns a rectangular box with sides x, y and z.
func DiagonalBox(x, y, z float64) *v3.Matrix {
	return BoxFromVectors(r3.Vec{X: x}, r3.Vec{Y: y}, r3.Vec{Z: z})
}

// boxBase holds the box matrix, common to all the boundary conditions.
type boxBase struct {
	box *v3.Matrix
}

func (B *boxBase) SetBox(box *v3.Matrix) {
	if box == nil {
		B.box = v3.Zeros(3)
		return
	}
	if r, c := box.Dims(); r != 3 || c != 3 {
		panic(v3.ErrShape)
	}
	B.box = box.Clone()
}

func (B *boxBase) Box() *v3.Matrix {
	return B.box.Clone()
}

// BoxVolume is the absolute value of the triple product of the box vectors.
func (B *boxBase) BoxVolume() float64 {
	return math.Abs(v3.Det(B.box))
}

// open is a non-periodic cell.
type open struct {
	boxBase
}

func (O *open) ShortestConnection(ri, rj r3.Vec) r3.Vec {
	return r3.Sub(rj, ri)
}

func (O *open) Type() BoxType { return OpenBox }

// orthorhombic is a periodic rectangular cell. Axes with zero length
// are treated as non-periodic.
type orthorhombic struct {
	boxBase
}

func minImage(d, l float64) float64 {
	if l == 0 {
		return d
	}
	return d - l*math.Round(d/l)
}

func (O *orthorhombic) ShortestConnection(ri, rj r3.Vec) r3.Vec {
	r := r3.Sub(rj, ri)
	r.X = minImage(r.X, O.box.At(0, 0))
	r.Y = minImage(r.Y, O.box.At(1, 1))
	r.Z = minImage(r.Z, O.box.At(2, 2))
	return r
}

func (O *orthorhombic) Type() BoxType { return OrthorhombicBox }

// triclinic is a periodic cell with arbitrary lattice vectors.
// inv is the inverse of the box, nil if the box is singular.
type triclinic struct {
	boxBase
	inv *v3.Matrix
}

func (T *triclinic) SetBox(box *v3.Matrix) {
	T.boxBase.SetBox(box)
	T.inv = nil
	var inv mat.Dense
	if err := inv.Inverse(v3.Matrix2Dense(T.box)); err != nil {
		return
	}
	T.inv = v3.Dense2Matrix(&inv)
}

// ShortestConnection wraps the difference into the unit cell in fractional
// coordinates, then checks the 26 neighboring images. With a singular box,
// the plain difference is returned.
func (T *triclinic) ShortestConnection(ri, rj r3.Vec) r3.Vec {
	r := r3.Sub(rj, ri)
	if T.inv == nil {
		return r
	}
	a, b, c := T.box.Col(0), T.box.Col(1), T.box.Col(2)
	s := r3.Vec{
		X: r3.Dot(T.inv.Vec(0), r),
		Y: r3.Dot(T.inv.Vec(1), r),
		Z: r3.Dot(T.inv.Vec(2), r),
	}
	s.X -= math.Round(s.X)
	s.Y -= math.Round(s.Y)
	s.Z -= math.Round(s.Z)
	r = r3.Add(r3.Scale(s.X, a), r3.Add(r3.Scale(s.Y, b), r3.Scale(s.Z, c)))
	best := r
	bestn := r3.Norm2(r)
	for i := -1.0; i <= 1; i++ {
		for j := -1.0; j <= 1; j++ {
			for k := -1.0; k <= 1; k++ {
				cand := r3.Add(r, r3.Add(r3.Scale(i, a), r3.Add(r3.Scale(j, b), r3.Scale(k, c))))
				if n := r3.Norm2(cand); n < bestn {
					best, bestn = cand, n
				}
			}
		}
	}
	return best
}

func (T *triclinic) Type() BoxType { return TriclinicBox }
