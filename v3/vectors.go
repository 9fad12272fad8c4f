/*
 * vectors.go, part of goCSG.
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

package v3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

//Conversions between the Matrix and gonum's r3.Vec, which is what
//single beads use.

// FromVecs returns a new Matrix with one vector per element of vecs.
func FromVecs(vecs ...r3.Vec) *Matrix {
	F := Zeros(len(vecs))
	for i, v := range vecs {
		F.SetVec(i, v)
	}
	return F
}

// Vec returns the ith vector of F as an r3.Vec.
func (F *Matrix) Vec(i int) r3.Vec {
	r := F.RawRowView(i)
	return r3.Vec{X: r[0], Y: r[1], Z: r[2]}
}

// SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	r := F.RawRowView(i)
	r[0], r[1], r[2] = v.X, v.Y, v.Z
}

// Col returns the jth column of a 3x3 F as an r3.Vec. Box matrices
// keep their lattice vectors as columns.
func (F *Matrix) Col(j int) r3.Vec {
	if F.NVecs() != 3 {
		panic(ErrShape)
	}
	return r3.Vec{X: F.At(0, j), Y: F.At(1, j), Z: F.At(2, j)}
}

// SetCol sets the jth column of a 3x3 F to v.
func (F *Matrix) SetCol(j int, v r3.Vec) {
	if F.NVecs() != 3 {
		panic(ErrShape)
	}
	F.Set(0, j, v.X)
	F.Set(1, j, v.Y)
	F.Set(2, j, v.Z)
}
