/*
 * geometry.go, part of goCSG.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

const appzero float64 = 1e-12

//Box and boundary condition

// Box returns a copy of the box matrix. The columns are the lattice vectors.
func (T *Topology) Box() *v3.Matrix {
	return T.bc.Box()
}

// SetBox sets the box matrix. If a box type is not given, it is detected with
// AutoDetectBoxType. The boundary condition is replaced if the type changes.
func (T *Topology) SetBox(box *v3.Matrix, boxtype ...BoxType) {
	var t BoxType
	if len(boxtype) > 0 {
		t = boxtype[0]
	} else {
		t = AutoDetectBoxType(box)
	}
	if T.bc == nil || T.bc.Type() != t {
		T.bc = NewBoundaryCondition(t)
	}
	T.bc.SetBox(box)
}

// BoxType returns the type of the current boundary condition.
func (T *Topology) BoxType() BoxType {
	return T.bc.Type()
}

// BoundaryCondition returns the current boundary condition.
func (T *Topology) BoundaryCondition() BoundaryCondition {
	return T.bc
}

// BCShortestConnection returns the shortest vector going from ri to
// any periodic image of rj, according to the boundary condition.
func (T *Topology) BCShortestConnection(ri, rj r3.Vec) r3.Vec {
	return T.bc.ShortestConnection(ri, rj)
}

// GetDist returns the shortest vector from the bead with id b1 to the
// bead with id b2. Panics if either id is out of range.
func (T *Topology) GetDist(b1, b2 int) r3.Vec {
	return T.BCShortestConnection(T.Bead(b1).pos, T.Bead(b2).pos)
}

// BoxVolume returns the volume of the box.
func (T *Topology) BoxVolume() float64 {
	return T.bc.BoxVolume()
}

// ShortestBoxSize returns the smallest distance between two opposite faces
// of the box. Twice the largest cutoff used with the minimum image
// convention must not exceed it. Axes with a zero length are not periodic
// and don't count. For an open box, or a singular triclinic one, it
// returns +Inf.
func (T *Topology) ShortestBoxSize() float64 {
	box := T.bc.Box()
	switch T.bc.Type() {
	case OpenBox:
		return math.Inf(1)
	case OrthorhombicBox:
		ret := math.Inf(1)
		for i := 0; i < 3; i++ {
			if l := math.Abs(box.At(i, i)); l > 0 {
				ret = math.Min(ret, l)
			}
		}
		return ret
	}
	vol := math.Abs(v3.Det(box))
	if vol == 0 {
		return math.Inf(1)
	}
	a, b, c := box.Col(0), box.Col(1), box.Col(2)
	la := vol / r3.Norm(r3.Cross(b, c))
	lb := vol / r3.Norm(r3.Cross(c, a))
	lc := vol / r3.Norm(r3.Cross(a, b))
	return math.Min(la, math.Min(lb, lc))
}

//Frames

// Coords returns a new matrix with the positions of all the beads,
// one per row, in id order.
func (T *Topology) Coords() *v3.Matrix {
	if len(T.beads) == 0 {
		return nil
	}
	ret := v3.Zeros(len(T.beads))
	for i, b := range T.beads {
		ret.SetVec(i, b.pos)
	}
	return ret
}

// SetCoords sets the positions of all the beads from the rows of coords.
func (T *Topology) SetCoords(coords *v3.Matrix) error {
	if coords == nil || coords.NVecs() != len(T.beads) {
		n := 0
		if coords != nil {
			n = coords.NVecs()
		}
		return newError(ErrShape, "Topology.SetCoords", "%d positions for %d beads", n, len(T.beads))
	}
	for i, b := range T.beads {
		b.SetPos(coords.Vec(i))
	}
	return nil
}

// Masses returns the masses of all the beads, in id order.
func (T *Topology) Masses() []float64 {
	ret := make([]float64, len(T.beads))
	for i, b := range T.beads {
		ret[i] = b.Mass
	}
	return ret
}

// MoleculeCenterOfMass returns the center of mass of the ith molecule. The
// beads are unwrapped relative to the first bead of the molecule using the
// boundary condition, so molecules split across the box are handled.
// If the total mass is zero, the geometric center is returned.
func (T *Topology) MoleculeCenterOfMass(i int) (r3.Vec, error) {
	if i < 0 || i >= len(T.molecules) {
		return r3.Vec{}, newError(ErrOutOfRange, "Topology.MoleculeCenterOfMass", "molecule %d requested, topology has %d", i, len(T.molecules))
	}
	mol := T.molecules[i]
	n := len(mol.beads)
	if n == 0 {
		return r3.Vec{}, newError(ErrOutOfRange, "Topology.MoleculeCenterOfMass", "molecule %d (%s) has no beads", i, mol.Name)
	}
	ref := mol.beads[0].pos
	x := make([]float64, n)
	y := make([]float64, n)
	z := make([]float64, n)
	w := make([]float64, n)
	for j, b := range mol.beads {
		r := r3.Add(ref, T.bc.ShortestConnection(ref, b.pos))
		x[j], y[j], z[j] = r.X, r.Y, r.Z
		w[j] = b.Mass
	}
	if floats.Sum(w) == 0 {
		w = nil
	}
	return r3.Vec{X: stat.Mean(x, w), Y: stat.Mean(y, w), Z: stat.Mean(z, w)}, nil
}

//small vector helpers

func vecNorm(v r3.Vec) float64 {
	return r3.Norm(v)
}

// vecAngle returns the angle between u and w, in radians.
func vecAngle(u, w r3.Vec) float64 {
	normproduct := r3.Norm(u) * r3.Norm(w)
	if normproduct == 0 {
		return 0
	}
	argument := r3.Dot(u, w) / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0
	}
	return angle
}

// dihedral returns the dihedral angle, in radians, defined by the three
// consecutive bond vectors b1, b2 and b3.
func dihedral(b1, b2, b3 r3.Vec) float64 {
	first := r3.Dot(r3.Scale(r3.Norm(b2), b1), r3.Cross(b2, b3))
	second := r3.Dot(r3.Cross(b1, b2), r3.Cross(b2, b3))
	return math.Atan2(first, second)
}
