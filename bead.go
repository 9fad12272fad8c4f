/*
 * bead.go, part of goCSG.
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
	"maps"

	"gonum.org/v1/gonum/spatial/r3"
)

// Symmetry is the shape of a bead. Only spherical beads are common.
type Symmetry byte

const (
	Spherical   Symmetry = 1
	Ellipsoidal Symmetry = 3
)

// BeadType is a named bead type. Bead types are shared by all the beads
// of the same type in a topology, and can only be created or renamed
// through the topology, which keeps them indexed by name.
type BeadType struct {
	name string
	id   int
	top  *Topology
}

// ID returns the index of the type in its topology.
func (B *BeadType) ID() int { return B.id }

// Name returns the name of the type.
func (B *BeadType) Name() string { return B.name }

// Topology returns the topology owning the type, or nil if
// the topology has been cleaned up.
func (B *BeadType) Topology() *Topology { return B.top }

// Residue is a named group of beads, between the bead and the molecule.
type Residue struct {
	Name string
	id   int
	top  *Topology
}

// ID returns the residue id.
func (R *Residue) ID() int { return R.id }

// Topology returns the topology owning the residue, or nil if
// the topology has been cleaned up.
func (R *Residue) Topology() *Topology { return R.top }

// Bead is a coarse-grained particle. The physical, non time-dependent
// properties are exported fields. The bead id and type are
// fixed by the topology. Position, velocity and force are set by readers.
type Bead struct {
	Name     string
	ResNr    int
	Mass     float64
	Charge   float64
	Symmetry Symmetry
	Options  map[string]string //auxiliary per-bead options, copied along with the bead.

	id  int
	typ *BeadType
	top *Topology
	mol *Molecule

	pos, vel, force          r3.Vec
	hasPos, hasVel, hasForce bool
}

// ID returns the index of the bead in its topology. It equals the
// creation order and never changes.
func (B *Bead) ID() int { return B.id }

// Type returns the type of the bead.
func (B *Bead) Type() *BeadType { return B.typ }

// TypeName returns the name of the type of the bead, or an empty string
// if the bead has no type.
func (B *Bead) TypeName() string {
	if B.typ == nil {
		return ""
	}
	return B.typ.name
}

// SetType sets the type of the bead. The type must belong to the same
// topology as the bead.
func (B *Bead) SetType(t *BeadType) {
	if t != nil && t.top != B.top {
		panic(ErrBeadTypeRegistry)
	}
	B.typ = t
}

// Topology returns the topology owning the bead, or nil if
// the topology has been cleaned up.
func (B *Bead) Topology() *Topology { return B.top }

// Molecule returns the molecule the bead was last added to, or nil.
func (B *Bead) Molecule() *Molecule { return B.mol }

// Pos returns the position of the bead.
func (B *Bead) Pos() r3.Vec { return B.pos }

// SetPos sets the position of the bead.
func (B *Bead) SetPos(r r3.Vec) {
	B.pos = r
	B.hasPos = true
}

// HasPos returns true if the position of the bead has been set.
func (B *Bead) HasPos() bool { return B.hasPos }

// Vel returns the velocity of the bead.
func (B *Bead) Vel() r3.Vec { return B.vel }

// SetVel sets the velocity of the bead.
func (B *Bead) SetVel(v r3.Vec) {
	B.vel = v
	B.hasVel = true
}

// HasVel returns true if the velocity of the bead has been set.
func (B *Bead) HasVel() bool { return B.hasVel }

// Force returns the force on the bead.
func (B *Bead) Force() r3.Vec { return B.force }

// SetForce sets the force on the bead.
func (B *Bead) SetForce(f r3.Vec) {
	B.force = f
	B.hasForce = true
}

// HasForce returns true if the force on the bead has been set.
func (B *Bead) HasForce() bool { return B.hasForce }

// copyState copies the time-dependent state and the options of src into B.
func (B *Bead) copyState(src *Bead) {
	B.pos, B.vel, B.force = src.pos, src.vel, src.force
	B.hasPos, B.hasVel, B.hasForce = src.hasPos, src.hasVel, src.hasForce
	if src.Options != nil {
		B.Options = maps.Clone(src.Options)
	}
}
