/*
 * interaction.go, part of goCSG.
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
	"fmt"
	"slices"
)

// InteractionKind is the geometric kind of a bonded term.
type InteractionKind int

const (
	Generic InteractionKind = iota
	Bond
	Angle
	Dihedral
)

func (k InteractionKind) String() string {
	switch k {
	case Bond:
		return "bond"
	case Angle:
		return "angle"
	case Dihedral:
		return "dihedral"
	default:
		return "generic"
	}
}

// NBeads returns the number of beads a term of kind k involves, or
// 0 if any number (at least 2) is allowed.
func (k InteractionKind) NBeads() int {
	switch k {
	case Bond:
		return 2
	case Angle:
		return 3
	case Dihedral:
		return 4
	default:
		return 0
	}
}

// ParseInteractionKind returns the kind named s ("bond", "angle", "dihedral"
// or "generic").
func ParseInteractionKind(s string) (InteractionKind, error) {
	for _, k := range []InteractionKind{Generic, Bond, Angle, Dihedral} {
		if k.String() == s {
			return k, nil
		}
	}
	return Generic, newError(ErrInteraction, "ParseInteractionKind", "unknown interaction kind %q", s)
}

// Interaction is a bonded term. Interactions are grouped by the Group name.
// All the interactions with the same group name get the same group id when
// added to a topology. Params is not interpreted by goCSG.
type Interaction struct {
	Group  string
	Kind   InteractionKind
	Mol    int   //index of the molecule the term belongs to, -1 if none.
	Beads  []int //topology ids of the beads involved.
	Params []float64

	groupID int
}

// NewInteraction returns a new interaction of the given kind and group. It
// returns an error if the number of beads doesn't match the kind.
func NewInteraction(kind InteractionKind, group string, mol int, beads ...int) (*Interaction, error) {
	n := kind.NBeads()
	if n > 0 && len(beads) != n {
		return nil, newError(ErrInteraction, "NewInteraction", "a %s term needs %d beads, got %d", kind, n, len(beads))
	}
	if len(beads) < 2 {
		return nil, newError(ErrInteraction, "NewInteraction", "a term needs at least 2 beads, got %d", len(beads))
	}
	return &Interaction{Group: group, Kind: kind, Mol: mol, Beads: slices.Clone(beads), groupID: -1}, nil
}

// GroupID returns the id of the group of the interaction, or -1 if the
// interaction has not been added to a topology.
func (I *Interaction) GroupID() int { return I.groupID }

// BeadCount returns the number of beads in the interaction.
func (I *Interaction) BeadCount() int { return len(I.Beads) }

// String returns a short description of the term.
func (I *Interaction) String() string {
	return fmt.Sprintf("%s:%s(%d) %v", I.Group, I.Kind, I.groupID, I.Beads)
}

// shifted returns a copy of I, not yet added to any topology, with bead
// and molecule indexes displaced by the given offsets.
func (I *Interaction) shifted(beadOffset, molOffset int) *Interaction {
	ret := &Interaction{Group: I.Group, Kind: I.Kind, Mol: I.Mol, groupID: -1}
	if ret.Mol >= 0 {
		ret.Mol += molOffset
	}
	ret.Beads = make([]int, len(I.Beads))
	for i, v := range I.Beads {
		ret.Beads[i] = v + beadOffset
	}
	ret.Params = slices.Clone(I.Params)
	return ret
}

// Value returns the geometric value of the term in the current frame of top:
// the length of a bond, the angle (radians) of an angle term, or the dihedral
// (radians) of a dihedral. Distances follow the boundary condition of top.
func (I *Interaction) Value(top *Topology) (float64, error) {
	for _, v := range I.Beads {
		if v < 0 || v >= top.BeadCount() {
			return 0, newError(ErrOutOfRange, "Interaction.Value", "bead %d requested, topology has %d", v, top.BeadCount())
		}
	}
	b := I.Beads
	switch I.Kind {
	case Bond:
		return vecNorm(top.GetDist(b[0], b[1])), nil
	case Angle:
		return vecAngle(top.GetDist(b[1], b[0]), top.GetDist(b[1], b[2])), nil
	case Dihedral:
		return dihedral(top.GetDist(b[0], b[1]), top.GetDist(b[1], b[2]), top.GetDist(b[2], b[3])), nil
	default:
		return 0, newError(ErrInteraction, "Interaction.Value", "no geometric value for a %s term", I.Kind)
	}
}
