/*
 * topology.go, part of goCSG.
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
	"log"
)

/**Note: the accessors that take an index panic if it is out of range.
 * Asking for a bead that doesn't exist means the program is wrong. Operations
 * that depend on user input (range expressions, residue numbers) return errors.**/

// Topology owns all the beads, residues, molecules, bead types and bonded
// interactions of a system, plus the simulation cell and the exclusion table.
// All entities are created through the Topology and are never removed
// individually: Cleanup empties the whole topology.
// A Topology is not safe for concurrent mutation.
type Topology struct {
	beads        []*Bead
	residues     []*Residue
	molecules    []*Molecule
	beadTypes    []*BeadType
	beadTypeMap  map[string]int
	groups       map[string]int
	byGroup      map[string][]*Interaction
	interactions []*Interaction

	bc         BoundaryCondition
	time       float64
	step       int
	exclusions *ExclusionList

	log Logger
}

// NewTopology returns an empty topology with an open boundary condition.
func NewTopology() *Topology {
	T := new(Topology)
	T.log = log.Default()
	T.exclusions = NewExclusionList()
	T.Cleanup()
	return T
}

// SetLogger sets the logger for the warnings of the topology. A nil
// logger restores the default one.
func (T *Topology) SetLogger(l Logger) {
	if l == nil {
		l = log.Default()
	}
	T.log = l
}

// Cleanup removes all the beads, residues, molecules, bead types and
// interactions of the topology, and resets the boundary condition to an
// open one with zero box. The removed entities are detached: their
// Topology() becomes nil. Time and step are kept. Cleanup is idempotent.
func (T *Topology) Cleanup() {
	for _, b := range T.beads {
		b.top = nil
		b.mol = nil
	}
	for _, r := range T.residues {
		r.top = nil
	}
	for _, m := range T.molecules {
		m.top = nil
	}
	for _, t := range T.beadTypes {
		t.top = nil
	}
	T.beads = nil
	T.residues = nil
	T.molecules = nil
	T.beadTypes = nil
	T.interactions = nil
	T.beadTypeMap = make(map[string]int)
	T.groups = make(map[string]int)
	T.byGroup = make(map[string][]*Interaction)
	if T.exclusions == nil {
		T.exclusions = NewExclusionList()
	}
	T.exclusions.Clear()
	T.bc = NewBoundaryCondition(OpenBox)
}

//Factories

// CreateBead creates a new bead and appends it to the topology. Its id is the
// number of beads in the topology before the call.
func (T *Topology) CreateBead(symmetry Symmetry, name string, btype *BeadType, resnr int, mass, charge float64) *Bead {
	if btype != nil && btype.top != T {
		panic(ErrBeadTypeRegistry)
	}
	b := &Bead{
		Name:     name,
		ResNr:    resnr,
		Mass:     mass,
		Charge:   charge,
		Symmetry: symmetry,
		id:       len(T.beads),
		typ:      btype,
		top:      T,
	}
	T.beads = append(T.beads, b)
	return b
}

// CreateMolecule creates a new, empty molecule and appends it to the topology.
func (T *Topology) CreateMolecule(name string) *Molecule {
	m := newMolecule(T, len(T.molecules), name)
	T.molecules = append(T.molecules, m)
	return m
}

// CreateResidue creates a new residue. If id is not given, the number of
// residues in the topology before the call is used.
func (T *Topology) CreateResidue(name string, id ...int) *Residue {
	rid := len(T.residues)
	if len(id) > 0 {
		rid = id[0]
	}
	r := &Residue{Name: name, id: rid, top: T}
	T.residues = append(T.residues, r)
	return r
}

// GetOrCreateBeadType returns the bead type with the given name, creating
// it if it doesn't exist.
func (T *Topology) GetOrCreateBeadType(name string) *BeadType {
	if id, ok := T.beadTypeMap[name]; ok {
		if id < 0 || id >= len(T.beadTypes) || T.beadTypes[id].name != name {
			panic(ErrBeadTypeRegistry)
		}
		return T.beadTypes[id]
	}
	bt := &BeadType{name: name, id: len(T.beadTypes), top: T}
	T.beadTypes = append(T.beadTypes, bt)
	T.beadTypeMap[name] = bt.id
	return bt
}

// BeadType returns the bead type with the given name, and whether it exists.
func (T *Topology) BeadType(name string) (*BeadType, bool) {
	id, ok := T.beadTypeMap[name]
	if !ok {
		return nil, false
	}
	return T.beadTypes[id], true
}

// AddBondedInteraction adds ic to the topology. The group of ic gets a new id
// (the number of distinct groups so far) the first time it is seen.
func (T *Topology) AddBondedInteraction(ic *Interaction) {
	if ic == nil {
		panic("Attempted to add a nil interaction")
	}
	id, ok := T.groups[ic.Group]
	if !ok {
		id = len(T.groups)
		T.groups[ic.Group] = id
	}
	ic.groupID = id
	T.interactions = append(T.interactions, ic)
	T.byGroup[ic.Group] = append(T.byGroup[ic.Group], ic)
}

// InteractionsInGroup returns the interactions of the given group, in the
// order they were added. It returns an empty slice for unknown groups.
func (T *Topology) InteractionsInGroup(group string) []*Interaction {
	ics := T.byGroup[group]
	ret := make([]*Interaction, len(ics))
	copy(ret, ics)
	return ret
}

// GroupID returns the id of the given interaction group, and whether the
// group exists.
func (T *Topology) GroupID(group string) (int, bool) {
	id, ok := T.groups[group]
	return id, ok
}

//Accessors

// BeadCount returns the number of beads in the topology.
func (T *Topology) BeadCount() int { return len(T.beads) }

// Len is the same as BeadCount
func (T *Topology) Len() int { return len(T.beads) }

// Bead returns the bead with id i. Panics if out of range.
func (T *Topology) Bead(i int) *Bead {
	if i < 0 || i >= len(T.beads) {
		panic(fmt.Sprintf("%s: %d of %d", ErrBeadOutOfRange, i, len(T.beads)))
	}
	return T.beads[i]
}

// Beads returns the beads of the topology, in id order. The slice is
// a copy but the beads are not.
func (T *Topology) Beads() []*Bead {
	ret := make([]*Bead, len(T.beads))
	copy(ret, T.beads)
	return ret
}

// MoleculeCount returns the number of molecules in the topology.
func (T *Topology) MoleculeCount() int { return len(T.molecules) }

// Molecule returns the ith molecule. Panics if out of range.
func (T *Topology) Molecule(i int) *Molecule {
	if i < 0 || i >= len(T.molecules) {
		panic(fmt.Sprintf("Topology: Requested molecule %d out of bounds (%d)", i, len(T.molecules)))
	}
	return T.molecules[i]
}

// Molecules returns the molecules of the topology, in order.
func (T *Topology) Molecules() []*Molecule {
	ret := make([]*Molecule, len(T.molecules))
	copy(ret, T.molecules)
	return ret
}

// ResidueCount returns the number of residues in the topology.
func (T *Topology) ResidueCount() int { return len(T.residues) }

// Residue returns the ith residue. Panics if out of range.
func (T *Topology) Residue(i int) *Residue {
	if i < 0 || i >= len(T.residues) {
		panic(fmt.Sprintf("Topology: Requested residue %d out of bounds (%d)", i, len(T.residues)))
	}
	return T.residues[i]
}

// BeadTypeCount returns the number of bead types in the topology.
func (T *Topology) BeadTypeCount() int { return len(T.beadTypes) }

// BeadTypes returns the bead types, in id order.
func (T *Topology) BeadTypes() []*BeadType {
	ret := make([]*BeadType, len(T.beadTypes))
	copy(ret, T.beadTypes)
	return ret
}

// Interactions returns all the bonded interactions, in the order they were added.
func (T *Topology) Interactions() []*Interaction {
	ret := make([]*Interaction, len(T.interactions))
	copy(ret, T.interactions)
	return ret
}

// Time returns the simulation time of the current frame.
func (T *Topology) Time() float64 { return T.time }

// SetTime sets the simulation time of the current frame.
func (T *Topology) SetTime(t float64) { T.time = t }

// Step returns the simulation step of the current frame.
func (T *Topology) Step() int { return T.step }

// SetStep sets the simulation step of the current frame.
func (T *Topology) SetStep(s int) { T.step = s }

// Exclusions returns the exclusion table of the topology.
func (T *Topology) Exclusions() *ExclusionList { return T.exclusions }

// RebuildExclusions replaces the exclusion table with one built from the
// current bonded interactions.
func (T *Topology) RebuildExclusions() {
	T.exclusions.CreateExclusions(T)
}
