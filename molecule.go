/*
 * molecule.go, part of goCSG.
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

import "fmt"

// Molecule is a named, ordered group of beads. The beads belong to the
// topology; the molecule only refers to them. Each bead is also indexed by
// the name it was added with. For repeated names, the last one added wins.
type Molecule struct {
	Name      string
	id        int
	beads     []*Bead
	beadNames []string
	beadMap   map[string]int
	top       *Topology
}

func newMolecule(top *Topology, id int, name string) *Molecule {
	return &Molecule{Name: name, id: id, top: top, beadMap: make(map[string]int)}
}

// ID returns the index of the molecule in its topology.
func (M *Molecule) ID() int { return M.id }

// Topology returns the topology owning the molecule, or nil if
// the topology has been cleaned up.
func (M *Molecule) Topology() *Topology { return M.top }

// AddBead appends b to the molecule. The bead is indexed by name[0] if
// given, by its own name otherwise.
func (M *Molecule) AddBead(b *Bead, name ...string) {
	if b == nil {
		panic("Attempted to add a nil bead to a molecule")
	}
	n := b.Name
	if len(name) > 0 {
		n = name[0]
	}
	M.beads = append(M.beads, b)
	M.beadNames = append(M.beadNames, n)
	M.beadMap[n] = len(M.beads) - 1
	b.mol = M
}

// BeadCount returns the number of beads in the molecule.
func (M *Molecule) BeadCount() int {
	return len(M.beads)
}

// Bead returns the ith bead of the molecule. Panics if out of range.
func (M *Molecule) Bead(i int) *Bead {
	if i < 0 || i >= len(M.beads) {
		panic(fmt.Sprintf("Molecule %s: Requested bead %d out of bounds (%d)", M.Name, i, len(M.beads)))
	}
	return M.beads[i]
}

// BeadName returns the name the ith bead was added with.
func (M *Molecule) BeadName(i int) string {
	return M.beadNames[i]
}

// BeadByName returns the index in the molecule of the bead added with the
// given name, or -1 if there is none.
func (M *Molecule) BeadByName(name string) int {
	i, ok := M.beadMap[name]
	if !ok {
		if M.top != nil {
			M.top.log.Printf("cannot find: <%s> in %s", name, M.Name)
		}
		return -1
	}
	return i
}

// BeadIDs returns the topology ids of the beads in the molecule, in order.
func (M *Molecule) BeadIDs() []int {
	ret := make([]int, len(M.beads))
	for i, b := range M.beads {
		ret[i] = b.id
	}
	return ret
}
