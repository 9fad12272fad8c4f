/*
 * compose.go, part of goCSG.
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

//Functions that build molecules from the beads already in a topology,
//and that merge or copy whole topologies.

// CreateMoleculesByRange creates nmols molecules called name, each with nbeads
// consecutive beads, starting from the bead with 1-based index first.
// If the beads run out before, the last molecule is left incomplete and a
// warning is logged.
func (T *Topology) CreateMoleculesByRange(name string, first, nbeads, nmols int) {
	if nmols <= 0 || nbeads <= 0 {
		return
	}
	if first < 1 {
		first = 1
	}
	mol := T.CreateMolecule(name)
	count := 0
	for _, b := range T.beads[min(first-1, len(T.beads)):] {
		mol.AddBead(b)
		count++
		if count == nbeads {
			nmols--
			if nmols <= 0 {
				return
			}
			mol = T.CreateMolecule(name)
			count = 0
		}
	}
	T.log.Printf("CreateMoleculesByRange: ran out of beads, molecule %d (%s) has %d of %d beads and %d more molecules were not created", mol.id, name, count, nbeads, nmols-1)
}

// CreateMoleculesByResidue creates one molecule per residue, named after it,
// and adds each bead to the molecule whose index is the residue number of the bead.
// All the residue numbers are checked before anything is created. If
// one is not a valid residue index, an ErrResidueNumbering error is returned
// and the topology is left unchanged.
func (T *Topology) CreateMoleculesByResidue() error {
	nres := len(T.residues)
	for _, b := range T.beads {
		if b.ResNr < 0 || b.ResNr >= nres {
			return newError(ErrResidueNumbering, "Topology.CreateMoleculesByResidue", "bead %d (%s) has residue number %d, but there are %d residues", b.id, b.Name, b.ResNr, nres)
		}
	}
	offset := len(T.molecules)
	for _, r := range T.residues {
		T.CreateMolecule(r.Name)
	}
	for _, b := range T.beads {
		T.molecules[offset+b.ResNr].AddBead(b)
	}
	return nil
}

// CreateOneBigMolecule creates a molecule with all the beads of the
// topology, in order, and returns it.
func (T *Topology) CreateOneBigMolecule(name string) *Molecule {
	mol := T.CreateMolecule(name)
	for _, b := range T.beads {
		mol.AddBead(b)
	}
	return mol
}

// Add merges the beads, residues, molecules and interactions of other into T.
// Bead types are matched by name. The residue numbers of the new beads are
// displaced by the number of residues T had before the call, and
// molecules, interactions and exclusions refer to the new beads.
// Positions, velocities, forces and options are copied. The box, time and
// step of T are not changed.
func (T *Topology) Add(other *Topology) {
	if other == nil {
		panic(ErrNilTopology)
	}
	//snapshot, in case other == T
	srcbeads := other.beads
	srcres := other.residues
	srcmols := other.molecules
	srcics := other.interactions
	res0 := len(T.residues)
	bead0 := len(T.beads)
	mol0 := len(T.molecules)
	for _, b := range srcbeads {
		nb := T.CreateBead(b.Symmetry, b.Name, T.typeLike(b.typ), b.ResNr+res0, b.Mass, b.Charge)
		nb.copyState(b)
	}
	for _, r := range srcres {
		T.CreateResidue(r.Name)
	}
	for _, m := range srcmols {
		mol := T.CreateMolecule(m.Name)
		for i, b := range m.beads {
			mol.AddBead(T.beads[b.id+bead0], m.beadNames[i])
		}
	}
	for _, ic := range srcics {
		T.AddBondedInteraction(ic.shifted(bead0, mol0))
	}
	T.exclusions.merge(other.exclusions, bead0)
}

// CopyTopologyData makes T a copy of src. T is cleaned up first, then gets
// the box (with the same box type), time, step, residues, beads, molecules,
// interactions and exclusions of src. The copy shares no data with src.
// Copying a topology onto itself does nothing.
func (T *Topology) CopyTopologyData(src *Topology) {
	if src == nil {
		panic(ErrNilTopology)
	}
	if src == T {
		return
	}
	T.Cleanup()
	T.SetBox(src.Box(), src.BoxType())
	T.time = src.time
	T.step = src.step
	T.exclusions.NrExcl = src.exclusions.NrExcl
	for _, r := range src.residues {
		T.CreateResidue(r.Name, r.id)
	}
	for _, b := range src.beads {
		nb := T.CreateBead(b.Symmetry, b.Name, T.typeLike(b.typ), b.ResNr, b.Mass, b.Charge)
		nb.copyState(b)
	}
	for _, m := range src.molecules {
		mol := T.CreateMolecule(m.Name)
		for i, b := range m.beads {
			mol.AddBead(T.beads[b.id], m.beadNames[i])
		}
	}
	for _, ic := range src.interactions {
		T.AddBondedInteraction(ic.shifted(0, 0))
	}
	T.exclusions.merge(src.exclusions, 0)
}

// typeLike returns the type of T with the same name as bt, creating it if
// needed. Returns nil for a nil bt.
func (T *Topology) typeLike(bt *BeadType) *BeadType {
	if bt == nil {
		return nil
	}
	return T.GetOrCreateBeadType(bt.name)
}
