/*
 * edit.go, part of goCSG.
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

// RenameMolecules sets the name of the molecules with the 1-based indexes in
// the range expression r (see ParseRange) to name. It returns an ErrOutOfRange
// error at the first index that doesn't correspond to a molecule. Molecules
// before that index in r are renamed anyway.
func (T *Topology) RenameMolecules(r, name string) error {
	indexes, err := ParseRange(r)
	if err != nil {
		return errDecorate(err, "Topology.RenameMolecules")
	}
	for _, i := range indexes {
		if i < 1 || i > len(T.molecules) {
			return newError(ErrOutOfRange, "Topology.RenameMolecules", "molecule %d requested, topology has %d", i, len(T.molecules))
		}
		T.molecules[i-1].Name = name
	}
	return nil
}

// RenameBeadType renames the types of the beads whose type name matches
// the shell-style pattern (see Wildcmp) to newname. Since types are shared,
// all the beads of a matching type get the new name. If a type called newname
// already exists, the matching beads are moved to that type instead, and
// the old types stay in the topology, unused.
func (T *Topology) RenameBeadType(pattern, newname string) {
	matched := make([]*BeadType, 0, 1)
	seen := make(map[*BeadType]bool)
	for _, b := range T.beads {
		t := b.typ
		if t == nil || seen[t] {
			continue
		}
		seen[t] = true
		if Wildcmp(pattern, t.name) {
			matched = append(matched, t)
		}
	}
	for _, t := range matched {
		if t.name == newname {
			continue
		}
		if id, ok := T.beadTypeMap[newname]; ok {
			target := T.beadTypes[id]
			for _, b := range T.beads {
				if b.typ == t {
					b.typ = target
				}
			}
			continue
		}
		delete(T.beadTypeMap, t.name)
		t.name = newname
		T.beadTypeMap[newname] = t.id
	}
}

// SetBeadTypeMass sets the mass of each bead whose type name matches the
// shell-style pattern to mass. Only the beads are changed.
func (T *Topology) SetBeadTypeMass(pattern string, mass float64) {
	for _, b := range T.beads {
		if b.typ != nil && Wildcmp(pattern, b.typ.name) {
			b.Mass = mass
		}
	}
}

// CheckMoleculeNaming returns an ErrNamingInconsistent error if two molecules
// with the same name have different numbers of beads.
func (T *Topology) CheckMoleculeNaming() error {
	nbeads := make(map[string]int)
	for _, m := range T.molecules {
		n, ok := nbeads[m.Name]
		if !ok {
			nbeads[m.Name] = len(m.beads)
			continue
		}
		if n != len(m.beads) {
			return newError(ErrNamingInconsistent, "Topology.CheckMoleculeNaming", "molecules called %s have %d and %d beads", m.Name, n, len(m.beads))
		}
	}
	return nil
}
