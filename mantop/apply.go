/*
 * apply.go, part of goCSG.
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

package mantop

import (
	"fmt"
	"strconv"
	"strings"

	csg "github.com/rmera/gocsg"
	"gonum.org/v1/gonum/spatial/r3"
)

// Apply completes top with the configuration: box, molecules, renames,
// masses and bonded terms, in that order. If molecules were created,
// their naming is checked. The exclusions of top are rebuilt at the end.
// top is left partially modified if an error is returned.
func (C *Config) Apply(top *csg.Topology) error {
	if err := C.Validate(); err != nil {
		return err
	}
	switch len(C.Box) {
	case 3:
		top.SetBox(csg.DiagonalBox(C.Box[0], C.Box[1], C.Box[2]))
	case 9:
		b := C.Box
		top.SetBox(csg.BoxFromVectors(r3.Vec{X: b[0], Y: b[1], Z: b[2]}, r3.Vec{X: b[3], Y: b[4], Z: b[5]}, r3.Vec{X: b[6], Y: b[7], Z: b[8]}))
	}
	if C.NrExcl != nil {
		top.Exclusions().NrExcl = *C.NrExcl
	}
	created := true
	switch l := C.Molecules; {
	case l.ByResidue:
		if err := top.CreateMoleculesByResidue(); err != nil {
			return fmt.Errorf("mantop: %w", err)
		}
	case l.OneMolecule != "":
		top.CreateOneBigMolecule(l.OneMolecule)
	case len(l.Ranges) > 0:
		for _, r := range l.Ranges {
			top.CreateMoleculesByRange(r.Name, r.First, r.NBeads, r.NMols)
		}
	default:
		created = false
	}
	for _, r := range C.RenameMolecules {
		if err := top.RenameMolecules(r.Range, r.Name); err != nil {
			return fmt.Errorf("mantop: rename_molecules: %w", err)
		}
	}
	for _, r := range C.RenameBeadTypes {
		top.RenameBeadType(r.Pattern, r.Name)
	}
	for _, m := range C.Masses {
		top.SetBeadTypeMass(m.Pattern, m.Mass)
	}
	if created || len(C.RenameMolecules) > 0 {
		if err := top.CheckMoleculeNaming(); err != nil {
			return fmt.Errorf("mantop: %w", err)
		}
	}
	for _, b := range C.Bonded {
		if err := b.apply(top); err != nil {
			return err
		}
	}
	top.RebuildExclusions()
	return nil
}

// apply adds the terms of the group to every molecule with the right name.
func (B BondedGroup) apply(top *csg.Topology) error {
	kind, err := csg.ParseInteractionKind(B.Kind)
	if err != nil {
		return fmt.Errorf("mantop: bonded: %w", err)
	}
	found := false
	for _, mol := range top.Molecules() {
		if mol.Name != B.Molecule {
			continue
		}
		found = true
		for _, t := range B.Terms {
			ids, err := termBeads(mol, t)
			if err != nil {
				return fmt.Errorf("mantop: bonded group %s: %w", B.Group, err)
			}
			ic, err := csg.NewInteraction(kind, B.Group, mol.ID(), ids...)
			if err != nil {
				return fmt.Errorf("mantop: bonded group %s: %w", B.Group, err)
			}
			ic.Params = append([]float64(nil), B.Params...)
			top.AddBondedInteraction(ic)
		}
	}
	if !found {
		return fmt.Errorf("mantop: bonded group %s: no molecule named %s", B.Group, B.Molecule)
	}
	return nil
}

// termBeads returns the topology ids of the beads of mol in term. Numbers
// are 1-based indexes in the molecule, anything else is a bead name.
func termBeads(mol *csg.Molecule, term string) ([]int, error) {
	fields := strings.Fields(term)
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		i, err := strconv.Atoi(f)
		if err == nil {
			i--
		} else {
			i = mol.BeadByName(f)
		}
		if i < 0 || i >= mol.BeadCount() {
			return nil, fmt.Errorf("molecule %d (%s) has no bead %s: %w", mol.ID()+1, mol.Name, f, csg.ErrOutOfRange)
		}
		ids = append(ids, mol.Bead(i).ID())
	}
	return ids, nil
}
