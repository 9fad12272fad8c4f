/*
 * mantop_test.go, part of goCSG.
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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	csg "github.com/rmera/gocsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hexane = `
box: [5.0, 6.0, 7.0]
nrexcl: 1
molecules:
  ranges:
    - {name: HEX, first: 1, nbeads: 3, nmols: 2}
rename_molecules:
  - {range: "2", name: HEX}
rename_beadtypes:
  - {pattern: "C?", name: CH2}
masses:
  - {pattern: CH2, mass: 14.027}
bonded:
  - molecule: HEX
    group: bond
    kind: bond
    params: [0.47, 1250]
    terms: ["1 2", "2 3"]
  - molecule: HEX
    group: angle
    kind: angle
    terms: ["A B C"]
`

// beads returns a topology with n beads named A, B and C in turn, of
// types C1, C2 and C3.
func beads(n int) *csg.Topology {
	top := csg.NewTopology()
	names := []string{"A", "B", "C"}
	for i := 0; i < n; i++ {
		bt := top.GetOrCreateBeadType("C" + string(rune('1'+i%3)))
		top.CreateBead(csg.Spherical, names[i%3], bt, i/3, 1, 0)
	}
	return top
}

func TestApply(Te *testing.T) {
	c, err := Load(strings.NewReader(hexane))
	require.NoError(Te, err)
	top := beads(6)
	require.NoError(Te, c.Apply(top))

	assert.Equal(Te, csg.OrthorhombicBox, top.BoxType())
	assert.InDelta(Te, 210.0, top.BoxVolume(), 1e-9)
	require.Equal(Te, 2, top.MoleculeCount())
	for _, m := range top.Molecules() {
		assert.Equal(Te, "HEX", m.Name)
		assert.Equal(Te, 3, m.BeadCount())
	}
	assert.Equal(Te, "CH2", top.BeadTypes()[0].Name())
	for _, b := range top.Beads() {
		assert.Equal(Te, "CH2", b.TypeName())
		assert.Equal(Te, 14.027, b.Mass)
	}
	bonds := top.InteractionsInGroup("bond")
	require.Len(Te, bonds, 4)
	assert.Equal(Te, []int{3, 4}, bonds[2].Beads)
	assert.Equal(Te, 1, bonds[2].Mol)
	assert.Equal(Te, []float64{0.47, 1250}, bonds[3].Params)
	angles := top.InteractionsInGroup("angle")
	require.Len(Te, angles, 2)
	assert.Equal(Te, []int{3, 4, 5}, angles[1].Beads)
	id, ok := top.GroupID("angle")
	assert.True(Te, ok)
	assert.Equal(Te, 1, id)

	ex := top.Exclusions()
	assert.Equal(Te, 1, ex.NrExcl)
	assert.Equal(Te, 6, ex.Len())
	assert.True(Te, ex.IsExcluded(3, 5))
	assert.False(Te, ex.IsExcluded(2, 3))
}

func TestTriclinicBoxAndOneMolecule(Te *testing.T) {
	conf := `
box: [4, 0, 0, 1, 4, 0, 0, 0, 4]
molecules:
  one_molecule: ALL
bonded:
  - {molecule: ALL, group: chain, kind: generic, terms: ["1 2 3 4"]}
`
	c, err := Load(strings.NewReader(conf))
	require.NoError(Te, err)
	top := beads(4)
	require.NoError(Te, c.Apply(top))
	assert.Equal(Te, csg.TriclinicBox, top.BoxType())
	assert.Equal(Te, 1.0, top.Box().At(0, 1))
	require.Equal(Te, 1, top.MoleculeCount())
	assert.Equal(Te, 4, top.Molecule(0).BeadCount())
	//all the pairs of the generic term.
	assert.Equal(Te, 6, top.Exclusions().Len())
}

func TestByResidue(Te *testing.T) {
	c, err := Load(strings.NewReader("molecules:\n  by_residue: true\n"))
	require.NoError(Te, err)
	top := beads(6)
	err = c.Apply(top)
	require.Error(Te, err, "there are no residues yet")
	assert.True(Te, errors.Is(err, csg.ErrResidueNumbering))

	top = beads(6)
	top.CreateResidue("R")
	top.CreateResidue("R")
	require.NoError(Te, c.Apply(top))
	assert.Equal(Te, 2, top.MoleculeCount())
	assert.Equal(Te, "R", top.Molecule(1).Name)
}

func TestLoadErrors(Te *testing.T) {
	bad := map[string]string{
		"unknown key":     "molecule: {}\n",
		"box":             "box: [1, 2, 3, 4]\n",
		"layouts":         "molecules:\n  by_residue: true\n  one_molecule: X\n",
		"range":           "rename_molecules:\n  - {range: \"3-1\", name: X}\n",
		"kind":            "bonded:\n  - {molecule: M, group: g, kind: improper, terms: [\"1 2\"]}\n",
		"bond length":     "bonded:\n  - {molecule: M, group: g, kind: bond, terms: [\"1 2 3\"]}\n",
		"no terms":        "bonded:\n  - {molecule: M, group: g, kind: bond}\n",
		"negative mass":   "masses:\n  - {pattern: A, mass: -1}\n",
		"negative excl":   "nrexcl: -2\n",
		"missing name":    "molecules:\n  ranges:\n    - {first: 1, nbeads: 3, nmols: 2}\n",
		"not yaml at all": "box: [1, 2\n",
	}
	for name, conf := range bad {
		_, err := Load(strings.NewReader(conf))
		assert.Error(Te, err, name)
	}
	c, err := Load(strings.NewReader(""))
	require.NoError(Te, err, "an empty configuration is valid")
	top := beads(3)
	require.NoError(Te, c.Apply(top))
	assert.Equal(Te, 0, top.MoleculeCount())
}

func TestApplyErrors(Te *testing.T) {
	conf := `
molecules:
  one_molecule: M
bonded:
  - {molecule: M, group: g, kind: bond, terms: ["1 9"]}
`
	c, err := Load(strings.NewReader(conf))
	require.NoError(Te, err)
	err = c.Apply(beads(3))
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, csg.ErrOutOfRange))

	c.Bonded[0].Molecule = "NOPE"
	assert.Error(Te, c.Apply(beads(3)), "no molecule is called NOPE")

	c, err = Load(strings.NewReader("molecules:\n  ranges:\n    - {name: M, first: 1, nbeads: 2, nmols: 2}\n"))
	require.NoError(Te, err)
	top := beads(3)
	err = c.Apply(top)
	require.Error(Te, err, "the second molecule is incomplete")
	assert.True(Te, errors.Is(err, csg.ErrNamingInconsistent))
}

func TestLoadFile(Te *testing.T) {
	file := filepath.Join(Te.TempDir(), "hexane.yaml")
	require.NoError(Te, os.WriteFile(file, []byte(hexane), 0o644))
	c, err := LoadFile(file)
	require.NoError(Te, err)
	require.Len(Te, c.Bonded, 2)
	assert.Equal(Te, "angle", c.Bonded[1].Kind)
	_, err = LoadFile(filepath.Join(Te.TempDir(), "missing.yaml"))
	assert.Error(Te, err)
}
