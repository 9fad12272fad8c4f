/*
 * property_test.go, part of goCSG.
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
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/spatial/r3"
)

var typeNames = []string{"C", "N", "O", "P", "S"}

// TestTopologyInvariants checks invariants that must hold for any sequence
// of construction calls.
func TestTopologyInvariants(Te *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("bead ids follow creation order and types are unique by name", prop.ForAll(
		func(types []int) bool {
			top := NewTopology()
			for i, t := range types {
				bt := top.GetOrCreateBeadType(typeNames[t])
				if top.GetOrCreateBeadType(typeNames[t]) != bt {
					return false
				}
				b := top.CreateBead(Spherical, "B", bt, 0, 1, 0)
				if b.ID() != i || top.Bead(i) != b {
					return false
				}
			}
			seen := make(map[string]bool)
			for i, bt := range top.BeadTypes() {
				if bt.ID() != i || seen[bt.Name()] {
					return false
				}
				seen[bt.Name()] = true
			}
			return top.BeadCount() == len(types)
		},
		gen.SliceOf(gen.IntRange(0, len(typeNames)-1)),
	))

	properties.Property("group ids are dense and in first-seen order", prop.ForAll(
		func(groups []int) bool {
			top := beadsTop(2)
			first := make(map[string]int)
			count := make(map[string]int)
			for _, g := range groups {
				name := fmt.Sprintf("g%d", g)
				ic, err := NewInteraction(Bond, name, -1, 0, 1)
				if err != nil {
					return false
				}
				top.AddBondedInteraction(ic)
				if _, ok := first[name]; !ok {
					first[name] = len(first)
				}
				count[name]++
				if ic.GroupID() != first[name] {
					return false
				}
			}
			for name, n := range count {
				if len(top.InteractionsInGroup(name)) != n {
					return false
				}
			}
			return len(top.Interactions()) == len(groups)
		},
		gen.SliceOf(gen.IntRange(0, 6)),
	))

	properties.Property("complete ranges give complete molecules", prop.ForAll(
		func(nbeads, nmols, extra int) bool {
			top := beadsTop(nbeads*nmols + extra)
			top.CreateMoleculesByRange("M", 1, nbeads, nmols)
			if top.MoleculeCount() != nmols {
				return false
			}
			id := 0
			for _, m := range top.Molecules() {
				if m.BeadCount() != nbeads {
					return false
				}
				for _, bid := range m.BeadIDs() {
					if bid != id {
						return false
					}
					id++
				}
			}
			return top.CheckMoleculeNaming() == nil
		},
		gen.IntRange(1, 6),
		gen.IntRange(1, 6),
		gen.IntRange(0, 4),
	))

	properties.Property("box type detection", prop.ForAll(
		func(x, y, z, off float64, i, j int) bool {
			box := DiagonalBox(x, y, z)
			if AutoDetectBoxType(box) != OrthorhombicBox {
				return false
			}
			if i == j {
				j = (i + 1) % 3
			}
			box.Set(i, j, off)
			return AutoDetectBoxType(box) == TriclinicBox
		},
		gen.Float64Range(0.5, 20),
		gen.Float64Range(0.5, 20),
		gen.Float64Range(0.5, 20),
		gen.Float64Range(0.1, 5),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
	))

	properties.Property("orthorhombic minimum image stays within half a box", prop.ForAll(
		func(l, x, y, z float64) bool {
			top := NewTopology()
			top.SetBox(DiagonalBox(l, l, l))
			d := top.BCShortestConnection(r3.Vec{}, r3.Vec{X: x, Y: y, Z: z})
			for _, c := range []float64{d.X, d.Y, d.Z} {
				if math.Abs(c) > l/2+1e-9 {
					return false
				}
			}
			return math.Abs(top.ShortestBoxSize()-l) < 1e-9
		},
		gen.Float64Range(1, 20),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
	))

	properties.TestingRun(Te)
}
