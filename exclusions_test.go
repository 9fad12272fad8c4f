/*
 * exclusions_test.go, part of goCSG.
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
	"strings"
	"testing"
)

// chainTop returns a linear chain of n beads joined by bonds, with one
// angle between the first three beads.
func chainTop(n int) *Topology {
	top := beadsTop(n)
	for i := 0; i < n-1; i++ {
		ic, err := NewInteraction(Bond, "bond", 0, i, i+1)
		if err != nil {
			panic(err)
		}
		top.AddBondedInteraction(ic)
	}
	ang, err := NewInteraction(Angle, "angle", 0, 0, 1, 2)
	if err != nil {
		panic(err)
	}
	top.AddBondedInteraction(ang)
	return top
}

func TestRebuildExclusions(Te *testing.T) {
	top := chainTop(6)
	top.RebuildExclusions()
	ex := top.Exclusions()
	//5 bonds, plus 0-2 from the angle.
	if ex.Len() != 6 {
		Te.Errorf("expected 6 excluded pairs, got %d", ex.Len())
	}
	if !ex.IsExcluded(2, 0) || !ex.IsExcluded(3, 4) || ex.IsExcluded(1, 3) {
		Te.Error("wrong exclusions")
	}
	if fmt.Sprint(ex.Exclusions(1)) != "[0 2]" {
		Te.Errorf("wrong exclusions for bead 1: %v", ex.Exclusions(1))
	}
	ex.NrExcl = 3
	top.RebuildExclusions()
	//pairs up to 3 bonds apart: 5 + 4 + 3
	if ex.Len() != 12 {
		Te.Errorf("expected 12 excluded pairs, got %d", ex.Len())
	}
	if !ex.IsExcluded(0, 3) || ex.IsExcluded(0, 4) || !ex.IsExcluded(5, 2) {
		Te.Error("wrong exclusions with NrExcl 3")
	}
	if fmt.Sprint(ex.Exclusions(0)) != "[1 2 3]" {
		Te.Errorf("wrong exclusions for bead 0: %v", ex.Exclusions(0))
	}
	ex.Exclude(4, 4)
	if ex.IsExcluded(4, 4) {
		Te.Error("a bead can't be excluded with itself")
	}
}

func TestExclusionsWriteTo(Te *testing.T) {
	top := chainTop(4)
	top.RebuildExclusions()
	var sb strings.Builder
	n, err := top.Exclusions().WriteTo(&sb)
	if err != nil {
		Te.Fatal(err)
	}
	expected := "   1    2    3\n   2    3\n   3    4\n"
	if sb.String() != expected {
		Te.Errorf("expected:\n%sgot:\n%s", expected, sb.String())
	}
	if n != int64(len(expected)) {
		Te.Errorf("WriteTo reported %d bytes for %d", n, len(expected))
	}
}

func TestBondGraph(Te *testing.T) {
	top := chainTop(5)
	//a second fragment
	b := top.CreateBead(Spherical, "X", nil, 0, 1, 0)
	c := top.CreateBead(Spherical, "Y", nil, 0, 1, 0)
	ic, _ := NewInteraction(Bond, "bond", 1, b.ID(), c.ID())
	top.AddBondedInteraction(ic)
	top.CreateBead(Spherical, "lonely", nil, 0, 1, 0)
	g := top.BondGraph()
	if !g.HasEdgeBetween(1, 0) || g.HasEdgeBetween(0, 2) {
		Te.Error("wrong edges: the angle shouldn't make an edge")
	}
	if e := g.Edge(3, 4); e == nil || e.(BondEdge).Bond.Beads[0] != 3 {
		Te.Errorf("wrong edge %v", e)
	}
	if g.Edge(0, 4) != nil {
		Te.Error("no edge expected between 0 and 4")
	}
	if fmt.Sprint(g.Neighbors(2, 1)) != "[1 3]" {
		Te.Errorf("wrong neighbors of 2: %v", g.Neighbors(2, 1))
	}
	if fmt.Sprint(g.Neighbors(0, 10)) != "[1 2 3 4]" {
		Te.Errorf("wrong neighbors of 0: %v", g.Neighbors(0, 10))
	}
	if fmt.Sprint(g.Path(4, 1)) != "[4 3 2 1]" {
		Te.Errorf("wrong path: %v", g.Path(4, 1))
	}
	if g.Path(0, 6) != nil {
		Te.Error("beads 0 and 6 are not connected")
	}
	frags := g.Fragments()
	if fmt.Sprint(frags) != "[[0 1 2 3 4] [5 6] [7]]" {
		Te.Errorf("wrong fragments: %v", frags)
	}
	if g.Nodes().Len() != 8 {
		Te.Error("the graph should have all the beads")
	}
}
