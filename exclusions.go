/*
 * exclusions.go, part of goCSG.
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
	"bufio"
	"fmt"
	"io"
	"slices"
)

// ExclusionList is the table of bead pairs excluded from the non-bonded
// interactions. Pairs are not ordered: excluding (i,j) also excludes (j,i).
type ExclusionList struct {
	//NrExcl is the number of bonds within which beads are excluded, as in
	//the gromacs nrexcl. With 0, only the beads in the same interaction
	//are excluded.
	NrExcl int
	pairs  map[[2]int]struct{}
}

// NewExclusionList returns an empty exclusion list.
func NewExclusionList() *ExclusionList {
	return &ExclusionList{pairs: make(map[[2]int]struct{})}
}

// Clear removes all the exclusions. NrExcl is kept.
func (E *ExclusionList) Clear() {
	E.pairs = make(map[[2]int]struct{})
}

// Len returns the number of excluded pairs.
func (E *ExclusionList) Len() int {
	return len(E.pairs)
}

// Exclude excludes the pair formed by the beads with ids i and j.
// A bead is never excluded with itself.
func (E *ExclusionList) Exclude(i, j int) {
	if i == j {
		return
	}
	E.pairs[pairKey(i, j)] = struct{}{}
}

// ExcludeAll excludes every pair in the given list of bead ids.
func (E *ExclusionList) ExcludeAll(ids []int) {
	for k, i := range ids {
		for _, j := range ids[k+1:] {
			E.Exclude(i, j)
		}
	}
}

// IsExcluded returns whether the pair i, j is excluded.
func (E *ExclusionList) IsExcluded(i, j int) bool {
	_, ok := E.pairs[pairKey(i, j)]
	return ok
}

// Exclusions returns the sorted ids of the beads excluded with the bead
// with id bead.
func (E *ExclusionList) Exclusions(bead int) []int {
	ret := make([]int, 0, 4)
	for k := range E.pairs {
		switch bead {
		case k[0]:
			ret = append(ret, k[1])
		case k[1]:
			ret = append(ret, k[0])
		}
	}
	slices.Sort(ret)
	return ret
}

// merge adds the pairs of src, with both ids displaced by offset.
func (E *ExclusionList) merge(src *ExclusionList, offset int) {
	keys := make([][2]int, 0, len(src.pairs))
	for k := range src.pairs {
		keys = append(keys, k)
	}
	for _, k := range keys {
		E.Exclude(k[0]+offset, k[1]+offset)
	}
}

// CreateExclusions replaces the table with the exclusions of top: all the
// pairs of beads that take part in the same bonded interaction, and, if NrExcl
// is larger than 0, all the pairs within NrExcl bonds of each other.
func (E *ExclusionList) CreateExclusions(top *Topology) {
	if top == nil {
		panic(ErrNilTopology)
	}
	E.Clear()
	for _, ic := range top.interactions {
		E.ExcludeAll(ic.Beads)
	}
	if E.NrExcl <= 0 {
		return
	}
	g := top.BondGraph()
	for i := range top.beads {
		for _, j := range g.Neighbors(i, E.NrExcl) {
			if j > i {
				E.Exclude(i, j)
			}
		}
	}
}

// WriteTo writes the table in the format of a gromacs [ exclusions ]
// section: one line per bead with 1-based ids, the bead first, then the
// beads with larger ids excluded with it. It implements io.WriterTo.
func (E *ExclusionList) WriteTo(w io.Writer) (int64, error) {
	partners := make(map[int][]int)
	for k := range E.pairs {
		partners[k[0]] = append(partners[k[0]], k[1])
	}
	keys := make([]int, 0, len(partners))
	for k := range partners {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	bw := bufio.NewWriter(w)
	var total int64
	for _, k := range keys {
		p := partners[k]
		slices.Sort(p)
		n, err := fmt.Fprintf(bw, "%4d", k+1)
		total += int64(n)
		if err != nil {
			return total, err
		}
		for _, v := range p {
			n, err = fmt.Fprintf(bw, " %4d", v+1)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err = bw.WriteString("\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}
