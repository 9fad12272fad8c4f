/*
 * bondgraph.go, part of goCSG.
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
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// BeadNode is a bead as a node of a gonum graph.
type BeadNode struct {
	*Bead
}

// ID returns the bead id, as required by graph.Node
func (B BeadNode) ID() int64 {
	return int64(B.Bead.id)
}

// BondEdge joins two beads bonded by a Bond interaction.
type BondEdge struct {
	F, T BeadNode
	Bond *Interaction
}

func (B BondEdge) From() graph.Node { return B.F }

func (B BondEdge) To() graph.Node { return B.T }

// ReversedEdge returns the same bond, going the other way. Bonds are not directional.
func (B BondEdge) ReversedEdge() graph.Edge {
	return BondEdge{F: B.T, T: B.F, Bond: B.Bond}
}

// BondGraph is the undirected graph of the beads of a topology, connected by
// their Bond interactions. It implements gonum's graph.Undirected, so the
// gonum graph algorithms can be used on it. The graph is a snapshot: later
// changes to the topology are not reflected.
type BondGraph struct {
	nodes []graph.Node
	adj   [][]int
	bonds map[[2]int]*Interaction
}

// BondGraph builds the bond graph of the topology. Interactions of kind
// Bond that refer to non-existent beads are skipped with a warning.
func (T *Topology) BondGraph() *BondGraph {
	G := &BondGraph{
		nodes: make([]graph.Node, len(T.beads)),
		adj:   make([][]int, len(T.beads)),
		bonds: make(map[[2]int]*Interaction),
	}
	for i, b := range T.beads {
		G.nodes[i] = BeadNode{b}
	}
	for _, ic := range T.interactions {
		if ic.Kind != Bond {
			continue
		}
		i, j := ic.Beads[0], ic.Beads[1]
		if i < 0 || j < 0 || i >= len(T.beads) || j >= len(T.beads) || i == j {
			T.log.Printf("BondGraph: skipping bond %v", ic)
			continue
		}
		k := pairKey(i, j)
		if _, ok := G.bonds[k]; ok {
			continue
		}
		G.bonds[k] = ic
		G.adj[i] = append(G.adj[i], j)
		G.adj[j] = append(G.adj[j], i)
	}
	return G
}

func pairKey(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

func (G *BondGraph) valid(id int64) bool {
	return id >= 0 && id < int64(len(G.nodes))
}

// Node returns the node with the given id, or nil if it doesn't exist.
func (G *BondGraph) Node(id int64) graph.Node {
	if !G.valid(id) {
		return nil
	}
	return G.nodes[id]
}

// Nodes returns all the nodes of the graph.
func (G *BondGraph) Nodes() graph.Nodes {
	if len(G.nodes) == 0 {
		return graph.Empty
	}
	return iterator.NewOrderedNodes(G.nodes)
}

// From returns the beads bonded to the bead with the given id.
func (G *BondGraph) From(id int64) graph.Nodes {
	if !G.valid(id) || len(G.adj[id]) == 0 {
		return graph.Empty
	}
	ret := make([]graph.Node, len(G.adj[id]))
	for i, v := range G.adj[id] {
		ret[i] = G.nodes[v]
	}
	return iterator.NewOrderedNodes(ret)
}

// HasEdgeBetween returns whether the beads x and y are bonded.
func (G *BondGraph) HasEdgeBetween(x, y int64) bool {
	if !G.valid(x) || !G.valid(y) {
		return false
	}
	_, ok := G.bonds[pairKey(int(x), int(y))]
	return ok
}

// Edge returns the bond between u and v, or nil if there is none.
func (G *BondGraph) Edge(u, v int64) graph.Edge {
	if !G.HasEdgeBetween(u, v) {
		return nil
	}
	return BondEdge{F: G.nodes[u].(BeadNode), T: G.nodes[v].(BeadNode), Bond: G.bonds[pairKey(int(u), int(v))]}
}

// EdgeBetween is the same as Edge, as the graph is undirected.
func (G *BondGraph) EdgeBetween(x, y int64) graph.Edge {
	return G.Edge(x, y)
}

// Neighbors returns the ids of the beads separated from the bead with id
// bead by at least 1 and at most depth bonds, sorted.
func (G *BondGraph) Neighbors(bead, depth int) []int {
	if !G.valid(int64(bead)) || depth < 1 {
		return nil
	}
	ret := make([]int, 0, len(G.adj[bead]))
	var bf traverse.BreadthFirst
	bf.Walk(G, G.nodes[bead], func(n graph.Node, d int) bool {
		if d > depth {
			return true
		}
		if d > 0 {
			ret = append(ret, int(n.ID()))
		}
		return false
	})
	slices.Sort(ret)
	return ret
}

// Path returns the ids of the beads in a shortest bonded path from bead i
// to bead j, both included, or nil if they are not connected.
func (G *BondGraph) Path(i, j int) []int {
	if !G.valid(int64(i)) || !G.valid(int64(j)) {
		return nil
	}
	sh := path.DijkstraFrom(G.nodes[i], G)
	nodes, _ := sh.To(int64(j))
	if len(nodes) == 0 {
		return nil
	}
	ret := make([]int, len(nodes))
	for k, n := range nodes {
		ret[k] = int(n.ID())
	}
	return ret
}

// Fragments returns the ids of the beads in each connected fragment of the
// graph. Each fragment is sorted, and fragments are sorted by their first bead.
// Beads without bonds are fragments on their own.
func (G *BondGraph) Fragments() [][]int {
	cc := topo.ConnectedComponents(G)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		f := make([]int, len(c))
		for k, n := range c {
			f[k] = int(n.ID())
		}
		slices.Sort(f)
		ret = append(ret, f)
	}
	slices.SortFunc(ret, func(a, b []int) int { return a[0] - b[0] })
	return ret
}
