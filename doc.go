/*
 * doc.go, part of goCSG.
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

/*
Package csg is the main package of the goCSG library. It provides the topology
of coarse-grained molecular systems: beads, bead types, residues, molecules,
bonded interactions and the simulation box, together with the operations needed
to build, merge, copy and query them.

	**goCSG Capabilities**

	Builds topologies bead by bead, or through readers (see the lammps
	package for LAMMPS dump files).

	Groups beads into molecules by 1-based range, by residue, or as one
	big molecule. Merges and copies whole topologies.

	Renames molecules (by range expressions such as "1-3,7") and bead types
	(by shell-style wildcards such as "C*"), and overrides bead masses.

	Keeps bonded interactions grouped by name, with dense group ids.

	Open, orthorhombic and triclinic boundary conditions, with minimum
	image distances, box volume, shortest box size and box type detection.

	Exclusion tables built from the bonded interactions and, optionally, from
	the bond graph, which implements gonum's graph interfaces.

	Centers of mass of molecules across periodic boundaries.

A manual topology can be applied to a Topology from a YAML file with the
mantop package.

A Topology is meant to be built and modified by one goroutine. Queries
that don't modify it can run concurrently.
*/
package csg
