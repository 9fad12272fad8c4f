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

// Package mantop reads "manual topologies": YAML files with the parts of a
// topology that the structure and trajectory formats don't carry, such as
// the split of the beads in molecules, their names, masses, and the bonded
// terms of each molecule. A Config is applied to a topology already holding
// the beads.
//
// An example:
//
//	box: [5.0, 5.0, 5.0]
//	nrexcl: 1
//	molecules:
//	  ranges:
//	    - {name: HEX, first: 1, nbeads: 3, nmols: 100}
//	rename_beadtypes:
//	  - {pattern: "C*", name: CH2}
//	masses:
//	  - {pattern: CH2, mass: 14.027}
//	bonded:
//	  - molecule: HEX
//	    group: bond
//	    kind: bond
//	    terms: ["1 2", "2 3"]
package mantop
