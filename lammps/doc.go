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

// Package lammps reads LAMMPS text dump files into goCSG topologies.
//
// A DumpReader can be used both to build a topology from the first frame of
// a dump (ReadTopology) and to read the frames of the trajectory one by one
// (Open, FirstFrame, NextFrame, Close). Orthogonal and triclinic boxes, scaled
// and unwrapped coordinates, velocities and forces are supported. Files
// ending in .gz or .zst are decompressed on the fly.
package lammps
