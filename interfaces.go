/*
 * interfaces.go, part of goCSG.
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
	v3 "github.com/rmera/gocsg/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// BoundaryCondition is the geometry of the simulation cell. There is one
// implementation per BoxType, obtained with NewBoundaryCondition.
type BoundaryCondition interface {
	//SetBox sets the box matrix. The columns of box are the lattice vectors.
	SetBox(box *v3.Matrix)

	//Box returns the box matrix. Changes to it don't affect the
	//boundary condition.
	Box() *v3.Matrix

	//ShortestConnection returns the shortest vector going from ri to
	//any periodic image of rj.
	ShortestConnection(ri, rj r3.Vec) r3.Vec

	//BoxVolume returns the volume of the box.
	BoxVolume() float64

	//Type returns the box type of the boundary condition.
	Type() BoxType
}

// TopologyReader is implemented by anything that can fill a Topology
// from a file.
type TopologyReader interface {
	ReadTopology(file string, top *Topology) error
}

// TrajectoryReader reads frames of a trajectory into a Topology, which must
// already contain the beads of the system. NextFrame returns an error
// implementing LastFrameError when the trajectory ends normally.
type TrajectoryReader interface {
	Open(file string) error
	FirstFrame(top *Topology) error
	NextFrame(top *Topology) error
	Close() error
}

// Logger is the minimal logging facility used by goCSG. *log.Logger
// implements it.
type Logger interface {
	Printf(format string, v ...any)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
}

// TrajError is the interface for errors in trajectories
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so they can be
// filtered in a typeswitch that looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}
