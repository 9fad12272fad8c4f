/*
 * dump.go, part of goCSG.
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

package lammps

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	csg "github.com/rmera/gocsg"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultBeadType is the type given to the beads created from a dump
// that has no "type" column.
const DefaultBeadType = "no"

// DumpReader reads LAMMPS text dump files ("dump atom" or "dump custom"),
// plain, gzip-compressed (.gz) or zstd-compressed (.zst, .zstd).
// It implements csg.TopologyReader and csg.TrajectoryReader.
type DumpReader struct {
	//Dt is the time between two steps. The time of each frame is set to
	//step*Dt, unless the dump has an ITEM: TIME section.
	Dt float64

	f        *os.File
	dec      io.ReadCloser
	h        *bufio.Reader
	filename string
	readable bool
	topology bool
	natoms   int
	origin   r3.Vec
	a, b, c  r3.Vec
	warned   map[string]bool
	log      csg.Logger
}

// New returns a new reader, with Dt 1.
func New() *DumpReader {
	return &DumpReader{Dt: 1, natoms: -1, warned: make(map[string]bool), log: log.Default()}
}

// SetLogger sets the logger for the warnings of the reader.
func (D *DumpReader) SetLogger(l csg.Logger) {
	if l == nil {
		l = log.Default()
	}
	D.log = l
}

// ReadTopology reads the beads of the first frame of the file into top,
// creating them if top is empty. Bead types, masses, charges and molecule ids
// (as 0-based residue numbers, creating the residues) are taken from the
// columns present in the dump.
func (D *DumpReader) ReadTopology(file string, top *csg.Topology) error {
	if err := D.Open(file); err != nil {
		return errDecorate(err, "ReadTopology")
	}
	defer D.Close()
	D.topology = true
	defer func() { D.topology = false }()
	top.Cleanup()
	if err := D.NextFrame(top); err != nil {
		return errDecorate(err, "ReadTopology")
	}
	return nil
}

// Open opens the file for reading. The compression is detected from the
// file extension.
func (D *DumpReader) Open(file string) error {
	if D.readable {
		D.Close()
	}
	if D.warned == nil {
		D.warned = make(map[string]bool)
	}
	if D.log == nil {
		D.log = log.Default()
	}
	var err error
	D.filename = file
	D.f, err = os.Open(file)
	if err != nil {
		return newError(UnableToOpen+": "+err.Error(), file, "Open")
	}
	buf := bufio.NewReader(D.f)
	lower := strings.ToLower(file)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		D.dec, err = gzip.NewReader(buf)
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		var z *zstd.Decoder
		z, err = zstd.NewReader(buf)
		if err == nil {
			D.dec = z.IOReadCloser()
		}
	default:
		D.dec = io.NopCloser(buf)
	}
	if err != nil {
		D.f.Close()
		return newError("Can't read compressed stream: "+err.Error(), file, "Open")
	}
	D.h = bufio.NewReader(D.dec)
	D.natoms = -1
	D.readable = true
	return nil
}

// FirstFrame reads the first frame of the trajectory into top, which must
// already have the beads of the system.
func (D *DumpReader) FirstFrame(top *csg.Topology) error {
	return errDecorate(D.NextFrame(top), "FirstFrame")
}

// NextFrame reads the next frame into top: step, time, box, and the
// positions, velocities and forces present in the dump. At the normal end
// of the file it returns an error implementing csg.LastFrameError.
func (D *DumpReader) NextFrame(top *csg.Topology) error {
	if !D.readable {
		return newError(TrajUnIniRead, D.filename, "NextFrame")
	}
	first := true
	for {
		line, err := D.h.ReadString('\n')
		if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
			if err == io.EOF && first {
				//nothing bad happened here, the trajectory just ended.
				D.Close()
				return newlastFrameError(D.filename, "NextFrame")
			}
			return newError(fmt.Sprintf("%s: %s", WrongFormat, err), D.filename, "NextFrame")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "ITEM:") {
			return newError(fmt.Sprintf("%s: expected an ITEM line, got %q", WrongFormat, line), D.filename, "NextFrame")
		}
		item := strings.TrimSpace(strings.TrimPrefix(line, "ITEM:"))
		first = false
		switch {
		case item == "TIMESTEP":
			err = D.readTimestep(top)
		case item == "TIME":
			err = D.readTime(top)
		case item == "UNITS":
			_, err = D.readLine()
		case item == "NUMBER OF ATOMS":
			err = D.readNumAtoms(top)
		case strings.HasPrefix(item, "BOX BOUNDS"):
			err = D.readBox(top, strings.Fields(strings.TrimPrefix(item, "BOX BOUNDS")))
		case strings.HasPrefix(item, "ATOMS"):
			//the atoms are the last item of a frame.
			return errDecorate(D.readAtoms(top, strings.Fields(strings.TrimPrefix(item, "ATOMS"))), "NextFrame")
		default:
			return newError(fmt.Sprintf("%s: unknown item %q", WrongFormat, item), D.filename, "NextFrame")
		}
		if err != nil {
			return errDecorate(err, "NextFrame")
		}
	}
}

// Close closes the file, and marks the reader as unreadable.
func (D *DumpReader) Close() error {
	if !D.readable {
		return nil
	}
	D.readable = false
	D.dec.Close()
	return D.f.Close()
}

// readLine returns the next line of the file, without blanks at the ends.
func (D *DumpReader) readLine() (string, error) {
	line, err := D.h.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", newError("Unexpected end of file", D.filename, "readLine")
	}
	return strings.TrimSpace(line), nil
}

func (D *DumpReader) readTimestep(top *csg.Topology) error {
	line, err := D.readLine()
	if err != nil {
		return errDecorate(err, "readTimestep")
	}
	step, err := strconv.Atoi(line)
	if err != nil {
		return newError(fmt.Sprintf("%s: bad timestep %q", WrongFormat, line), D.filename, "readTimestep")
	}
	top.SetStep(step)
	top.SetTime(float64(step) * D.Dt)
	return nil
}

func (D *DumpReader) readTime(top *csg.Topology) error {
	line, err := D.readLine()
	if err != nil {
		return errDecorate(err, "readTime")
	}
	t, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return newError(fmt.Sprintf("%s: bad time %q", WrongFormat, line), D.filename, "readTime")
	}
	top.SetTime(t)
	return nil
}

func (D *DumpReader) readNumAtoms(top *csg.Topology) error {
	line, err := D.readLine()
	if err != nil {
		return errDecorate(err, "readNumAtoms")
	}
	D.natoms, err = strconv.Atoi(line)
	if err != nil || D.natoms < 0 {
		return newError(fmt.Sprintf("%s: bad number of atoms %q", WrongFormat, line), D.filename, "readNumAtoms")
	}
	if D.topology && top.BeadCount() == 0 {
		bt := top.GetOrCreateBeadType(DefaultBeadType)
		for i := 0; i < D.natoms; i++ {
			top.CreateBead(csg.Spherical, "", bt, 0, 0, 0)
		}
	}
	if D.natoms != top.BeadCount() {
		return newError(fmt.Sprintf("%s: %d in the topology, %d in the dump", BeadMismatch, top.BeadCount(), D.natoms), D.filename, "readNumAtoms")
	}
	return nil
}

// readBox reads the three lines of bounds. For triclinic boxes (a "xy xz yz"
// header) the bounds are the ones of the enclosing orthogonal box, plus the
// tilt factors.
func (D *DumpReader) readBox(top *csg.Topology, header []string) error {
	triclinic := len(header) >= 3 && header[0] == "xy"
	var lo, hi, tilt [3]float64
	for i := 0; i < 3; i++ {
		line, err := D.readLine()
		if err != nil {
			return errDecorate(err, "readBox")
		}
		fields := strings.Fields(line)
		need := 2
		if triclinic {
			need = 3
		}
		if len(fields) < need {
			return newError(fmt.Sprintf("%s: bad box line %q", WrongFormat, line), D.filename, "readBox")
		}
		vals := make([]float64, need)
		for j := range vals {
			vals[j], err = strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return newError(fmt.Sprintf("%s: bad box line %q", WrongFormat, line), D.filename, "readBox")
			}
		}
		lo[i], hi[i] = vals[0], vals[1]
		if triclinic {
			tilt[i] = vals[2]
		}
	}
	xy, xz, yz := tilt[0], tilt[1], tilt[2]
	if triclinic {
		lo[0] -= math.Min(math.Min(0, xy), math.Min(xz, xy+xz))
		hi[0] -= math.Max(math.Max(0, xy), math.Max(xz, xy+xz))
		lo[1] -= math.Min(0, yz)
		hi[1] -= math.Max(0, yz)
	}
	D.origin = r3.Vec{X: lo[0], Y: lo[1], Z: lo[2]}
	D.a = r3.Vec{X: hi[0] - lo[0]}
	D.b = r3.Vec{X: xy, Y: hi[1] - lo[1]}
	D.c = r3.Vec{X: xz, Y: yz, Z: hi[2] - lo[2]}
	top.SetBox(csg.BoxFromVectors(D.a, D.b, D.c))
	return nil
}

// readAtoms reads one line per bead. columns are the names of the columns,
// as given in the ITEM: ATOMS line.
func (D *DumpReader) readAtoms(top *csg.Topology, columns []string) error {
	if D.natoms < 0 {
		return newError(WrongFormat+": ATOMS before NUMBER OF ATOMS", D.filename, "readAtoms")
	}
	maxmol := 0
	for i := 0; i < D.natoms; i++ {
		line, err := D.readLine()
		if err != nil {
			return errDecorate(err, "readAtoms")
		}
		fields := strings.Fields(line)
		if len(fields) != len(columns) {
			return newError(fmt.Sprintf("%s: %d fields for %d columns in %q", WrongFormat, len(fields), len(columns), line), D.filename, "readAtoms")
		}
		id := i
		for j, col := range columns {
			if col == "id" {
				n, err := strconv.Atoi(fields[j])
				if err != nil {
					return newError(fmt.Sprintf("%s: bad id %q", WrongFormat, fields[j]), D.filename, "readAtoms")
				}
				id = n - 1
			}
		}
		if id < 0 || id >= top.BeadCount() {
			return newError(fmt.Sprintf("%s: bead id %d out of range", WrongFormat, id+1), D.filename, "readAtoms")
		}
		b := top.Bead(id)
		var pos, scaled, vel, force r3.Vec
		var haspos, hasscaled, hasvel, hasforce bool
		for j, col := range columns {
			v := fields[j]
			switch col {
			case "id":
			case "type":
				if D.topology {
					b.SetType(top.GetOrCreateBeadType(v))
					if b.Name == "" {
						b.Name = v
					}
				}
			case "mol":
				n, err := strconv.Atoi(v)
				if err != nil {
					return newError(fmt.Sprintf("%s: bad molecule id %q", WrongFormat, v), D.filename, "readAtoms")
				}
				if D.topology {
					b.ResNr = n - 1
					maxmol = max(maxmol, n)
				}
			case "element":
				if D.topology {
					b.Name = v
				}
			case "mass", "q":
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return newError(fmt.Sprintf("%s: bad %s %q", WrongFormat, col, v), D.filename, "readAtoms")
				}
				if D.topology && col == "mass" {
					b.Mass = f
				} else if D.topology {
					b.Charge = f
				}
			default:
				target, set, ok := D.vectorColumn(col, &pos, &scaled, &vel, &force, &haspos, &hasscaled, &hasvel, &hasforce)
				if !ok {
					if !D.warned[col] {
						D.log.Printf("LAMMPS dump %s: ignoring column %s", D.filename, col)
						D.warned[col] = true
					}
					continue
				}
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return newError(fmt.Sprintf("%s: bad %s %q", WrongFormat, col, v), D.filename, "readAtoms")
				}
				target(f)
				*set = true
			}
		}
		if hasscaled && !haspos {
			pos = r3.Add(D.origin, r3.Add(r3.Scale(scaled.X, D.a), r3.Add(r3.Scale(scaled.Y, D.b), r3.Scale(scaled.Z, D.c))))
			haspos = true
		}
		if haspos {
			b.SetPos(pos)
		}
		if hasvel {
			b.SetVel(vel)
		}
		if hasforce {
			b.SetForce(force)
		}
	}
	if D.topology {
		for top.ResidueCount() < maxmol {
			top.CreateResidue(strconv.Itoa(top.ResidueCount() + 1))
		}
	}
	return nil
}

// vectorColumn returns a function that sets the component of the vector the column
// col refers to, and the flag that must be set along with it.
func (D *DumpReader) vectorColumn(col string, pos, scaled, vel, force *r3.Vec, haspos, hasscaled, hasvel, hasforce *bool) (func(float64), *bool, bool) {
	var vec *r3.Vec
	var flag *bool
	axis := col[:1]
	switch col {
	case "x", "y", "z", "xu", "yu", "zu":
		vec, flag = pos, haspos
	case "xs", "ys", "zs", "xsu", "ysu", "zsu":
		vec, flag = scaled, hasscaled
	case "vx", "vy", "vz":
		vec, flag, axis = vel, hasvel, col[1:]
	case "fx", "fy", "fz":
		vec, flag, axis = force, hasforce, col[1:]
	default:
		return nil, nil, false
	}
	switch axis {
	case "x":
		return func(f float64) { vec.X = f }, flag, true
	case "y":
		return func(f float64) { vec.Y = f }, flag, true
	default:
		return func(f float64) { vec.Z = f }, flag, true
	}
}
