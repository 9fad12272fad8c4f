/*
 * dcd.go, part of goCSG.
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

package dcd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	csg "github.com/rmera/gocsg"
	v3 "github.com/rmera/gocsg/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

const mAXTITLE int32 = 80

// Reader reads CHARMM/NAMD binary (DCD) trajectories into a topology.
// Files ending in .gz or .zst are decompressed on the fly.
// It implements csg.TrajectoryReader.
type Reader struct {
	//Delta is the time between two steps, as given in the file header.
	Delta float64

	natoms   int32
	istart   int32
	nsavc    int32
	nread    int32
	filename string
	readable bool
	readLast bool //Have we read the last frame?
	charmm   bool
	unitcell bool
	fourdim  bool
	f        *os.File
	dec      io.ReadCloser
	dcd      *bufio.Reader
	endian   binary.ByteOrder
	fields   [3][]float32
}

// Len returns the number of beads per frame, or 0 if the reader
// has not been opened.
func (D *Reader) Len() int {
	return int(D.natoms)
}

// Open opens a DCD file and reads its header.
// Big and little endian, CHARMM and X-plor files are supported.
// Files with fixed atoms are not.
func (D *Reader) Open(name string) error {
	if D.readable {
		D.Close()
	}
	var err error
	D.filename = name
	D.f, err = os.Open(name)
	if err != nil {
		return newError(UnableToOpen+": "+err.Error(), name, "Open")
	}
	buf := bufio.NewReader(D.f)
	lower := strings.ToLower(name)
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
		return newError("Can't read compressed stream: "+err.Error(), name, "Open")
	}
	D.dcd = bufio.NewReader(D.dec)
	if err := D.readHeader(); err != nil {
		D.dec.Close()
		D.f.Close()
		return errDecorate(err, "Open")
	}
	for i := range D.fields {
		D.fields[i] = make([]float32, D.natoms)
	}
	D.nread = 0
	D.readLast = false
	D.readable = true
	return nil
}

func (D *Reader) readHeader() error {
	wrap := func(err error) error {
		return newError(fmt.Sprintf("%s: %s", WrongFormat, err), D.filename, "readHeader")
	}
	head := make([]byte, 4)
	if _, err := io.ReadFull(D.dcd, head); err != nil {
		return wrap(err)
	}
	//The first thing in the file is an 84.
	//If it doesn't read as such, the file is big endian.
	D.endian = binary.LittleEndian
	if binary.LittleEndian.Uint32(head) != 84 {
		D.endian = binary.BigEndian
		if binary.BigEndian.Uint32(head) != 84 {
			return wrap(fmt.Errorf("not a DCD file"))
		}
	}
	magic := make([]byte, 4)
	if _, err := io.ReadFull(D.dcd, magic); err != nil {
		return wrap(err)
	}
	if string(magic) != "CORD" {
		return wrap(fmt.Errorf("wrong magic number %q", magic))
	}
	//We read the 20 control integers in one go.
	buf := make([]byte, 80)
	if _, err := io.ReadFull(D.dcd, buf); err != nil {
		return wrap(err)
	}
	icntrl := func(i int) int32 { return int32(D.endian.Uint32(buf[4*i:])) }
	D.istart = icntrl(1)
	D.nsavc = icntrl(2)
	if D.nsavc == 0 {
		D.nsavc = 1
	}
	//X-plor sets the last int to zero, CHARMM sets it to its version number.
	D.charmm = icntrl(19) != 0
	if D.charmm {
		D.Delta = float64(math.Float32frombits(D.endian.Uint32(buf[36:])))
		D.unitcell = icntrl(10) != 0
		D.fourdim = icntrl(11) == 1
	} else {
		D.Delta = math.Float64frombits(D.endian.Uint64(buf[36:]))
	}
	if fixed := icntrl(8); fixed != 0 {
		return newError(fmt.Sprintf("%s: %d fixed atoms", NotSupported, fixed), D.filename, "readHeader")
	}
	if check, err := D.readInt(); err != nil || check != 84 {
		return wrap(fmt.Errorf("bad header block end"))
	}
	//the title block: its size, the number of 80-character lines, the lines, and the size again.
	if _, err := D.readInt(); err != nil {
		return wrap(err)
	}
	ntitle, err := D.readInt()
	if err != nil || ntitle < 0 {
		return wrap(fmt.Errorf("bad title block"))
	}
	if _, err := io.CopyN(io.Discard, D.dcd, int64(ntitle*mAXTITLE)); err != nil {
		return wrap(err)
	}
	if _, err := D.readInt(); err != nil {
		return wrap(err)
	}
	//the number of atoms, as a 4-byte block.
	if check, err := D.readInt(); err != nil || check != 4 {
		return wrap(fmt.Errorf("bad atom number block"))
	}
	if D.natoms, err = D.readInt(); err != nil || D.natoms < 0 {
		return wrap(fmt.Errorf("bad number of atoms"))
	}
	if check, err := D.readInt(); err != nil || check != 4 {
		return wrap(fmt.Errorf("bad atom number block"))
	}
	return nil
}

// FirstFrame reads the first frame of the trajectory into top, which must
// have as many beads as the trajectory.
func (D *Reader) FirstFrame(top *csg.Topology) error {
	return errDecorate(D.NextFrame(top), "FirstFrame")
}

// NextFrame reads the next frame of the trajectory: the positions of the
// beads, and the box if the file has unit cell information. The step of top
// is set to the step of the frame, and its time to the step times Delta.
// At the normal end of the file it returns an error implementing csg.LastFrameError.
func (D *Reader) NextFrame(top *csg.Topology) error {
	if !D.readable {
		return newError(TrajUnIniRead, D.filename, "NextFrame")
	}
	if top.BeadCount() != int(D.natoms) {
		return newError(fmt.Sprintf("%s: %d in the topology, %d in the trajectory", BeadMismatch, top.BeadCount(), D.natoms), D.filename, "NextFrame")
	}
	if D.readLast {
		D.Close()
		return newlastFrameError(D.filename, "NextFrame")
	}
	blocksize, err := D.readInt()
	if errors.Is(err, io.EOF) {
		//nothing bad happened here, the trajectory just ended.
		D.Close()
		return newlastFrameError(D.filename, "NextFrame")
	}
	if err != nil {
		return D.frameError(err)
	}
	//The unit cell block is not present in all snapshots of some trajectories,
	//so we use the block size to tell it from the X block.
	if D.unitcell && (blocksize == 48 || blocksize != 4*D.natoms) {
		if blocksize == 48 {
			var cell [6]float64
			if err := binary.Read(D.dcd, D.endian, &cell); err != nil {
				return D.frameError(err)
			}
			top.SetBox(cellToBox(cell))
		} else if _, err := io.CopyN(io.Discard, D.dcd, int64(blocksize)); err != nil {
			return D.frameError(err)
		}
		if err := D.checkBlockEnd(blocksize); err != nil {
			return err
		}
		if blocksize, err = D.readInt(); err != nil {
			return D.frameError(err)
		}
	}
	for i := 0; i < 3; i++ {
		if i > 0 {
			if blocksize, err = D.readInt(); err != nil {
				return D.frameError(err)
			}
		}
		if blocksize != 4*D.natoms {
			return D.frameError(fmt.Errorf("coordinate block of %d bytes for %d atoms", blocksize, D.natoms))
		}
		if err := binary.Read(D.dcd, D.endian, D.fields[i]); err != nil {
			return D.frameError(err)
		}
		if err := D.checkBlockEnd(blocksize); err != nil {
			return err
		}
	}
	//The 4-D values are skipped. They are apparently not present in the
	//last snapshot, so an EOF here signals that we have read the last one.
	if D.fourdim {
		size, err := D.readInt()
		if errors.Is(err, io.EOF) {
			D.readLast = true
		} else if err != nil {
			return D.frameError(err)
		} else {
			if _, err := io.CopyN(io.Discard, D.dcd, int64(size)); err != nil {
				return D.frameError(err)
			}
			if err := D.checkBlockEnd(size); err != nil {
				return err
			}
		}
	}
	for i := 0; i < int(D.natoms); i++ {
		top.Bead(i).SetPos(r3.Vec{X: float64(D.fields[0][i]), Y: float64(D.fields[1][i]), Z: float64(D.fields[2][i])})
	}
	step := int(D.istart + D.nread*D.nsavc)
	D.nread++
	top.SetStep(step)
	top.SetTime(float64(step) * D.Delta)
	return nil
}

// Close closes the file. It can be called more than once.
func (D *Reader) Close() error {
	if !D.readable {
		return nil
	}
	D.readable = false
	D.dec.Close()
	return D.f.Close()
}

func (D *Reader) readInt() (int32, error) {
	var i int32
	err := binary.Read(D.dcd, D.endian, &i)
	return i, err
}

// checkBlockEnd reads the size at the end of a block, which must match
// the one at its beginning.
func (D *Reader) checkBlockEnd(blocksize int32) error {
	check, err := D.readInt()
	if err != nil {
		return D.frameError(err)
	}
	if check != blocksize {
		return D.frameError(fmt.Errorf("block of %d bytes ends as one of %d", blocksize, check))
	}
	return nil
}

func (D *Reader) frameError(err error) error {
	return newError(fmt.Sprintf("%s: %s", WrongFormat, err), D.filename, "NextFrame")
}

// cellToBox builds the box matrix from a DCD unit cell, stored as
// A, gamma, B, beta, alpha, C. CHARMM stores the cosines of the angles,
// NAMD the angles in degrees. A cell with no lengths gives an open box.
func cellToBox(cell [6]float64) *v3.Matrix {
	A, B, C := cell[0], cell[2], cell[5]
	if A == 0 && B == 0 && C == 0 {
		return csg.DiagonalBox(0, 0, 0)
	}
	cosines := true
	for _, i := range []int{1, 3, 4} {
		if math.Abs(cell[i]) > 1 {
			cosines = false
		}
	}
	cos := func(v float64) float64 {
		if !cosines {
			v = math.Cos(csg.Deg2Rad(v))
		}
		if math.Abs(v) < 1e-9 {
			v = 0
		}
		return v
	}
	cg, cb, ca := cos(cell[1]), cos(cell[3]), cos(cell[4])
	sg := math.Sqrt(1 - cg*cg)
	a := r3.Vec{X: A}
	b := r3.Vec{X: B * cg, Y: B * sg}
	cx := C * cb
	cy := C * (ca - cb*cg) / sg
	c := r3.Vec{X: cx, Y: cy, Z: math.Sqrt(math.Max(0, C*C-cx*cx-cy*cy))}
	return csg.BoxFromVectors(a, b, c)
}
