/*
 * write.go, part of goCSG.
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
	"fmt"
	"io"
	"math"
	"os"

	csg "github.com/rmera/gocsg"
	"gonum.org/v1/gonum/spatial/r3"
)

// Writer writes the positions and boxes of a topology as a CHARMM-style,
// little endian DCD trajectory, with unit cell information in every frame.
// Compression is not supported, as DCD keeps the number of frames at the
// beginning of the file, and it must be updated after each frame.
type Writer struct {
	delta    float32
	natoms   int32
	frames   int32
	writable bool
	filename string
	dcd      *os.File
	w        *bufio.Writer
	endian   binary.ByteOrder
	fields   [3][]float32
}

// NewWriter creates a DCD file for trajectories of natoms beads, and
// writes its header. The time between frames, delta[0], is 1 if not given.
func NewWriter(filename string, natoms int, delta ...float32) (*Writer, error) {
	D := &Writer{natoms: int32(natoms), delta: 1, filename: filename, endian: binary.LittleEndian}
	if len(delta) > 0 {
		D.delta = delta[0]
	}
	if natoms <= 0 {
		return nil, newError(fmt.Sprintf("Can't write trajectories of %d beads", natoms), filename, "NewWriter")
	}
	var err error
	D.dcd, err = os.Create(filename)
	if err != nil {
		return nil, newError(UnableToWrite+": "+err.Error(), filename, "NewWriter")
	}
	D.w = bufio.NewWriter(D.dcd)
	if err := D.writeHeader(); err != nil {
		D.dcd.Close()
		return nil, errDecorate(err, "NewWriter")
	}
	for i := range D.fields {
		D.fields[i] = make([]float32, natoms)
	}
	D.writable = true
	return D, nil
}

func (D *Writer) put(data any) error {
	if err := binary.Write(D.w, D.endian, data); err != nil {
		return newError(UnableToWrite+": "+err.Error(), D.filename, "binary.Write")
	}
	return nil
}

func (D *Writer) writeHeader() error {
	icntrl := make([]int32, 20)
	icntrl[0] = D.frames
	icntrl[2] = 1                                //step interval
	icntrl[9] = int32(math.Float32bits(D.delta)) //delta time
	icntrl[10] = 1                               //unit cell in every frame
	icntrl[19] = 24                              //charmm version
	title := make([]byte, 2*mAXTITLE)
	copy(title, "Created by goCSG")
	for _, v := range []any{int32(84), []byte("CORD"), icntrl, int32(84), int32(4 + len(title)), int32(2), title, int32(4 + len(title)), int32(4), D.natoms, int32(4)} {
		if err := D.put(v); err != nil {
			return errDecorate(err, "writeHeader")
		}
	}
	return nil
}

// WriteFrame writes the positions of the beads of top, and its box, as
// a new frame.
func (D *Writer) WriteFrame(top *csg.Topology) error {
	if !D.writable {
		return newError(TrajUnIniRead, D.filename, "WriteFrame")
	}
	if top.BeadCount() != int(D.natoms) {
		return newError(fmt.Sprintf("%s: %d in the topology, %d in the trajectory", BeadMismatch, top.BeadCount(), D.natoms), D.filename, "WriteFrame")
	}
	for i, b := range top.Beads() {
		p := b.Pos()
		D.fields[0][i] = float32(p.X)
		D.fields[1][i] = float32(p.Y)
		D.fields[2][i] = float32(p.Z)
	}
	cell := boxToCell(top)
	blocksize := 4 * D.natoms
	for _, v := range []any{int32(48), cell, int32(48), blocksize, D.fields[0], blocksize, blocksize, D.fields[1], blocksize, blocksize, D.fields[2], blocksize} {
		if err := D.put(v); err != nil {
			return errDecorate(err, "WriteFrame")
		}
	}
	D.frames++
	return errDecorate(D.updateFrames(), "WriteFrame")
}

// updateFrames writes the current number of frames to the header.
func (D *Writer) updateFrames() error {
	if err := D.w.Flush(); err != nil {
		return newError(UnableToWrite+": "+err.Error(), D.filename, "updateFrames")
	}
	var n [4]byte
	D.endian.PutUint32(n[:], uint32(D.frames))
	//4 bytes for the first 84, and 4 for "CORD".
	if _, err := D.dcd.WriteAt(n[:], 8); err != nil {
		return newError(UnableToWrite+": "+err.Error(), D.filename, "updateFrames")
	}
	return nil
}

// Close flushes and closes the file.
func (D *Writer) Close() error {
	if !D.writable {
		return nil
	}
	D.writable = false
	if err := D.w.Flush(); err != nil {
		D.dcd.Close()
		return newError(UnableToWrite+": "+err.Error(), D.filename, "Close")
	}
	return D.dcd.Close()
}

// boxToCell returns the unit cell of the box of top, as A, gamma, B, beta,
// alpha, C, with the angles in degrees. An open box gives a zero cell.
func boxToCell(top *csg.Topology) [6]float64 {
	if top.BoxType() == csg.OpenBox {
		return [6]float64{}
	}
	box := top.Box()
	a, b, c := box.Col(0), box.Col(1), box.Col(2)
	angle := func(u, w r3.Vec) float64 {
		cos := r3.Dot(u, w) / (r3.Norm(u) * r3.Norm(w))
		return csg.Rad2Deg(math.Acos(math.Max(-1, math.Min(1, cos))))
	}
	return [6]float64{r3.Norm(a), angle(a, b), r3.Norm(b), angle(a, c), angle(b, c), r3.Norm(c)}
}

var _ io.Closer = (*Writer)(nil)
