/*
 * dcd_test.go, part of goCSG.
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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	csg "github.com/rmera/gocsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func beads(n int) *csg.Topology {
	top := csg.NewTopology()
	bt := top.GetOrCreateBeadType("A")
	for i := 0; i < n; i++ {
		top.CreateBead(csg.Spherical, "A", bt, 0, 1, 0)
	}
	return top
}

// writeTraj writes two frames of 4 beads: the first one in a triclinic
// box, the second one in a cubic box.
func writeTraj(t *testing.T, name string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	top := beads(4)
	for i, b := range top.Beads() {
		b.SetPos(r3.Vec{X: float64(i), Y: 0.5 * float64(i), Z: -1.25})
	}
	top.SetBox(csg.BoxFromVectors(r3.Vec{X: 6}, r3.Vec{X: 2, Y: 5}, r3.Vec{X: -1, Y: 2, Z: 7}))
	w, err := NewWriter(file, 4, 0.5)
	require.NoError(t, err)
	require.NoError(t, w.WriteFrame(top))
	for _, b := range top.Beads() {
		b.SetPos(r3.Add(b.Pos(), r3.Vec{X: 1, Y: 1, Z: 1}))
	}
	top.SetBox(csg.DiagonalBox(10, 10, 10))
	require.NoError(t, w.WriteFrame(top))
	require.Error(t, w.WriteFrame(beads(3)), "wrong number of beads")
	require.NoError(t, w.Close())
	return file
}

func checkTraj(t *testing.T, file string) {
	top := beads(4)
	r := new(Reader)
	require.NoError(t, r.Open(file))
	defer r.Close()
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, 0.5, r.Delta)

	require.NoError(t, r.FirstFrame(top))
	assert.Equal(t, 0, top.Step())
	assert.Equal(t, csg.TriclinicBox, top.BoxType())
	box := top.Box()
	expected := []float64{6, 2, -1, 0, 5, 2, 0, 0, 7}
	for i, v := range expected {
		assert.InDelta(t, v, box.At(i/3, i%3), 1e-9, "box element %d", i)
	}
	p := top.Bead(3).Pos()
	assert.InDelta(t, 3.0, p.X, 1e-6)
	assert.InDelta(t, 1.5, p.Y, 1e-6)
	assert.InDelta(t, -1.25, p.Z, 1e-6)

	require.NoError(t, r.NextFrame(top))
	assert.Equal(t, 1, top.Step())
	assert.Equal(t, 0.5, top.Time())
	assert.Equal(t, csg.OrthorhombicBox, top.BoxType())
	assert.InDelta(t, 1000.0, top.BoxVolume(), 1e-9)
	assert.InDelta(t, 4.0, top.Bead(3).Pos().X, 1e-6)

	err := r.NextFrame(top)
	require.Error(t, err)
	_, ok := err.(csg.LastFrameError)
	assert.True(t, ok, "expected the end of the trajectory, got %v", err)
}

func TestDCD(Te *testing.T) {
	checkTraj(Te, writeTraj(Te, "traj.dcd"))
}

func TestCompressedDCD(Te *testing.T) {
	plain := writeTraj(Te, "traj.dcd")
	in, err := os.Open(plain)
	require.NoError(Te, err)
	defer in.Close()
	file := filepath.Join(Te.TempDir(), "traj.dcd.gz")
	out, err := os.Create(file)
	require.NoError(Te, err)
	gz := gzip.NewWriter(out)
	_, err = io.Copy(gz, in)
	require.NoError(Te, err)
	require.NoError(Te, gz.Close())
	require.NoError(Te, out.Close())
	checkTraj(Te, file)
}

func TestDCDErrors(Te *testing.T) {
	file := writeTraj(Te, "traj.dcd")
	r := new(Reader)
	require.NoError(Te, r.Open(file))
	err := r.NextFrame(beads(5))
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), BeadMismatch)
	require.NoError(Te, r.Close())
	require.NoError(Te, r.Close())
	assert.Error(Te, r.NextFrame(beads(4)), "the reader is closed")

	junk := filepath.Join(Te.TempDir(), "junk.dcd")
	require.NoError(Te, os.WriteFile(junk, []byte("ITEM: TIMESTEP\n0\n"), 0o644))
	err = r.Open(junk)
	require.Error(Te, err)
	terr, ok := err.(csg.TrajError)
	require.True(Te, ok)
	assert.Equal(Te, "dcd", terr.Format())

	_, err = NewWriter(filepath.Join(Te.TempDir(), "empty.dcd"), 0)
	assert.Error(Te, err)
}
