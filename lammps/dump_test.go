/*
 * dump_test.go, part of goCSG.
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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	csg "github.com/rmera/gocsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const orthoFrame = `ITEM: TIMESTEP
100
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS pp pp pp
0.0 10.0
0.0 20.0
-5.0 5.0
ITEM: ATOMS id type mol mass q x y z vx vy vz
2 B 1 2.0 -1.0 4.0 5.0 6.0 0.1 0.2 0.3
1 A 1 1.0 0.5 1.0 2.0 3.0 0.0 0.0 0.0
3 A 2 1.0 0.5 7.0 8.0 -1.0 1.0 1.0 1.0
`

const tricFrame = `ITEM: TIMESTEP
200
ITEM: TIME
12.5
ITEM: NUMBER OF ATOMS
3
ITEM: BOX BOUNDS xy xz yz pp pp pp
0.0 13.0 2.0
0.0 8.5 1.0
0.0 6.0 0.5
ITEM: ATOMS id xs ys zs fx fy fz c_pe
1 0.5 0.5 0.5 1.0 0.0 0.0 -3.2
2 0.0 0.0 0.0 0.0 1.0 0.0 -3.1
3 1.0 0.0 0.0 0.0 0.0 1.0 -3.0
`

type testLogger struct {
	lines []string
}

func (L *testLogger) Printf(format string, v ...any) {
	L.lines = append(L.lines, fmt.Sprintf(format, v...))
}

// writeDump writes content to a file called name in a temporary directory,
// compressing it according to the extension.
func writeDump(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	var w io.WriteCloser
	switch filepath.Ext(name) {
	case ".gz":
		w = gzip.NewWriter(f)
	case ".zst":
		w, err = zstd.NewWriter(f)
		require.NoError(t, err)
	}
	if w == nil {
		_, err = io.WriteString(f, content)
		require.NoError(t, err)
		return file
	}
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return file
}

func TestReadTopology(Te *testing.T) {
	file := writeDump(Te, "top.dump", orthoFrame)
	top := csg.NewTopology()
	r := New()
	r.Dt = 0.5
	require.NoError(Te, r.ReadTopology(file, top))
	require.Equal(Te, 3, top.BeadCount())
	assert.Equal(Te, 2, top.BeadTypeCount())
	assert.Equal(Te, "B", top.Bead(1).TypeName())
	assert.Equal(Te, "A", top.Bead(0).TypeName())
	assert.Equal(Te, 2.0, top.Bead(1).Mass)
	assert.Equal(Te, -1.0, top.Bead(1).Charge)
	assert.Equal(Te, 1, top.Bead(2).ResNr)
	assert.Equal(Te, 2, top.ResidueCount())
	assert.Equal(Te, r3.Vec{X: 4, Y: 5, Z: 6}, top.Bead(1).Pos())
	assert.Equal(Te, r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}, top.Bead(1).Vel())
	assert.False(Te, top.Bead(0).HasForce())
	assert.Equal(Te, 100, top.Step())
	assert.InDelta(Te, 50.0, top.Time(), 1e-12)
	assert.Equal(Te, csg.OrthorhombicBox, top.BoxType())
	assert.InDelta(Te, 2000.0, top.BoxVolume(), 1e-9)
	require.NoError(Te, top.CreateMoleculesByResidue())
	assert.Equal(Te, 2, top.MoleculeCount())
}

func TestTrajectory(Te *testing.T) {
	for _, name := range []string{"traj.dump", "traj.dump.gz", "traj.dump.zst"} {
		Te.Run(name, func(t *testing.T) {
			file := writeDump(t, name, orthoFrame+tricFrame)
			top := csg.NewTopology()
			r := New()
			require.NoError(t, r.ReadTopology(file, top))
			logger := &testLogger{}
			r.SetLogger(logger)
			require.NoError(t, r.Open(file))
			defer r.Close()
			require.NoError(t, r.FirstFrame(top))
			assert.Equal(t, 100, top.Step())
			require.NoError(t, r.NextFrame(top))
			assert.Equal(t, 200, top.Step())
			assert.Equal(t, 12.5, top.Time())
			assert.Equal(t, csg.TriclinicBox, top.BoxType())
			box := top.Box()
			assert.InDelta(t, 10.0, box.At(0, 0), 1e-12)
			assert.InDelta(t, 2.0, box.At(0, 1), 1e-12)
			assert.InDelta(t, 8.0, box.At(1, 1), 1e-12)
			assert.InDelta(t, 1.0, box.At(0, 2), 1e-12)
			assert.InDelta(t, 0.5, box.At(1, 2), 1e-12)
			assert.InDelta(t, 6.0, box.At(2, 2), 1e-12)
			assert.InDelta(t, 480.0, top.BoxVolume(), 1e-9)
			//scaled coordinates, in the basis of the box vectors.
			p := top.Bead(0).Pos()
			assert.InDelta(t, 6.5, p.X, 1e-12)
			assert.InDelta(t, 4.25, p.Y, 1e-12)
			assert.InDelta(t, 3.0, p.Z, 1e-12)
			assert.InDelta(t, 10.0, top.Bead(2).Pos().X, 1e-12)
			assert.Equal(t, r3.Vec{Y: 1}, top.Bead(1).Force())
			//the types read from the topology are untouched
			assert.Equal(t, "B", top.Bead(1).TypeName())
			require.Len(t, logger.lines, 1)
			assert.Contains(t, logger.lines[0], "c_pe")

			err := r.NextFrame(top)
			require.Error(t, err)
			_, ok := err.(csg.LastFrameError)
			assert.True(t, ok, "expected the end of the trajectory, got %v", err)
		})
	}
}

func TestDumpErrors(Te *testing.T) {
	top := csg.NewTopology()
	r := New()
	require.NoError(Te, r.ReadTopology(writeDump(Te, "top.dump", orthoFrame), top))

	err := r.NextFrame(top)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), TrajUnIniRead)

	four := strings.Replace(orthoFrame, "NUMBER OF ATOMS\n3", "NUMBER OF ATOMS\n4", 1)
	require.NoError(Te, r.Open(writeDump(Te, "four.dump", four)))
	err = r.NextFrame(top)
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), BeadMismatch)
	terr, ok := err.(csg.TrajError)
	require.True(Te, ok)
	assert.True(Te, terr.Critical())
	assert.Equal(Te, "lammps", terr.Format())
	require.NoError(Te, r.Close())

	truncated := orthoFrame[:strings.Index(orthoFrame, "3 A 2")]
	require.NoError(Te, r.Open(writeDump(Te, "cut.dump", truncated)))
	err = r.NextFrame(top)
	require.Error(Te, err)
	_, last := err.(csg.LastFrameError)
	assert.False(Te, last, "a truncated frame is not a normal end")
	require.NoError(Te, r.Close())

	assert.Error(Te, r.Open(filepath.Join(Te.TempDir(), "missing.dump")))
}
