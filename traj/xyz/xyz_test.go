/*
 * xyz_test.go
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
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

package xyz

import (
	"fmt"
	"math"
	"testing"

	chem "github.com/rmera/goxyz"
	v3 "github.com/rmera/goxyz/v3"
)

func watermol(Te *testing.T) *chem.Molecule {
	ats := []*chem.Atom{{Symbol: "O"}, {Symbol: "H"}, {Symbol: "H"}}
	c, err := v3.NewMatrix([]float64{
		0.0, 0.0, 0.11779,
		0.0, 0.755453, -0.471161,
		0.0, -0.755453, -0.471161,
	})
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := chem.MakeMolecule(ats, []*v3.Matrix{c})
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

//TestTrajWriteRead writes a 3-frame compressed trajectory and streams it
//back, checking frame count, symbols and coordinates.
func TestTrajWriteRead(Te *testing.T) {
	mol := watermol(Te)
	name := "../../test/water_traj.xyz.gz"
	wtraj, err := NewWriter(name, mol)
	if err != nil {
		Te.Fatal(err)
	}
	frame := v3.Zeros(mol.Len())
	for f := 0; f < 3; f++ {
		frame.Copy(mol.Coords[0])
		for i := 0; i < mol.Len(); i++ {
			frame.Set(i, 0, frame.At(i, 0)+float64(f)) //displace along x
		}
		if err := wtraj.WNext(frame); err != nil {
			Te.Fatal(err)
		}
	}
	wtraj.Close()
	rtraj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer rtraj.Close()
	if rtraj.Len() != mol.Len() {
		Te.Fatalf("Wrong atoms per frame: %d", rtraj.Len())
	}
	read := v3.Zeros(rtraj.Len())
	frames := 0
	for {
		err := rtraj.Next(read)
		if err != nil {
			if _, ok := err.(chem.LastFrameError); ok {
				break
			}
			Te.Fatal(err)
		}
		if d := read.At(0, 0); math.Abs(d-float64(frames)) > 1e-6 {
			Te.Errorf("Frame %d has wrong x displacement: %f", frames, d)
		}
		frames++
	}
	if frames != 3 {
		Te.Errorf("Expected 3 frames, read %d", frames)
	}
	syms := rtraj.Symbols()
	if len(syms) != 3 || syms[0] != "O" || syms[1] != "H" {
		Te.Errorf("Wrong symbols: %v", syms)
	}
	fmt.Println("Trajectory write/read over! frames read:", frames)
}

//TestTrajMatchesDocument checks that streaming a file sees the same frames
//as the document-level codec.
func TestTrajMatchesDocument(Te *testing.T) {
	doc, err := chem.MultiFromFile("../../test/h2traj.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	rtraj, err := New("../../test/h2traj.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	defer rtraj.Close()
	read := v3.Zeros(rtraj.Len())
	for f := 0; ; f++ {
		err := rtraj.Next(read)
		if err != nil {
			if _, ok := err.(chem.LastFrameError); ok {
				if f != doc.Len() {
					Te.Errorf("Streamed %d frames, document has %d", f, doc.Len())
				}
				break
			}
			Te.Fatal(err)
		}
		want := doc.Molecule(f).Coords[0]
		for i := 0; i < rtraj.Len(); i++ {
			for j := 0; j < 3; j++ {
				if math.Abs(read.At(i, j)-want.At(i, j)) > 1e-9 {
					Te.Errorf("Frame %d mismatch at %d,%d", f, i, j)
				}
			}
		}
	}
}

//TestTrajConc reads a trajectory concurrently, discarding the second frame.
func TestTrajConc(Te *testing.T) {
	mol := watermol(Te)
	name := "../../test/water_conc.xyz.zst"
	wtraj, err := NewWriter(name, mol, 4)
	if err != nil {
		Te.Fatal(err)
	}
	for f := 0; f < 3; f++ {
		if err := wtraj.WNext(mol.Coords[0]); err != nil {
			Te.Fatal(err)
		}
	}
	wtraj.Close()
	rtraj, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer rtraj.Close()
	frames := []*v3.Matrix{v3.Zeros(rtraj.Len()), nil, v3.Zeros(rtraj.Len())}
	chans, err := rtraj.NextConc(frames)
	if err != nil {
		Te.Fatal(err)
	}
	for key, channel := range chans {
		got := <-channel
		if key == 1 {
			if got != nil {
				Te.Errorf("Discarded frame %d came through non-nil", key)
			}
			continue
		}
		if got == nil || math.Abs(got.At(0, 2)-0.1178) > 1e-6 {
			Te.Errorf("Frame %d has wrong coordinates", key)
		}
	}
}

//TestTrajUninitialized checks the error for reading a closed handle.
func TestTrajUninitialized(Te *testing.T) {
	rtraj, err := New("../../test/h2traj.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	rtraj.Close()
	err = rtraj.Next(v3.Zeros(rtraj.Len()))
	terr, ok := err.(chem.TrajError)
	if !ok || !terr.Critical() {
		Te.Errorf("Expected a critical TrajError, got %v", err)
	}
}
