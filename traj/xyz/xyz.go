/*
 * xyz.go, part of goxyz.
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

/*Package xyz (traj/xyz) streams frames from multi-frame XYZ trajectory
files one at a time, so large trajectories don't need to be materialized in
memory the way the document-level codec does. Unlike that codec, the
streaming reader is strict: every frame must declare the same atom count,
and every line of a coordinate block must be a well-formed coordinate
record. Compressed files (gzip, zstd, flate by suffix) are handled
transparently.*/
package xyz

import (
	"fmt"
	"strconv"
	"strings"

	chem "github.com/rmera/goxyz"
	v3 "github.com/rmera/goxyz/v3"
)

//XyzR is the handle for an XYZ trajectory open for reading. It implements
//the chem.Traj and chem.ConcTraj interfaces.
type XyzR struct {
	h        *chem.Zreader
	natoms   int
	filename string
	readable bool
	pending  bool     //the count line of the upcoming frame was consumed on open.
	symbols  []string //element symbols, captured while reading the first frame.
}

//New opens an XYZ trajectory for reading and returns a pointer to the
//handle, or nil and an error. The atom count of the first frame fixes the
//atom count for the whole trajectory.
func New(name string) (*XyzR, error) {
	S := new(XyzR)
	S.natoms = -1 //just so we know if things don't work
	S.filename = name
	var err error
	S.h, err = chem.Zopen(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	str, err := S.h.ReadString('\n')
	if err != nil {
		S.h.Close()
		return nil, Error{"Can't read the first atom count line: " + err.Error(), name, []string{"New"}, true}
	}
	S.natoms, err = strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		S.h.Close()
		return nil, Error{fmt.Sprintf("Can't read atom number from %q: %s", str, err.Error()), name, []string{"New"}, true}
	}
	S.pending = true
	S.readable = true
	return S, nil
}

//Readable returns true if the handle is readable (if it is possible to call
//Next on it).
func (S *XyzR) Readable() bool {
	return S.readable
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *XyzR) Len() int {
	return S.natoms
}

//Symbols returns the element symbols of the atoms, in frame order. It
//returns nil before the first frame has been read.
func (S *XyzR) Symbols() []string {
	return S.symbols
}

//Next puts in the given matrix the coordinates for the next frame of the
//trajectory, or reads and discards the frame if given nil. When the end of
//the trajectory is reached at a frame boundary, a chem.LastFrameError is
//returned and the handle is closed; an end of file in the middle of a frame
//is a critical error.
func (S *XyzR) Next(c *v3.Matrix) error {
	if !S.readable {
		return Error{TrajUnIniRead, S.filename, []string{"Next"}, true}
	}
	if c != nil && c.NVecs() < S.natoms {
		return Error{NotEnoughSpace, S.filename, []string{"Next"}, true}
	}
	if !S.pending {
		str, err := S.h.ReadString('\n')
		if err != nil && strings.TrimSpace(str) == "" {
			//the trajectory just ended, nothing bad happened here.
			S.Close()
			return newlastFrameError(S.filename, "Next")
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return Error{fmt.Sprintf("Can't read atom number from %q: %s", str, err.Error()), S.filename, []string{"Next"}, true}
		}
		if natoms != S.natoms {
			return Error{fmt.Sprintf("Wrong number of atoms in frame: %d declared, %d expected", natoms, S.natoms), S.filename, []string{"Next"}, true}
		}
	} else {
		S.pending = false
	}
	if _, err := S.h.ReadString('\n'); err != nil { //the comment line, discarded.
		return Error{"Frame cut short at the comment line: " + err.Error(), S.filename, []string{"Next"}, true}
	}
	firstframe := S.symbols == nil
	if firstframe {
		S.symbols = make([]string, 0, S.natoms)
	}
	for i := 0; i < S.natoms; i++ {
		line, err := S.h.ReadString('\n')
		//An EOF in the last coordinate line of the last frame is fine, as
		//long as the line content itself arrived.
		if err != nil && strings.TrimSpace(line) == "" {
			return Error{fmt.Sprintf("Frame cut short at atom %d: %s", i, err.Error()), S.filename, []string{"Next"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return Error{fmt.Sprintf(WrongFormat+": %q", line), S.filename, []string{"Next"}, true}
		}
		if firstframe {
			S.symbols = append(S.symbols, fields[0])
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return Error{fmt.Sprintf("Can't parse coordinate %d (%s): %s", j, fields[j+1], err.Error()), S.filename, []string{"Next"}, true}
			}
			if c != nil {
				c.Set(i, j, v)
			}
		}
	}
	return nil
}

//NextConc takes a slice of matrices and reads as many frames as elements
//the slice has from the trajectory. A frame is discarded if the
//corresponding element of the slice is nil. The function returns a slice of
//channels through each of which a *v3.Matrix will be transmitted.
func (S *XyzR) NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error) {
	if !S.Readable() {
		return nil, Error{TrajUnIniRead, S.filename, []string{"NextConc"}, true}
	}
	framechans := make([]chan *v3.Matrix, len(frames))
	for key, v := range frames {
		if err := S.Next(v); err != nil {
			return nil, errDecorate(err, "NextConc")
		}
		framechans[key] = make(chan *v3.Matrix)
		go func(keep *v3.Matrix, pipe chan *v3.Matrix) {
			pipe <- keep
		}(v, framechans[key])
	}
	return framechans, nil
}

//Close closes the handle, and marks it as unreadable.
func (S *XyzR) Close() {
	if !S.readable {
		return
	}
	S.h.Close()
	S.readable = false
}

//XyzW is the handle for an XYZ trajectory open for writing.
type XyzW struct {
	h         *chem.Zwriter
	mol       *chem.Molecule //for the symbols and the comment line.
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//NewWriter opens an XYZ trajectory for writing. The molecule provides the
//element symbols and the comment line for every frame; the coordinates come
//from each WNext call. The optional last argument is the number of decimals
//written for each coordinate, chem.DefaultPrecision if not given.
func NewWriter(name string, mol *chem.Molecule, prec ...int) (*XyzW, error) {
	if mol == nil || mol.Len() == 0 {
		return nil, Error{chem.NoFrames + ": need a molecule with atoms", name, []string{"NewWriter"}, true}
	}
	S := new(XyzW)
	var err error
	S.h, err = chem.Zcreate(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.mol = mol
	S.natoms = mol.Len()
	S.filename = name
	S.writeable = true
	S.prec = chem.DefaultPrecision
	if len(prec) > 0 && prec[0] >= 0 {
		S.prec = prec[0]
	}
	return S, nil
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *XyzW) Len() int {
	return S.natoms
}

//WNext writes the given coordinates as the next frame of the trajectory.
func (S *XyzW) WNext(coord *v3.Matrix) error {
	if !S.writeable {
		return Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, S.filename, []string{"WNext"}, true}
	}
	v := coord.NVecs()
	if v != S.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%s\n", S.natoms, S.mol.Formula())
	for i := 0; i < v; i++ {
		fmt.Fprintf(&b, "%s %s %s %s\n", S.mol.Atom(i).Symbol,
			strconv.FormatFloat(coord.At(i, 0), 'f', S.prec, 64),
			strconv.FormatFloat(coord.At(i, 1), 'f', S.prec, 64),
			strconv.FormatFloat(coord.At(i, 2), 'f', S.prec, 64))
	}
	if _, err := S.h.Write([]byte(b.String())); err != nil {
		return Error{"Can't write frame: " + err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

//Close closes the handle. It can not be used to write after this call.
func (S *XyzW) Close() {
	if S == nil || !S.writeable {
		return
	}
	S.h.Close()
	S.writeable = false
}
