/*
 * multi.go, part of goxyz.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as published by
 * the Free Software Foundation, either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package xyz

import (
	"fmt"
	"log"
	"strings"
)

//MultiXYZ is a multi-frame XYZ document: an ordered sequence of molecules
//(frame order is trajectory order and is preserved end to end) plus the
//precision shared by all frames on serialization.
type MultiXYZ struct {
	mols []*Molecule
	prec int
}

//NewMulti returns a MultiXYZ document for the given molecules. The optional
//second argument is the serialization precision, DefaultPrecision if not
//given.
func NewMulti(mols []*Molecule, prec ...int) (*MultiXYZ, error) {
	if mols == nil {
		return nil, fmt.Errorf("goxyz: Supplied a nil Molecule slice")
	}
	m := &MultiXYZ{mols: mols, prec: DefaultPrecision}
	if len(prec) > 0 {
		m.SetPrecision(prec[0])
	}
	return m, nil
}

//Molecules returns the molecules associated with this multi-frame XYZ, in
//frame order.
func (m *MultiXYZ) Molecules() []*Molecule {
	return m.mols
}

//Molecule returns the molecule for the ith frame. Panics if out of range.
func (m *MultiXYZ) Molecule(i int) *Molecule {
	if i >= m.Len() {
		panic("MultiXYZ: Requested frame out of bounds")
	}
	return m.mols[i]
}

//Len returns the number of frames in the document.
func (m *MultiXYZ) Len() int {
	return len(m.mols)
}

//Precision returns the number of decimals used for each coordinate on
//serialization.
func (m *MultiXYZ) Precision() int {
	return m.prec
}

//SetPrecision sets the number of decimals used for each coordinate on
//serialization. Negative values are ignored.
func (m *MultiXYZ) SetPrecision(prec int) {
	if prec < 0 {
		log.Printf("goxyz: Invalid precision %d ignored, will keep %d", prec, m.prec)
		return
	}
	m.prec = prec
}

//MultiFromString parses a multi-frame XYZ document. The text is scanned left
//to right for non-overlapping frames: a count line (digits with optional
//surrounding horizontal whitespace), one arbitrary comment line, and one or
//more coordinate lines, taken greedily. Each matched span is handed whole to
//the single-frame parser. Text between frames is skipped, and a trailing
//partial frame (e.g. a count line with nothing usable after it) is dropped
//silently. Zero matched frames is a valid, empty document.
func MultiFromString(contents string) (*MultiXYZ, error) {
	if !strings.HasSuffix(contents, "\n") {
		contents += "\n" //so the last coordinate line terminates like any other.
	}
	lines := strings.Split(contents, "\n")
	mols := make([]*Molecule, 0, 1)
	i := 0
	for i < len(lines) {
		span := matchFrame(lines, i)
		if span == 0 {
			i++ //resync: this line starts no frame, try the next one.
			continue
		}
		x, err := FromString(strings.Join(lines[i:i+span], "\n"))
		if err != nil {
			return nil, errDecorate(err, "MultiFromString")
		}
		mols = append(mols, x.Molecule())
		i += span
	}
	return &MultiXYZ{mols: mols, prec: DefaultPrecision}, nil
}

//MultiFromFile parses a multi-frame XYZ file. Files compressed with gzip,
//zstd or flate are transparently decompressed.
func MultiFromFile(name string) (*MultiXYZ, error) {
	contents, err := readAllFile(name)
	if err != nil {
		return nil, err
	}
	m, err := MultiFromString(contents)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.filename = name
			return nil, errDecorate(perr, "MultiFromFile")
		}
		return nil, err
	}
	return m, nil
}

//String serializes every frame as a single-frame document with the shared
//precision and joins the frame texts with a single newline. Since a frame
//text carries no trailing newline, consecutive frames are separated by
//exactly one newline, with no blank line in between.
func (m *MultiXYZ) String() string {
	frames := make([]string, 0, m.Len())
	for _, mol := range m.mols {
		x := &XYZ{mol: mol, prec: m.prec}
		frames = append(frames, x.String())
	}
	return strings.Join(frames, "\n")
}

//WriteFile writes the document to the named file, overwriting any previous
//content, compressing as indicated by the filename suffix.
func (m *MultiXYZ) WriteFile(name string) error {
	return writeAllFile(name, m.String())
}

//matchFrame attempts to match one whole frame starting at lines[i]: one
//count line, one comment line, and as many strict coordinate lines as
//follow. It returns the number of lines the frame spans, or 0 if no frame
//starts at i. Note that the count line's value plays no role in the match;
//it is the single-frame parser that decides how many of the matched lines
//to scan.
func matchFrame(lines []string, i int) int {
	if !isCountLine(lines[i]) {
		return 0
	}
	if i+2 >= len(lines) { //no room for a comment line plus one coordinate line.
		return 0
	}
	ncoords := 0
	for j := i + 2; j < len(lines) && strictCoordLine(lines[j]); j++ {
		ncoords++
	}
	if ncoords == 0 {
		return 0 //a count line with no coordinate block: a dropped partial frame.
	}
	return 2 + ncoords
}

//isCountLine returns whether the line is a frame's atom count line: decimal
//digits with nothing around them but horizontal whitespace.
func isCountLine(line string) bool {
	s := strings.Trim(line, " \t\r\f\v")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
