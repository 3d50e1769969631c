/*
 * xyz.go, part of goxyz.
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
	"strconv"
	"strings"

	v3 "github.com/rmera/goxyz/v3"
)

//DefaultPrecision is the number of decimals written for each coordinate
//unless the caller sets something else.
const DefaultPrecision int = 6

//XYZ is a single-frame XYZ document: one molecule plus the precision used
//when serializing it. Parsing never infers the precision from the input;
//it is always DefaultPrecision unless set by the caller.
type XYZ struct {
	mol  *Molecule
	prec int
}

//New returns an XYZ document for the given molecule. The optional second
//argument is the serialization precision, DefaultPrecision if not given.
func New(mol *Molecule, prec ...int) (*XYZ, error) {
	if mol == nil {
		return nil, fmt.Errorf("goxyz: Supplied a nil Molecule")
	}
	x := &XYZ{mol: mol, prec: DefaultPrecision}
	if len(prec) > 0 {
		x.SetPrecision(prec[0])
	}
	return x, nil
}

//Molecule returns the molecule associated with this XYZ.
func (x *XYZ) Molecule() *Molecule {
	return x.mol
}

//Precision returns the number of decimals used for each coordinate on
//serialization.
func (x *XYZ) Precision() int {
	return x.prec
}

//SetPrecision sets the number of decimals used for each coordinate on
//serialization. Negative values are ignored.
func (x *XYZ) SetPrecision(prec int) {
	if prec < 0 {
		log.Printf("goxyz: Invalid precision %d ignored, will keep %d", prec, x.prec)
		return
	}
	x.prec = prec
}

//FromString parses a single XYZ frame. The first line must contain the
//declared atom count N, the second line is a free comment and is discarded,
//and the following N lines are scanned for coordinate records. Lines in that
//window that do not look like a coordinate record are silently skipped, so
//the returned molecule can have fewer than N atoms.
func FromString(contents string) (*XYZ, error) {
	lines := strings.Split(contents, "\n")
	natoms, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, parseError(InvalidHeader, lines[0], "FromString")
	}
	//lines[1], the comment, is not used for anything.
	sp := make([]*Atom, 0, natoms)
	coords := make([]float64, 0, natoms*3)
	for i := 2; i < 2+natoms && i < len(lines); i++ {
		symbol, numbers, ok := coordFields(lines[i])
		if !ok {
			continue //the skip-on-no-match tolerance policy.
		}
		for _, tok := range numbers {
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				//Shouldn't normally happen, as the tokenizer only admits
				//float-looking tokens, but the charset it accepts is looser
				//than the float grammar (e.g. "e" or "--" pass it).
				return nil, parseError(InvalidCoordinate, lines[i], "FromString")
			}
			coords = append(coords, f)
		}
		sp = append(sp, &Atom{Symbol: symbol, Mass: symbolMass[symbol]})
	}
	var frames []*v3.Matrix
	if len(sp) > 0 {
		m, err := v3.NewMatrix(coords)
		if err != nil {
			return nil, errDecorate(err, "FromString")
		}
		frames = []*v3.Matrix{m}
	} else {
		frames = []*v3.Matrix{}
	}
	mol, err := MakeMolecule(sp, frames)
	if err != nil {
		return nil, err
	}
	return &XYZ{mol: mol, prec: DefaultPrecision}, nil
}

//FromFile parses a single-frame XYZ file. Files compressed with gzip, zstd
//or flate are transparently decompressed (see the package documentation).
func FromFile(name string) (*XYZ, error) {
	contents, err := readAllFile(name)
	if err != nil {
		return nil, err
	}
	x, err := FromString(contents)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.filename = name
			return nil, errDecorate(perr, "FromFile")
		}
		return nil, err
	}
	return x, nil
}

//String serializes the document: the atom count, the formula of the molecule
//as the comment line, and then one line per atom with the symbol and the
//three coordinates of the first frame, each formatted as a fixed-point
//decimal with exactly Precision() decimals. Lines are joined with a newline;
//there is no newline after the last one. The output is deterministic: the
//same molecule and precision always produce the same text.
func (x *XYZ) String() string {
	mol := x.mol
	output := make([]string, 0, mol.Len()+2)
	output = append(output, strconv.Itoa(mol.Len()), mol.Formula())
	if mol.Len() > 0 && mol.LenFrames() > 0 {
		c := mol.Coords[0]
		for i := 0; i < mol.Len(); i++ {
			output = append(output, coordLine(mol.Atom(i).Symbol, c, i, x.prec))
		}
	}
	return strings.Join(output, "\n")
}

//WriteFile writes the document to the named file, overwriting any previous
//content, compressing as indicated by the filename suffix.
func (x *XYZ) WriteFile(name string) error {
	return writeAllFile(name, x.String())
}

//coordLine builds one serialized coordinate line for the ith vector of c.
func coordLine(symbol string, c *v3.Matrix, i, prec int) string {
	return fmt.Sprintf("%s %s %s %s", symbol,
		formatCoord(c.At(i, 0), prec),
		formatCoord(c.At(i, 1), prec),
		formatCoord(c.At(i, 2), prec))
}

//formatCoord formats one coordinate as a fixed-point decimal with exactly
//prec decimals, never in scientific notation. Rounding is strconv's
//round-to-nearest (ties to even), and negative values keep their sign even
//when they round to zero: -0.0001 at precision 3 gives "-0.000".
func formatCoord(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

//The two-stage line grammar: coordFields decides whether a line looks like a
//coordinate record and cuts it into tokens; the conversion to floats, with
//its own explicit failure path, stays in the parsers.

//coordFields scans the whitespace-separated fields of a line for the first
//window of the form label, number, number, number, where the label is made
//of word characters and the numbers match a loose float charset. It returns
//the label, the three numeric tokens and whether the line matched at all.
func coordFields(line string) (string, [3]string, bool) {
	var numbers [3]string
	fields := strings.Fields(line)
	for i := 0; i+4 <= len(fields); i++ {
		if !isWordToken(fields[i]) {
			continue
		}
		if isNumericToken(fields[i+1]) && isNumericToken(fields[i+2]) && isNumericToken(fields[i+3]) {
			numbers[0] = fields[i+1]
			numbers[1] = fields[i+2]
			numbers[2] = fields[i+3]
			return fields[i], numbers, true
		}
	}
	return "", numbers, false
}

//strictCoordLine is the per-line pattern used for frame boundary detection:
//the whole line must be exactly one label and three numeric tokens, nothing
//else. It is stricter than coordFields on purpose, so stray text can not be
//mistaken for the interior of a frame.
func strictCoordLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return false
	}
	return isWordToken(fields[0]) && isNumericToken(fields[1]) &&
		isNumericToken(fields[2]) && isNumericToken(fields[3])
}

//isWordToken returns whether the token is entirely made of letters, digits
//and underscores, and is not empty.
func isWordToken(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !(r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

//isNumericToken returns whether the token is entirely made of characters
//that can appear in a decimal float with optional sign and exponent. Note
//that this is looser than the actual float grammar; strconv.ParseFloat has
//the final word.
func isNumericToken(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !((r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E') {
			return false
		}
	}
	return true
}
