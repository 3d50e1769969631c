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
	"strconv"
	"strings"
	"testing"

	v3 "github.com/rmera/goxyz/v3"
)

const h2text = `2
H2
H 0.000000 0.000000 0.000000
H 0.000000 0.000000 0.740000`

//TestXYZEndToEnd checks the full parse/serialize cycle on a molecular
//hydrogen frame, byte for byte.
func TestXYZEndToEnd(Te *testing.T) {
	x, err := FromString(h2text)
	if err != nil {
		Te.Fatal(err)
	}
	mol := x.Molecule()
	if mol.Len() != 2 {
		Te.Errorf("Wrong number of atoms: %d", mol.Len())
	}
	for i := 0; i < mol.Len(); i++ {
		if mol.Atom(i).Symbol != "H" {
			Te.Errorf("Wrong symbol for atom %d: %s", i, mol.Atom(i).Symbol)
		}
	}
	c := mol.Coords[0]
	want := [][3]float64{{0, 0, 0}, {0, 0, 0.74}}
	for i := range want {
		for j := 0; j < 3; j++ {
			if c.At(i, j) != want[i][j] {
				Te.Errorf("Wrong coordinate atom %d, %d: %f", i, j, c.At(i, j))
			}
		}
	}
	if mol.Formula() != "H2" {
		Te.Errorf("Wrong formula: %s", mol.Formula())
	}
	if got := x.String(); got != h2text {
		Te.Errorf("Reserialization not byte-identical:\n%q\nvs\n%q", got, h2text)
	}
	fmt.Println("XYZ end to end passed!")
}

//TestHeaderCount checks that the first serialized line, parsed as an
//integer, equals the number of atoms.
func TestHeaderCount(Te *testing.T) {
	x, err := FromFile("test/water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	first := strings.Split(x.String(), "\n")[0]
	n, err := strconv.Atoi(first)
	if err != nil {
		Te.Fatal(err)
	}
	if n != x.Molecule().Len() {
		Te.Errorf("Header says %d atoms, molecule has %d", n, x.Molecule().Len())
	}
}

//TestRoundTrip serializes a molecule at precision 4 and checks that parsing
//the output recovers every coordinate to within 1e-4.
func TestRoundTrip(Te *testing.T) {
	coords, err := v3.NewMatrix([]float64{
		1.23456789, -2.3456789, 0.000123,
		-0.00049, 3.14159265, -273.15,
		42.0, -0.5, 1e-3,
	})
	if err != nil {
		Te.Fatal(err)
	}
	ats := []*Atom{{Symbol: "C"}, {Symbol: "O"}, {Symbol: "Fe"}}
	mol, err := MakeMolecule(ats, []*v3.Matrix{coords})
	if err != nil {
		Te.Fatal(err)
	}
	x, err := New(mol, 4)
	if err != nil {
		Te.Fatal(err)
	}
	back, err := FromString(x.String())
	if err != nil {
		Te.Fatal(err)
	}
	mol2 := back.Molecule()
	if mol2.Len() != mol.Len() {
		Te.Fatalf("Atom count not preserved: %d vs %d", mol2.Len(), mol.Len())
	}
	for i := 0; i < mol.Len(); i++ {
		if mol2.Atom(i).Symbol != mol.Atom(i).Symbol {
			Te.Errorf("Symbol order not preserved at %d", i)
		}
		for j := 0; j < 3; j++ {
			d := math.Abs(mol2.Coords[0].At(i, j) - mol.Coords[0].At(i, j))
			if d > 1e-4 {
				Te.Errorf("Coordinate %d,%d off by %g", i, j, d)
			}
		}
	}
}

//TestTolerantSkipping checks the skip-on-no-match policy: a frame declaring
//3 atoms with one garbage line in the coordinate block yields 2 atoms and
//no error.
func TestTolerantSkipping(Te *testing.T) {
	text := "3\nsome comment\nH 0.0 0.0 0.0\nthis is not a coordinate line\nO 1.0 1.0 1.0"
	x, err := FromString(text)
	if err != nil {
		Te.Fatal(err)
	}
	if x.Molecule().Len() != 2 {
		Te.Errorf("Expected 2 atoms, got %d", x.Molecule().Len())
	}
	if x.Molecule().Atom(1).Symbol != "O" {
		Te.Errorf("Wrong second atom: %s", x.Molecule().Atom(1).Symbol)
	}
}

func TestInvalidHeader(Te *testing.T) {
	_, err := FromString("not a number\ncomment\nH 0.0 0.0 0.0")
	if err == nil {
		Te.Fatal("Expected an error for a non-numeric count line")
	}
	perr, ok := err.(*ParseError)
	if !ok || perr.Message() != InvalidHeader {
		Te.Errorf("Wrong error: %v", err)
	}
}

//TestInvalidCoordinate exercises the defensive conversion step: tokens that
//pass the loose numeric charset but are not floats must fail explicitly.
func TestInvalidCoordinate(Te *testing.T) {
	_, err := FromString("1\ncomment\nH e e e")
	if err == nil {
		Te.Fatal("Expected an error for unparseable numeric tokens")
	}
	perr, ok := err.(*ParseError)
	if !ok || perr.Message() != InvalidCoordinate {
		Te.Errorf("Wrong error: %v", err)
	}
	if !strings.Contains(perr.Line(), "H e e e") {
		Te.Errorf("Error does not carry the offending line: %q", perr.Line())
	}
}

//TestFixedPointFormatting pins down the exact coordinate formatting,
//including the convention for negative values that round to zero: the sign
//is kept.
func TestFixedPointFormatting(Te *testing.T) {
	cases := []struct {
		v    float64
		prec int
		want string
	}{
		{1.0, 2, "1.00"},
		{-0.5, 0, "-0"},
		{-0.0001, 3, "-0.000"},
		{0.0, 6, "0.000000"},
		{0.74, 6, "0.740000"},
		{-273.15, 1, "-273.1"}, //the float64 nearest to -273.15 is above it
	}
	for _, c := range cases {
		if got := formatCoord(c.v, c.prec); got != c.want {
			Te.Errorf("formatCoord(%v, %d) = %q, want %q", c.v, c.prec, got, c.want)
		}
	}
}

func TestFormula(Te *testing.T) {
	ats := []*Atom{{Symbol: "H"}, {Symbol: "C"}, {Symbol: "H"}, {Symbol: "H"}, {Symbol: "O"}, {Symbol: "H"}}
	coords := v3.Zeros(len(ats))
	mol, err := MakeMolecule(ats, []*v3.Matrix{coords})
	if err != nil {
		Te.Fatal(err)
	}
	if f := mol.Formula(); f != "CH4O" {
		Te.Errorf("Wrong Hill formula: %s", f)
	}
}

//TestXYZFileIO reads the water fixture and round-trips it through plain,
//gzip and zstd compressed files.
func TestXYZFileIO(Te *testing.T) {
	x, err := FromFile("test/water.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if f := x.Molecule().Formula(); f != "H2O" {
		Te.Errorf("Wrong formula: %s", f)
	}
	for _, name := range []string{"test/waterIO.xyz", "test/waterIO.xyz.gz", "test/waterIO.xyz.zst"} {
		if err := x.WriteFile(name); err != nil {
			Te.Fatal(err)
		}
		back, err := FromFile(name)
		if err != nil {
			Te.Fatal(err)
		}
		if back.String() != x.String() {
			Te.Errorf("Round trip through %s not byte-identical", name)
		}
		fmt.Println("File round trip passed for", name)
	}
}

//TestPrecisionNotInferred checks that parsing a document written with many
//decimals still leaves the default serialization precision in place.
func TestPrecisionNotInferred(Te *testing.T) {
	x, err := FromString("1\nc\nH 0.12345678901 0.0 0.0")
	if err != nil {
		Te.Fatal(err)
	}
	if x.Precision() != DefaultPrecision {
		Te.Errorf("Precision inferred from input: %d", x.Precision())
	}
	x.SetPrecision(-3) //ignored
	if x.Precision() != DefaultPrecision {
		Te.Errorf("Negative precision was not ignored: %d", x.Precision())
	}
}
