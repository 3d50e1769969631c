/*
 * atom.go, part of goxyz.
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
	"sort"
	"strings"

	v3 "github.com/rmera/goxyz/v3"
)

/**Note: Some functions here panic instead of returning errors. This is because
 * they are "fundamental" functions: if something goes wrong there, the program
 * is way-most likely wrong and should crash. The panics are related to using
 * a function on a nil object or accessing out-of-bounds fields**/

//Atom contains the per-atom data read from a file, except for the
//coordinates, which go in a separate matrix.
type Atom struct {
	Symbol string
	Mass   float64 //zero if the element is not in the mass table.
	Tag    int     //Just added this for something that someone might want to keep that is not a float.
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	Newat.Symbol = A.Symbol
	Newat.Mass = A.Mass
	Newat.Tag = A.Tag
	return Newat
}

//Molecule contains the atoms of a molecule and its coordinates, possibly in
//several states (frames). The atom order is meaningful: it is the atom index
//used by every function in this library.
type Molecule struct {
	Atoms  []*Atom
	Coords []*v3.Matrix
}

//MakeMolecule makes a molecule with the atoms ats and the frames coords, and
//returns it. It returns an error if one of the slices is nil, or if the
//number of vectors in any frame doesn't match the number of atoms.
func MakeMolecule(ats []*Atom, coords []*v3.Matrix) (*Molecule, error) {
	if ats == nil {
		return nil, fmt.Errorf("goxyz: Supplied a nil atom slice")
	}
	if coords == nil {
		return nil, fmt.Errorf("goxyz: Supplied a nil Coords slice")
	}
	mol := new(Molecule)
	mol.Atoms = ats
	mol.Coords = coords
	if err := mol.Corrupted(); err != nil {
		return nil, err
	}
	return mol, nil
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//LenFrames returns the number of frames in the molecule.
func (M *Molecule) LenFrames() int {
	return len(M.Coords)
}

//Atom returns the Atom corresponding to the index i of the Atom slice in the
//molecule. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() {
		panic("Molecule: Requested Atom out of bounds")
	}
	return M.Atoms[i]
}

//Copy returns a copy of the molecule including coordinates.
func (M *Molecule) Copy() *Molecule {
	mol := new(Molecule)
	mol.Atoms = make([]*Atom, M.Len())
	for key, val := range M.Atoms {
		mol.Atoms[key] = val.Copy()
	}
	mol.Coords = make([]*v3.Matrix, 0, len(M.Coords))
	for _, val := range M.Coords {
		c := v3.Zeros(val.NVecs())
		c.Copy(val)
		mol.Coords = append(mol.Coords, c)
	}
	return mol
}

//Corrupted checks whether the molecule is corrupted, i.e. the coordinates
//don't match the number of atoms in some frame.
func (M *Molecule) Corrupted() error {
	for i := range M.Coords {
		if M.Len() != M.Coords[i].NVecs() {
			return fmt.Errorf("goxyz: Inconsistent coordinates/atoms in frame %d: Atoms %d, coords: %d", i, M.Len(), M.Coords[i].NVecs())
		}
	}
	return nil
}

//Masses returns a slice with the masses of all atoms, and an error if any
//of them has not been assigned (i.e. its element is not in the mass table).
func (M *Molecule) Masses() ([]float64, error) {
	mass := make([]float64, M.Len())
	for i := 0; i < M.Len(); i++ {
		thisatom := M.Atom(i)
		if thisatom.Mass == 0 {
			return nil, fmt.Errorf("goxyz: Not all the masses have been obtained: %d %v", i, thisatom)
		}
		mass[i] = thisatom.Mass
	}
	return mass, nil
}

//Formula returns the composition of the molecule as a formula string in Hill
//order: C first, H second, remaining elements alphabetically. Counts of 1
//are omitted, so a water molecule gives "H2O" and molecular hydrogen "H2".
func (M *Molecule) Formula() string {
	counts := make(map[string]int)
	for _, at := range M.Atoms {
		counts[at.Symbol]++
	}
	symbols := make([]string, 0, len(counts))
	for s := range counts {
		if s == "C" || s == "H" {
			continue
		}
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	if _, ok := counts["H"]; ok {
		symbols = append([]string{"H"}, symbols...)
	}
	if _, ok := counts["C"]; ok {
		symbols = append([]string{"C"}, symbols...)
	}
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s)
		if counts[s] > 1 {
			fmt.Fprintf(&b, "%d", counts[s])
		}
	}
	return b.String()
}
