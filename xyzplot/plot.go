/*
 * plot.go, part of goxyz
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

//Package xyzplot draws simple per-frame plots from parsed XYZ trajectories.
package xyzplot

import (
	"fmt"
	"math"

	chem "github.com/rmera/goxyz"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Displacement (Å)"
	p.Add(plotter.NewGrid())
	return p
}

//DisplacementPlot plots, for one atom, the euclidean distance between its
//position in each frame of the trajectory and its position in the first
//frame, against the frame index. The plot is saved as plotname.png.
func DisplacementPlot(m *chem.MultiXYZ, atom int, title, plotname string) error {
	if m == nil || m.Len() == 0 {
		return Error{chem.NoFrames, []string{"DisplacementPlot"}, true}
	}
	first := m.Molecule(0)
	if atom < 0 || atom >= first.Len() || first.LenFrames() == 0 {
		return Error{fmt.Sprintf("Atom %d out of range for a %d-atom frame", atom, first.Len()), []string{"DisplacementPlot"}, true}
	}
	rx := first.Coords[0].At(atom, 0)
	ry := first.Coords[0].At(atom, 1)
	rz := first.Coords[0].At(atom, 2)
	pts := make(plotter.XYs, m.Len())
	for f := 0; f < m.Len(); f++ {
		mol := m.Molecule(f)
		if atom >= mol.Len() || mol.LenFrames() == 0 {
			return Error{fmt.Sprintf("Atom %d not present in frame %d", atom, f), []string{"DisplacementPlot"}, true}
		}
		c := mol.Coords[0]
		dx := c.At(atom, 0) - rx
		dy := c.At(atom, 1) - ry
		dz := c.At(atom, 2) - rz
		pts[f].X = float64(f)
		pts[f].Y = math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	p := basicPlot(title)
	line, err := plotter.NewLine(pts)
	if err != nil {
		return Error{err.Error(), []string{"DisplacementPlot"}, true}
	}
	p.Add(line)
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname+".png"); err != nil {
		return Error{err.Error(), []string{"DisplacementPlot"}, true}
	}
	return nil
}

//Error is the concrete error type for the xyzplot package. It fulfills
//chem.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("xyzplot error: %s", err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }
