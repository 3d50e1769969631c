/*
 * doc.go, part of goxyz.
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

/*Package xyz reads and writes the XYZ molecular coordinate text format.


	**goxyz capabilities**

    Parses and serializes single-frame XYZ documents (one molecule).

    Parses and serializes multi-frame XYZ documents (trajectories), preserving
	frame order.

    Reads and writes XYZ files with transparent compression (gzip, zstd and
	flate, selected by filename suffix).

    Streams trajectory frames one at a time, sequentially or concurrently,
	without materializing the whole document.

    Formats coordinates as fixed-point decimals with a caller-chosen
	precision (6 decimals by default), deterministically.


The XYZ format is lossy for crystal structures: only cartesian coordinates
are written, and no information is retained about the lattice.

Coordinates are kept in the v3.Matrix type, an Nx3 matrix backed by gonum,
where each row is one atom's position in ångström.

The parser is deliberately tolerant: within the coordinate block of a frame,
lines that do not look like a coordinate record are silently skipped. A frame
declaring N atoms whose block contains fewer well-formed lines simply yields
fewer atoms. This matches the behavior of other readers of the format and is
a policy, not an error condition.*/
package xyz
