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

/*Package v3 implements a simple matrix of 3D vectors (a Nx3 matrix) on top of
gonum's mat.Dense. Each row is understood as the cartesian coordinates of one
point in 3D space, in ångström. The package exposes only the small surface the
goxyz codecs need; for anything else, obtain the underlying *mat.Dense with
Matrix2Dense and use gonum directly.*/
package v3
