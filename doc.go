/*
 * doc.go, part of pts.
 *
 * Copyright 2026 The pts developers
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

/*Package pts defines molecular geometries in internal coordinates and
converts between them and Cartesian space.

The central abstraction is the CoordSys interface: an ordered list of
atoms plus a flat vector of internal coordinates, with operations to
read and replace the vector, to produce the Cartesian geometry it
encodes, and to copy the whole system. Three implementations are
provided: ZMatrix (the classic z-matrix of bonds, angles and dihedrals,
parsed from text or built programmatically), XYZ (plain Cartesians,
where the internal vector is the flattened geometry itself) and
ComplexCoordSys (several fragments, each with its own coordinate type,
optionally placed in global space by rotation-plus-translation anchors).

Since the internal-to-Cartesian transform of a z-matrix has no closed
form inverse, gradients are moved between the two spaces through a
numerically estimated transform matrix (see TransformMatrix and the
numdiff subpackage). The metric subpackage builds on the same transform
to define inner products on internal-coordinate spaces, which is what
optimizers working in internal coordinates need. The vib subpackage
computes harmonic normal modes from any gradient function, and traj
writes and reads compressed sequences of Cartesian geometries.

Cartesian blocks are handled as v3.Matrix values (one row per atom)
throughout; see the v3 subpackage.

Distances are in whatever unit the input uses (conventionally
Angstroms), angles are always radians inside the library and degrees in
the textual formats.*/
package pts
