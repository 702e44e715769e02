/*
 * pts.go, part of pts.
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

package pts

import (
	"math"
	"strings"
)

//deg2rad is exact to float64 precision. The textual formats use
//degrees, everything inside the library is radians.
const deg2rad = math.Pi / 180

//Deg2Rad converts degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * deg2rad
}

//Rad2Deg converts radians to degrees.
func Rad2Deg(f float64) float64 {
	return f / deg2rad
}

// Atom represents the non-geometric information of one atom. The
// geometry lives in the v3.Matrix of its coordinate system, addressed
// by the atom's index. The symbol never changes after construction.
type Atom struct {
	Symbol string
	Mass   float64 //in amu. -1 if not known for the symbol.
}

//newAtom builds an Atom from a z-matrix or xyz name, normalizing it
//and filling the mass when the symbol is in the table.
func newAtom(name string) *Atom {
	name = normalizeName(name)
	a := &Atom{Symbol: name, Mass: -1}
	if m, ok := symbolMass[name]; ok {
		a.Mass = m
	}
	return a
}

//normalizeName upcases the first character of an atom name, leaving the
//rest as given, so "o"->"O", "ar"->"Ar" and "x2"->"X2".
func normalizeName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

//isDummy reports whether an atom name marks a dummy atom, one that
//takes part in the geometric construction but is left out of the
//Cartesian output. Any name starting with x or X is a dummy.
func isDummy(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), "x")
}
