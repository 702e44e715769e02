/*
 * atomicdata.go, part of pts.
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

import "fmt"

//A map for assigning mass to elements.
//Note that just the common light elements plus the rare gases are
//present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.011,
	"O":  15.999,
	"N":  14.007,
	"P":  30.974,
	"S":  32.06,
	"F":  18.998,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.90,
	"B":  10.81,
	"Si": 28.085,
	"Na": 22.990,
	"K":  39.098,
	"Mg": 24.305,
	"Ca": 40.078,
	"Fe": 55.845,
	"Zn": 65.38,
	"He": 4.0026,
	"Ne": 20.180,
	"Ar": 39.948,
	"Kr": 83.798,
	"Xe": 131.29,
	"D":  2.014, //deuterium, for isotope studies
}

//massesOf builds the mass vector of any coordinate system, one entry
//per (non dummy) atom in declaration order. It fails on the first atom
//whose symbol carries no mass.
func massesOf(c CoordSys) ([]float64, error) {
	m := make([]float64, c.Len())
	for i := range m {
		a := c.Atom(i)
		if a.Mass < 0 {
			return nil, fmt.Errorf("pts: no mass known for symbol %q (atom %d)", a.Symbol, i)
		}
		m[i] = a.Mass
	}
	return m, nil
}
