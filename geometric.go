/*
 * geometric.go, part of pts.
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
	"fmt"
	"math"

	v3 "github.com/v4m4/pts/v3"
)

//appzero, the absolute value under which a float is considered zero.
const appzero float64 = 0.000000000001

//Angle returns the angle between the direction vectors v1 and v2, in
//radians.
func Angle(v1, v2 *v3.Matrix) float64 {
	normproduct := v1.Norm(2) * v2.Norm(2)
	dotprod := v1.Dot(v2)
	argument := dotprod / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//AngleAt returns the angle at vertex b of the positions a,b,c, in
//radians.
func AngleAt(a, b, c *v3.Matrix) float64 {
	v1 := v3.Zeros(1)
	v2 := v3.Zeros(1)
	v1.Sub(a, b)
	v2.Sub(c, b)
	return Angle(v1, v2)
}

//Distance returns the distance between the positions a and b.
func Distance(a, b *v3.Matrix) float64 {
	d := v3.Zeros(1)
	d.Sub(a, b)
	return d.Norm(2)
}

//Dihedral returns the dihedral angle between the positions a,b,c,d, in
//radians, with the sign convention of Atan2.
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	all := []*v3.Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(fmt.Sprintf("pts: Dihedral: vector %d is nil", number))
		}
		pr, pc := point.Dims()
		if pr != 1 || pc != 3 {
			panic(fmt.Sprintf("pts: Dihedral: vector %d has invalid shape", number))
		}
	}
	bma := v3.Zeros(1)
	cmb := v3.Zeros(1)
	dmc := v3.Zeros(1)
	bmascaled := v3.Zeros(1)
	bma.Sub(b, a)
	cmb.Sub(c, b)
	dmc.Sub(d, c)
	bmascaled.Scale(cmb.Norm(2), bma.Dense)
	first := bmascaled.Dot(cross(cmb, dmc))
	second := cross(bma, cmb).Dot(cross(cmb, dmc))
	return math.Atan2(first, second)
}

//cross is a convenience wrapper returning a fresh cross product vector.
func cross(a, b *v3.Matrix) *v3.Matrix {
	c := v3.Zeros(1)
	c.Cross(a, b)
	return c
}
