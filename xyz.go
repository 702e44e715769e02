/*
 * xyz.go, part of pts.
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
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	v3 "github.com/v4m4/pts/v3"
)

// XYZ is the trivial coordinate system: its internal coordinates are
// the Cartesian components themselves, so the transformation to
// Cartesians is the identity and its derivative is constant.
type XYZ struct {
	atoms  []*Atom
	coords []float64 //flat, 3 per atom
}

// NewXYZ builds an XYZ system from atom names and a geometry. The
// geometry must have one row per name.
func NewXYZ(names []string, carts *v3.Matrix) (*XYZ, error) {
	if carts == nil || carts.NVecs() != len(names) {
		got := 0
		if carts != nil {
			got = carts.NVecs()
		}
		return nil, DimensionError{Context: "NewXYZ", Expected: len(names), Got: got}
	}
	X := new(XYZ)
	for _, name := range names {
		X.atoms = append(X.atoms, newAtom(name))
	}
	X.coords = carts.Flatten()
	return X, nil
}

// ParseXYZ builds an XYZ system from xyz-format text: an optional atom
// count line, an optional comment line (only when the count is given),
// then one "name x y z" line per atom. When a count is present it must
// match the number of atom lines.
func ParseXYZ(text string) (*XYZ, error) {
	lines := []textLine{}
	for i, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, textLine{raw, i + 1})
	}
	if len(lines) == 0 {
		return nil, ParseError{Message: "no atom lines found"}
	}
	count := -1
	if fields := strings.Fields(lines[0].text); len(fields) == 1 {
		if n, err := strconv.Atoi(fields[0]); err == nil {
			count = n
			lines = lines[1:]
			//the line after the count is a free-form comment
			if len(lines) > 0 && len(lines) == count+1 {
				lines = lines[1:]
			}
		}
	}
	if count >= 0 && len(lines) != count {
		return nil, ParseError{Message: fmt.Sprintf("the header announces %d atoms but %d lines follow", count, len(lines))}
	}
	X := new(XYZ)
	for _, line := range lines {
		fields := strings.Fields(line.text)
		if len(fields) != 4 {
			return nil, ParseError{Message: "wrong number of fields in atom line", Line: line.text, LineNo: line.number}
		}
		if !zmatName.MatchString(fields[0]) {
			return nil, ParseError{Message: "bad atom name", Line: line.text, LineNo: line.number}
		}
		X.atoms = append(X.atoms, newAtom(fields[0]))
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, ParseError{Message: "bad coordinate", Line: line.text, LineNo: line.number}
			}
			X.coords = append(X.coords, v)
		}
	}
	return X, nil
}

// Dims returns the number of internal coordinates, 3 per atom.
func (X *XYZ) Dims() int {
	return len(X.coords)
}

// Len returns the number of atoms.
func (X *XYZ) Len() int {
	return len(X.atoms)
}

// Atom returns the ith atom. Panics if out of range.
func (X *XYZ) Atom(i int) *Atom {
	return X.atoms[i]
}

// Masses returns the mass of each atom.
func (X *XYZ) Masses() ([]float64, error) {
	return massesOf(X)
}

// Internals returns a copy of the flat Cartesian components.
func (X *XYZ) Internals() []float64 {
	return append([]float64{}, X.coords...)
}

// SetInternals replaces the flat Cartesian components.
func (X *XYZ) SetInternals(x []float64) error {
	if len(x) != len(X.coords) {
		return DimensionError{Context: "XYZ.SetInternals", Expected: len(X.coords), Got: len(x)}
	}
	copy(X.coords, x)
	return nil
}

// Cartesians returns the geometry as an N x 3 matrix.
func (X *XYZ) Cartesians() *v3.Matrix {
	out, _ := v3.NewMatrix(append([]float64{}, X.coords...))
	return out
}

// LinearTransform returns the constant derivative of the trivial
// transformation, the identity. Its presence lets the numeric
// differentiation be skipped for XYZ systems.
func (X *XYZ) LinearTransform() *mat.Dense {
	d := mat.NewDense(len(X.coords), len(X.coords), nil)
	for i := range X.coords {
		d.Set(i, i, 1)
	}
	return d
}

// Copy returns a deep copy, optionally reseeded with a new coordinate
// vector.
func (X *XYZ) Copy(newCoords ...[]float64) (CoordSys, error) {
	N := new(XYZ)
	N.atoms = make([]*Atom, len(X.atoms))
	for i, a := range X.atoms {
		c := *a
		N.atoms[i] = &c
	}
	N.coords = append([]float64{}, X.coords...)
	if len(newCoords) > 0 && newCoords[0] != nil {
		if err := N.SetInternals(newCoords[0]); err != nil {
			return nil, errDecorate(err, "XYZ.Copy")
		}
	}
	return N, nil
}

// XYZString returns the geometry in xyz-style text.
func (X *XYZ) XYZString() string {
	return xyzString(X)
}

//xyzString renders any coordinate system in xyz-style text, without the
//count header. ParseXYZ accepts the result.
func xyzString(c CoordSys) string {
	var b strings.Builder
	carts := c.Cartesians()
	for i := 0; i < c.Len(); i++ {
		fmt.Fprintf(&b, "%-2s %12.7f %12.7f %12.7f\n", c.Atom(i).Symbol,
			carts.At(i, 0), carts.At(i, 1), carts.At(i, 2))
	}
	return b.String()
}
