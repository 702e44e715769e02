/*
 * transform.go, part of pts.
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

	"gonum.org/v1/gonum/mat"

	"github.com/v4m4/pts/numdiff"
	v3 "github.com/v4m4/pts/v3"
)

// TransformFunc adapts a coordinate system into the flat-vector
// function consumed by numdiff: given an internal vector, it returns
// the flat Cartesian vector of the geometry that vector encodes. Every
// call works on its own copy of c, so the function is safe to evaluate
// from parallel workers.
func TransformFunc(c CoordSys) numdiff.Func {
	return func(x []float64) ([]float64, error) {
		w, err := c.Copy(x)
		if err != nil {
			return nil, err
		}
		return w.Cartesians().Flatten(), nil
	}
}

// TransformMatrix returns the derivative of the internal-to-Cartesian
// transformation of c at its current internal vector, with shape
// (3*Len, Dims). A system with a constant derivative reports it
// directly through Linearizer; for the rest the derivative is estimated
// by finite differences, steered by o (nil means
// numdiff.DefaultOptions()).
func TransformMatrix(c CoordSys, o *numdiff.Options) (*mat.Dense, error) {
	if l, ok := c.(Linearizer); ok {
		return l.LinearTransform(), nil
	}
	B, err := numdiff.Jacobian(TransformFunc(c), c.Internals(), o)
	if err != nil {
		return nil, fmt.Errorf("pts: transform derivative: %w", err)
	}
	return B, nil
}

// InternalForces converts Cartesian forces on the atoms of c, one row
// per atom, into forces along the internal coordinates of c. The
// conversion is the transpose of the transform derivative applied to
// the flat force vector.
func InternalForces(c CoordSys, fcart *v3.Matrix, o *numdiff.Options) ([]float64, error) {
	if fcart == nil || fcart.NVecs() != c.Len() {
		got := 0
		if fcart != nil {
			got = fcart.NVecs()
		}
		return nil, DimensionError{Context: "InternalForces", Expected: c.Len(), Got: got}
	}
	B, err := TransformMatrix(c, o)
	if err != nil {
		return nil, err
	}
	flat := fcart.Flatten()
	fv := mat.NewVecDense(len(flat), flat)
	out := mat.NewVecDense(c.Dims(), nil)
	out.MulVec(B.T(), fv)
	return out.RawVector().Data, nil
}

// ForcesAlong asks p for the Cartesian forces on the current geometry
// of c and converts them into internal-coordinate forces.
func ForcesAlong(c CoordSys, p ForceProvider, o *numdiff.Options) ([]float64, error) {
	fcart, err := p.Forces(c.Cartesians())
	if err != nil {
		return nil, fmt.Errorf("pts: force provider: %w", err)
	}
	return InternalForces(c, fcart, o)
}
