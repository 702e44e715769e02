/*
 * anchor.go, part of pts.
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
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	v3 "github.com/v4m4/pts/v3"
)

// Anchor rigidly repositions the Cartesian block of one fragment of a
// composite system. origin is the centroid of the parent fragment, or
// nil when the anchor has no parent; Parent reports which fragment that
// is as an index into the composite, -1 for none. The parent is only
// ever identified by index, so an anchor holds no reference into the
// composite it serves.
type Anchor interface {
	Reposition(x, origin *v3.Matrix) *v3.Matrix
	Parent() int
	CopyAnchor() Anchor
}

// Identity is the anchor that leaves a fragment where its own
// coordinate system built it.
type Identity struct{}

// Reposition returns x unchanged.
func (Identity) Reposition(x, origin *v3.Matrix) *v3.Matrix {
	return x
}

// Parent returns -1: an identity anchor uses no reference origin.
func (Identity) Parent() int {
	return -1
}

// CopyAnchor returns another identity anchor.
func (Identity) CopyAnchor() Anchor {
	return Identity{}
}

// RotAndTrans rotates and translates a fragment as a rigid body. Its 6
// shift parameters are a rotation vector (axis times angle, radians)
// followed by a translation vector; each position p becomes R p + t,
// with t the translation plus, when a parent fragment is configured,
// that fragment's current centroid.
type RotAndTrans struct {
	shift  []float64
	parent int
}

// NewRotAndTrans builds a rotate-and-translate anchor from 6 shift
// parameters. parent is the index of the fragment whose centroid will
// serve as reference origin, or -1 for none.
func NewRotAndTrans(shift []float64, parent int) (*RotAndTrans, error) {
	R := &RotAndTrans{shift: make([]float64, 6), parent: parent}
	if err := R.SetShift(shift); err != nil {
		return nil, errDecorate(err, "NewRotAndTrans")
	}
	return R, nil
}

// Shift returns a copy of the current shift parameters.
func (R *RotAndTrans) Shift() []float64 {
	return append([]float64{}, R.shift...)
}

// SetShift replaces the shift parameters.
func (R *RotAndTrans) SetShift(s []float64) error {
	if len(s) != 6 {
		return DimensionError{Context: "RotAndTrans.SetShift", Expected: 6, Got: len(s)}
	}
	copy(R.shift, s)
	return nil
}

// Parent returns the index of the reference fragment, -1 for none.
func (R *RotAndTrans) Parent() int {
	return R.parent
}

//rotator builds the rotation matrix of the first 3 shift parameters.
//The rotation vector becomes a unit quaternion through the exponential
//of a pure-imaginary quaternion carrying half the vector, and the
//quaternion expands to a matrix in the usual way.
func (R *RotAndTrans) rotator() *mat.Dense {
	q := quat.Exp(quat.Number{Imag: R.shift[0] / 2, Jmag: R.shift[1] / 2, Kmag: R.shift[2] / 2})
	a, b, c, d := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		a*a + b*b - c*c - d*d, 2 * (b*c - a*d), 2 * (b*d + a*c),
		2 * (b*c + a*d), a*a - b*b + c*c - d*d, 2 * (c*d - a*b),
		2 * (b*d - a*c), 2 * (c*d + a*b), a*a - b*b - c*c + d*d,
	})
}

// Reposition returns a new block with every row of x rotated by the
// current rotation and moved by the current translation, measured from
// origin when one is given.
func (R *RotAndTrans) Reposition(x, origin *v3.Matrix) *v3.Matrix {
	out := v3.Zeros(x.NVecs())
	out.Mul(x, R.rotator().T())
	t, _ := v3.NewMatrix([]float64{R.shift[3], R.shift[4], R.shift[5]})
	if origin != nil {
		t.Add(t.Dense, origin.Dense)
	}
	out.AddVec(out, t)
	return out
}

// CopyAnchor returns a deep copy of the anchor.
func (R *RotAndTrans) CopyAnchor() Anchor {
	c := &RotAndTrans{shift: append([]float64{}, R.shift...), parent: R.parent}
	return c
}
