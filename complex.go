/*
 * complex.go, part of pts.
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

	v3 "github.com/v4m4/pts/v3"
)

// ComplexCoordSys combines several coordinate systems into one. Its
// internal vector is the concatenation of the fragment vectors in
// fragment order, and its Cartesian block stacks the fragment blocks in
// the same order, each repositioned by its anchor first.
type ComplexCoordSys struct {
	parts   []CoordSys
	anchors []Anchor
}

// NewComplexCoordSys builds a composite from fragments and one anchor
// per fragment. A nil anchors slice means all fragments keep their own
// placement. An anchor with a parent must name an earlier fragment, so
// that the parent's repositioned block exists by the time its centroid
// is needed.
func NewComplexCoordSys(parts []CoordSys, anchors []Anchor) (*ComplexCoordSys, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("pts: a composite needs at least one fragment")
	}
	C := new(ComplexCoordSys)
	C.parts = append([]CoordSys{}, parts...)
	if anchors == nil {
		for range parts {
			C.anchors = append(C.anchors, Identity{})
		}
		return C, nil
	}
	if len(anchors) != len(parts) {
		return nil, DimensionError{Context: "NewComplexCoordSys", Expected: len(parts), Got: len(anchors)}
	}
	for i, a := range anchors {
		if p := a.Parent(); p < -1 || p >= i {
			return nil, fmt.Errorf("pts: the anchor of fragment %d wants fragment %d as parent, which is not an earlier fragment", i, p)
		}
	}
	C.anchors = append([]Anchor{}, anchors...)
	return C, nil
}

// Part returns the ith fragment.
func (C *ComplexCoordSys) Part(i int) CoordSys {
	return C.parts[i]
}

// AnchorAt returns the anchor of the ith fragment.
func (C *ComplexCoordSys) AnchorAt(i int) Anchor {
	return C.anchors[i]
}

// NParts returns the number of fragments.
func (C *ComplexCoordSys) NParts() int {
	return len(C.parts)
}

// Dims returns the total number of internal coordinates over all
// fragments.
func (C *ComplexCoordSys) Dims() int {
	n := 0
	for _, p := range C.parts {
		n += p.Dims()
	}
	return n
}

// Len returns the total number of atoms over all fragments.
func (C *ComplexCoordSys) Len() int {
	n := 0
	for _, p := range C.parts {
		n += p.Len()
	}
	return n
}

// Atom returns the ith atom, counting through the fragments in order.
// Panics if out of range.
func (C *ComplexCoordSys) Atom(i int) *Atom {
	for _, p := range C.parts {
		if i < p.Len() {
			return p.Atom(i)
		}
		i -= p.Len()
	}
	panic("pts: atom index out of range")
}

// Masses returns the mass of each atom, in the stacking order.
func (C *ComplexCoordSys) Masses() ([]float64, error) {
	return massesOf(C)
}

// Internals returns the concatenated internal vectors of the fragments.
func (C *ComplexCoordSys) Internals() []float64 {
	out := make([]float64, 0, C.Dims())
	for _, p := range C.parts {
		out = append(out, p.Internals()...)
	}
	return out
}

// SetInternals slices x into contiguous per-fragment pieces, sized by
// each fragment's Dims, and hands each piece to its fragment.
func (C *ComplexCoordSys) SetInternals(x []float64) error {
	if len(x) != C.Dims() {
		return DimensionError{Context: "ComplexCoordSys.SetInternals", Expected: C.Dims(), Got: len(x)}
	}
	at := 0
	for i, p := range C.parts {
		d := p.Dims()
		if err := p.SetInternals(x[at : at+d]); err != nil {
			return errDecorate(err, fmt.Sprintf("ComplexCoordSys.SetInternals, fragment %d", i))
		}
		at += d
	}
	return nil
}

// Cartesians builds every fragment, repositions each block through its
// anchor, and stacks the blocks. A parent centroid is taken from the
// repositioned block of the parent, freshly, on every call.
func (C *ComplexCoordSys) Cartesians() *v3.Matrix {
	blocks := make([]*v3.Matrix, len(C.parts))
	for i, p := range C.parts {
		var origin *v3.Matrix
		if par := C.anchors[i].Parent(); par >= 0 {
			origin = v3.Centroid(blocks[par])
		}
		blocks[i] = C.anchors[i].Reposition(p.Cartesians(), origin)
	}
	out := v3.Zeros(C.Len())
	row := 0
	for _, b := range blocks {
		out.SetMatrix(row, 0, b)
		row += b.NVecs()
	}
	return out
}

// Copy returns a deep copy of the composite, fragments and anchors
// included, optionally reseeded with a new concatenated coordinate
// vector.
func (C *ComplexCoordSys) Copy(newCoords ...[]float64) (CoordSys, error) {
	N := new(ComplexCoordSys)
	for i, p := range C.parts {
		c, err := p.Copy()
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("ComplexCoordSys.Copy, fragment %d", i))
		}
		N.parts = append(N.parts, c)
	}
	for _, a := range C.anchors {
		N.anchors = append(N.anchors, a.CopyAnchor())
	}
	if len(newCoords) > 0 && newCoords[0] != nil {
		if err := N.SetInternals(newCoords[0]); err != nil {
			return nil, errDecorate(err, "ComplexCoordSys.Copy")
		}
	}
	return N, nil
}

// XYZString returns the stacked geometry in xyz-style text.
func (C *ComplexCoordSys) XYZString() string {
	return xyzString(C)
}
