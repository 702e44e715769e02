/*
 * interfaces.go, part of pts.
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

	v3 "github.com/v4m4/pts/v3"
)

// CoordSys is a molecular geometry expressed in some set of internal
// coordinates. A CoordSys is created once, from text or
// programmatically, and afterwards only its coordinate vector changes.
// It is not safe for concurrent mutation; callers that need to evaluate
// the same system from several goroutines must work on independent
// copies (see Copy and TransformFunc).
type CoordSys interface {

	//Dims returns the number of internal coordinates.
	Dims() int

	//Len returns the number of atoms in the system. Dummy atoms, which
	//only serve as geometric references, are not counted.
	Len() int

	//Atom returns the ith (non dummy) atom. Should panic if out of
	//range.
	Atom(i int) *Atom

	//Internals returns a copy of the current internal coordinate
	//vector.
	Internals() []float64

	//SetInternals replaces the internal coordinate vector. It fails
	//with a DimensionError if the length of x is not Dims().
	SetInternals(x []float64) error

	//Cartesians returns the Cartesian geometry encoded by the current
	//internal coordinates, one row per non-dummy atom, in declaration
	//order. It is a pure function of the coordinate vector.
	Cartesians() *v3.Matrix

	//Copy returns a deep copy of the system, optionally reseeded with
	//the given internal coordinate vector. Mutating the copy never
	//affects the original.
	Copy(newCoords ...[]float64) (CoordSys, error)
}

// Linearizer is implemented by coordinate systems whose
// internal-to-Cartesian transform is exactly linear, and can therefore
// supply their transform matrix analytically instead of going through
// finite differences.
type Linearizer interface {
	LinearTransform() *mat.Dense
}

// ForceProvider is the contract for whatever produces Cartesian forces
// for a geometry, typically a wrapper around an external electronic
// structure or force-field program. It is consumed, never implemented,
// by this library.
type ForceProvider interface {

	//Forces returns the force on each atom of the given geometry, one
	//row per atom.
	Forces(coords *v3.Matrix) (*v3.Matrix, error)
}

// Masser can return a slice with the masses of each atom in the
// reference.
type Masser interface {

	//Returns a column vector with the masses of all atoms.
	Masses() ([]float64, error)
}

// Traj is an interface for a sequence of geometries of one system that
// is read one frame at a time.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame into output, or discards it if output
	//is nil. At the normal end of the sequence the returned error
	//satisfies LastFrameError.
	Next(output *v3.Matrix) error

	//Returns the number of atoms per frame.
	Len() int
}

// ConcTraj is an interface for a trajectory that can be read
// concurrently.
type ConcTraj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	/*NextConc reads as many frames as elements the given slice has.
	The frames are discarded if the corresponding element of the slice
	is nil. The function returns a slice of channels through each of
	which one frame will be transmitted; reading the channels in order
	recovers the frames in file order.*/
	NextConc(frames []*v3.Matrix) ([]chan *v3.Matrix, error)

	//Returns the number of atoms per frame.
	Len() int
}

//Errors

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from
// the error, without changing its type or wrapping it in something
// else. Each call appends the given string, which should name the
// caller plus any relevant detail, and returns the resulting
// decoration slice; an empty string just returns the current value.
type Error interface {
	Error() string
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a do-nothing method to distinguish the harmless
// end-of-trajectory condition from real TrajErrors, so it can be
// filtered in a type switch.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination()
}
