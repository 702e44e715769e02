/*
 * gocoords.go, part of pts.
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

//gocoords.go contains the operations on sets of coordinate vectors that
//do not need direct contact with the gonum internals.

package v3

import (
	"fmt"
)

//appzero, the absolute value under which a float is considered zero.
const appzero float64 = 0.000000000001

//SwapVecs swaps the ith and jth vectors of F.
func (F *Matrix) SwapVecs(i, j int) {
	l := F.NVecs()
	if i >= l || j >= l {
		panic(ErrIndexOutOfRange)
	}
	var tmp float64
	for k := 0; k < 3; k++ {
		tmp = F.At(i, k)
		F.Set(i, k, F.At(j, k))
		F.Set(j, k, tmp)
	}
}

//AddVec adds the 1x3 vector vec to each vector of the matrix A, putting
//the result on the receiver. Panics if shapes are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, _ := A.Dims()
	vr, _ := vec.Dims()
	if vr != 1 || F.NVecs() != ar {
		panic(ErrShape)
	}
	x, y, z := vec.At(0, 0), vec.At(0, 1), vec.At(0, 2)
	for i := 0; i < ar; i++ {
		F.Set(i, 0, A.At(i, 0)+x)
		F.Set(i, 1, A.At(i, 1)+y)
		F.Set(i, 2, A.At(i, 2)+z)
	}
}

//SubVec subtracts the 1x3 vector vec from each vector of the matrix A,
//putting the result on the receiver. Panics if shapes are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, _ := A.Dims()
	vr, _ := vec.Dims()
	if vr != 1 || F.NVecs() != ar {
		panic(ErrShape)
	}
	x, y, z := vec.At(0, 0), vec.At(0, 1), vec.At(0, 2)
	for i := 0; i < ar; i++ {
		F.Set(i, 0, A.At(i, 0)-x)
		F.Set(i, 1, A.At(i, 1)-y)
		F.Set(i, 2, A.At(i, 2)-z)
	}
}

//Cross puts the cross product of the first vecs of a and b in the first
//vec of F. Panics if error.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	x := a.At(0, 1)*b.At(0, 2) - a.At(0, 2)*b.At(0, 1)
	y := a.At(0, 2)*b.At(0, 0) - a.At(0, 0)*b.At(0, 2)
	z := a.At(0, 0)*b.At(0, 1) - a.At(0, 1)*b.At(0, 0)
	F.Set(0, 0, x)
	F.Set(0, 1, y)
	F.Set(0, 2, z)
}

//Dot returns the dot product between the elements of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	fr, fc := F.Dims()
	br, bc := B.Dims()
	if fr != br || fc != bc {
		panic(ErrShape)
	}
	var sum float64
	for i := 0; i < fr; i++ {
		for j := 0; j < fc; j++ {
			sum += F.At(i, j) * B.At(i, j)
		}
	}
	return sum
}

//Unit puts in the receiver the matrix A scaled to unit Frobenius norm,
//which for a single vector means the unit vector in its direction.
func (F *Matrix) Unit(A *Matrix) {
	norm := 1.0 / A.Norm(2)
	F.Scale(norm, A.Dense)
}

//SetVecs sets the vectors of the receiver with index n = each value in
//clist to the nth vector of A.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	ar, _ := A.Dims()
	if len(clist) > ar {
		panic(ErrNotEnoughElements)
	}
	for key, val := range clist {
		for j := 0; j < 3; j++ {
			F.Set(val, j, A.At(key, j))
		}
	}
}

//SomeVecs puts in the receiver a matrix contaning all the ith vectors of
//matrix A, where i are the numbers in clist. The vectors are in the same
//order as the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, _ := A.Dims()
	fr, _ := F.Dims()
	if len(clist) > ar || fr != len(clist) {
		panic(ErrNotEnoughElements)
	}
	for key, val := range clist {
		for j := 0; j < 3; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}

//SomeVecsSafe is SomeVecs, but returns an error instead of panicking.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Error{fmt.Sprint(r), []string{"SomeVecsSafe"}, true}
		}
	}()
	F.SomeVecs(A, clist)
	return err
}

//Centroid returns the geometric center of the vectors of A as a new 1x3
//matrix.
func Centroid(A *Matrix) *Matrix {
	r := A.NVecs()
	c := Zeros(1)
	for i := 0; i < r; i++ {
		c.Set(0, 0, c.At(0, 0)+A.At(i, 0))
		c.Set(0, 1, c.At(0, 1)+A.At(i, 1))
		c.Set(0, 2, c.At(0, 2)+A.At(i, 2))
	}
	c.Scale(1/float64(r), c.Dense)
	return c
}

//String returns a neat string representation of a Matrix.
func (F *Matrix) String() string {
	r, _ := F.Dims()
	vs := "\n["
	for i := 0; i < r; i++ {
		sep := "\n "
		if i == 0 {
			sep = ""
		}
		vs = fmt.Sprintf("%s%s%6.2f %6.2f %6.2f", vs, sep, F.At(i, 0), F.At(i, 1), F.At(i, 2))
	}
	return vs + " ]"
}
