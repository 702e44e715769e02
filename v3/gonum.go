/*
 * gonum.go, part of pts.
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

//gonum.go holds the Matrix type itself and everything tied to the
//gonum/mat machinery: construction, views, and the wrappers needed
//so gonum operations work when given a *Matrix instead of a *mat.Dense.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, stored as an N x 3 matrix.
//Within the package it is understood that a "vector" is a row, i.e.
//the Cartesian coordinates of one point in 3D space. The names of
//several functions in the library reflect this.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the underlying gonum Dense of A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a gonum Dense into a Matrix. The Dense must have
//3 columns, or the matrix-shaped operations of the package will panic
//later on.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns. Changes in the view are reflected in F and vice-versa.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//SetMatrix puts the matrix A in the receiver starting from the ith row
//and jth column of the receiver.
func (F *Matrix) SetMatrix(i, j int, A *Matrix) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ar+i > fr || ac+j > fc {
		panic(ErrShape)
	}
	dst := F.Dense.Slice(i, i+ar, j, j+ac).(*mat.Dense)
	dst.Copy(A.Dense)
}

//Mul wraps mat.Dense.Mul unpacking any *Matrix argument to its Dense.
//gonum only detects aliasing between receiver and arguments when it can
//see the underlying Dense, so multiplications like F.Mul(F, B) would
//silently give wrong results without the unpacking.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if C, ok := A.(*Matrix); ok {
		A = C.Dense
	}
	if C, ok := B.(*Matrix); ok {
		B = C.Dense
	}
	F.Dense.Mul(A, B)
}

//Stack puts A stacked over B in F.
func (F *Matrix) Stack(A, B *Matrix) {
	ar, _ := A.Dims()
	br, _ := B.Dims()
	if F.NVecs() < ar+br {
		panic(ErrShape)
	}
	F.SetMatrix(0, 0, A)
	F.SetMatrix(ar, 0, B)
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//Norm returns the i-norm of F. i=2 gives the Frobenius norm, which for
//a single vector is its Euclidean length.
func (F *Matrix) Norm(i float64) float64 {
	return mat.Norm(F.Dense, i)
}

//Clone returns a newly allocated copy of F.
func (F *Matrix) Clone() *Matrix {
	r := Zeros(F.NVecs())
	r.Dense.Copy(F.Dense)
	return r
}

//Flatten returns a newly allocated row-major flat slice with the
//contents of F.
func (F *Matrix) Flatten() []float64 {
	r, c := F.Dims()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		mat.Row(out[i*c:(i+1)*c], i, F.Dense)
	}
	return out
}

//Errors

//the same as pts.Error but avoids a circular import.
type errorInt interface {
	Error() string
	Critical() bool
	Decorate(string) []string
}

//Error is the error type for the v3 package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("v3: %s", err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics. It does satisfy the error
//interface, but for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("pts/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct    = PanicMsg("pts/v3: Invalid matrix for cross product")
	ErrNotEnoughElements = PanicMsg("pts/v3: not enough elements in Matrix")
	ErrShape             = PanicMsg("pts/v3: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("pts/v3: index out of range")
)
