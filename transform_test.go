/*
 * transform_test.go, part of pts.
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
	"testing"

	v3 "github.com/v4m4/pts/v3"
)

func TestTransformFunc(Te *testing.T) {
	Z, err := ParseZMatrix(waterZMT)
	if err != nil {
		Te.Fatal(err)
	}
	f := TransformFunc(Z)
	y, err := f([]float64{1.0, math.Pi / 2})
	if err != nil {
		Te.Fatal(err)
	}
	if len(y) != 9 {
		Te.Fatalf("the flat geometry has %d components, want 9", len(y))
	}
	if math.Abs(y[3]-1.0) > 1e-15 {
		Te.Errorf("the oxygen did not follow the evaluation point: %v", y[3])
	}
	if Z.Internals()[0] != 0.96 {
		Te.Error("evaluating the transform mutated the original system")
	}
	if _, err := f([]float64{1}); err == nil {
		Te.Error("a short vector was accepted")
	}
}

func TestTransformMatrixShape(Te *testing.T) {
	Z, err := ParseZMatrix(waterZMT)
	if err != nil {
		Te.Fatal(err)
	}
	B, err := TransformMatrix(Z, nil)
	if err != nil {
		Te.Fatal(err)
	}
	r, c := B.Dims()
	if r != 3*Z.Len() || c != Z.Dims() {
		Te.Fatalf("the derivative has shape (%d,%d), want (%d,%d)", r, c, 3*Z.Len(), Z.Dims())
	}
	//the oxygen sits at (oh,0,0), so its x component moves one to one
	//with the first variable
	if math.Abs(B.At(3, 0)-1) > 1e-6 {
		Te.Errorf("d(O_x)/d(oh) is %v, want 1", B.At(3, 0))
	}
	//the first atom is pinned to the origin
	for j := 0; j < c; j++ {
		if math.Abs(B.At(0, j)) > 1e-8 {
			Te.Errorf("the origin atom moved under variable %d", j)
		}
	}
	//with a dummy in the z-matrix, the rows still count real atoms only
	amm := "n\nx2 1 1.0\nh 1 nh 2 hnx\nh 1 nh 2 hnx 3 120.0\nh 1 nh 2 hnx 3 -120.0\n\nnh 1.02\nhnx 112.0\n"
	A, err := ParseZMatrix(amm)
	if err != nil {
		Te.Fatal(err)
	}
	BA, err := TransformMatrix(A, nil)
	if err != nil {
		Te.Fatal(err)
	}
	r, c = BA.Dims()
	if r != 3*A.Len() || c != A.Dims() {
		Te.Fatalf("the derivative has shape (%d,%d), want (%d,%d)", r, c, 3*A.Len(), A.Dims())
	}
	if r != 12 || c != 2 {
		Te.Errorf("four real atoms and two variables should give (12,2), got (%d,%d)", r, c)
	}
	fmt.Println("transform derivative shapes verified")
}

func TestTransformMatrixLinear(Te *testing.T) {
	X, err := ParseXYZ(waterXYZ)
	if err != nil {
		Te.Fatal(err)
	}
	B, err := TransformMatrix(X, nil)
	if err != nil {
		Te.Fatal(err)
	}
	r, c := B.Dims()
	if r != 9 || c != 9 {
		Te.Fatalf("shape (%d,%d), want (9,9)", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if B.At(i, j) != want {
				Te.Fatal("a Cartesian system should short-circuit to an exact identity")
			}
		}
	}
}

//springForce is a harmonic bond between the first two atoms, for tests.
type springForce struct {
	k, r0 float64
}

func (s springForce) Forces(pos *v3.Matrix) (*v3.Matrix, error) {
	out := v3.Zeros(pos.NVecs())
	d := v3.Zeros(1)
	d.Sub(pos.VecView(1), pos.VecView(0))
	r := d.Norm(2)
	d.Unit(d)
	d.Scale(-s.k*(r-s.r0), d.Dense)
	out.SetMatrix(1, 0, d)
	d.Scale(-1, d.Dense)
	out.SetMatrix(0, 0, d)
	return out, nil
}

func TestInternalForces(Te *testing.T) {
	Z, err := ParseZMatrix("ar\nar 1 d\n\nd 1.3\n")
	if err != nil {
		Te.Fatal(err)
	}
	fint, err := ForcesAlong(Z, springForce{k: 2, r0: 1.0}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(fint) != 1 {
		Te.Fatalf("one variable should yield one force component, got %d", len(fint))
	}
	//E = k(d-r0)^2/2, so the force along d is -k(d-r0)
	if want := -2 * 0.3; math.Abs(fint[0]-want) > 1e-8 {
		Te.Errorf("force along the bond is %.12f, want %.12f", fint[0], want)
	}
	short := v3.Zeros(1)
	if _, err := InternalForces(Z, short, nil); err == nil {
		Te.Error("a force block of the wrong size was accepted")
	} else if _, ok := err.(DimensionError); !ok {
		Te.Errorf("wrong error kind: %T %v", err, err)
	}
	fmt.Println("internal force on the dimer:", fint[0])
}
