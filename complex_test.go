/*
 * complex_test.go, part of pts.
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

func TestRotAndTrans(Te *testing.T) {
	R, err := NewRotAndTrans([]float64{0, 0, math.Pi, 0, 0, 5}, -1)
	if err != nil {
		Te.Fatal(err)
	}
	x, err := v3.NewMatrix([]float64{1, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	out := R.Reposition(x, nil)
	want := []float64{-1, 0, 5}
	for j, w := range want {
		if math.Abs(out.At(0, j)-w) > 1e-10 {
			Te.Errorf("half-turn about z plus lift: got %v, want %v", out, want)
			break
		}
	}
	if _, err := NewRotAndTrans([]float64{1, 2, 3}, -1); err == nil {
		Te.Error("a short shift was accepted")
	}
	if x2 := (Identity{}).Reposition(x, nil); x2 != x {
		Te.Error("the identity anchor should hand back the same block")
	}
}

func TestComposite(Te *testing.T) {
	Z, err := ParseZMatrix(waterZMT)
	if err != nil {
		Te.Fatal(err)
	}
	arpos, _ := v3.NewMatrix([]float64{3, 0, 0})
	ar, err := NewXYZ([]string{"ar"}, arpos)
	if err != nil {
		Te.Fatal(err)
	}
	C, err := NewComplexCoordSys([]CoordSys{Z, ar}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if C.Dims() != 5 || C.Len() != 4 {
		Te.Fatalf("water plus argon should have 5 variables and 4 atoms, got %d and %d", C.Dims(), C.Len())
	}
	if C.Atom(3).Symbol != "Ar" {
		Te.Errorf("wrong atom dispatch: %v", C.Atom(3))
	}
	x := C.Internals()
	if len(x) != 5 || x[0] != 0.96 || x[2] != 3 {
		Te.Fatalf("wrong concatenated internals: %v", x)
	}
	//a change in the argon slice must not touch the water fragment
	x[2] = 4
	if err := C.SetInternals(x); err != nil {
		Te.Fatal(err)
	}
	carts := C.Cartesians()
	if carts.At(3, 0) != 4 {
		Te.Errorf("the argon fragment ignored its slice: %v", carts.At(3, 0))
	}
	if d := Distance(carts.VecView(0), carts.VecView(1)); math.Abs(d-0.96) > 1e-10 {
		Te.Errorf("the water fragment drifted: O-H %v", d)
	}
	if err := C.SetInternals(x[:3]); err == nil {
		Te.Error("a short vector was accepted")
	} else if _, ok := err.(DimensionError); !ok {
		Te.Errorf("wrong error kind: %T %v", err, err)
	}
	m, err := C.Masses()
	if err != nil {
		Te.Fatal(err)
	}
	if len(m) != 4 || math.Abs(m[3]-39.948) > 1e-10 {
		Te.Errorf("wrong stacked masses: %v", m)
	}
	fmt.Println("composite built:")
	fmt.Println(C.XYZString())
}

func TestCompositeAnchor(Te *testing.T) {
	Z, err := ParseZMatrix(waterZMT)
	if err != nil {
		Te.Fatal(err)
	}
	arpos, _ := v3.NewMatrix([]float64{1, 0, 0, 2, 0, 0})
	ars, err := NewXYZ([]string{"ar", "ar"}, arpos)
	if err != nil {
		Te.Fatal(err)
	}
	anchor, err := NewRotAndTrans([]float64{0, 0, math.Pi, 0, 0, 5}, 0)
	if err != nil {
		Te.Fatal(err)
	}
	C, err := NewComplexCoordSys([]CoordSys{Z, ars}, []Anchor{Identity{}, anchor})
	if err != nil {
		Te.Fatal(err)
	}
	carts := C.Cartesians()
	cent := v3.Centroid(Z.Cartesians())
	//the argon dimer is flipped about z, lifted by 5 and hung off the
	//water centroid
	for i, px := range []float64{-1, -2} {
		row := carts.VecView(3 + i)
		want := []float64{px + cent.At(0, 0), cent.At(0, 1), 5 + cent.At(0, 2)}
		for j, w := range want {
			if math.Abs(row.At(0, j)-w) > 1e-10 {
				Te.Errorf("anchored row %d is %v, want %v", i, row, want)
				break
			}
		}
	}
	//the parent centroid is taken fresh on every call
	x := C.Internals()
	x[0] = 1.5
	if err := C.SetInternals(x); err != nil {
		Te.Fatal(err)
	}
	carts2 := C.Cartesians()
	cent2 := v3.Centroid(Z.Cartesians())
	if math.Abs(carts2.At(3, 0)-(-1+cent2.At(0, 0))) > 1e-10 {
		Te.Errorf("the anchor kept a stale parent centroid")
	}
	//deep copies keep their own anchors
	cp, err := C.Copy()
	if err != nil {
		Te.Fatal(err)
	}
	if err := anchor.SetShift([]float64{0, 0, 0, 0, 0, 0}); err != nil {
		Te.Fatal(err)
	}
	kept := cp.(*ComplexCoordSys).AnchorAt(1).(*RotAndTrans).Shift()
	if kept[5] != 5 {
		Te.Errorf("the copied anchor shares state with the original: %v", kept)
	}
}

func TestCompositeValidation(Te *testing.T) {
	Z, err := ParseZMatrix(waterZMT)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := NewComplexCoordSys(nil, nil); err == nil {
		Te.Error("an empty composite was accepted")
	}
	if _, err := NewComplexCoordSys([]CoordSys{Z}, []Anchor{}); err == nil {
		Te.Error("an anchor list of the wrong length was accepted")
	}
	forward, err := NewRotAndTrans(make([]float64, 6), 1)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := NewComplexCoordSys([]CoordSys{Z, Z}, []Anchor{forward, Identity{}}); err == nil {
		Te.Error("an anchor pointing at a later fragment was accepted")
	}
}
