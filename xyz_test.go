/*
 * xyz_test.go, part of pts.
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

const waterXYZ = "3\nwater, arbitrary orientation\nO 0.0 0.0 0.0\nH 0.96 0.0 0.0\nH -0.24 0.93 0.0\n"

func TestParseXYZ(Te *testing.T) {
	X, err := ParseXYZ(waterXYZ)
	if err != nil {
		Te.Fatal(err)
	}
	if X.Len() != 3 || X.Dims() != 9 {
		Te.Errorf("got %d atoms and %d coordinates, want 3 and 9", X.Len(), X.Dims())
	}
	if X.Atom(0).Symbol != "O" || X.Atom(1).Symbol != "H" {
		Te.Errorf("wrong atoms: %v %v", X.Atom(0), X.Atom(1))
	}
	//the same geometry without the header
	bare, err := ParseXYZ("O 0.0 0.0 0.0\nH 0.96 0.0 0.0\nH -0.24 0.93 0.0\n")
	if err != nil {
		Te.Fatal(err)
	}
	if bare.Len() != 3 {
		Te.Errorf("headerless parse got %d atoms, want 3", bare.Len())
	}
	for i, text := range []string{
		"2\ncomment\nO 0.0 0.0 0.0\n",  //count mismatch
		"O 0.0 0.0\n",                  //missing coordinate
		"O 0.0 zero 0.0\n",             //bad coordinate
		"",                             //nothing at all
	} {
		if _, err := ParseXYZ(text); err == nil {
			Te.Errorf("bad input %d was accepted", i)
		} else if _, ok := err.(ParseError); !ok {
			Te.Errorf("wrong error kind for bad input %d: %T %v", i, err, err)
		}
	}
}

func TestXYZSystem(Te *testing.T) {
	X, err := ParseXYZ(waterXYZ)
	if err != nil {
		Te.Fatal(err)
	}
	x := X.Internals()
	if len(x) != 9 || x[3] != 0.96 {
		Te.Fatalf("wrong internal vector: %v", x)
	}
	x[3] = 1.1
	if err := X.SetInternals(x); err != nil {
		Te.Fatal(err)
	}
	if got := X.Cartesians().At(1, 0); got != 1.1 {
		Te.Errorf("the Cartesians do not follow the internals: %v", got)
	}
	if err := X.SetInternals(x[:4]); err == nil {
		Te.Error("a short vector was accepted")
	}
	d := X.LinearTransform()
	r, c := d.Dims()
	if r != 9 || c != 9 {
		Te.Fatalf("the constant derivative has shape (%d,%d), want (9,9)", r, c)
	}
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if d.At(i, j) != want {
				Te.Fatalf("the constant derivative is not the identity at (%d,%d)", i, j)
			}
		}
	}
	c2, err := X.Copy([]float64{0, 0, 0, 2, 0, 0, 0, 2, 0})
	if err != nil {
		Te.Fatal(err)
	}
	if X.Internals()[3] != 1.1 {
		Te.Error("the copy shares state with the original")
	}
	if c2.Internals()[3] != 2 {
		Te.Errorf("the reseeded copy kept the old values: %v", c2.Internals())
	}
	fmt.Println("xyz geometry:")
	fmt.Println(X.XYZString())
}

func TestXYZStringReparse(Te *testing.T) {
	X, err := ParseXYZ(waterXYZ)
	if err != nil {
		Te.Fatal(err)
	}
	again, err := ParseXYZ(X.XYZString())
	if err != nil {
		Te.Fatal(err)
	}
	diff := v3.Zeros(3)
	diff.Sub(X.Cartesians(), again.Cartesians())
	if diff.Norm(2) > 1e-6 {
		Te.Errorf("the geometry drifted on the text round trip by %v", diff.Norm(2))
	}
}

func TestMasses(Te *testing.T) {
	X, err := ParseXYZ(waterXYZ)
	if err != nil {
		Te.Fatal(err)
	}
	m, err := X.Masses()
	if err != nil {
		Te.Fatal(err)
	}
	if len(m) != 3 || math.Abs(m[0]-15.999) > 1e-10 || math.Abs(m[1]-1.008) > 1e-10 {
		Te.Errorf("wrong water masses: %v", m)
	}
	odd, err := ParseXYZ("Qq 0.0 0.0 0.0\n")
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := odd.Masses(); err == nil {
		Te.Error("an unknown element produced a mass")
	}
}
