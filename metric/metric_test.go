package metric

import (
	"fmt"
	"math"
	"testing"

	"github.com/v4m4/pts"
	"github.com/v4m4/pts/numdiff"
)

func TestContext(Te *testing.T) {
	var C Context
	v := []float64{1, 2, 3}
	if _, err := C.Lower(v, v); err == nil {
		Te.Fatal("a fresh context lowered a vector without a metric")
	} else if _, ok := err.(UninitializedMetricError); !ok {
		Te.Fatalf("wrong error kind: %T %v", err, err)
	}
	if _, err := C.Raise(v, v); err == nil {
		Te.Fatal("a fresh context raised a vector without a metric")
	}
	if _, err := C.NormUp(v, v); err == nil {
		Te.Fatal("a fresh context computed a norm without a metric")
	}
	C.Setup(Default{})
	low, err := C.Lower(v, v)
	if err != nil {
		Te.Fatal(err)
	}
	for i := range v {
		if low[i] != v[i] {
			Te.Errorf("the default metric is not an exact identity at %d", i)
		}
	}
	n, err := C.NormUp(v, v)
	if err != nil {
		Te.Fatal(err)
	}
	if want := math.Sqrt(14); math.Abs(n-want) > 1e-15 {
		Te.Errorf("norm %v, want %v", n, want)
	}
}

func TestDefaultExact(Te *testing.T) {
	var d Default
	v := []float64{0.1, -2, 3e-7, 11}
	low, err := d.Lower(v, nil)
	if err != nil {
		Te.Fatal(err)
	}
	up, err := d.Raise(low, nil)
	if err != nil {
		Te.Fatal(err)
	}
	for i := range v {
		if up[i] != v[i] || low[i] != v[i] {
			Te.Errorf("the identity round trip is not exact at %d: %v %v %v", i, v[i], low[i], up[i])
		}
	}
	//and the result is a copy, not the argument
	low[0] = 42
	if v[0] == 42 {
		Te.Error("Lower returned the argument itself")
	}
}

//spherical maps (r, theta, phi) to one Cartesian position.
func spherical(x []float64) ([]float64, error) {
	if len(x) != 3 {
		return nil, fmt.Errorf("want 3 components, got %d", len(x))
	}
	r, th, ph := x[0], x[1], x[2]
	return []float64{
		r * math.Sin(th) * math.Cos(ph),
		r * math.Sin(th) * math.Sin(ph),
		r * math.Cos(th),
	}, nil
}

func TestCartesianRoundTrip(Te *testing.T) {
	o := numdiff.DefaultOptions()
	o.Workers(4)
	M := NewCartesian(spherical, o)
	place := []float64{1.1, 1.0, 0.5}
	v := []float64{0.3, -0.2, 0.7}
	low, err := M.Lower(v, place)
	if err != nil {
		Te.Fatal(err)
	}
	up, err := M.Raise(low, place)
	if err != nil {
		Te.Fatal(err)
	}
	for i := range v {
		if math.Abs(up[i]-v[i]) > 1e-10 {
			Te.Errorf("round trip drifted at %d: %v vs %v", i, up[i], v[i])
		}
	}
	//the norm of a vector and the norm of its lowered form agree
	var C Context
	C.Setup(M)
	nu, err := C.NormUp(v, place)
	if err != nil {
		Te.Fatal(err)
	}
	nd, err := C.NormDown(low, place)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(nu-nd) > 1e-8 {
		Te.Errorf("the two norms disagree: %v vs %v", nu, nd)
	}
	if _, err := M.Lower([]float64{1}, place); err == nil {
		Te.Error("a short vector was accepted")
	} else if _, ok := err.(pts.DimensionError); !ok {
		Te.Errorf("wrong error kind: %T %v", err, err)
	}
}

func TestCartesianSingular(Te *testing.T) {
	flat := func(x []float64) ([]float64, error) {
		return []float64{x[0] + x[1]}, nil
	}
	M := NewCartesian(flat)
	if _, err := M.Raise([]float64{1, 1}, []float64{0, 0}); err == nil {
		Te.Fatal("a rank-deficient transform raised a vector")
	} else if _, ok := err.(SingularGramMatrixError); !ok {
		Te.Fatalf("wrong error kind: %T %v", err, err)
	}
}

func TestReducedRoundTrip(Te *testing.T) {
	Z, err := pts.ParseZMatrix("h\no 1 oh\nh 2 oh 1 hoh\n\noh 0.96\nhoh 104.5\n")
	if err != nil {
		Te.Fatal(err)
	}
	M := NewReduced(pts.TransformFunc(Z))
	place := Z.Internals()
	v := []float64{0.05, -0.3}
	low, err := M.Lower(v, place)
	if err != nil {
		Te.Fatal(err)
	}
	up, err := M.Raise(low, place)
	if err != nil {
		Te.Fatal(err)
	}
	for i := range v {
		if math.Abs(up[i]-v[i]) > 1e-10 {
			Te.Errorf("reduced round trip drifted at %d: %v vs %v", i, up[i], v[i])
		}
	}
	fmt.Println("reduced metric round trip:", v, "->", low, "->", up)
}

func TestRigidBases(Te *testing.T) {
	Z, err := pts.ParseZMatrix("h\no 1 oh\nh 2 oh 1 hoh\n\noh 0.96\nhoh 104.5\n")
	if err != nil {
		Te.Fatal(err)
	}
	M := NewReduced(pts.TransformFunc(Z))
	bt, br, brInv, err := M.rigidBases(Z.Internals(), 9)
	if err != nil {
		Te.Fatal(err)
	}
	//translations and rotations about the centroid are orthogonal
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dot := 0.0
			for k := 0; k < 9; k++ {
				dot += bt.At(k, i) * br.At(k, j)
			}
			if math.Abs(dot) > 1e-10 {
				Te.Errorf("translation %d and rotation %d are not orthogonal: %v", i, j, dot)
			}
		}
	}
	//the inverse of the rotation Gram matrix really inverts it
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0.0
			for k := 0; k < 3; k++ {
				var g float64
				for r := 0; r < 9; r++ {
					g += br.At(r, k) * br.At(r, j)
				}
				s += brInv.At(i, k) * g
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(s-want) > 1e-12 {
				Te.Errorf("the cofactor inverse fails at (%d,%d): %v", i, j, s)
			}
		}
	}
}

func TestReducedSingular(Te *testing.T) {
	Z, err := pts.ParseZMatrix("ar\nar 1 d\n\nd 2.0\n")
	if err != nil {
		Te.Fatal(err)
	}
	M := NewReduced(pts.TransformFunc(Z))
	if _, err := M.Lower([]float64{1}, Z.Internals()); err == nil {
		Te.Fatal("a collinear geometry produced rotation modes")
	} else if _, ok := err.(SingularGramMatrixError); !ok {
		Te.Fatalf("wrong error kind: %T %v", err, err)
	}
}
