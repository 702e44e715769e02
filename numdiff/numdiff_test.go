package numdiff

import (
	"fmt"
	"math"
	"testing"
)

//a smooth test function with a known derivative matrix.
func curved(x []float64) ([]float64, error) {
	return []float64{
		x[0] * x[0],
		x[0] * x[1],
		math.Sin(x[2]),
	}, nil
}

//the analytic Jacobian of curved.
func curvedJac(x []float64) [][]float64 {
	return [][]float64{
		{2 * x[0], 0, 0},
		{x[1], x[0], 0},
		{0, 0, math.Cos(x[2])},
	}
}

func TestJacobianCentral(Te *testing.T) {
	x := []float64{1.3, -0.7, 0.4}
	o := DefaultOptions()
	o.Workers(1)
	J, err := Jacobian(curved, x, o)
	if err != nil {
		Te.Fatal(err)
	}
	r, c := J.Dims()
	if r != 3 || c != 3 {
		Te.Fatalf("expected a 3x3 Jacobian, got %dx%d", r, c)
	}
	want := curvedJac(x)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(J.At(i, j)-want[i][j]) > 1e-6 {
				Te.Errorf("central J[%d][%d]: expected %f, got %f", i, j, want[i][j], J.At(i, j))
			}
		}
	}
	fmt.Println("central Jacobian", J)
}

func TestJacobianForwardBackward(Te *testing.T) {
	x := []float64{1.3, -0.7, 0.4}
	want := curvedJac(x)
	for _, dir := range []Direction{Forward, Backward} {
		o := DefaultOptions()
		o.Dir(dir)
		J, err := Jacobian(curved, x, o)
		if err != nil {
			Te.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if math.Abs(J.At(i, j)-want[i][j]) > 5e-3 {
					Te.Errorf("direction %v J[%d][%d]: expected %f, got %f", dir, i, j, want[i][j], J.At(i, j))
				}
			}
		}
	}
}

//The parallel and serial paths must produce bit-identical matrices,
//since the columns are assembled in perturbation order either way.
func TestJacobianDeterministic(Te *testing.T) {
	x := []float64{0.2, 1.1, -2.3}
	serial := DefaultOptions()
	serial.Workers(1)
	parallel := DefaultOptions()
	parallel.Workers(4)
	Js, err := Jacobian(curved, x, serial)
	if err != nil {
		Te.Fatal(err)
	}
	Jp, err := Jacobian(curved, x, parallel)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if Js.At(i, j) != Jp.At(i, j) {
				Te.Errorf("serial and parallel Jacobians differ at %d,%d: %g vs %g", i, j, Js.At(i, j), Jp.At(i, j))
			}
		}
	}
}

func TestMapOrder(Te *testing.T) {
	echo := func(x []float64) ([]float64, error) {
		return []float64{x[0]}, nil
	}
	xs := make([][]float64, 17)
	for i := range xs {
		xs[i] = []float64{float64(i)}
	}
	out, err := Map(echo, xs, 4)
	if err != nil {
		Te.Fatal(err)
	}
	for i, y := range out {
		if y[0] != float64(i) {
			Te.Errorf("result %d out of order: got %f", i, y[0])
		}
	}
}

func TestMapError(Te *testing.T) {
	bomb := func(x []float64) ([]float64, error) {
		if x[0] == 3 {
			return nil, fmt.Errorf("boom")
		}
		return x, nil
	}
	xs := [][]float64{{0}, {1}, {2}, {3}, {4}}
	_, err := Map(bomb, xs, 2)
	if err == nil {
		Te.Error("Map should propagate evaluation errors")
	}
	fmt.Println("got the expected error:", err)
}

func TestJacobianEmptyInput(Te *testing.T) {
	_, err := Jacobian(curved, []float64{}, nil)
	if err == nil {
		Te.Error("an empty input vector should be an error")
	}
}
