//Package numdiff estimates derivatives of vector functions by finite
//differences. It is the machinery behind the coordinate transform
//matrices and the metric tensors of the pts library, but it knows
//nothing about coordinates: it works on flat vectors.
package numdiff

import (
	"fmt"
	"runtime"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Func is a vector function of a vector argument. Implementations must
//be safe for concurrent calls if they are to be differentiated with
//more than one worker.
type Func func(x []float64) ([]float64, error)

//Direction selects the finite-difference scheme.
type Direction int

const (
	//Central differences, (f(x+d)-f(x-d))/2d. Two evaluations per
	//coordinate, error of second order in the step.
	Central Direction = iota
	//Forward differences, (f(x+d)-f(x))/d.
	Forward
	//Backward differences, (f(x)-f(x-d))/d.
	Backward
)

//Options contains the options for the Jacobian function.
type Options struct {
	step      float64
	direction Direction
	workers   int
}

//DefaultOptions returns reasonable options for differentiating
//well-scaled coordinate transforms: central differences with a step of
//0.001, using all logical CPUs.
func DefaultOptions() *Options {
	O := new(Options)
	O.step = 0.001
	O.direction = Central
	O.workers = runtime.NumCPU()
	return O
}

//Step returns the value of the finite-difference step, and sets it to a
//new value, if given.
func (O *Options) Step(d ...float64) float64 {
	if len(d) > 0 && d[0] > 0 {
		O.step = d[0]
	}
	return O.step
}

//Dir returns the finite-difference scheme in use, and sets it to a new
//value, if given.
func (O *Options) Dir(d ...Direction) Direction {
	if len(d) > 0 {
		O.direction = d[0]
	}
	return O.direction
}

//Workers returns the number of goroutines used for the function
//evaluations, and sets it to a new value, if given. Anything below 2
//means serial evaluation.
func (O *Options) Workers(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.workers = n[0]
	}
	return O.workers
}

//Jacobian estimates the derivative matrix of f at x. The element i,j of
//the returned matrix is the derivative of the ith component of f with
//respect to the jth component of x, so for f mapping V coordinates to K
//values the result is K x V. The perturbed evaluations run through Map,
//so they may happen concurrently; the columns are always assembled in
//perturbation order, which makes the result reproducible regardless of
//the number of workers. A nil o means DefaultOptions().
func Jacobian(f Func, x []float64, o *Options) (*mat.Dense, error) {
	if o == nil {
		o = DefaultOptions()
	}
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("numdiff: nothing to differentiate, empty input vector")
	}
	delta := o.step
	if o.direction == Backward {
		delta = -delta
	}
	//The full displacement list is built first so the evaluations can
	//be dispatched together and gathered by index.
	var xs [][]float64
	if o.direction == Central {
		xs = make([][]float64, 0, 2*n)
		for j := 0; j < n; j++ {
			xs = append(xs, displaced(x, j, delta), displaced(x, j, -delta))
		}
	} else {
		xs = make([][]float64, 0, n+1)
		xs = append(xs, displaced(x, 0, 0))
		for j := 0; j < n; j++ {
			xs = append(xs, displaced(x, j, delta))
		}
	}
	ys, err := Map(f, xs, o.workers)
	if err != nil {
		return nil, err
	}
	k := len(ys[0])
	if k == 0 {
		return nil, fmt.Errorf("numdiff: the function returned an empty vector")
	}
	for i, y := range ys {
		if len(y) != k {
			return nil, fmt.Errorf("numdiff: inconsistent function output lengths: %d and %d (evaluation %d)", k, len(y), i)
		}
	}
	J := mat.NewDense(k, n, nil)
	col := make([]float64, k)
	if o.direction == Central {
		for j := 0; j < n; j++ {
			floats.SubTo(col, ys[2*j], ys[2*j+1])
			floats.Scale(1/(2*delta), col)
			J.SetCol(j, col)
		}
	} else {
		for j := 0; j < n; j++ {
			floats.SubTo(col, ys[j+1], ys[0])
			floats.Scale(1/delta, col)
			J.SetCol(j, col)
		}
	}
	return J, nil
}

//displaced returns a copy of x with delta added to its jth component.
func displaced(x []float64, j int, delta float64) []float64 {
	d := make([]float64, len(x))
	copy(d, x)
	d[j] += delta
	return d
}

type mapResult struct {
	y   []float64
	err error
}

//Map evaluates f on every vector of xs and returns the results in the
//same order. With workers > 1 the evaluations of each batch run in
//their own goroutines, each delivering through its own channel; the
//channels are read in index order, so the output order never depends
//on scheduling. The first evaluation error aborts the map.
func Map(f Func, xs [][]float64, workers int) ([][]float64, error) {
	out := make([][]float64, len(xs))
	if workers < 2 {
		for i, x := range xs {
			y, err := f(x)
			if err != nil {
				return nil, fmt.Errorf("numdiff: evaluation %d: %w", i, err)
			}
			out[i] = y
		}
		return out, nil
	}
	for start := 0; start < len(xs); start += workers {
		end := start + workers
		if end > len(xs) {
			end = len(xs)
		}
		pipes := make([]chan mapResult, end-start)
		for i := start; i < end; i++ {
			pipes[i-start] = make(chan mapResult, 1)
			go func(x []float64, pipe chan mapResult) {
				y, err := f(x)
				pipe <- mapResult{y, err}
			}(xs[i], pipes[i-start])
		}
		for i, pipe := range pipes {
			r := <-pipe
			if r.err != nil {
				return nil, fmt.Errorf("numdiff: evaluation %d: %w", start+i, r.err)
			}
			out[start+i] = r.y
		}
	}
	return out, nil
}
