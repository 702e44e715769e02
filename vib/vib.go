// Package vib computes harmonic vibrational modes from a gradient
// function: the Hessian is obtained by numeric differentiation of the
// gradient, mass-weighted, and diagonalized. Geometries are flat
// Cartesian vectors in angstrom, gradients in eV per angstrom, masses
// in amu; mode energies come out as harmonic quanta in eV.
package vib

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/v4m4/pts"
	"github.com/v4m4/pts/numdiff"
)

const (
	hbarEVs = 6.582119569e-16   //reduced Planck constant, eV s
	evJ     = 1.602176634e-19   //J per eV
	amuKg   = 1.66053906660e-27 //kg per amu
	angM    = 1e-10             //m per angstrom

	// EvToCm converts an energy in eV to wavenumbers.
	EvToCm = 8065.543937
)

//modeScale turns sqrt(eV/angstrom^2/amu), the square root of a
//mass-weighted Hessian eigenvalue, into the energy of the harmonic
//quantum in eV.
var modeScale = hbarEVs * math.Sqrt(evJ/amuKg) / angM

// Report holds the outcome of a normal-mode analysis. Energies are the
// harmonic quanta in eV, sorted ascending, with an imaginary energy
// (zero real part) standing in for each negative-curvature mode.
// Vectors holds the corresponding mass-weighted displacement directions
// as columns, in the same order.
type Report struct {
	Energies []complex128
	Vectors  *mat.Dense
}

// Modes runs a normal-mode analysis at the geometry x. g is the
// gradient of the energy; its numeric derivative, symmetrized and
// weighted by 1/sqrt(m) per coordinate, is the matrix being
// diagonalized. masses holds one value per atom, a third of the length
// of x. The options steer the differentiation, nil meaning
// numdiff.DefaultOptions().
func Modes(g numdiff.Func, x, masses []float64, o *numdiff.Options) (*Report, error) {
	if len(masses)*3 != len(x) {
		return nil, pts.DimensionError{Context: "vib.Modes", Expected: len(x), Got: len(masses) * 3}
	}
	h, err := numdiff.Jacobian(g, x, o)
	if err != nil {
		return nil, fmt.Errorf("vib: hessian: %w", err)
	}
	rows, cols := h.Dims()
	if rows != cols {
		return nil, pts.DimensionError{Context: "vib.Modes", Expected: cols, Got: rows}
	}
	w := make([]float64, len(x))
	for i := range w {
		w[i] = 1 / math.Sqrt(masses[i/3])
	}
	sym := mat.NewSymDense(len(x), nil)
	for i := 0; i < len(x); i++ {
		for j := i; j < len(x); j++ {
			sym.SetSym(i, j, 0.5*(h.At(i, j)+h.At(j, i))*w[i]*w[j])
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, fmt.Errorf("vib: the eigendecomposition failed")
	}
	vals := es.Values(nil)
	R := &Report{Vectors: &mat.Dense{}}
	es.VectorsTo(R.Vectors)
	for _, v := range vals {
		if v < 0 {
			R.Energies = append(R.Energies, complex(0, modeScale*math.Sqrt(-v)))
		} else {
			R.Energies = append(R.Energies, complex(modeScale*math.Sqrt(v), 0))
		}
	}
	return R, nil
}

// NImag returns the number of imaginary modes. Past the six near-zero
// rigid-body modes, anything here means the geometry is not a minimum.
func (R *Report) NImag() int {
	n := 0
	for _, e := range R.Energies {
		if imag(e) != 0 {
			n++
		}
	}
	return n
}

// String renders the mode energies as a table, one line per mode, in
// eV and wavenumbers.
func (R *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4s %5s %14s %14s\n", "mode", "imag", "energy/eV", "energy/cm-1")
	for i, e := range R.Energies {
		im := "no"
		v := real(e)
		if imag(e) != 0 {
			im = "yes"
			v = imag(e)
		}
		fmt.Fprintf(&b, "%4d %5s %14.8f %14.2f\n", i+1, im, v, v*EvToCm)
	}
	return b.String()
}
