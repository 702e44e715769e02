// Package metric relates the two representations a vector of internal
// coordinates can take: contravariant (a displacement in coordinate
// space) and covariant (a force, or any gradient). The two are
// connected by the metric tensor of the internal-to-Cartesian
// transformation, B'B with B the transform derivative, so lowering is a
// matrix product and raising is a linear solve. A reduced variant
// additionally removes the six global rigid-body modes, which carry no
// shape information, before forming the tensor.
package metric

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/v4m4/pts"
	"github.com/v4m4/pts/numdiff"
)

// Metric lowers and raises vectors at a given evaluation point. vec is
// the vector to convert and place the internal coordinates at which the
// transform derivative is taken; both Lower and Raise leave their
// arguments untouched and return fresh slices.
type Metric interface {
	Lower(vec, place []float64) ([]float64, error)
	Raise(vec, place []float64) ([]float64, error)
}

// UninitializedMetricError is returned when a Context is used before
// Setup gave it a Metric.
type UninitializedMetricError struct {
	deco []string
}

func (e UninitializedMetricError) Error() string {
	return "metric: the metric context has not been set up"
}

// Decorate implements the pts.Error interface.
func (e UninitializedMetricError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

// SingularGramMatrixError reports a degenerate geometry: the Gram
// matrix that Raise must solve against, or the 3x3 rotation Gram matrix
// of the reduced metric, has no inverse there.
type SingularGramMatrixError struct {
	Context string
	deco    []string
}

func (e SingularGramMatrixError) Error() string {
	return fmt.Sprintf("metric: singular Gram matrix in %s", e.Context)
}

// Decorate implements the pts.Error interface.
func (e SingularGramMatrixError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

// Context is the single active metric of a computation. Its zero value
// has no metric and fails every call with UninitializedMetricError;
// Setup installs one. Set it up once, before any concurrent use, and
// only read it afterwards.
type Context struct {
	m Metric
}

// Setup installs m as the active metric.
func (C *Context) Setup(m Metric) {
	C.m = m
}

// Lower converts a contravariant vector to its covariant form.
func (C *Context) Lower(vec, place []float64) ([]float64, error) {
	if C.m == nil {
		return nil, UninitializedMetricError{}
	}
	return C.m.Lower(vec, place)
}

// Raise converts a covariant vector to its contravariant form.
func (C *Context) Raise(vec, place []float64) ([]float64, error) {
	if C.m == nil {
		return nil, UninitializedMetricError{}
	}
	return C.m.Raise(vec, place)
}

// NormUp returns the metric norm of a contravariant vector.
func (C *Context) NormUp(vec, place []float64) (float64, error) {
	low, err := C.Lower(vec, place)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(floats.Dot(vec, low)), nil
}

// NormDown returns the metric norm of a covariant vector.
func (C *Context) NormDown(vec, place []float64) (float64, error) {
	up, err := C.Raise(vec, place)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(floats.Dot(vec, up)), nil
}

// Default is the identity metric, for coordinates that are Cartesian
// already: covariant and contravariant forms coincide, and both calls
// return an exact copy of vec.
type Default struct{}

// Lower returns a copy of vec.
func (Default) Lower(vec, place []float64) ([]float64, error) {
	return append([]float64{}, vec...), nil
}

// Raise returns a copy of vec.
func (Default) Raise(vec, place []float64) ([]float64, error) {
	return append([]float64{}, vec...), nil
}

// Cartesian is the metric induced by a transformation into Cartesian
// space. Lowering multiplies by B'B, with B the transform derivative at
// place; raising solves the corresponding linear system, never forming
// an explicit inverse.
type Cartesian struct {
	f numdiff.Func
	o *numdiff.Options
}

// NewCartesian builds the metric of the transformation f, typically
// pts.TransformFunc of some coordinate system. The optional options
// steer the finite-difference derivative; the default is
// numdiff.DefaultOptions().
func NewCartesian(f numdiff.Func, o ...*numdiff.Options) *Cartesian {
	M := &Cartesian{f: f, o: numdiff.DefaultOptions()}
	if len(o) > 0 && o[0] != nil {
		M.o = o[0]
	}
	return M
}

//b returns the transform derivative at place.
func (M *Cartesian) b(place []float64) (*mat.Dense, error) {
	B, err := numdiff.Jacobian(M.f, place, M.o)
	if err != nil {
		return nil, fmt.Errorf("metric: %w", err)
	}
	return B, nil
}

// Lower returns B'B vec.
func (M *Cartesian) Lower(vec, place []float64) ([]float64, error) {
	B, err := M.b(place)
	if err != nil {
		return nil, err
	}
	rows, cols := B.Dims()
	if cols != len(vec) {
		return nil, pts.DimensionError{Context: "metric.Cartesian.Lower", Expected: cols, Got: len(vec)}
	}
	bv := mat.NewVecDense(rows, nil)
	bv.MulVec(B, mat.NewVecDense(len(vec), vec))
	out := mat.NewVecDense(cols, nil)
	out.MulVec(B.T(), bv)
	return out.RawVector().Data, nil
}

// Raise solves B'B x = vec for x.
func (M *Cartesian) Raise(vec, place []float64) ([]float64, error) {
	B, err := M.b(place)
	if err != nil {
		return nil, err
	}
	_, cols := B.Dims()
	if cols != len(vec) {
		return nil, pts.DimensionError{Context: "metric.Cartesian.Raise", Expected: cols, Got: len(vec)}
	}
	g := mat.NewDense(cols, cols, nil)
	g.Mul(B.T(), B)
	out := mat.NewVecDense(cols, nil)
	if err := out.SolveVec(g, mat.NewVecDense(len(vec), vec)); err != nil {
		return nil, SingularGramMatrixError{Context: "Raise"}
	}
	return out.RawVector().Data, nil
}

// Reduced is the Cartesian metric with the six global rigid-body modes
// projected out: a rigid translation or rotation of the whole geometry
// changes no internal distance or angle, so those directions carry no
// weight in the tensor. The projection bases are rebuilt from the
// geometry at place on every call.
type Reduced struct {
	Cartesian
}

// NewReduced builds the rigid-body-reduced metric of the transformation
// f. The optional options steer the finite-difference derivative.
func NewReduced(f numdiff.Func, o ...*numdiff.Options) *Reduced {
	M := &Reduced{}
	M.Cartesian = *NewCartesian(f, o...)
	return M
}

// Lower returns B'(I-P)B vec, with P the projector onto the rigid-body
// modes of the geometry at place.
func (M *Reduced) Lower(vec, place []float64) ([]float64, error) {
	B, err := M.b(place)
	if err != nil {
		return nil, err
	}
	rows, cols := B.Dims()
	if cols != len(vec) {
		return nil, pts.DimensionError{Context: "metric.Reduced.Lower", Expected: cols, Got: len(vec)}
	}
	bt, br, brInv, err := M.rigidBases(place, rows)
	if err != nil {
		return nil, err
	}
	bv := mat.NewVecDense(rows, nil)
	bv.MulVec(B, mat.NewVecDense(len(vec), vec))
	red := projectOut(bv, bt, br, brInv)
	out := mat.NewVecDense(cols, nil)
	out.MulVec(B.T(), red)
	return out.RawVector().Data, nil
}

// Raise solves B'(I-P)B x = vec for x.
func (M *Reduced) Raise(vec, place []float64) ([]float64, error) {
	B, err := M.b(place)
	if err != nil {
		return nil, err
	}
	rows, cols := B.Dims()
	if cols != len(vec) {
		return nil, pts.DimensionError{Context: "metric.Reduced.Raise", Expected: cols, Got: len(vec)}
	}
	bt, br, brInv, err := M.rigidBases(place, rows)
	if err != nil {
		return nil, err
	}
	red := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		col := mat.NewVecDense(rows, nil)
		col.CopyVec(B.ColView(j))
		red.SetCol(j, projectOut(col, bt, br, brInv).RawVector().Data)
	}
	a := mat.NewDense(cols, cols, nil)
	a.Mul(B.T(), red)
	out := mat.NewVecDense(cols, nil)
	if err := out.SolveVec(a, mat.NewVecDense(len(vec), vec)); err != nil {
		return nil, SingularGramMatrixError{Context: "Raise"}
	}
	return out.RawVector().Data, nil
}

//projectOut removes the rigid-body components of a flat Cartesian
//vector. The translation Gram matrix is N times the identity, so its
//inverse needs no solve; the rotation one comes in already inverted.
func projectOut(v *mat.VecDense, bt, br, brInv *mat.Dense) *mat.VecDense {
	rows := v.Len()
	n := float64(rows) / 3
	tt := mat.NewVecDense(3, nil)
	tt.MulVec(bt.T(), v)
	floats.Scale(1/n, tt.RawVector().Data)
	pt := mat.NewVecDense(rows, nil)
	pt.MulVec(bt, tt)
	tr := mat.NewVecDense(3, nil)
	tr.MulVec(br.T(), v)
	tri := mat.NewVecDense(3, nil)
	tri.MulVec(brInv, tr)
	pr := mat.NewVecDense(rows, nil)
	pr.MulVec(br, tri)
	out := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		out.SetVec(i, v.AtVec(i)-pt.AtVec(i)-pr.AtVec(i))
	}
	return out
}

//rigidBases builds the translation and rotation mode bases of the
//geometry at place, plus the inverse of the rotation Gram matrix. The
//rotation columns are cross products with the offsets from the
//centroid, which makes the two bases mutually orthogonal.
func (M *Reduced) rigidBases(place []float64, rows int) (bt, br, brInv *mat.Dense, err error) {
	carts, err := M.f(place)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("metric: %w", err)
	}
	if len(carts) != rows || len(carts)%3 != 0 {
		return nil, nil, nil, fmt.Errorf("metric: the transformation yields %d components, want a multiple of 3 matching the derivative", len(carts))
	}
	n := len(carts) / 3
	var cx, cy, cz float64
	for a := 0; a < n; a++ {
		cx += carts[3*a]
		cy += carts[3*a+1]
		cz += carts[3*a+2]
	}
	cx /= float64(n)
	cy /= float64(n)
	cz /= float64(n)
	bt = mat.NewDense(rows, 3, nil)
	br = mat.NewDense(rows, 3, nil)
	for a := 0; a < n; a++ {
		x := carts[3*a] - cx
		y := carts[3*a+1] - cy
		z := carts[3*a+2] - cz
		bt.Set(3*a, 0, 1)
		bt.Set(3*a+1, 1, 1)
		bt.Set(3*a+2, 2, 1)
		br.Set(3*a, 1, z)
		br.Set(3*a, 2, -y)
		br.Set(3*a+1, 0, -z)
		br.Set(3*a+1, 2, x)
		br.Set(3*a+2, 0, y)
		br.Set(3*a+2, 1, -x)
	}
	gram := mat.NewDense(3, 3, nil)
	gram.Mul(br.T(), br)
	brInv, err = symInv3(gram)
	if err != nil {
		return nil, nil, nil, err
	}
	return bt, br, brInv, nil
}

//symInv3 inverts a symmetric 3x3 matrix through its cofactors.
func symInv3(m *mat.Dense) (*mat.Dense, error) {
	a, b, c := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	d, e := m.At(1, 1), m.At(1, 2)
	f := m.At(2, 2)
	z := a*d*f - a*e*e - f*b*b + 2*b*c*e - d*c*c
	if math.Abs(z) < 1e-12 {
		return nil, SingularGramMatrixError{Context: "the rotation modes"}
	}
	return mat.NewDense(3, 3, []float64{
		(d*f - e*e) / z, (c*e - b*f) / z, (b*e - c*d) / z,
		(c*e - b*f) / z, (a*f - c*c) / z, (c*b - a*e) / z,
		(b*e - c*d) / z, (c*b - a*e) / z, (a*d - b*b) / z,
	}), nil
}
