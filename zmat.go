/*
 * zmat.go, part of pts.
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
	"regexp"
	"strconv"
	"strings"

	v3 "github.com/v4m4/pts/v3"
)

// Value is one internal coordinate slot in a z-matrix atom line: either
// a literal number or a signed reference to a named variable. Literals
// and variable values are always radians for angle-like slots; the
// degree convention of the textual format is handled entirely by the
// parser and the emitters.
type Value struct {
	Lit  float64
	Name string  //empty for literals
	Sign float64 //+1 or -1, meaningful only for variable references
}

// Lit returns a literal Value.
func Lit(v float64) Value {
	return Value{Lit: v}
}

// Ref returns a Value referencing the variable name. A leading "-"
// means the value is the negated variable; this is the only place
// where the sign marker is interpreted.
func Ref(name string) Value {
	if strings.HasPrefix(name, "-") {
		return Value{Name: name[1:], Sign: -1}
	}
	return Value{Name: name, Sign: 1}
}

// ZAtom is one atom line of a z-matrix: a name plus up to three
// references to earlier atoms with the corresponding internal
// coordinates (distance, angle, dihedral). References are 0-based
// indexes into the line list; the 1-based convention of the textual
// format is converted by the parser and nowhere else.
type ZAtom struct {
	Name    string
	A, B, C int //reference atom indexes, valid up to NRefs
	NRefs   int //0 to 3
	Dst     Value
	Ang     Value
	Dih     Value
}

// ZOrigin returns the atom line for the first atom of a z-matrix, which
// carries no references.
func ZOrigin(name string) ZAtom {
	return ZAtom{Name: normalizeName(name)}
}

// ZBond returns an atom line placed at distance dst from atom a.
func ZBond(name string, a int, dst Value) ZAtom {
	return ZAtom{Name: normalizeName(name), A: a, NRefs: 1, Dst: dst}
}

// ZAngle returns an atom line placed at distance dst from atom a,
// making the angle ang at a with atom b.
func ZAngle(name string, a int, dst Value, b int, ang Value) ZAtom {
	return ZAtom{Name: normalizeName(name), A: a, B: b, NRefs: 2, Dst: dst, Ang: ang}
}

// ZDihedral returns a fully specified atom line: distance dst from a,
// angle ang at a with b, and dihedral dih around the a-b axis relative
// to c.
func ZDihedral(name string, a int, dst Value, b int, ang Value, c int, dih Value) ZAtom {
	return ZAtom{Name: normalizeName(name), A: a, B: b, C: c, NRefs: 3, Dst: dst, Ang: ang, Dih: dih}
}

// ZMatrix is a coordinate system whose internal coordinates are the
// distinct variables of a z-matrix, in first-occurrence order. Dummy
// atoms (names starting with x or X) take part in the geometric
// construction but are excluded from the atom list and the Cartesian
// output.
type ZMatrix struct {
	zatoms  []ZAtom
	atoms   []*Atom //non-dummy atoms, declaration order
	real    []int   //line index of each non-dummy atom
	names   []string
	index   map[string]int  //variable name -> position in names/coords
	angular map[string]bool //variables used in angle or dihedral slots
	coords  []float64
}

var zmatName = regexp.MustCompile(`^\w\w?$`)
var zmatVar = regexp.MustCompile(`^-?\w+$`)

// NewZMatrix builds a ZMatrix from atom lines and a table of variable
// values. Everything is in internal conventions: 0-based references and
// radians for angle variables (use ParseZMatrix for the textual,
// 1-based, degree-using format). Assignments for variables that no line
// references are ignored. Referencing an atom at or after the line
// itself is an error, as is referencing a variable missing from vars.
func NewZMatrix(zatoms []ZAtom, vars map[string]float64) (*ZMatrix, error) {
	if len(zatoms) == 0 {
		return nil, ParseError{Message: "a z-matrix needs at least one atom line"}
	}
	Z := new(ZMatrix)
	Z.zatoms = append([]ZAtom{}, zatoms...)
	Z.index = make(map[string]int)
	Z.angular = angularVars(Z.zatoms)
	for i := range Z.zatoms {
		za := &Z.zatoms[i]
		if za.NRefs < 0 || za.NRefs > 3 {
			return nil, ParseError{Message: fmt.Sprintf("atom line %d has %d references", i, za.NRefs)}
		}
		for _, ref := range refsOf(za) {
			if ref < 0 || ref >= i {
				return nil, ParseError{Message: fmt.Sprintf("atom line %d references atom %d, which is not declared earlier", i, ref)}
			}
		}
		for _, val := range valsOf(za) {
			if val.Name == "" {
				continue
			}
			if _, ok := Z.index[val.Name]; !ok {
				Z.index[val.Name] = len(Z.names)
				Z.names = append(Z.names, val.Name)
			}
		}
		if !isDummy(za.Name) {
			Z.atoms = append(Z.atoms, newAtom(za.Name))
			Z.real = append(Z.real, i)
		}
	}
	Z.coords = make([]float64, len(Z.names))
	for i, name := range Z.names {
		v, ok := vars[name]
		if !ok {
			return nil, CompletenessError{Variable: name}
		}
		Z.coords[i] = v
	}
	return Z, nil
}

//refsOf returns the active references of an atom line.
func refsOf(za *ZAtom) []int {
	switch za.NRefs {
	case 1:
		return []int{za.A}
	case 2:
		return []int{za.A, za.B}
	case 3:
		return []int{za.A, za.B, za.C}
	}
	return nil
}

//valsOf returns the active coordinate slots of an atom line, in
//distance, angle, dihedral order. This order fixes the first-occurrence
//order of the variables, and with it the layout of the coordinate
//vector.
func valsOf(za *ZAtom) []Value {
	switch za.NRefs {
	case 1:
		return []Value{za.Dst}
	case 2:
		return []Value{za.Dst, za.Ang}
	case 3:
		return []Value{za.Dst, za.Ang, za.Dih}
	}
	return nil
}

//angularVars returns the set of variable names used in at least one
//angle or dihedral slot. Those are the ones the textual format gives in
//degrees.
func angularVars(zatoms []ZAtom) map[string]bool {
	ang := make(map[string]bool)
	for i := range zatoms {
		za := &zatoms[i]
		if za.NRefs >= 2 && za.Ang.Name != "" {
			ang[za.Ang.Name] = true
		}
		if za.NRefs >= 3 && za.Dih.Name != "" {
			ang[za.Dih.Name] = true
		}
	}
	return ang
}

// ParseZMatrix builds a ZMatrix from text. The format is the usual one:
// one atom per line ("name", "name ref dst", "name ref dst ref ang" or
// "name ref dst ref ang ref dih", references 1-based to earlier lines),
// then a blank line, then one "name value" assignment per line. Numeric
// angle and dihedral values, in the lines and in the assignments, are
// degrees; distances pass through as given.
func ParseZMatrix(text string) (*ZMatrix, error) {
	zlines, vlines, err := splitBlocks(text)
	if err != nil {
		return nil, err
	}
	zatoms := make([]ZAtom, 0, len(zlines))
	for i, line := range zlines {
		za, err := parseZLine(line, i)
		if err != nil {
			return nil, err
		}
		zatoms = append(zatoms, za)
	}
	rawvars := make(map[string]float64)
	for _, line := range vlines {
		fields := strings.Fields(line.text)
		if len(fields) != 2 {
			return nil, ParseError{Message: "malformed variable assignment", Line: line.text, LineNo: line.number}
		}
		if !zmatName.MatchString(fields[0]) && !zmatVar.MatchString(fields[0]) {
			return nil, ParseError{Message: "bad variable name", Line: line.text, LineNo: line.number}
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, ParseError{Message: "bad variable value", Line: line.text, LineNo: line.number}
		}
		rawvars[fields[0]] = v
	}
	if len(rawvars) == 0 {
		return nil, ParseError{Message: "the variables block is missing or empty"}
	}
	//degree to radian conversion for the angle-like variables, the
	//counterpart of what ZMTString does on the way out.
	ang := angularVars(zatoms)
	for name := range rawvars {
		if ang[name] {
			rawvars[name] *= deg2rad
		}
	}
	Z, err := NewZMatrix(zatoms, rawvars)
	if err != nil {
		return nil, errDecorate(err, "ParseZMatrix")
	}
	return Z, nil
}

type textLine struct {
	text   string
	number int //1-based over the whole input
}

//splitBlocks separates the atom lines from the variable assignment
//lines at the first blank line.
func splitBlocks(text string) (zlines, vlines []textLine, err error) {
	inVars := false
	for i, raw := range strings.Split(text, "\n") {
		line := textLine{raw, i + 1}
		if strings.TrimSpace(raw) == "" {
			if len(zlines) > 0 {
				inVars = true
			}
			continue
		}
		if inVars {
			vlines = append(vlines, line)
		} else {
			zlines = append(zlines, line)
		}
	}
	if len(zlines) == 0 {
		return nil, nil, ParseError{Message: "no atom lines found"}
	}
	return zlines, vlines, nil
}

//parseZLine parses one atom line. index is the 0-based position of the
//line, which bounds the legal references; this is the single place
//where the 1-based references of the format become 0-based.
func parseZLine(line textLine, index int) (ZAtom, error) {
	var za ZAtom
	fields := strings.Fields(line.text)
	switch len(fields) {
	case 1, 3, 5, 7:
	default:
		return za, ParseError{Message: "wrong number of fields in atom line", Line: line.text, LineNo: line.number}
	}
	if !zmatName.MatchString(fields[0]) {
		return za, ParseError{Message: "bad atom name", Line: line.text, LineNo: line.number}
	}
	za.Name = normalizeName(fields[0])
	za.NRefs = (len(fields) - 1) / 2
	refs := [3]*int{&za.A, &za.B, &za.C}
	vals := [3]*Value{&za.Dst, &za.Ang, &za.Dih}
	for k := 0; k < za.NRefs; k++ {
		r, err := strconv.Atoi(fields[1+2*k])
		if err != nil {
			return za, ParseError{Message: "bad atom reference", Line: line.text, LineNo: line.number}
		}
		if r < 1 || r > index {
			return za, ParseError{Message: fmt.Sprintf("reference %d is not an earlier atom", r), Line: line.text, LineNo: line.number}
		}
		*refs[k] = r - 1
		v, err := parseValue(fields[2+2*k], k > 0)
		if err != nil {
			return za, ParseError{Message: err.Error(), Line: line.text, LineNo: line.number}
		}
		*vals[k] = v
	}
	return za, nil
}

//parseValue parses one distance/angle/dihedral token. Numeric tokens
//become literals, converted from degrees when the slot is angle-like;
//anything else must be a variable name with an optional sign marker.
func parseValue(tok string, angleLike bool) (Value, error) {
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		if angleLike {
			f *= deg2rad
		}
		return Lit(f), nil
	}
	if !zmatVar.MatchString(tok) {
		return Value{}, fmt.Errorf("token %q is neither a number nor a variable name", tok)
	}
	return Ref(tok), nil
}

//value resolves one coordinate slot against the current variable
//values. The sign of a negated reference is applied here and nowhere
//else.
func (Z *ZMatrix) value(v Value) float64 {
	if v.Name == "" {
		return v.Lit
	}
	return v.Sign * Z.coords[Z.index[v.Name]]
}

// Dims returns the number of distinct variables of the z-matrix.
func (Z *ZMatrix) Dims() int {
	return len(Z.coords)
}

// Len returns the number of non-dummy atoms.
func (Z *ZMatrix) Len() int {
	return len(Z.atoms)
}

// Atom returns the ith non-dummy atom. Panics if out of range.
func (Z *ZMatrix) Atom(i int) *Atom {
	return Z.atoms[i]
}

// Masses returns the mass of each non-dummy atom.
func (Z *ZMatrix) Masses() ([]float64, error) {
	return massesOf(Z)
}

// VarNames returns the variable names in the order of the coordinate
// vector, which is their first-occurrence order over the atom lines.
func (Z *ZMatrix) VarNames() []string {
	return append([]string{}, Z.names...)
}

// Internals returns a copy of the current variable values, angle-like
// ones in radians.
func (Z *ZMatrix) Internals() []float64 {
	return append([]float64{}, Z.coords...)
}

// SetInternals replaces the variable values.
func (Z *ZMatrix) SetInternals(x []float64) error {
	if len(x) != len(Z.coords) {
		return DimensionError{Context: "ZMatrix.SetInternals", Expected: len(Z.coords), Got: len(x)}
	}
	copy(Z.coords, x)
	return nil
}

// Cartesians builds the Cartesian geometry encoded by the current
// variable values, one row per non-dummy atom in declaration order.
func (Z *ZMatrix) Cartesians() *v3.Matrix {
	slots := Z.buildSlots()
	out := v3.Zeros(len(Z.real))
	out.SomeVecs(slots, Z.real)
	return out
}

//buildSlots runs the recursive construction, filling one position slot
//per atom line, dummies included. Every slot only depends on slots of
//earlier lines, so a single pass in declaration order suffices, and
//positions computed in the pass serve as references for later lines.
func (Z *ZMatrix) buildSlots() *v3.Matrix {
	slots := v3.Zeros(len(Z.zatoms))
	vy, _ := v3.NewMatrix([]float64{0, 1, 0})
	for i := range Z.zatoms {
		za := &Z.zatoms[i]
		switch za.NRefs {
		case 0:
			//the origin; the slot is already zero
		case 1:
			avec := slots.VecView(za.A)
			slots.Set(i, 0, avec.At(0, 0)+Z.value(za.Dst))
			slots.Set(i, 1, avec.At(0, 1))
			slots.Set(i, 2, avec.At(0, 2))
		case 2:
			//with only two references there is no plane to measure a
			//dihedral from: the y axis stands in for the third
			//reference position, with an auxiliary dihedral of 90
			//degrees.
			pos := place(slots.VecView(za.A), slots.VecView(za.B), vy,
				Z.value(za.Dst), Z.value(za.Ang), math.Pi/2)
			slots.SetMatrix(i, 0, pos)
		case 3:
			pos := place(slots.VecView(za.A), slots.VecView(za.B), slots.VecView(za.C),
				Z.value(za.Dst), Z.value(za.Ang), Z.value(za.Dih))
			slots.SetMatrix(i, 0, pos)
		}
	}
	return slots
}

//place returns the position at distance d from a, making the angle ang
//at a with the direction towards b, and the dihedral dih around the a-b
//axis measured against c.
func place(a, b, c *v3.Matrix, d, ang, dih float64) *v3.Matrix {
	v1 := v3.Zeros(1)
	v2 := v3.Zeros(1)
	v1.Sub(a, b)
	v2.Sub(a, c)
	n := v3.Zeros(1)
	nn := v3.Zeros(1)
	n.Cross(v1, v2)
	nn.Cross(v1, n)
	n.Unit(n)
	nn.Unit(nn)
	n.Scale(-math.Sin(dih), n.Dense)
	nn.Scale(math.Cos(dih), nn.Dense)
	dir := v3.Zeros(1)
	dir.Add(n, nn)
	dir.Unit(dir)
	dir.Scale(d*math.Sin(ang), dir.Dense)
	v1.Unit(v1)
	v1.Scale(d*math.Cos(ang), v1.Dense)
	pos := v3.Zeros(1)
	pos.Add(a, dir)
	pos.Sub(pos.Dense, v1.Dense)
	return pos
}

// Copy returns a deep copy of the z-matrix, optionally reseeded with a
// new coordinate vector.
func (Z *ZMatrix) Copy(newCoords ...[]float64) (CoordSys, error) {
	N := new(ZMatrix)
	N.zatoms = append([]ZAtom{}, Z.zatoms...)
	N.atoms = make([]*Atom, len(Z.atoms))
	for i, a := range Z.atoms {
		c := *a
		N.atoms[i] = &c
	}
	N.real = append([]int{}, Z.real...)
	N.names = append([]string{}, Z.names...)
	N.index = make(map[string]int, len(Z.index))
	for k, v := range Z.index {
		N.index[k] = v
	}
	N.angular = make(map[string]bool, len(Z.angular))
	for k, v := range Z.angular {
		N.angular[k] = v
	}
	N.coords = append([]float64{}, Z.coords...)
	if len(newCoords) > 0 && newCoords[0] != nil {
		if err := N.SetInternals(newCoords[0]); err != nil {
			return nil, errDecorate(err, "ZMatrix.Copy")
		}
	}
	return N, nil
}

// XYZString returns the current geometry in xyz-style text, one
// "Symbol x y z" line per non-dummy atom.
func (Z *ZMatrix) XYZString() string {
	return xyzString(Z)
}

// ZMTString returns the z-matrix in its textual format: atom lines with
// 1-based references, a blank line, and the variable assignments, with
// angle-like values in degrees.
func (Z *ZMatrix) ZMTString() string {
	var b strings.Builder
	for i := range Z.zatoms {
		za := &Z.zatoms[i]
		b.WriteString(za.Name)
		refs := refsOf(za)
		vals := valsOf(za)
		for k := range refs {
			fmt.Fprintf(&b, " %d %s", refs[k]+1, Z.valueString(vals[k], k > 0))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, name := range Z.names {
		v := Z.coords[Z.index[name]]
		if Z.angular[name] {
			v /= deg2rad
		}
		fmt.Fprintf(&b, "%s %v\n", name, v)
	}
	return b.String()
}

//valueString formats one coordinate slot for ZMTString.
func (Z *ZMatrix) valueString(v Value, angleLike bool) string {
	if v.Name != "" {
		if v.Sign < 0 {
			return "-" + v.Name
		}
		return v.Name
	}
	lit := v.Lit
	if angleLike {
		lit /= deg2rad
	}
	return fmt.Sprintf("%v", lit)
}
