package mshoot

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Value is the numeric [Term] implementation carried by schema leaves
// before backend instantiation. It wraps a dense column-major matrix;
// vectors are d x 1, scalars 1 x 1.
//
// Dimensions must be positive; constructors panic otherwise, matching
// gonum/mat conventions.
type Value struct {
	m *mat.Dense
}

// Scalar returns a 1x1 value holding v.
func Scalar(v float64) *Value {
	return &Value{m: mat.NewDense(1, 1, []float64{v})}
}

// Vector returns a zero-valued d x 1 column.
func Vector(d int) *Value {
	return &Value{m: mat.NewDense(d, 1, nil)}
}

// VectorOf returns a len(vals) x 1 column holding vals.
func VectorOf(vals ...float64) *Value {
	data := append([]float64(nil), vals...)
	return &Value{m: mat.NewDense(len(data), 1, data)}
}

// Zeros returns a zero-valued r x c value.
func Zeros(r, c int) *Value {
	return &Value{m: mat.NewDense(r, c, nil)}
}

// Dims returns the row and column counts.
func (v *Value) Dims() (rows, cols int) {
	return v.m.Dims()
}

// At returns the element at row i, column j.
func (v *Value) At(i, j int) float64 {
	return v.m.At(i, j)
}

// Set assigns the element at row i, column j.
func (v *Value) Set(i, j int, x float64) {
	v.m.Set(i, j, x)
}

// Col returns the j-th column as a new rows x 1 value.
func (v *Value) Col(j int) Term {
	r, _ := v.m.Dims()
	return &Value{m: mat.NewDense(r, 1, mat.Col(nil, j, v.m))}
}

// Add returns the element-wise sum. A 1x1 operand on either side is
// broadcast; any other dimension mismatch panics.
func (v *Value) Add(other Term) Term {
	w := mustValue(other)
	vr, vc := v.m.Dims()
	wr, wc := w.m.Dims()
	switch {
	case vr == wr && vc == wc:
		out := mat.NewDense(vr, vc, nil)
		out.Add(v.m, w.m)
		return &Value{m: out}
	case wr == 1 && wc == 1:
		return v.addScalar(w.m.At(0, 0))
	case vr == 1 && vc == 1:
		return w.addScalar(v.m.At(0, 0))
	default:
		panic(fmt.Sprintf("mshoot: cannot add %dx%d and %dx%d values", vr, vc, wr, wc))
	}
}

// Scale returns the value multiplied by k.
func (v *Value) Scale(k float64) Term {
	r, c := v.m.Dims()
	out := mat.NewDense(r, c, nil)
	out.Scale(k, v.m)
	return &Value{m: out}
}

// Clone returns an independent deep copy.
func (v *Value) Clone() Term {
	return &Value{m: mat.DenseCopyOf(v.m)}
}

// Equal reports whether other is a *Value with identical dimensions and
// elements.
func (v *Value) Equal(other Term) bool {
	w, ok := other.(*Value)
	return ok && mat.Equal(v.m, w.m)
}

// Mat exposes the underlying matrix for read access.
func (v *Value) Mat() mat.Matrix {
	return v.m
}

func (v *Value) String() string {
	return fmt.Sprintf("%v", mat.Formatted(v.m, mat.Squeeze()))
}

func (v *Value) addScalar(x float64) *Value {
	r, c := v.m.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, _ int, e float64) float64 { return e + x }, v.m)
	return &Value{m: out}
}

func mustValue(t Term) *Value {
	v, ok := t.(*Value)
	if !ok {
		panic(fmt.Sprintf("mshoot: numeric arithmetic with foreign term %T", t))
	}
	return v
}
