// Package schema defines the declarative tree of typed fields a problem
// is formulated over: storage leaves (decision variables, parameters,
// generic storage) and nested composites, each carrying the metadata the
// horizon expander and flattener act on.
package schema

import (
	"fmt"

	"github.com/pvaldi/mshoot"
)

// Kind classifies what a storage leaf becomes at backend instantiation.
type Kind uint8

const (
	// Variable leaves become decision variables.
	Variable Kind = iota
	// Parameter leaves become symbols fixed at solve time.
	Parameter
	// Generic leaves are left to the backend's discretion.
	Generic
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Parameter:
		return "parameter"
	case Generic:
		return "generic"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Expansion selects how a time-dependent leaf is laid out across the
// horizon.
type Expansion uint8

const (
	// List replaces the value with one independent copy per knot.
	List Expansion = iota
	// Matrix grows a single-column value to one column per knot. The
	// pre-expansion value must be a column.
	Matrix
)

func (e Expansion) String() string {
	switch e {
	case List:
		return "list"
	case Matrix:
		return "matrix"
	default:
		return fmt.Sprintf("expansion(%d)", uint8(e))
	}
}

// Shape discriminates the runtime form a field's value currently has.
// Series and grid shapes only arise from horizon expansion.
type Shape uint8

const (
	// ShapeLeaf is a storage leaf holding a single term (single-instant,
	// or matrix-expanded with one column per knot).
	ShapeLeaf Shape = iota
	// ShapeLeafSeries is a list-expanded storage leaf: one term per knot.
	ShapeLeafSeries
	// ShapeGroup is a single nested object.
	ShapeGroup
	// ShapeGroupList is an ordered sequence of nested objects, either
	// declared structurally or produced by expanding a ShapeGroup field.
	ShapeGroupList
	// ShapeGroupGrid is a sequence of sequences of nested objects,
	// produced by expanding a ShapeGroupList field.
	ShapeGroupGrid
	// ShapeAux is bookkeeping data outside the optimization model.
	ShapeAux
)

func (s Shape) String() string {
	switch s {
	case ShapeLeaf:
		return "leaf"
	case ShapeLeafSeries:
		return "leaf series"
	case ShapeGroup:
		return "group"
	case ShapeGroupList:
		return "group list"
	case ShapeGroupGrid:
		return "group grid"
	case ShapeAux:
		return "aux"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// FieldMeta is the metadata attached to a field at declaration.
// TimeDependent is only meaningful on top-level fields of the instance
// handed to the expander; nested fields inherit time-dependence from
// their ancestors.
type FieldMeta struct {
	Name          string
	Kind          Kind
	TimeDependent bool
	Expansion     Expansion
}

// FieldOption adjusts field metadata at declaration.
type FieldOption func(*FieldMeta)

// TimeVarying marks the field for replication across the horizon.
func TimeVarying() FieldOption {
	return func(m *FieldMeta) { m.TimeDependent = true }
}

// MatrixExpanded selects the Matrix expansion strategy for a leaf.
func MatrixExpanded() FieldOption {
	return func(m *FieldMeta) { m.Expansion = Matrix }
}

// Field is one named slot of an [Object].
type Field struct {
	meta   FieldMeta
	shape  Shape
	value  mshoot.Term
	series []mshoot.Term
	group  *Object
	list   []*Object
	grid   [][]*Object
	aux    any
}

func newLeaf(name string, kind Kind, v mshoot.Term, opts []FieldOption) Field {
	meta := FieldMeta{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(&meta)
	}
	return Field{meta: meta, shape: ShapeLeaf, value: v}
}

// Var declares a storage leaf instantiated as a decision variable.
func Var(name string, v mshoot.Term, opts ...FieldOption) Field {
	return newLeaf(name, Variable, v, opts)
}

// Par declares a storage leaf instantiated as a solve-time parameter.
func Par(name string, v mshoot.Term, opts ...FieldOption) Field {
	return newLeaf(name, Parameter, v, opts)
}

// Gen declares a generic storage leaf.
func Gen(name string, v mshoot.Term, opts ...FieldOption) Field {
	return newLeaf(name, Generic, v, opts)
}

// Group declares a single nested object.
func Group(name string, o *Object, opts ...FieldOption) Field {
	meta := FieldMeta{Name: name}
	for _, opt := range opts {
		opt(&meta)
	}
	return Field{meta: meta, shape: ShapeGroup, group: o}
}

// GroupList declares an ordered sequence of nested objects. A sequence
// that is not time-varying is structural: its indices become distinct
// flattened paths.
func GroupList(name string, os []*Object, opts ...FieldOption) Field {
	meta := FieldMeta{Name: name}
	for _, opt := range opts {
		opt(&meta)
	}
	return Field{meta: meta, shape: ShapeGroupList, list: append([]*Object(nil), os...)}
}

// Aux declares a bookkeeping field outside the optimization model.
// Expansion and flattening skip it; clones carry it shallowly.
func Aux(name string, v any) Field {
	return Field{meta: FieldMeta{Name: name}, shape: ShapeAux, aux: v}
}

// Meta returns a copy of the field's metadata.
func (f *Field) Meta() FieldMeta { return f.meta }

// Shape returns the runtime form of the field's value.
func (f *Field) Shape() Shape { return f.shape }

// Value returns the term of a ShapeLeaf field.
func (f *Field) Value() mshoot.Term { return f.value }

// Series returns the per-knot terms of a ShapeLeafSeries field.
func (f *Field) Series() []mshoot.Term { return f.series }

// Group returns the object of a ShapeGroup field.
func (f *Field) Group() *Object { return f.group }

// GroupList returns the objects of a ShapeGroupList field.
func (f *Field) GroupList() []*Object { return f.list }

// GroupGrid returns the per-knot sequences of a ShapeGroupGrid field.
func (f *Field) GroupGrid() [][]*Object { return f.grid }

// AuxValue returns the value of a ShapeAux field.
func (f *Field) AuxValue() any { return f.aux }

// SetValue replaces a leaf's term in place, keeping metadata and shape.
func (f *Field) SetValue(v mshoot.Term) {
	f.mustShape(ShapeLeaf, "SetValue")
	f.value = v
}

// ExpandSeries replaces a leaf's single-instant value with one element
// per knot and marks the field time-dependent. Writing surface of the
// horizon expander.
func (f *Field) ExpandSeries(elems []mshoot.Term) {
	f.mustShape(ShapeLeaf, "ExpandSeries")
	f.meta.TimeDependent = true
	f.shape = ShapeLeafSeries
	f.value = nil
	f.series = elems
}

// ExpandMatrix replaces a leaf's column value with a wider per-knot
// matrix and marks the field time-dependent.
func (f *Field) ExpandMatrix(v mshoot.Term) {
	f.mustShape(ShapeLeaf, "ExpandMatrix")
	f.meta.TimeDependent = true
	f.value = v
}

// ExpandGroups replaces a single nested object with one deep copy per
// knot and marks the field time-dependent.
func (f *Field) ExpandGroups(elems []*Object) {
	f.mustShape(ShapeGroup, "ExpandGroups")
	f.meta.TimeDependent = true
	f.shape = ShapeGroupList
	f.group = nil
	f.list = elems
}

// ExpandGrid replaces a sequence of nested objects with one deep copy of
// the whole sequence per knot and marks the field time-dependent.
func (f *Field) ExpandGrid(rows [][]*Object) {
	f.mustShape(ShapeGroupList, "ExpandGrid")
	f.meta.TimeDependent = true
	f.shape = ShapeGroupGrid
	f.list = nil
	f.grid = rows
}

func (f *Field) mustShape(want Shape, op string) {
	if f.shape != want {
		panic(fmt.Sprintf("schema: %s on field %q with shape %s", op, f.meta.Name, f.shape))
	}
}

func (f *Field) validate() error {
	if f.meta.Name == "" {
		return fmt.Errorf("schema: field with empty name: %w", mshoot.ErrConfiguration)
	}
	switch f.shape {
	case ShapeLeaf:
		if f.value == nil {
			return fmt.Errorf("schema: leaf %q has no value: %w", f.meta.Name, mshoot.ErrConfiguration)
		}
		if f.meta.TimeDependent && f.meta.Expansion == Matrix {
			if _, c := f.value.Dims(); c != 1 {
				return fmt.Errorf("schema: matrix-expanded leaf %q must hold a single column, got %d: %w",
					f.meta.Name, c, mshoot.ErrShape)
			}
		}
	case ShapeGroup:
		if f.group == nil {
			return fmt.Errorf("schema: group %q is nil: %w", f.meta.Name, mshoot.ErrConfiguration)
		}
	case ShapeGroupList:
		for i, el := range f.list {
			if el == nil {
				return fmt.Errorf("schema: group list %q has nil element %d: %w",
					f.meta.Name, i, mshoot.ErrConfiguration)
			}
		}
	}
	return nil
}

func (f *Field) clone() Field {
	out := *f
	switch f.shape {
	case ShapeLeaf:
		out.value = f.value.Clone()
	case ShapeLeafSeries:
		out.series = make([]mshoot.Term, len(f.series))
		for i, t := range f.series {
			out.series[i] = t.Clone()
		}
	case ShapeGroup:
		out.group = f.group.Clone()
	case ShapeGroupList:
		out.list = cloneObjects(f.list)
	case ShapeGroupGrid:
		out.grid = make([][]*Object, len(f.grid))
		for i, row := range f.grid {
			out.grid[i] = cloneObjects(row)
		}
	}
	return out
}

func cloneObjects(os []*Object) []*Object {
	out := make([]*Object, len(os))
	for i, o := range os {
		out[i] = o.Clone()
	}
	return out
}

// Object is a schema node: an ordered collection of named fields.
type Object struct {
	fields []Field
	index  map[string]int
}

// New assembles an object from declared fields. Names must be non-empty
// and unique; a TimeVarying+MatrixExpanded leaf must hold a single
// column.
func New(fields ...Field) (*Object, error) {
	o := &Object{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := o.index[f.meta.Name]; dup {
			return nil, fmt.Errorf("schema: duplicate field %q: %w", f.meta.Name, mshoot.ErrConfiguration)
		}
		o.index[f.meta.Name] = len(o.fields)
		o.fields = append(o.fields, f)
	}
	return o, nil
}

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.fields) }

// Fields returns pointers to the fields in declaration order.
func (o *Object) Fields() []*Field {
	out := make([]*Field, len(o.fields))
	for i := range o.fields {
		out[i] = &o.fields[i]
	}
	return out
}

// Field returns the named field, if present.
func (o *Object) Field(name string) (*Field, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return &o.fields[i], true
}

// Clone returns a deep copy: leaf terms are cloned, composites recurse,
// aux values are carried shallowly.
func (o *Object) Clone() *Object {
	c := &Object{
		fields: make([]Field, len(o.fields)),
		index:  make(map[string]int, len(o.fields)),
	}
	for i := range o.fields {
		c.fields[i] = o.fields[i].clone()
		c.index[o.fields[i].meta.Name] = i
	}
	return c
}
