package schema

import (
	"fmt"

	"github.com/pvaldi/mshoot"
)

// TransformFunc rewrites one storage leaf term. The path is the dotted
// field path with [k] indices disambiguating sequence members and
// per-knot elements.
type TransformFunc func(path string, meta FieldMeta, v mshoot.Term) (mshoot.Term, error)

// Transform returns a deep copy of o with every storage leaf term
// rewritten through fn, walking composites, sequences, and per-knot
// series. Backends build their Instantiate on it: fn replaces each
// numeric placeholder with a backend-native symbol of the same shape.
func Transform(o *Object, fn TransformFunc) (*Object, error) {
	out := o.Clone()
	if err := transformObject(out, "", fn); err != nil {
		return nil, err
	}
	return out, nil
}

func transformObject(o *Object, prefix string, fn TransformFunc) error {
	for i := range o.fields {
		f := &o.fields[i]
		path := prefix + f.meta.Name
		switch f.shape {
		case ShapeLeaf:
			v, err := fn(path, f.meta, f.value)
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("schema: transform returned nil for %q: %w", path, mshoot.ErrConfiguration)
			}
			f.value = v
		case ShapeLeafSeries:
			for k := range f.series {
				v, err := fn(fmt.Sprintf("%s[%d]", path, k), f.meta, f.series[k])
				if err != nil {
					return err
				}
				if v == nil {
					return fmt.Errorf("schema: transform returned nil for %q[%d]: %w", path, k, mshoot.ErrConfiguration)
				}
				f.series[k] = v
			}
		case ShapeGroup:
			if err := transformObject(f.group, path+".", fn); err != nil {
				return err
			}
		case ShapeGroupList:
			for k, el := range f.list {
				if err := transformObject(el, fmt.Sprintf("%s[%d].", path, k), fn); err != nil {
					return err
				}
			}
		case ShapeGroupGrid:
			for r, row := range f.grid {
				for k, el := range row {
					if err := transformObject(el, fmt.Sprintf("%s[%d][%d].", path, r, k), fn); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// DefaultInitialized returns a deep copy in which every storage leaf is
// replaced by a zero value of its current shape, recursing through
// composites, sequences, and per-knot series. It seeds initial guesses
// and has no horizon awareness: leaves keep whatever shape expansion
// gave them.
func (o *Object) DefaultInitialized() *Object {
	out := o.Clone()
	zeroObject(out)
	return out
}

func zeroObject(o *Object) {
	for i := range o.fields {
		f := &o.fields[i]
		switch f.shape {
		case ShapeLeaf:
			r, c := f.value.Dims()
			f.value = mshoot.Zeros(r, c)
		case ShapeLeafSeries:
			for k, t := range f.series {
				r, c := t.Dims()
				f.series[k] = mshoot.Zeros(r, c)
			}
		case ShapeGroup:
			zeroObject(f.group)
		case ShapeGroupList:
			for _, el := range f.list {
				zeroObject(el)
			}
		case ShapeGroupGrid:
			for _, row := range f.grid {
				for _, el := range row {
					zeroObject(el)
				}
			}
		}
	}
}
