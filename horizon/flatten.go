package horizon

import (
	"fmt"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/schema"
)

// Flatten walks an expanded instance depth-first in declaration order
// and builds the table of every leaf value across the horizon,
// addressable by dotted path. Structural sequences unroll into indexed
// paths; time-expanded sequences do not, they become the horizon
// dimension of everything beneath them. Aux fields and shapes outside
// the model are skipped.
func Flatten(obj *schema.Object) (*Table, error) {
	t := newTable()
	if err := flattenObject(t, obj, "", nil, true); err != nil {
		return nil, err
	}
	return t, nil
}

// FlattenAll flattens a top-level list of parallel structures into one
// table per element.
func FlattenAll(objs []*schema.Object) ([]*Table, error) {
	out := make([]*Table, len(objs))
	for i, o := range objs {
		t, err := Flatten(o)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func flattenObject(t *Table, o *schema.Object, prefix string, base *baseIter, top bool) error {
	for _, f := range o.Fields() {
		meta := f.Meta()
		path := prefix + meta.Name
		td := meta.TimeDependent && top

		switch f.Shape() {
		case schema.ShapeLeaf:
			if td && meta.Expansion == schema.Matrix {
				_, cols := f.Value().Dims()
				if err := t.add(path, Entry{N: cols, Values: columnsCursor(f.Value())}); err != nil {
					return err
				}
				continue
			}
			if td {
				return fmt.Errorf("horizon: time-dependent leaf %q was never expanded: %w", path, mshoot.ErrShape)
			}
			if base != nil {
				if err := t.add(path, Entry{N: base.n, Values: base.leaf(meta.Name)}); err != nil {
					return err
				}
				continue
			}
			if err := t.add(path, Entry{N: 1, Values: Repeat(f.Value())}); err != nil {
				return err
			}

		case schema.ShapeLeafSeries:
			if err := t.add(path, Entry{N: len(f.Series()), Values: seriesCursor(f.Series())}); err != nil {
				return err
			}

		case schema.ShapeGroup:
			var child *baseIter
			if base != nil {
				child = base.group(meta.Name)
			}
			if err := flattenObject(t, f.Group(), path+".", child, false); err != nil {
				return err
			}

		case schema.ShapeGroupList:
			if td {
				elems := f.GroupList()
				if len(elems) == 0 {
					continue
				}
				if err := homogeneous(path, elems); err != nil {
					return err
				}
				if err := flattenObject(t, elems[0], path+".", sliceBase(elems), false); err != nil {
					return err
				}
				continue
			}
			for k, el := range f.GroupList() {
				var child *baseIter
				if base != nil {
					child = base.groupIndex(meta.Name, k)
				}
				if err := flattenObject(t, el, fmt.Sprintf("%s[%d].", path, k), child, false); err != nil {
					return err
				}
			}

		case schema.ShapeGroupGrid:
			if !td {
				continue
			}
			rows := f.GroupGrid()
			if len(rows) == 0 {
				continue
			}
			width := len(rows[0])
			for i, row := range rows {
				if len(row) != width {
					return fmt.Errorf("horizon: time-dependent grid %q has ragged row %d: %w",
						path, i, mshoot.ErrConfiguration)
				}
			}
			for k := 0; k < width; k++ {
				col := make([]*schema.Object, len(rows))
				for i := range rows {
					col[i] = rows[i][k]
				}
				if err := homogeneous(path, col); err != nil {
					return err
				}
				if err := flattenObject(t, col[0], fmt.Sprintf("%s[%d].", path, k), sliceBase(col), false); err != nil {
					return err
				}
			}

		case schema.ShapeAux:
			// outside the model
		}
	}
	return nil
}

// homogeneous checks one structural level: a time-expanded sequence must
// expose the same field names and shapes on every element, since the
// first element serves as the structural template for the rest.
func homogeneous(path string, elems []*schema.Object) error {
	first := elems[0]
	for i, el := range elems[1:] {
		if !sameStructure(first, el) {
			return fmt.Errorf("horizon: time-dependent sequence %q has heterogeneous element %d: %w",
				path, i+1, mshoot.ErrConfiguration)
		}
	}
	return nil
}

func sameStructure(a, b *schema.Object) bool {
	if a.Len() != b.Len() {
		return false
	}
	af, bf := a.Fields(), b.Fields()
	for i := range af {
		if af[i].Meta().Name != bf[i].Meta().Name || af[i].Shape() != bf[i].Shape() {
			return false
		}
	}
	return true
}
