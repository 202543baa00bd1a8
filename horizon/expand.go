package horizon

import (
	"fmt"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/schema"
)

// Option configures one expansion call.
type Option func(*options)

type options struct {
	horizon   int
	overrides map[string]int
}

// WithHorizon sets the default horizon length. It defaults to 1.
func WithHorizon(n int) Option {
	return func(o *options) { o.horizon = n }
}

// WithFieldHorizon overrides the horizon for one top-level field and
// forces it to be treated as time-dependent regardless of its declared
// metadata. Names not present in the schema are ignored.
func WithFieldHorizon(name string, n int) Option {
	return func(o *options) { o.overrides[name] = n }
}

// WithFieldHorizons merges a map of per-field overrides.
func WithFieldHorizons(m map[string]int) Option {
	return func(o *options) {
		for name, n := range m {
			o.overrides[name] = n
		}
	}
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{horizon: 1, overrides: make(map[string]int)}
	for _, opt := range opts {
		opt(o)
	}
	if o.horizon < 1 {
		return nil, fmt.Errorf("horizon: length must be positive, got %d: %w", o.horizon, mshoot.ErrConfiguration)
	}
	for name, n := range o.overrides {
		if n < 1 {
			return nil, fmt.Errorf("horizon: override for %q must be positive, got %d: %w", name, n, mshoot.ErrConfiguration)
		}
	}
	return o, nil
}

// Expand returns a deep copy of obj in which every time-dependent
// top-level field (declared, or forced by a per-field override) is
// replicated across its effective horizon. List leaves become one
// independent copy per knot, Matrix leaves grow to one column per knot,
// and composites become one deep copy of their whole value per knot.
// Expanded fields are marked time-dependent in the copy, so the result
// is self-describing for [Flatten].
//
// Constant fields and non-time-dependent composites pass through
// structurally unchanged; expansion is one level of time over the whole
// schema, never per-subtree.
func Expand(obj *schema.Object, opts ...Option) (*schema.Object, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return expand(obj, cfg)
}

// ExpandAll expands a top-level list of parallel structures
// element-wise with shared options.
func ExpandAll(objs []*schema.Object, opts ...Option) ([]*schema.Object, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	out := make([]*schema.Object, len(objs))
	for i, o := range objs {
		e, err := expand(o, cfg)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func expand(obj *schema.Object, cfg *options) (*schema.Object, error) {
	out := obj.Clone()
	for _, f := range out.Fields() {
		meta := f.Meta()
		h, forced := cfg.overrides[meta.Name]
		if !forced {
			h = cfg.horizon
		}
		if !meta.TimeDependent && !forced {
			continue
		}

		switch f.Shape() {
		case schema.ShapeLeaf:
			if meta.Expansion == schema.Matrix {
				if err := expandMatrixLeaf(f, h); err != nil {
					return nil, err
				}
				continue
			}
			series := make([]mshoot.Term, h)
			for k := range series {
				series[k] = f.Value().Clone()
			}
			f.ExpandSeries(series)
		case schema.ShapeGroup:
			elems := make([]*schema.Object, h)
			for k := range elems {
				elems[k] = f.Group().Clone()
			}
			f.ExpandGroups(elems)
		case schema.ShapeGroupList:
			rows := make([][]*schema.Object, h)
			for k := range rows {
				row := make([]*schema.Object, len(f.GroupList()))
				for i, el := range f.GroupList() {
					row[i] = el.Clone()
				}
				rows[k] = row
			}
			f.ExpandGrid(rows)
		case schema.ShapeLeafSeries, schema.ShapeGroupGrid:
			return nil, fmt.Errorf("horizon: field %q is already expanded: %w", meta.Name, mshoot.ErrConfiguration)
		case schema.ShapeAux:
			// outside the model
		}
	}
	return out, nil
}

func expandMatrixLeaf(f *schema.Field, h int) error {
	v, ok := f.Value().(*mshoot.Value)
	if !ok {
		return fmt.Errorf("horizon: matrix expansion of %q needs a numeric value, got %T: %w",
			f.Meta().Name, f.Value(), mshoot.ErrShape)
	}
	r, c := v.Dims()
	if c != 1 {
		return fmt.Errorf("horizon: matrix expansion of %q needs a single column, got %d: %w",
			f.Meta().Name, c, mshoot.ErrShape)
	}
	f.ExpandMatrix(mshoot.Zeros(r, h))
	return nil
}
