package horizon

import (
	"fmt"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/schema"
)

// Cursor produces the successive per-knot terms of one flattened path.
// Cursors are forward-only and single-consumer: every [Flatten] builds
// fresh ones, and a partially consumed cursor cannot be rewound.
type Cursor struct {
	next func() (mshoot.Term, bool)
}

// Next returns the next term. ok is false once a finite cursor is
// exhausted; infinite-repeat cursors never report exhaustion.
func (c *Cursor) Next() (mshoot.Term, bool) {
	return c.next()
}

// Repeat returns a cursor yielding t indefinitely, the form constant
// paths carry in a [Table].
func Repeat(t mshoot.Term) *Cursor {
	return &Cursor{next: func() (mshoot.Term, bool) { return t, true }}
}

func seriesCursor(elems []mshoot.Term) *Cursor {
	i := 0
	return &Cursor{next: func() (mshoot.Term, bool) {
		if i >= len(elems) {
			return nil, false
		}
		t := elems[i]
		i++
		return t, true
	}}
}

func columnsCursor(t mshoot.Term) *Cursor {
	_, cols := t.Dims()
	j := 0
	return &Cursor{next: func() (mshoot.Term, bool) {
		if j >= cols {
			return nil, false
		}
		col := t.Col(j)
		j++
		return col, true
	}}
}

// baseIter resolves the per-instant ancestor objects of fields nested
// beneath a time-expanded sequence. It is a projector, not a cursor:
// every flattened path mints its own forward-only walk from it, so
// sibling paths never compete for instants.
type baseIter struct {
	n   int
	get func(i int) (*schema.Object, bool)
}

func sliceBase(elems []*schema.Object) *baseIter {
	return &baseIter{n: len(elems), get: func(i int) (*schema.Object, bool) {
		if i >= len(elems) {
			return nil, false
		}
		return elems[i], true
	}}
}

// group narrows the projection to a named single-composite child.
func (b *baseIter) group(name string) *baseIter {
	return &baseIter{n: b.n, get: func(i int) (*schema.Object, bool) {
		o, ok := b.get(i)
		if !ok {
			return nil, false
		}
		f, ok := o.Field(name)
		if !ok || f.Shape() != schema.ShapeGroup {
			return nil, false
		}
		return f.Group(), true
	}}
}

// groupIndex narrows the projection to the k-th member of a named
// structural sequence child.
func (b *baseIter) groupIndex(name string, k int) *baseIter {
	return &baseIter{n: b.n, get: func(i int) (*schema.Object, bool) {
		o, ok := b.get(i)
		if !ok {
			return nil, false
		}
		f, ok := o.Field(name)
		if !ok || f.Shape() != schema.ShapeGroupList || k >= len(f.GroupList()) {
			return nil, false
		}
		return f.GroupList()[k], true
	}}
}

// leaf mints the cursor yielding, per ancestor instant, that instant's
// value of the named leaf child.
func (b *baseIter) leaf(name string) *Cursor {
	i := 0
	return &Cursor{next: func() (mshoot.Term, bool) {
		o, ok := b.get(i)
		if !ok {
			return nil, false
		}
		i++
		f, ok := o.Field(name)
		if !ok || f.Shape() != schema.ShapeLeaf {
			return nil, false
		}
		return f.Value(), true
	}}
}

// Entry is one flattened path: its multiplicity (horizon length, 1 for
// constants) and the cursor producing its per-knot terms.
type Entry struct {
	N      int
	Values *Cursor
}

// Table maps dotted paths to entries, preserving insertion order.
type Table struct {
	names   []string
	entries map[string]Entry
}

func newTable() *Table {
	return &Table{entries: make(map[string]Entry)}
}

func (t *Table) add(name string, e Entry) error {
	if _, dup := t.entries[name]; dup {
		return fmt.Errorf("horizon: duplicate path %q: %w", name, mshoot.ErrConfiguration)
	}
	t.names = append(t.names, name)
	t.entries[name] = e
	return nil
}

// Lookup returns the entry for a dotted path.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Names returns the paths in insertion order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of paths.
func (t *Table) Len() int {
	return len(t.names)
}
