// Package shoottest provides a recording optimization backend and a
// printable symbolic term for exercising transcription wiring without a
// real nonlinear-program library behind it.
package shoottest

import (
	"fmt"
	"strconv"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/schema"
	"github.com/pvaldi/mshoot/shoot"
)

// Term is an immutable symbolic value whose Expr spells out how it was
// built, which makes wiring output directly assertable.
type Term struct {
	Expr string
	Rows int
	Cols int
}

var _ mshoot.Term = Term{}

// Sym returns a named r x c symbol.
func Sym(name string, r, c int) Term {
	return Term{Expr: name, Rows: r, Cols: c}
}

func (t Term) Dims() (rows, cols int) { return t.Rows, t.Cols }

func (t Term) Col(j int) mshoot.Term {
	return Term{Expr: fmt.Sprintf("%s[:,%d]", t.Expr, j), Rows: t.Rows, Cols: 1}
}

func (t Term) Add(other mshoot.Term) mshoot.Term {
	return Term{Expr: fmt.Sprintf("(%s + %s)", t.Expr, exprOf(other)), Rows: t.Rows, Cols: t.Cols}
}

func (t Term) Scale(k float64) mshoot.Term {
	return Term{Expr: fmt.Sprintf("(%s * %s)", formatFloat(k), t.Expr), Rows: t.Rows, Cols: t.Cols}
}

func (t Term) Clone() mshoot.Term { return t }

func (t Term) String() string { return t.Expr }

func exprOf(t mshoot.Term) string {
	if s, ok := t.(Term); ok {
		return s.Expr
	}
	return fmt.Sprintf("%v", t)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RelationRecord is one AddRelation call as the backend received it.
type RelationRecord struct {
	Mode shoot.Mode
	Rel  shoot.Relation
	Name string
}

// Backend records everything it is asked to do. Instantiate names each
// symbol by its leaf path, so per-knot copies come out as path[k]. The
// zero value is ready to use.
type Backend struct {
	Symbols   []string
	Relations []RelationRecord

	// InjectErr, when set, is returned by AddRelation.
	InjectErr error
}

var _ shoot.Backend = (*Backend)(nil)

func (b *Backend) Instantiate(expanded *schema.Object) (*schema.Object, error) {
	return schema.Transform(expanded, func(path string, meta schema.FieldMeta, v mshoot.Term) (mshoot.Term, error) {
		r, c := v.Dims()
		b.Symbols = append(b.Symbols, path)
		return Sym(path, r, c), nil
	})
}

func (b *Backend) Constant(v float64) mshoot.Term {
	return Term{Expr: formatFloat(v), Rows: 1, Cols: 1}
}

func (b *Backend) AddRelation(mode shoot.Mode, rel shoot.Relation, name string) error {
	if b.InjectErr != nil {
		return b.InjectErr
	}
	b.Relations = append(b.Relations, RelationRecord{Mode: mode, Rel: rel, Name: name})
	return nil
}
