package shoot

import (
	"fmt"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/horizon"
)

type stepKind uint8

const (
	stepUnset stepKind = iota
	stepFixed
	stepNamed
)

// StepSize specifies where per-transition step durations come from:
// either a positive literal repeated for every transition, or a
// flattened path whose values are pulled one per transition. The zero
// StepSize is invalid.
type StepSize struct {
	kind stepKind
	lit  float64
	path string
}

// FixedStep repeats the literal duration v for every transition.
func FixedStep(v float64) StepSize {
	return StepSize{kind: stepFixed, lit: v}
}

// NamedStep reads durations from the flattened path name.
func NamedStep(path string) StepSize {
	return StepSize{kind: stepNamed, path: path}
}

func (s StepSize) String() string {
	switch s.kind {
	case stepFixed:
		return fmt.Sprintf("%g", s.lit)
	case stepNamed:
		return s.path
	default:
		return "unset"
	}
}

// resolve turns the step source into a cursor and its multiplicity. A
// literal yields an infinite repeat with multiplicity 1.
func (s StepSize) resolve(be Backend, tbl *horizon.Table) (*horizon.Cursor, int, error) {
	switch s.kind {
	case stepFixed:
		if s.lit <= 0 {
			return nil, 0, fmt.Errorf("shoot: fixed step must be positive, got %g: %w", s.lit, mshoot.ErrConfiguration)
		}
		return horizon.Repeat(be.Constant(s.lit)), 1, nil
	case stepNamed:
		e, ok := tbl.Lookup(s.path)
		if !ok {
			return nil, 0, fmt.Errorf("shoot: step path %q not in table: %w", s.path, mshoot.ErrConfiguration)
		}
		return e.Values, e.N, nil
	default:
		return nil, 0, fmt.Errorf("shoot: step size not specified: %w", mshoot.ErrConfiguration)
	}
}
