package shoot

import (
	"fmt"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/schema"
)

// Mode selects how a relation is registered with the backend.
type Mode uint8

const (
	// ModeConstraint registers the relation as a hard constraint.
	ModeConstraint Mode = iota
	// ModeCost registers the relation as an additive cost term.
	ModeCost
)

func (m Mode) String() string {
	switch m {
	case ModeConstraint:
		return "constraint"
	case ModeCost:
		return "cost"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Op is the comparison a relation asserts.
type Op uint8

const (
	OpEq Op = iota
	OpLe
	OpGe
)

func (op Op) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// Relation is one expression handed to the backend.
type Relation struct {
	Op  Op
	Lhs mshoot.Term
	Rhs mshoot.Term
}

// Backend is the optimization backend boundary. Implementations own
// symbol creation, constraint/cost registration, and everything beyond
// (derivatives, solving).
type Backend interface {
	// Instantiate replaces every storage leaf placeholder of an expanded
	// instance with backend-native symbols, preserving shape: Variable
	// leaves become decision variables, Parameter leaves symbols fixed at
	// solve time, Generic leaves whatever the backend prefers.
	// schema.Transform does the walking for most implementations.
	Instantiate(expanded *schema.Object) (*schema.Object, error)

	// Constant wraps a literal in a backend term.
	Constant(v float64) mshoot.Term

	// AddRelation registers rel under the given mode, tagged with a
	// diagnostic name.
	AddRelation(mode Mode, rel Relation, name string) error
}

// Dynamics describes a dynamics model by the flattened paths it reads.
// Both name lists are ordered; duplicates are wired once.
type Dynamics interface {
	StateVariables() []string
	InputNames() []string
}

// Integrator is the pluggable single-step integration strategy.
type Integrator interface {
	// Step returns, per state path, the expression for the state reached
	// by integrating dyn over [t0, t0+dt] from the knot values in x0.
	// xf carries the next knot's values for implicit formulas. Both maps
	// hold states and inputs merged.
	Step(dyn Dynamics, x0, xf map[string]mshoot.Term, dt, t0 mshoot.Term) (map[string]mshoot.Term, error)
}
