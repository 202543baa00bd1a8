package shoot

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/horizon"
)

// Transcriber wires dynamics models against flattened tables, emitting
// transcription relations into an optimization backend. It holds no
// state across calls beyond the tables, whose cursors each AddDynamics
// call partially consumes.
type Transcriber struct {
	be     Backend
	tables []*horizon.Table
	multi  bool
	integ  Integrator
	log    *slog.Logger
}

// New builds a transcriber over a single flattened structure.
func New(be Backend, table *horizon.Table, opts ...Option) *Transcriber {
	tr := &Transcriber{
		be:     be,
		tables: []*horizon.Table{table},
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// NewList builds a transcriber over parallel structures (one table per
// element); AddDynamics calls must then select a table with WithTable.
func NewList(be Backend, tables []*horizon.Table, opts ...Option) *Transcriber {
	tr := &Transcriber{
		be:     be,
		tables: append([]*horizon.Table(nil), tables...),
		multi:  true,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// AddDynamics emits, for each consecutive knot pair, one equality
// relation per state variable tying the integrated state to the next
// knot's value. All validation happens before the first emission;
// a failed call leaves nothing partially wired.
//
// The step count n comes from WithMaxSteps when given, else from the
// first state variable's multiplicity. Every state multiplicity must
// reach n. Step-size and input multiplicities of exactly 1 broadcast;
// larger ones must also reach n.
func (tr *Transcriber) AddDynamics(dyn Dynamics, dt StepSize, opts ...DynOption) error {
	cfg := dynConfig{mode: ModeConstraint}
	for _, opt := range opts {
		opt(&cfg)
	}

	tbl, err := tr.selectTable(&cfg)
	if err != nil {
		return err
	}

	integ := cfg.integ
	if integ == nil {
		integ = tr.integ
	}
	if integ == nil {
		return fmt.Errorf("shoot: no integrator configured: %w", mshoot.ErrConfiguration)
	}
	if dyn == nil {
		return fmt.Errorf("shoot: nil dynamics: %w", mshoot.ErrConfiguration)
	}

	dtCur, dtN, err := dt.resolve(tr.be, tbl)
	if err != nil {
		return err
	}

	if cfg.maxSteps != 0 && cfg.maxSteps < 2 {
		return fmt.Errorf("shoot: max steps must be at least 2, got %d: %w", cfg.maxSteps, mshoot.ErrConfiguration)
	}
	n := cfg.maxSteps

	states := dyn.StateVariables()
	if len(states) == 0 {
		return fmt.Errorf("shoot: dynamics declares no state variables: %w", mshoot.ErrConfiguration)
	}

	stateNames := make([]string, 0, len(states))
	cursors := make(map[string]*horizon.Cursor, len(states))
	wired := make(map[string]bool, len(states))
	for _, name := range states {
		if wired[name] {
			continue
		}
		wired[name] = true
		e, ok := tbl.Lookup(name)
		if !ok {
			return fmt.Errorf("shoot: state %q not in table: %w", name, mshoot.ErrUnknownVariable)
		}
		if n == 0 {
			if e.N < 2 {
				return fmt.Errorf("shoot: state %q has multiplicity %d, need at least 2: %w",
					name, e.N, mshoot.ErrInsufficientHorizon)
			}
			n = e.N
		}
		if e.N < n {
			return fmt.Errorf("shoot: state %q has multiplicity %d, need %d: %w",
				name, e.N, n, mshoot.ErrInsufficientHorizon)
		}
		stateNames = append(stateNames, name)
		cursors[name] = e.Values
	}

	// a single repeated dt or one value per transition; almost-enough
	// sequences are rejected, never broadcast
	if dtN > 1 && dtN < n {
		return fmt.Errorf("shoot: step source %q has multiplicity %d, need 1 or at least %d: %w",
			dt, dtN, n, mshoot.ErrInsufficientHorizon)
	}

	inputNames := make([]string, 0, len(dyn.InputNames()))
	for _, name := range dyn.InputNames() {
		if wired[name] {
			continue
		}
		wired[name] = true
		e, ok := tbl.Lookup(name)
		if !ok {
			return fmt.Errorf("shoot: input %q not in table: %w", name, mshoot.ErrUnknownVariable)
		}
		if e.N > 1 && e.N < n {
			return fmt.Errorf("shoot: input %q has multiplicity %d, need 1 or at least %d: %w",
				name, e.N, n, mshoot.ErrInsufficientHorizon)
		}
		inputNames = append(inputNames, name)
		cursors[name] = e.Values
	}

	tr.log.Debug("wiring dynamics",
		"states", len(stateNames),
		"inputs", len(inputNames),
		"steps", n-1,
		"mode", cfg.mode.String(),
	)

	t0 := tr.be.Constant(cfg.startTime)
	all := append(append([]string(nil), stateNames...), inputNames...)

	cur, err := pullKnot(all, cursors)
	if err != nil {
		return err
	}

	emitted := 0
	for i := 0; i < n-1; i++ {
		next, err := pullKnot(all, cursors)
		if err != nil {
			return err
		}
		dtTerm, ok := dtCur.Next()
		if !ok {
			return fmt.Errorf("shoot: step values exhausted at transition %d: %w", i, mshoot.ErrInsufficientHorizon)
		}
		tAbs := t0.Add(dtTerm.Scale(float64(i)))

		integrated, err := integ.Step(dyn, cur, next, dtTerm, tAbs)
		if err != nil {
			return fmt.Errorf("shoot: integrator at transition %d: %w", i, err)
		}

		for _, name := range stateNames {
			val, ok := integrated[name]
			if !ok {
				return fmt.Errorf("shoot: integrator returned no value for %q at transition %d", name, i)
			}
			rel := Relation{Op: OpEq, Lhs: val, Rhs: next[name]}
			if err := tr.be.AddRelation(cfg.mode, rel, relationName(name, i)); err != nil {
				return fmt.Errorf("shoot: register %q transition %d: %w", name, i, err)
			}
			emitted++
		}
		cur = next
	}

	tr.log.Debug("dynamics wired", "relations", emitted)
	return nil
}

func (tr *Transcriber) selectTable(cfg *dynConfig) (*horizon.Table, error) {
	if tr.multi && !cfg.tableSet {
		return nil, fmt.Errorf("shoot: parallel structures need WithTable: %w", mshoot.ErrConfiguration)
	}
	if cfg.table < 0 || cfg.table >= len(tr.tables) {
		return nil, fmt.Errorf("shoot: table index %d out of range [0,%d): %w",
			cfg.table, len(tr.tables), mshoot.ErrConfiguration)
	}
	tbl := tr.tables[cfg.table]
	if tbl == nil {
		return nil, fmt.Errorf("shoot: table %d is nil: %w", cfg.table, mshoot.ErrConfiguration)
	}
	return tbl, nil
}

func pullKnot(names []string, cursors map[string]*horizon.Cursor) (map[string]mshoot.Term, error) {
	knot := make(map[string]mshoot.Term, len(names))
	for _, name := range names {
		v, ok := cursors[name].Next()
		if !ok {
			return nil, fmt.Errorf("shoot: values for %q exhausted: %w", name, mshoot.ErrInsufficientHorizon)
		}
		knot[name] = v
	}
	return knot, nil
}

func relationName(path string, step int) string {
	return fmt.Sprintf("dynamics[%s][%d]", path, step)
}
