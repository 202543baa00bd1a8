package shoot

import "log/slog"

// Option configures a Transcriber.
type Option func(*Transcriber)

// WithDefaultIntegrator sets the integrator used by AddDynamics calls
// that do not override it.
func WithDefaultIntegrator(integ Integrator) Option {
	return func(tr *Transcriber) { tr.integ = integ }
}

// WithLogger routes debug-level wiring traces to l. The default logger
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(tr *Transcriber) { tr.log = l }
}

type dynConfig struct {
	table     int
	tableSet  bool
	maxSteps  int
	mode      Mode
	integ     Integrator
	startTime float64
}

// DynOption configures one AddDynamics call.
type DynOption func(*dynConfig)

// WithTable selects which flattened table to wire against. Required
// when the transcriber was built over parallel structures.
func WithTable(i int) DynOption {
	return func(c *dynConfig) {
		c.table = i
		c.tableSet = true
	}
}

// WithMaxSteps fixes the transcription step count instead of deriving
// it from the first state variable's multiplicity. Must be at least 2.
func WithMaxSteps(n int) DynOption {
	return func(c *dynConfig) { c.maxSteps = n }
}

// WithMode selects constraint or cost registration. The default is
// ModeConstraint.
func WithMode(m Mode) DynOption {
	return func(c *dynConfig) { c.mode = m }
}

// WithIntegrator overrides the transcriber's default integrator for
// this call.
func WithIntegrator(integ Integrator) DynOption {
	return func(c *dynConfig) { c.integ = integ }
}

// WithStartTime sets the absolute time of the first knot. Defaults to 0.
func WithStartTime(t0 float64) DynOption {
	return func(c *dynConfig) { c.startTime = t0 }
}
