// Package shoot wires dynamics models into an optimization backend as
// multiple-shooting transcription constraints.
//
// The package consumes the flattened tables built by package horizon and
// three collaborator boundaries it does not implement:
//
//   - [Backend]: creates symbols and registers relations (the nonlinear
//     program lives behind it)
//   - [Integrator]: the single-step integration formula
//   - [Dynamics]: names the state and input paths a model reads
//
// A [Transcriber] holds the backend and tables; each
// [Transcriber.AddDynamics] call validates fail-fast, then emits one
// equality relation per state variable per knot transition, tying the
// integrated state to the next knot's value.
//
//	tr := shoot.New(backend, table, shoot.WithDefaultIntegrator(integ))
//	err := tr.AddDynamics(dyn, shoot.FixedStep(0.1))
//
// Wiring is build-time graph construction: synchronous, one-shot, no
// retries. Validation failures leave nothing partially wired.
package shoot
