// Package mshoot provides declarative formulation of multiple-shooting
// optimal-control problems.
//
// A problem is described as a tree of typed fields (see package schema),
// replicated across a discrete time horizon (package horizon), bound to
// backend-native symbols, and finally wired into per-step transcription
// constraints (package shoot). The actual nonlinear program construction
// and solving stay behind the [github.com/pvaldi/mshoot/shoot.Backend]
// boundary; this module only manages expansion, naming, and constraint
// emission plumbing.
//
// This package defines the leaf value model shared by the others:
//
//   - [Term]: a single symbolic or numeric value held by a schema leaf
//   - [Value]: the numeric Term carried before backend instantiation
//   - the error taxonomy sentinels ([ErrConfiguration] and friends)
//
// # Pipeline
//
//	spec, _ := schema.New(
//	    schema.Var("x", mshoot.Vector(3), schema.TimeVarying()),
//	    schema.Par("mass", mshoot.Scalar(1.0)),
//	)
//	expanded, _ := horizon.Expand(spec, horizon.WithHorizon(20))
//	bound, _ := backend.Instantiate(expanded)
//	table, _ := horizon.Flatten(bound)
//	tr := shoot.New(backend, table, shoot.WithDefaultIntegrator(integ))
//	err := tr.AddDynamics(dyn, shoot.FixedStep(0.1))
//
// # Thread Safety
//
// All operations are synchronous transformations over in-memory trees.
// Flattened tables hold single-consumer cursors and must not be shared
// across concurrent consumers.
package mshoot
