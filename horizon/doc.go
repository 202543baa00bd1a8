// Package horizon replicates schema instances across a discrete time
// horizon and flattens them into dotted-path tables of lazily produced
// per-knot values.
//
//   - [Expand]: one level of time over a whole schema instance, per-field
//     horizon overrides included
//   - [Flatten]: depth-first walk producing a [Table] of
//     path -> (multiplicity, [Cursor]) entries
//
// Expansion deep-copies before rewriting; the input instance is never
// modified. Flattening is read-only over the instance but the cursors it
// hands out are stateful: forward-only, single-consumer, built fresh by
// every call to Flatten.
//
// # Multiplicity
//
// A constant leaf flattens with multiplicity 1 and an infinite-repeat
// cursor, so consumers can zip it against time-varying peers without
// special-casing. A leaf under a time-varying ancestor adopts the
// ancestor's multiplicity, yielding that ancestor's per-instant values.
package horizon
