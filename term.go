package mshoot

// Term is a single value held by a schema storage leaf: numeric before
// backend instantiation (see [Value]), backend-native symbolic after.
// Optimization backends provide their own implementations.
//
// Terms behave as immutable handles. Arithmetic between terms of
// different implementations is undefined; implementations may panic.
type Term interface {
	// Dims returns the row and column counts of the value.
	Dims() (rows, cols int)

	// Col returns the j-th column as a new rows x 1 term.
	Col(j int) Term

	// Add returns the element-wise sum with other. Implementations
	// should broadcast 1x1 operands against any shape.
	Add(other Term) Term

	// Scale returns the term multiplied by the scalar k.
	Scale(k float64) Term

	// Clone returns an independent copy. Immutable implementations may
	// return the receiver.
	Clone() Term
}
