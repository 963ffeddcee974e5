package depcontainer

// Evaluator is the interface implemented by types that can evaluate the
// expressions of Expression rules.
type Evaluator interface {
	// Compile pre-processes the expression, returning a compiled version.
	// The container stores the compiled version in Rule.Program and later
	// provides it back to Evaluate.
	Compile(expr string) (any, error)

	// Evaluate runs a compiled expression with the value of the rule's
	// property bound to the variable "value". The expression must produce
	// a boolean.
	Evaluate(program any, value any) (bool, error)
}
