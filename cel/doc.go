// Package cel provides an implementation of the depcontainer Evaluator
// interface backed by Google's cel-go.
//
// See https://github.com/google/cel-go and https://opensource.google/projects/cel for more information
// about CEL. The expressions you write must conform to the CEL spec: https://github.com/google/cel-spec.
//
// Expressions
//
// An expression rule is added with Container.DependsOnExpr. The value of
// the rule's property is available as the dynamic variable "value"; the
// expression must produce a boolean.
//
//	c := depcontainer.New(fields, "adult", depcontainer.WithEvaluator(cel.NewEvaluator())).
//		DependsOnExpr("age", `int(value) >= 18`)
//
// Submitted form values are usually strings, so convert them before
// comparing numbers: int(value), double(value).
//
// Functions
//
// In addition to the standard CEL functions and the string extensions
// (https://github.com/google/cel-go/tree/master/ext#strings), expressions
// can use the container's own comparison rules:
//
//	empty(value)              true for null, false, 0, "", "0", [] and {}
//	loose_equals(value, 1)    true for 1, 1.0, "1" and "01"
//
// Custom functions are added with EnvOptions.
//
// Errors
//
// A missing variable, a failed conversion or any other evaluation error
// leaves the rule unsatisfied; the error is reported on the rule's
// depcontainer.RuleResult.
package cel
