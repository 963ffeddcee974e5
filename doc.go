// Package depcontainer provides a dependency container: a form field that
// bundles child fields and enables them only when conditions on the values
// of other fields hold.
//
// A container holds an ordered list of dependency rules. Each rule names a
// field (optionally with a property, as in "country.code") and one
// condition on its value:
//
//	DependsOn            value loosely equals an operand
//	DependsOnNot         value does not loosely equal an operand
//	DependsOnEmpty       value is empty
//	DependsOnNotEmpty    value is not empty
//	DependsOnNullOrZero  value is null, 0 or "0"
//	DependsOnIn          value loosely equals one of a set
//	DependsOnNotIn       value loosely equals none of a set
//	DependsOnExpr        an expression over the value is true (see package cel)
//
// Typical use is as follows:
//
//  1. Create the child fields
//  2. Create a container with New and add rules with the DependsOn methods
//  3. Optionally Compile, to check the rules and compile expressions
//  4. On display, call ResolveForDisplay (or EvaluateForDisplay) with the
//     stored resource, and serialize the container for the presentation layer
//  5. On submission, call Fill, or filter the form's fields with Available
//     and fill what remains
//
// Display and Fill
//
// The rules are evaluated against two different data sources, with slightly
// different semantics.
//
// On display the data is a stored Resource. Child fields are always
// resolved; each rule records whether it holds, and the presentation layer
// hides the children accordingly. An Equals rule that does not match the
// attribute falls back to the container's Discriminator, which by default
// matches the type attribute of a polymorphic relation: a rule on "role"
// with operand "Admin" holds when "role_type" is `App\Models\Admin`.
// Resources holding plain keyed data (see MapResource) skip the fallback.
//
// On submission the data is a Request. The container is filled only when
// every rule holds. A container with no rules is never filled. NullOrZero
// also accepts the empty string here, and there is no discriminator
// fallback.
//
// Comparisons use LooseEquals and IsEmpty throughout, so the string "1"
// submitted by a form equals the integer 1 stored on a resource.
//
// Errors
//
// Evaluating rules never fails: missing attributes read as nil and a rule
// that cannot be decided is not satisfied. An expression that cannot be
// compiled or evaluated leaves its error in RuleResult.Err. Compile reports
// such problems up front. Errors returned by child fields are passed back
// unchanged.
package depcontainer
