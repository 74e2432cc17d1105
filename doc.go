// Package routec compiles route-pattern text against handler signatures.
//
// A route attribute has the form:
//
//	<METHOD> "<PATH>" [with <TYPE>]
//
// where PATH may contain :name captures, one trailing *name wildcard, and a
// ?name(&name)* query-name list, e.g.:
//
//	GET "/item/:id?amount&offset"
//
// ParseRoute turns the attribute text into a Route, and Compile binds that
// Route against a handler's parameter list, consuming each matched parameter
// and inferring the state type when no "with" clause is given. The resulting
// CompiledRoute exposes the views code generators need: the canonical path,
// the ordered path and query bindings, the remaining (unbound) parameters,
// and the extraction-order identifier list.
//
// Compilation is a pure function of its two inputs. Failures are structured
// values: *SyntaxError for malformed route text, *BindingError for a name
// with no matching handler parameter.
package routec
