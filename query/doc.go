// Package query is a small hand-written expression DSL over bun: typed column
// paths, composable predicates, orderings and select descriptors that render
// onto bun query builders.
package query
