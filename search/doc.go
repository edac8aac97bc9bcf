// Package search composes member search queries from sparse conditions.
// Everything here is pure: it builds query descriptors and predicates and
// leaves execution to the repository layer.
package search
