// Package entity declares the bun models of the member/team schema, their
// typed query paths and the read-only projections built from them.
package entity
