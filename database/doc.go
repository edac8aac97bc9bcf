// Package database provides connection management for mysql, postgres and
// sqlite, environment overrides, health checks, query logging hooks, the model
// registry and schema creation, and SQL error classification, built on Bun.
package database
