// Package redis provides a Redis-backed setup store, letting several
// workstations share a representative's setup.
package redis
