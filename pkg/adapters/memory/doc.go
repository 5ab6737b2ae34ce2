// Package memory provides in-memory adapters for tests and embedded hosts.
package memory
