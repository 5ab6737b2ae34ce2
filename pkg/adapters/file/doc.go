// Package file provides filesystem adapters: a graph loader for YAML or JSON
// call-flow documents and a setup store that keeps one YAML file per profile.
package file
