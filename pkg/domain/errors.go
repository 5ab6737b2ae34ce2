package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every *ConfigError.
	ErrConfig = errors.New("invalid call-flow configuration")

	// ErrNodeNotFound is matched by every *NodeNotFoundError.
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidOption is matched by every *InvalidOptionError.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnmappedEnum is matched by every *UnmappedEnumError.
	ErrUnmappedEnum = errors.New("unmapped enum value")

	// ErrNotStarted is returned by navigation calls issued before Start.
	ErrNotStarted = errors.New("call not started")

	// ErrSetupNotFound is returned when no saved setup exists for a profile.
	ErrSetupNotFound = errors.New("setup not found")
)

// ConfigError reports a graph that cannot be used: a missing start node or a
// malformed document. Retrying cannot help.
type ConfigError struct {
	NodeID string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := "config error: " + e.Reason
	if e.NodeID != "" {
		msg = fmt.Sprintf("config error at node '%s': %s", e.NodeID, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
func (e *ConfigError) Unwrap() error        { return e.Err }

// NodeNotFoundError reports a navigation target absent from the graph after
// redirection. It is recoverable by resetting the call, never by retrying.
type NodeNotFoundError struct {
	// NodeID is the id looked up (after redirection).
	NodeID string
	// RequestedID is the id originally requested.
	RequestedID string
}

func (e *NodeNotFoundError) Error() string {
	if e.RequestedID != "" && e.RequestedID != e.NodeID {
		return fmt.Sprintf("node '%s' not found (requested '%s')", e.NodeID, e.RequestedID)
	}
	return fmt.Sprintf("node '%s' not found", e.NodeID)
}

func (e *NodeNotFoundError) Is(target error) bool { return target == ErrNodeNotFound }

// InvalidOptionError reports an activated option without a target, or a
// selection that does not exist in the current view.
type InvalidOptionError struct {
	NodeID string
	Index  int
	Text   string
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %q at node '%s': %s", e.Text, e.NodeID, e.Reason)
}

func (e *InvalidOptionError) Is(target error) bool { return target == ErrInvalidOption }

// UnmappedEnumError reports a context value with no entry in a label table.
type UnmappedEnumError struct {
	Field string
	Value string
}

func (e *UnmappedEnumError) Error() string {
	return fmt.Sprintf("no label for %s=%q", e.Field, e.Value)
}

func (e *UnmappedEnumError) Is(target error) bool { return target == ErrUnmappedEnum }
