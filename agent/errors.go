package agent

import "errors"

var (
	// ErrMissingModel is returned by New when the configuration names no model.
	ErrMissingModel = errors.New("agent config names no model")
	// ErrUnknownProvider is returned by New for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrEmptyAgentName is returned by Registry.Register for an empty name.
	ErrEmptyAgentName = errors.New("agent name cannot be empty")
	// ErrAgentExists is returned by Registry.Register for a duplicate name.
	ErrAgentExists = errors.New("agent already registered")
	// ErrAgentNotFound is returned when a named agent is not registered.
	ErrAgentNotFound = errors.New("agent not found")
)
