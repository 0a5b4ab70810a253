package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBackend is returned by Query and CountTokens when the agent was
	// constructed without a model backend. Callers must treat a missing
	// backend as an absent capability, not a crash.
	ErrNoBackend = errors.New("agent: no model backend configured")
)

// ConfigError reports a server registry resolution failure: either no
// server could be resolved at all, or the resolved name is not registered.
// It is returned before any network or process interaction is attempted.
type ConfigError struct {
	Server string // Offending server name; empty when nothing resolved
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Server == "" {
		return fmt.Sprintf("agent: %s", e.Reason)
	}
	return fmt.Sprintf("agent: server %q: %s", e.Server, e.Reason)
}
