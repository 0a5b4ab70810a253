package mcp

import "fmt"

// UnsupportedTargetError is returned when a server config names an endpoint
// of unrecognized kind (script suffix or transport type). It is raised
// before any process or socket is created.
type UnsupportedTargetError struct {
	Target string // Offending script path or transport type
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("mcp: unsupported server target %q (supported: .py/.js scripts, stdio, sse, streamable-http)", e.Target)
}

// ConnectError is returned when the transport to a server could not be
// established.
type ConnectError struct {
	Server string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("mcp: connect to server %q: %v", e.Server, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// HandshakeError is returned when the transport was opened but the protocol
// initialize step failed. The transport is released before the error
// propagates.
type HandshakeError struct {
	Server string
	Err    error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("mcp: initialize handshake with server %q: %v", e.Server, e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

// ToolNotFoundError is returned when the remote server reports that the
// requested tool name is unknown. This is a remote classification, not a
// local registry check.
type ToolNotFoundError struct {
	Server string
	Tool   string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("mcp: tool %q not found on server %q", e.Tool, e.Server)
}

// ToolExecutionError is returned for failures during a call on an open
// session: a closed session, a transport fault, or a remote error result.
type ToolExecutionError struct {
	Server  string
	Tool    string
	Message string
	Err     error
}

func (e *ToolExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mcp: tool %q on server %q: %v", e.Tool, e.Server, e.Err)
	}
	return fmt.Sprintf("mcp: tool %q on server %q: %s", e.Tool, e.Server, e.Message)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }
