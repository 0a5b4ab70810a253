package mcp

import (
	"path/filepath"
	"strings"
)

// Transport identifies the MCP transport protocol.
type Transport string

const (
	// TransportStdio communicates via a subprocess's stdin/stdout.
	TransportStdio Transport = "stdio"

	// TransportSSE communicates via HTTP Server-Sent Events.
	TransportSSE Transport = "sse"

	// TransportStreamableHTTP communicates via HTTP streaming.
	TransportStreamableHTTP Transport = "streamable-http"
)

// ServerConfig describes how to reach a single MCP server.
//
// For stdio servers either Command names the executable directly, or Script
// points at a server script whose interpreter is chosen by suffix
// (.py runs under python, .js under node). SSE and streamable-http servers
// are addressed by URL.
type ServerConfig struct {
	// Transport selects the communication protocol. Empty means stdio.
	Transport Transport `json:"transport,omitempty"`

	// Script is a server script path classified by suffix (stdio only).
	Script string `json:"script,omitempty"`

	// Command is the executable to spawn (stdio only). Takes precedence
	// over Script classification when set.
	Command string `json:"command,omitempty"`

	// Args are command-line arguments for the subprocess.
	Args []string `json:"args,omitempty"`

	// Env are extra KEY=VALUE pairs appended to the inherited environment.
	Env []string `json:"env,omitempty"`

	// URL is the server address (sse and streamable-http transports).
	URL string `json:"url,omitempty"`
}

// stdioCommand resolves the executable and arguments for a stdio config.
// Script classification mirrors the supported server kinds: python and
// node scripts. Anything else is an unsupported target.
func stdioCommand(cfg ServerConfig) (string, []string, error) {
	if cfg.Command != "" {
		return cfg.Command, cfg.Args, nil
	}

	var interpreter string
	switch strings.ToLower(filepath.Ext(cfg.Script)) {
	case ".py":
		interpreter = "python"
	case ".js":
		interpreter = "node"
	default:
		return "", nil, &UnsupportedTargetError{Target: cfg.Script}
	}

	args := append([]string{cfg.Script}, cfg.Args...)
	return interpreter, args, nil
}
