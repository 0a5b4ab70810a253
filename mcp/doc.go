// Package mcp manages connections to external MCP (Model Context Protocol)
// tool servers. A Session owns exactly one connection: it is created by
// Connect (transport setup plus the protocol initialize handshake), used for
// CallTool / ListTools requests, and released by Close.
//
// A session carries no locking of its own: the underlying transport is a
// single ordered channel, so callers must not issue concurrent requests on
// one session. Independent sessions may run concurrently.
package mcp
