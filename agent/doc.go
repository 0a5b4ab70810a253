// Package agent contains the core agent implementation for toolmesh: a
// swappable language-model backend paired with a registry of named MCP tool
// servers and the dispatch logic that routes tool work to them.
//
// The package focuses on three concerns:
//
//  1. Identity (name, instructions, config bag) fixed at construction
//  2. Server registry management with a single "active" selection
//  3. Dispatch of tool calls and tool listing to a resolved server
//
// Design principles:
//   - Minimal hidden global state: the backend and dialer are injected
//   - The agent never touches a concrete transport; it reaches sessions
//     only through the Dialer / Session capability interfaces
//   - Registry resolution fails fast, before any network or process I/O
//
// Model generation itself (Query, CountTokens) is delegated unchanged to
// the injected model.Backend; dispatch never leaks into the backend.
package agent
