// Package model defines the provider-agnostic abstractions and concrete
// helpers for interacting with language models inside toolmesh.
//
// Core goals:
//   - Unify streaming + non-streaming generation behind a single interface
//   - Normalize tool / function call representation (ToolDefinition, ToolCall)
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockBackend)
//
// Providers (e.g. OpenAI, Anthropic) implement the Backend interface from
// this package so the agent layer remains decoupled from vendor SDKs.
package model
