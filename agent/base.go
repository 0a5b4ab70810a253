package agent

import (
	"context"
	"slices"
	"sync"

	"github.com/toolmesh/toolmesh/logging"
	"github.com/toolmesh/toolmesh/mcp"
	"github.com/toolmesh/toolmesh/model"
)

// Session is the capability set the agent needs from one open tool-server
// connection. *mcp.Session satisfies it.
type Session interface {
	CallTool(ctx context.Context, tool string, args map[string]any) (string, error)
	ListTools(ctx context.Context) ([]mcp.ToolDescriptor, error)
	Close() error
}

// Dialer opens sessions to tool servers. The agent depends on sessions only
// through this boundary so tests and alternative transports can slot in.
type Dialer interface {
	Dial(ctx context.Context, server string, cfg mcp.ServerConfig) (Session, error)
}

// DialerFunc is a functional adapter to allow ordinary functions to be used as Dialers.
type DialerFunc func(ctx context.Context, server string, cfg mcp.ServerConfig) (Session, error)

// Dial implements Dialer.
func (f DialerFunc) Dial(ctx context.Context, server string, cfg mcp.ServerConfig) (Session, error) {
	return f(ctx, server, cfg)
}

// mcpDialer is the default Dialer backed by the mcp package.
type mcpDialer struct{}

func (mcpDialer) Dial(ctx context.Context, server string, cfg mcp.ServerConfig) (Session, error) {
	return mcp.Connect(ctx, server, cfg)
}

// Info describes an agent for introspection. ActiveServer is empty when no
// server is active; Servers is sorted by name.
type Info struct {
	Name         string   `json:"name"`
	Provider     string   `json:"provider"`
	ActiveServer string   `json:"active_server"`
	Servers      []string `json:"servers"`
}

// Options configures a BaseAgent instance.
//
// Use functional options with New to override defaults.
type Options struct {
	Instruction Instruction
	Config      map[string]any
	Servers     map[string]mcp.ServerConfig
	Backend     model.Backend
	Dialer      Dialer
	Logger      logging.Logger
}

// WithBackend injects the model backend implementation.
func WithBackend(b model.Backend) func(o *Options) {
	return func(o *Options) { o.Backend = b }
}

// WithServers seeds the registry. Entries are inserted in sorted name order
// so the initially active server is deterministic.
func WithServers(servers map[string]mcp.ServerConfig) func(o *Options) {
	return func(o *Options) { o.Servers = servers }
}

// WithInstruction sets the agent instruction source.
func WithInstruction(i Instruction) func(o *Options) {
	return func(o *Options) { o.Instruction = i }
}

// WithConfig sets the opaque backend-specific configuration bag.
func WithConfig(config map[string]any) func(o *Options) {
	return func(o *Options) { o.Config = config }
}

// WithDialer overrides how tool-server sessions are opened.
func WithDialer(d Dialer) func(o *Options) {
	return func(o *Options) { o.Dialer = d }
}

// WithLogger injects a structured logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// BaseAgent bundles agent identity, the MCP server registry with its single
// active selection, and the dispatch logic for routing tool work to a
// resolved server. Embed it or use it directly; backend variants differ only
// in the injected model.Backend.
//
// Registry state is guarded by a mutex so a shared agent survives concurrent
// management calls; dispatch itself performs no locking around session I/O.
type BaseAgent struct {
	name        string
	instruction Instruction
	config      map[string]any

	mu      sync.Mutex
	servers map[string]mcp.ServerConfig
	order   []string // Insertion order; head of surviving entries becomes the successor
	active  string   // "" = no active server

	backend model.Backend
	dialer  Dialer
	logger  logging.Logger
}

// New constructs a BaseAgent with the given identity. Identity (name,
// instruction, config) is fixed at construction and never mutated.
func New(name string, optFns ...func(o *Options)) *BaseAgent {
	opts := Options{
		Instruction: NewInstructionFromText("You are " + name + ", a helpful AI assistant."),
		Dialer:      mcpDialer{},
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	a := &BaseAgent{
		name:        name,
		instruction: opts.Instruction,
		config:      opts.Config,
		servers:     make(map[string]mcp.ServerConfig),
		backend:     opts.Backend,
		dialer:      opts.Dialer,
		logger:      opts.Logger,
	}

	names := make([]string, 0, len(opts.Servers))
	for name := range opts.Servers {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		a.AddServer(name, opts.Servers[name])
	}

	return a
}

// Name returns the agent's immutable name.
func (a *BaseAgent) Name() string { return a.name }

// ResolveInstructions produces the final instruction string (system prompt)
// by resolving static or dynamic instruction sources against the config bag.
func (a *BaseAgent) ResolveInstructions() (string, error) {
	return a.instruction.Resolve(a.config)
}

// Config returns the opaque configuration bag supplied at construction.
func (a *BaseAgent) Config() map[string]any { return a.config }

// Server registry management.
//
// The registry maps server names to configurations and carries at most one
// active selection. Invariant: active is empty exactly when the registry is
// empty; otherwise active is a registry key.

// AddServer inserts or overwrites the configuration under name. The first
// server added to an empty registry becomes active. Idempotent for repeated
// identical calls.
func (a *BaseAgent) AddServer(name string, cfg mcp.ServerConfig) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.servers[name]; !exists {
		a.order = append(a.order, name)
	}
	a.servers[name] = cfg

	if a.active == "" {
		a.active = name
		a.logger.Debug("agent.server.activated", "agent", a.name, "server", name)
	}
	a.logger.Debug("agent.server.added", "agent", a.name, "server", name)
}

// RemoveServer deletes name from the registry, reporting whether it was
// present. Removing the active server promotes the earliest-inserted
// survivor, or clears the selection when the registry becomes empty.
// Callers must not depend on a specific successor.
func (a *BaseAgent) RemoveServer(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.servers[name]; !exists {
		return false
	}
	delete(a.servers, name)
	if i := slices.Index(a.order, name); i >= 0 {
		a.order = slices.Delete(a.order, i, i+1)
	}

	if a.active == name {
		a.active = ""
		if len(a.order) > 0 {
			a.active = a.order[0]
		}
		a.logger.Debug("agent.server.activated", "agent", a.name, "server", a.active)
	}
	a.logger.Debug("agent.server.removed", "agent", a.name, "server", name)
	return true
}

// SetActive selects name as the active server. It returns false and makes
// no change when name is not registered.
func (a *BaseAgent) SetActive(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.servers[name]; !exists {
		return false
	}
	a.active = name
	a.logger.Debug("agent.server.activated", "agent", a.name, "server", name)
	return true
}

// ActiveServer returns the currently active server name, or "" when none.
func (a *BaseAgent) ActiveServer() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Servers returns a copy of the full registry. Mutating the returned map
// does not affect agent state.
func (a *BaseAgent) Servers() map[string]mcp.ServerConfig {
	a.mu.Lock()
	defer a.mu.Unlock()

	servers := make(map[string]mcp.ServerConfig, len(a.servers))
	for name, cfg := range a.servers {
		servers[name] = cfg
	}
	return servers
}

// resolveServer maps an explicit server argument (or the active selection
// when empty) to its configuration. Resolution failures surface as
// *ConfigError before any network or process interaction.
func (a *BaseAgent) resolveServer(server string) (string, mcp.ServerConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	target := server
	if target == "" {
		target = a.active
	}
	if target == "" {
		return "", mcp.ServerConfig{}, &ConfigError{Reason: "no MCP server specified and no active server configured"}
	}
	cfg, exists := a.servers[target]
	if !exists {
		return "", mcp.ServerConfig{}, &ConfigError{Server: target, Reason: "not found in registry"}
	}
	return target, cfg, nil
}

// Tool dispatch.

// ExecuteTool runs a tool with the given input on the named server, or the
// active server when server is empty. The session opened for the call is
// released on every path.
func (a *BaseAgent) ExecuteTool(ctx context.Context, tool string, input map[string]any, server string) (string, error) {
	name, cfg, err := a.resolveServer(server)
	if err != nil {
		return "", err
	}

	sess, err := a.dialer.Dial(ctx, name, cfg)
	if err != nil {
		return "", err
	}
	defer sess.Close() //nolint:errcheck

	a.logger.Debug("agent.tool.dispatch", "agent", a.name, "server", name, "tool", tool)
	return sess.CallTool(ctx, tool, input)
}

// ListTools returns the tool catalog advertised by the named server, or the
// active server when server is empty.
func (a *BaseAgent) ListTools(ctx context.Context, server string) ([]mcp.ToolDescriptor, error) {
	name, cfg, err := a.resolveServer(server)
	if err != nil {
		return nil, err
	}

	sess, err := a.dialer.Dial(ctx, name, cfg)
	if err != nil {
		return nil, err
	}
	defer sess.Close() //nolint:errcheck

	return sess.ListTools(ctx)
}

// Info returns a snapshot of the agent: name, backend provider, active
// server ("" = none) and the sorted registered server names. No side effects.
func (a *BaseAgent) Info() Info {
	a.mu.Lock()
	defer a.mu.Unlock()

	names := make([]string, 0, len(a.servers))
	for name := range a.servers {
		names = append(names, name)
	}
	slices.Sort(names)

	provider := ""
	if a.backend != nil {
		provider = a.backend.Info().Provider
	}

	return Info{
		Name:         a.name,
		Provider:     provider,
		ActiveServer: a.active,
		Servers:      names,
	}
}

// Backend delegation.

// Query forwards to the injected backend, prepending the resolved
// instruction text when the request carries none. ErrNoBackend surfaces
// through the error channel when the agent has no backend.
func (a *BaseAgent) Query(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	if a.backend == nil {
		return closedResponses(ErrNoBackend)
	}
	if req.Instructions == "" {
		instructions, err := a.ResolveInstructions()
		if err != nil {
			return closedResponses(err)
		}
		req.Instructions = instructions
	}
	return a.backend.Query(ctx, req)
}

// CountTokens forwards to the injected backend's tokenizer.
func (a *BaseAgent) CountTokens(ctx context.Context, text string) (int, error) {
	if a.backend == nil {
		return 0, ErrNoBackend
	}
	return a.backend.CountTokens(ctx, text)
}

func closedResponses(err error) (<-chan model.Response, <-chan error) {
	respCh := make(chan model.Response)
	close(respCh)
	errCh := make(chan error, 1)
	errCh <- err
	close(errCh)
	return respCh, errCh
}
