// Package toolmesh provides a high-level façade over the agent core and its
// collaborators (model backends, MCP tool servers, logging). Most
// applications interact with this package by:
//  1. Creating an agent via New() with a backend and optional server configs
//  2. Managing tool servers (AddServer / RemoveServer / SetActive)
//  3. Querying the model and dispatching tool calls (Query, ExecuteTool)
//
// The façade delegates everything to agent.BaseAgent while keeping setup
// ergonomics concise. Defaults are safe for local development: no backend
// (queries report the capability as absent), no servers, silent logger.
package toolmesh

import (
	"github.com/toolmesh/toolmesh/agent"
	"github.com/toolmesh/toolmesh/logging"
	"github.com/toolmesh/toolmesh/mcp"
	"github.com/toolmesh/toolmesh/model"
)

// Options configures the agent built by New.
type Options struct {
	// Instructions is the agent's static instruction text (system prompt).
	// It may contain {{ }} template variables resolved against Config.
	Instructions string

	// Config is an opaque bag of backend-specific parameters.
	Config map[string]any

	// Servers seeds the MCP server registry.
	Servers map[string]mcp.ServerConfig

	// Backend supplies query and token-counting capabilities.
	Backend model.Backend

	// Logger defaults to a no-op logger if nil.
	Logger logging.Logger
}

// New creates an agent with the given name and options.
func New(name string, optFns ...func(o *Options)) *agent.BaseAgent {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	agentOpts := []func(o *agent.Options){
		agent.WithConfig(opts.Config),
		agent.WithLogger(opts.Logger),
	}
	if opts.Instructions != "" {
		agentOpts = append(agentOpts, agent.WithInstruction(agent.NewInstructionFromText(opts.Instructions)))
	}
	if opts.Servers != nil {
		agentOpts = append(agentOpts, agent.WithServers(opts.Servers))
	}
	if opts.Backend != nil {
		agentOpts = append(agentOpts, agent.WithBackend(opts.Backend))
	}

	return agent.New(name, agentOpts...)
}
