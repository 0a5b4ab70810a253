package model

import "github.com/toolmesh/toolmesh/mcp"

// ToolDefinitionsFromMCP converts a server-advertised tool catalog into the
// tool definitions a backend expects, so remote MCP tools can be offered to
// the model in a query.
func ToolDefinitionsFromMCP(descriptors []mcp.ToolDescriptor) []ToolDefinition {
	defs := make([]ToolDefinition, len(descriptors))
	for i, d := range descriptors {
		defs[i] = ToolDefinition{
			Type: "function",
			Function: FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.InputSchema,
			},
		}
	}
	return defs
}
