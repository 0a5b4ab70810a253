package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolmesh/toolmesh/mcp"
)

func TestToolDefinitionsFromMCP(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city": map[string]any{"type": "string"},
		},
		"required": []string{"city"},
	}

	defs := ToolDefinitionsFromMCP([]mcp.ToolDescriptor{
		{Name: "get_forecast", Description: "Weather forecast", InputSchema: schema},
		{Name: "get_alerts"},
	})

	require.Len(t, defs, 2)
	assert.Equal(t, "function", defs[0].Type)
	assert.Equal(t, "get_forecast", defs[0].Function.Name)
	assert.Equal(t, "Weather forecast", defs[0].Function.Description)
	assert.Equal(t, schema, defs[0].Function.Parameters)
	assert.Equal(t, "get_alerts", defs[1].Function.Name)
	assert.Nil(t, defs[1].Function.Parameters)
}

func TestToolDefinitionsFromMCPEmpty(t *testing.T) {
	assert.Empty(t, ToolDefinitionsFromMCP(nil))
}
