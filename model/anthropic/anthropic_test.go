package anthropic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolmesh/toolmesh/model"
)

func TestBuildParamsTemperature(t *testing.T) {
	b := New()

	// Default applies when the request carries no temperature.
	params := b.buildParams(model.Request{
		Messages: []model.Message{{Role: "user", Content: "hi"}},
	})
	assert.InDelta(t, 0.7, params.Temperature.Value, 1e-9)

	// An explicit zero means deterministic sampling, not "unset".
	params = b.buildParams(model.Request{
		Messages:    []model.Message{{Role: "user", Content: "hi"}},
		Temperature: model.Float(0),
	})
	assert.Zero(t, params.Temperature.Value)
}

func TestBuildParamsSystemBlocks(t *testing.T) {
	b := New()

	params := b.buildParams(model.Request{
		Instructions: "Be terse.",
		Messages: []model.Message{
			{Role: "system", Content: "Never apologize."},
			{Role: "user", Content: "hi"},
		},
	})

	require.Len(t, params.System, 2)
	assert.Equal(t, "Be terse.", params.System[0].Text)
	assert.Equal(t, "Never apologize.", params.System[1].Text)
	require.Len(t, params.Messages, 1)
}

func TestCountTokensEmpty(t *testing.T) {
	b := New()

	count, err := b.CountTokens(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, count)
}
