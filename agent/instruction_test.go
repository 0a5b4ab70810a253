package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionStatic(t *testing.T) {
	inst := NewInstructionFromText("You are a helpful assistant.")

	assert.True(t, inst.IsStatic())

	text, err := inst.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "You are a helpful assistant.", text)
}

func TestInstructionTemplate(t *testing.T) {
	inst := NewInstructionFromText("Answer in {{.language}}, {{.style}} style.")

	text, err := inst.Resolve(map[string]any{"language": "French", "style": "formal"})
	require.NoError(t, err)
	assert.Equal(t, "Answer in French, formal style.", text)
}

func TestInstructionProvider(t *testing.T) {
	inst := NewInstructionFromFunc(func(config map[string]any) (string, error) {
		return "dynamic: " + config["mode"].(string), nil
	})

	assert.False(t, inst.IsStatic())

	text, err := inst.Resolve(map[string]any{"mode": "debug"})
	require.NoError(t, err)
	assert.Equal(t, "dynamic: debug", text)
}

func TestConfigErrorMessages(t *testing.T) {
	assert.Equal(t, "agent: no active server", (&ConfigError{Reason: "no active server"}).Error())
	assert.Equal(t, `agent: server "calc": not found in registry`, (&ConfigError{Server: "calc", Reason: "not found in registry"}).Error())
}
