package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient(&Config{Provider: "anthropic", APIKey: "k"})
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = NewClient(&Config{Provider: "anthropic"})
	assert.Error(t, err)

	_, err = NewClient(&Config{Provider: "gemini", APIKey: "k"})
	assert.EqualError(t, err, "unsupported LLM provider: gemini")
}
