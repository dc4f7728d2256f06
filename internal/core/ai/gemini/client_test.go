package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"recipe-finder/internal/core/ai/provider"
)

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "  {\"max_time\": "},
				{Text: "20}\n"},
			}}},
			{Content: nil},
			nil,
		},
	}

	assert.Equal(t, `{"max_time": 20}`, responseText(resp))
	assert.Equal(t, "", responseText(nil))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{}))
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), provider.Config{})
	assert.Error(t, err)
}

func TestNewClientDefaultModel(t *testing.T) {
	c, err := NewClient(context.Background(), provider.Config{APIKey: "test-key"})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, DefaultModel, c.Model())
	var _ provider.Provider = c
}
