package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	resp   *genai.GenerateContentResponse
	err    error
	prompt string
}

func (s *stubModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) > 0 {
		if txt, ok := parts[0].(genai.Text); ok {
			s.prompt = string(txt)
		}
	}
	return s.resp, s.err
}

func response(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestGeminiClient_Generate_ConcatenatesTextParts(t *testing.T) {
	m := &stubModel{resp: response(genai.Text("```json\n{\"story\":"), genai.Text("\"x\"}\n```"))}
	c := &GeminiClient{model: m}

	out, err := c.Generate(context.Background(), "tell me")
	require.NoError(t, err)
	assert.Equal(t, `{"story":"x"}`, out)
	assert.Equal(t, "tell me", m.prompt)
}

func TestGeminiClient_Generate_Empty(t *testing.T) {
	c := &GeminiClient{model: &stubModel{resp: &genai.GenerateContentResponse{}}}
	_, err := c.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiClient_Generate_WrapsError(t *testing.T) {
	boom := errors.New("quota")
	c := &GeminiClient{model: &stubModel{err: boom}}
	_, err := c.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, boom)
}

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\nplain\n```":         "plain",
		"  no fences  ":           "no fences",
		"```text story?```":       "story?",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripFences(in), in)
	}
}
