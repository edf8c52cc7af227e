package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildTrialPrompt(t *testing.T) {
	p := BuildTrialPrompt(2, "Dominance")
	assert.Contains(t, p, "Trial 2.")
	assert.Contains(t, p, "Theme (hidden from seeker): Dominance.")
	assert.Contains(t, p, `"story"`)
	assert.Contains(t, p, `"riddle"`)
}

func TestBuildJudgePrompt(t *testing.T) {
	p := BuildJudgePrompt(JudgeInput{
		Chapter:  1,
		Theme:    "Curiosity and Anger",
		Required: []string{"curiosity", "anger"},
		Known:    []string{"curiosity", "anger", "peace"},
		Riddle:   "What drives you?",
		Answer:   "I want to know",
	})
	assert.Contains(t, p, "required_keys: curiosity, anger\n")
	assert.Contains(t, p, "riddle: \"What drives you?\"")
	assert.Contains(t, p, "answer: \"I want to know\"")
	assert.Contains(t, p, "use only: curiosity, anger, peace")
	assert.False(t, strings.Contains(p, "story:"), "empty story should be omitted")
}
