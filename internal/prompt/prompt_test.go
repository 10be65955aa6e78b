package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hadi891/CareerCompass/internal/domain"
)

func TestBuildParse(t *testing.T) {
	t.Run("surfaces profile links", func(t *testing.T) {
		p := BuildParse("some resume text", []string{
			"https://example.com/portfolio",
			"https://linkedin.com/in/ada",
			"https://github.com/ada",
		})
		assert.Contains(t, p, "https://linkedin.com/in/ada")
		assert.Contains(t, p, "https://github.com/ada")
		assert.Contains(t, p, "some resume text")
	})

	t.Run("no links no profile lines", func(t *testing.T) {
		p := BuildParse("text", nil)
		assert.NotContains(t, p, "LinkedIn profile is")
		assert.NotContains(t, p, "GitHub profile is")
	})
}

func TestBuildSuggestions(t *testing.T) {
	p := BuildSuggestions("Backend Development", []string{"Go", "PostgreSQL"})
	assert.Contains(t, p, "Backend Development")
	assert.Contains(t, p, "Go, PostgreSQL")
	assert.Contains(t, p, "exactly two medium")
	assert.Contains(t, p, "JSON array")
}

func TestBuildChat(t *testing.T) {
	project := &domain.SuggestedProject{
		Name:        "URL Shortener",
		Description: "A small web service",
		Tools:       []string{"Go", "Redis"},
		Tasks:       []string{"a", "b", "c", "d", "e", "f"},
	}
	history := []domain.ChatMessage{
		{Sender: domain.SenderUser, Content: "where do I start?"},
		{Sender: domain.SenderAssistant, Content: "begin with the data model"},
	}

	p := BuildChat(project, history, "what about caching?")

	assert.Contains(t, p, "Project: URL Shortener")
	assert.Contains(t, p, "user: where do I start?")
	assert.Contains(t, p, "assistant: begin with the data model")
	assert.True(t, strings.HasSuffix(p, "user: what about caching?\nassistant:"))

	// History order is preserved in the rendered prompt.
	assert.Less(t, strings.Index(p, "where do I start?"), strings.Index(p, "begin with the data model"))
}
