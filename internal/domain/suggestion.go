package domain

import (
	"context"
	"time"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// SuggestionBatchSize and the per-difficulty distribution are fixed:
// every successful generation yields 1 easy, 2 medium, 1 hard.
const (
	SuggestionBatchSize = 4
	SuggestionTaskCount = 6
)

// SuggestedProject is a generated project idea. Each carries exactly
// six ordered task strings and owns an append-only chat thread that is
// destroyed with it.
type SuggestedProject struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
	Difficulty  string   `json:"difficulty"`
	Tasks       []string `json:"tasks"`
}

type ChatMessage struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"-"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type SuggestionRepository interface {
	// ReplaceForCV deletes the prior suggestion batch (chat threads
	// cascade away with their projects) and inserts the new one
	// atomically.
	ReplaceForCV(ctx context.Context, cvID string, projects []SuggestedProject) error
	// GetProject returns ErrNotFound for unknown ids.
	GetProject(ctx context.Context, projectID string) (*SuggestedProject, error)
	// AppendMessage durably appends one message to a project's thread.
	AppendMessage(ctx context.Context, projectID, sender, content string) (*ChatMessage, error)
	// ListMessages returns the thread ordered by timestamp ascending.
	ListMessages(ctx context.Context, projectID string) ([]ChatMessage, error)
}

// SuggestionService regenerates a CV's suggestion batch from its domain
// and skill list.
type SuggestionService interface {
	GenerateForCV(ctx context.Context, cvID, domain string, skills []string) error
}

// EnrichmentService replaces a CV's course recommendation set from its
// missing skills.
type EnrichmentService interface {
	EnrichCV(ctx context.Context, cvID string, missingSkills []string) error
}

type ChatUsecase interface {
	// PostChatTurn appends the utterance, invokes the chat collaborator
	// with the fully reconstructed context, and appends the reply.
	// Collaborator failure propagates; the user message stays persisted.
	PostChatTurn(ctx context.Context, projectID, utterance string) (*ChatMessage, error)
	GetChatHistory(ctx context.Context, projectID string) ([]ChatMessage, error)
}
