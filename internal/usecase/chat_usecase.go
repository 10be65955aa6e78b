package usecase

import (
	"context"

	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/internal/prompt"
)

type chatUsecase struct {
	suggestionRepo domain.SuggestionRepository
	model          domain.ModelClient
}

func NewChatUsecase(suggestionRepo domain.SuggestionRepository, model domain.ModelClient) domain.ChatUsecase {
	return &chatUsecase{suggestionRepo: suggestionRepo, model: model}
}

// PostChatTurn persists the utterance before the model is consulted,
// so a collaborator failure loses the reply but never the question.
// The dangling user message simply becomes part of the reconstructed
// context on the next turn.
func (u *chatUsecase) PostChatTurn(ctx context.Context, projectID, utterance string) (*domain.ChatMessage, error) {
	project, err := u.suggestionRepo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	history, err := u.suggestionRepo.ListMessages(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if _, err := u.suggestionRepo.AppendMessage(ctx, projectID, domain.SenderUser, utterance); err != nil {
		return nil, err
	}

	reply, err := u.model.Chat(ctx, prompt.BuildChat(project, history, utterance))
	if err != nil {
		return nil, err
	}

	return u.suggestionRepo.AppendMessage(ctx, projectID, domain.SenderAssistant, reply)
}

func (u *chatUsecase) GetChatHistory(ctx context.Context, projectID string) ([]domain.ChatMessage, error) {
	if _, err := u.suggestionRepo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	return u.suggestionRepo.ListMessages(ctx, projectID)
}
