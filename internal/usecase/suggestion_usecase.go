package usecase

import (
	"context"

	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/internal/normalizer"
	"github.com/Hadi891/CareerCompass/internal/prompt"
)

type suggestionUsecase struct {
	model          domain.ModelClient
	suggestionRepo domain.SuggestionRepository
}

func NewSuggestionUsecase(model domain.ModelClient, suggestionRepo domain.SuggestionRepository) domain.SuggestionService {
	return &suggestionUsecase{model: model, suggestionRepo: suggestionRepo}
}

// GenerateForCV asks the model for a fresh batch of project ideas and
// swaps it in atomically. A reply violating the batch shape fails the
// whole operation; there is no partial acceptance.
func (u *suggestionUsecase) GenerateForCV(ctx context.Context, cvID, domainName string, skills []string) error {
	reply, err := u.model.Complete(ctx, prompt.BuildSuggestions(domainName, skills))
	if err != nil {
		return err
	}

	projects, err := normalizer.NormalizeSuggestions(reply)
	if err != nil {
		return err
	}

	return u.suggestionRepo.ReplaceForCV(ctx, cvID, projects)
}
