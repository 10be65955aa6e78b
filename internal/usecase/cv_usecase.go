package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/internal/normalizer"
	"github.com/Hadi891/CareerCompass/internal/prompt"
	"github.com/Hadi891/CareerCompass/pkg/apperror"
	"github.com/Hadi891/CareerCompass/pkg/logger"
	"github.com/Hadi891/CareerCompass/pkg/security"
)

type cvUsecase struct {
	cvRepo        domain.CVRepository
	userRepo      domain.UserRepository
	extractor     domain.DocumentExtractor
	model         domain.ModelClient
	suggestionSvc domain.SuggestionService
	enrichmentSvc domain.EnrichmentService
	uploadDir     string
	log           *slog.Logger
}

func NewCVUsecase(
	cvRepo domain.CVRepository,
	userRepo domain.UserRepository,
	extractor domain.DocumentExtractor,
	model domain.ModelClient,
	suggestionSvc domain.SuggestionService,
	enrichmentSvc domain.EnrichmentService,
	uploadDir string,
) domain.CVUsecase {
	return &cvUsecase{
		cvRepo:        cvRepo,
		userRepo:      userRepo,
		extractor:     extractor,
		model:         model,
		suggestionSvc: suggestionSvc,
		enrichmentSvc: enrichmentSvc,
		uploadDir:     uploadDir,
		log:           logger.With("cv_usecase"),
	}
}

// IngestCV runs the full pipeline: validate, extract, parse, persist,
// generate suggestions, enrich with courses. The snapshot row is
// created mid-pipeline; any later stage failure deletes it again so a
// failed upload never dethrones the user's previous CV.
func (u *cvUsecase) IngestCV(ctx context.Context, userID, filename string, document []byte) (*domain.CVSnapshot, error) {
	if v := security.ValidateFile(filename, document, http.DetectContentType(document)); !v.Valid {
		return nil, apperror.BadRequest(v.Error)
	}

	path, err := u.saveUpload(userID, filename, document)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	extraction, err := u.extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	reply, err := u.model.Complete(ctx, prompt.BuildParse(extraction.Text, extraction.Links))
	if err != nil {
		return nil, err
	}

	parsed, err := normalizer.Normalize(reply)
	if err != nil {
		return nil, err
	}

	cvID, err := u.cvRepo.CreateSnapshot(ctx, userID, filename, parsed)
	if err != nil {
		return nil, err
	}

	if err := u.finishIngest(ctx, userID, cvID, parsed); err != nil {
		// Roll the new CV back so the previous snapshot stays current.
		if delErr := u.cvRepo.Delete(ctx, cvID); delErr != nil {
			u.log.Error("failed to roll back cv after ingest failure",
				"cv_id", cvID, "error", delErr)
		}
		return nil, err
	}

	return u.cvRepo.GetLatestByUser(ctx, userID)
}

func (u *cvUsecase) finishIngest(ctx context.Context, userID, cvID string, parsed *domain.ParsedCV) error {
	if err := u.suggestionSvc.GenerateForCV(ctx, cvID, parsed.Domain, parsed.Skills); err != nil {
		return err
	}
	if err := u.enrichmentSvc.EnrichCV(ctx, cvID, parsed.MissingSkills); err != nil {
		return err
	}
	if err := u.userRepo.SetDomain(ctx, userID, parsed.Domain); err != nil {
		return err
	}
	return u.userRepo.SetUploaded(ctx, userID)
}

func (u *cvUsecase) GetCVSnapshot(ctx context.Context, userID string) (*domain.CVSnapshot, error) {
	return u.cvRepo.GetLatestByUser(ctx, userID)
}

func (u *cvUsecase) saveUpload(userID, filename string, document []byte) (string, error) {
	dir := filepath.Join(u.uploadDir, userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	// Prefix with a fresh id so re-uploads of the same filename never clobber.
	path := filepath.Join(dir, uuid.NewString()+"_"+filepath.Base(filename))
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return path, nil
}
