package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hadi891/CareerCompass/internal/domain"
	"github.com/Hadi891/CareerCompass/pkg/logger"
)

type enrichmentUsecase struct {
	searcher   domain.CourseSearcher
	courseRepo domain.CourseRepository
	delay      time.Duration
	log        *slog.Logger
}

func NewEnrichmentUsecase(searcher domain.CourseSearcher, courseRepo domain.CourseRepository, delay time.Duration) domain.EnrichmentService {
	return &enrichmentUsecase{
		searcher:   searcher,
		courseRepo: courseRepo,
		delay:      delay,
		log:        logger.With("enrichment"),
	}
}

// EnrichCV queries the catalog per missing skill per level and replaces
// the CV's recommendation set with whatever came back. A failed or
// empty query costs only its own results; the pipeline never stops for
// the catalog. Duplicate courses across levels are kept as returned.
func (u *enrichmentUsecase) EnrichCV(ctx context.Context, cvID string, missingSkills []string) error {
	var courses []domain.Course

	for _, skill := range missingSkills {
		for _, level := range domain.CourseLevels() {
			results, err := u.searcher.SearchCourses(ctx, skill, level)
			if err != nil {
				u.log.Warn("course search failed, skipping",
					"skill", skill, "level", level, "error", err)
			}
			for _, r := range results {
				courses = append(courses, domain.Course{
					Skill:       skill,
					Level:       level,
					Title:       r.Title,
					URL:         r.URL,
					Description: r.Description,
					Rating:      r.Rating,
					Duration:    r.Duration,
				})
			}
			if err := u.pause(ctx); err != nil {
				return err
			}
		}
	}

	// An empty set still replaces: stale recommendations never outlive
	// the CV they were computed for.
	return u.courseRepo.ReplaceForCV(ctx, cvID, courses)
}

// pause spaces catalog queries out so the scraper stays polite.
func (u *enrichmentUsecase) pause(ctx context.Context) error {
	if u.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(u.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
