package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hadi891/CareerCompass/internal/domain"
)

type courseRepo struct {
	db *pgxpool.Pool
}

func NewCourseRepository(db *pgxpool.Pool) domain.CourseRepository {
	return &courseRepo{db: db}
}

// ReplaceForCV swaps the CV's recommendation set atomically: readers
// never observe a mix of old and new rows.
func (r *courseRepo) ReplaceForCV(ctx context.Context, cvID string, courses []domain.Course) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin course replace tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM courses WHERE cv_id = $1`, cvID); err != nil {
		return fmt.Errorf("clear courses: %w", err)
	}

	for _, c := range courses {
		_, err := tx.Exec(ctx,
			`INSERT INTO courses (cv_id, skill, level, title, url, description, rating, duration)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			cvID, c.Skill, c.Level, c.Title, c.URL, c.Description, c.Rating, c.Duration)
		if err != nil {
			return fmt.Errorf("insert course: %w", err)
		}
	}

	return tx.Commit(ctx)
}
