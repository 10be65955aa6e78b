package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/Hadi891/CareerCompass/internal/domain"
)

type cvRepo struct {
	db *pgxpool.Pool
}

func NewCVRepository(db *pgxpool.Pool) domain.CVRepository {
	return &cvRepo{db: db}
}

// CreateSnapshot persists the CV header and every extracted child
// collection in a single transaction. A failure anywhere leaves no
// trace of the new CV.
func (r *cvRepo) CreateSnapshot(ctx context.Context, userID, filename string, parsed *domain.ParsedCV) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx)

	cvID := uuid.NewString()
	_, err = tx.Exec(ctx,
		`INSERT INTO cvs (id, user_id, filename, created_at) VALUES ($1, $2, $3, $4)`,
		cvID, userID, filename, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("insert cv header: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO cv_meta (cv_id, name, email, phone, bio, linkedin, github)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		cvID, parsed.Meta.Name, parsed.Meta.Email, parsed.Meta.Phone,
		parsed.Meta.Bio, parsed.Meta.LinkedIn, parsed.Meta.GitHub)
	if err != nil {
		return "", fmt.Errorf("insert cv meta: %w", err)
	}

	for _, e := range parsed.Education {
		_, err = tx.Exec(ctx,
			`INSERT INTO educations (cv_id, degree, university, location, gpa, description, start_date, end_date)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			cvID, e.Degree, e.University, e.Location, e.GPA, e.Description, e.StartDate, e.EndDate)
		if err != nil {
			return "", fmt.Errorf("insert education: %w", err)
		}
	}

	for _, e := range parsed.Experience {
		_, err = tx.Exec(ctx,
			`INSERT INTO experiences (cv_id, role, company, location, date, description)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			cvID, e.Role, e.Company, e.Location, e.Date, e.Description)
		if err != nil {
			return "", fmt.Errorf("insert experience: %w", err)
		}
	}

	for _, skill := range parsed.Skills {
		_, err = tx.Exec(ctx,
			`INSERT INTO skills (cv_id, name) VALUES ($1, $2)`, cvID, skill)
		if err != nil {
			return "", fmt.Errorf("insert skill: %w", err)
		}
	}

	for _, p := range parsed.Projects {
		var tools *string
		if len(p.Tools) > 0 {
			joined := strings.Join(p.Tools, ",")
			tools = &joined
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO projects (cv_id, name, tools, description, links)
             VALUES ($1, $2, $3, $4, $5)`,
			cvID, p.Name, tools, p.Description, pq.Array(p.Links))
		if err != nil {
			return "", fmt.Errorf("insert project: %w", err)
		}
	}

	for _, skill := range parsed.MissingSkills {
		_, err = tx.Exec(ctx,
			`INSERT INTO missing_skills (cv_id, name) VALUES ($1, $2)
             ON CONFLICT (cv_id, name) DO NOTHING`, cvID, skill)
		if err != nil {
			return "", fmt.Errorf("insert missing skill: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit snapshot tx: %w", err)
	}
	return cvID, nil
}

// Delete removes the CV header; every child collection, including
// suggestion chat threads, cascades away with it.
func (r *cvRepo) Delete(ctx context.Context, cvID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, cvID)
	return err
}

func (r *cvRepo) GetLatestByUser(ctx context.Context, userID string) (*domain.CVSnapshot, error) {
	var snap domain.CVSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, filename, created_at FROM cvs
         WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, userID).
		Scan(&snap.ID, &snap.Filename, &snap.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT name, email, phone, bio, linkedin, github FROM cv_meta WHERE cv_id = $1`, snap.ID).
		Scan(&snap.Meta.Name, &snap.Meta.Email, &snap.Meta.Phone,
			&snap.Meta.Bio, &snap.Meta.LinkedIn, &snap.Meta.GitHub)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("fetch cv meta: %w", err)
	}

	if err := r.loadEducation(ctx, &snap); err != nil {
		return nil, err
	}
	if err := r.loadExperience(ctx, &snap); err != nil {
		return nil, err
	}
	if err := r.loadSkills(ctx, &snap); err != nil {
		return nil, err
	}
	if err := r.loadProjects(ctx, &snap); err != nil {
		return nil, err
	}
	if err := r.loadCourses(ctx, &snap); err != nil {
		return nil, err
	}
	if err := r.loadSuggestions(ctx, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *cvRepo) loadEducation(ctx context.Context, snap *domain.CVSnapshot) error {
	rows, err := r.db.Query(ctx,
		`SELECT degree, university, location, gpa, description, start_date, end_date
         FROM educations WHERE cv_id = $1 ORDER BY id`, snap.ID)
	if err != nil {
		return fmt.Errorf("fetch education: %w", err)
	}
	defer rows.Close()

	snap.Education = []domain.Education{}
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.Degree, &e.University, &e.Location, &e.GPA,
			&e.Description, &e.StartDate, &e.EndDate); err != nil {
			return err
		}
		snap.Education = append(snap.Education, e)
	}
	return rows.Err()
}

func (r *cvRepo) loadExperience(ctx context.Context, snap *domain.CVSnapshot) error {
	rows, err := r.db.Query(ctx,
		`SELECT role, company, location, date, description
         FROM experiences WHERE cv_id = $1 ORDER BY id`, snap.ID)
	if err != nil {
		return fmt.Errorf("fetch experience: %w", err)
	}
	defer rows.Close()

	snap.Experience = []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.Role, &e.Company, &e.Location, &e.Date, &e.Description); err != nil {
			return err
		}
		snap.Experience = append(snap.Experience, e)
	}
	return rows.Err()
}

func (r *cvRepo) loadSkills(ctx context.Context, snap *domain.CVSnapshot) error {
	rows, err := r.db.Query(ctx,
		`SELECT name FROM skills WHERE cv_id = $1 ORDER BY id`, snap.ID)
	if err != nil {
		return fmt.Errorf("fetch skills: %w", err)
	}
	defer rows.Close()

	snap.Skills = []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		snap.Skills = append(snap.Skills, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	missing, err := r.db.Query(ctx,
		`SELECT name FROM missing_skills WHERE cv_id = $1 ORDER BY name`, snap.ID)
	if err != nil {
		return fmt.Errorf("fetch missing skills: %w", err)
	}
	defer missing.Close()

	snap.MissingSkills = []string{}
	for missing.Next() {
		var name string
		if err := missing.Scan(&name); err != nil {
			return err
		}
		snap.MissingSkills = append(snap.MissingSkills, name)
	}
	return missing.Err()
}

func (r *cvRepo) loadProjects(ctx context.Context, snap *domain.CVSnapshot) error {
	rows, err := r.db.Query(ctx,
		`SELECT name, tools, description, links
         FROM projects WHERE cv_id = $1 ORDER BY id`, snap.ID)
	if err != nil {
		return fmt.Errorf("fetch projects: %w", err)
	}
	defer rows.Close()

	snap.Projects = []domain.Project{}
	for rows.Next() {
		var p domain.Project
		var tools *string
		var links []string
		if err := rows.Scan(&p.Name, &tools, &p.Description, pq.Array(&links)); err != nil {
			return err
		}
		if tools != nil && *tools != "" {
			p.Tools = strings.Split(*tools, ",")
		} else {
			p.Tools = []string{}
		}
		p.Links = links
		if p.Links == nil {
			p.Links = []string{}
		}
		snap.Projects = append(snap.Projects, p)
	}
	return rows.Err()
}

func (r *cvRepo) loadCourses(ctx context.Context, snap *domain.CVSnapshot) error {
	rows, err := r.db.Query(ctx,
		`SELECT skill, level, title, url, description, rating, duration
         FROM courses WHERE cv_id = $1 ORDER BY id`, snap.ID)
	if err != nil {
		return fmt.Errorf("fetch courses: %w", err)
	}
	defer rows.Close()

	snap.Courses = []domain.Course{}
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.Skill, &c.Level, &c.Title, &c.URL,
			&c.Description, &c.Rating, &c.Duration); err != nil {
			return err
		}
		snap.Courses = append(snap.Courses, c)
	}
	return rows.Err()
}

func (r *cvRepo) loadSuggestions(ctx context.Context, snap *domain.CVSnapshot) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, tools, difficulty, tasks
         FROM suggested_projects WHERE cv_id = $1 ORDER BY created_at, id`, snap.ID)
	if err != nil {
		return fmt.Errorf("fetch suggestions: %w", err)
	}
	defer rows.Close()

	snap.SuggestedProjects = []domain.SuggestedProject{}
	for rows.Next() {
		var p domain.SuggestedProject
		if err := rows.Scan(&p.ID, &p.Name, &p.Description,
			pq.Array(&p.Tools), &p.Difficulty, pq.Array(&p.Tasks)); err != nil {
			return err
		}
		snap.SuggestedProjects = append(snap.SuggestedProjects, p)
	}
	return rows.Err()
}
