package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"github.com/Hadi891/CareerCompass/internal/domain"
)

type suggestionRepo struct {
	db *pgxpool.Pool
}

func NewSuggestionRepository(db *pgxpool.Pool) domain.SuggestionRepository {
	return &suggestionRepo{db: db}
}

// ReplaceForCV swaps the suggestion batch atomically. Chat threads
// attached to the outgoing projects cascade away with them.
func (r *suggestionRepo) ReplaceForCV(ctx context.Context, cvID string, projects []domain.SuggestedProject) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin suggestion replace tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM suggested_projects WHERE cv_id = $1`, cvID); err != nil {
		return fmt.Errorf("clear suggestions: %w", err)
	}

	now := time.Now().UTC()
	for _, p := range projects {
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO suggested_projects (id, cv_id, name, description, tools, difficulty, tasks, created_at)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, cvID, p.Name, p.Description, pq.Array(p.Tools), p.Difficulty, pq.Array(p.Tasks), now)
		if err != nil {
			return fmt.Errorf("insert suggestion: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *suggestionRepo) GetProject(ctx context.Context, projectID string) (*domain.SuggestedProject, error) {
	var p domain.SuggestedProject
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, tools, difficulty, tasks
         FROM suggested_projects WHERE id = $1`, projectID).
		Scan(&p.ID, &p.Name, &p.Description, pq.Array(&p.Tools), &p.Difficulty, pq.Array(&p.Tasks))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *suggestionRepo) AppendMessage(ctx context.Context, projectID, sender, content string) (*domain.ChatMessage, error) {
	msg := domain.ChatMessage{
		ProjectID: projectID,
		Sender:    sender,
		Content:   content,
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO chat_messages (project_id, sender, content)
         VALUES ($1, $2, $3) RETURNING id, timestamp`,
		projectID, sender, content).
		Scan(&msg.ID, &msg.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("append chat message: %w", err)
	}
	return &msg, nil
}

func (r *suggestionRepo) ListMessages(ctx context.Context, projectID string) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, sender, content, timestamp
         FROM chat_messages WHERE project_id = $1 ORDER BY timestamp, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch chat messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Sender, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
