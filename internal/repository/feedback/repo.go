// Package feedback persists user ratings of generated answers.
// The table is append-only; nothing in the service reads it back.
package feedback

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oic-analytics/adeidex/internal/domain"
)

// Repository appends feedback rows to Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a feedback repository on an existing pool.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the feedback table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS rag_feedback (
			id BIGSERIAL PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			rating INTEGER NOT NULL,
			feedback_text TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure feedback schema: %w", err)
	}
	return nil
}

// Append inserts one feedback row.
func (r *Repository) Append(ctx context.Context, fb domain.Feedback) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO rag_feedback (question, answer, rating, feedback_text)
		 VALUES ($1, $2, $3, $4)`,
		fb.Question, fb.Answer, fb.Rating, fb.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to append feedback: %w", err)
	}
	return nil
}
