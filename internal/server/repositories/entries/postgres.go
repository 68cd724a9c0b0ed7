// Package entries provides the PostgreSQL-backed repository for journal
// entry documents, keyed by (student_id, entry_date).
package entries

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/moodjournal/internal/dbx"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert writes an entry keyed by (student_id, entry_date) with
// last-write-wins semantics: a second submission for the same date
// overwrites everything but the row identity and created_at.
func (r *PostgresRepository) Upsert(ctx context.Context, entry *models.Entry) error {
	query := `
		INSERT INTO entries (id, student_id, entry_date, entry_text, emotion, score, suggestion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id, entry_date)
		DO UPDATE SET
			entry_text = EXCLUDED.entry_text,
			emotion = EXCLUDED.emotion,
			score = EXCLUDED.score,
			suggestion = EXCLUDED.suggestion,
			updated_at = now();
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.StudentID, entry.Date, entry.Text, entry.Emotion, entry.Score, entry.Suggestion)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SelectByStudent returns all entries for a student ordered by the stored
// date string. The string ordering is only a stable enumeration order;
// chronological ordering is the engine's job, since stored dates may be in
// either accepted format.
func (r *PostgresRepository) SelectByStudent(ctx context.Context, studentID string) ([]*models.Entry, error) {
	query := `
		SELECT id, student_id, entry_date, entry_text, emotion, score, suggestion, created_at, updated_at
		FROM entries
		WHERE student_id = $1
		ORDER BY entry_date
	`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		var item models.Entry
		if err := rows.Scan(
			&item.ID, &item.StudentID, &item.Date, &item.Text, &item.Emotion, &item.Score, &item.Suggestion,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
