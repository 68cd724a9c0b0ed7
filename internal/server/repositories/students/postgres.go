// Package students provides the PostgreSQL-backed repository for class
// records and student memberships, including the denormalized last_entry
// projection.
package students

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/moodjournal/internal/dbx"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
)

// PostgresRepository implements membership storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureClass creates the class record if it does not exist yet. Classes
// come into existence on the first submission naming them and are never
// removed.
func (r *PostgresRepository) EnsureClass(ctx context.Context, classID string) error {
	query := `INSERT INTO classes (id) VALUES ($1) ON CONFLICT (id) DO NOTHING;`
	if _, err := r.db.ExecContext(ctx, query, classID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// UpsertMembership creates the membership row if needed and overwrites
// last_entry unconditionally. The overwrite is last-write-wins by design,
// not max-by-date: a backdated submission still replaces the projection.
func (r *PostgresRepository) UpsertMembership(ctx context.Context, student *models.Student) error {
	var lastEntry any
	if student.LastEntry != nil {
		b, err := json.Marshal(student.LastEntry)
		if err != nil {
			return fmt.Errorf("marshal last_entry: %w", err)
		}
		lastEntry = b
	}

	query := `
		INSERT INTO class_students (class_id, student_id, last_entry)
		VALUES ($1, $2, $3)
		ON CONFLICT (class_id, student_id)
		DO UPDATE SET
			last_entry = EXCLUDED.last_entry,
			updated_at = now();
	`
	if _, err := r.db.ExecContext(ctx, query, student.ClassID, student.StudentID, lastEntry); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SelectClassStudents returns the memberships of a class ordered by
// student_id, which keeps every downstream enumeration (listing, stats,
// at-risk scan) deterministic. An empty result means the class is unknown
// or has no students; the caller decides how to surface that.
func (r *PostgresRepository) SelectClassStudents(ctx context.Context, classID string) ([]*models.Student, error) {
	query := `
		SELECT class_id, student_id, last_entry
		FROM class_students
		WHERE class_id = $1
		ORDER BY student_id
	`
	rows, err := r.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to select class students: %w", err)
	}
	defer rows.Close()

	var result []*models.Student
	for rows.Next() {
		var item models.Student
		var lastEntry []byte
		if err := rows.Scan(&item.ClassID, &item.StudentID, &lastEntry); err != nil {
			return nil, err
		}
		if len(lastEntry) > 0 {
			le := &models.LastEntry{}
			if err := json.Unmarshal(lastEntry, le); err != nil {
				return nil, fmt.Errorf("unmarshal last_entry: %w", err)
			}
			item.LastEntry = le
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
