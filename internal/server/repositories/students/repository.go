package students

import (
	"context"

	"github.com/dmitrijs2005/moodjournal/internal/server/models"
)

type Repository interface {
	EnsureClass(ctx context.Context, classID string) error
	UpsertMembership(ctx context.Context, student *models.Student) error
	SelectClassStudents(ctx context.Context, classID string) ([]*models.Student, error)
}
