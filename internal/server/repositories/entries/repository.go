package entries

import (
	"context"

	"github.com/dmitrijs2005/moodjournal/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, entry *models.Entry) error
	SelectByStudent(ctx context.Context, studentID string) ([]*models.Entry, error)
}
