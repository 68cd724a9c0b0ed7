package entries

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var upsertRe = regexp.MustCompile(`INSERT INTO entries .* ON CONFLICT \(student_id, entry_date\)\s+DO UPDATE SET`)

func TestUpsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(upsertRe.String()).
		WithArgs("e1", "s1", "2024-01-02", "feeling great", models.EmotionPositive, 0.91, "Try solving a hard exercise.").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &models.Entry{
		ID:         "e1",
		StudentID:  "s1",
		Date:       "2024-01-02",
		Text:       "feeling great",
		Emotion:    models.EmotionPositive,
		Score:      0.91,
		Suggestion: "Try solving a hard exercise.",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(upsertRe.String()).
		WillReturnError(errors.New("db is down"))

	err := repo.Upsert(context.Background(), &models.Entry{ID: "e1", StudentID: "s1", Date: "2024-01-02"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "db error")
}

func TestSelectByStudent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cols := []string{"id", "student_id", "entry_date", "entry_text", "emotion", "score", "suggestion", "created_at", "updated_at"}
	now := time.Now()

	rows := sqlmock.NewRows(cols).
		AddRow("e1", "s1", "2024-01-02", "good", "positive", 0.9, "sug1", now, now).
		AddRow("e2", "s1", "2024-01-03", "bad", "negative", 0.8, "sug2", now, now)

	mock.ExpectQuery(`SELECT .* FROM entries\s+WHERE student_id = \$1\s+ORDER BY entry_date`).
		WithArgs("s1").
		WillReturnRows(rows)

	got, err := repo.SelectByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2024-01-02", got[0].Date)
	require.Equal(t, models.EmotionNegative, got[1].Emotion)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectByStudent_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cols := []string{"id", "student_id", "entry_date", "entry_text", "emotion", "score", "suggestion", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT .* FROM entries`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.SelectByStudent(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, got)
}
