package reports

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	sc "github.com/dmitrijs2005/moodjournal/internal/server/config"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	entries []*models.Entry
	err     error
}

func (f *fakeLister) ListClassEntries(ctx context.Context, classID string) ([]*models.Entry, error) {
	return f.entries, f.err
}

func TestBuildCSV(t *testing.T) {
	body, err := buildCSV([]*models.Entry{
		{StudentID: "s1", Date: "2024-01-02", Emotion: models.EmotionPositive, Score: 0.91, Text: "a \"quoted\" day", Suggestion: "sug"},
		{StudentID: "s2", Date: "2024-01-03", Emotion: models.EmotionNegative, Score: 0.5, Text: "line\nbreak", Suggestion: "sug2"},
	})
	require.NoError(t, err)

	s := string(body)
	require.True(t, strings.HasPrefix(s, "student_id,date,emotion,score,text,suggestion\n"))
	require.Contains(t, s, "s1,2024-01-02,positive,0.91")
	require.Contains(t, s, `"a ""quoted"" day"`)
	require.Contains(t, s, "\"line\nbreak\"")
}

func TestBuildCSV_Empty(t *testing.T) {
	body, err := buildCSV(nil)
	require.NoError(t, err)
	require.Equal(t, "student_id,date,emotion,score,text,suggestion\n", string(body))
}

func TestExport_ListerErrorPropagates(t *testing.T) {
	svc := NewService(&fakeLister{err: common.ErrClassNotFound}, &sc.Config{})

	_, err := svc.Export(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrClassNotFound)
}

func TestStorageKey_Shape(t *testing.T) {
	key := storageKey("9A")
	require.True(t, strings.HasPrefix(key, "classes/9A/"))
	require.True(t, strings.HasSuffix(key, ".csv"))
}
