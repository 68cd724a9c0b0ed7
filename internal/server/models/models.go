// Package models defines the persisted records of the journal service.
package models

import "time"

// Emotion is a canonical classification bucket. Nothing outside this set
// is ever persisted; the classifier's native labels are normalized before
// they reach storage.
type Emotion string

const (
	EmotionPositive Emotion = "positive"
	EmotionNeutral  Emotion = "neutral"
	EmotionNegative Emotion = "negative"
)

// Emotions lists the canonical categories in display order.
var Emotions = []Emotion{EmotionPositive, EmotionNeutral, EmotionNegative}

func (e Emotion) Valid() bool {
	switch e {
	case EmotionPositive, EmotionNeutral, EmotionNegative:
		return true
	}
	return false
}

// Entry is one classified journal submission. Within a student's history
// it is keyed by the raw date string: a second submission with the same
// date string overwrites the first (last-write-wins).
type Entry struct {
	ID         string    `json:"-"`
	StudentID  string    `json:"student_id"`
	Date       string    `json:"date"`
	Text       string    `json:"text"`
	Emotion    Emotion   `json:"emotion"`
	Score      float64   `json:"score"`
	Suggestion string    `json:"suggestion"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// LastEntry is the denormalized projection of a student's most recently
// written entry. It is overwritten on every submission regardless of the
// submitted date's chronology, and never recomputed on reads, so it can
// lag behind the true max-date entry after a backdated write.
type LastEntry struct {
	Date       string  `json:"date"`
	Text       string  `json:"text"`
	Emotion    Emotion `json:"emotion"`
	Score      float64 `json:"score"`
	Suggestion string  `json:"suggestion"`
}

// LastEntryOf builds the denormalized projection from a full entry.
func LastEntryOf(e *Entry) LastEntry {
	return LastEntry{
		Date:       e.Date,
		Text:       e.Text,
		Emotion:    e.Emotion,
		Score:      e.Score,
		Suggestion: e.Suggestion,
	}
}

// Student is a class membership record plus the last_entry projection.
// Memberships are created lazily on first submission and never removed.
type Student struct {
	ClassID   string     `json:"class_id"`
	StudentID string     `json:"student_id"`
	LastEntry *LastEntry `json:"last_entry,omitempty"`
}
