// Package journal implements the mood journal analytics engine: recording
// classified entries and deriving the instructor-facing views (class
// listings, windowed emotion stats, at-risk streak detection).
//
// The engine is stateless and request-scoped: every operation is a single
// pass over repository data with no caching and no background work.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	"github.com/dmitrijs2005/moodjournal/internal/dates"
	"github.com/dmitrijs2005/moodjournal/internal/dbx"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/dmitrijs2005/moodjournal/internal/server/classifier"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
	"github.com/dmitrijs2005/moodjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/moodjournal/internal/server/suggestions"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// atRiskStreak is the number of consecutive negative entries (by sorted
// date) that flags a student.
const atRiskStreak = 3

// statsWindowDays is the default trailing stats window, today included.
const statsWindowDays = 7

// fetchConcurrency bounds the per-student parallel entry fetches on the
// read paths.
const fetchConcurrency = 8

// DatePolicy controls how read paths treat stored entries whose date
// string no accepted format can parse.
type DatePolicy int

const (
	// DatePolicyLenient preserves the reference behavior: windowed
	// analytics skip the record and log a warning; listings keep the
	// record, ordered before all parsable dates, with the raw stored
	// string as its date. Skipping silently undercounts; that trade-off
	// is deliberate (best-effort analytics over hard failure).
	DatePolicyLenient DatePolicy = iota

	// DatePolicyStrict aborts the whole read operation with
	// ErrUnparsableDate as soon as one stored date fails to parse.
	DatePolicyStrict
)

// timeNow is a seam for tests that pin "today".
var timeNow = dates.Today

// Service is the journal analytics engine. All collaborators are injected;
// the service holds no ambient globals.
type Service struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	clf    classifier.Classifier
	picker *suggestions.Picker
	policy DatePolicy
	logger logging.Logger
}

func NewService(
	db *sql.DB,
	repos repomanager.RepositoryManager,
	clf classifier.Classifier,
	picker *suggestions.Picker,
	policy DatePolicy,
	logger logging.Logger,
) *Service {
	return &Service{
		db:     db,
		repos:  repos,
		clf:    clf,
		picker: picker,
		policy: policy,
		logger: logger.With("module", "journal"),
	}
}

// Record classifies a submission and persists it.
//
// The entry is keyed by (student_id, raw date string): resubmitting the
// same date overwrites the previous entry. The student's last_entry
// projection is then overwritten unconditionally, even when the submitted
// date is chronologically earlier than an existing entry.
//
// The class row and the membership are written in one transaction; the
// entry itself is written first outside of it. A failure between the two
// steps leaves an entry unreachable through class listing until the
// student submits again. Storage errors are propagated, not retried.
func (s *Service) Record(ctx context.Context, studentID, classID, dateStr, text string) (*models.Entry, error) {

	if _, err := dates.Parse(dateStr); err != nil {
		return nil, err
	}

	pred, err := s.clf.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	emotion := classifier.Normalize(pred.Label)

	suggestion, err := s.picker.Pick(emotion)
	if err != nil {
		return nil, err
	}

	entry := &models.Entry{
		ID:         uuid.New().String(),
		StudentID:  studentID,
		Date:       dateStr,
		Text:       text,
		Emotion:    emotion,
		Score:      pred.Confidence(),
		Suggestion: suggestion,
	}

	if err := s.repos.Entries(s.db).Upsert(ctx, entry); err != nil {
		return nil, err
	}

	last := models.LastEntryOf(entry)
	student := &models.Student{ClassID: classID, StudentID: studentID, LastEntry: &last}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		studentsRepo := s.repos.Students(tx)
		if err := studentsRepo.EnsureClass(ctx, classID); err != nil {
			return err
		}
		return studentsRepo.UpsertMembership(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "entry recorded",
		"student_id", studentID, "class_id", classID, "date", dateStr, "emotion", emotion)

	return entry, nil
}

// ListStudentHistory returns a student's entries sorted ascending by
// parsed date. Returns ErrStudentNotFound when the student has no entries.
func (s *Service) ListStudentHistory(ctx context.Context, studentID string) ([]*models.Entry, error) {
	items, err := s.repos.Entries(s.db).SelectByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.ErrStudentNotFound
	}
	dated, err := s.resolveDates(ctx, items)
	if err != nil {
		return nil, err
	}
	return sortedEntries(dated), nil
}

// ListClassEntries returns every entry of every student in the class,
// sorted ascending by parsed date. Returns ErrClassNotFound when the
// class has no student records.
func (s *Service) ListClassEntries(ctx context.Context, classID string) ([]*models.Entry, error) {
	items, err := s.fetchClassEntries(ctx, classID)
	if err != nil {
		return nil, err
	}
	dated, err := s.resolveDates(ctx, items)
	if err != nil {
		return nil, err
	}
	return sortedEntries(dated), nil
}

// Stats is the windowed emotion distribution of a class. Counts carries
// one bucket per canonical category, zero when absent.
type Stats struct {
	ClassID string                 `json:"class_id"`
	Start   string                 `json:"start_date"`
	End     string                 `json:"end_date"`
	Counts  map[models.Emotion]int `json:"counts"`
}

// ClassStats counts in-window entries per canonical category across the
// whole class. Empty bounds default to the trailing 7-day window, today
// included. Explicit bounds must be ISO dates (ErrInvalidDateRange
// otherwise); entries with unparsable stored dates are handled per the
// service DatePolicy.
func (s *Service) ClassStats(ctx context.Context, classID, startStr, endStr string) (*Stats, error) {
	window, err := s.statsWindow(startStr, endStr)
	if err != nil {
		return nil, err
	}

	items, err := s.fetchClassEntries(ctx, classID)
	if err != nil {
		return nil, err
	}
	dated, err := s.resolveDates(ctx, items)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Emotion]int, len(models.Emotions))
	for _, e := range models.Emotions {
		counts[e] = 0
	}
	for _, de := range dated {
		if !de.ok {
			continue
		}
		if window.Contains(de.date) {
			counts[de.entry.Emotion]++
		}
	}

	return &Stats{
		ClassID: classID,
		Start:   window.Start.Format(dates.ISO),
		End:     window.End.Format(dates.ISO),
		Counts:  counts,
	}, nil
}

// AtRiskReport names the students whose in-window entries contain a run
// of at least three consecutive negative classifications.
type AtRiskReport struct {
	ClassID    string   `json:"class_id"`
	Start      string   `json:"start_date"`
	End        string   `json:"end_date"`
	StudentIDs []string `json:"at_risk_students"`
}

// AtRisk scans each student's in-window entries in date order, counting
// consecutive negative entries; the counter resets on any other category.
// A student is flagged the moment the streak reaches three, and scanning
// that student stops. Students are scanned in repository enumeration
// order (sorted by student id), so output order is deterministic.
//
// An empty start bound means "from the earliest representable date"; an
// empty end bound means today.
func (s *Service) AtRisk(ctx context.Context, classID, startStr, endStr string) (*AtRiskReport, error) {
	window, err := s.detectWindow(startStr, endStr)
	if err != nil {
		return nil, err
	}

	classStudents, err := s.repos.Students(s.db).SelectClassStudents(ctx, classID)
	if err != nil {
		return nil, err
	}
	if len(classStudents) == 0 {
		return nil, common.ErrClassNotFound
	}

	perStudent, err := s.fetchStudentEntries(ctx, classStudents)
	if err != nil {
		return nil, err
	}

	atRisk := []string{}
	for i, st := range classStudents {
		dated, err := s.resolveDates(ctx, perStudent[i])
		if err != nil {
			return nil, err
		}

		inWindow := dated[:0:0]
		for _, de := range dated {
			if de.ok && window.Contains(de.date) {
				inWindow = append(inWindow, de)
			}
		}
		sortDated(inWindow)

		streak := 0
		for _, de := range inWindow {
			if de.entry.Emotion == models.EmotionNegative {
				streak++
				if streak >= atRiskStreak {
					atRisk = append(atRisk, st.StudentID)
					break
				}
			} else {
				streak = 0
			}
		}
	}

	start := ""
	if !window.Start.IsZero() {
		start = window.Start.Format(dates.ISO)
	}
	return &AtRiskReport{
		ClassID:    classID,
		Start:      start,
		End:        window.End.Format(dates.ISO),
		StudentIDs: atRisk,
	}, nil
}

// statsWindow resolves stats bounds: both empty → trailing 7 days.
func (s *Service) statsWindow(startStr, endStr string) (dates.Window, error) {
	def := dates.LastNDays(statsWindowDays, timeNow())
	return resolveWindow(startStr, endStr, def.Start, def.End)
}

// detectWindow resolves at-risk bounds: empty start is open-ended into
// the past, empty end means today.
func (s *Service) detectWindow(startStr, endStr string) (dates.Window, error) {
	return resolveWindow(startStr, endStr, time.Time{}, timeNow())
}

func resolveWindow(startStr, endStr string, defStart, defEnd time.Time) (dates.Window, error) {
	w := dates.Window{Start: defStart, End: defEnd}
	if startStr != "" {
		d, err := dates.ParseISO(startStr)
		if err != nil {
			return dates.Window{}, fmt.Errorf("%w: start_date %q", common.ErrInvalidDateRange, startStr)
		}
		w.Start = d
	}
	if endStr != "" {
		d, err := dates.ParseISO(endStr)
		if err != nil {
			return dates.Window{}, fmt.Errorf("%w: end_date %q", common.ErrInvalidDateRange, endStr)
		}
		w.End = d
	}
	return w, nil
}

// fetchClassEntries resolves the class roster and collects all entries of
// all its students. Per-student fetches run in parallel (each student's
// data is independent and read-only); the merged result is ordered
// deterministically by the callers' sort.
func (s *Service) fetchClassEntries(ctx context.Context, classID string) ([]*models.Entry, error) {
	classStudents, err := s.repos.Students(s.db).SelectClassStudents(ctx, classID)
	if err != nil {
		return nil, err
	}
	if len(classStudents) == 0 {
		return nil, common.ErrClassNotFound
	}

	perStudent, err := s.fetchStudentEntries(ctx, classStudents)
	if err != nil {
		return nil, err
	}

	var merged []*models.Entry
	for _, items := range perStudent {
		merged = append(merged, items...)
	}
	return merged, nil
}

// fetchStudentEntries fans out one entries query per student, preserving
// roster order in the result.
func (s *Service) fetchStudentEntries(ctx context.Context, classStudents []*models.Student) ([][]*models.Entry, error) {
	repo := s.repos.Entries(s.db)
	perStudent := make([][]*models.Entry, len(classStudents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, st := range classStudents {
		g.Go(func() error {
			items, err := repo.SelectByStudent(gctx, st.StudentID)
			if err != nil {
				return err
			}
			perStudent[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return perStudent, nil
}

// datedEntry pairs an entry with its parsed date. ok is false when the
// stored date string is unparsable (lenient policy only; strict aborts).
type datedEntry struct {
	entry *models.Entry
	date  time.Time
	ok    bool
}

// resolveDates applies the service DatePolicy to the stored date strings.
func (s *Service) resolveDates(ctx context.Context, items []*models.Entry) ([]datedEntry, error) {
	dated := make([]datedEntry, 0, len(items))
	for _, e := range items {
		d, err := dates.Parse(e.Date)
		if err != nil {
			if s.policy == DatePolicyStrict {
				return nil, fmt.Errorf("entry %s/%s: %w", e.StudentID, e.Date, common.ErrUnparsableDate)
			}
			s.logger.Warn(ctx, "entry date unparsable, excluded from windowed analytics",
				"student_id", e.StudentID, "date", e.Date)
			dated = append(dated, datedEntry{entry: e})
			continue
		}
		dated = append(dated, datedEntry{entry: e, date: d, ok: true})
	}
	return dated, nil
}

func sortDated(dated []datedEntry) {
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].date.Before(dated[j].date)
	})
}

// sortedEntries orders ascending by parsed date. Unparsable dates carry a
// zero time and therefore sort first, with no ordering guarantee among
// themselves beyond stability.
func sortedEntries(dated []datedEntry) []*models.Entry {
	sortDated(dated)
	out := make([]*models.Entry, len(dated))
	for i, de := range dated {
		out[i] = de.entry
	}
	return out
}
