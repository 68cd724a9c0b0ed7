// Package httpapi exposes the journal engine over a JSON HTTP API.
// All dates at this boundary are ISO YYYY-MM-DD; the MM-DD-YYYY fallback
// exists only for lenient ingestion of the submitted entry date.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/dmitrijs2005/moodjournal/internal/server/journal"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
	"github.com/gin-gonic/gin"
)

// JournalService is the engine surface the handlers consume.
type JournalService interface {
	Record(ctx context.Context, studentID, classID, dateStr, text string) (*models.Entry, error)
	ListStudentHistory(ctx context.Context, studentID string) ([]*models.Entry, error)
	ListClassEntries(ctx context.Context, classID string) ([]*models.Entry, error)
	ClassStats(ctx context.Context, classID, startStr, endStr string) (*journal.Stats, error)
	AtRisk(ctx context.Context, classID, startStr, endStr string) (*journal.AtRiskReport, error)
}

// ReportService exports a class report and returns a download URL.
type ReportService interface {
	Export(ctx context.Context, classID string) (string, error)
}

type JournalHandler struct {
	journal JournalService
	reports ReportService
	logger  logging.Logger
}

func NewJournalHandler(j JournalService, r ReportService, logger logging.Logger) *JournalHandler {
	return &JournalHandler{journal: j, reports: r, logger: logger.With("module", "httpapi")}
}

type submitRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	ClassID   string `json:"class_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

type entryResponse struct {
	ClassID string `json:"class_id"`
	*models.Entry
}

// Submit analyzes and records one journal entry.
func (h *JournalHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	entry, err := h.journal.Record(c.Request.Context(), req.StudentID, req.ClassID, req.Date, req.Text)
	if err != nil {
		h.logger.Error(c.Request.Context(), "submit failed", "error", err.Error())
		respondDomainError(c, err)
		return
	}

	RespondOK(c, entryResponse{ClassID: req.ClassID, Entry: entry})
}

// StudentHistory lists a student's entries in chronological order.
func (h *JournalHandler) StudentHistory(c *gin.Context) {
	studentID := c.Param("student_id")

	entries, err := h.journal.ListStudentHistory(c.Request.Context(), studentID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	RespondOK(c, gin.H{"student_id": studentID, "entries": entries})
}

// ClassEntries lists every entry of every student in a class.
func (h *JournalHandler) ClassEntries(c *gin.Context) {
	classID := c.Param("class_id")

	entries, err := h.journal.ListClassEntries(c.Request.Context(), classID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	RespondOK(c, gin.H{"class_id": classID, "entries": entries})
}

// ClassStats returns the windowed emotion distribution of a class.
func (h *JournalHandler) ClassStats(c *gin.Context) {
	classID := c.Param("class_id")

	stats, err := h.journal.ClassStats(c.Request.Context(), classID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	RespondOK(c, stats)
}

// AtRisk returns the students with a negative streak inside the window.
func (h *JournalHandler) AtRisk(c *gin.Context) {
	classID := c.Param("class_id")

	report, err := h.journal.AtRisk(c.Request.Context(), classID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	RespondOK(c, report)
}

// ClassReport exports the class CSV report and returns its download URL.
func (h *JournalHandler) ClassReport(c *gin.Context) {
	classID := c.Param("class_id")

	url, err := h.reports.Export(c.Request.Context(), classID)
	if err != nil {
		h.logger.Error(c.Request.Context(), "report export failed", "class_id", classID, "error", err.Error())
		respondDomainError(c, err)
		return
	}

	RespondOK(c, gin.H{"class_id": classID, "url": url})
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
