package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/moodjournal/internal/common"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondDomainError maps engine sentinel errors onto HTTP statuses.
// Anything unrecognized is an internal error; its detail stays out of the
// response body.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrClassNotFound):
		RespondError(c, http.StatusNotFound, "class_not_found", err)
	case errors.Is(err, common.ErrStudentNotFound):
		RespondError(c, http.StatusNotFound, "student_not_found", err)
	case errors.Is(err, common.ErrUnparsableDate):
		RespondError(c, http.StatusBadRequest, "unparsable_date", err)
	case errors.Is(err, common.ErrInvalidDateRange):
		RespondError(c, http.StatusBadRequest, "invalid_date_range", err)
	case errors.Is(err, common.ErrClassifierUnavailable):
		RespondError(c, http.StatusBadGateway, "classifier_unavailable", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", common.ErrInternal)
	}
}
