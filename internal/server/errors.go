package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tracker/internal/models"
)

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeValidation         = "validation_error"
	ErrCodeDuplicateProject   = "duplicate_project"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotFound           = "not_found"
	ErrCodeRateLimited        = "rate_limited"
	ErrCodeInternal           = "internal_error"
)

var (
	errInput           = errors.New("invalid input")
	errUnauthenticated = errors.New("unauthenticated")
)

// apiError is a known outcome with a client-facing message. kind selects the
// row of errorTable that decides the status.
type apiError struct {
	kind error
	msg  string
}

func (e *apiError) Error() string { return e.msg }

func (e *apiError) Unwrap() error { return e.kind }

func inputError(msg string) error { return &apiError{kind: errInput, msg: msg} }

func forbidden(msg string) error { return &apiError{kind: models.ErrForbidden, msg: msg} }

func notFound(msg string) error { return &apiError{kind: models.ErrNotFound, msg: msg} }

type errorMapping struct {
	target error
	status int
	code   string
	msg    string
}

// errorTable maps every domain and transport error to its response. The first
// matching row wins.
var errorTable = []errorMapping{
	{errInput, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request."},
	{models.ErrDuplicateProject, http.StatusBadRequest, ErrCodeDuplicateProject, "You already have a project with this name."},
	{models.ErrInvalidCredentials, http.StatusBadRequest, ErrCodeInvalidCredentials, "Invalid credentials."},
	{models.ErrForeignKey, http.StatusBadRequest, ErrCodeInvalidRequest, "Referenced record does not exist."},
	{errUnauthenticated, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required."},
	{models.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, "You do not have permission to perform this action."},
	{models.ErrNotFound, http.StatusNotFound, ErrCodeNotFound, "Not found."},
}

// respondError converts err into a JSON error body and aborts the chain.
// Validation errors surface the first violation and list all of them.
func (s *Server) respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  verr.First(),
			"code":   ErrCodeValidation,
			"fields": verr.Map(),
		})
		return
	}

	for _, m := range errorTable {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.msg
		var aerr *apiError
		if errors.As(err, &aerr) {
			msg = aerr.msg
		}
		s.logger.Debug("request rejected", slog.String("path", c.FullPath()), slog.Int("status", m.status), slog.String("error", err.Error()))
		c.AbortWithStatusJSON(m.status, gin.H{"error": msg, "code": m.code})
		return
	}

	s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error.", "code": ErrCodeInternal})
}
