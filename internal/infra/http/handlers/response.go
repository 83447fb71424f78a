package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/escriturashoy/escrituras-api/internal/entity"
	"github.com/escriturashoy/escrituras-api/internal/infra/database"
	"github.com/escriturashoy/escrituras-api/internal/infra/http/middleware"
	"github.com/escriturashoy/escrituras-api/internal/usecase"
)

const (
	ErrLabelValidation = "Validation Error"
	ErrLabelNotFound   = "Not Found"
	ErrLabelInternal   = "Internal Server Error"
)

// Response is the envelope every JSON endpoint except /health and /version
// answers with.
type Response struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *entity.Pagination `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, label, message string) {
	writeJSON(w, status, Response{
		Success: false,
		Error:   label,
		Message: message,
	})
}

// NotFound answers every (method, path) the router does not know.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusNotFound, ErrLabelNotFound, "The requested resource was not found.")
}

// InternalError is the last-resort answer after a recovered panic.
func InternalError(w http.ResponseWriter, r *http.Request) {
	writeErrorResponse(w, http.StatusInternalServerError, ErrLabelInternal, "An unexpected error occurred")
}

// writeUseCaseError maps the usecase error taxonomy onto status codes. Store
// and unknown faults are logged in full and answered with failMsg only.
func writeUseCaseError(w http.ResponseWriter, log logrus.FieldLogger, err error, failMsg string) {
	var (
		ve *usecase.ValidationError
		nf *usecase.NotFoundError
		se *usecase.StoreError
	)

	switch {
	case errors.As(err, &ve):
		writeErrorResponse(w, http.StatusBadRequest, ErrLabelValidation, ve.Message)
	case errors.As(err, &nf):
		writeErrorResponse(w, http.StatusNotFound, ErrLabelNotFound, nf.Error())
	default:
		op := "unknown"
		if errors.As(err, &se) {
			op = se.Op
			middleware.RecordStoreError(op)
		}
		log.WithError(err).
			WithField("operation", op).
			WithField("sqlstate", database.SQLState(err)).
			Error(failMsg)
		writeErrorResponse(w, http.StatusInternalServerError, ErrLabelInternal, failMsg)
	}
}

// parsePage reads limit/offset. Unparseable or negative values fall back to
// the defaults; limit is capped at entity.MaxPageLimit.
func parsePage(q url.Values) entity.Page {
	page := entity.Page{Limit: entity.DefaultPageLimit, Offset: 0}

	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v >= 0 {
		page.Limit = v
	}
	if page.Limit > entity.MaxPageLimit {
		page.Limit = entity.MaxPageLimit
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		page.Offset = v
	}

	return page
}
