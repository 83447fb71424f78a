package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/escriturashoy/escrituras-api/internal/entity"
	"github.com/escriturashoy/escrituras-api/internal/infra/http/middleware"
	"github.com/escriturashoy/escrituras-api/internal/usecase"
)

const maxLeadBodyBytes = 1 << 20

type LeadHandler struct {
	CreateLeadUC *usecase.CreateLeadUseCase
	LeadRepo     entity.LeadRepositoryInterface
	Log          logrus.FieldLogger
}

func NewLeadHandler(uc *usecase.CreateLeadUseCase, leadRepo entity.LeadRepositoryInterface, log logrus.FieldLogger) *LeadHandler {
	return &LeadHandler{
		CreateLeadUC: uc,
		LeadRepo:     leadRepo,
		Log:          log,
	}
}

// Create handles POST /leads.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLeadBodyBytes)

	payload, err := decodeJSONObject(r.Body)
	if err != nil {
		writeUseCaseError(w, h.Log, usecase.InvalidJSONError(), "Failed to create lead")
		return
	}

	lead, err := h.CreateLeadUC.Execute(r.Context(), payload)
	if err != nil {
		writeUseCaseError(w, h.Log, err, "Failed to create lead")
		return
	}

	middleware.RecordLeadCreated(lead.PropertyType)
	h.Log.WithField("lead_id", lead.ID).
		WithField("property_type", lead.PropertyType).
		Info("lead created")

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    lead,
	})
}

// decodeJSONObject reads exactly one JSON value; anything after it besides
// whitespace makes the body invalid.
func decodeJSONObject(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("unexpected data after JSON body")
	}
	return payload, nil
}

// List handles GET /leads?status=&limit=&offset=.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.LeadFilter{
		Status: q.Get("status"),
		Page:   parsePage(q),
	}

	leads, total, err := h.LeadRepo.List(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, h.Log, &usecase.StoreError{Op: "list leads", Err: err}, "Failed to fetch leads")
		return
	}

	pagination := entity.NewPagination(total, filter.Page)
	writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Data:       leads,
		Pagination: &pagination,
	})
}
