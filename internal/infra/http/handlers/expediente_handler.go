package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/escriturashoy/escrituras-api/internal/entity"
	"github.com/escriturashoy/escrituras-api/internal/usecase"
)

type ExpedienteHandler struct {
	Repo entity.ExpedienteRepositoryInterface
	Log  logrus.FieldLogger
}

func NewExpedienteHandler(repo entity.ExpedienteRepositoryInterface, log logrus.FieldLogger) *ExpedienteHandler {
	return &ExpedienteHandler{Repo: repo, Log: log}
}

// Get handles GET /expedientes/{id}.
func (h *ExpedienteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	exp, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			err = &usecase.NotFoundError{Resource: "Expediente", ID: id}
		} else {
			err = &usecase.StoreError{Op: "get expediente", Err: err}
		}
		writeUseCaseError(w, h.Log, err, "Failed to fetch expediente")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    exp,
	})
}

// List handles GET /expedientes?client_id=&status=&limit=&offset=.
func (h *ExpedienteHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.ExpedienteFilter{
		ClientID: q.Get("client_id"),
		Status:   q.Get("status"),
		Page:     parsePage(q),
	}

	expedientes, total, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, h.Log, &usecase.StoreError{Op: "list expedientes", Err: err}, "Failed to fetch expedientes")
		return
	}

	pagination := entity.NewPagination(total, filter.Page)
	writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Data:       expedientes,
		Pagination: &pagination,
	})
}
