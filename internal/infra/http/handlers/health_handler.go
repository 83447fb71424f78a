package handlers

import (
	"net/http"
	"time"
)

// isoMillis matches what browsers produce with Date.toISOString().
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type HealthHandler struct {
	Now func() time.Time
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{Now: time.Now}
}

// Handle never touches the store: it only proves the process is serving.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.Now().UTC().Format(isoMillis),
	})
}
