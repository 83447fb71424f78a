package handlers

import (
	"net/http"
	"time"
)

const (
	defaultVersion     = "0.1.0-dev"
	defaultEnvironment = "unknown"
)

type VersionHandler struct {
	Version     string
	Environment string
	Now         func() time.Time
}

type VersionResponse struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

func NewVersionHandler(version, environment string) *VersionHandler {
	if version == "" {
		version = defaultVersion
	}
	if environment == "" {
		environment = defaultEnvironment
	}
	return &VersionHandler{
		Version:     version,
		Environment: environment,
		Now:         time.Now,
	}
}

func (h *VersionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Version:     h.Version,
		Environment: h.Environment,
		Timestamp:   h.Now().UTC().Format(isoMillis),
	})
}
