package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escriturashoy/escrituras-api/internal/entity"
	"github.com/escriturashoy/escrituras-api/internal/usecase"
)

type memLeadRepo struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: map[string]*entity.Lead{}}
}

func (m *memLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *lead
	m.leads[lead.ID] = &cp
	return nil
}

func (m *memLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memLeadRepo) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []*entity.Lead{}
	for _, l := range m.leads {
		if filter.Status == "" || l.Status == filter.Status {
			matched = append(matched, l)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt != matched[j].CreatedAt {
			return matched[i].CreatedAt > matched[j].CreatedAt
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := min(filter.Page.Offset, total)
	end := min(start+filter.Page.Limit, total)
	return matched[start:end], total, nil
}

type memExpedienteRepo struct {
	expedientes map[string]*entity.Expediente
}

func (m *memExpedienteRepo) FindByID(ctx context.Context, id string) (*entity.Expediente, error) {
	e, ok := m.expedientes[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return e, nil
}

func (m *memExpedienteRepo) List(ctx context.Context, filter entity.ExpedienteFilter) ([]*entity.Expediente, int, error) {
	out := []*entity.Expediente{}
	for _, e := range m.expedientes {
		if (filter.ClientID == "" || e.ClientID == filter.ClientID) && (filter.Status == "" || e.Status == filter.Status) {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

type testServer struct {
	handler http.Handler
	leads   *memLeadRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	leads := newMemLeadRepo()
	expedientes := &memExpedienteRepo{expedientes: map[string]*entity.Expediente{
		"exp-1": {ID: "exp-1", ClientID: "client-1", Type: "compraventa", Status: "inicial"},
	}}

	return &testServer{
		handler: New(Dependencies{
			Log:         log,
			CreateLead:  usecase.NewCreateLeadUseCase(leads, log),
			Leads:       leads,
			Expedientes: expedientes,
			Version:     "1.0.0",
			Environment: "test",
		}),
		leads: leads,
	}
}

func (s *testServer) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

const juanPerez = `{"name":"Juan Pérez","email":"juan@example.com","property_location":"Ciudad de México","property_type":"casa"}`

func TestCreateLeadHappyPath(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/leads", juanPerez)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "Juan Pérez", data["name"])
	assert.Equal(t, "juan@example.com", data["email"])
	assert.Equal(t, "Ciudad de México", data["property_location"])
	assert.Equal(t, "casa", data["property_type"])
	assert.Equal(t, "nuevo", data["status"])
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, data["created_at"], data["updated_at"])
}

func TestCreateLeadMissingFields(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/leads", `{"name":"Juan Pérez"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation Error", resp["error"])
	assert.Empty(t, s.leads.leads)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/unknown-route", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", resp["error"])
}

func TestMissingExpedienteIsNotFound(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/expedientes/does-not-exist", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", resp["error"])
}

func TestListLeadsTotalIgnoresPage(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 5; i++ {
		rec, _ := s.do(t, http.MethodPost, "/leads", juanPerez)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, resp := s.do(t, http.MethodGet, "/leads?status=nuevo&limit=1&offset=0", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp["data"], 1)
	pagination := resp["pagination"].(map[string]any)
	assert.Equal(t, 5.0, pagination["total"])
	assert.Equal(t, 1.0, pagination["limit"])
	assert.Equal(t, 0.0, pagination["offset"])

	_, resp = s.do(t, http.MethodGet, "/leads?status=nuevo&limit=2&offset=4", "")
	assert.Len(t, resp["data"], 1)
	assert.Equal(t, 5.0, resp["pagination"].(map[string]any)["total"])

	_, resp = s.do(t, http.MethodGet, "/leads?status=perdido", "")
	assert.Empty(t, resp["data"])
	assert.Equal(t, 0.0, resp["pagination"].(map[string]any)["total"])
}

func TestRouting(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/health/", http.StatusOK},
		{http.MethodGet, "/version", http.StatusOK},
		{http.MethodGet, "/version/", http.StatusOK},
		{http.MethodGet, "/leads", http.StatusOK},
		{http.MethodGet, "/leads/", http.StatusOK},
		{http.MethodGet, "/expedientes", http.StatusOK},
		{http.MethodGet, "/expedientes/", http.StatusOK},
		{http.MethodGet, "/expedientes/exp-1", http.StatusOK},
		{http.MethodGet, "/expedientes/exp-1/", http.StatusOK},
		{http.MethodGet, "/expedientes/exp-1/documents", http.StatusNotFound},
		{http.MethodGet, "/", http.StatusNotFound},
		{http.MethodPost, "/health", http.StatusNotFound},
		{http.MethodDelete, "/leads", http.StatusNotFound},
		{http.MethodPut, "/expedientes/exp-1", http.StatusNotFound},
		{http.MethodPost, "/expedientes", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec, resp := s.do(t, tt.method, tt.target, "")
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNotFound {
				assert.Equal(t, "Not Found", resp["error"])
			}
		})
	}
}

func TestHealthIsIdempotent(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		rec, resp := s.do(t, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", resp["status"])
	}
	assert.Empty(t, s.leads.leads)
}

func TestVersionReportsConfiguredValues(t *testing.T) {
	s := newTestServer(t)

	_, resp := s.do(t, http.MethodGet, "/version", "")

	assert.Equal(t, "1.0.0", resp["version"])
	assert.Equal(t, "test", resp["environment"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/leads", nil)
	req.Header.Set("Origin", "https://escriturashoy.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/leads", juanPerez)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `leads_created_total{property_type="casa"}`)
	assert.Contains(t, rec.Body.String(), `route="/leads"`)
}

type panickingLeadRepo struct {
	*memLeadRepo
}

func (p panickingLeadRepo) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, int, error) {
	panic("lead index corrupted")
}

func TestPanicBecomesJSONInternalError(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	leads := panickingLeadRepo{newMemLeadRepo()}
	handler := New(Dependencies{
		Log:         log,
		CreateLead:  usecase.NewCreateLeadUseCase(leads, log),
		Leads:       leads,
		Expedientes: &memExpedienteRepo{expedientes: map[string]*entity.Expediente{}},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Internal Server Error", resp["error"])
	assert.Equal(t, "An unexpected error occurred", resp["message"])

	// The server keeps serving after a recovered panic.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
