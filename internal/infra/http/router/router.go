package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/escriturashoy/escrituras-api/internal/entity"
	"github.com/escriturashoy/escrituras-api/internal/infra/http/handlers"
	"github.com/escriturashoy/escrituras-api/internal/infra/http/middleware"
	"github.com/escriturashoy/escrituras-api/internal/usecase"
)

type Dependencies struct {
	Log            logrus.FieldLogger
	CreateLead     *usecase.CreateLeadUseCase
	Leads          entity.LeadRepositoryInterface
	Expedientes    entity.ExpedienteRepositoryInterface
	Version        string
	Environment    string
	AllowedOrigins []string
}

// New builds the HTTP handler for the whole API. Trailing and repeated
// slashes are cleaned before matching, and anything unmatched (including a
// known path with the wrong method) gets the JSON 404.
func New(deps Dependencies) http.Handler {
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	healthHandler := handlers.NewHealthHandler()
	versionHandler := handlers.NewVersionHandler(deps.Version, deps.Environment)
	leadHandler := handlers.NewLeadHandler(deps.CreateLead, deps.Leads, deps.Log)
	expedienteHandler := handlers.NewExpedienteHandler(deps.Expedientes, deps.Log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Recover(deps.Log, handlers.InternalError))
	r.Use(chimw.CleanPath)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(middleware.Metrics)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	r.Get("/health", healthHandler.Handle)
	r.Get("/version", versionHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/leads", leadHandler.List)
	r.Post("/leads", leadHandler.Create)

	r.Get("/expedientes", expedienteHandler.List)
	r.Get("/expedientes/{id}", expedienteHandler.Get)

	return r
}
