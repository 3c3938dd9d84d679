// Package server wires the chi router, middleware and handlers.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JohannesStutz/llm-evaluator/api/config"
	"github.com/JohannesStutz/llm-evaluator/api/server/handlers"
	"github.com/JohannesStutz/llm-evaluator/api/services"
	"github.com/JohannesStutz/llm-evaluator/pkg/otel"
)

const ReadTimeout = 30 * time.Second

type Server struct {
	cfg    *config.Config
	router *chi.Mux
	server *http.Server
}

func NewServer(
	cfg *config.Config,
	inputSvc *services.InputService,
	promptSvc *services.PromptService,
	modelSvc *services.ModelService,
	comparisonSvc *services.ComparisonService,
	evalSvc *services.EvaluationService,
	historySvc *services.HistoryService,
	dbPing func(context.Context) error,
) *Server {
	router := chi.NewRouter()

	router.Use(otel.Middleware("llm-evaluator-api"))
	router.Use(Recovery)
	router.Use(RequestID)
	router.Use(Logger)
	router.Use(CORS(cfg.Server.AllowedOrigins))

	healthH := handlers.NewHealthHandler(dbPing)
	router.Get("/health", healthH.Readiness)
	router.Get("/health/ready", healthH.Readiness)
	router.Get("/health/live", healthH.Liveness)
	router.Get("/health/full", healthH.Health)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		modelH := handlers.NewModelHandler(modelSvc)
		r.Post("/models", modelH.Create)
		r.Get("/models", modelH.List)
		r.Get("/models/{id}", modelH.Get)

		setH := handlers.NewInputSetHandler(inputSvc)
		r.Post("/input-sets", setH.Create)
		r.Get("/input-sets", setH.List)
		r.Get("/input-sets/{id}", setH.Get)
		r.Patch("/input-sets/{id}", setH.Update)
		r.Delete("/input-sets/{id}", setH.Delete)
		r.Get("/input-sets/{id}/inputs", setH.ListInputs)
		r.Post("/input-sets/{id}/inputs", setH.CreateInput)

		inputH := handlers.NewInputHandler(inputSvc, historySvc)
		r.Post("/inputs", inputH.Create)
		r.Get("/inputs", inputH.List)
		r.Get("/inputs/{id}", inputH.Get)
		r.Patch("/inputs/{id}", inputH.Update)
		r.Delete("/inputs/{id}", inputH.Delete)
		r.Get("/inputs/{id}/history", inputH.History)
		r.Get("/inputs/{id}/outputs", inputH.ListOutputs)

		promptH := handlers.NewPromptHandler(promptSvc)
		r.Post("/prompts", promptH.Create)
		r.Get("/prompts", promptH.List)
		r.Get("/prompts/{id}", promptH.Get)
		r.Patch("/prompts/{id}", promptH.Update)
		r.Delete("/prompts/{id}", promptH.Delete)
		r.Post("/prompts/{id}/versions", promptH.CreateVersion)
		r.Get("/prompts/{id}/versions", promptH.ListVersions)
		r.Get("/prompt-versions/{id}", promptH.GetVersion)
		r.Delete("/prompt-versions/{id}", promptH.DeleteVersion)

		compareH := handlers.NewCompareHandler(comparisonSvc)
		r.Post("/process", compareH.Process)
		r.Post("/batch-process", compareH.BatchProcess)
		r.Post("/compare", compareH.Compare)

		evalH := handlers.NewEvaluationHandler(evalSvc)
		r.Put("/outputs/{id}/evaluation", evalH.Upsert)
		r.Get("/outputs/{id}/evaluation", evalH.GetByOutput)
		r.Get("/evaluations", evalH.List)
	})

	return &Server{
		cfg:    cfg,
		router: router,
	}
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: 0,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
