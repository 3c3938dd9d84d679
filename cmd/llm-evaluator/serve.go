package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/JohannesStutz/llm-evaluator/api/gateway"
	"github.com/JohannesStutz/llm-evaluator/api/server"
	"github.com/JohannesStutz/llm-evaluator/api/services"
	"github.com/JohannesStutz/llm-evaluator/api/store"
	"github.com/JohannesStutz/llm-evaluator/pkg/otel"
	"github.com/JohannesStutz/llm-evaluator/shared/db"
)

// serveCmd starts the HTTP API server
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the evaluation HTTP API server.

Required configuration:
  - PostgreSQL database (LLMEVAL_POSTGRES_URL)

Optional:
  - OpenAI-compatible backend (LLMEVAL_LLM_URL, LLMEVAL_LLM_API_KEY).
    Without one, a stub gateway serves deterministic canned responses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// runServer initializes and starts the HTTP API server
func runServer(ctx context.Context) error {
	log.Println("Starting llm-evaluator API server...")
	log.Printf("  HTTP: http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	if cfg.IsLLMConfigured() {
		log.Printf("  LLM:  %s", cfg.LLM.URL)
	} else {
		log.Println("  LLM:  stub gateway (no backend configured)")
	}

	shutdownTracing, err := otel.Init(otel.Config{
		ServiceName: "llm-evaluator-api",
		Environment: "production",
		Writer:      os.Stdout,
	})
	if err != nil {
		log.Printf("Warning: failed to initialize tracing: %v", err)
	} else {
		defer func() {
			if err := shutdownTracing(ctx); err != nil {
				log.Printf("Error shutting down tracer: %v", err)
			}
		}()
	}

	log.Println("Connecting to PostgreSQL...")
	pool, err := db.Connect(ctx, db.Config{URL: cfg.Database.URL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	s := store.New(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	log.Println("Database connection established")

	gen := newGateway()

	inputSvc := services.NewInputService(s)
	promptSvc := services.NewPromptService(s)
	modelSvc := services.NewModelService(s, gen)
	comparisonSvc := services.NewComparisonService(s, promptSvc, gen)
	evalSvc := services.NewEvaluationService(s)
	historySvc := services.NewHistoryService(s)

	srv := server.NewServer(
		cfg,
		inputSvc,
		promptSvc,
		modelSvc,
		comparisonSvc,
		evalSvc,
		historySvc,
		func(ctx context.Context) error { return pool.Ping(ctx) },
	)

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s:%d", cfg.Server.Host, cfg.Server.Port)
		serverErrors <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		log.Println("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Println("Server stopped")
		return nil
	}
}

// newGateway picks the generation backend once at startup.
func newGateway() gateway.Generator {
	if cfg.IsLLMConfigured() {
		return gateway.NewOpenAIGateway(
			cfg.LLM.URL,
			cfg.LLM.APIKey,
			gateway.WithMaxTokens(cfg.LLM.MaxTokens),
			gateway.WithTemperature(float32(cfg.LLM.Temperature)),
		)
	}
	return gateway.NewStubGateway()
}
