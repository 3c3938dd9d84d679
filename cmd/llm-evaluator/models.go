package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JohannesStutz/llm-evaluator/api/services"
	"github.com/JohannesStutz/llm-evaluator/api/store"
	"github.com/JohannesStutz/llm-evaluator/shared/db"
)

// modelsCmd lists and synchronizes models from the CLI
func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models known to the evaluator",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := db.Connect(ctx, db.Config{URL: cfg.Database.URL})
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			s := store.New(pool)
			if err := s.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("failed to ensure schema: %w", err)
			}

			modelSvc := services.NewModelService(s, newGateway())

			added, err := modelSvc.Sync(ctx)
			if err != nil {
				fmt.Printf("Warning: model sync failed: %v\n", err)
			} else if added > 0 {
				fmt.Printf("Synchronized %d new model(s) from gateway\n", added)
			}

			models, err := modelSvc.List(ctx, 1000, 0)
			if err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}

			if len(models) == 0 {
				fmt.Println("No models known yet.")
				return nil
			}

			for _, m := range models {
				desc := ""
				if m.Description != nil {
					desc = " - " + *m.Description
				}
				fmt.Printf("  %d: %s%s\n", m.ID, m.Name, desc)
			}
			return nil
		},
	}
	return cmd
}
