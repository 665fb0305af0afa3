package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/intakehq/document-router-api/internal/classifier"
	"github.com/intakehq/document-router-api/internal/config"
	"github.com/intakehq/document-router-api/internal/db"
	"github.com/intakehq/document-router-api/internal/dispatcher"
	"github.com/intakehq/document-router-api/internal/memory"
	"github.com/intakehq/document-router-api/internal/models"
	"github.com/intakehq/document-router-api/internal/repository"
	"github.com/intakehq/document-router-api/internal/utils"
)

var threadID string

func main() {
	rootCmd := &cobra.Command{
		Use:           "docrouter",
		Short:         "Classify and route business documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	processCmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Classify a document file and log the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcess,
	}
	processCmd.Flags().StringVar(&threadID, "thread-id", "", "Optional thread ID for tracking/log chaining")

	rootCmd.AddCommand(processCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runProcess reads the file, routes it and prints the outcome. Handler
// and validation errors stay embedded in the printed result; only an
// unreadable file or broken setup exits non-zero.
func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	provider := classifier.NewProvider(func() (classifier.ZeroShot, error) {
		return classifier.NewHFZeroShot(cfg.HFAPIKey, cfg.HFModel, logger)
	}, logger)
	disp := dispatcher.New(classifier.New(provider, logger), logger)

	format, intent, result := disp.ClassifyAndRoute(cmd.Context(), models.Document{
		Filename: path,
		Data:     data,
	})

	fmt.Println("\n=== Final Output ===")
	fmt.Println("Format:", format)
	fmt.Println("Intent:", intent)
	fmt.Println("Agent Result:", formatResult(result))

	store := openStore(cfg, logger)
	if _, err := store.Log(cmd.Context(), models.LogEntry{
		ThreadID:  threadID,
		Source:    path,
		Format:    format,
		Intent:    intent,
		Extracted: result,
	}, ""); err != nil {
		return fmt.Errorf("failed to log result: %w", err)
	}

	return nil
}

// openStore builds the memory store, with the sqlite mirror attached
// when the database can be opened. A mirror that cannot be opened only
// costs thread history, so it downgrades to a warning.
func openStore(cfg *config.Config, logger *utils.Logger) *memory.Store {
	database, err := db.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Warn("Mirror store unavailable", "error", err)
		return memory.NewStore(cfg.LogFile, nil, logger)
	}

	if err := db.RunMigrations(cfg.DatabasePath, migrationsPath()); err != nil {
		logger.Warn("Mirror store migrations failed", "error", err)
		database.Close()
		return memory.NewStore(cfg.LogFile, nil, logger)
	}

	return memory.NewStore(cfg.LogFile, repository.NewRepository(database), logger)
}

func migrationsPath() string {
	return filepath.Join("internal", "db", "migrations")
}

func formatResult(result models.Result) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprint(result)
	}
	return string(data)
}
