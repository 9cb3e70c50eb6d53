package commands

import (
	"log/slog"
	"os"

	"github.com/leapstack-labs/layerlint/internal/cli/config"
	"github.com/leapstack-labs/layerlint/internal/cli/output"
	"github.com/leapstack-labs/layerlint/internal/state"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    state.Store
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an open state store.
// Returns the context and a cleanup function that must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	cleanup := func() {
		_ = store.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Store:    store,
		Renderer: r,
	}, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a state
// store. Useful for commands that never touch the database.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back
// to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	architecture := getEnvOrDefault("LAYERLINT_ARCHITECTURE", config.DefaultArchitecture)
	modelsDir := getEnvOrDefault("LAYERLINT_MODELS_DIR", config.DefaultModelsDir)
	statePath := getEnvOrDefault("LAYERLINT_STATE_PATH", config.DefaultStateFile)
	verbose := os.Getenv("LAYERLINT_VERBOSE") == "true"
	outputFormat := os.Getenv("LAYERLINT_OUTPUT")

	return &config.Config{
		Architecture: architecture,
		ModelsDir:    modelsDir,
		SchemaGlobs:  config.DefaultSchemaGlobs(),
		StatePath:    statePath,
		Verbose:      verbose,
		OutputFormat: outputFormat,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
