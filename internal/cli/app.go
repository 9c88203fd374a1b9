package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roboco-io/leave2docx/internal/config"
	"github.com/roboco-io/leave2docx/internal/hrapi"
	"github.com/roboco-io/leave2docx/internal/leave"
)

// EnvFileEnv overrides the default dotenv file.
const EnvFileEnv = "LEAVE2DOCX_ENV_FILE"

// DebugEnv enables debug logging when set to true.
const DebugEnv = "LEAVE2DOCX_DEBUG"

func newLoader() (*config.Loader, error) {
	if cfgFile != "" {
		return config.NewLoaderWithPath(cfgFile), nil
	}
	return config.NewLoader()
}

// loadConfig loads the dotenv file, then the configuration, and validates it.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := config.LoadEnvFile(envFile, true); err != nil {
			return nil, err
		}
	} else if err := config.LoadEnvFile(config.GetEnvOrDefault(EnvFileEnv, config.DefaultEnvFile), false); err != nil {
		return nil, err
	}

	loader, err := newLoader()
	if err != nil {
		return nil, fmt.Errorf("αποτυχία αρχικοποίησης ρυθμίσεων: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("αποτυχία φόρτωσης ρυθμίσεων: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose || config.GetEnvBool(DebugEnv):
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newClient(cfg *config.Config, logger *slog.Logger) (*hrapi.Client, error) {
	return hrapi.New(hrapi.Config{
		BaseURL:  cfg.API.BaseURL,
		Username: cfg.API.Username,
		Password: cfg.API.Password,
		Logger:   logger,
	})
}

func newExporter(cfg *config.Config, source leave.Source, logger *slog.Logger) (*leave.Exporter, error) {
	return leave.NewExporter(leave.Options{
		TemplateDir:     cfg.Output.TemplateDir,
		OutputDir:       cfg.Output.OutputDir,
		DateFormat:      cfg.Output.DateFormat,
		FilenamePattern: cfg.Output.FilenamePattern,
		Logger:          logger,
	}, source)
}

// listOptions resolves the status filter and limit from flags and configuration.
func listOptions(cmd *cobra.Command, cfg *config.Config) hrapi.ListOptions {
	opts := hrapi.ListOptions{
		Status: cfg.Input.LeaveStatus,
		Limit:  cfg.Input.DefaultLatestLeavesToShow,
	}
	if cmd.Flags().Changed("status") {
		opts.Status = statusFlag
	}
	if cmd.Flags().Changed("limit") {
		opts.Limit = limitFlag
	}
	return opts
}
