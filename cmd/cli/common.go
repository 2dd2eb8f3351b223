package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/sevigo/volatility-agent/internal/config"
	"github.com/sevigo/volatility-agent/internal/logger"
	"github.com/sevigo/volatility-agent/internal/validation"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

// loadConfig reads configuration without the full agent validation; each
// command checks the sections it uses.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	// CLI logs go to stderr so stdout stays parseable.
	return cfg, logger.NewLogger(cfg.Logging, os.Stderr), nil
}

func loadPolicy(cfg *config.Config) (*validation.Policy, error) {
	if cfg.Agent.PolicyFile == "" {
		return validation.DefaultPolicy(), nil
	}
	return config.LoadPolicy(cfg.Agent.PolicyFile)
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
