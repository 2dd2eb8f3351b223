package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sevigo/volatility-agent/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate [symbol] [horizon-minutes]",
	Short: "Check a job requirement against the service policy",
	Long: `Check a symbol and horizon the way the seller does before accepting a job.

Examples:
  vol-cli validate BTC 60
  vol-cli validate doge 15`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		horizon, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("horizon must be an integer number of minutes: %w", err)
		}

		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		policy, err := loadPolicy(cfg)
		if err != nil {
			return err
		}

		if err := policy.Validate(args[0], horizon); err != nil {
			var rejection *validation.RejectionError
			if errors.As(err, &rejection) {
				errorColor.Printf("✗ rejected: %s\n", rejection.Reason)
			}
			return err
		}

		successColor.Printf("✓ accepted: %s over %d minutes\n", args[0], horizon)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(validateCmd)
}
