package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/volatility-agent/internal/core"
	"github.com/sevigo/volatility-agent/internal/prediction"
)

var (
	predictJSON       bool
	predictSkipPolicy bool
)

var predictCmd = &cobra.Command{
	Use:   "predict [symbol] [horizon-minutes]",
	Short: "Query the volatility prediction gateway directly",
	Long: `Query the volatility prediction gateway with the agent's credentials and
print the result the seller would deliver.

Examples:
  vol-cli predict BTC 60
  vol-cli predict --json ETH 240`,
	Args: cobra.ExactArgs(2),
	RunE: runPredict,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	predictCmd.Flags().BoolVar(&predictJSON, "json", false, "Print the deliverable envelope as JSON")
	predictCmd.Flags().BoolVar(&predictSkipPolicy, "skip-policy", false, "Query symbols and horizons outside the service policy")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	horizon, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("horizon must be an integer number of minutes: %w", err)
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Gateway.Validate(); err != nil {
		return err
	}

	if !predictSkipPolicy {
		policy, err := loadPolicy(cfg)
		if err != nil {
			return err
		}
		if err := policy.Validate(symbol, horizon); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Gateway.Timeout+5*time.Second)
	defer cancel()

	gateway := prediction.NewGateway(&cfg.Gateway, nil, logger)
	start := time.Now()
	result, err := gateway.Predict(ctx, symbol, horizon)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	if predictJSON {
		return printJSON(core.NewDeliverable(result))
	}

	titleColor.Printf("Volatility prediction for %s over %d minutes\n", symbol, horizon)
	dimColor.Printf("mode=%s took=%s\n", cfg.Gateway.Mode, time.Since(start).Round(time.Millisecond))
	if result.IsSuccess() {
		successColor.Println("status: success")
	} else {
		warnColor.Println("status: error")
	}
	return printJSON(result.Message)
}
