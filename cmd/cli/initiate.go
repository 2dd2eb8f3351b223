package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/volatility-agent/internal/acp"
	"github.com/sevigo/volatility-agent/internal/core"
)

var (
	initiateProvider  string
	initiateEvaluator string
	initiateSymbol    string
	initiateHorizon   int
	initiateTTL       time.Duration
)

var initiateCmd = &cobra.Command{
	Use:   "initiate",
	Short: "Open a volatility prediction job with a provider",
	Long: `Open a new job as a buyer. The buyer agent process then pays and
evaluates it as the job moves through its phases.

Examples:
  vol-cli initiate --provider 0xabc... --symbol BTC --horizon 60`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ACP.Validate(); err != nil {
			return err
		}

		evaluator := initiateEvaluator
		if evaluator == "" {
			evaluator = cfg.Agent.EvaluatorAddress
		}
		if evaluator == "" {
			evaluator = cfg.ACP.AgentWalletAddress
		}
		ttl := initiateTTL
		if ttl <= 0 {
			ttl = cfg.Agent.JobTTL
		}

		req := core.InitiateRequest{
			ProviderAddress:  initiateProvider,
			EvaluatorAddress: evaluator,
			Requirement: core.Requirement{
				Symbol:     strings.ToUpper(strings.TrimSpace(initiateSymbol)),
				HorizonMin: initiateHorizon,
			},
			ExpiresAt: time.Now().Add(ttl),
		}

		client := acp.NewClient(cmd.Context(), &cfg.ACP, logger)
		jobID, err := client.InitiateJob(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to initiate job: %w", err)
		}

		successColor.Printf("✓ job %d initiated\n", jobID)
		dimColor.Printf("provider=%s evaluator=%s expires=%s\n", req.ProviderAddress, req.EvaluatorAddress, req.ExpiresAt.Format(time.RFC3339))
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	initiateCmd.Flags().StringVar(&initiateProvider, "provider", "", "Wallet address of the providing agent")
	initiateCmd.Flags().StringVar(&initiateEvaluator, "evaluator", "", "Evaluator wallet address (defaults to AGENT_EVALUATOR_ADDRESS or the agent wallet)")
	initiateCmd.Flags().StringVar(&initiateSymbol, "symbol", "BTC", "Asset symbol to predict")
	initiateCmd.Flags().IntVar(&initiateHorizon, "horizon", 60, "Prediction horizon in minutes")
	initiateCmd.Flags().DurationVar(&initiateTTL, "ttl", 0, "Job expiry from now (defaults to AGENT_JOB_TTL)")
	_ = initiateCmd.MarkFlagRequired("provider")
	rootCmd.AddCommand(initiateCmd)
}
