package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sevigo/volatility-agent/internal/core"
	"github.com/sevigo/volatility-agent/internal/wire"
)

var (
	outputJSON  bool
	statusLimit int
)

var statusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Shows the recorded outcomes of handled job events",
	Long: `Shows the outcomes the agent recorded while handling job events. Without
a job id the most recent outcomes across all jobs are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()

		store, cleanup, err := wire.InitializeStore()
		if err != nil {
			return fmt.Errorf("failed to initialize outcome store: %w", err)
		}
		defer cleanup()

		var outcomes []*core.Outcome
		if len(args) == 1 {
			jobID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q: %w", args[0], err)
			}
			outcomes, err = store.GetOutcomesForJob(ctx, jobID)
			if err != nil {
				return fmt.Errorf("failed to retrieve outcomes for job %d: %w", jobID, err)
			}
		} else {
			outcomes, err = store.GetRecentOutcomes(ctx, statusLimit)
			if err != nil {
				return fmt.Errorf("failed to retrieve outcomes: %w", err)
			}
		}

		if outputJSON {
			return printJSON(outcomes)
		}

		if len(outcomes) == 0 {
			dimColor.Println("No job outcomes have been recorded yet.")
			return nil
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Job", "Phase", "Action", "Detail", "Recorded"})
		for _, o := range outcomes {
			tw.AppendRow(table.Row{
				o.JobID,
				o.Phase,
				o.Action,
				truncate(o.Detail, 60),
				o.CreatedAt.Format(time.RFC822),
			})
		}
		tw.Render()
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	statusCmd.Flags().BoolVar(&outputJSON, "json", false, "Output status as JSON")
	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 20, "Number of recent outcomes to list")
	rootCmd.AddCommand(statusCmd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
