package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "vol-cli",
	Short: "vol-cli is the command-line interface for the volatility agent.",
	Long: `A CLI for operating the volatility agent: query the prediction gateway,
check job requirements against the service policy, inspect recorded job
outcomes and open jobs as a buyer.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "Path to the .env file (default .env)")

	if err := viper.BindPFlag("AGENT_ENV_FILE", rootCmd.PersistentFlags().Lookup("env-file")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig exposes the chosen env file to the config loader.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if path := viper.GetString("AGENT_ENV_FILE"); path != "" {
		_ = os.Setenv("AGENT_ENV_FILE", path)
	}
}
