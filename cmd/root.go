// Package cmd contains the command line interface.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/budgetwise/backend/internal/config"
	"github.com/budgetwise/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "budgetwise",
	Short:         "Budgets, expenses and their approval",
	Long:          "Budgetwise serves the budget and expense API and manages the local mirror used by the dashboard.",
	Version:       router.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command named on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, adduserCmd, dashboardCmd)
}

// setupLogging configures the global logger.
//
// The log format can be explicitly set. If it is not set, it defaults
// to human readable for development and JSON for release.
func setupLogging(cfg config.Config, out io.Writer) {
	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	output := out
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: out}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}
