package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/budgetwise/backend/internal/config"
	"github.com/budgetwise/backend/internal/mirror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var dashboardFlags struct {
	offline bool
	timeout time.Duration
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard",
	Long: `Print metrics, alerts and budget health.

Online, the local mirror is refreshed from the server at MIRROR_URL with the
token in MIRROR_TOKEN first. With --offline or without MIRROR_URL, only the
local mirror at MIRROR_PATH is used.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		setupLogging(cfg, cmd.ErrOrStderr())

		ctx, cancel := context.WithTimeout(cmd.Context(), dashboardFlags.timeout)
		defer cancel()

		return showDashboard(ctx, cfg.Mirror, dashboardFlags.offline, cmd.OutOrStdout())
	},
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardFlags.offline, "offline", false, "Only use the local mirror")
	dashboardCmd.Flags().DurationVar(&dashboardFlags.timeout, "timeout", 30*time.Second, "Timeout for requests to the server")
}

func showDashboard(ctx context.Context, cfg config.MirrorConfig, offline bool, out io.Writer) error {
	options := mirror.Options{
		Online: !offline && cfg.URL != "",
		Store:  mirror.FileStore{Path: cfg.Path},
	}
	if options.Online {
		options.Remote = mirror.NewClient(cfg.URL, cfg.Token)
	}

	state, err := mirror.New(ctx, options)
	if err != nil {
		return err
	}

	err = state.Refresh(ctx)
	var apiErr *mirror.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return fmt.Errorf("the server rejected the token: %w", err)
	} else if err != nil {
		log.Warn().Err(err).Msg("Showing cached data")
	}

	now := time.Now().UTC()
	fmt.Fprintln(out, renderMetrics(state.Metrics(ctx, now), state.Online()))
	fmt.Fprintln(out, renderAlerts(state.Alerts()))
	fmt.Fprintln(out, renderHealth(state.Health()))
	return nil
}
