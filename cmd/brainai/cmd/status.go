package cmd

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/brainai/internal/output"
)

type statusReport struct {
	BaseURL string         `json:"base_url"`
	Healthy bool           `json:"healthy"`
	Error   string         `json:"error,omitempty"`
	Status  map[string]any `json:"status,omitempty"`
}

func newStatusCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check service health and status",
		Long: `Check that the Brain AI service is reachable and print its status.

The health check and the status request run concurrently. An unhealthy
service is reported, not treated as a command failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}

			report := statusReport{BaseURL: client.Config().BaseURL}
			var healthErr error

			eg, ctx := errgroup.WithContext(cmd.Context())
			eg.Go(func() error {
				report.Healthy, healthErr = client.HealthCheck(ctx)
				return nil
			})
			eg.Go(func() error {
				// Status is informational; a failure shows up through the health check.
				report.Status, _ = client.Status(ctx)
				return nil
			})
			_ = eg.Wait()

			if healthErr != nil {
				report.Error = healthErr.Error()
			}

			return g.render(cmd, report, func(out *output.Writer) {
				if report.Healthy {
					out.Successf("Brain AI service at %s is healthy", report.BaseURL)
				} else {
					out.Errorf("Brain AI service at %s is not healthy", report.BaseURL)
					if report.Error != "" {
						out.Status("", report.Error)
					}
				}
				if len(report.Status) > 0 {
					out.Newline()
					out.Header("Status")
					out.Map(report.Status)
				}
			})
		},
	}
}

func newStatsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show service statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := g.client()
			if err != nil {
				return err
			}
			stats, err := client.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			return g.render(cmd, stats, func(out *output.Writer) {
				out.Header("Statistics")
				if len(stats) == 0 {
					out.Status("", "No statistics reported")
					return
				}
				out.Map(stats)
			})
		},
	}
}
