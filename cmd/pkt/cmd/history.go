package cmd

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/sambeau/distress/report"
	"github.com/sambeau/distress/store"
)

func newHistoryCmd(o *options) *cobra.Command {
	var (
		since string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Example: `  pkt history --limit 5
  pkt history --since 24h
  pkt history --since "2026-10-01"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseSince(since, time.Now())
			if err != nil {
				return err
			}

			s, err := store.Open(o.cfg.Store.Driver, o.cfg.Store.DSN)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.List(cmd.Context(), from, limit)
			if err != nil {
				return err
			}
			report.RenderHistory(cmd.OutOrStdout(), runs, o.cfg.Output.Locale)
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "only runs after this date, or this long ago (e.g. 24h)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs (0 for all)")
	return cmd
}

// parseSince accepts a duration back from now or any date dateparse
// understands. Empty means the beginning of time.
func parseSince(since string, now time.Time) (time.Time, error) {
	if since == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(since); err == nil {
		return now.Add(-d), nil
	}
	t, err := dateparse.ParseLocal(since)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since %q: %w", since, err)
	}
	return t, nil
}
