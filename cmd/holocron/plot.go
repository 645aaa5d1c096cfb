package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/holocron-cli/holocron/pkg/chart"
	"github.com/holocron-cli/holocron/pkg/models"
)

func newPlotCmd() *cobra.Command {
	var (
		configPath string
		byResults  bool
		byTime     bool
		width      int
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart search history as bar charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if byResults && byTime {
				return errors.New("--results and --time are mutually exclusive")
			}

			rec, cfg, err := openHistory(configPath)
			if err != nil {
				return err
			}
			defer func() { _ = rec.Close() }()

			ctx := context.Background()
			r := chart.New(cmd.OutOrStdout())
			switch {
			case width > 0:
				r.Width = width
			case cfg.Chart.Width > 0:
				r.Width = cfg.Chart.Width
			}

			switch {
			case byTime:
				lats, err := rec.LatencyByName(ctx)
				if err != nil {
					return err
				}
				bars := make([]chart.Bar, len(lats))
				for i, l := range lats {
					bars[i] = chart.Bar{Label: l.Name, Value: l.AvgMS}
				}
				return r.Render("Average search time", bars, func(v float64) string {
					return fmt.Sprintf("%.0fms", v)
				})
			case byResults:
				counts, err := rec.ResultCounts(ctx)
				if err != nil {
					return err
				}
				return r.Render("Results by character", countBars(counts), countFormat)
			default:
				counts, err := rec.SearchCounts(ctx)
				if err != nil {
					return err
				}
				return r.Render("Searches by name", countBars(counts), countFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "holocron.yaml", "path to config file")
	cmd.Flags().BoolVar(&byResults, "results", false, "chart result names instead of queries")
	cmd.Flags().BoolVar(&byTime, "time", false, "chart average search time per query")
	cmd.Flags().IntVar(&width, "width", 0, "chart width in columns (overrides chart.width from config)")
	return cmd
}

func countBars(counts []models.NameCount) []chart.Bar {
	bars := make([]chart.Bar, len(counts))
	for i, c := range counts {
		bars[i] = chart.Bar{Label: c.Name, Value: float64(c.Count)}
	}
	return bars
}

func countFormat(v float64) string {
	return strconv.Itoa(int(v))
}
