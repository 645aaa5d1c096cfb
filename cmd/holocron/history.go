package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/holocron-cli/holocron/pkg/config"
	"github.com/holocron-cli/holocron/pkg/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, _, err := openHistory(configPath)
			if err != nil {
				return err
			}
			defer func() { _ = rec.Close() }()

			events, err := rec.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No searches recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tQUERY\tRESULT\tCOUNT\tELAPSED\tCACHE\tERROR")
			for _, ev := range events {
				result := ev.ResultName
				if result == "" {
					result = "-"
				}
				elapsed := "-"
				if ev.ElapsedMS >= 0 {
					elapsed = fmt.Sprintf("%dms", ev.ElapsedMS)
				}
				hit := "miss"
				if ev.CacheHit {
					hit = "hit"
				}
				errText := ev.Error
				if errText == "" {
					errText = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
					ev.CreatedAt.Format("2006-01-02T15:04:05"), ev.Query, result, ev.ResultCount, elapsed, hit, errText)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events to show")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import search events from a legacy text log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer f.Close()

			legacy, err := history.ParseLegacyLog(f)
			if err != nil {
				return err
			}
			events := legacy.Events()
			if len(events) == 0 {
				fmt.Println("No searches found in log.")
				return nil
			}

			rec, _, err := openHistory(configPath)
			if err != nil {
				return err
			}
			defer func() { _ = rec.Close() }()

			ctx := context.Background()
			for _, ev := range events {
				if err := rec.Record(ctx, ev); err != nil {
					return fmt.Errorf("record event: %w", err)
				}
			}
			fmt.Printf("Imported %d events from %s.\n", len(events), args[0])
			return nil
		},
	}

	var before time.Duration
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete search events",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, _, err := openHistory(configPath)
			if err != nil {
				return err
			}
			defer func() { _ = rec.Close() }()

			n, err := rec.Purge(context.Background(), before)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d events.\n", n)
			return nil
		},
	}
	clearCmd.Flags().DurationVar(&before, "before", 0, "only delete events older than this (0 = everything)")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "holocron.yaml", "path to config file")
	cmd.AddCommand(importCmd, clearCmd)
	return cmd
}

func openHistory(configPath string) (*history.SQLiteRecorder, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, nil, err
	}
	rec, err := history.New(cfg.HistoryPath())
	if err != nil {
		return nil, nil, fmt.Errorf("init history: %w", err)
	}
	return rec, cfg, nil
}
