package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/holocron-cli/holocron/pkg/config"
)

func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics per tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDataDir(); err != nil {
				return err
			}

			tiered, err := openStore(cfg)
			if err != nil {
				return err
			}
			if tiered == nil {
				fmt.Println("Caching is disabled.")
				return nil
			}
			defer func() { _ = tiered.Close() }()

			ts, err := tiered.TierStats()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIER\tENTRIES\tHITS\tMISSES")
			fmt.Fprintf(w, "memory\t%d\t%d\t%d\n", ts.Memory.Entries, ts.Memory.Hits, ts.Memory.Misses)
			fmt.Fprintf(w, "disk\t%d\t%d\t%d\n", ts.Disk.Entries, ts.Disk.Hits, ts.Disk.Misses)
			fmt.Fprintf(w, "combined\t%d\t%d\t%d\n", ts.Combined.Entries, ts.Combined.Hits, ts.Combined.Misses)
			return w.Flush()
		},
	}

	var expiredOnly bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cache entries in every tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDataDir(); err != nil {
				return err
			}

			tiered, err := openStore(cfg)
			if err != nil {
				return err
			}
			if tiered == nil {
				fmt.Println("Caching is disabled.")
				return nil
			}
			defer func() { _ = tiered.Close() }()

			if err := tiered.Clear(expiredOnly); err != nil {
				return err
			}
			if expiredOnly {
				fmt.Println("Expired cache entries cleared.")
			} else {
				fmt.Println("All cache entries cleared.")
			}
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&expiredOnly, "expired", false, "only clear expired entries")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "holocron.yaml", "path to config file")
	cmd.AddCommand(statsCmd, clearCmd)
	return cmd
}
