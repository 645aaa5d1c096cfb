package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holocron-cli/holocron/pkg/swapi"
)

func newSearchCmd() *cobra.Command {
	var (
		configPath string
		world      bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Look up Star Wars characters by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, cleanup, err := newClient(configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			res, err := client.Search(context.Background(), args[0], swapi.SearchOptions{Homeworld: world})
			if err != nil {
				return searchFailure(cmd, err, strict)
			}

			for res.Next() {
				fmt.Fprintln(out)
				fmt.Fprintln(out, res.Block())
			}
			if err := res.Err(); err != nil {
				return searchFailure(cmd, err, strict)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "holocron.yaml", "path to config file")
	cmd.Flags().BoolVar(&world, "world", false, "include homeworld details")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero on lookup failure")
	return cmd
}

// searchFailure reports a failed lookup. Strict mode returns the error
// through cobra; the default prints the human-readable message and
// keeps the exit code zero.
func searchFailure(cmd *cobra.Command, err error, strict bool) error {
	if strict {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), friendlyMessage(err))
	return nil
}

func friendlyMessage(err error) string {
	var ue *swapi.UpstreamError
	switch {
	case errors.Is(err, swapi.ErrNotFound):
		return "The force is not strong within you"
	case errors.As(err, &ue):
		return fmt.Sprintf("Error: Could not reach API. Status code: %d", ue.StatusCode)
	default:
		return "Error: " + err.Error()
	}
}
