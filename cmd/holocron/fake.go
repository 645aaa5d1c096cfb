package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/holocron-cli/holocron/pkg/swapi"
)

// fakeNames are real upstream characters, so fake searches exercise
// the full fetch/cache/record pipeline with live-looking data.
var fakeNames = []string{
	"Luke Skywalker", "Leia Organa", "Han Solo", "Darth Vader",
	"Obi-Wan Kenobi", "Yoda", "Chewbacca", "R2-D2", "C-3PO",
	"Boba Fett",
}

func newFakeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "fake [count]",
		Short: "Run random searches to seed the history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 5
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("invalid search count: %q", args[0])
				}
				count = n
			}

			client, _, cleanup, err := newClient(configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()
			for i := 0; i < count; i++ {
				name := fakeNames[rand.IntN(len(fakeNames))]
				fmt.Printf("Searching %s...\n", name)

				res, err := client.Search(ctx, name, swapi.SearchOptions{})
				if err != nil {
					// Recorded in history either way; keep seeding.
					fmt.Println(friendlyMessage(err))
					continue
				}
				for res.Next() {
				}
				if err := res.Err(); err != nil {
					fmt.Println(friendlyMessage(err))
				}
			}
			fmt.Printf("Ran %d searches.\n", count)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "holocron.yaml", "path to config file")
	return cmd
}
