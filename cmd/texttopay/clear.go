package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func clearCmd(opts *globalOptions) *cobra.Command {
	var yes bool
	var cmd *cobra.Command
	cmd = &cobra.Command{
		Use:   "clear",
		Short: "Delete all locally stored customers, payments and activity",
		Args:  cobra.NoArgs,
		RunE: withConsole(opts, func(ctx context.Context, c *console, _ []string) error {
			if !yes {
				fmt.Fprint(c.out, "Are you sure you want to clear all data? This cannot be undone. [y/N] ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
					fmt.Fprintln(c.out, "Aborted")
					return nil
				}
			}
			return c.store.ClearAll(ctx)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
