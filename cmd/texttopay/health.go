package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func healthCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the backend and which credentials it has",
		Args:  cobra.NoArgs,
		RunE: withConsole(opts, func(ctx context.Context, c *console, _ []string) error {
			h, err := c.api.Health(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Backend:       %s (%s)\n", h.Status, c.cfg.Client.ServerURL)
			fmt.Fprintf(c.out, "Worldpay key:  %s\n", configured(h.Environment.HasWorldpayKey))
			fmt.Fprintf(c.out, "Worldpay MID:  %s\n", configured(h.Environment.HasWorldpayMid))
			fmt.Fprintf(c.out, "Pusher:        %s\n", configured(h.Environment.HasPusherConfig))
			return nil
		}),
	}
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing"
}
