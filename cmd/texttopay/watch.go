package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fatflowers/texttopay/internal/platform/broadcast"
	"github.com/fatflowers/texttopay/pkg/config"
)

// checkPusherDriver fails when the console is set to the pusher driver,
// naming the app key and cluster the backend broadcasts on so the updates
// can be followed from a browser instead.
func checkPusherDriver(ctx context.Context, c *console) error {
	if d := c.cfg.Broadcast.Driver; d != config.BroadcastDriverPusher && d != "" {
		return nil
	}
	pc, err := c.api.PusherConfig(ctx)
	if err != nil {
		return fmt.Errorf("load broadcast config: %w", err)
	}
	if pc.Key == "" {
		return fmt.Errorf("backend has no pusher key configured; set broadcast.driver=redis on both the backend and the console to watch from here")
	}
	return fmt.Errorf("backend broadcasts on pusher app key %s (cluster %s), which only browser clients can subscribe to; set broadcast.driver=redis on both the backend and the console to watch from here", pc.Key, pc.Cluster)
}

func watchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow payment status updates and apply them to local payments",
		Long: `Subscribes to the payment-updates channel and merges every status
update into the locally stored payments until interrupted.

Pusher channels are consumed by browsers; set broadcast.driver=redis on both
the backend and the console to watch from here.`,
		Args: cobra.NoArgs,
		RunE: withConsole(opts, func(ctx context.Context, c *console, _ []string) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := checkPusherDriver(ctx, c); err != nil {
				return err
			}

			sub, closeFn, err := broadcast.NewSubscriber(c.cfg, c.log)
			if err != nil {
				return err
			}
			defer closeFn()

			subscription, err := sub.Subscribe(ctx, c.cfg.Broadcast.Channel)
			if err != nil {
				return err
			}
			defer subscription.Close()

			fmt.Fprintf(c.out, "Watching %s for %s events (Ctrl+C to stop)\n", c.cfg.Broadcast.Channel, c.cfg.Broadcast.Event)
			err = c.store.Run(ctx, subscription, c.cfg.Broadcast.Event)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}),
	}
}
