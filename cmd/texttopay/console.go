package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/texttopay/internal/app/service/reconcile"
	"github.com/fatflowers/texttopay/internal/platform/backend"
	"github.com/fatflowers/texttopay/internal/platform/db"
	"github.com/fatflowers/texttopay/pkg/config"
	"github.com/fatflowers/texttopay/pkg/logger"
	"github.com/fatflowers/texttopay/pkg/types"
)

type globalOptions struct {
	serverURL string
	dataFile  string
	verbose   bool
}

// console is what every command works against: config, the backend client
// and a store loaded from local storage.
type console struct {
	cfg   *config.Config
	log   *zap.SugaredLogger
	db    *gorm.DB
	api   *backend.Client
	store *reconcile.Store
	out   io.Writer
}

func openConsole(cmd *cobra.Command, opts *globalOptions) (*console, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if opts.serverURL != "" {
		cfg.Client.ServerURL = opts.serverURL
	}
	if opts.dataFile != "" {
		cfg.Client.DataFile = opts.dataFile
	}

	log, err := logger.NewConsole(opts.verbose)
	if err != nil {
		return nil, err
	}
	gdb, err := db.OpenClientStore(log, cfg.Client.DataFile)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	api := backend.New(cfg.Client.ServerURL, nil, log)
	store := reconcile.New(reconcile.NewGormStorage(gdb), api, log, reconcile.WithNotifier(printNotifier{out: out}))
	if err := store.Load(cmd.Context()); err != nil {
		_ = db.Close(log, gdb)
		return nil, err
	}
	return &console{cfg: cfg, log: log, db: gdb, api: api, store: store, out: out}, nil
}

func (c *console) Close() {
	_ = db.Close(c.log, c.db)
	_ = c.log.Sync()
}

// withConsole opens the console around fn.
func withConsole(opts *globalOptions, fn func(ctx context.Context, c *console, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := openConsole(cmd, opts)
		if err != nil {
			return err
		}
		defer c.Close()
		return fn(cmd.Context(), c, args)
	}
}

type printNotifier struct{ out io.Writer }

func (n printNotifier) Notify(level types.ActivityType, message string) {
	fmt.Fprintf(n.out, "[%s] %s\n", level, message)
}

func (n printNotifier) Celebrate() {
	fmt.Fprintln(n.out, "🎉🎉🎉")
}

// dollars renders minor units as a dollar amount.
func dollars(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}

// timeAgo renders t relative to now the way the activity feed does.
func timeAgo(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	}
	return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
}
