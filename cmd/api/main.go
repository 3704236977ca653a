package main

// @title           Text-to-Pay API
// @version         1.0
// @description     Creates Worldpay text-to-pay customers and payment requests and relays payment-status webhooks to subscribers.

// @host      localhost:3000
// @BasePath  /

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/texttopay/internal/app"
)

func main() {
	os.Exit(run())
}

// run starts the server and blocks until SIGINT/SIGTERM, returning the exit code.
func run() int {
	a := fx.New(app.Module)
	if err := a.Err(); err != nil {
		zap.NewExample().Sugar().Errorf("failed to build app: %v", err)
		return 1
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		// the app logger may not exist yet
		zap.NewExample().Sugar().Errorf("failed to start app: %v", err)
		return 1
	}

	sig := <-a.Done()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
	defer cancelStop()
	if err := a.Stop(stopCtx); err != nil {
		zap.NewExample().Sugar().Errorf("failed to stop app after %s: %v", sig, err)
		return 1
	}
	return 0
}
