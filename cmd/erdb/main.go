// Command erdb synthesizes effects from parameter rows and evaluates
// armament attack power.
//
// Usage:
//
//	erdb effects [row...]                 # synthesize and aggregate effect rows
//	erdb attack Longsword --affinity Heavy --level 10 --str 40 --dex 20
//	erdb batch --all --str 40 --dex 40    # evaluate every armament variant
//	erdb migrate                          # apply result store migrations
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}
