package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/davidbz/llmbench/internal/httpserver"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var pricingFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the benchmark API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			container, err := buildContainer(containerOptions{pricingFile: pricingFile})
			if err != nil {
				return err
			}

			return container.Invoke(func(_ *zap.Logger, server *httpserver.Server, stores *historyStores) (err error) {
				defer func() { err = multierr.Append(err, stores.Close()) }()

				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				errCh := make(chan error, 1)
				go func() {
					errCh <- server.Start()
				}()

				select {
				case err := <-errCh:
					return err
				case <-ctx.Done():
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return err
				}

				if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&pricingFile, "pricing-file", "", "YAML pricing overrides (default PRICING_FILE)")

	return cmd
}
