package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"matrixlens/internal/web"
)

// serveCmd starts the web interface.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface and JSON API",
	Long: `Serves the browse, course, outcome and compare pages over HTTP,
plus the JSON API under /api/v1 and prometheus metrics at /metrics.

Example:
  matrixlens serve
  matrixlens serve --data-dir ./data`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, cat, err := buildCatalog()
	if err != nil {
		return err
	}
	srv := web.New(cfg, cat, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", zap.String("signal", sig.String()))
		if err := srv.Shutdown(); err != nil {
			logger.Warn("shutdown failed", zap.Error(err))
		}
	}()

	return srv.Start()
}
