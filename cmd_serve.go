package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/clinsafe/medreview-api/config"
	"github.com/clinsafe/medreview-api/knowledge"
	"github.com/clinsafe/medreview-api/logging"
	"github.com/clinsafe/medreview-api/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP review service",
	Long: `Starts the task-envelope HTTP API. Configuration is read from the
environment (a .env file is loaded when present): PORT, ADDRESS, ENV,
LOG_DIR, LOG_RETENTION_WEEKS, MAX_REQUEST_BODY, MAX_HEADER_SIZE,
DOSAGE_TIMEOUT_MS, KNOWLEDGE_DIR.

When KNOWLEDGE_DIR is set, YAML overlay files from that directory extend
the built-in clinical tables and are reloaded twice daily.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.InitLogger(cfg.LogDir, cfg.LogRetentionWeeks)
	logging.Info("Configuration loaded", "env", cfg.Env, "knowledge_dir", cfg.KnowledgeDir)

	container := knowledge.NewContainer()
	refresher := knowledge.NewRefresher(container, cfg.KnowledgeDir)
	if err := refresher.Start(); err != nil {
		return err
	}
	defer refresher.Stop()

	srv := server.NewServer(cfg, container)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		logging.Info("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
