package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"market_dashboard/internal/api"
	"market_dashboard/internal/charts"
	"market_dashboard/internal/config"
	"market_dashboard/internal/dashboard"
	"market_dashboard/internal/logger"
	"market_dashboard/internal/marketdata"
	"market_dashboard/internal/monitoring"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	godotenv.Load()

	command := ""
	if len(os.Args) >= 2 {
		command = os.Args[1]
	}

	switch command {
	case "version":
		fmt.Printf("market_dashboard %s (%s)\n", version, commit)
		return
	case "help", "--help", "-h":
		printUsage()
		return
	}

	cfg := config.Load()
	log := logger.New(&logger.Config{
		Level:  logger.Level(cfg.LogLevel),
		Format: logger.Format(cfg.LogFormat),
		File:   cfg.LogFile,
	})
	log.SetDefault()
	defer log.Close()

	client := marketdata.NewClient(cfg.DashboardAPIURL, cfg.FetchTimeout)

	if command == "snapshot" {
		jobName := ""
		if len(os.Args) >= 3 {
			jobName = os.Args[2]
		}
		if err := runSnapshot(os.Stdout, cfg, client, jobName); err != nil {
			slog.Error("Snapshot failed", "error", err)
			log.Close()
			os.Exit(1)
		}
		return
	}

	runServer(cfg, log, client)
}

func printUsage() {
	fmt.Println(`Market Dashboard - Taiwan Job Market Dashboard

Usage:
  market_dashboard [command]

Commands:
  (none)               Start the HTTP server
  snapshot [job_name]  Fetch once and print the chart summary as JSON
  version              Show version information
  help                 Show this help message

Environment Variables:
  DASHBOARD_API_URL     Statistics API base URL (default: http://localhost:8000)
  FETCH_TIMEOUT         Per-load timeout (default: 15s)
  OTHER_THRESHOLD       Industry share below which slices merge into 其他 (default: 5)
  TOP_SKILLS            Skills shown in the skills chart (default: 10)
  REFRESH_RATE_PER_MIN  Manual refreshes allowed per client IP (default: 30)
  CORS_ORIGINS          Comma-separated allowed origins (default: *)
  LOG_LEVEL             DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT            json or text (default: json)
  LOG_FILE              Rotating WARN/ERROR log file (default: disabled)
  PORT                  Server port (default: 8090)`)
}

func chartOptions(cfg *config.Config) charts.Options {
	opts := charts.DefaultOptions()
	opts.OtherThreshold = cfg.OtherThreshold
	opts.TopSkills = cfg.TopSkills
	return opts
}

// runSnapshot performs a single load and prints what the charts would show.
func runSnapshot(out io.Writer, cfg *config.Config, client *marketdata.Client, jobName string) error {
	ctrl := dashboard.NewController(client, dashboard.WithTimeout(cfg.FetchTimeout))

	state := ctrl.Load(context.Background(), jobName)
	if msg := state.ErrorMessage(); msg != "" {
		return fmt.Errorf("load dashboard: %s", msg)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Filter  string         `json:"filter"`
		Summary charts.Summary `json:"summary"`
	}{state.Filter, charts.Summarize(state.Data, chartOptions(cfg))})
}

func runServer(cfg *config.Config, log *logger.Logger, client *marketdata.Client) {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	probe, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := client.HealthCheck(probe); err != nil {
		slog.Warn("Statistics API not reachable yet", "url", cfg.DashboardAPIURL, "error", err)
	}
	cancel()

	// Metrics
	reg := prometheus.NewRegistry()
	metrics := monitoring.New(reg)

	// Dashboard controller
	ctrl := dashboard.NewController(client,
		dashboard.WithTimeout(cfg.FetchTimeout),
		dashboard.WithRecorder(metrics),
		dashboard.WithLogger(log.WithComponent("dashboard").Logger),
	)
	ctrl.Start(ctx)
	slog.Info("Dashboard controller started", "api", cfg.DashboardAPIURL, "timeout", cfg.FetchTimeout)

	// Router
	router := api.SetupRouter(cfg, log, metrics, ctrl)

	// Server
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting market dashboard", "address", addr, "version", version)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	stop()
	ctrl.Wait()
	slog.Info("Server stopped")
}
