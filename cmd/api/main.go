package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dvloznov/budgetwise/internal/api/handlers"
	"github.com/dvloznov/budgetwise/internal/api/middleware"
	"github.com/dvloznov/budgetwise/internal/bigquery"
	"github.com/dvloznov/budgetwise/internal/config"
	infraBQ "github.com/dvloznov/budgetwise/internal/infra/bigquery"
	"github.com/dvloznov/budgetwise/internal/logger"
	"github.com/rs/zerolog"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse command-line flags
	port := flag.String("port", cfg.Port, "HTTP server port (or set BUDGETWISE_PORT)")
	flag.Parse()

	// Initialize logger
	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Stored data is optional; without it only snapshot endpoints work.
	var repo bigquery.BudgetRepository
	if cfg.BigQueryEnabled() {
		bqRepo, err := infraBQ.NewBigQueryBudgetRepository(ctx, cfg.GCPProject, cfg.BigQueryDataset)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create budget repository")
		}
		defer bqRepo.Close()
		repo = bqRepo
		log.Info().Str("project", cfg.GCPProject).Str("dataset", cfg.BigQueryDataset).Msg("BigQuery source enabled")
	} else {
		log.Warn().Msg("No GCP project configured - /api/users endpoints will be disabled")
	}

	reportHandler := handlers.NewReportHandler(repo, handlers.Defaults{
		Currency: cfg.Currency,
		Period:   cfg.DefaultPeriod,
		Location: cfg.Timezone,
	}, log)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      newRouter(reportHandler, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newRouter registers every endpoint and wraps the mux in the middleware chain.
func newRouter(reportHandler *handlers.ReportHandler, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/report", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			reportHandler.Report(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			reportHandler.Insights(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/recurring", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			reportHandler.Recurring(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		// Extract user ID from /api/users/{id}/report
		rest := strings.TrimPrefix(r.URL.Path, "/api/users/")
		userID, ok := strings.CutSuffix(rest, "/report")
		if !ok || userID == "" || strings.Contains(userID, "/") {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		reportHandler.UserReport(w, r, userID)
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	return middleware.Recovery(log)(
		middleware.RequestID(log)(
			middleware.Logger(log)(
				middleware.CORS(mux),
			),
		),
	)
}
