package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/budgetwise/internal/config"
	infraBQ "github.com/dvloznov/budgetwise/internal/infra/bigquery"
	"github.com/dvloznov/budgetwise/internal/logger"
	"github.com/dvloznov/budgetwise/internal/period"
	"github.com/dvloznov/budgetwise/internal/report"
	"github.com/dvloznov/budgetwise/internal/snapshot"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// commands maps each subcommand to the section of the report it prints.
var commands = map[string]func(w io.Writer, r report.Report) error{
	"insights":  printInsights,
	"health":    printHealth,
	"available": printAvailable,
	"trend":     printTrend,
	"summary":   printSummary,
	"recurring": printRecurring,
	"report":    printReport,
}

// jsonSections picks what -json emits for each subcommand.
var jsonSections = map[string]func(r report.Report) interface{}{
	"insights":  func(r report.Report) interface{} { return r.Insights },
	"health":    func(r report.Report) interface{} { return r.Health },
	"available": func(r report.Report) interface{} { return r.Available },
	"trend": func(r report.Report) interface{} {
		return map[string]interface{}{"trend": r.Trend, "category_trends": r.CategoryTrends}
	},
	"summary": func(r report.Report) interface{} {
		return map[string]interface{}{"spending": r.Spending, "breakdown": r.Breakdown, "daily": r.Daily}
	},
	"recurring": func(r report.Report) interface{} { return r.Recurring },
	"report":    func(r report.Report) interface{} { return r },
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "help", "-h", "--help":
		printUsage()
		return
	}
	if _, ok := commands[cmd]; !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout stays clean for -json.
	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Out: os.Stderr})

	if err := run(cmd, os.Args[2:], cfg, log, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Str("command", cmd).Msg("Command failed")
	}
}

func printUsage() {
	fmt.Println("BudgetWise CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  budgetwise <command> (-snapshot PATH|gs://bucket/object | -bigquery -user ID) [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  insights   Budget status per category, most urgent first")
	fmt.Println("  health     Overall budget totals and status counts")
	fmt.Println("  available  Money left to spend in the period and per day")
	fmt.Println("  trend      Spending compared with the previous period")
	fmt.Println("  summary    Top category, largest expense and daily average")
	fmt.Println("  recurring  Transactions that repeat on a regular cadence")
	fmt.Println("  report     Everything above")
	fmt.Println("  help       Show this help message")
	fmt.Println("\nRun 'budgetwise <command> -h' for more information on a command.")
}

// cliOptions are the flags shared by every subcommand.
type cliOptions struct {
	snapshotPath string
	useBigQuery  bool
	userID       string
	asJSON       bool
	report       report.Options
}

// parseFlags parses args for cmd, using cfg for defaults.
func parseFlags(cmd string, args []string, cfg *config.Config) (cliOptions, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	snapshotPath := fs.String("snapshot", "", "Snapshot JSON file path or gs://bucket/object URI")
	useBigQuery := fs.Bool("bigquery", false, "Read the user's data from BigQuery (needs BUDGETWISE_GCP_PROJECT)")
	userID := fs.String("user", "", "User ID for -bigquery")
	periodName := fs.String("period", string(cfg.DefaultPeriod), "Period: daily, weekly, monthly or yearly")
	nowStr := fs.String("now", "", "Evaluate as of this date (YYYY-MM-DD), defaults to today")
	bills := fs.String("bills", "0", "Upcoming bills to set aside")
	currency := fs.String("currency", cfg.Currency, "Currency symbol for suggestions")
	asJSON := fs.Bool("json", false, "Print JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	if (*snapshotPath != "") == *useBigQuery {
		return cliOptions{}, fmt.Errorf("exactly one of -snapshot or -bigquery is required")
	}
	if *useBigQuery && *userID == "" {
		return cliOptions{}, fmt.Errorf("-user is required with -bigquery")
	}

	p, err := period.Parse(*periodName)
	if err != nil {
		return cliOptions{}, fmt.Errorf("-period: %w", err)
	}

	now := time.Now().In(cfg.Timezone)
	if *nowStr != "" {
		d, err := civil.ParseDate(*nowStr)
		if err != nil {
			return cliOptions{}, fmt.Errorf("-now: %w", err)
		}
		now = d.In(cfg.Timezone)
	}

	upcoming, err := decimal.NewFromString(strings.TrimSpace(*bills))
	if err != nil || upcoming.IsNegative() {
		return cliOptions{}, fmt.Errorf("-bills: invalid amount %q", *bills)
	}

	return cliOptions{
		snapshotPath: *snapshotPath,
		useBigQuery:  *useBigQuery,
		userID:       *userID,
		asJSON:       *asJSON,
		report: report.Options{
			Now:           now,
			Period:        p,
			Currency:      *currency,
			UpcomingBills: upcoming,
		},
	}, nil
}

func run(cmd string, args []string, cfg *config.Config, log zerolog.Logger, out io.Writer) error {
	opts, err := parseFlags(cmd, args, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	source, closeSource, err := openSource(ctx, opts, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	snap, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	log.Debug().
		Int("transactions", len(snap.Transactions)).
		Int("categories", len(snap.Categories)).
		Int("goals", len(snap.Goals)).
		Str("period", string(opts.report.Period)).
		Msg("Snapshot loaded")

	r := report.Build(snap, opts.report)

	if opts.asJSON {
		return writeJSON(out, jsonSections[cmd](r))
	}
	return commands[cmd](out, r)
}

// openSource picks the snapshot source from the flags. The returned close
// function is always safe to call.
func openSource(ctx context.Context, opts cliOptions, cfg *config.Config) (snapshot.Source, func(), error) {
	noop := func() {}

	switch {
	case opts.useBigQuery:
		if !cfg.BigQueryEnabled() {
			return nil, noop, fmt.Errorf("-bigquery needs %s to be set", config.EnvGCPProject)
		}
		repo, err := infraBQ.NewBigQueryBudgetRepository(ctx, cfg.GCPProject, cfg.BigQueryDataset)
		if err != nil {
			return nil, noop, err
		}
		closeRepo := func() { repo.Close() }
		return infraBQ.NewSnapshotSource(repo, opts.userID, opts.report.Now), closeRepo, nil

	case snapshot.IsGCSURI(opts.snapshotPath):
		fetcher, err := snapshot.NewGCSFetcher(ctx)
		if err != nil {
			return nil, noop, err
		}
		closeFetcher := func() { fetcher.Close() }
		return snapshot.GCSSource{URI: opts.snapshotPath, Fetcher: fetcher}, closeFetcher, nil

	default:
		return snapshot.FileSource{Path: opts.snapshotPath}, noop, nil
	}
}
