package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jjenkins/legislators/internal/config"
	"github.com/jjenkins/legislators/internal/observability"
	"github.com/jjenkins/legislators/internal/service"
	"github.com/jjenkins/legislators/internal/store"
	"github.com/spf13/cobra"
)

var ingestReplace bool
var ingestFile string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest legislator data from the source CSV feed",
	Long: `Ingest downloads the legislators CSV feed, validates each row, and
upserts the records into PostgreSQL keyed by govtrack_id.

By default rows are merged: existing records are overwritten field by
field, except operator notes, which survive re-ingestion. With --replace
the table is cleared and repopulated inside a single transaction.

Examples:
  # Merge the remote feed into the current table
  ./legislators ingest

  # Clear and repopulate from the remote feed
  ./legislators ingest --replace

  # Ingest from a local CSV file
  ./legislators ingest --file legislators-current.csv`,
	Run: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().BoolVar(&ingestReplace, "replace", false, "Clear existing data before ingesting")
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Ingest from a local CSV file instead of the feed URL")
}

func runIngest(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Connect to database
	log.Println("Connecting to database...")
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Create dependencies
	var feed service.FeedSource
	if ingestFile != "" {
		feed = service.NewFileFeed(ingestFile)
	} else {
		feed = service.NewHTTPFeed(cfg.FeedURL, cfg.FeedTimeout)
	}

	mode := service.ModeMerge
	if ingestReplace {
		mode = service.ModeReplace
	}

	metrics := observability.NewMetrics()
	legislatorStore := store.NewLegislatorStore(db)
	ingester := service.NewIngester(feed, service.NewParser(), legislatorStore, metrics)

	log.Printf("Starting %s ingest...", mode)
	stats, err := ingester.Run(ctx, mode)
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Ingest cancelled")
			os.Exit(1)
		}
		log.Fatalf("Ingest failed: %v", err)
	}
	ingester.PrintSummary(stats)
}
