package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/jjenkins/legislators/internal/config"
	"github.com/jjenkins/legislators/internal/handlers"
	"github.com/jjenkins/legislators/internal/httpapi"
	"github.com/jjenkins/legislators/internal/observability"
	"github.com/jjenkins/legislators/internal/service"
	"github.com/jjenkins/legislators/internal/store"
	"github.com/spf13/cobra"
)

var port string
var engine string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the legislator directory API server",
	Long: `Start the HTTP server exposing the legislator directory.

Two interchangeable front ends present the same contract: the default
Fiber engine and a net/http engine that also serves Prometheus metrics.`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
	serveCmd.Flags().StringVar(&engine, "engine", "fiber", "HTTP engine to serve with (fiber or std)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	port = resolvePort(cmd.Flags().Changed("port"), port, cfg.Port)

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	slogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	metrics := observability.NewMetrics()
	directory := service.NewDirectory(store.NewLegislatorStore(db))
	weather := service.NewWeatherClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.WeatherTimeout, slogger)

	switch engine {
	case "std":
		serveStd(directory, weather, metrics, slogger)
	case "fiber":
		serveFiber(directory, weather, metrics)
	default:
		log.Fatalf("Unknown engine %q (want fiber or std)", engine)
	}
}

// resolvePort picks the listen port. An explicit --port flag always wins,
// then the PORT env var, then the flag default.
func resolvePort(flagChanged bool, flagValue, envValue string) string {
	if flagChanged || envValue == "" {
		return flagValue
	}
	return envValue
}

func serveFiber(directory *service.Directory, weather *service.WeatherClient, metrics *observability.Metrics) {
	app := fiber.New(fiber.Config{
		AppName: "Legislator Directory",
	})

	app.Use(logger.New())

	// Routes
	app.Get("/health", handlers.HealthHandler())
	app.Get("/api/legislators", handlers.ListLegislatorsHandler(directory))
	app.Get("/api/legislators/:id", handlers.GetLegislatorHandler(directory))
	app.Patch("/api/legislators/:id/notes", handlers.UpdateNotesHandler(directory))
	app.Get("/api/legislators/:id/weather", handlers.WeatherHandler(directory, weather, metrics))
	app.Get("/api/stats/age", handlers.AgeStatsHandler(directory))

	log.Printf("Starting server on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func serveStd(directory *service.Directory, weather *service.WeatherClient, metrics *observability.Metrics, slogger *slog.Logger) {
	server := httpapi.NewServer(":"+port, directory, weather, metrics, slogger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
