/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the time ledger service. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (viper: file + TIMELEDGER_* env + defaults)
  3. Initialize logger and SQLite store
  4. Optionally seed demo data
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Optional config file path
  -port    HTTP server port (overrides config)
  -db      SQLite database path (overrides config)
           Use ":memory:" for an in-memory database
  -seed    Load the demo tenant on startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database and demo data
  ./server -db="./data/timeledger.db" -seed

  # Run with in-memory database
  ./server -db=":memory:" -seed

SEE ALSO:
  - config/config.go: Configuration shape and defaults
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crewops/timeledger/api"
	"github.com/crewops/timeledger/config"
	"github.com/crewops/timeledger/logging"
	"github.com/crewops/timeledger/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "config file path")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	seed := flag.Bool("seed", false, "load demo tenant on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	log := logging.New("timeledger", cfg.Server.Environment)

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer store.Close()

	if *seed {
		if err := store.SeedDemo(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
		log.Info().Str("tenant", sqlite.DemoTenantID).Msg("demo tenant loaded")
	}

	// Initialize handler and router
	handler := api.NewHandler(store, log)
	router := api.NewRouter(handler, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
