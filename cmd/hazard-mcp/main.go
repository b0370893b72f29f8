package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironsheep/hazard-mcp/internal/config"
	"github.com/ironsheep/hazard-mcp/internal/observability"
	"github.com/ironsheep/hazard-mcp/internal/server"
	"github.com/ironsheep/hazard-mcp/internal/store"
	"github.com/ironsheep/hazard-mcp/internal/weather"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("hazard-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("hazard-mcp - MCP server for road hazard analytics")
			fmt.Println()
			fmt.Println("Usage: hazard-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  STORE_BACKEND=supabase|sqlite   Hazard store (default supabase)")
			fmt.Println("  SUPABASE_URL, SUPABASE_SERVICE_ROLE_KEY|SUPABASE_ANON_KEY")
			fmt.Println("  SQLITE_PATH=hazards.db          Database file for the sqlite backend")
			fmt.Println("  OPENWEATHER_API_KEY             Enables weather-adjusted projections")
			fmt.Println("  TRANSPORT=stdio|http            Protocol transport (default stdio)")
			fmt.Println("  HTTP_ADDR=:8080                 Listen address for the http transport")
			fmt.Println("  LOG_LEVEL=debug|info|warn|error LOG_FORMAT=text|json")
			fmt.Println()
			fmt.Println("On the stdio transport the server speaks MCP over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hazard-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting hazard-mcp",
		"version", Version,
		"backend", cfg.StoreBackend,
		"transport", cfg.Transport,
	)

	metrics := observability.NewMetrics()

	st, closeStore, err := newStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var conditions weather.ConditionSource
	if cfg.OpenWeatherKey != "" {
		client := weather.NewClient(cfg.OpenWeatherKey, cfg.WeatherTimeout, logger)
		conditions = weather.NewCachedSource(client, cfg.WeatherCacheTTL, nil)
	} else {
		logger.Info("OPENWEATHER_API_KEY not set, projections use neutral growth unless a condition is supplied")
	}

	srv := server.New(st, conditions, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Transport {
	case config.TransportHTTP:
		return runHTTP(ctx, cfg, srv, logger)
	default:
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("server stopped")
		return nil
	}
}

// newStore builds the configured store backend and returns a close func for
// the backends that hold resources.
func newStore(cfg *config.Config, logger *slog.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		db, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return db, func() { _ = db.Close() }, nil
	default:
		sb := store.NewSupabase(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StoreTimeout, logger)
		return sb, func() {}, nil
	}
}

func runHTTP(ctx context.Context, cfg *config.Config, srv *server.Server, logger *slog.Logger) error {
	httpSrv := server.NewHTTPServer(cfg.HTTPAddr, srv, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
