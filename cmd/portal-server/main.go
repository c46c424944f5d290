package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/helixlab/portal/internal/config"
	"github.com/helixlab/portal/internal/domain/catalog"
	"github.com/helixlab/portal/internal/domain/order"
	"github.com/helixlab/portal/internal/domain/tracking"
	"github.com/helixlab/portal/internal/platform/auth"
	"github.com/helixlab/portal/internal/platform/cache"
	"github.com/helixlab/portal/internal/platform/gateway"
	"github.com/helixlab/portal/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal-server",
		Short: "DNA lab customer portal API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(inspectCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the portal API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

// newProgressStore picks the progress cache backend: Redis when configured,
// otherwise in-process memory.
func newProgressStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) cache.Store {
	if cfg.RedisURL != "" {
		store, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, falling back to in-memory progress cache")
		} else {
			logger.Info().Msg("using redis progress cache")
			return store
		}
	}
	store := cache.NewMemoryStore()
	store.StartCleanup(ctx, time.Minute)
	return store
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Lab API gateway and domain services
	gw := gateway.NewClient(
		cfg.LabAPIURL,
		cfg.LabAPIToken,
		time.Duration(cfg.LabAPITimeoutSeconds)*time.Second,
		logger,
	)

	orderSvc := order.NewService(order.NewLabAPIClient(gw), logger)
	calculator := tracking.NewCalculator(
		newProgressStore(ctx, cfg, logger),
		time.Duration(cfg.ProgressCacheTTLSeconds)*time.Second,
	)
	catalogSvc := catalog.NewCatalog(catalog.NewLabAPIClient(gw))

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Authenticated API
	api := e.Group("/api/v1")
	if cfg.ResolvedAuthMode() == "development" {
		logger.Warn().Msg("development auth mode: all requests run as dev-user")
		api.Use(auth.DevAuthMiddleware())
	} else {
		api.Use(auth.TokenMiddleware(auth.TokenConfig{
			SigningKey: []byte(cfg.AuthSigningKey),
		}))
	}

	tracking.NewHandler(orderSvc, calculator).RegisterRoutes(api)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api)

	// Start server
	addr := ":" + cfg.Port
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <order-id>",
		Short: "Fetch one order's aggregate and print progress + tracking steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")

			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			gw := gateway.NewClient(
				cfg.LabAPIURL,
				cfg.LabAPIToken,
				time.Duration(cfg.LabAPITimeoutSeconds)*time.Second,
				logger,
			)
			svc := order.NewService(order.NewLabAPIClient(gw), logger)
			calc := tracking.NewCalculator(cache.NewNoOpStore(), 0)

			ctx := context.Background()
			agg, err := svc.LoadAggregate(ctx, args[0], userID)
			if err != nil {
				return err
			}
			svc.AttachResults(ctx, agg)

			fmt.Printf("order %s: status=%s progress=%d%% method=%s\n",
				agg.Order.ID,
				agg.Order.Status,
				calc.Progress(agg),
				tracking.CollectionMethod(agg),
			)
			for _, step := range tracking.GenerateSteps(agg) {
				fmt.Printf("  %d. [%-9s] %s %s\n", step.Step, step.Status, step.Title, step.Date)
			}

			out, err := json.MarshalIndent(agg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().String("user", "", "User ID for appointment scoping")
	return cmd
}
