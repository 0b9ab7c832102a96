package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/Mani-Chandra65/Weather-App/internal/api/http"
	"github.com/Mani-Chandra65/Weather-App/internal/config"
	"github.com/Mani-Chandra65/Weather-App/internal/owm"
	"github.com/Mani-Chandra65/Weather-App/internal/prefs"
	"github.com/Mani-Chandra65/Weather-App/internal/session"
	"github.com/Mani-Chandra65/Weather-App/internal/weather"
)

func main() {
	configFile := flag.String("config", "", "Optional path to a JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var opts []owm.Option
	if cfg.DataBaseURL != "" || cfg.GeoBaseURL != "" {
		opts = append(opts, owm.WithBaseURLs(cfg.DataBaseURL, cfg.GeoBaseURL))
	}
	provider := owm.NewClient(httpClient, cfg.WeatherAPIKey, opts...)

	service := weather.NewService(provider, !cfg.HasValidKey(), sugar)
	if service.DemoMode() {
		sugar.Warnw("no valid API key configured; running in demo mode")
	} else {
		sugar.Infow("API key detected; using live weather data")
	}

	// Preference store: SQLite when a path is configured, else in-memory.
	var store prefs.Store
	if cfg.PrefsDBPath != "" {
		sqlStore, err := prefs.OpenSQLite(cfg.PrefsDBPath)
		if err != nil {
			sugar.Fatalw("failed to open preference store", "path", cfg.PrefsDBPath, "err", err)
		}
		defer sqlStore.Close()
		store = sqlStore
	} else {
		store = prefs.NewMemoryStore()
	}

	sess := session.NewManager(store, sugar)
	if err := sess.Start(); err != nil {
		sugar.Fatalw("failed to start session manager", "err", err)
	}
	defer sess.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard-backend",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   "Internal error",
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, service, sess)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			sugar.Errorw("fiber server stopped", "err", err)
		}
	}()
	sugar.Infow("server listening", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		sugar.Errorw("error during shutdown", "err", err)
	}
}
