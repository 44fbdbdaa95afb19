package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/ovumcalc/internal/api"
	"github.com/terraincognita07/ovumcalc/internal/config"
	"github.com/terraincognita07/ovumcalc/internal/db"
	"github.com/terraincognita07/ovumcalc/internal/i18n"
	"github.com/terraincognita07/ovumcalc/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.ValidateSecretKey(); err != nil {
		return err
	}

	location, err := cfg.Location()
	if err != nil {
		slog.Warn("falling back to UTC", "error", err)
	}
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	i18nManager, err := newI18nManager(cfg)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, location, i18nManager)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	handler.
		WithTokenTTL(cfg.TokenTTL()).
		WithMaxCalendarDays(cfg.MaxCalendarDays).
		WithCookieSecure(cfg.CookieSecure)

	app := newApp(handler)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("ovumcalc listening",
		"addr", "0.0.0.0:"+cfg.Port,
		"db", cfg.DBPath,
		"tz", location.String(),
		"language", i18nManager.DefaultLanguage(),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newI18nManager(cfg *config.Config) (*i18n.Manager, error) {
	if cfg.LocalesDir != "" {
		return i18n.NewManager(cfg.DefaultLanguage, cfg.LocalesDir)
	}
	return i18n.NewEmbeddedManager(cfg.DefaultLanguage)
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "ovumcalc",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
