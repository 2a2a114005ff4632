package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"transit-manager/core/loader"
	"transit-manager/core/logger"
	"transit-manager/core/metrics"
	"transit-manager/core/middleware/auth"
	"transit-manager/core/middleware/rayid"

	"transit-manager/feature/sources"
	"transit-manager/feature/stops"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "transit-manager/docs/swagger"
)

// @title Transit Manager API
// @version 1.0
// @description Multi-source lookup of transit stops and upcoming buses.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the transit manager server",
	Long:  `Starts the HTTP server, opens every enabled backend and loads all features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration, logger and backends
		env, err := setup(context.Background())
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer env.Close()
		logg := env.log
		zap.ReplaceGlobals(logg)

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			ReadTimeout:           env.cfg.Server.ReadTimeout(),
			WriteTimeout:          env.cfg.Server.WriteTimeout(),
		})

		// 3. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(stops.NewFeature(env.backends.Resolver, logg.Named("stops")))
		mgr.Register(sources.NewFeature(env.backends.Resolver, logg.Named("sources")))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: env.cfg.Server.ApiKey, Skip: []string{"/swagger", "/metrics"}}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", env.cfg.Server.Port))
			if err := app.Listen(env.cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
