package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"card-sync/core/loader"
	"card-sync/core/middleware"
	"card-sync/core/reconcile"
	"card-sync/feature/cards"
	"card-sync/feature/reconciler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "card-sync/docs/swagger"
)

// @title Card Sync API
// @version 1.0
// @description Read access to the project board snapshot and the sync loop.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server and the sync scheduler",
	Long: `Starts the HTTP server serving GET /cards and, unless sync.enabled is false,
the scheduler that reconciles the destination table with the board.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, logg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := newSource(cfg, logg)
	cache := newCache(ctx, cfg, source, logg)

	// A nil interface keeps the sync routes disabled
	var sched reconciler.Scheduler
	done := make(chan struct{})

	if cfg.Sync.Enabled {
		sink, err := newSink(ctx, cfg, logg)
		if err != nil {
			return fmt.Errorf("failed to initialize sink: %w", err)
		}

		spec, err := newSpec(cfg, source, sink, logg)
		if err != nil {
			return err
		}
		// Every pass refreshes the read cache with the board it fetched
		spec.OnSnapshot = func(snapshot []reconcile.Card) {
			cache.Put(ctx, snapshot)
		}

		s := reconcile.NewScheduler(cfg.Sync.PollInterval, newPassFunc(spec, reconcile.ReconcileOptions{}), logg)
		sched = s
		go func() {
			defer close(done)
			s.Start(ctx)
		}()
	} else {
		close(done)
		logg.Info("Sync scheduler disabled")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it
	app.Use(middleware.RayID())
	app.Use(middleware.RequestLogger(logg))
	app.Use(middleware.CORS(cfg.Server.CorsOrigins))

	app.Get("/swagger/*", swagger.HandlerDefault)

	mgr := loader.NewManager(logg)
	mgr.Register(cards.NewFeature(cache, logg))
	mgr.Register(reconciler.NewFeature(sched, logg))

	if err := mgr.LoadAll(app); err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port))
		serveErr <- app.Listen(cfg.Server.Address())
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		stop()
		<-done
		return fmt.Errorf("server failed: %w", err)
	}

	logg.Info("Shutting down server...")
	timeout := time.Duration(cfg.Server.ShutdownSeconds) * time.Second
	if err := app.ShutdownWithTimeout(timeout); err != nil {
		logg.Warn("Server shutdown incomplete", zap.Error(err))
	}

	// The in-flight write finishes; the rest of the queue is picked up next run
	<-done
	return nil
}
