package cmd

import (
	"context"
	"fmt"

	"card-sync/core/config"
	"card-sync/core/database"
	"card-sync/core/logger"
	"card-sync/core/reconcile"
	"card-sync/core/storage"
	"card-sync/feature/airtable"
	"card-sync/feature/board"
	"card-sync/feature/cards"
	"card-sync/feature/table"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// loadRuntime loads and validates configuration and builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newSource builds the board source.
func newSource(cfg *config.Config, l *zap.Logger) reconcile.Source {
	return board.NewAdapter(cfg.Board, l)
}

// newSink builds the configured destination table.
func newSink(ctx context.Context, cfg *config.Config, l *zap.Logger) (reconcile.Sink, error) {
	switch cfg.Sink.Driver {
	case config.SinkAirtable:
		return airtable.NewAdapter(cfg.Airtable, cfg.Sink.Table, cfg.Sink.PageSize, l), nil

	case config.SinkDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		sink := table.NewAdapter(db, cfg.Sink.Table, cfg.Sink.PageSize, l)
		if err := sink.Prepare(ctx); err != nil {
			return nil, err
		}
		return sink, nil

	default:
		return nil, fmt.Errorf("unknown sink driver %q", cfg.Sink.Driver)
	}
}

// newSpec builds the reconciliation spec shared by every pass.
func newSpec(cfg *config.Config, source reconcile.Source, sink reconcile.Sink, l *zap.Logger) (*reconcile.Spec, error) {
	identity, err := reconcile.IdentityByField(cfg.Sync.IdentityField)
	if err != nil {
		return nil, err
	}
	return &reconcile.Spec{
		Source:   source,
		Sink:     sink,
		Identity: identity,
		Interval: cfg.Sync.RateLimitInterval,
		Logger:   l,
	}, nil
}

// newCache builds the read cache, warmed from the snapshot archive when enabled.
// Archive problems only disable warm start.
func newCache(ctx context.Context, cfg *config.Config, source reconcile.Source, l *zap.Logger) *reconcile.ReadCache {
	var opts []reconcile.CacheOption

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			l.Warn("Snapshot archive disabled", zap.Error(err))
		} else if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			l.Warn("Snapshot archive disabled", zap.Error(err))
		} else {
			opts = append(opts, reconcile.WithArchive(cards.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.SnapshotObject)))
		}
	}

	cache := reconcile.NewReadCache(source, cfg.Sync.CacheTTL, l, opts...)
	if err := cache.Warm(ctx); err != nil {
		l.Warn("Failed to warm card cache from archive", zap.Error(err))
	}
	return cache
}

// newPassFunc adapts a spec to the scheduler. Each pass logs under its own pass_id.
func newPassFunc(spec *reconcile.Spec, opts reconcile.ReconcileOptions) reconcile.PassFunc {
	return func(ctx context.Context) (*reconcile.PassResult, error) {
		pass := *spec
		pass.Logger = logger.WithPass(spec.Logger, uuid.NewString())
		_, result, err := reconcile.ReconcileAndApply(ctx, &pass, opts)
		return result, err
	}
}
