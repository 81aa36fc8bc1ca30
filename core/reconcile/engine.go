package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Spec bundles the collaborators and settings of a reconciliation pass.
type Spec struct {
	// Source provides the board snapshot.
	Source Source

	// Sink is the destination table.
	Sink Sink

	// Identity matches cards to destination rows. Defaults to ByCardID.
	Identity Identity

	// Interval is the minimum spacing between destination writes.
	Interval time.Duration

	// Clock paces the applier. Defaults to the wall clock.
	Clock Clock

	// Logger receives pass progress. Defaults to a no-op logger.
	Logger *zap.Logger

	// OnSnapshot, if set, receives every successfully fetched card snapshot.
	OnSnapshot func(cards []Card)
}

func (s *Spec) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Snapshot holds both sides of one fetch phase.
type Snapshot struct {
	Cards   []Card
	Records []DestinationRecord
}

// FetchSnapshot loads the source cards and destination rows concurrently.
// If either side fails the whole fetch fails and nothing is returned.
func FetchSnapshot(ctx context.Context, spec *Spec) (*Snapshot, error) {
	var (
		cards   []Card
		records []DestinationRecord
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		cards, err = spec.Source.FetchCards(gctx)
		if err != nil {
			return asTransportError(spec.Source.Name(), "fetch", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		records, err = spec.Sink.ListRecords(gctx)
		if err != nil {
			return asTransportError(spec.Sink.Name(), "list", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if spec.OnSnapshot != nil {
		spec.OnSnapshot(cards)
	}

	return &Snapshot{Cards: cards, Records: records}, nil
}

// ReconcileWithPlan fetches both sides and returns the operation queues.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec) (*Plan, error) {
	if spec.Source == nil || spec.Sink == nil {
		return nil, fmt.Errorf("reconcile spec requires a source and a sink")
	}

	snapshot, err := FetchSnapshot(ctx, spec)
	if err != nil {
		return nil, err
	}

	spec.logger().Debug("Fetched snapshot",
		zap.String("source", spec.Source.Name()),
		zap.String("sink", spec.Sink.Name()),
		zap.Int("cards", len(snapshot.Cards)),
		zap.Int("records", len(snapshot.Records)),
	)

	cards, records := snapshot.Cards, snapshot.Records
	if projector, ok := spec.Sink.(FieldProjector); ok {
		cards, records = projectSnapshot(projector, cards, records)
	}

	return ComputeOperations(cards, records, spec.Identity), nil
}

func projectSnapshot(p FieldProjector, cards []Card, records []DestinationRecord) ([]Card, []DestinationRecord) {
	projectedCards := make([]Card, len(cards))
	for i, card := range cards {
		projectedCards[i] = p.ProjectCard(card)
	}
	projectedRecords := make([]DestinationRecord, len(records))
	for i, record := range records {
		projectedRecords[i] = DestinationRecord{RecordID: record.RecordID, Card: p.ProjectCard(record.Card)}
	}
	return projectedCards, projectedRecords
}
