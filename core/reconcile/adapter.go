package reconcile

import (
	"context"
)

// Source fetches the full card snapshot from the project board.
// Implementations must return either every card or an error, never a partial snapshot.
type Source interface {
	// Name returns the unique name of this source (e.g., "board").
	Name() string

	// FetchCards fetches and normalizes the board into a flat card sequence.
	// Ordering is only stable within a column.
	FetchCards(ctx context.Context) ([]Card, error)
}

// Sink lists and mutates rows of the destination table.
// Sinks do not pace their calls; the Applier does.
type Sink interface {
	// Name returns the unique name of this sink (e.g., "airtable", "database").
	Name() string

	// ListRecords returns every destination row, fully materialized across pages.
	ListRecords(ctx context.Context) ([]DestinationRecord, error)

	// CreateRecord inserts a new row for the card.
	// Fields the destination does not recognize may be dropped silently.
	CreateRecord(ctx context.Context, card Card) error

	// UpdateRecord overwrites all fields of the addressed row.
	UpdateRecord(ctx context.Context, recordID string, card Card) error
}

// FieldProjector is implemented by sinks that keep only some card fields.
// ProjectCard clears every field the destination does not store, so a dropped
// field reads as absent on both sides of a comparison.
type FieldProjector interface {
	ProjectCard(card Card) Card
}
