package airtable

import (
	"context"

	"card-sync/core/reconcile"

	"go.uber.org/zap"
)

// Adapter implements reconcile.Sink for a hosted table.
type Adapter struct {
	client *Client
	table  string
	fields *fieldSet
	logger *zap.Logger
}

// NewAdapter creates a table sink.
func NewAdapter(cfg Config, table string, pageSize int, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		client: NewClient(cfg, table, pageSize),
		table:  table,
		fields: newFieldSet(cfg.Fields),
		logger: logger,
	}
}

// Name returns the unique name of this sink.
func (a *Adapter) Name() string {
	return "airtable"
}

// ListRecords reads every row of the table and decodes it into card fields.
func (a *Adapter) ListRecords(ctx context.Context) ([]reconcile.DestinationRecord, error) {
	rows, err := a.client.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]reconcile.DestinationRecord, 0, len(rows))
	for _, row := range rows {
		a.warnDropped(a.fields.observeRow(row))
		records = append(records, reconcile.DestinationRecord{
			RecordID: row.ID,
			Card:     decodeFields(row.Fields),
		})
	}

	a.logger.Debug("Listed destination rows", zap.String("table", a.table), zap.Int("rows", len(records)))
	return records, nil
}

// CreateRecord inserts a row for the card. Only the fields the table keeps are sent.
func (a *Adapter) CreateRecord(ctx context.Context, card reconcile.Card) error {
	fields := a.fields.filter(encodeFields(card))
	created, err := a.client.Create(ctx, fields)
	if err != nil {
		return err
	}
	a.warnDropped(a.fields.observeWrite(created.ID, fields, created.Fields))
	return nil
}

// UpdateRecord overwrites the row with the card's fields.
func (a *Adapter) UpdateRecord(ctx context.Context, recordID string, card reconcile.Card) error {
	fields := a.fields.filter(encodeFields(card))
	updated, err := a.client.Replace(ctx, recordID, fields)
	if err != nil {
		return err
	}
	a.warnDropped(a.fields.observeWrite(recordID, fields, updated.Fields))
	return nil
}

// ProjectCard clears the card fields this table does not store.
func (a *Adapter) ProjectCard(card reconcile.Card) reconcile.Card {
	return a.fields.project(card)
}

func (a *Adapter) warnDropped(names []string) {
	if len(names) == 0 {
		return
	}
	a.logger.Warn("Destination dropped fields, excluding them from writes and comparison",
		zap.String("table", a.table),
		zap.Strings("fields", names),
	)
}
