package table

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"card-sync/core/database"
	"card-sync/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when an update addresses a missing row.
var ErrRecordNotFound = errors.New("record not found")

// Adapter implements reconcile.Sink on a SQL table.
type Adapter struct {
	db       *gorm.DB
	table    string
	pageSize int
	logger   *zap.Logger
}

// NewAdapter creates a SQL sink over the given table.
func NewAdapter(db *gorm.DB, table string, pageSize int, logger *zap.Logger) *Adapter {
	if pageSize <= 0 {
		pageSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{db: db, table: table, pageSize: pageSize, logger: logger}
}

// Name returns the unique name of this sink.
func (a *Adapter) Name() string {
	return "database"
}

// Prepare creates or migrates the table and checks its columns.
func (a *Adapter) Prepare(ctx context.Context) error {
	if err := a.db.WithContext(ctx).Table(a.table).AutoMigrate(&CardRow{}); err != nil {
		return fmt.Errorf("migrating table %s: %w", a.table, err)
	}

	missing, err := database.MissingColumns(a.db.WithContext(ctx), a.table, columns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", a.table, strings.Join(missing, ", "))
	}

	a.logger.Info("Destination table ready", zap.String("table", a.table))
	return nil
}

// ListRecords reads every row, one page at a time.
func (a *Adapter) ListRecords(ctx context.Context) ([]reconcile.DestinationRecord, error) {
	var records []reconcile.DestinationRecord

	for offset := 0; ; offset += a.pageSize {
		var rows []CardRow
		err := a.db.WithContext(ctx).
			Table(a.table).
			Order("record_id").
			Limit(a.pageSize).
			Offset(offset).
			Find(&rows).Error
		if err != nil {
			return nil, &reconcile.TransportError{Source: "database", Method: "SELECT", URL: a.table, Err: err}
		}

		for _, row := range rows {
			records = append(records, row.toRecord())
		}
		if len(rows) < a.pageSize {
			return records, nil
		}
	}
}

// CreateRecord inserts a row with a fresh record ID.
func (a *Adapter) CreateRecord(ctx context.Context, card reconcile.Card) error {
	row := toRow(uuid.NewString(), card)
	if err := a.db.WithContext(ctx).Table(a.table).Create(&row).Error; err != nil {
		return fmt.Errorf("inserting card %d: %w", card.ID, err)
	}
	return nil
}

// UpdateRecord overwrites every column of the addressed row.
func (a *Adapter) UpdateRecord(ctx context.Context, recordID string, card reconcile.Card) error {
	row := toRow(recordID, card)
	result := a.db.WithContext(ctx).
		Table(a.table).
		Where("record_id = ?", recordID).
		Select("*").
		Omit("record_id").
		Updates(&row)
	if result.Error != nil {
		return fmt.Errorf("updating record %s: %w", recordID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("updating record %s: %w", recordID, ErrRecordNotFound)
	}
	return nil
}
