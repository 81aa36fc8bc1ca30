package cmd

import (
	"context"
	"testing"

	"card-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type emptyBoard struct{}

func (emptyBoard) Name() string { return "board" }

func (emptyBoard) FetchCards(context.Context) ([]reconcile.Card, error) { return nil, nil }

type emptyTable struct{}

func (emptyTable) Name() string { return "table" }

func (emptyTable) ListRecords(context.Context) ([]reconcile.DestinationRecord, error) {
	return nil, nil
}

func (emptyTable) CreateRecord(context.Context, reconcile.Card) error { return nil }

func (emptyTable) UpdateRecord(context.Context, string, reconcile.Card) error { return nil }

func TestNewPassFunc_TagsEachPass(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	spec := &reconcile.Spec{Source: emptyBoard{}, Sink: emptyTable{}, Logger: zap.New(core)}
	run := newPassFunc(spec, reconcile.ReconcileOptions{})

	_, err := run(context.Background())
	require.NoError(t, err)
	_, err = run(context.Background())
	require.NoError(t, err)

	ids := map[any]bool{}
	for _, entry := range logs.All() {
		id, ok := entry.ContextMap()["pass_id"]
		require.True(t, ok, entry.Message)
		ids[id] = true
	}
	assert.Len(t, ids, 2)
}
