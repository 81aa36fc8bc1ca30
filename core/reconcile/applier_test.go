package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink records the clock time at which each call starts.
type recordingSink struct {
	*memorySink
	clock  *fakeClock
	starts []time.Time
	delay  time.Duration
}

func (r *recordingSink) CreateRecord(ctx context.Context, card Card) error {
	r.starts = append(r.starts, r.clock.now)
	r.clock.Advance(r.delay)
	return r.memorySink.CreateRecord(ctx, card)
}

func (r *recordingSink) UpdateRecord(ctx context.Context, recordID string, card Card) error {
	r.starts = append(r.starts, r.clock.now)
	r.clock.Advance(r.delay)
	return r.memorySink.UpdateRecord(ctx, recordID, card)
}

func testPlan() *Plan {
	return &Plan{
		Create: []Action{
			{Type: ActionCreate, Key: "1", Card: Card{ID: 1}},
			{Type: ActionCreate, Key: "2", Card: Card{ID: 2}},
		},
		Update: []Action{
			{Type: ActionUpdate, Key: "3", RecordID: "recA", Card: Card{ID: 3}},
		},
	}
}

func TestApplier_MinimumInterval(t *testing.T) {
	tests := []struct {
		name  string
		delay time.Duration
	}{
		{"Fast calls are paced", 10 * time.Millisecond},
		{"Slow calls are not delayed further", 300 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			sink := &recordingSink{memorySink: newMemorySink(), clock: clock, delay: tt.delay}
			sink.rows["recA"] = Card{ID: 3, Title: "old"}

			applier := NewApplier(sink, 200*time.Millisecond, clock, nil)
			result, err := applier.Apply(context.Background(), testPlan())
			require.NoError(t, err)
			assert.Equal(t, 2, result.Created)
			assert.Equal(t, 1, result.Updated)

			require.Len(t, sink.starts, 3)
			for i := 1; i < len(sink.starts); i++ {
				gap := sink.starts[i].Sub(sink.starts[i-1])
				assert.GreaterOrEqual(t, gap, 200*time.Millisecond)
			}
			if tt.delay >= 200*time.Millisecond {
				assert.Empty(t, clock.sleeps)
			} else {
				assert.Equal(t, []time.Duration{190 * time.Millisecond, 190 * time.Millisecond}, clock.sleeps)
			}
		})
	}
}

func TestApplier_CreatesBeforeUpdates(t *testing.T) {
	sink := newMemorySink()
	sink.rows["recA"] = Card{ID: 3}
	plan := &Plan{
		Update: testPlan().Update,
		Create: testPlan().Create,
	}

	_, err := NewApplier(sink, 0, newFakeClock(), nil).Apply(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, []string{"create:1", "create:2", "update:3"}, sink.calls)
}

func TestApplier_ContinueOnError(t *testing.T) {
	sink := newMemorySink()
	sink.rows["recA"] = Card{ID: 3}
	sink.failKeys["1"] = true

	result, err := NewApplier(sink, time.Millisecond, newFakeClock(), nil).Apply(context.Background(), testPlan())
	require.NoError(t, err)

	assert.Equal(t, []string{"create:1", "create:2", "update:3"}, sink.calls)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	require.Equal(t, 1, result.Failed())

	failure := result.Failures[0]
	assert.Equal(t, ActionCreate, failure.Action)
	assert.Equal(t, "1", failure.Key)
	assert.ErrorIs(t, failure, ErrSinkWrite)
	assert.Contains(t, failure.Error(), "rejected 1")
}

func TestApplier_StopsOnCancel(t *testing.T) {
	sink := newMemorySink()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewApplier(sink, 0, newFakeClock(), nil).Apply(ctx, testPlan())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Created)
	assert.Empty(t, sink.calls)
}

func TestApplier_EmptyPlan(t *testing.T) {
	clock := newFakeClock()
	result, err := NewApplier(newMemorySink(), time.Second, clock, nil).Apply(context.Background(), &Plan{})
	require.NoError(t, err)
	assert.Zero(t, result.Created+result.Updated+result.Failed())
	assert.Empty(t, clock.sleeps)
}
