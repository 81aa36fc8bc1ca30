package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Applier executes a plan against a sink one call at a time.
// Consecutive calls start at least Interval apart to respect the destination rate limit.
type Applier struct {
	sink     Sink
	interval time.Duration
	clock    Clock
	logger   *zap.Logger
}

// NewApplier creates an applier for the sink. A nil clock means the wall clock.
func NewApplier(sink Sink, interval time.Duration, clock Clock, logger *zap.Logger) *Applier {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{
		sink:     sink,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// Apply runs every create, then every update, sequentially.
// A rejected write is logged and recorded in the result; the queue continues
// and the write is not retried within this pass. Apply only stops early when
// ctx is cancelled.
func (a *Applier) Apply(ctx context.Context, plan *Plan) (ApplyResult, error) {
	var result ApplyResult

	queue := make([]Action, 0, len(plan.Create)+len(plan.Update))
	queue = append(queue, plan.Create...)
	queue = append(queue, plan.Update...)

	for i, action := range queue {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		started := a.clock.Now()
		err := a.call(ctx, action)
		if err != nil {
			writeErr := &SinkWriteError{
				Action:   action.Type,
				Key:      action.Key,
				RecordID: action.RecordID,
				Err:      err,
			}
			result.Failures = append(result.Failures, writeErr)
			a.logger.Error("Destination write failed",
				zap.String("sink", a.sink.Name()),
				zap.String("action", string(action.Type)),
				zap.String("key", action.Key),
				zap.String("record_id", action.RecordID),
				zap.Error(err),
			)
		} else if action.Type == ActionCreate {
			result.Created++
		} else {
			result.Updated++
		}

		// No pause after the last call
		if i == len(queue)-1 {
			break
		}
		wait := a.interval - a.clock.Now().Sub(started)
		if wait > 0 {
			if err := a.clock.Sleep(ctx, wait); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

func (a *Applier) call(ctx context.Context, action Action) error {
	switch action.Type {
	case ActionCreate:
		return a.sink.CreateRecord(ctx, action.Card)
	case ActionUpdate:
		return a.sink.UpdateRecord(ctx, action.RecordID, action.Card)
	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
}
