// Package reconcile keeps a destination table eventually consistent with the
// card snapshot of a project board.
//
// A pass fetches the board cards and the destination rows concurrently, diffs
// them into create and update queues, and applies the queues one call at a
// time under the destination's rate limit. Deletions are never propagated:
// rows whose card left the board are left untouched.
//
// # Architecture
//
// 1. Source and Sink: adapters for the board and the destination table
// (see feature/board, feature/airtable and feature/table).
//
// 2. Differ: ComputeOperations indexes destination rows by identity once and
// compares each card against its row after normalization. Absent, null and
// empty values are equivalent on both sides.
//
// 3. Applier: runs all creates, then all updates, sequentially. Consecutive
// calls start at least the configured interval apart. A rejected write is
// logged and skipped; the next pass rediscovers it.
//
// 4. Scheduler: runs a pass at start and then on a fixed period.
//
// 5. ReadCache: a single TTL snapshot slot for the read path. A failed
// refresh keeps serving the previous snapshot.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Source:   boardAdapter,
//	    Sink:     airtableAdapter,
//	    Interval: 250 * time.Millisecond,
//	    Logger:   logger,
//	}
//
//	// Plan only
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec)
//
//	// Full pass
//	plan, result, err := reconcile.ReconcileAndApply(ctx, spec, reconcile.ReconcileOptions{})
//
// # Failure Policy
//
// Any failure while fetching either side aborts the pass with a TransportError
// before a single write is made. Write failures are reported as SinkWriteError
// values in the ApplyResult and never abort the queue.
package reconcile
