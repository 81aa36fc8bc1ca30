package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PassResult describes one full fetch, diff and apply cycle.
type PassResult struct {
	// StartedAt is when the pass began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the pass took.
	Duration time.Duration `json:"duration"`

	// Summary holds the plan counts.
	Summary PlanSummary `json:"summary"`

	// Applied holds the write outcome. Zero for dry runs.
	Applied ApplyResult `json:"applied"`

	// DryRun reports whether writes were skipped.
	DryRun bool `json:"dry_run"`
}

// ApplyPlan executes the create queue and then the update queue through a
// rate limited Applier. Individual write failures are reported in the result,
// not as an error.
func ApplyPlan(ctx context.Context, spec *Spec, plan *Plan) (ApplyResult, error) {
	applier := NewApplier(spec.Sink, spec.Interval, spec.Clock, spec.logger())
	return applier.Apply(ctx, plan)
}

// ReconcileAndApply runs a full pass: fetch, diff and, unless opts.DryRun, apply.
// A fetch failure aborts the pass before any write.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts ReconcileOptions) (*Plan, *PassResult, error) {
	l := spec.logger()
	started := time.Now()

	l.Info("Reconciliation pass started", zap.Bool("dry_run", opts.DryRun))

	plan, err := ReconcileWithPlan(ctx, spec)
	if err != nil {
		l.Error("Reconciliation pass aborted", zap.Error(err))
		return nil, nil, err
	}

	result := &PassResult{
		StartedAt: started,
		Summary:   plan.Summary,
		DryRun:    opts.DryRun,
	}

	l.Info("Reconciliation plan",
		zap.Int("total_cards", plan.Summary.TotalCards),
		zap.Int("total_records", plan.Summary.TotalRecords),
		zap.Int("creates", plan.Summary.Creates),
		zap.Int("updates", plan.Summary.Updates),
		zap.Int("unchanged", plan.Summary.Unchanged),
	)

	if opts.DryRun || plan.Empty() {
		result.Duration = time.Since(started)
		return plan, result, nil
	}

	applied, err := ApplyPlan(ctx, spec, plan)
	result.Applied = applied
	result.Duration = time.Since(started)
	if err != nil {
		return plan, result, err
	}

	l.Info("Reconciliation pass finished",
		zap.Int("created", applied.Created),
		zap.Int("updated", applied.Updated),
		zap.Int("failed", applied.Failed()),
		zap.Duration("duration", result.Duration),
	)

	return plan, result, nil
}
