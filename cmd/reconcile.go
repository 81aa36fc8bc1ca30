package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"card-sync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunReconcile bool
	watchReconcile  bool
)

// reconcileCmd runs reconciliation passes without the HTTP server.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the destination table with the board",
	Long: `Fetches the board and the destination table, prints the plan and applies it.

Rows are created or overwritten, never deleted.

Examples:
  # One pass
  reconcile

  # Plan only, no writes
  reconcile --dry-run

  # Keep reconciling every sync.poll_interval until interrupted
  reconcile --watch`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRunReconcile, "dry-run", false, "Print the plan without writing")
	reconcileCmd.Flags().BoolVar(&watchReconcile, "watch", false, "Run passes on the poll interval until interrupted")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := newSink(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize sink: %w", err)
	}

	spec, err := newSpec(cfg, newSource(cfg, l), sink, l)
	if err != nil {
		return err
	}
	opts := reconcile.ReconcileOptions{DryRun: dryRunReconcile}

	if watchReconcile {
		reconcile.NewScheduler(cfg.Sync.PollInterval, newPassFunc(spec, opts), l).Start(ctx)
		return nil
	}

	plan, result, err := reconcile.ReconcileAndApply(ctx, spec, opts)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	printReconcileReport(l, plan, result)

	if dryRunReconcile {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printReconcileReport logs the plan and a sample of its actions.
func printReconcileReport(l *zap.Logger, plan *reconcile.Plan, result *reconcile.PassResult) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_cards", s.TotalCards),
		zap.Int("total_records", s.TotalRecords),
		zap.Int("creates", s.Creates),
		zap.Int("updates", s.Updates),
		zap.Int("unchanged", s.Unchanged),
	)

	actions := append(append([]reconcile.Action{}, plan.Create...), plan.Update...)
	maxShow := min(5, len(actions))
	for _, action := range actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("column", action.Card.Column),
		)
	}
	if len(actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(actions)-maxShow))
	}

	for _, failure := range result.Applied.Failures {
		l.Warn("Write rejected", zap.Error(failure))
	}
}
