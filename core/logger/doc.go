// Package logger builds the zap logger shared by the server, the scheduler
// and the CLI.
//
// Two kinds of work produce log lines in card-sync, and each gets a
// correlation field:
//
//   - HTTP requests carry ray_id, set by the RayID middleware and attached
//     with WithRayID. GET /cards, GET /sync/status and POST /sync/trigger all
//     log through it.
//   - Reconciliation passes carry pass_id, attached with WithPass. Every
//     fetch, plan and destination write logged during a pass shares the ID,
//     so a failed write can be traced back to the pass that planned it.
//
// # Configuration
//
//   - log.level: debug, info, warn, error (unknown values fall back to info).
//     debug also switches to zap's development defaults.
//   - log.format: json for deployments, console for a terminal.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	passLog := logger.WithPass(log, uuid.NewString())
//	passLog.Info("Pass applied", zap.Int("created", n))
package logger
