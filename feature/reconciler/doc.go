// Package reconciler exposes the background reconciliation loop over HTTP.
//
//   - GET /sync/status reports the last pass: when it ran, the plan counts,
//     the write outcome and the last error.
//   - POST /sync/trigger queues a pass without waiting for the next tick.
package reconciler
