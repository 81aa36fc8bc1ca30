// Package cards exposes the card snapshot over HTTP.
//
// GET /cards answers from the reconcile ReadCache, so the board is fetched at
// most once per TTL however many clients poll. When a refresh fails the last
// good snapshot is served; only a process that never loaded one answers 502.
//
// Archive stores each refreshed snapshot in object storage so a restarted
// process can serve the last known board before its first refresh succeeds.
package cards
