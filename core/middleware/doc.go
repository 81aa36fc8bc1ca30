// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: gives every request an ID (X-Ray-ID), stored in the context and
//     echoed in the response so logs can be correlated.
//   - RequestLogger: one structured log line per request.
//   - CORS: lets browser clients on other origins read the card endpoints
//     and call POST /sync/trigger.
//
// The endpoints are public, so there is no authentication middleware.
package middleware
