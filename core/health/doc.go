// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependencies are available
//   - NoContent: 204 for minimal overhead
//
// Dependency checks follow the func(context.Context) error signature returned
// by pg.Healthcheck, redis.Healthcheck and mongo.Healthcheck.
package health
