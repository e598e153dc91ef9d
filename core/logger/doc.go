// Package logger provides structured logging utilities built on Go's standard slog package.
//
// It offers a small factory with environment presets, context-aware attribute
// extraction, and attribute helpers for the fields the access-control core logs.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/accesscore/core/logger"
//
//	log := logger.New(
//		logger.WithProduction("accessd"),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//	)
//
//	log.InfoContext(ctx, "session created",
//		logger.Component("session"),
//		logger.SessionID(sess.ID.String()),
//		logger.UserID(sess.UserID),
//	)
//
// # Environment Configurations
//
//	logger.New(logger.WithDevelopment("accessd")) // text, debug
//	logger.New(logger.WithStaging("accessd"))     // JSON, info
//	logger.New(logger.WithProduction("accessd"))  // JSON, info
//
// # Sensitive Data
//
// Session tokens are credentials. Log sessions through SessionID (the uuid
// handle), never through the token itself. The same applies to codec secrets
// and derived keys.
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("Test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
