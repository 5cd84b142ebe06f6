// Package logger provides a structured logging facility based on Zap.
//
// Every command builds its logger from the Log section of the configuration.
// Diagnostics go to stdout by default so that progress, skip and error lines
// interleave with the final report printed by the sync command.
//
// # Run Correlation
//
// WithRunID attaches a random run_id (UUID) to the logger. All lines written
// during one sync, snapshot or publish run share that id, which makes it easy
// to pick a single run out of an appended log file.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console, json or auto (console on a terminal, json otherwise)
//   - Output: stdout, stderr or a file path
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log, runID := logger.WithRunID(log)
//	log.Info("Sync started", zap.String("run", runID))
package logger
