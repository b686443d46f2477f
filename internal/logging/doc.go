// Package logging provides structured logging for tuplemap.
//
// # Overview
//
// The logging package provides a small structured logging interface with:
//
//   - Four log levels (debug, info, warn, error)
//   - Text and JSON output formats
//   - Field-based contextual logging
//   - Per-object instance IDs for correlating log lines
//
// # Creating a Logger
//
// Create a logger from configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  "debug",
//	    Format: "json",
//	    Output: "stderr",
//	})
//
// Write to any io.Writer:
//
//	logger := logging.NewWriter(&buf, logging.LevelDebug, logging.FormatText)
//
// Discard everything (the default for maps):
//
//	logger := logging.NewNop()
//
// # Contextual Fields
//
//	mapLogger, id := logging.WithInstanceID(logger)
//	mapLogger.Debug("node split", "node", 7, "items", 42)
//
// Text format:
//
//	2026-10-15T10:30:00Z [debug] node split items=42 map_id=6f1c... node=7
//
// JSON format:
//
//	{"items":42,"level":"debug","map_id":"6f1c...","msg":"node split","node":7,"ts":"2026-10-15T10:30:00Z"}
package logging
