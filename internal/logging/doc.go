// Package logging provides structured logging for mustdo.
//
// Logs are JSON lines produced by log/slog. A [Logger] carries persistent
// attributes (slot name, command) that are attached to every entry, which
// makes it easy to grep the log for a single storage slot or CLI command.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/data", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithSlot("todos").Info("collection persisted", "tasks", 3)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"collection persisted","slot":"todos","tasks":3}
//
// # Log Rotation
//
// [NewLoggerWithRotation] wraps the log file in a [RotatingWriter]. Rotated
// files are named mustdo.log.1, mustdo.log.2, and so on, where .1 is the most
// recent backup. With compression enabled they become mustdo.log.1.gz.
//
// # Testing
//
// Use [NopLogger] to discard output.
package logging
