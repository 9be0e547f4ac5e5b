// Package logging provides structured logging configuration for userd.
//
// This package wraps log/slog so every component logs the same way. It
// supports configurable levels, text or JSON output, and optional shipping
// to a Loki endpoint alongside the primary handler.
//
// # Usage
//
// Create a logger with the desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "addr", addr)
//	logger.Error("listen failed", "error", err)
//
// # Integration
//
// Components accept a *slog.Logger in their constructor or via an option.
// When a logger is required but logging is unwanted (tests, library use),
// pass logging.Nop().
package logging
