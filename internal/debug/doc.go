// Package debug provides the engine's structured logger.
//
// When the CARBON_DEBUG environment variable is set to a file path, log
// records are appended to that file. Additional sinks (for example the CLI's
// stderr handler) are fanned out alongside it. With no sinks, logging is a
// no-op.
package debug
