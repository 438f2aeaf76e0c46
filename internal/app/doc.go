// Package app wires the application together: it owns the logger, loads the
// build description through a config.Loader, registers the built-in output
// formats, and drives composition, emission, and execution.
package app
