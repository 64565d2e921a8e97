// Package runtime provides the execution context for gitscope commands.
//
// It encapsulates shared dependencies needed by commands and the server,
// such as the engine instance, logger and loaded configuration.
package runtime
