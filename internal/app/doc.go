// Package app is the composition root for jester.
//
// # Overview
//
// Every invocation wires the same pieces and then either runs the TUI or
// performs a single request and prints the result:
//
//	┌──────────────────┐
//	│ Run() / Random() │
//	└────────┬─────────┘
//	         │
//	         ├─────> config.LoadEnvFile()  .env into the environment
//	         ├─────> config.Load()         config.toml + JESTER_API_URL
//	         ├─────> newLogger()           zap JSON to log_file
//	         ├─────> jokes.NewClient()     HTTP client for the joke API
//	         ├─────> state.NewStore()      request lifecycle + snapshot
//	         ├─────> store.Subscribe()     log every phase change
//	         └─────> ui.Run() or store.Dispatch()
//
// # Error Handling
//
// Fatal errors are returned from every entry point: an unreadable or
// invalid config file, a log file that cannot be opened, a malformed API
// URL. Request failures are not fatal to the TUI; they land in the store's
// error message. One-shot commands return that message as their error so the
// CLI can exit non-zero.
//
// # Logging
//
// The TUI owns the terminal, so all logs go to the configured file. Verbose
// mode lowers the level to debug, which includes every request transition
// and the HTTP calls made by the client. The log subcommand reads the same
// file back through logtail.
package app
