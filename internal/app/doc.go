// Package app provides the orchestration layer for speakerctl.
//
// # Overview
//
// This package wires together configuration, logging, the speaker client,
// the session store and the dispatch layer. It serves as the composition
// root for both the one-shot CLI commands and the TUI.
//
// # Architecture
//
//  1. Load configuration from ~/.config/speakerctl/config.toml
//  2. Apply command-line overrides (server, log level, poll interval)
//  3. Open the log file, or use the logger supplied by the caller
//  4. Build the speaker HTTP client and a fresh state.Store
//  5. Build the control.Controller on top of both
//
// Open performs these steps and returns a [Session]. Run additionally
// starts the device poller and the TUI and blocks until the user exits or the
// context is cancelled.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Open()              config, log file, client, store, controller
//	       ├─────> StartPoller()       periodic RefreshDevices (optional)
//	       └─────> ui.Run()            TUI (blocks)
//
//	Results:
//	controller ──Observer──> buffered channel ──> TUI status line
//
// # Polling Behavior
//
// The poller only refreshes the device list, at poll_interval. It is off by
// default. A failed refresh is logged by the controller and the next tick
// tries again; there is no backoff.
//
// # Error Handling
//
// Fatal errors (returned from Open/Run):
//   - Configuration file invalid
//   - Log file cannot be opened
//   - Server address cannot be parsed
//
// Control server failures are never fatal. The controller logs them and the
// TUI shows the latest one in its status line.
package app
