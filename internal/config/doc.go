// Package config handles loading the speakerctl configuration file.
//
// # Overview
//
// speakerctl reads a small TOML file to find the speaker's control server and
// to tune logging and polling. Every field is optional.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/speakerctl/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags are applied by the caller after Load returns.
//
// # TOML Format
//
//	server = "192.168.4.1:7070"
//	request_timeout = "5s"
//	poll_interval = "10s"
//	log_file = "~/.local/state/speakerctl/speakerctl.log"
//	log_level = "info"
//	eager_clear = false
//
// # Default Values
//
//   - server: 127.0.0.1:7070
//   - request_timeout: none (requests end when their context does)
//   - poll_interval: none (the device list refreshes only on request)
//   - log_file: ~/.local/state/speakerctl/speakerctl.log
//   - log_level: info
//   - eager_clear: false (a failed catalog load keeps the previous catalog)
//
// Durations use Go syntax ("1500ms", "10s"). Negative durations are rejected.
// Tilde expansion is applied to log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and invalid durations
package config
