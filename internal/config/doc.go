// Package config handles loading jester's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/jester/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. JESTER_API_URL from the environment overrides api_url
//
// LoadEnvFile can be called first to merge a .env file into the environment.
// Variables that are already set are never overwritten.
//
// # Default Values
//
//   - Config file: ~/.config/jester/config.toml
//   - API base URL: https://api.chucknorris.io/jokes
//   - Log file: ~/.local/share/jester/jester.log
//   - Theme: Nightfox
//   - Markdown style: dark
//   - Shuffle: off
//   - Request timeout: 10 seconds
//
// # TOML Format
//
//	api_url = "https://api.chucknorris.io/jokes"
//	log_file = "~/.local/share/jester/jester.log"
//	theme = "Kanagawa"
//	markdown_style = "dark"
//	shuffle_seconds = 30
//	request_timeout_seconds = 10
//
// Values are trimmed, and paths starting with ~ are expanded to the user's
// home directory. Negative durations are rejected.
//
// The base URL is read once at startup; nothing reloads it while jester runs.
package config
