// Package config handles configuration management for scaffold.
// It layers embedded defaults, the user config file, a per-project
// .scaffold.toml, a .env file and SCAFFOLD_* environment variables.
package config
