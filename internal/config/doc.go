// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv) with static defaults, assembles the
// PostgreSQL DSN, and reads the TOML theme file consumed by dashboard
// clients.
package config
