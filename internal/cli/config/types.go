// Package config provides configuration management for the sqlsplit CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	Dialect      string `koanf:"dialect"`
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	HistoryPath  string `koanf:"history_path"`
	DSN          string `koanf:"dsn"`
}

// Default configuration values.
const (
	DefaultDialect     = "postgres"
	DefaultOutput      = "auto" // Auto-detect: TTY=table, non-TTY=plain
	DefaultHistoryFile = ".sqlsplit/history.db"
)
