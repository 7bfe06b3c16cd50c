package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Airtable  AirtableConfig
	Slack     SlackConfig
	Turso     TursoConfig
	ProjectID string
}

// AirtableConfig addresses the league base. It is handed to the store client
// explicitly rather than read from package state.
type AirtableConfig struct {
	APIKey       string
	BaseID       string
	BaseURL      string
	MaxRetries   int
	RetryBackoff time.Duration
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
