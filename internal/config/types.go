package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	ProjectID     string
	QuestionsPath string
	// WaitTimeout bounds how long a match creator waits for an opponent.
	// Zero disables the bound.
	WaitTimeout time.Duration
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
