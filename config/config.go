// Package config loads shopplan configuration from TOML files and the
// environment using Viper. Precedence (lowest to highest): system
// config, user config, project config found by upward search, env vars
// with the SHOPPLAN_ prefix.
package config

// Config is the root shopplan configuration
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SchedulerConfig configures the batch scheduling engine.
// Zero values fall back to the documented defaults at load time.
type SchedulerConfig struct {
	TeamID            string `mapstructure:"team_id"`             // team whose calendar governs the run
	HorizonDays       int    `mapstructure:"horizon_days"`        // earliest-slot search horizon (default: 365)
	StepMinutes       int    `mapstructure:"step_minutes"`        // candidate-start step within a day (default: 15)
	MaxPasses         int    `mapstructure:"max_passes"`          // global retry-pass cap for deferred tasks (default: 100)
	ProjectPassBudget int    `mapstructure:"project_pass_budget"` // per-project retry budget (default: 10)
	AtRiskSlackDays   int    `mapstructure:"at_risk_slack_days"`  // slack below which a project is at-risk (default: 2)
	InsertBatchSize   int    `mapstructure:"insert_batch_size"`   // slots per insert batch in the writer (default: 100)
	TimelineStart     string `mapstructure:"timeline_start"`      // RFC3339 run start; empty = now
}
