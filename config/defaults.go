package config

import (
	"os"

	"github.com/spf13/viper"
)

// DefaultDirPermissions is used when creating the user config directory
const DefaultDirPermissions os.FileMode = 0o755

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "shopplan.db")

	// Scheduler defaults
	v.SetDefault("scheduler.team_id", "production")
	v.SetDefault("scheduler.horizon_days", 365)
	v.SetDefault("scheduler.step_minutes", 15)
	v.SetDefault("scheduler.max_passes", 100)
	v.SetDefault("scheduler.project_pass_budget", 10)
	v.SetDefault("scheduler.at_risk_slack_days", 2)
	v.SetDefault("scheduler.insert_batch_size", 100)
	v.SetDefault("scheduler.timeline_start", "")
}
