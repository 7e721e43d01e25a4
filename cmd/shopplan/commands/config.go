package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/shopplan/config"
	"github.com/teranos/shopplan/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shopplan configuration",
	Long: `Display shopplan configuration settings.

Configuration sources (in order of precedence):
1. Environment variables (SHOPPLAN_* prefix)
2. Project config (./shopplan.toml, searches up directories)
3. User config (~/.shopplan/config.toml)
4. System config (/etc/shopplan/config.toml)
5. Default values

Examples:
  shopplan config show                 # Show effective configuration
  shopplan config show --format json   # Show configuration in JSON format
  shopplan config get database.path    # Get specific config value
  shopplan config where                # Show which config files were found`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., database.path, scheduler.team_id)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which configuration files were found",
	RunE:  runConfigWhere,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Printf("# shopplan configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Printf("# shopplan configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v := config.GetViper()
	if !v.IsSet(key) {
		return errors.Wrapf(errors.ErrNotFound, "configuration key %q", key)
	}

	fmt.Println(v.Get(key))
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	fmt.Println("Configuration cascade (later overrides earlier):")
	fmt.Println("  1. [DEFAULT]  Built-in defaults")
	fmt.Println("  2. [SYSTEM]   /etc/shopplan/config.toml")
	fmt.Println("  3. [USER]     ~/.shopplan/config.toml")
	fmt.Println("  4. [PROJECT]  ./shopplan.toml (searches up directories)")
	fmt.Println("  5. [ENV]      SHOPPLAN_* environment variables")
	fmt.Println()

	homeDir, _ := os.UserHomeDir()
	paths := []string{
		"/etc/shopplan/config.toml",
		filepath.Join(homeDir, ".shopplan", "config.toml"),
	}

	fmt.Println("Files:")
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("  [found]   %s\n", path)
		} else {
			fmt.Printf("  [missing] %s\n", path)
		}
	}
	return nil
}
