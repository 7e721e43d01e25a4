package commands

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/shopplan/config"
	"github.com/teranos/shopplan/errors"
	"github.com/teranos/shopplan/sym"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: sym.DB + " Manage shopplan database",
	Long: sym.DB + ` db - Manage shopplan database operations

Examples:
  shopplan db migrate             # Apply pending schema migrations
  shopplan db stats               # Show reference-data and schedule counts`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase("")
		if err != nil {
			return err
		}
		defer database.Close()

		fmt.Printf("%s Migrations applied\n", sym.DB)
		return nil
	},
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reference-data and schedule counts",
	RunE:  runDbStats,
}

func init() {
	DbCmd.AddCommand(dbMigrateCmd)
	DbCmd.AddCommand(dbStatsCmd)
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	counts := []struct {
		label string
		query string
	}{
		{"Projects", `SELECT COUNT(*) FROM projects`},
		{"Tasks", `SELECT COUNT(*) FROM tasks`},
		{"Employees", `SELECT COUNT(*) FROM employees`},
		{"Working-hours rules", `SELECT COUNT(*) FROM working_hours_rules`},
		{"Holidays", `SELECT COUNT(*) FROM holidays`},
		{"Schedule slots", `SELECT COUNT(*) FROM schedule_slots`},
	}

	fmt.Printf("%s Database Statistics\n\n", sym.DB)
	fmt.Printf("Database Path:       %s\n", cfg.Database.Path)
	for _, c := range counts {
		var n int
		if err := database.QueryRow(c.query).Scan(&n); err != nil && err != sql.ErrNoRows {
			return errors.Wrapf(err, "count %s", c.label)
		}
		fmt.Printf("%-20s %d\n", c.label+":", n)
	}
	return nil
}
