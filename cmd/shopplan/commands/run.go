package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shopplan/config"
	"github.com/teranos/shopplan/errors"
	"github.com/teranos/shopplan/logger"
	"github.com/teranos/shopplan/plan"
	"github.com/teranos/shopplan/sym"
)

// RunCmd computes a schedule and persists it.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: sym.Plan + " Compute a schedule and persist it",
	Long: sym.Plan + ` run - one full-batch scheduling computation.

Loads the reference snapshot (projects, tasks, employees, calendar,
limit dependencies), computes slot assignments for every pending task,
and replaces the persisted schedule wholesale. Tasks that cannot be
placed are reported as warnings; they never abort the run.

Examples:
  shopplan run                          # Schedule and persist
  shopplan run --dry-run                # Schedule without persisting
  shopplan run --team assembly          # Schedule the assembly team
  shopplan run --from 2026-09-01T08:00:00Z`,
	RunE: runSchedule,
}

var (
	runDryRunFlag bool
	runStrictFlag bool
	runTeamFlag   string
	runFromFlag   string
	runDbFlag     string
)

func init() {
	RunCmd.Flags().BoolVar(&runDryRunFlag, "dry-run", false, "Compute the schedule but do not persist it")
	RunCmd.Flags().BoolVar(&runStrictFlag, "strict", false, "Exit with an error when any task is unschedulable")
	RunCmd.Flags().StringVar(&runTeamFlag, "team", "", "Team whose calendar governs the run (overrides config)")
	RunCmd.Flags().StringVar(&runFromFlag, "from", "", "Timeline start as RFC3339 (overrides config; default now)")
	RunCmd.Flags().StringVar(&runDbFlag, "db", "", "Database path (overrides config)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	planCfg, err := buildPlanConfig(cfg.Scheduler)
	if err != nil {
		return err
	}

	database, err := openDatabase(runDbFlag)
	if err != nil {
		return err
	}
	defer database.Close()

	store := plan.NewStore(database, logger.Logger)
	ctx := cmd.Context()

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load scheduling snapshot")
	}

	hasRule := false
	for _, rule := range snap.Rules {
		if rule.TeamID == planCfg.TeamID && rule.Active {
			hasRule = true
			break
		}
	}
	if !hasRule {
		return errors.Wrapf(errors.ErrNoWorkingHours, "team %q", planCfg.TeamID)
	}

	logger.PlanInfow("Starting scheduling run",
		logger.FieldTeamID, planCfg.TeamID,
		"dry_run", runDryRunFlag,
	)

	result, err := plan.NewScheduler(planCfg, logger.Logger).Run(ctx, snap)
	if err != nil {
		return errors.Wrap(err, "scheduling run failed")
	}

	printResult(result)

	if runDryRunFlag {
		pterm.Info.Println("Dry run: schedule not persisted")
		if runStrictFlag && len(result.Unschedulable) > 0 {
			return errors.Wrapf(errors.ErrUnschedulable, "%d task(s)", len(result.Unschedulable))
		}
		return nil
	}

	if err := store.ReplaceSlots(ctx, result.Slots, cfg.Scheduler.InsertBatchSize); err != nil {
		return errors.Wrap(err, "failed to persist schedule")
	}

	pterm.Success.Printf("Schedule persisted (%d slots)\n", len(result.Slots))

	if runStrictFlag && len(result.Unschedulable) > 0 {
		return errors.Wrapf(errors.ErrUnschedulable, "%d task(s)", len(result.Unschedulable))
	}
	return nil
}

// buildPlanConfig maps file configuration and CLI flags onto the engine
// configuration. Flags win over the file.
func buildPlanConfig(sc config.SchedulerConfig) (plan.Config, error) {
	planCfg := plan.Config{
		TeamID:            sc.TeamID,
		HorizonDays:       sc.HorizonDays,
		StepMinutes:       sc.StepMinutes,
		MaxPasses:         sc.MaxPasses,
		ProjectPassBudget: sc.ProjectPassBudget,
		AtRiskSlackDays:   sc.AtRiskSlackDays,
	}

	if runTeamFlag != "" {
		planCfg.TeamID = runTeamFlag
	}

	timelineStart := sc.TimelineStart
	if runFromFlag != "" {
		timelineStart = runFromFlag
	}
	if timelineStart != "" {
		start, err := time.Parse(time.RFC3339, timelineStart)
		if err != nil {
			return plan.Config{}, errors.Wrapf(err, "invalid timeline start %q", timelineStart)
		}
		planCfg.TimelineStart = start
	}

	return planCfg, nil
}

func printResult(result *plan.Result) {
	fmt.Printf("%s Scheduling run %s\n", sym.Plan, result.RunID)
	fmt.Printf("  Slots:         %d\n", len(result.Slots))
	fmt.Printf("  Unschedulable: %d\n", len(result.Unschedulable))
	fmt.Println()

	for _, warning := range result.Unschedulable {
		pterm.Warning.Printf("%s %s (%s): %s\n", sym.Slot, warning.Title, warning.TaskID, warning.Reason)
	}

	for _, risk := range result.Risks {
		switch risk.Status {
		case plan.RiskOverdue:
			pterm.Error.Printf("%s %s: final step ends %s, after installation\n",
				sym.Risk, risk.ProjectName, risk.FinalTaskEnd.Format("2006-01-02"))
		case plan.RiskAtRisk:
			pterm.Warning.Printf("%s %s: %d day(s) of slack before installation\n",
				sym.Risk, risk.ProjectName, risk.SlackDays)
		case plan.RiskPending:
			pterm.Info.Printf("%s %s: nothing scheduled yet\n", sym.Risk, risk.ProjectName)
		}
	}
}
