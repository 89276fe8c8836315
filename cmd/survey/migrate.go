package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/ywyher/survey/internal/database"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd, database.MigrateUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations (one step unless --steps is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := migrateSteps
		if steps == 0 {
			steps = 1
		}
		applied, err := survey.Database.Migrate(database.MigrateDown, steps)
		if err != nil {
			return err
		}
		// cached lists may hold rows from the dropped schema
		if err := survey.Database.FlushAllCaches(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", applied)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses, err := survey.Database.MigrationStatus()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tAPPLIED AT")
		for _, status := range statuses {
			appliedAt := "pending"
			if status.Applied {
				appliedAt = status.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\n", status.ID, appliedAt)
		}
		return w.Flush()
	},
}

func runMigration(cmd *cobra.Command, direction string) error {
	applied, err := survey.Database.Migrate(direction, migrateSteps)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
	return nil
}

func init() {
	migrateCmd.PersistentFlags().IntVar(&migrateSteps, "steps", 0, "maximum number of migrations to run (0 = all for up)")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}
