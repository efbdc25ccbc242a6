package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yigit/campusrecords/internal/bootstrap"
	"github.com/yigit/campusrecords/internal/pkg/helpers"
	"github.com/yigit/campusrecords/internal/seed"
)

func newMigrateCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long:  `Apply the embedded SQL migrations that have not been recorded in schema_migrations yet.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := bootstrap.RunMigrations(cmd.Context(), app.deps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}
}

func newSeedCmd(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data",
		Long:  `Create a small demo campus. Existing demo rows are left as they are.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := seed.CreateDefaultData(cmd.Context(), app.services(), app.deps.Logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "demo data in place")
			return nil
		},
	}
}

func newFeesCmd(app *cliApp) *cobra.Command {
	feesCmd := &cobra.Command{
		Use:   "fees",
		Short: "Manage fees",
	}

	var asOf string
	escalateCmd := &cobra.Command{
		Use:   "escalate",
		Short: "Mark pending fees past their due date as Overdue",
		Long: `Rewrite every Pending fee whose due date is before the as-of date (default today)
so that the overdue rule runs on it. Dates after today are rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var date time.Time
			if asOf != "" {
				var err error
				if date, err = helpers.ParseDate(asOf); err != nil {
					return err
				}
			}

			result, err := app.services().Fees.EscalateOverdueFees(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d pending fee(s) scanned, %d escalated to Overdue\n",
				result.RunID, result.Scanned, result.Affected)
			return nil
		},
	}
	escalateCmd.Flags().StringVar(&asOf, "as-of", "", "cut-off date (YYYY-MM-DD), defaults to today")

	feesCmd.AddCommand(escalateCmd)
	return feesCmd
}

func newCreditsCmd(app *cliApp) *cobra.Command {
	creditsCmd := &cobra.Command{
		Use:   "credits",
		Short: "Maintain derived student credits",
	}

	creditsCmd.AddCommand(&cobra.Command{
		Use:   "recompute",
		Short: "Recompute total credits for every student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.services().Grades.RecomputeAllCredits(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d student(s) scanned, %d repaired\n",
				result.RunID, result.Scanned, result.Affected)
			return nil
		},
	})
	return creditsCmd
}
