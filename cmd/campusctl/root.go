package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	appServices "github.com/yigit/campusrecords/internal/app/services"
	"github.com/yigit/campusrecords/internal/bootstrap"
	"github.com/yigit/campusrecords/internal/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const skipSetup = "skip-setup"

// cliApp is the state shared by the commands of one invocation
type cliApp struct {
	configPath string
	runID      uuid.UUID
	deps       *bootstrap.Dependencies
}

// services returns the wired services; setup has run by the time RunE does
func (a *cliApp) services() *appServices.Services {
	return a.deps.Services
}

func newRootCmd() *cobra.Command {
	app := &cliApp{}

	rootCmd := &cobra.Command{
		Use:           "campusctl",
		Short:         "Operate the campus records store",
		Long:          `Apply the schema, load demo data, run maintenance sweeps and print the reporting views.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] == "true" {
				return nil
			}

			deps, err := bootstrap.Setup(cmd.Context(), app.configPath)
			if err != nil {
				return fmt.Errorf("setup failed: %w", err)
			}
			app.deps = deps
			app.runID = uuid.New()
			logger.With("runID", app.runID.String())
			logger.Debug().Str("command", cmd.CommandPath()).Msg("Command started")

			cmd.SetContext(appServices.WithRunID(cmd.Context(), app.runID))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.deps != nil {
				app.deps.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", bootstrap.DefaultConfigPath, "path to the YAML configuration file")

	setupCommands(rootCmd, app)
	return rootCmd
}

// setupCommands initializes all commands and their relationships
func setupCommands(rootCmd *cobra.Command, app *cliApp) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newMigrateCmd(app))
	rootCmd.AddCommand(newSeedCmd(app))
	rootCmd.AddCommand(newFeesCmd(app))
	rootCmd.AddCommand(newCreditsCmd(app))
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newStudentsCmd(app))
	rootCmd.AddCommand(newLibraryCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Annotations: map[string]string{skipSetup: "true"},
		Args:        cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "campusctl %s\n", version)
		},
	}
}
