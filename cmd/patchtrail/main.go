package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/patchtrail/patchtrail/internal"
	"github.com/patchtrail/patchtrail/internal/infrastructure/controllers"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "patchtrail",
		Short: "Track changes between timestamped JSON snapshots",
		Long: `patchtrail tracks changes between successive timestamped snapshots
of a JSON document. For two named versions it computes a machine-readable
JSON Patch, optionally forward-applies a "fix" overlay onto the newer
snapshot, generates a human-readable summary, appends a changelog entry,
and notifies a webhook.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().Bool("dry-run", false,
		"Log every side effect without executing it")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, app *internal.App) {
	for _, controller := range app.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if pc, ok := ctrl.(*controllers.ProcessController); ok {
			pc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Best-effort .env loading; flags and real env still win
	_ = godotenv.Load()

	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, injectApp())

	if err := cobraRoot.Execute(); err != nil {
		logger.Errorf("[ERROR] %v", err)
		os.Exit(1)
	}
}
