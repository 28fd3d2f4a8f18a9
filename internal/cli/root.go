package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// NewRootCommand builds the pbxedit command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pbxedit",
		Short: "Edit Xcode project manifests from the command line",
		Long: `Pbxedit parses a project.pbxproj manifest into a graph of file
references, build memberships, groups and build phases, applies
add/remove edits, and writes the manifest back in Xcode's own
formatting so diffs stay reviewable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringP("project", "p", "", "Path to project.pbxproj (default: discovered)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	addCmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Add a file to the project",
		Args:  cobra.ExactArgs(1),
		RunE:  RunAdd,
	}
	addCmd.Flags().String("category", "", "Override classification: source|header|framework|resource")
	addCmd.Flags().Bool("no-check", false, "Skip the syntax screen on the added file")

	removeCmd := &cobra.Command{
		Use:   "remove <file>",
		Short: "Remove a file from the project",
		Args:  cobra.ExactArgs(1),
		RunE:  RunRemove,
	}

	syncCmd := &cobra.Command{
		Use:   "sync [diff]",
		Short: "Apply a diff's file additions and deletions to the project",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunSync,
	}
	syncCmd.Flags().Bool("dry-run", false, "Print planned edits without touching the manifest")
	syncCmd.Flags().Bool("strict", false, "Fail on syntax-screen issues instead of warning")

	pinCmd := &cobra.Command{
		Use:   "pin <package>",
		Short: "Show the pinned version of a Swift package dependency",
		Args:  cobra.ExactArgs(1),
		RunE:  RunPin,
	}
	pinCmd.Flags().Bool("json", false, "Print machine-readable pin info")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the manifest graph's internal consistency",
		RunE:  RunCheck,
	}
	checkCmd.Flags().Bool("json", false, "Print machine-readable problem list")

	dispatchCmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Run JSON operation requests from stdin",
		RunE:  RunDispatch,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the pbxedit version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	rootCmd.AddCommand(addCmd, removeCmd, syncCmd, pinCmd, checkCmd, dispatchCmd, versionCmd)
	return rootCmd
}
