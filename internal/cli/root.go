package cli

import (
	"github.com/resf/repoview/internal/site"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "repoview",
		Version: site.ToolVersion,
		Short:   "Generate a browsable static site for an RPM repository",
		Long: `Repoview reads RPM repository metadata and generates static HTML
pages for it: one page per package, one page per group, and an index
tying them together.

Metadata can come from a createrepo-style repodata tree or straight
from a directory of .rpm files.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			quiet, _ := cmd.Flags().GetBool("quiet")
			verbose, _ := cmd.Flags().GetBool("verbose")
			switch {
			case quiet:
				logrus.SetLevel(logrus.ErrorLevel)
			case verbose:
				logrus.SetLevel(logrus.DebugLevel)
			default:
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log errors")

	// Add subcommands
	rootCmd.AddCommand(NewGenerateCmd())

	return rootCmd
}
