package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/classicadventures/mixcreator/version"
)

// NewRootCmd creates and returns the root cobra command for the mixcreator CLI.
// It sets up all subcommands, command groups, and the shared logging flags.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mixcreator",
		Short: "mixcreator - build Blade Runner subtitle archives from a spreadsheet",
		Long: `mixcreator converts the subtitle workbook of Blade Runner (1997) into text
resources (TRx files) and packs them, together with the subtitle fonts, into
SUBTITLES.MIX.

Use subcommands to perform different operations:
  - build: Encode the workbook and pack the archive
  - pack: Pack existing files into an archive
  - validate: Check the structure of an archive and its text resources
  - inspect: Dump the quotes of a text resource
  - hash: Print the archive ids of file names
  - mount: Mount an archive as a read-only filesystem`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("verbose", false, "Log progress information")
	rootCmd.PersistentFlags().Bool("trace", false, "Log debug information, including quote statistics")

	groupBuild := "build"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupBuild,
		Title: "Build Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	buildCmd := NewBuildCmd()
	packCmd := NewPackCmd()
	validateCmd := NewValidateCmd()
	inspectCmd := NewInspectCmd()
	hashCmd := NewHashCmd()
	mountCmd := NewMountCmd()

	buildCmd.GroupID = groupBuild
	packCmd.GroupID = groupBuild
	validateCmd.GroupID = groupUtilities
	inspectCmd.GroupID = groupUtilities
	hashCmd.GroupID = groupUtilities
	mountCmd.GroupID = groupUtilities

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(mountCmd)

	return rootCmd
}

// newLogger builds the logger of one command run from the persistent flags.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(cmd.ErrOrStderr())
	l.SetLevel(logrus.WarnLevel)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		l.SetLevel(logrus.InfoLevel)
	}
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
