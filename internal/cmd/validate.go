package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/classicadventures/mixcreator/mix"
	"github.com/classicadventures/mixcreator/sheets"
	"github.com/classicadventures/mixcreator/trx"
)

// errValidation is returned when at least one archive has problems.
var errValidation = errors.New("validation failed")

// NewValidateCmd creates and returns the validate subcommand for the mixcreator CLI.
// It provides archive validation and consistency checking functionality.
func NewValidateCmd() *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "validate ARCHIVE...",
		Short: "Validate archives for corruption and consistency",
		Long: `Validate archives for corruption and consistency issues.

This command checks that the entry table is sorted the way the game searches
it, that entries are contiguous and fill the data segment exactly, and that
every text resource it can name decodes cleanly. Entry names are recovered
from the resource catalog of every language plus any --name given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args, names, verboseFlag(cmd))
		},
	}

	cmd.Flags().StringSliceVarP(&names, "name", "n", nil, "Additional entry names to recognize")

	return cmd
}

func verboseFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

func runValidate(out io.Writer, archives, extraNames []string, verbose bool) error {
	known := append(sheets.AllCandidates(), extraNames...)

	var totalErrors int
	for _, path := range archives {
		if verbose {
			fmt.Fprintf(out, "Validating archive: %s\n", path)
		}
		problems := validateArchive(path, known)
		if len(problems) > 0 {
			fmt.Fprintf(out, "Archive %s has %d errors:\n", path, len(problems))
			for _, p := range problems {
				fmt.Fprintf(out, "  - %s\n", p)
			}
			totalErrors += len(problems)
		} else if verbose {
			fmt.Fprintf(out, "Archive %s is valid\n", path)
		}
	}

	fmt.Fprintf(out, "\nValidation complete:\n")
	fmt.Fprintf(out, "  Archives checked: %d\n", len(archives))
	fmt.Fprintf(out, "  Total errors: %d\n", totalErrors)

	if totalErrors > 0 {
		return fmt.Errorf("%w: %d errors", errValidation, totalErrors)
	}
	return nil
}

func validateArchive(path string, known []string) []error {
	a, err := mix.Open(path)
	if err != nil {
		return []error{err}
	}
	defer a.Close()

	problems := a.Check()
	if len(problems) > 0 {
		// Entry data cannot be trusted once the layout is broken.
		return problems
	}

	a.Resolve(known)
	for _, e := range a.Entries {
		if !trx.IsResourceName(e.Name) {
			continue
		}
		data, err := a.ReadEntry(e)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if _, err := trx.Parse(data); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", e.Name, err))
		}
	}
	return problems
}
