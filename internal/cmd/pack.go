package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/classicadventures/mixcreator/mix"
	"github.com/classicadventures/mixcreator/sheets"
)

// NewPackCmd creates and returns the pack subcommand for the mixcreator CLI.
// It packs files that already exist, without touching the workbook.
func NewPackCmd() *cobra.Command {
	var (
		dirs     []string
		output   string
		langDesc string
	)

	cmd := &cobra.Command{
		Use:   "pack [FILE...]",
		Short: "Pack existing files into an archive",
		Long: `Pack files into an archive. A FILE with a directory part is taken from that
path when it exists; otherwise it is looked up by name in the --dir directories
in order and the first match wins. Missing files are skipped.

Without FILE arguments every name the archive of --lang may hold is tried:
the dialogue and interface text resources followed by the fonts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd)

			names := args
			if len(names) == 0 {
				lang, err := sheets.LanguageByDescription(langDesc)
				if err != nil {
					return err
				}
				names = sheets.NewCatalog(lang).Candidates()
			}

			idx, err := mix.PackFile(output, names, dirs...)
			if err != nil {
				return err
			}
			if len(idx.Entries) == 0 {
				log.WithField("dirs", dirs).Warn("no files found to pack")
			}
			for _, e := range idx.Entries {
				log.WithField("file", e.Path).Infof("%08X: %s: %d bytes", e.ID, e.Name, e.Size)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total resource files packed in %s: %d\n", output, len(idx.Entries))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&dirs, "dir", "d", []string{"."}, "Directories to take files from, in order of precedence")
	cmd.Flags().StringVarP(&output, "output", "o", filepath.Join(".", sheets.ArchiveName), "Archive to write")
	cmd.Flags().StringVarP(&langDesc, "lang", "l", sheets.English.Description, "Language whose file names are packed when no FILE is given")

	return cmd
}
