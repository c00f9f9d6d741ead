package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classicadventures/mixcreator/actors"
	"github.com/classicadventures/mixcreator/glyphs"
	"github.com/classicadventures/mixcreator/pipeline"
	"github.com/classicadventures/mixcreator/sheets"
)

// NewBuildCmd creates and returns the build subcommand for the mixcreator CLI.
// It runs the whole workbook-to-archive conversion.
func NewBuildCmd() *cobra.Command {
	var (
		opts     pipeline.Options
		langDesc string
	)

	cmd := &cobra.Command{
		Use:   "build -x WORKBOOK",
		Short: "Encode the subtitle workbook and pack SUBTITLES.MIX",
		Long: `Encode every known sheet of the subtitle workbook into a text resource
and pack the resources and the fonts into SUBTITLES.MIX.

The font configuration is read first; a missing file, a missing targetEncoding
or a looping glyph substitution stops the build before anything is written.
Rows whose id cannot be read are skipped with a warning unless --strict is set.
A character that the target code page cannot represent always stops the build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := sheets.LanguageByDescription(langDesc)
			if err != nil {
				return err
			}
			opts.Language = lang
			opts.Logger = newLogger(cmd)

			res, err := pipeline.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range res.Resources {
				fmt.Fprintf(out, "%-14s %5d quotes", r.File, r.Quotes)
				if r.Skipped > 0 {
					fmt.Fprintf(out, " (%d rows skipped)", r.Skipped)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Total resource files packed in %s: %d\n", res.Archive, len(res.Index.Entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Workbook, "xls", "x", "", "Path to the subtitle workbook (.xlsx) (required)")
	cmd.Flags().StringVar(&opts.ActorsPath, "actors", actors.DefaultFile, "Path to the actor names table")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", glyphs.DefaultConfigFile, "Path to the font and encoding configuration")
	cmd.Flags().StringVarP(&langDesc, "lang", "l", sheets.English.Description, "Game language (EN_ANY, DE_DEU, FR_FRA, IT_ITA, ES_ESP, RU_RUS)")
	cmd.Flags().StringVar(&opts.InputDir, "input-dir", ".", "Directory holding the font files")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", ".", "Directory for the text resources and the archive")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on rows with an unreadable id instead of skipping them")

	cmd.MarkFlagRequired("xls")

	return cmd
}
