package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classicadventures/mixcreator/mix"
)

// NewHashCmd creates and returns the hash subcommand for the mixcreator CLI.
func NewHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash NAME...",
		Short: "Print the archive ids of file names",
		Long: `Print the id an archive uses for each file name, in hex and as the signed
integer that orders the entry table.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range args {
				id := mix.FoldHash(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %08X %11d\n", name, id, mix.Signed(id))
			}
		},
	}
}
