package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"options"},
	Short:   "List the genres, decades, moods, languages and sort keys",
	Args:    cobra.NoArgs,
	RunE:    runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatter.FormatCatalog())

	names := presets.Names()
	if len(names) == 0 {
		return nil
	}

	fmt.Fprintln(out, "\nMatch presets:")
	for _, name := range names {
		m, err := presets.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-16s %s\n", name, m.Expression())
	}
	return nil
}
