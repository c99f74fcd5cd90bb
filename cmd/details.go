package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// detailsCmd represents the details command
var detailsCmd = &cobra.Command{
	Use:   "details <id>...",
	Short: "Show details for one or more movies",
	Long: `Show runtime, budget, languages and more for the given movie ids.
Several ids are fetched concurrently, bounded by api.concurrency.`,
	Example: `  cinerecomenda details 27205
  cinerecomenda details 27205 157336 155`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetails,
}

func runDetails(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid movie id '%s': must be a positive integer", arg)
		}
		ids = append(ids, id)
	}

	out := cmd.OutOrStdout()
	results := client.GetMovieDetailsBatch(cmd.Context(), ids)
	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}

	var failed int
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if result.Err != nil {
			fmt.Fprintf(out, "✗ %d: %v\n", result.ID, result.Err)
			failed++
			continue
		}
		fmt.Fprint(out, formatter.FormatDetails(result.Details))
	}

	if failed > 0 {
		return errors.New(pluralize(failed, "lookup", "lookups") + " failed")
	}
	return nil
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
