package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerecomenda/match"
	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/session"
)

var (
	recommendFilters filterFlags
	recommendPage    int
	matchExpr        string
	presetName       string
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "List recommended movies matching the filters",
	Long: `Fetch one page of recommendations for the given filters and print the
movies together with the page strip.

--match and --preset only narrow what is printed from the fetched page;
the request sent to the API is the same.`,
	Example: `  cinerecomenda recommend --genre action --decade 1990
  cinerecomenda recommend --mood happy --page 3
  cinerecomenda recommend --genre 878 --match 'Rating >= 7.5'`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	addFilterFlags(recommendCmd, &recommendFilters)
	recommendCmd.Flags().IntVar(&recommendPage, "page", 1, "page to fetch")
	recommendCmd.Flags().StringVarP(&matchExpr, "match", "m", "", "only show movies matching this expression")
	recommendCmd.Flags().StringVarP(&presetName, "preset", "p", "", "only show movies matching a preset from config")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	filters, err := recommendFilters.filters(cfg.Display.ResponseLanguage)
	if err != nil {
		return err
	}

	matcher, err := presets.Resolve(presetName, matchExpr)
	if err != nil {
		return err
	}

	s := session.New(client, logger,
		session.WithFilters(filters),
		session.WithMode(movies.TypeCollection),
		session.WithMaxVisiblePages(cfg.Pagination.MaxVisiblePages),
	)

	logger.Debug().
		Str("query", filters.WithPage(recommendPage).Values().Encode()).
		Msg("Searching recommendations")

	if err := s.FetchPage(cmd.Context(), recommendPage); err != nil {
		return err
	}

	printSnapshot(cmd, s.Snapshot(), matcher)
	return nil
}

// printSnapshot renders a successful fetch, narrowed by matcher when set
func printSnapshot(cmd *cobra.Command, snap session.Snapshot, matcher *match.Matcher) {
	out := cmd.OutOrStdout()

	if matcher == nil {
		fmt.Fprint(out, formatter.FormatSnapshot(snap))
		return
	}

	switch {
	case snap.Collection != nil:
		total := len(snap.Collection.Results)
		snap.Collection = matcher.ApplyResponse(snap.Collection)
		fmt.Fprint(out, formatter.FormatSnapshot(snap))
		fmt.Fprintf(out, "Showing %d of %d movies on this page matching: %s\n",
			len(snap.Collection.Results), total, matcher.Expression())
	case snap.Single != nil && !matcher.Match(*snap.Single):
		fmt.Fprint(out, formatter.FormatSnapshot(snap))
		fmt.Fprintf(out, "Note: this pick does not match: %s\n", matcher.Expression())
	default:
		fmt.Fprint(out, formatter.FormatSnapshot(snap))
	}
}
