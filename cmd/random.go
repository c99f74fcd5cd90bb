package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/session"
)

var (
	randomFilters filterFlags
	randomMatch   string
	randomPreset  string
)

// randomCmd represents the random command
var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Pick one random movie matching the filters",
	Example: `  cinerecomenda random
  cinerecomenda random --mood thoughtful --runtime-max 110`,
	Args: cobra.NoArgs,
	RunE: runRandom,
}

func init() {
	addFilterFlags(randomCmd, &randomFilters)
	randomCmd.Flags().StringVarP(&randomMatch, "match", "m", "", "warn when the pick does not match this expression")
	randomCmd.Flags().StringVarP(&randomPreset, "preset", "p", "", "warn when the pick does not match a preset from config")
}

func runRandom(cmd *cobra.Command, args []string) error {
	filters, err := randomFilters.filters(cfg.Display.ResponseLanguage)
	if err != nil {
		return err
	}

	matcher, err := presets.Resolve(randomPreset, randomMatch)
	if err != nil {
		return err
	}

	s := session.New(client, logger,
		session.WithFilters(filters),
		session.WithMode(movies.TypeSingle),
	)

	logger.Debug().Str("query", filters.RandomValues().Encode()).Msg("Picking a random movie")

	if err := s.Submit(cmd.Context()); err != nil {
		return err
	}

	printSnapshot(cmd, s.Snapshot(), matcher)
	return nil
}
