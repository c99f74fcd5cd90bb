package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerecomenda/browse"
	"github.com/s0up4200/cinerecomenda/movies"
)

var (
	browseFilters filterFlags
	browseMode    string
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Build a query interactively and page through the results",
	Long: `Start an interactive session. Filters given as flags are preloaded;
type 'help' inside the session for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	addFilterFlags(browseCmd, &browseFilters)
	browseCmd.Flags().StringVar(&browseMode, "mode", string(movies.DefaultRecommendationType), "recommendation type (single/collection)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	filters, err := browseFilters.filters(cfg.Display.ResponseLanguage)
	if err != nil {
		return err
	}

	mode, err := movies.ParseRecommendationType(browseMode)
	if err != nil {
		return err
	}

	shell := browse.New(browse.Config{
		API:             client,
		Formatter:       formatter,
		Presets:         presets,
		MaxVisiblePages: cfg.Pagination.MaxVisiblePages,
		Filters:         filters,
		Mode:            mode,
		Logger:          logger,
	}, cmd.InOrStdin(), cmd.OutOrStdout())

	return shell.Run(cmd.Context())
}
