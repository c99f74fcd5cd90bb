package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerecomenda/web"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recommendation form as a web page",
	Long: `Start a small web UI with the filter form, results, page strip and
movie details. Every page view talks to the API on behalf of the browser.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "address to listen on (default from server.listen)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Listen
	if cmd.Flags().Changed("listen") {
		addr = listenAddr
	}

	srv, err := web.New(web.Config{
		API:             client,
		Images:          images,
		Compiler:        compiler,
		MaxVisiblePages: cfg.Pagination.MaxVisiblePages,
		TitleLimit:      cfg.Display.TitleLimit,
		OverviewLimit:   cfg.Display.OverviewLimit,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}

	logger.Info().
		Str("addr", addr).
		Str("api", client.BaseURL()).
		Msg("Starting web UI")

	return srv.ListenAndServe(cmd.Context(), addr)
}
