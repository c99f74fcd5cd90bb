package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerecomenda/config"
	"github.com/s0up4200/cinerecomenda/match"
	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/render"
)

var (
	cfgFile   string
	noColor   bool
	cfg       *config.Config
	logger    zerolog.Logger
	client    *movies.Client
	images    movies.ImageResolver
	compiler  *match.Compiler
	presets   *match.Presets
	formatter *render.ConsoleFormatter
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinerecomenda",
	Short: "Movie recommendations from the terminal or the browser",
	Long: `cinerecomenda asks a movie recommendation API for suggestions that match
your taste. Filter by genre, decade, mood, country, language and runtime,
then page through a collection or let it pick one movie at random.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and builds the shared clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if noColor {
		cfg.Display.Color = false
		cfg.Logging.Color = false
	}
	cfg.Display.Color = cfg.Display.Color && isTerminal(os.Stdout)
	cfg.Logging.Color = cfg.Logging.Color && isTerminal(os.Stderr)

	logger = setupLogger(cfg.Logging)
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("Loaded config")
	}

	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = "cinerecomenda/" + version
	}

	client, err = movies.NewClient(cfg.API.URL, logger,
		movies.WithTimeout(cfg.API.Timeout),
		movies.WithConcurrency(cfg.API.Concurrency),
		movies.WithUserAgent(userAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	images = movies.NewImageResolver(cfg.Images.BaseURL, cfg.Images.Placeholder)

	compiler = match.NewCompiler()
	presets, err = match.NewPresets(compiler, cfg.Match.Presets)
	if err != nil {
		return err
	}

	formatter = render.NewConsoleFormatter(render.Options{
		Color:         cfg.Display.Color,
		ShowDetails:   cfg.Display.Details,
		TitleLimit:    cfg.Display.TitleLimit,
		OverviewLimit: cfg.Display.OverviewLimit,
		Images:        images,
	})

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
