// Package browse runs an interactive, line oriented recommendation session
// in the terminal.
package browse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinerecomenda/catalog"
	"github.com/s0up4200/cinerecomenda/match"
	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/pagination"
	"github.com/s0up4200/cinerecomenda/render"
	"github.com/s0up4200/cinerecomenda/session"
)

// DefaultPrompt is printed before every command
const DefaultPrompt = "cine> "

// ErrQuit is returned by Execute when the user asks to leave
var ErrQuit = errors.New("quit")

// Config wires a Shell to its collaborators
type Config struct {
	API             movies.API
	Formatter       *render.ConsoleFormatter
	Presets         *match.Presets
	MaxVisiblePages int
	Filters         movies.Filters
	Mode            movies.RecommendationType
	Prompt          string
	Logger          zerolog.Logger
}

// Shell reads commands and drives a session
type Shell struct {
	api       movies.API
	session   *session.Session
	formatter *render.ConsoleFormatter
	presets   *match.Presets
	matcher   *match.Matcher
	prompt    string
	out       io.Writer
	in        io.Reader
	logger    zerolog.Logger
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, s *Shell, args []string) error
}

var commands map[string]command

var aliases = map[string]string{
	"search":   "go",
	"submit":   "go",
	"n":        "next",
	"p":        "prev",
	"lang":     "language",
	"exit":     "quit",
	"q":        "quit",
	"?":        "help",
	"genres":   "genre",
	"catalog":  "options",
	"settings": "filters",
}

func init() {
	commands = map[string]command{
		"help":              {"help", "show this help", cmdHelp},
		"mode":              {"mode single|collection", "choose a random pick or a paginated list", cmdMode},
		"genre":             {"genre <id|name>...", "toggle one or more genres", cmdGenre},
		"decade":            {"decade <year>|clear", "limit to a decade such as 1990", cmdDecade},
		"mood":              {"mood <tag>|clear", "pick a mood (see options)", cmdMood},
		"country":           {"country <code>|clear", "origin country, ISO 3166-1 code", cmdCountry},
		"language":          {"language <code>|clear", "original language, ISO 639-1 code", cmdLanguage},
		"runtime-min":       {"runtime-min <minutes>|clear", "shortest runtime", cmdRuntimeMin},
		"runtime-max":       {"runtime-max <minutes>|clear", "longest runtime", cmdRuntimeMax},
		"sort":              {"sort <key>|clear", "sort key, optionally with .asc or .desc", cmdSort},
		"response-language": {"response-language <tag>|clear", "language of titles and overviews", cmdResponseLanguage},
		"clear":             {"clear", "clear every filter", cmdClear},
		"filters":           {"filters", "show the mode and filters", cmdFilters},
		"options":           {"options", "list genres, decades, moods, languages and sort keys", cmdOptions},
		"go":                {"go", "search with the current filters", cmdGo},
		"page":              {"page <n>", "jump to a page", cmdPage},
		"next":              {"next", "next page", cmdNext},
		"prev":              {"prev", "previous page", cmdPrev},
		"details":           {"details [n]", "details of the n-th movie shown (default 1)", cmdDetails},
		"match":             {"match <expression>|clear", "only show movies matching an expression", cmdMatch},
		"preset":            {"preset <name>|clear", "only show movies matching a configured preset", cmdPreset},
		"reset":             {"reset", "clear filters and results and return to collection mode", cmdReset},
		"quit":              {"quit", "leave", cmdQuit},
	}
}

// New creates a shell reading from in and writing to out
func New(cfg Config, in io.Reader, out io.Writer) *Shell {
	s := &Shell{
		api:       cfg.API,
		formatter: cfg.Formatter,
		presets:   cfg.Presets,
		prompt:    cfg.Prompt,
		in:        in,
		out:       out,
		logger:    cfg.Logger,
	}
	if s.formatter == nil {
		s.formatter = render.NewConsoleFormatter(render.DefaultOptions())
	}
	if s.presets == nil {
		s.presets, _ = match.NewPresets(nil, nil)
	}
	if s.prompt == "" {
		s.prompt = DefaultPrompt
	}

	opts := []session.Option{
		session.WithFilters(cfg.Filters),
		session.WithMaxVisiblePages(cfg.MaxVisiblePages),
		session.WithObserver(func(snap session.Snapshot) {
			if snap.Loading() {
				fmt.Fprint(s.out, s.formatter.FormatSnapshot(snap))
			}
		}),
	}
	if cfg.Mode != "" {
		opts = append(opts, session.WithMode(cfg.Mode))
	}
	s.session = session.New(cfg.API, cfg.Logger, opts...)

	return s
}

// Session returns the session the shell drives
func (s *Shell) Session() *session.Session {
	return s.session
}

// Run reads commands until quit, end of input or context cancellation
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Type 'help' for commands, 'go' to search.")
	fmt.Fprint(s.out, s.formatter.FormatTypeSelector(s.session.Mode()))

	scanner := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(s.out, s.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		err := s.Execute(ctx, scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// Execute runs a single command line
func (s *Shell) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	if alias, ok := aliases[name]; ok {
		name = alias
	}

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, type 'help' for a list", fields[0])
	}

	s.logger.Debug().Str("command", name).Strs("args", fields[1:]).Msg("Running browse command")
	return cmd.run(ctx, s, fields[1:])
}

// show prints the current snapshot, narrowed by the active matcher
func (s *Shell) show() {
	snap := s.session.Snapshot()

	if s.matcher != nil && snap.State == session.StateSuccess {
		switch {
		case snap.Collection != nil:
			total := len(snap.Collection.Results)
			snap.Collection = s.matcher.ApplyResponse(snap.Collection)
			fmt.Fprint(s.out, s.formatter.FormatSnapshot(snap))
			fmt.Fprintf(s.out, "Showing %d of %d movies on this page matching: %s\n",
				len(snap.Collection.Results), total, s.matcher.Expression())
			return
		case snap.Single != nil && !s.matcher.Match(*snap.Single):
			fmt.Fprint(s.out, s.formatter.FormatSnapshot(snap))
			fmt.Fprintf(s.out, "Note: this pick does not match: %s\n", s.matcher.Expression())
			return
		}
	}

	fmt.Fprint(s.out, s.formatter.FormatSnapshot(snap))
}

// shown returns the movies currently displayed, in display order
func (s *Shell) shown() []movies.Movie {
	snap := s.session.Snapshot()
	switch {
	case snap.Single != nil:
		return []movies.Movie{*snap.Single}
	case snap.Collection != nil:
		if s.matcher != nil {
			return s.matcher.Apply(snap.Collection.Results)
		}
		return snap.Collection.Results
	default:
		return nil
	}
}

func isClear(args []string) bool {
	return len(args) == 1 && strings.EqualFold(args[0], "clear")
}

func oneArg(args []string, usage string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return strings.Join(args, " "), nil
}

func intArg(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", args[0])
	}
	return n, nil
}

func cmdHelp(_ context.Context, s *Shell, _ []string) error {
	order := []string{
		"mode", "genre", "decade", "mood", "country", "language",
		"runtime-min", "runtime-max", "sort", "response-language", "clear",
		"filters", "options", "go", "page", "next", "prev", "details",
		"match", "preset", "reset", "help", "quit",
	}

	fmt.Fprintln(s.out, "Commands:")
	for _, name := range order {
		c := commands[name]
		fmt.Fprintf(s.out, "  %-32s %s\n", c.usage, c.help)
	}
	return nil
}

func cmdMode(_ context.Context, s *Shell, args []string) error {
	raw, err := oneArg(args, commands["mode"].usage)
	if err != nil {
		return err
	}
	mode, err := movies.ParseRecommendationType(raw)
	if err != nil {
		return err
	}
	if err := s.session.SetMode(mode); err != nil {
		return err
	}
	fmt.Fprint(s.out, s.formatter.FormatTypeSelector(mode))
	return nil
}

func cmdGenre(_ context.Context, s *Shell, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", commands["genre"].usage)
	}
	if isClear(args) {
		s.session.UpdateFilters(func(f movies.Filters) movies.Filters {
			f.GenreIDs = nil
			return f
		})
		return nil
	}

	// Names may contain spaces ("science fiction"), so try the whole line first.
	tokens := args
	if id, err := catalog.LookupGenre(strings.Join(args, " ")); err == nil {
		s.session.ToggleGenre(id)
		tokens = nil
	}
	for _, token := range tokens {
		id, err := catalog.LookupGenre(token)
		if err != nil {
			return err
		}
		s.session.ToggleGenre(id)
	}

	fmt.Fprint(s.out, s.formatter.FormatFilters(s.session.Filters()))
	return nil
}

func cmdDecade(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		setField(s, func(f *movies.Filters) { f.Decade = 0 })
		return nil
	}
	year, err := intArg(args, commands["decade"].usage)
	if err != nil {
		return err
	}
	if year%10 != 0 {
		return fmt.Errorf("decade must be a year ending in 0, such as 1990")
	}
	setField(s, func(f *movies.Filters) { f.Decade = year })
	return nil
}

func cmdMood(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		setField(s, func(f *movies.Filters) { f.Mood = "" })
		return nil
	}
	raw, err := oneArg(args, commands["mood"].usage)
	if err != nil {
		return err
	}
	mood, err := catalog.LookupMood(raw)
	if err != nil {
		return err
	}
	setField(s, func(f *movies.Filters) { f.Mood = mood.Tag })
	return nil
}

func cmdCountry(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		setField(s, func(f *movies.Filters) { f.OriginCountry = "" })
		return nil
	}
	raw, err := oneArg(args, commands["country"].usage)
	if err != nil {
		return err
	}
	setField(s, func(f *movies.Filters) { f.OriginCountry = strings.ToUpper(raw) })
	return nil
}

func cmdLanguage(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		setField(s, func(f *movies.Filters) { f.OriginalLanguage = "" })
		return nil
	}
	raw, err := oneArg(args, commands["language"].usage)
	if err != nil {
		return err
	}
	setField(s, func(f *movies.Filters) { f.OriginalLanguage = strings.ToLower(raw) })
	return nil
}

func cmdRuntimeMin(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		setField(s, func(f *movies.Filters) { f.RuntimeMin = 0 })
		return nil
	}
	n, err := intArg(args, commands["runtime-min"].usage)
	if err != nil {
		return err
	}
	setField(s, func(f *movies.Filters) { f.RuntimeMin = n })
	return nil
}

func cmdRuntimeMax(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		setField(s, func(f *movies.Filters) { f.RuntimeMax = 0 })
		return nil
	}
	n, err := intArg(args, commands["runtime-max"].usage)
	if err != nil {
		return err
	}
	setField(s, func(f *movies.Filters) { f.RuntimeMax = n })
	return nil
}

func cmdSort(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		setField(s, func(f *movies.Filters) { f.SortBy = "" })
		return nil
	}
	raw, err := oneArg(args, commands["sort"].usage)
	if err != nil {
		return err
	}
	key := strings.ToLower(raw)
	if err := catalog.ValidateSortKey(key); err != nil {
		return err
	}
	setField(s, func(f *movies.Filters) { f.SortBy = key })
	return nil
}

func cmdResponseLanguage(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		setField(s, func(f *movies.Filters) { f.ResponseLanguage = "" })
		return nil
	}
	raw, err := oneArg(args, commands["response-language"].usage)
	if err != nil {
		return err
	}
	setField(s, func(f *movies.Filters) { f.ResponseLanguage = raw })
	return nil
}

func setField(s *Shell, fn func(*movies.Filters)) {
	s.session.UpdateFilters(func(f movies.Filters) movies.Filters {
		fn(&f)
		return f
	})
	fmt.Fprint(s.out, s.formatter.FormatFilters(s.session.Filters()))
}

func cmdClear(_ context.Context, s *Shell, _ []string) error {
	s.session.SetFilters(movies.Filters{})
	fmt.Fprint(s.out, s.formatter.FormatFilters(movies.Filters{}))
	return nil
}

func cmdFilters(_ context.Context, s *Shell, _ []string) error {
	fmt.Fprint(s.out, s.formatter.FormatTypeSelector(s.session.Mode()))
	fmt.Fprint(s.out, s.formatter.FormatFilters(s.session.Filters()))
	if s.matcher != nil {
		fmt.Fprintf(s.out, "Match: %s\n", s.matcher.Expression())
	}
	return nil
}

func cmdOptions(_ context.Context, s *Shell, _ []string) error {
	fmt.Fprint(s.out, s.formatter.FormatCatalog())
	if names := s.presets.Names(); len(names) > 0 {
		fmt.Fprintf(s.out, "\nMatch presets: %s\n", strings.Join(names, ", "))
	}
	return nil
}

// fetched prints the outcome of a request. Request failures are part of
// the snapshot; errors raised before any request are returned instead.
func (s *Shell) fetched(err error) error {
	if errors.Is(err, session.ErrRequestInFlight) ||
		errors.Is(err, session.ErrNoCollection) ||
		errors.Is(err, pagination.ErrPageOutOfRange) {
		return err
	}
	s.show()
	return nil
}

func cmdGo(ctx context.Context, s *Shell, _ []string) error {
	return s.fetched(s.session.Submit(ctx))
}

func cmdPage(ctx context.Context, s *Shell, args []string) error {
	page, err := intArg(args, commands["page"].usage)
	if err != nil {
		return err
	}
	return s.fetched(s.session.ChangePage(ctx, page))
}

func cmdNext(ctx context.Context, s *Shell, _ []string) error {
	return s.fetched(s.session.NextPage(ctx))
}

func cmdPrev(ctx context.Context, s *Shell, _ []string) error {
	return s.fetched(s.session.PrevPage(ctx))
}

func cmdDetails(ctx context.Context, s *Shell, args []string) error {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = intArg(args, commands["details"].usage); err != nil {
			return err
		}
	}

	shown := s.shown()
	if len(shown) == 0 {
		return errors.New("no movies shown yet, run 'go' first")
	}
	if n < 1 || n > len(shown) {
		return fmt.Errorf("pick a movie between 1 and %d", len(shown))
	}

	details, err := s.api.GetMovieDetails(ctx, shown[n-1].ID)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, s.formatter.FormatDetails(details))
	return nil
}

func cmdMatch(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		s.matcher = nil
		fmt.Fprintln(s.out, "Match cleared")
		return nil
	}
	raw, err := oneArg(args, commands["match"].usage)
	if err != nil {
		return err
	}
	m, err := s.presets.Resolve("", raw)
	if err != nil {
		return err
	}
	s.matcher = m
	s.redisplay()
	return nil
}

func cmdPreset(_ context.Context, s *Shell, args []string) error {
	if isClear(args) {
		s.matcher = nil
		fmt.Fprintln(s.out, "Match cleared")
		return nil
	}
	raw, err := oneArg(args, commands["preset"].usage)
	if err != nil {
		return err
	}
	m, err := s.presets.Resolve(raw, "")
	if err != nil {
		return err
	}
	s.matcher = m
	s.redisplay()
	return nil
}

func (s *Shell) redisplay() {
	if s.session.Snapshot().HasResults() {
		s.show()
		return
	}
	fmt.Fprintf(s.out, "Match set: %s\n", s.matcher.Expression())
}

func cmdReset(_ context.Context, s *Shell, _ []string) error {
	if err := s.session.Reset(); err != nil {
		return err
	}
	s.matcher = nil
	fmt.Fprint(s.out, s.formatter.FormatTypeSelector(s.session.Mode()))
	fmt.Fprint(s.out, s.formatter.FormatFilters(s.session.Filters()))
	return nil
}

func cmdQuit(context.Context, *Shell, []string) error {
	return ErrQuit
}
