// Package render formats recommendation state for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/s0up4200/cinerecomenda/catalog"
	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/pagination"
	"github.com/s0up4200/cinerecomenda/session"
)

const (
	branch     = "├── "
	lastBranch = "╰── "
	pipe       = "│"
	indentMid  = "│   "
	indentLast = "    "
)

// Options controls what the formatter prints
type Options struct {
	Color         bool
	ShowDetails   bool
	TitleLimit    int
	OverviewLimit int
	Images        movies.ImageResolver
}

// DefaultOptions returns options with the card truncation limits set
func DefaultOptions() Options {
	return Options{
		TitleLimit:    DefaultTitleLimit,
		OverviewLimit: DefaultOverviewLimit,
		Images:        movies.NewImageResolver("", ""),
	}
}

// ConsoleFormatter provides console output formatting for recommendations
type ConsoleFormatter struct {
	opts Options
	p    palette
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(opts Options) *ConsoleFormatter {
	if opts.Images.BaseURL == "" {
		opts.Images = movies.NewImageResolver("", opts.Images.Placeholder)
	}
	return &ConsoleFormatter{opts: opts, p: palette{enabled: opts.Color}}
}

// FormatTypeSelector shows which recommendation mode is active
func (f *ConsoleFormatter) FormatTypeSelector(mode movies.RecommendationType) string {
	radio := func(selected bool) string {
		if selected {
			return "(•)"
		}
		return "( )"
	}

	return fmt.Sprintf("Recommendation type: %s Collection  %s Random pick\n",
		radio(!mode.IsSingle()), radio(mode.IsSingle()))
}

// FormatFilters lists the constraints that are set
func (f *ConsoleFormatter) FormatFilters(filters movies.Filters) string {
	var lines []string

	if len(filters.GenreIDs) > 0 {
		lines = append(lines, "Genres: "+strings.Join(catalog.GenreNames(filters.GenreIDs), ", "))
	}
	if filters.Decade != 0 {
		lines = append(lines, "Decade: "+catalog.DecadeLabel(filters.Decade))
	}
	if filters.Mood != "" {
		label := filters.Mood
		if mood, err := catalog.LookupMood(filters.Mood); err == nil {
			label = mood.Label
		}
		lines = append(lines, "Mood: "+label)
	}
	if filters.OriginCountry != "" {
		lines = append(lines, "Country: "+filters.OriginCountry)
	}
	if filters.OriginalLanguage != "" {
		lines = append(lines, "Language: "+catalog.LanguageName(filters.OriginalLanguage))
	}
	if filters.RuntimeMin != 0 || filters.RuntimeMax != 0 {
		lines = append(lines, "Runtime: "+formatRuntimeRange(filters.RuntimeMin, filters.RuntimeMax))
	}
	if filters.SortBy != "" {
		lines = append(lines, "Sort: "+filters.SortBy)
	}
	if filters.ResponseLanguage != "" {
		lines = append(lines, "Response language: "+filters.ResponseLanguage)
	}

	if len(lines) == 0 {
		return "Filters: none (any movie)\n"
	}

	var sb strings.Builder
	sb.WriteString("Filters:\n")
	for i, line := range lines {
		prefix := branch
		if i == len(lines)-1 {
			prefix = lastBranch
		}
		sb.WriteString(prefix + line + "\n")
	}
	return sb.String()
}

// FormatMovieCard formats one movie. Featured cards are used for random picks.
func (f *ConsoleFormatter) FormatMovieCard(movie movies.Movie, featured bool) string {
	var sb strings.Builder
	if featured {
		sb.WriteString(f.p.bold("Random pick") + "\n\n")
	}
	f.formatMovie(&sb, movie, true)
	return sb.String()
}

// FormatCollection formats one page of recommendations
func (f *ConsoleFormatter) FormatCollection(resp *movies.RecommendationsResponse, page int) string {
	if resp == nil || resp.IsEmpty() {
		return "No movies found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nRecommendations, page %d of %d (%s results):\n\n",
		page, resp.TotalPages, FormatCount(resp.TotalResults))

	for i, movie := range resp.Results {
		isLast := i == len(resp.Results)-1
		f.formatMovie(&sb, movie, isLast)

		if !isLast {
			sb.WriteString(pipe + "\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatDetails formats the full record of one movie
func (f *ConsoleFormatter) FormatDetails(d *movies.MovieDetails) string {
	if d == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", f.p.bold(d.Title), FormatYear(d.ReleaseDate))
	if d.Tagline != "" {
		fmt.Fprintf(&sb, "\"%s\"\n", d.Tagline)
	}

	rows := [][2]string{
		{"Rating", f.rating(d.VoteAverage) + " (" + FormatCount(d.VoteCount) + " votes)"},
		{"Runtime", FormatRuntime(d.Runtime)},
		{"Released", FormatReleaseDate(d.ReleaseDate)},
	}
	if len(d.Genres) > 0 {
		rows = append(rows, [2]string{"Genres", strings.Join(d.GenreNames(), ", ")})
	}
	rows = append(rows,
		[2]string{"Budget", FormatMoney(d.Budget)},
		[2]string{"Revenue", FormatMoney(d.Revenue)},
	)
	if len(d.SpokenLanguages) > 0 {
		names := make([]string, len(d.SpokenLanguages))
		for i, l := range d.SpokenLanguages {
			names[i] = l.Name
			if l.EnglishName != "" {
				names[i] = l.EnglishName
			}
		}
		rows = append(rows, [2]string{"Languages", strings.Join(names, ", ")})
	}
	if len(d.ProductionCountries) > 0 {
		names := make([]string, len(d.ProductionCountries))
		for i, c := range d.ProductionCountries {
			names[i] = c.Name
		}
		rows = append(rows, [2]string{"Countries", strings.Join(names, ", ")})
	}
	if d.Homepage != "" {
		rows = append(rows, [2]string{"Homepage", d.Homepage})
	}
	if f.opts.ShowDetails {
		rows = append(rows,
			[2]string{"Poster", f.opts.Images.URL(d.PosterPath, movies.SizeThumbnail)},
			[2]string{"Backdrop", f.opts.Images.URL(d.BackdropPath, movies.SizeBackdrop)},
		)
	}

	for i, row := range rows {
		prefix := branch
		if i == len(rows)-1 && d.Overview == "" {
			prefix = lastBranch
		}
		fmt.Fprintf(&sb, "%s%s: %s\n", prefix, row[0], row[1])
	}
	if d.Overview != "" {
		fmt.Fprintf(&sb, "%sOverview:\n", lastBranch)
		for _, line := range wrap(d.Overview, 72) {
			sb.WriteString(indentLast + line + "\n")
		}
	}

	return sb.String()
}

// FormatPagination renders the page strip. Prev and Next are left out when
// they would be disabled.
func (f *ConsoleFormatter) FormatPagination(items []pagination.Item, current, total int) string {
	if len(items) == 0 || total <= 1 {
		return ""
	}

	var parts []string
	if pagination.HasPrevious(current) {
		parts = append(parts, f.p.cyan("< Prev"))
	}
	for _, item := range items {
		switch {
		case item.Gap:
			parts = append(parts, f.p.dim(pagination.Ellipsis))
		case item.IsCurrent(current):
			parts = append(parts, f.p.bold("["+item.Label()+"]"))
		default:
			parts = append(parts, item.Label())
		}
	}
	if pagination.HasNext(current, total) {
		parts = append(parts, f.p.cyan("Next >"))
	}

	return strings.Join(parts, " ") + "\n"
}

// FormatSnapshot renders whatever the session currently shows
func (f *ConsoleFormatter) FormatSnapshot(snap session.Snapshot) string {
	switch snap.State {
	case session.StateLoading:
		return "Searching for movies...\n"
	case session.StateError:
		return f.p.red("Error: "+snap.Error) + "\n"
	case session.StateSuccess:
		if snap.Single != nil {
			return f.FormatMovieCard(*snap.Single, true)
		}
		if snap.Collection != nil {
			out := f.FormatCollection(snap.Collection, snap.Page)
			if snap.ShowPagination {
				out += f.FormatPagination(snap.Pages, snap.Page, snap.TotalPages())
			}
			return out
		}
		return "No movies found\n"
	default:
		return ""
	}
}

// FormatCatalog lists every option the filters accept
func (f *ConsoleFormatter) FormatCatalog() string {
	var sb strings.Builder

	sb.WriteString("Genres:\n")
	gs := catalog.Genres()
	for i, g := range gs {
		fmt.Fprintf(&sb, "%s%d  %s\n", treePrefix(i, len(gs)), g.ID, g.Name)
	}

	sb.WriteString("\nDecades:\n")
	ds := catalog.Decades()
	for i, d := range ds {
		fmt.Fprintf(&sb, "%s%d  %s\n", treePrefix(i, len(ds)), d.Year, d.Label)
	}

	sb.WriteString("\nMoods:\n")
	ms := catalog.Moods()
	for i, m := range ms {
		fmt.Fprintf(&sb, "%s%s  %s (%s)\n", treePrefix(i, len(ms)), m.Tag, m.Label,
			strings.Join(catalog.GenreNames(m.GenreIDs), ", "))
	}

	sb.WriteString("\nLanguages:\n")
	ls := catalog.Languages()
	for i, l := range ls {
		fmt.Fprintf(&sb, "%s%s  %s\n", treePrefix(i, len(ls)), l.Code, l.Name)
	}

	sb.WriteString("\nSort keys (append .asc or .desc):\n")
	ks := catalog.SortKeys()
	for i, k := range ks {
		fmt.Fprintf(&sb, "%s%s\n", treePrefix(i, len(ks)), k)
	}

	return sb.String()
}

// formatMovie formats a single movie entry
func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie movies.Movie, isLast bool) {
	prefix := branch
	indent := indentMid
	if isLast {
		prefix = lastBranch
		indent = indentLast
	}

	fmt.Fprintf(sb, "%s%s (%s)  %s\n", prefix,
		f.p.bold(Truncate(movie.Title, f.opts.TitleLimit)),
		FormatYear(movie.ReleaseDate),
		f.rating(movie.VoteAverage))

	meta := []string{
		"Released: " + FormatReleaseDate(movie.ReleaseDate),
		"Votes: " + FormatCount(movie.VoteCount),
	}
	if movie.OriginalLanguage != "" {
		meta = append(meta, "Language: "+strings.ToUpper(movie.OriginalLanguage))
	}
	fmt.Fprintf(sb, "%s%s\n", indent, strings.Join(meta, " | "))

	if f.opts.ShowDetails && len(movie.GenreIDs) > 0 {
		fmt.Fprintf(sb, "%sGenres: %s\n", indent, strings.Join(catalog.GenreNames(movie.GenreIDs), ", "))
	}

	if movie.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, Truncate(movie.Overview, f.opts.OverviewLimit))
	}

	if f.opts.ShowDetails {
		fmt.Fprintf(sb, "%sPoster: %s\n", indent, f.opts.Images.URL(movie.PosterPath, movies.SizePoster))
		fmt.Fprintf(sb, "%sID: %d\n", indent, movie.ID)
	}
}

func (f *ConsoleFormatter) rating(v float64) string {
	return f.p.tier(RatingTier(v), "★ "+FormatRating(v))
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return lastBranch
	}
	return branch
}

func formatRuntimeRange(lo, hi int) string {
	switch {
	case lo != 0 && hi != 0:
		return fmt.Sprintf("%d-%d min", lo, hi)
	case lo != 0:
		return fmt.Sprintf("at least %d min", lo)
	default:
		return fmt.Sprintf("at most %d min", hi)
	}
}

// wrap breaks text into lines of at most width runes on word boundaries
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
