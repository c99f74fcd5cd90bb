package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/pagination"
	"github.com/s0up4200/cinerecomenda/session"
)

func plainFormatter() *ConsoleFormatter {
	return NewConsoleFormatter(DefaultOptions())
}

func inception() movies.Movie {
	return movies.Movie{
		ID:               27205,
		Title:            "Inception",
		Overview:         "A thief who steals corporate secrets through dream-sharing technology.",
		PosterPath:       "/inception.jpg",
		ReleaseDate:      "2010-07-16",
		VoteAverage:      8.366,
		VoteCount:        35000,
		OriginalLanguage: "en",
		GenreIDs:         []int{28, 878},
	}
}

func TestFormatTypeSelector(t *testing.T) {
	f := plainFormatter()
	assert.Equal(t, "Recommendation type: (•) Collection  ( ) Random pick\n", f.FormatTypeSelector(movies.TypeCollection))
	assert.Equal(t, "Recommendation type: ( ) Collection  (•) Random pick\n", f.FormatTypeSelector(movies.TypeSingle))
}

func TestFormatFilters(t *testing.T) {
	f := plainFormatter()

	assert.Equal(t, "Filters: none (any movie)\n", f.FormatFilters(movies.Filters{}))

	got := f.FormatFilters(movies.Filters{
		GenreIDs: []int{28, 12},
		Decade:   1990,
		Mood:     "spooky",
	})
	assert.Equal(t, "Filters:\n├── Genres: Action, Adventure\n├── Decade: 1990s\n╰── Mood: Spooky\n", got)

	got = f.FormatFilters(movies.Filters{RuntimeMin: 90, OriginalLanguage: "ja"})
	assert.Equal(t, "Filters:\n├── Language: Japanese\n╰── Runtime: at least 90 min\n", got)
}

func TestFormatMovieCard(t *testing.T) {
	f := plainFormatter()

	got := f.FormatMovieCard(inception(), false)
	want := "╰── Inception (2010)  ★ 8.4\n" +
		"    Released: Jul 2010 | Votes: 35,000 | Language: EN\n" +
		"    A thief who steals corporate secrets through dream-sharing technology.\n"
	assert.Equal(t, want, got)

	featured := f.FormatMovieCard(inception(), true)
	assert.True(t, strings.HasPrefix(featured, "Random pick\n\n"))
	assert.True(t, strings.HasSuffix(featured, want))
}

func TestFormatMovieCardTruncates(t *testing.T) {
	f := plainFormatter()
	m := inception()
	m.Title = strings.Repeat("x", 40)
	m.Overview = strings.Repeat("y", 130)

	got := f.FormatMovieCard(m, false)
	assert.Contains(t, got, strings.Repeat("x", 35)+"...")
	assert.NotContains(t, got, strings.Repeat("x", 36))
	assert.Contains(t, got, strings.Repeat("y", 120)+"...")
}

func TestFormatMovieCardDetails(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowDetails = true
	f := NewConsoleFormatter(opts)

	got := f.FormatMovieCard(inception(), false)
	assert.Contains(t, got, "Genres: Action, Science Fiction")
	assert.Contains(t, got, "Poster: https://image.tmdb.org/t/p/w500/inception.jpg")
	assert.Contains(t, got, "ID: 27205")

	m := inception()
	m.PosterPath = ""
	assert.Contains(t, f.FormatMovieCard(m, false), "Poster: /placeholder-movie.svg")
}

func TestFormatCollection(t *testing.T) {
	f := plainFormatter()

	assert.Equal(t, "No movies found\n", f.FormatCollection(nil, 1))
	assert.Equal(t, "No movies found\n", f.FormatCollection(&movies.RecommendationsResponse{}, 1))

	second := inception()
	second.Title = "Interstellar"
	second.ReleaseDate = "2014-11-05"
	resp := &movies.RecommendationsResponse{
		Results:      []movies.Movie{inception(), second},
		TotalPages:   12,
		TotalResults: 231,
	}

	got := f.FormatCollection(resp, 3)
	assert.Contains(t, got, "Recommendations, page 3 of 12 (231 results):")
	assert.Contains(t, got, "├── Inception (2010)")
	assert.Contains(t, got, "╰── Interstellar (2014)")
	assert.Less(t, strings.Index(got, "Inception"), strings.Index(got, "Interstellar"))
}

func TestFormatPagination(t *testing.T) {
	f := plainFormatter()

	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{name: "middle", current: 5, total: 10, want: "< Prev 1 ... 4 [5] 6 ... 10 Next >\n"},
		{name: "first page hides prev", current: 1, total: 10, want: "[1] 2 3 4 5 ... 10 Next >\n"},
		{name: "last page hides next", current: 10, total: 10, want: "< Prev 1 ... 6 7 8 9 [10]\n"},
		{name: "short range", current: 2, total: 3, want: "< Prev 1 [2] 3 Next >\n"},
		{name: "single page", current: 1, total: 1, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := pagination.Window(tt.current, tt.total, pagination.DefaultMaxVisible)
			assert.Equal(t, tt.want, f.FormatPagination(items, tt.current, tt.total))
		})
	}
}

func TestFormatDetails(t *testing.T) {
	f := plainFormatter()

	assert.Empty(t, f.FormatDetails(nil))

	d := &movies.MovieDetails{
		Movie:    inception(),
		Runtime:  148,
		Budget:   160000000,
		Revenue:  0,
		Tagline:  "Your mind is the scene of the crime.",
		Homepage: "https://example.com/inception",
		Genres:   []movies.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		SpokenLanguages: []movies.SpokenLanguage{
			{ISO639_1: "en", Name: "English", EnglishName: "English"},
			{ISO639_1: "ja", Name: "日本語", EnglishName: "Japanese"},
		},
		ProductionCountries: []movies.ProductionCountry{{ISO3166_1: "US", Name: "United States of America"}},
	}

	got := f.FormatDetails(d)
	assert.True(t, strings.HasPrefix(got, "Inception (2010)\n\"Your mind is the scene of the crime.\"\n"))
	assert.Contains(t, got, "├── Rating: ★ 8.4 (35,000 votes)")
	assert.Contains(t, got, "├── Runtime: 2h 28min")
	assert.Contains(t, got, "├── Genres: Action, Science Fiction")
	assert.Contains(t, got, "├── Budget: $160,000,000")
	assert.Contains(t, got, "├── Revenue: N/A")
	assert.Contains(t, got, "├── Languages: English, Japanese")
	assert.Contains(t, got, "├── Countries: United States of America")
	assert.Contains(t, got, "├── Homepage: https://example.com/inception")
	assert.Contains(t, got, "╰── Overview:\n    A thief who steals")
}

func TestFormatSnapshot(t *testing.T) {
	f := plainFormatter()

	assert.Empty(t, f.FormatSnapshot(session.Snapshot{State: session.StateIdle}))
	assert.Equal(t, "Searching for movies...\n", f.FormatSnapshot(session.Snapshot{State: session.StateLoading}))
	assert.Equal(t, "Error: boom\n", f.FormatSnapshot(session.Snapshot{State: session.StateError, Error: "boom"}))

	single := inception()
	got := f.FormatSnapshot(session.Snapshot{State: session.StateSuccess, Single: &single})
	assert.True(t, strings.HasPrefix(got, "Random pick"))

	snap := session.Snapshot{
		State:          session.StateSuccess,
		Page:           5,
		Collection:     &movies.RecommendationsResponse{Results: []movies.Movie{inception()}, TotalPages: 10, TotalResults: 200},
		ShowPagination: true,
		Pages:          pagination.Window(5, 10, 7),
	}
	got = f.FormatSnapshot(snap)
	assert.Contains(t, got, "page 5 of 10")
	assert.True(t, strings.HasSuffix(got, "< Prev 1 ... 4 [5] 6 ... 10 Next >\n"))
}

func TestFormatCatalog(t *testing.T) {
	got := plainFormatter().FormatCatalog()

	for _, want := range []string{
		"├── 28  Action",
		"├── 1990  1990s",
		"spooky  Spooky (Horror, Thriller, Mystery)",
		"├── ja  Japanese",
		"╰── vote_count",
	} {
		assert.Contains(t, got, want)
	}
}

func TestColorOutput(t *testing.T) {
	opts := DefaultOptions()
	opts.Color = true
	f := NewConsoleFormatter(opts)

	got := f.FormatMovieCard(inception(), false)
	require.Contains(t, got, ansiGold+"★ 8.4"+ansiReset)
	assert.Contains(t, got, ansiBold+"Inception"+ansiReset)

	assert.NotContains(t, plainFormatter().FormatMovieCard(inception(), false), "\033[")
}
