// Package catalog holds the fixed option lists offered when building a
// recommendation query: genres, decades, moods, languages and sort keys.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Common errors
var (
	// ErrUnknownGenre indicates a genre that is neither a known id nor name
	ErrUnknownGenre = errors.New("unknown genre")
	// ErrUnknownMood indicates a mood tag outside the supported set
	ErrUnknownMood = errors.New("unknown mood")
	// ErrUnknownSortKey indicates a sort key the API does not accept
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// Genre is a movie database genre.
type Genre struct {
	ID   int
	Name string
}

// Decade is a ten-year release window starting at Year.
type Decade struct {
	Year  int
	Label string
}

// Mood is a named feeling that the API expands into a set of genres.
type Mood struct {
	Tag      string
	Label    string
	GenreIDs []int
}

// Language is an ISO 639-1 original language.
type Language struct {
	Code string
	Name string
}

var genres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

var decades = []Decade{
	{Year: 2020, Label: "2020s"},
	{Year: 2010, Label: "2010s"},
	{Year: 2000, Label: "2000s"},
	{Year: 1990, Label: "1990s"},
	{Year: 1980, Label: "1980s"},
	{Year: 1970, Label: "1970s"},
	{Year: 1960, Label: "1960s"},
}

var moods = []Mood{
	{Tag: "happy", Label: "Cheerful", GenreIDs: []int{35, 10751, 16, 10402}},
	{Tag: "adventurous", Label: "Adventurous", GenreIDs: []int{28, 12, 14, 878}},
	{Tag: "history", Label: "Historian", GenreIDs: []int{36, 10752, 99, 18}},
	{Tag: "relaxing", Label: "Relaxing", GenreIDs: []int{37, 10770}},
	{Tag: "romantic", Label: "Romantic", GenreIDs: []int{10749, 18, 10402}},
	{Tag: "spooky", Label: "Spooky", GenreIDs: []int{27, 53, 9648}},
}

var languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
}

// sortKeys are the discover sort fields; each may carry an .asc or .desc suffix.
var sortKeys = []string{
	"popularity",
	"original_title",
	"revenue",
	"title",
	"primary_release_date",
	"vote_average",
	"vote_count",
}

// Genres returns the selectable genres in display order.
func Genres() []Genre { return slices.Clone(genres) }

// Decades returns the selectable decades, newest first.
func Decades() []Decade { return slices.Clone(decades) }

// Moods returns the supported mood tags.
func Moods() []Mood { return slices.Clone(moods) }

// Languages returns the selectable original languages.
func Languages() []Language { return slices.Clone(languages) }

// SortKeys returns the accepted sort fields without direction suffix.
func SortKeys() []string { return slices.Clone(sortKeys) }

// GenreName returns the name for a genre id.
func GenreName(id int) (string, bool) {
	for _, g := range genres {
		if g.ID == id {
			return g.Name, true
		}
	}
	return "", false
}

// GenreNames maps ids to names, falling back to the numeric id for unknown ones.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := GenreName(id); ok {
			names = append(names, name)
			continue
		}
		names = append(names, strconv.Itoa(id))
	}
	return names
}

// LookupGenre resolves a genre given either its numeric id or its name.
func LookupGenre(token string) (int, error) {
	token = strings.TrimSpace(token)
	if id, err := strconv.Atoi(token); err == nil {
		if _, ok := GenreName(id); ok {
			return id, nil
		}
		return 0, fmt.Errorf("%w: %d", ErrUnknownGenre, id)
	}
	for _, g := range genres {
		if strings.EqualFold(g.Name, token) {
			return g.ID, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGenre, token)
}

// LookupMood resolves a mood tag case-insensitively.
func LookupMood(tag string) (Mood, error) {
	for _, m := range moods {
		if strings.EqualFold(m.Tag, strings.TrimSpace(tag)) {
			return m, nil
		}
	}
	return Mood{}, fmt.Errorf("%w: %q (valid moods are %s)", ErrUnknownMood, tag, strings.Join(MoodTags(), ", "))
}

// MoodTags returns the supported mood tags.
func MoodTags() []string {
	tags := make([]string, len(moods))
	for i, m := range moods {
		tags[i] = m.Tag
	}
	return tags
}

// DecadeLabel returns the label for a decade start year, such as "1990s".
func DecadeLabel(year int) string {
	for _, d := range decades {
		if d.Year == year {
			return d.Label
		}
	}
	return fmt.Sprintf("%ds", year)
}

// LanguageName returns the display name for a language code, or the code itself.
func LanguageName(code string) string {
	for _, l := range languages {
		if strings.EqualFold(l.Code, code) {
			return l.Name
		}
	}
	return strings.ToUpper(code)
}

// IsSortKey reports whether key is an accepted sort field, optionally
// followed by ".asc" or ".desc".
func IsSortKey(key string) bool {
	field, dir, found := strings.Cut(key, ".")
	if found && dir != "asc" && dir != "desc" {
		return false
	}
	return slices.Contains(sortKeys, field)
}

// ValidateSortKey returns ErrUnknownSortKey for keys IsSortKey rejects.
func ValidateSortKey(key string) error {
	if !IsSortKey(key) {
		return fmt.Errorf("%w: %q (valid keys are %s)", ErrUnknownSortKey, key, strings.Join(sortKeys, ", "))
	}
	return nil
}
