package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinerecomenda/catalog"
	"github.com/s0up4200/cinerecomenda/movies"
)

// filterFlags holds the filter options shared by recommend, random and browse
type filterFlags struct {
	genres           []string
	decade           int
	mood             string
	country          string
	language         string
	runtimeMin       int
	runtimeMax       int
	sort             string
	responseLanguage string
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&f.genres, "genre", "g", nil, "genre id or name (repeatable)")
	flags.IntVar(&f.decade, "decade", 0, "release decade, e.g. 1990")
	flags.StringVar(&f.mood, "mood", "", "mood tag (see 'catalog')")
	flags.StringVar(&f.country, "country", "", "origin country, ISO 3166-1 alpha-2 code")
	flags.StringVar(&f.language, "language", "", "original language, ISO 639-1 code")
	flags.IntVar(&f.runtimeMin, "runtime-min", 0, "shortest runtime in minutes")
	flags.IntVar(&f.runtimeMax, "runtime-max", 0, "longest runtime in minutes")
	flags.StringVar(&f.sort, "sort", "", "sort key, optionally suffixed with .asc or .desc")
	flags.StringVar(&f.responseLanguage, "response-language", "", "language of titles and overviews (default from config)")
}

// filters resolves genre names and checks the result before any request is made
func (f *filterFlags) filters(defaultResponseLanguage string) (movies.Filters, error) {
	var ids []int
	for _, token := range f.genres {
		id, err := catalog.LookupGenre(token)
		if err != nil {
			return movies.Filters{}, err
		}
		ids = append(ids, id)
	}

	filters := movies.Filters{
		GenreIDs:         ids,
		Decade:           f.decade,
		SortBy:           f.sort,
		Mood:             f.mood,
		OriginCountry:    f.country,
		OriginalLanguage: f.language,
		RuntimeMin:       f.runtimeMin,
		RuntimeMax:       f.runtimeMax,
		ResponseLanguage: f.responseLanguage,
	}
	if filters.ResponseLanguage == "" {
		filters.ResponseLanguage = defaultResponseLanguage
	}

	filters = filters.Normalize()
	if err := filters.Validate(); err != nil {
		return movies.Filters{}, err
	}
	return filters, nil
}
