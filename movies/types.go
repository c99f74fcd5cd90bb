package movies

import (
	"fmt"
	"strings"
	"time"
)

// RecommendationType selects between a single random pick and a collection
type RecommendationType string

const (
	// TypeSingle asks for one random movie
	TypeSingle RecommendationType = "single"
	// TypeCollection asks for a paginated list
	TypeCollection RecommendationType = "collection"
)

// DefaultRecommendationType is the mode a fresh form starts in
const DefaultRecommendationType = TypeCollection

// ParseRecommendationType parses a mode name case-insensitively
func ParseRecommendationType(s string) (RecommendationType, error) {
	switch RecommendationType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeSingle:
		return TypeSingle, nil
	case TypeCollection:
		return TypeCollection, nil
	default:
		return "", fmt.Errorf("invalid recommendation type %q (must be 'single' or 'collection')", s)
	}
}

// IsSingle checks if the type asks for one random movie
func (rt RecommendationType) IsSingle() bool {
	return rt == TypeSingle
}

// releaseLayout is the date format used by the movie database
const releaseLayout = "2006-01-02"

// Movie is the summary record returned in recommendation lists
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
}

// Released parses the release date, reporting false when it is missing or malformed
func (m *Movie) Released() (time.Time, bool) {
	if m.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(releaseLayout, m.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Year returns the release year, or 0 when unknown
func (m *Movie) Year() int {
	if t, ok := m.Released(); ok {
		return t.Year()
	}
	return 0
}

// Genre is a named genre attached to a detailed record
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCountry is a country that produced the movie
type ProductionCountry struct {
	ISO3166_1 string `json:"iso_3166_1"`
	Name      string `json:"name"`
}

// SpokenLanguage is a language spoken in the movie
type SpokenLanguage struct {
	ISO639_1    string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name,omitempty"`
}

// MovieDetails is the full record of one movie
type MovieDetails struct {
	Movie

	Runtime             int                 `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Tagline             string              `json:"tagline"`
	Homepage            string              `json:"homepage"`
	Genres              []Genre             `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
}

// GenreNames returns the names of the attached genres
func (d *MovieDetails) GenreNames() []string {
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	return names
}

// RecommendationsResponse is one page of recommendations
type RecommendationsResponse struct {
	Page         int     `json:"page,omitempty"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// IsEmpty checks if the page carries no movies
func (rr *RecommendationsResponse) IsEmpty() bool {
	return len(rr.Results) == 0
}

// HasMorePages checks if there are pages after the given one
func (rr *RecommendationsResponse) HasMorePages(page int) bool {
	return page < rr.TotalPages
}
