package session

import (
	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/pagination"
)

// Snapshot is a read-only copy of the session state. Single and Collection
// point at values the session never mutates after a fetch.
type Snapshot struct {
	State      State
	Mode       movies.RecommendationType
	Filters    movies.Filters
	Page       int
	Single     *movies.Movie
	Collection *movies.RecommendationsResponse
	Error      string

	// ShowPagination is set when a collection with more than one page is
	// shown and nothing is loading
	ShowPagination bool
	Pages          []pagination.Item
}

// Loading reports whether a request is in flight
func (s Snapshot) Loading() bool {
	return s.State == StateLoading
}

// HasResults reports whether a single movie or a collection is present
func (s Snapshot) HasResults() bool {
	return s.Single != nil || s.Collection != nil
}

// TotalPages returns the page count of the collection, or 0
func (s Snapshot) TotalPages() int {
	if s.Collection == nil {
		return 0
	}
	return s.Collection.TotalPages
}
