package movies

import (
	"context"
)

// Recommender fetches recommendations for a set of filters
type Recommender interface {
	// GetRecommendations retrieves one page of recommendations
	GetRecommendations(ctx context.Context, filters Filters) (*RecommendationsResponse, error)

	// GetRandomRecommendation retrieves a single random movie
	GetRandomRecommendation(ctx context.Context, filters Filters) (*Movie, error)
}

// DetailsFetcher fetches full movie records
type DetailsFetcher interface {
	// GetMovieDetails retrieves the details of one movie
	GetMovieDetails(ctx context.Context, id int64) (*MovieDetails, error)
}

// API is the full recommendation API surface
type API interface {
	Recommender
	DetailsFetcher
}

var _ API = (*Client)(nil)
