// Package movies provides a client for the movie recommendation API.
//
// The API sits in front of a third-party movie database and exposes three
// read-only endpoints: a paginated collection of recommendations, a single
// random recommendation, and the full record of one movie. This package
// turns Filters into query parameters, decodes the JSON answers, and builds
// image URLs for posters and backdrops.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := movies.NewClient(
//		"http://localhost:8080",
//		logger,
//		movies.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.GetRecommendations(ctx, movies.Filters{
//		GenreIDs: []int{28, 12},
//		Decade:   1990,
//		Page:     2,
//	})
//
// # Query parameters
//
// Absent filters are never sent. Genre ids repeat the parameter name, so
// GenreIDs{28, 12} becomes genreIds=28&genreIds=12. The random endpoint
// never receives a page.
//
// # Error Handling
//
// Non-2xx answers are returned as *APIError, which carries the status code
// and a trimmed body:
//
//	var apiErr *movies.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// unknown movie id
//	}
//
// A random request that matches nothing yields ErrNoResults.
package movies
