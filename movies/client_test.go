package movies

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collectionJSON = `{
	"page": 2,
	"results": [
		{
			"id": 603,
			"title": "The Matrix",
			"overview": "A hacker learns the truth.",
			"poster_path": "/matrix.jpg",
			"backdrop_path": "/matrix-bg.jpg",
			"release_date": "1999-03-30",
			"vote_average": 8.2,
			"vote_count": 25000,
			"original_language": "en",
			"genre_ids": [28, 878]
		}
	],
	"total_pages": 10,
	"total_results": 200
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:8080",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "http://localhost:8080/",
		},
		{
			name:    "missing URL",
			baseURL: "",
			wantErr: true,
			errMsg:  "API URL is required",
		},
		{
			name:    "relative URL",
			baseURL: "localhost:8080",
			wantErr: true,
			errMsg:  "must be absolute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8080", client.BaseURL())
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost:8080", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:8080", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with concurrency and user agent", func(t *testing.T) {
		client, err := NewClient("http://localhost:8080", logger, WithConcurrency(9), WithUserAgent("tester"))
		require.NoError(t, err)
		assert.Equal(t, 9, client.concurrency)
		assert.Equal(t, "tester", client.userAgent)
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		client, err := NewClient("http://localhost:8080", logger, WithConcurrency(0), WithTimeout(0))
		require.NoError(t, err)
		assert.Equal(t, DefaultConcurrency, client.concurrency)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})
}

func TestGetRecommendations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies/recommendations", r.URL.Path)
		assert.Equal(t, []string{"28", "12"}, r.URL.Query()["genreIds"])
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "happy", r.URL.Query().Get("mood"))
		assert.False(t, r.URL.Query().Has("decade"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, collectionJSON)
	})

	resp, err := client.GetRecommendations(context.Background(), Filters{
		GenreIDs: []int{28, 12, 28},
		Mood:     "Happy",
		Page:     2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 10, resp.TotalPages)
	assert.Equal(t, 200, resp.TotalResults)
	require.Len(t, resp.Results, 1)

	movie := resp.Results[0]
	assert.Equal(t, int64(603), movie.ID)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, []int{28, 878}, movie.GenreIDs)
	assert.InDelta(t, 8.2, movie.VoteAverage, 0.001)
	assert.Equal(t, 1999, movie.Year())
	assert.True(t, resp.HasMorePages(2))
}

func TestGetRecommendationsPageDefaults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("page"))
		fmt.Fprint(w, `{"results":[],"total_pages":0,"total_results":0}`)
	})

	resp, err := client.GetRecommendations(context.Background(), Filters{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.True(t, resp.IsEmpty())
}

func TestGetRecommendationsInvalidFilters(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.GetRecommendations(context.Background(), Filters{Decade: 1995})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filters")
	assert.Zero(t, calls.Load(), "no request should be sent")
}

func TestGetRecommendationsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"upstream down"}`, http.StatusBadGateway)
	})

	_, err := client.GetRecommendations(context.Background(), Filters{})
	require.Error(t, err)
	assert.Equal(t, "error fetching recommendations: recommendation API error: status 502: Bad Gateway", err.Error())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.True(t, apiErr.IsServerError())
	assert.Contains(t, apiErr.Body, "upstream down")
	assert.Equal(t, "/recommendations", apiErr.Endpoint)
}

func TestGetRecommendationsMalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [`)
	})

	_, err := client.GetRecommendations(context.Background(), Filters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestGetRandomRecommendation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies/recommendations/random", r.URL.Path)
		assert.False(t, r.URL.Query().Has("page"), "random endpoint never receives a page")
		assert.Equal(t, "1980", r.URL.Query().Get("decade"))
		fmt.Fprint(w, `{"id": 105, "title": "Back to the Future", "release_date": "1985-07-03", "vote_average": 8.3}`)
	})

	movie, err := client.GetRandomRecommendation(context.Background(), Filters{Decade: 1980, Page: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(105), movie.ID)
	assert.Equal(t, 1985, movie.Year())
}

func TestGetRandomRecommendationNoResults(t *testing.T) {
	for _, body := range []string{"null", "", "  "} {
		t.Run(fmt.Sprintf("body %q", body), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			})

			_, err := client.GetRandomRecommendation(context.Background(), Filters{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNoResults)
		})
	}
}

func TestGetMovieDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/movies/603":
			fmt.Fprint(w, `{
				"id": 603,
				"title": "The Matrix",
				"runtime": 136,
				"budget": 63000000,
				"revenue": 463517383,
				"tagline": "Welcome to the Real World.",
				"homepage": "http://www.warnerbros.com/matrix",
				"release_date": "1999-03-30",
				"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
				"production_countries": [{"iso_3166_1": "US", "name": "United States of America"}],
				"spoken_languages": [{"iso_639_1": "en", "name": "English", "english_name": "English"}]
			}`)
		default:
			http.NotFound(w, r)
		}
	})

	details, err := client.GetMovieDetails(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", details.Title)
	assert.Equal(t, 136, details.Runtime)
	assert.Equal(t, int64(463517383), details.Revenue)
	assert.Equal(t, []string{"Action", "Science Fiction"}, details.GenreNames())
	require.Len(t, details.ProductionCountries, 1)
	assert.Equal(t, "US", details.ProductionCountries[0].ISO3166_1)
	require.Len(t, details.SpokenLanguages, 1)
	assert.Equal(t, "en", details.SpokenLanguages[0].ISO639_1)

	_, err = client.GetMovieDetails(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = client.GetMovieDetails(context.Background(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMovieID)
}

func TestGetMovieDetailsBatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/movies/")
		if id == "13" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"id": %s, "title": "Movie %s"}`, id, id)
	})

	results := client.GetMovieDetailsBatch(context.Background(), []int64{11, 12, 13, 14})
	require.Len(t, results, 4)

	for i, want := range []int64{11, 12, 13, 14} {
		assert.Equal(t, want, results[i].ID)
	}

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "Movie 11", results[0].Details.Title)
	assert.Equal(t, "Movie 14", results[3].Details.Title)

	require.Error(t, results[2].Err)
	assert.Nil(t, results[2].Details)

	assert.Empty(t, client.GetMovieDetailsBatch(context.Background(), nil))
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{StatusCode: 404, Status: "Not Found"}
		assert.Equal(t, "recommendation API error: status 404: Not Found", err.Error())
	})

	t.Run("classification", func(t *testing.T) {
		tests := []struct {
			code        int
			notFound    bool
			badRequest  bool
			serverError bool
		}{
			{code: 400, badRequest: true},
			{code: 404, notFound: true},
			{code: 500, serverError: true},
			{code: 503, serverError: true},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.notFound, err.IsNotFound(), "code %d", tt.code)
			assert.Equal(t, tt.badRequest, err.IsBadRequest(), "code %d", tt.code)
			assert.Equal(t, tt.serverError, err.IsServerError(), "code %d", tt.code)
		}
	})
}

func TestRequestIDFromContext(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-Request-ID"))
		fmt.Fprint(w, collectionJSON)
	})

	ctx := ContextWithRequestID(context.Background(), "web-req-42")
	_, err := client.GetRecommendations(ctx, Filters{})
	require.NoError(t, err)

	_, err = client.GetRecommendations(ContextWithRequestID(context.Background(), ""), Filters{})
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "web-req-42", seen[0])
	assert.NotEmpty(t, seen[1])
	assert.NotEqual(t, "web-req-42", seen[1])
}
