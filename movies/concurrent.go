package movies

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DetailsResult is the outcome of one lookup in a batch
type DetailsResult struct {
	ID      int64
	Details *MovieDetails
	Err     error
}

// GetMovieDetailsBatch fetches several movies concurrently. Results keep
// the order of ids; a failed lookup is reported in its result and does not
// stop the others.
func (c *Client) GetMovieDetailsBatch(ctx context.Context, ids []int64) []DetailsResult {
	results := make([]DetailsResult, len(ids))
	if len(ids) == 0 {
		return results
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, id := range ids {
		results[i].ID = id
		g.Go(func() error {
			details, err := c.GetMovieDetails(ctx, id)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Int64("id", id).
					Msg("Failed to get movie details")
				results[i].Err = err
				return nil
			}
			results[i].Details = details
			return nil
		})
	}

	_ = g.Wait()
	return results
}
