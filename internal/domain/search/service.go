// Package search runs resolved restaurant queries against a paginated
// listing source and classifies the aggregated outcome.
package search

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Service orchestrates sequential pagination over a PageFetcher.
type Service struct {
	fetcher PageFetcher
}

func NewService(fetcher PageFetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Execute fetches up to query.MaxPages listing pages in order and
// aggregates their records. Page N+1 is requested only after page N
// reported more pages. A failure on the first page yields StatusFailed;
// a failure on any later page stops pagination early and keeps what was
// already collected. Records keep upstream order and are not deduplicated.
func (s *Service) Execute(ctx context.Context, query Query) Outcome {
	maxPages := query.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}

	collected := []Restaurant{}
	fetched := 0

	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			if fetched == 0 {
				return Outcome{
					Status:      StatusFailed,
					Restaurants: []Restaurant{},
					Meta:        Meta{PagesFetched: 0, Cause: err.Error()},
				}
			}
			return classify(collected, Meta{PagesFetched: fetched, EarlyStop: true, Cause: err.Error()})
		}

		result, err := s.fetcher.FetchPage(ctx, query, page)
		if err != nil {
			if page == 1 {
				return Outcome{
					Status:      StatusFailed,
					Restaurants: []Restaurant{},
					Meta:        Meta{PagesFetched: 0, Cause: err.Error()},
				}
			}
			log.Warn().Err(err).Int("page", page).Int("collected", len(collected)).
				Msg("page fetch failed after partial aggregation, stopping early")
			return classify(collected, Meta{PagesFetched: fetched, EarlyStop: true, Cause: err.Error()})
		}

		fetched++
		collected = append(collected, result.Restaurants...)
		if !result.HasNext {
			break
		}
	}

	return classify(collected, Meta{PagesFetched: fetched})
}

// ExecuteAsync runs Execute on its own goroutine and delivers the single
// outcome on the returned channel. Observable behavior is identical to
// the blocking form.
func (s *Service) ExecuteAsync(ctx context.Context, query Query) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		out <- s.Execute(ctx, query)
	}()
	return out
}

func classify(collected []Restaurant, meta Meta) Outcome {
	status := StatusOK
	if len(collected) == 0 {
		status = StatusEmpty
	}
	return Outcome{Status: status, Restaurants: collected, Meta: meta}
}

// Truncate keeps the first limit records in aggregated order. It never
// re-ranks; a non-positive limit returns the input unchanged.
func Truncate(restaurants []Restaurant, limit int) []Restaurant {
	if limit <= 0 || len(restaurants) <= limit {
		return restaurants
	}
	return restaurants[:limit]
}
