// Package suggest provides fail-soft autocomplete lookups. Suggestions
// are a UX aid, never a critical path, so every failure degrades to an
// empty sequence instead of an error.
package suggest

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Service wraps a Fetcher with the fail-soft contract.
type Service struct {
	fetcher Fetcher
}

func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Suggest trims the query and looks up completions. An empty post-trim
// query returns an empty sequence without touching the transport. Any
// fetch failure also returns an empty sequence; the error never reaches
// the caller.
func (s *Service) Suggest(ctx context.Context, kind Kind, query string) []Suggestion {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []Suggestion{}
	}

	suggestions, err := s.fetcher.FetchSuggestions(ctx, kind, trimmed)
	if err != nil {
		log.Debug().Err(err).Str("kind", string(kind)).Str("query", trimmed).
			Msg("suggestion fetch failed, returning empty set")
		return []Suggestion{}
	}
	if suggestions == nil {
		return []Suggestion{}
	}
	return suggestions
}

// SuggestAsync runs Suggest on its own goroutine and delivers the
// sequence on the returned channel. Observable behavior is identical to
// the blocking form.
func (s *Service) SuggestAsync(ctx context.Context, kind Kind, query string) <-chan []Suggestion {
	out := make(chan []Suggestion, 1)
	go func() {
		defer close(out)
		out <- s.Suggest(ctx, kind, query)
	}()
	return out
}
