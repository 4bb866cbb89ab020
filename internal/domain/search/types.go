package search

import "context"

// SortMode selects the upstream ordering of listing results. Sorting is
// a request parameter sent upstream; results are never re-sorted locally.
type SortMode string

const (
	SortRanking     SortMode = "ranking"
	SortReviewCount SortMode = "review-count"
	SortNewOpen     SortMode = "new-open"
	SortStandard    SortMode = "standard"
)

// ParseSortMode validates a sort token. Unrecognized tokens are rejected
// by the caller rather than silently replaced with a default.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(s) {
	case SortRanking, SortReviewCount, SortNewOpen, SortStandard:
		return SortMode(s), true
	}
	return "", false
}

// Query is a resolved, ready-to-execute search request. AreaSlug and
// GenreCode are canonical identifiers; resolution happens at the caller
// boundary. An all-empty query is valid and degrades to the upstream
// service's unscoped listing.
type Query struct {
	AreaSlug  string
	GenreCode string
	Keyword   string
	Sort      SortMode
	MaxPages  int
}

// Restaurant is one listing entry. URL is the entry's natural identifier
// and is always non-empty; the parser drops entries without one.
type Restaurant struct {
	Name        string   `json:"name"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
	SaveCount   *int     `json:"save_count,omitempty"`
	Area        string   `json:"area"`
	Genres      []string `json:"genres"`
	Station     string   `json:"station,omitempty"`
	Distance    string   `json:"distance,omitempty"`
	LunchPrice  string   `json:"lunch_price,omitempty"`
	DinnerPrice string   `json:"dinner_price,omitempty"`
	URL         string   `json:"url"`
}

// Status classifies a completed search. Zero results from a successful
// run is StatusEmpty, a valid terminal state rather than an error.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Meta carries diagnostics about how the pagination actually went.
type Meta struct {
	PagesFetched int    `json:"pages_fetched"`
	EarlyStop    bool   `json:"early_stop"`
	Cause        string `json:"cause,omitempty"`
}

// Outcome is the tagged result of one Execute call. Failure is part of
// the value, not an error return, so expected upstream faults stay
// representable without exceptions.
type Outcome struct {
	Status      Status       `json:"status"`
	Restaurants []Restaurant `json:"restaurants"`
	Meta        Meta         `json:"meta"`
}

// Page is one fetched-and-parsed listing page.
type Page struct {
	Restaurants []Restaurant
	HasNext     bool
}

// PageFetcher retrieves and parses a single listing page. Implementations
// own transport policy (timeouts, retries, circuit breaking); the
// orchestrator never retries a failed fetch itself.
type PageFetcher interface {
	FetchPage(ctx context.Context, query Query, page int) (*Page, error)
}
