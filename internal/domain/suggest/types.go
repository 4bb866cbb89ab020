package suggest

import "context"

// Kind selects which autocomplete namespace a query targets.
type Kind string

const (
	KindArea    Kind = "area"
	KindKeyword Kind = "keyword"
)

// Suggestion is one autocomplete result. Datatype is an open tag set
// (address-level region, station, genre, restaurant name, ...); Lat/Lng
// are present for geographic datatypes and absent otherwise.
type Suggestion struct {
	Name         string   `json:"name"`
	Datatype     string   `json:"datatype"`
	IDInDatatype int64    `json:"id_in_datatype"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
}

// Fetcher talks to the remote suggestion endpoint. Implementations
// return transport and decode failures as errors; the service above
// converts every failure into an empty sequence.
type Fetcher interface {
	FetchSuggestions(ctx context.Context, kind Kind, query string) ([]Suggestion, error)
}
