package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// pageScript maps a page number to its canned response.
type pageScript map[int]struct {
	page *Page
	err  error
}

type scriptedFetcher struct {
	script pageScript
	calls  []int
}

func (f *scriptedFetcher) FetchPage(ctx context.Context, query Query, page int) (*Page, error) {
	f.calls = append(f.calls, page)
	step, ok := f.script[page]
	if !ok {
		return nil, fmt.Errorf("unscripted page %d", page)
	}
	return step.page, step.err
}

func records(names ...string) []Restaurant {
	out := make([]Restaurant, 0, len(names))
	for _, name := range names {
		out = append(out, Restaurant{Name: name, URL: "https://tabelog.com/tokyo/" + name + "/"})
	}
	return out
}

func TestExecuteAggregatesPagesInOrder(t *testing.T) {
	fetcher := &scriptedFetcher{script: pageScript{
		1: {page: &Page{Restaurants: records("a", "b"), HasNext: true}},
		2: {page: &Page{Restaurants: records("c"), HasNext: false}},
	}}
	svc := NewService(fetcher)

	outcome := svc.Execute(context.Background(), Query{MaxPages: 3})

	if outcome.Status != StatusOK {
		t.Fatalf("status = %q, want ok", outcome.Status)
	}
	if len(outcome.Restaurants) != 3 {
		t.Fatalf("got %d records, want 3", len(outcome.Restaurants))
	}
	for i, want := range []string{"a", "b", "c"} {
		if outcome.Restaurants[i].Name != want {
			t.Errorf("record %d = %q, want %q", i, outcome.Restaurants[i].Name, want)
		}
	}
	if outcome.Meta.PagesFetched != 2 || outcome.Meta.EarlyStop {
		t.Errorf("meta = %+v, want 2 pages, no early stop", outcome.Meta)
	}
	if len(fetcher.calls) != 2 {
		t.Errorf("fetcher called %d times, want 2 (no page 3 after has-next false)", len(fetcher.calls))
	}
}

func TestExecuteStopsAtMaxPages(t *testing.T) {
	fetcher := &scriptedFetcher{script: pageScript{
		1: {page: &Page{Restaurants: records("a"), HasNext: true}},
		2: {page: &Page{Restaurants: records("b"), HasNext: true}},
	}}
	svc := NewService(fetcher)

	outcome := svc.Execute(context.Background(), Query{MaxPages: 2})

	if len(fetcher.calls) != 2 {
		t.Fatalf("fetcher called %d times, want 2", len(fetcher.calls))
	}
	if outcome.Status != StatusOK || len(outcome.Restaurants) != 2 {
		t.Errorf("outcome = %q with %d records, want ok with 2", outcome.Status, len(outcome.Restaurants))
	}
}

func TestExecuteFirstPageFailureIsFailed(t *testing.T) {
	fetcher := &scriptedFetcher{script: pageScript{
		1: {err: errors.New("connection refused")},
	}}
	svc := NewService(fetcher)

	outcome := svc.Execute(context.Background(), Query{MaxPages: 3})

	if outcome.Status != StatusFailed {
		t.Fatalf("status = %q, want failed", outcome.Status)
	}
	if len(outcome.Restaurants) != 0 {
		t.Errorf("got %d records, want 0", len(outcome.Restaurants))
	}
	if outcome.Meta.PagesFetched != 0 || outcome.Meta.Cause == "" {
		t.Errorf("meta = %+v, want 0 pages with a cause", outcome.Meta)
	}
}

func TestExecuteLaterPageFailureKeepsResults(t *testing.T) {
	fetcher := &scriptedFetcher{script: pageScript{
		1: {page: &Page{Restaurants: records("a", "b"), HasNext: true}},
		2: {err: errors.New("status 503")},
	}}
	svc := NewService(fetcher)

	outcome := svc.Execute(context.Background(), Query{MaxPages: 3})

	if outcome.Status != StatusOK {
		t.Fatalf("status = %q, want ok despite page 2 failure", outcome.Status)
	}
	if len(outcome.Restaurants) != 2 {
		t.Errorf("got %d records, want the 2 from page 1", len(outcome.Restaurants))
	}
	if !outcome.Meta.EarlyStop || outcome.Meta.PagesFetched != 1 {
		t.Errorf("meta = %+v, want early stop after 1 page", outcome.Meta)
	}
	if outcome.Meta.Cause == "" {
		t.Error("expected the page 2 cause in meta")
	}
}

func TestExecuteLaterPageFailureWithNoRecordsIsEmpty(t *testing.T) {
	fetcher := &scriptedFetcher{script: pageScript{
		1: {page: &Page{Restaurants: []Restaurant{}, HasNext: true}},
		2: {err: errors.New("status 503")},
	}}
	svc := NewService(fetcher)

	outcome := svc.Execute(context.Background(), Query{MaxPages: 2})

	if outcome.Status != StatusEmpty {
		t.Fatalf("status = %q, want empty", outcome.Status)
	}
	if !outcome.Meta.EarlyStop {
		t.Error("expected early stop in meta")
	}
}

func TestExecuteEmptySuccessfulRunIsEmpty(t *testing.T) {
	fetcher := &scriptedFetcher{script: pageScript{
		1: {page: &Page{Restaurants: []Restaurant{}, HasNext: false}},
	}}
	svc := NewService(fetcher)

	outcome := svc.Execute(context.Background(), Query{MaxPages: 1})

	if outcome.Status != StatusEmpty {
		t.Fatalf("status = %q, want empty", outcome.Status)
	}
	if outcome.Restaurants == nil {
		t.Error("restaurants should be an empty slice, not nil")
	}
}

func TestExecuteZeroMaxPagesFetchesOnePage(t *testing.T) {
	fetcher := &scriptedFetcher{script: pageScript{
		1: {page: &Page{Restaurants: records("a"), HasNext: true}},
	}}
	svc := NewService(fetcher)

	outcome := svc.Execute(context.Background(), Query{})

	if len(fetcher.calls) != 1 {
		t.Fatalf("fetcher called %d times, want 1", len(fetcher.calls))
	}
	if outcome.Status != StatusOK {
		t.Errorf("status = %q, want ok", outcome.Status)
	}
}

// cancelAfterFirstPage cancels the context once page 1 has been served,
// so the cancellation lands between pagination steps.
type cancelAfterFirstPage struct {
	cancel context.CancelFunc
}

func (f *cancelAfterFirstPage) FetchPage(ctx context.Context, query Query, page int) (*Page, error) {
	if page == 1 {
		f.cancel()
		return &Page{Restaurants: records("a"), HasNext: true}, nil
	}
	return nil, errors.New("page 2 should not be fetched after cancellation")
}

func TestExecuteCancellationBetweenPagesKeepsResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := NewService(&cancelAfterFirstPage{cancel: cancel})

	outcome := svc.Execute(ctx, Query{MaxPages: 3})

	if outcome.Status != StatusOK {
		t.Fatalf("status = %q, want ok with partial results", outcome.Status)
	}
	if len(outcome.Restaurants) != 1 {
		t.Errorf("got %d records, want the 1 from page 1", len(outcome.Restaurants))
	}
	if !outcome.Meta.EarlyStop || outcome.Meta.Cause == "" {
		t.Errorf("meta = %+v, want early stop with cancellation cause", outcome.Meta)
	}
}

func TestExecuteCancelledBeforeFirstPageIsFailed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(&scriptedFetcher{script: pageScript{}})

	outcome := svc.Execute(ctx, Query{MaxPages: 1})

	if outcome.Status != StatusFailed {
		t.Fatalf("status = %q, want failed", outcome.Status)
	}
}

func TestExecuteAsyncMatchesBlockingForm(t *testing.T) {
	script := pageScript{
		1: {page: &Page{Restaurants: records("a", "b"), HasNext: true}},
		2: {page: &Page{Restaurants: records("c"), HasNext: false}},
	}

	blocking := NewService(&scriptedFetcher{script: script}).
		Execute(context.Background(), Query{MaxPages: 3})

	svc := NewService(&scriptedFetcher{script: script})
	var async Outcome
	select {
	case async = <-svc.ExecuteAsync(context.Background(), Query{MaxPages: 3}):
	case <-time.After(5 * time.Second):
		t.Fatal("async outcome never arrived")
	}

	if async.Status != blocking.Status || len(async.Restaurants) != len(blocking.Restaurants) {
		t.Errorf("async outcome (%q, %d) differs from blocking (%q, %d)",
			async.Status, len(async.Restaurants), blocking.Status, len(blocking.Restaurants))
	}
	if async.Meta != blocking.Meta {
		t.Errorf("async meta %+v differs from blocking %+v", async.Meta, blocking.Meta)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    int
		limit int
		want  int
	}{
		{"under limit untouched", 3, 20, 3},
		{"at limit untouched", 20, 20, 20},
		{"over limit cut", 25, 20, 20},
		{"non-positive limit untouched", 5, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]Restaurant, tt.in)
			for i := range in {
				in[i] = Restaurant{Name: fmt.Sprintf("r%d", i)}
			}
			got := Truncate(in, tt.limit)
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			if tt.want > 0 && got[0].Name != "r0" {
				t.Errorf("truncation re-ordered results, first = %q", got[0].Name)
			}
		})
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		token string
		ok    bool
	}{
		{"ranking", true},
		{"review-count", true},
		{"new-open", true},
		{"standard", true},
		{"", false},
		{"rating", false},
		{"Ranking", false},
	}
	for _, tt := range tests {
		t.Run("token_"+tt.token, func(t *testing.T) {
			if _, ok := ParseSortMode(tt.token); ok != tt.ok {
				t.Errorf("ParseSortMode(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
		})
	}
}
