package suggest

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockFetcher struct {
	result []Suggestion
	err    error
	calls  int
	query  string
	kind   Kind
}

func (m *mockFetcher) FetchSuggestions(ctx context.Context, kind Kind, query string) ([]Suggestion, error) {
	m.calls++
	m.kind = kind
	m.query = query
	return m.result, m.err
}

func TestSuggestTrimsBeforeFetching(t *testing.T) {
	fetcher := &mockFetcher{result: []Suggestion{{Name: "銀座", Datatype: "MA"}}}
	svc := NewService(fetcher)

	got := svc.Suggest(context.Background(), KindArea, "  銀座  ")

	if fetcher.query != "銀座" {
		t.Errorf("fetcher saw query %q, want trimmed", fetcher.query)
	}
	if fetcher.kind != KindArea {
		t.Errorf("fetcher saw kind %q, want area", fetcher.kind)
	}
	if len(got) != 1 || got[0].Name != "銀座" {
		t.Errorf("got %+v, want the fetched suggestion", got)
	}
}

func TestSuggestEmptyQuerySkipsTransport(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"tabs and newlines", "\t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &mockFetcher{}
			svc := NewService(fetcher)

			got := svc.Suggest(context.Background(), KindKeyword, tt.query)

			if fetcher.calls != 0 {
				t.Errorf("transport invoked %d times, want 0", fetcher.calls)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("got %v, want empty non-nil sequence", got)
			}
		})
	}
}

func TestSuggestFailureReturnsEmpty(t *testing.T) {
	fetcher := &mockFetcher{err: errors.New("connection reset")}
	svc := NewService(fetcher)

	got := svc.Suggest(context.Background(), KindKeyword, "ラーメン")

	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil sequence on failure", got)
	}
	if fetcher.calls != 1 {
		t.Errorf("transport invoked %d times, want 1", fetcher.calls)
	}
}

func TestSuggestNilResultBecomesEmpty(t *testing.T) {
	svc := NewService(&mockFetcher{result: nil})

	got := svc.Suggest(context.Background(), KindArea, "東京")

	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil sequence", got)
	}
}

func TestSuggestAsyncMatchesBlockingForm(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *mockFetcher
		query   string
	}{
		{"success", &mockFetcher{result: []Suggestion{{Name: "新宿", Datatype: "RS"}}}, "新宿"},
		{"failure", &mockFetcher{err: errors.New("timeout")}, "新宿"},
		{"empty query", &mockFetcher{}, "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.fetcher)
			blocking := svc.Suggest(context.Background(), KindArea, tt.query)

			var async []Suggestion
			select {
			case async = <-svc.SuggestAsync(context.Background(), KindArea, tt.query):
			case <-time.After(5 * time.Second):
				t.Fatal("async result never arrived")
			}

			if len(async) != len(blocking) {
				t.Fatalf("async returned %d, blocking returned %d", len(async), len(blocking))
			}
			for i := range async {
				if async[i] != blocking[i] {
					t.Errorf("async[%d] = %+v, blocking[%d] = %+v", i, async[i], i, blocking[i])
				}
			}
		})
	}
}
