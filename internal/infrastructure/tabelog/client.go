// Package tabelog implements the upstream listing and suggestion
// transport behind the domain fetcher interfaces.
package tabelog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	domainsearch "tabesearch/internal/domain/search"
	domainsuggest "tabesearch/internal/domain/suggest"
	"tabesearch/internal/infrastructure/metrics"
)

const (
	defaultBaseURL    = "https://tabelog.com"
	defaultSuggestURL = "https://tabelog.com/suggest"

	keywordParam     = "sw"
	sortParam        = "SrtT"
	areaSuggestParam = "sa"
	kwSuggestParam   = "sk"
)

// ClientConfig captures the knobs exposed to operators for the upstream
// client. Base URLs are overridable so tests can point at a local server.
type ClientConfig struct {
	BaseURL    string
	SuggestURL string
	UserAgent  string

	// Circuit Breaker Settings
	CBEnabled          bool
	CBFailureThreshold int
	CBSuccessThreshold int
	CBTimeout          time.Duration
	CBMaxHalfOpen      int

	// HTTP Client Settings
	HTTPTimeout     time.Duration
	MaxConnsPerHost int
	MaxIdleConns    int
	IdleConnTimeout time.Duration

	// Retry Settings
	RetryMaxAttempts   int
	RetryInitialDelay  time.Duration
	RetryMaxDelay      time.Duration
	RetryBackoffFactor float64
}

// Client fetches listing pages and autocomplete suggestions. It
// implements domainsearch.PageFetcher and domainsuggest.Fetcher.
type Client struct {
	cfg         ClientConfig
	httpClient  *resty.Client
	retryConfig RetryConfig
	cb          *CircuitBreaker
}

var (
	_ domainsearch.PageFetcher = (*Client)(nil)
	_ domainsuggest.Fetcher    = (*Client)(nil)
)

// NewClient wires the resty client, retry policy and circuit breaker.
func NewClient(cfg ClientConfig) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if strings.TrimSpace(cfg.SuggestURL) == "" {
		cfg.SuggestURL = defaultSuggestURL
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	httpTimeout := 15 * time.Second
	if cfg.HTTPTimeout > 0 {
		httpTimeout = cfg.HTTPTimeout
	}

	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = 100
	}
	maxConnsPerHost := cfg.MaxConnsPerHost
	if maxConnsPerHost == 0 {
		maxConnsPerHost = 50
	}
	idleConnTimeout := cfg.IdleConnTimeout
	if idleConnTimeout == 0 {
		idleConnTimeout = 90 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	httpClient := resty.New().
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "ja,en-US;q=0.7,en;q=0.3").
		SetTimeout(httpTimeout).
		SetRetryCount(0).
		SetTransport(transport)

	retryConfig := DefaultRetryConfig()
	if cfg.RetryMaxAttempts > 0 {
		retryConfig.MaxAttempts = cfg.RetryMaxAttempts
	}
	if cfg.RetryInitialDelay > 0 {
		retryConfig.InitialDelay = cfg.RetryInitialDelay
	}
	if cfg.RetryMaxDelay > 0 {
		retryConfig.MaxDelay = cfg.RetryMaxDelay
	}
	if cfg.RetryBackoffFactor > 0 {
		retryConfig.BackoffFactor = cfg.RetryBackoffFactor
	}

	cbConfig := DefaultCircuitBreakerConfig()
	cbConfig.Enabled = cfg.CBEnabled
	if cfg.CBFailureThreshold > 0 {
		cbConfig.FailureThreshold = cfg.CBFailureThreshold
	}
	if cfg.CBSuccessThreshold > 0 {
		cbConfig.SuccessThreshold = cfg.CBSuccessThreshold
	}
	if cfg.CBTimeout > 0 {
		cbConfig.Timeout = cfg.CBTimeout
	}
	if cfg.CBMaxHalfOpen > 0 {
		cbConfig.MaxHalfOpenCalls = cfg.CBMaxHalfOpen
	}

	return &Client{
		cfg:         cfg,
		httpClient:  httpClient,
		retryConfig: retryConfig,
		cb:          NewCircuitBreaker(cbConfig),
	}
}

// FetchPage retrieves one listing page and parses it into records plus a
// has-next signal.
func (c *Client) FetchPage(ctx context.Context, query domainsearch.Query, page int) (*domainsearch.Page, error) {
	if !c.cb.AllowRequest() {
		log.Error().Str("operation", "list").Msg("circuit breaker rejected the request, skipping fetch")
		return nil, fmt.Errorf("circuit breaker is open")
	}

	startTime := time.Now()
	defer func() {
		metrics.RecordUpstreamLatency("list", time.Since(startTime).Seconds())
	}()

	requestURL := c.listURL(query, page)

	result, err := withRetry(ctx, c.retryConfig, "list_fetch", func() (*domainsearch.Page, error) {
		req := c.httpClient.R().SetContext(ctx)
		if query.Keyword != "" {
			req.SetQueryParam(keywordParam, query.Keyword)
		}
		if token := sortToken(query.Sort); token != "" {
			req.SetQueryParam(sortParam, token)
		}

		resp, err := req.Get(requestURL)
		if err != nil {
			log.Error().Err(err).Str("url", requestURL).Int("page", page).Msg("failed to fetch listing page")
			return nil, fmt.Errorf("failed to fetch listing page: %w", err)
		}
		if resp.IsError() {
			log.Error().Int("status", resp.StatusCode()).Str("url", requestURL).Msg("listing page HTTP error")
			return nil, fmt.Errorf("listing page HTTP error (status %d)", resp.StatusCode())
		}

		restaurants, hasNext, err := ParseListPage(resp.Body())
		if err != nil {
			return nil, fmt.Errorf("failed to parse listing page: %w", err)
		}
		return &domainsearch.Page{Restaurants: restaurants, HasNext: hasNext}, nil
	})

	c.cb.recordResult("list_fetch", err)

	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("url", requestURL).
		Int("page", page).
		Int("records", len(result.Restaurants)).
		Bool("has_next", result.HasNext).
		Msg("listing page fetched")

	return result, nil
}

// FetchSuggestions queries the autocomplete endpoint. Area and keyword
// lookups use distinct single-letter query parameters.
func (c *Client) FetchSuggestions(ctx context.Context, kind domainsuggest.Kind, query string) ([]domainsuggest.Suggestion, error) {
	if !c.cb.AllowRequest() {
		return nil, fmt.Errorf("circuit breaker is open")
	}

	startTime := time.Now()
	defer func() {
		metrics.RecordUpstreamLatency("suggest", time.Since(startTime).Seconds())
	}()

	param := kwSuggestParam
	if kind == domainsuggest.KindArea {
		param = areaSuggestParam
	}

	var opErr error
	body, err := withRetry(ctx, c.retryConfig, "suggest_fetch", func() (*[]byte, error) {
		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetHeader("Accept", "application/json").
			SetQueryParam(param, query).
			Get(c.cfg.SuggestURL)

		if err != nil {
			return nil, fmt.Errorf("failed to query suggest endpoint: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("suggest endpoint HTTP error (status %d)", resp.StatusCode())
		}

		raw := resp.Body()
		return &raw, nil
	})

	opErr = err
	var suggestions []domainsuggest.Suggestion
	if opErr == nil {
		suggestions, opErr = decodeSuggestions(*body)
	}

	c.cb.recordResult("suggest_fetch", opErr)

	if opErr != nil {
		log.Warn().Err(opErr).Str("kind", string(kind)).Msg("suggestion fetch failed")
		return nil, opErr
	}
	return suggestions, nil
}

// listURL builds the listing path: nationwide or area-scoped, with an
// optional genre segment and a page segment for pages past the first.
func (c *Client) listURL(query domainsearch.Query, page int) string {
	var sb strings.Builder
	sb.WriteString(c.cfg.BaseURL)
	if query.AreaSlug != "" {
		sb.WriteString("/")
		sb.WriteString(query.AreaSlug)
	}
	sb.WriteString("/rstLst/")
	if query.GenreCode != "" {
		sb.WriteString(query.GenreCode)
		sb.WriteString("/")
	}
	if page > 1 {
		sb.WriteString(strconv.Itoa(page))
		sb.WriteString("/")
	}
	return sb.String()
}

// sortToken maps a sort mode to the upstream sort parameter value.
// SortStandard sends no parameter at all.
func sortToken(mode domainsearch.SortMode) string {
	switch mode {
	case domainsearch.SortRanking:
		return "rt"
	case domainsearch.SortReviewCount:
		return "rvcn"
	case domainsearch.SortNewOpen:
		return "nod"
	default:
		return ""
	}
}

// decodeSuggestions turns the loosely-typed upstream array into typed
// records with explicit per-field defaults. The scoped id arrives as a
// number or a string depending on the datatype.
func decodeSuggestions(body []byte) ([]domainsuggest.Suggestion, error) {
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("malformed suggest response: %w", err)
	}

	out := make([]domainsuggest.Suggestion, 0, len(raw))
	for _, record := range raw {
		s := domainsuggest.Suggestion{
			Name:         stringField(record, "name"),
			Datatype:     stringField(record, "datatype"),
			IDInDatatype: intField(record, "id_in_datatype"),
		}
		if lat, ok := floatField(record, "lat"); ok {
			s.Lat = &lat
		}
		if lng, ok := floatField(record, "lng"); ok {
			s.Lng = &lng
		}
		out = append(out, s)
	}
	return out, nil
}

func stringField(record map[string]any, key string) string {
	if v, ok := record[key].(string); ok {
		return v
	}
	return ""
}

func intField(record map[string]any, key string) int64 {
	switch v := record[key].(type) {
	case float64:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func floatField(record map[string]any, key string) (float64, bool) {
	switch v := record[key].(type) {
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
