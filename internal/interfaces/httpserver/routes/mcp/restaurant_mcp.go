package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"tabesearch/internal/domain/area"
	"tabesearch/internal/domain/genre"
	domainsearch "tabesearch/internal/domain/search"
	domainsuggest "tabesearch/internal/domain/suggest"
	"tabesearch/internal/infrastructure/metrics"
	"tabesearch/utils/platformerrors"
)

const (
	ToolKeySearchRestaurants  = "search_restaurants"
	ToolKeyListCuisines       = "list_cuisines"
	ToolKeyAreaSuggestions    = "get_area_suggestions"
	ToolKeyKeywordSuggestions = "get_keyword_suggestions"
)

// SearchRestaurantsArgs defines the arguments for the search_restaurants tool
type SearchRestaurantsArgs struct {
	Area    string `json:"area,omitempty"`
	Keyword string `json:"keyword,omitempty"`
	Cuisine string `json:"cuisine,omitempty"`
	Sort    string `json:"sort,omitempty"`
	Limit   *int   `json:"limit,omitempty"`
}

// SuggestionArgs defines the arguments for both suggestion tools
type SuggestionArgs struct {
	Query string `json:"query"`
}

// ListCuisinesArgs is the empty parameter set for list_cuisines
type ListCuisinesArgs struct{}

type searchToolPayload struct {
	Status       string                    `json:"status"`
	Count        int                       `json:"count"`
	Restaurants  []domainsearch.Restaurant `json:"restaurants"`
	PagesFetched int                       `json:"pages_fetched"`
	EarlyStop    bool                      `json:"early_stop"`
	Error        string                    `json:"error,omitempty"`
}

type cuisineListPayload struct {
	Count    int             `json:"count"`
	Cuisines []genre.Cuisine `json:"cuisines"`
}

type suggestionPayload struct {
	Query       string                     `json:"query"`
	Kind        string                     `json:"kind"`
	Count       int                        `json:"count"`
	Suggestions []domainsuggest.Suggestion `json:"suggestions"`
}

// RestaurantMCP handles MCP tool registration for restaurant search.
type RestaurantMCP struct {
	searchService  *domainsearch.Service
	suggestService *domainsuggest.Service
	cfg            RestaurantMCPConfig
}

// RestaurantMCPConfig contains the boundary limits for RestaurantMCP.
type RestaurantMCPConfig struct {
	PageSize     int
	MaxPages     int
	DefaultLimit int
	MinLimit     int
	MaxLimit     int
}

// NewRestaurantMCP creates a new restaurant MCP handler.
func NewRestaurantMCP(searchService *domainsearch.Service, suggestService *domainsuggest.Service, cfg RestaurantMCPConfig) *RestaurantMCP {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MinLimit <= 0 {
		cfg.MinLimit = 1
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 60
	}
	return &RestaurantMCP{
		searchService:  searchService,
		suggestService: suggestService,
		cfg:            cfg,
	}
}

// RegisterTools registers the restaurant tools with the MCP server
func (m *RestaurantMCP) RegisterTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeySearchRestaurants,
		Description: "Search restaurants by area, cuisine and free-text keyword. Sort is one of ranking, review-count, new-open, standard (default ranking); limit is 1..60 (default 20).",
	}, m.handleSearchRestaurants)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyListCuisines,
		Description: "List every supported cuisine with its category code.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ListCuisinesArgs) (*mcp.CallToolResult, cuisineListPayload, error) {
		startTime := time.Now()
		cuisines := genre.All()
		metrics.RecordToolCall(ToolKeyListCuisines, "success", time.Since(startTime).Seconds())
		return nil, cuisineListPayload{Count: len(cuisines), Cuisines: cuisines}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyAreaSuggestions,
		Description: "Autocomplete area names. The query is required and must be non-empty.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SuggestionArgs) (*mcp.CallToolResult, suggestionPayload, error) {
		return m.handleSuggestions(ctx, ToolKeyAreaSuggestions, domainsuggest.KindArea, input)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyKeywordSuggestions,
		Description: "Autocomplete keywords, cuisines and restaurant names. The query is required and must be non-empty.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SuggestionArgs) (*mcp.CallToolResult, suggestionPayload, error) {
		return m.handleSuggestions(ctx, ToolKeyKeywordSuggestions, domainsuggest.KindKeyword, input)
	})
}

func (m *RestaurantMCP) handleSearchRestaurants(ctx context.Context, req *mcp.CallToolRequest, input SearchRestaurantsArgs) (*mcp.CallToolResult, searchToolPayload, error) {
	startTime := time.Now()

	log.Info().
		Str("tool", ToolKeySearchRestaurants).
		Str("area", input.Area).
		Str("cuisine", input.Cuisine).
		Str("keyword", input.Keyword).
		Str("sort", input.Sort).
		Msg("MCP tool call received")

	query, limit, validationErr := m.resolveSearchQuery(ctx, input)
	if validationErr != nil {
		platformerrors.LogError(log.Logger, validationErr)
		metrics.RecordToolCall(ToolKeySearchRestaurants, "invalid_argument", time.Since(startTime).Seconds())
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: validationErr.Message}},
			IsError: true,
		}, searchToolPayload{Status: "invalid-argument", Restaurants: []domainsearch.Restaurant{}, Error: validationErr.Message}, nil
	}

	outcome := m.searchService.Execute(ctx, query)

	if outcome.Status == domainsearch.StatusFailed {
		log.Warn().
			Str("tool", ToolKeySearchRestaurants).
			Str("cause", outcome.Meta.Cause).
			Msg("restaurant search failed")
		metrics.RecordToolCall(ToolKeySearchRestaurants, "error", time.Since(startTime).Seconds())
		payload := searchToolPayload{
			Status:       string(outcome.Status),
			Restaurants:  []domainsearch.Restaurant{},
			PagesFetched: outcome.Meta.PagesFetched,
			Error:        outcome.Meta.Cause,
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "restaurant search failed"}},
			IsError: true,
		}, payload, nil
	}

	restaurants := domainsearch.Truncate(outcome.Restaurants, limit)

	log.Debug().
		Str("tool", ToolKeySearchRestaurants).
		Str("status", string(outcome.Status)).
		Int("result_count", len(restaurants)).
		Int("pages_fetched", outcome.Meta.PagesFetched).
		Bool("early_stop", outcome.Meta.EarlyStop).
		Msg("search_restaurants response ready")

	metrics.RecordToolCall(ToolKeySearchRestaurants, "success", time.Since(startTime).Seconds())

	return nil, searchToolPayload{
		Status:       string(outcome.Status),
		Count:        len(restaurants),
		Restaurants:  restaurants,
		PagesFetched: outcome.Meta.PagesFetched,
		EarlyStop:    outcome.Meta.EarlyStop,
	}, nil
}

func (m *RestaurantMCP) handleSuggestions(ctx context.Context, toolKey string, kind domainsuggest.Kind, input SuggestionArgs) (*mcp.CallToolResult, suggestionPayload, error) {
	startTime := time.Now()

	if strings.TrimSpace(input.Query) == "" {
		err := platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"query is required and must be non-empty", nil, "")
		platformerrors.LogError(log.Logger, err)
		metrics.RecordToolCall(toolKey, "invalid_argument", time.Since(startTime).Seconds())
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: err.Message}},
			IsError: true,
		}, suggestionPayload{Kind: string(kind), Suggestions: []domainsuggest.Suggestion{}}, nil
	}

	suggestions := m.suggestService.Suggest(ctx, kind, input.Query)

	metrics.RecordToolCall(toolKey, "success", time.Since(startTime).Seconds())

	return nil, suggestionPayload{
		Query:       strings.TrimSpace(input.Query),
		Kind:        string(kind),
		Count:       len(suggestions),
		Suggestions: suggestions,
	}, nil
}

// resolveSearchQuery validates the boundary arguments and builds the
// resolved query. Limit and sort violations and an unknown cuisine are
// rejected; an unmapped area is not an error and degrades the search to
// a nationwide query.
func (m *RestaurantMCP) resolveSearchQuery(ctx context.Context, input SearchRestaurantsArgs) (domainsearch.Query, int, *platformerrors.PlatformError) {
	limit := m.cfg.DefaultLimit
	if input.Limit != nil {
		if *input.Limit < m.cfg.MinLimit || *input.Limit > m.cfg.MaxLimit {
			return domainsearch.Query{}, 0, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("limit must be between %d and %d", m.cfg.MinLimit, m.cfg.MaxLimit), nil, "")
		}
		limit = *input.Limit
	}

	sort := domainsearch.SortRanking
	if input.Sort != "" {
		parsed, ok := domainsearch.ParseSortMode(input.Sort)
		if !ok {
			return domainsearch.Query{}, 0, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("unrecognized sort: %s", input.Sort), nil, "")
		}
		sort = parsed
	}

	genreCode := ""
	if cuisine := strings.TrimSpace(input.Cuisine); cuisine != "" {
		code, ok := genre.CodeOf(cuisine)
		if !ok {
			return domainsearch.Query{}, 0, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("unknown cuisine: %s", cuisine), nil, "")
		}
		genreCode = code
	}

	areaSlug := ""
	if name := strings.TrimSpace(input.Area); name != "" {
		slug, ok := area.Resolve(name)
		if !ok {
			log.Info().Str("area", name).Msg("area not recognized, searching nationwide")
		} else {
			areaSlug = slug
		}
	}

	maxPages := (limit + m.cfg.PageSize - 1) / m.cfg.PageSize
	if maxPages > m.cfg.MaxPages {
		maxPages = m.cfg.MaxPages
	}

	return domainsearch.Query{
		AreaSlug:  areaSlug,
		GenreCode: genreCode,
		Keyword:   strings.TrimSpace(input.Keyword),
		Sort:      sort,
		MaxPages:  maxPages,
	}, limit, nil
}
