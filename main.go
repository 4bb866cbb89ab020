package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	domainsearch "tabesearch/internal/domain/search"
	domainsuggest "tabesearch/internal/domain/suggest"
	"tabesearch/internal/infrastructure/config"
	"tabesearch/internal/infrastructure/logger"
	"tabesearch/internal/infrastructure/tabelog"
	"tabesearch/internal/interfaces/httpserver"
	mcproute "tabesearch/internal/interfaces/httpserver/routes/mcp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		panic(fmt.Sprintf("Failed to setup logger: %v", err))
	}
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("log_level", cfg.LogLevel).
		Msg("Starting restaurant search service")

	// Initialize infrastructure
	client := tabelog.NewClient(tabelog.ClientConfig{
		BaseURL:    cfg.ListingBaseURL,
		SuggestURL: cfg.SuggestURL,
		UserAgent:  cfg.UserAgent,

		CBEnabled:          cfg.CBEnabled,
		CBFailureThreshold: cfg.CBFailureThreshold,
		CBSuccessThreshold: cfg.CBSuccessThreshold,
		CBTimeout:          time.Duration(cfg.CBTimeout) * time.Second,
		CBMaxHalfOpen:      cfg.CBMaxHalfOpen,

		HTTPTimeout:     time.Duration(cfg.HTTPTimeout) * time.Second,
		MaxConnsPerHost: cfg.MaxConnsPerHost,
		MaxIdleConns:    cfg.MaxIdleConns,
		IdleConnTimeout: time.Duration(cfg.IdleConnTimeout) * time.Second,

		RetryMaxAttempts:   cfg.RetryMaxAttempts,
		RetryInitialDelay:  time.Duration(cfg.RetryInitialDelay) * time.Millisecond,
		RetryMaxDelay:      time.Duration(cfg.RetryMaxDelay) * time.Millisecond,
		RetryBackoffFactor: cfg.RetryBackoffFactor,
	})

	// Initialize domain services
	searchService := domainsearch.NewService(client)
	suggestService := domainsuggest.NewService(client)

	// Initialize MCP routes
	restaurantMCP := mcproute.NewRestaurantMCP(searchService, suggestService, mcproute.RestaurantMCPConfig{
		PageSize:     cfg.PageSize,
		MaxPages:     cfg.MaxPages,
		DefaultLimit: cfg.DefaultLimit,
		MinLimit:     cfg.MinLimit,
		MaxLimit:     cfg.MaxLimit,
	})
	mcpRoute := mcproute.NewMCPRoute(restaurantMCP)

	// Setup and start HTTP server
	server := httpserver.NewHTTPServer(cfg, mcpRoute)

	log.Info().Str("address", fmt.Sprintf(":%s", cfg.HTTPPort)).Msg("Server listening")
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
