// Package bootstrap provides common initialization logic for mcp-places.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brbranch/places_mcp/internal/config"
	"github.com/brbranch/places_mcp/internal/jsonrpc"
	"github.com/brbranch/places_mcp/internal/places"
	"github.com/brbranch/places_mcp/internal/service"
	"github.com/brbranch/places_mcp/internal/session"
	"github.com/brbranch/places_mcp/internal/store"
)

// Options は初期化オプション
type Options struct {
	// CachePath はSQLite検索キャッシュのパス（空ならキャッシュ無効）
	CachePath string

	// PlacesBaseURL は外部検索APIのベースURL（空ならデフォルト）
	PlacesBaseURL string

	Logger *slog.Logger
}

// Services は初期化されたコンポーネント群を保持
type Services struct {
	Dispatcher *jsonrpc.Dispatcher
	Sessions   *session.Store
	Config     *config.Store
	Search     service.SearchService
}

// Initialize は各ストアとサービスを組み立てる
// 戻り値のcleanupはキャッシュDBのクローズを行う
func Initialize(ctx context.Context, opts Options) (*Services, func(), error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfgStore := config.NewStore()
	sessions := session.NewStore()

	// 検索キャッシュ（任意）
	var cache *store.SearchCache
	cleanup := func() {}
	if opts.CachePath != "" {
		var err error
		cache, err = store.NewSearchCache(opts.CachePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create search cache: %w", err)
		}
		if err := cache.Initialize(ctx); err != nil {
			cache.Close()
			return nil, nil, fmt.Errorf("failed to initialize search cache: %w", err)
		}
		cleanup = func() { cache.Close() }
	}

	var clientOpts []places.Option
	if opts.PlacesBaseURL != "" {
		clientOpts = append(clientOpts, places.WithBaseURL(opts.PlacesBaseURL))
	}
	client := places.NewClient(clientOpts...)
	search := service.NewSearchService(client, cfgStore, cache, logger)
	registry := jsonrpc.DefaultRegistry(search)
	dispatcher := jsonrpc.NewDispatcher(sessions, cfgStore, registry)

	return &Services{
		Dispatcher: dispatcher,
		Sessions:   sessions,
		Config:     cfgStore,
		Search:     search,
	}, cleanup, nil
}
