package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/brbranch/places_mcp/internal/config"
	"github.com/brbranch/places_mcp/internal/model"
	"github.com/brbranch/places_mcp/internal/places"
	"github.com/brbranch/places_mcp/internal/store"
)

// SearchService はレストラン検索を提供
type SearchService interface {
	SearchRestaurants(ctx context.Context, query string) Outcome
}

// PlacesClient は外部検索コラボレーターのインターフェース
type PlacesClient interface {
	SearchText(ctx context.Context, query, apiKey string) ([]model.Place, error)
}

// searchService はSearchServiceの実装
// APIキーはプロセス設定（クエリパラメータ）→ 環境変数の順で解決する
type searchService struct {
	client PlacesClient
	config *config.Store
	cache  *store.SearchCache // nilならキャッシュ無効
	logger *slog.Logger
}

// NewSearchService はSearchServiceを作成する
// cacheはnil可（キャッシュ無効）
func NewSearchService(client PlacesClient, cfg *config.Store, cache *store.SearchCache, logger *slog.Logger) SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		client: client,
		config: cfg,
		cache:  cache,
		logger: logger,
	}
}

// SearchRestaurants はクエリでレストランを検索し3値結果に変換する
// コラボレーターの失敗は必ずErrorOutcomeに変換し、呼び出し元に
// パニックやエラーを伝播しない（バッチ内の他メッセージを守る）
func (s *searchService) SearchRestaurants(ctx context.Context, query string) Outcome {
	// キャッシュ確認（エラーはミス扱いでログのみ）
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, query)
		if err != nil {
			s.logger.Warn("search cache lookup failed", "error", err)
		} else if hit {
			s.logger.Debug("search cache hit", "query", query)
			return RecordsOutcome(cached)
		}
	}

	apiKey := config.ResolveAPIKey(s.config)

	results, err := s.client.SearchText(ctx, query, apiKey)
	if err != nil {
		return ErrorOutcome(searchErrorText(err))
	}

	if len(results) == 0 {
		return EmptyOutcome(NoResultsMessage)
	}

	// 成功した検索のみキャッシュを更新
	if s.cache != nil {
		if err := s.cache.Put(ctx, query, results); err != nil {
			s.logger.Warn("search cache store failed", "error", err)
		}
	}

	return RecordsOutcome(results)
}

// searchErrorText はコラボレーターのエラーをユーザー向けテキストに変換
func searchErrorText(err error) string {
	if errors.Is(err, places.ErrAPIKeyRequired) {
		return places.ErrAPIKeyRequired.Error()
	}
	return "API request failed: " + err.Error()
}
