// Package store implements the SQLite-backed search result cache for mcp-places.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/brbranch/places_mcp/internal/model"
)

// DefaultTTL はキャッシュエントリの有効期間
// Places APIは従量課金のため、同一クエリの再検索を一定時間抑制する
const DefaultTTL = 15 * time.Minute

// SearchCache はSQLiteを使用した検索結果キャッシュ
type SearchCache struct {
	mu  sync.RWMutex
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// CacheOption はSearchCacheのオプション
type CacheOption func(*SearchCache)

// WithTTL は有効期間を設定
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *SearchCache) {
		c.ttl = ttl
	}
}

// WithClock は現在時刻の取得関数を設定（テスト用）
func WithClock(now func() time.Time) CacheOption {
	return func(c *SearchCache) {
		c.now = now
	}
}

// NewSearchCache はSearchCacheを作成する
// dbPathには ":memory:" も指定可能
func NewSearchCache(dbPath string, opts ...CacheOption) (*SearchCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WALモードを有効化
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	c := &SearchCache{
		db:  db,
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Initialize はキャッシュテーブルを作成する
func (c *SearchCache) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	schema := `
	CREATE TABLE IF NOT EXISTS search_cache (
		query TEXT PRIMARY KEY,
		results TEXT NOT NULL,
		cached_at INTEGER NOT NULL
	);
	`
	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create search_cache table: %w", err)
	}
	return nil
}

// Get はクエリに対応するキャッシュ済み結果を返す
// ミスまたは期限切れの場合は (nil, false, nil)
func (c *SearchCache) Get(ctx context.Context, query string) ([]model.Place, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var resultsJSON string
	var cachedAt int64
	row := c.db.QueryRowContext(ctx,
		"SELECT results, cached_at FROM search_cache WHERE query = ?", query)
	if err := row.Scan(&resultsJSON, &cachedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to query cache: %w", err)
	}

	// 期限切れチェック
	if c.now().Unix()-cachedAt > int64(c.ttl.Seconds()) {
		return nil, false, nil
	}

	var results []model.Place
	if err := json.Unmarshal([]byte(resultsJSON), &results); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached results: %w", err)
	}
	return results, true, nil
}

// Put は検索結果をキャッシュに保存する（上書き可）
func (c *SearchCache) Put(ctx context.Context, query string, results []model.Place) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO search_cache (query, results, cached_at) VALUES (?, ?, ?)",
		query, string(resultsJSON), c.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Close はDBを閉じる
func (c *SearchCache) Close() error {
	return c.db.Close()
}
