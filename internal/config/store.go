// Package config implements process configuration for mcp-places.
//
// 設定はリクエストのクエリパラメータ（ドット記法）からマージされ、
// プロセス全体で共有される。リクエスト単位の分離はなく、
// last-writer-winsで上書きされる（元設計の既知の制約）
package config

import (
	"sync"

	"github.com/brbranch/places_mcp/internal/model"
)

// Store はミューテックスで保護されたプロセス設定ストア
// グローバル変数は使わず、依存として注入する
type Store struct {
	mu     sync.RWMutex
	values model.ConfigMap
}

// NewStore は空の設定ストアを作成する
func NewStore() *Store {
	return &Store{
		values: model.ConfigMap{},
	}
}

// MergeQuery はクエリ文字列をパースして現在の設定にマージする
// read-modify-writeはロック下でアトミックに行う
// 空クエリは既存の状態を変更しない
func (s *Store) MergeQuery(rawQuery string) error {
	if rawQuery == "" {
		return nil
	}

	parsed, err := ParseQuery(rawQuery)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	merge(s.values, parsed)
	return nil
}

// Snapshot は現在の設定のディープコピーを返す
// セッション作成時のconfigスナップショットに使用
func (s *Store) Snapshot() model.ConfigMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Clone()
}

// GetString はパスを辿ってリーフの文字列値を取得する
func (s *Store) GetString(path ...string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.GetString(path...)
}

// merge はsrcをdstに再帰的にマージする（last-writer-wins）
// 両側がConfigMapの場合はネストしてマージ、それ以外はsrc側で上書き
func merge(dst, src model.ConfigMap) {
	for k, v := range src {
		srcNested, srcOK := v.(model.ConfigMap)
		dstNested, dstOK := dst[k].(model.ConfigMap)
		if srcOK && dstOK {
			merge(dstNested, srcNested)
			continue
		}
		dst[k] = v
	}
}
