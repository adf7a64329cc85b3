package jsonrpc

import (
	"context"

	"github.com/brbranch/places_mcp/internal/model"
	"github.com/brbranch/places_mcp/internal/service"
)

// ToolFunc はツールの実行関数
// 戻り値は3値結果（Error/Empty/Records）で、マッピングはディスパッチャーが
// 全ツール共通に行う
type ToolFunc func(ctx context.Context, args map[string]any) service.Outcome

// toolEntry は登録済みツール1件分（定義 + 実行関数）
type toolEntry struct {
	def model.Tool
	fn  ToolFunc
}

// Registry はツール名 → (スキーマ, ハンドラー) のマッピング
// 起動時に構築し、以後は変更しない
type Registry struct {
	order   []string
	entries map[string]toolEntry
}

// NewRegistry は空のRegistryを作成する
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]toolEntry),
	}
}

// Register はツールを登録する（同名は上書き、順序は初回登録順）
func (r *Registry) Register(def model.Tool, fn ToolFunc) {
	if _, ok := r.entries[def.Name]; !ok {
		r.order = append(r.order, def.Name)
	}
	r.entries[def.Name] = toolEntry{def: def, fn: fn}
}

// List は登録順のツール定義一覧を返す
func (r *Registry) List() []model.Tool {
	tools := make([]model.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.entries[name].def)
	}
	return tools
}

// Lookup はツール名から実行関数を取得する
func (r *Registry) Lookup(name string) (ToolFunc, bool) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return entry.fn, true
}

// DefaultRegistry はビルトインツールを登録したRegistryを作成する
// 現在のビルトインは search_restaurants のみ
func DefaultRegistry(search service.SearchService) *Registry {
	r := NewRegistry()
	r.Register(model.Tool{
		Name:        "search_restaurants",
		Description: "Search for restaurants or food places in Singapore using queries like 'laksa' or 'vegan tiramisu'",
		InputSchema: model.JSONSchema{
			Type: "object",
			Properties: map[string]model.JSONSchema{
				"query": {
					Type:        "string",
					Description: "Search term for food or restaurant type",
				},
			},
			Required: []string{"query"},
		},
	}, func(ctx context.Context, args map[string]any) service.Outcome {
		// query欠損は空文字として扱う（コラボレーター側で拒否される）
		query, _ := args["query"].(string)
		return search.SearchRestaurants(ctx, query)
	})
	return r
}
