// Package jsonrpc implements the MCP JSON-RPC 2.0 dispatcher for mcp-places.
package jsonrpc

import (
	"context"
	"encoding/json"

	"github.com/brbranch/places_mcp/internal/config"
	"github.com/brbranch/places_mcp/internal/model"
	"github.com/brbranch/places_mcp/internal/session"
)

// Dispatcher はJSON-RPCメッセージをメソッドハンドラーに振り分ける
// セッション作成の責務を持つ。状態はメッセージ単位で、
// セッション作成・参照以外のメッセージ間状態はない
type Dispatcher struct {
	sessions *session.Store
	config   *config.Store
	registry *Registry
}

// NewDispatcher は新しいDispatcherを作成する
// 設定ストア・セッションストアは注入する（グローバル状態を持たない）
func NewDispatcher(sessions *session.Store, cfg *config.Store, registry *Registry) *Dispatcher {
	return &Dispatcher{
		sessions: sessions,
		config:   cfg,
		registry: registry,
	}
}

// BatchResult はバッチディスパッチの結果
type BatchResult struct {
	// Responses はディスパッチ順のレスポンス列
	// 要素は *model.Response または *model.ErrorResponse
	Responses []any

	// SessionID はこのバッチで作成されたセッションのID
	// バッチにinitializeが含まれた場合のみ非空で、
	// トランスポート層がMcp-Session-Idヘッダーに載せる
	SessionID string
}

// DispatchBatch はメッセージ列を順にディスパッチする
// リクエスト（method + id）1件につき必ずレスポンス1件を生成し、
// 通知はレスポンスを生成しない。メッセージ単位で失敗を分離する
func (d *Dispatcher) DispatchBatch(ctx context.Context, msgs []model.Message) *BatchResult {
	result := &BatchResult{}

	for i := range msgs {
		msg := &msgs[i]
		if !msg.IsRequest() {
			continue
		}

		resp, sessionID := d.dispatchOne(ctx, msg)
		result.Responses = append(result.Responses, resp)
		if sessionID != "" {
			result.SessionID = sessionID
		}
	}

	return result
}

// HandleLine は1行=1メッセージのトランスポート（stdio）用ハンドラー
// 通知の場合はnilを返す（出力なし）
func (d *Dispatcher) HandleLine(ctx context.Context, line []byte) []byte {
	msgs, err := ParseMessages(line)
	if err != nil {
		b, _ := json.Marshal(model.NewParseError(err.Error()))
		return b
	}

	if !HasRequests(msgs) {
		return nil
	}

	result := d.DispatchBatch(ctx, msgs)
	if len(result.Responses) == 1 {
		b, _ := json.Marshal(result.Responses[0])
		return b
	}
	b, _ := json.Marshal(result.Responses)
	return b
}
