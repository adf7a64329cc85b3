package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brbranch/places_mcp/internal/model"
	"github.com/brbranch/places_mcp/internal/service"
)

// ServerName / ServerVersion はサーバー識別情報（ビルド時に設定可能）
var (
	ServerName    = "Singapore Restaurant Locator"
	ServerVersion = "1.0.0"
)

// methodKind はMCPメソッドの閉じた種別
// メッセージごとに必ずいずれか1つに分類される
type methodKind int

const (
	methodInitialize methodKind = iota
	methodToolsList
	methodToolsCall
	methodUnknown
)

// classifyMethod はメソッド名を種別に分類する
func classifyMethod(method string) methodKind {
	switch method {
	case "initialize":
		return methodInitialize
	case "tools/list":
		return methodToolsList
	case "tools/call":
		return methodToolsCall
	default:
		return methodUnknown
	}
}

// dispatchOne は1リクエストを処理してレスポンスを生成する
// 戻り値の第2値はinitializeで作成されたセッションID（それ以外は空）
// レスポンスのidはリクエストのidをそのままコピーする（nullも含む）
func (d *Dispatcher) dispatchOne(ctx context.Context, msg *model.Message) (any, string) {
	switch classifyMethod(msg.Method) {
	case methodInitialize:
		return d.handleInitialize(msg)
	case methodToolsList:
		return d.handleToolsList(msg), ""
	case methodToolsCall:
		return d.handleToolsCall(ctx, msg), ""
	case methodUnknown:
		return model.NewMethodNotFound(msg.ID, msg.Method), ""
	}
	// classifyMethodが閉じているため到達しない
	return model.NewMethodNotFound(msg.ID, msg.Method), ""
}

// handleInitialize は initialize メソッドを処理
// 新しいセッションを作成し、その時点の設定スナップショットを保存する
func (d *Dispatcher) handleInitialize(msg *model.Message) (any, string) {
	sess := d.sessions.Create(d.config.Snapshot())

	result := &model.InitializeResult{
		ProtocolVersion: model.ProtocolVersion,
		Capabilities: model.Capabilities{
			Tools: &model.ToolsCapability{},
		},
		ServerInfo: model.ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}
	return model.NewResponse(msg.ID, result), sess.ID
}

// handleToolsList は tools/list メソッドを処理
// セッション状態に依存せず、静的なレジストリ内容を返す
func (d *Dispatcher) handleToolsList(msg *model.Message) any {
	return model.NewResponse(msg.ID, &model.ToolsListResult{
		Tools: d.registry.List(),
	})
}

// handleToolsCall は tools/call メソッドを処理
func (d *Dispatcher) handleToolsCall(ctx context.Context, msg *model.Message) any {
	var p model.ToolsCallParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &p); err != nil {
			return model.NewInvalidParams(msg.ID, "invalid tools/call params: "+err.Error())
		}
	}

	fn, ok := d.registry.Lookup(p.Name)
	if !ok {
		return model.NewToolNotFound(msg.ID, p.Name)
	}

	args := p.Arguments
	if args == nil {
		args = map[string]any{}
	}

	return mapOutcome(msg.ID, fn(ctx, args))
}

// mapOutcome はツールの3値結果をJSON-RPCレスポンスに変換する
// このマッピングは全ツール共通（Error→-32603 / Empty→メッセージ / Records→番号付きテキスト）
func mapOutcome(id json.RawMessage, outcome service.Outcome) any {
	switch outcome.Kind {
	case service.OutcomeError:
		return model.NewInternalError(id, outcome.ErrText)
	case service.OutcomeEmpty:
		return model.NewResponse(id, &model.ToolsCallResult{
			Content: []model.ContentItem{model.NewTextContent(outcome.Message)},
		})
	case service.OutcomeRecords:
		return model.NewResponse(id, &model.ToolsCallResult{
			Content: []model.ContentItem{model.NewTextContent(formatRecords(outcome.Records))},
		})
	}
	return model.NewInternalError(id, "unhandled tool outcome")
}

// formatRecords はレコード列を1始まりの番号付きテキストに整形する
// 各エントリは空行で区切る
func formatRecords(records []model.Place) string {
	entries := make([]string, 0, len(records))
	for i, r := range records {
		entries = append(entries, fmt.Sprintf(
			"%d. %s\n   Address: %s\n   Price Level: %s\n   Rating: %s\n",
			i+1, r.Name, r.Address, r.PriceLevel, r.Rating))
	}
	return strings.Join(entries, "\n")
}
