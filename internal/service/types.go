// Package service implements tool execution services for mcp-places.
package service

import "github.com/brbranch/places_mcp/internal/model"

// NoResultsMessage は結果0件時のメッセージ
const NoResultsMessage = "No places found for your query."

// OutcomeKind はツール実行結果の種別
type OutcomeKind int

const (
	// OutcomeError は実行失敗（JSON-RPC internal errorにマップ）
	OutcomeError OutcomeKind = iota
	// OutcomeEmpty は結果0件（メッセージをそのままテキスト結果にマップ）
	OutcomeEmpty
	// OutcomeRecords はレコードあり（番号付きテキストにマップ）
	OutcomeRecords
)

// Outcome はツール実行の3値結果
// {Error(text), Empty(message), Records(list)} の閉じたバリアント。
// 下流のマッピングは種別switchで網羅的に処理する
type Outcome struct {
	Kind    OutcomeKind
	ErrText string
	Message string
	Records []model.Place
}

// ErrorOutcome は実行失敗の結果を生成
func ErrorOutcome(text string) Outcome {
	return Outcome{Kind: OutcomeError, ErrText: text}
}

// EmptyOutcome は結果0件の結果を生成
func EmptyOutcome(message string) Outcome {
	return Outcome{Kind: OutcomeEmpty, Message: message}
}

// RecordsOutcome はレコードありの結果を生成
func RecordsOutcome(records []model.Place) Outcome {
	return Outcome{Kind: OutcomeRecords, Records: records}
}
