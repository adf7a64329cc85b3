package jsonrpc

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/brbranch/places_mcp/internal/model"
)

// ErrInvalidJSON はボディがJSON-RPCメッセージとして解釈できないエラー
var ErrInvalidJSON = errors.New("invalid JSON body")

// ParseMessages はHTTPボディをメッセージ列に正規化する
// 単一オブジェクトは要素1のスライスに、配列はそのままスライスになる
func ParseMessages(body []byte) ([]model.Message, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, ErrInvalidJSON
	}

	// バッチ（配列）の場合
	if trimmed[0] == '[' {
		var msgs []model.Message
		if err := json.Unmarshal(trimmed, &msgs); err != nil {
			return nil, ErrInvalidJSON
		}
		return msgs, nil
	}

	// 単一メッセージの場合
	var msg model.Message
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		return nil, ErrInvalidJSON
	}
	return []model.Message{msg}, nil
}

// HasRequests はメッセージ列にリクエスト（method + id両方を持つ要素）が
// 含まれるかを返す。falseの場合は通知のみのバッチで、HTTP 202で応答し
// ディスパッチは行わない
func HasRequests(msgs []model.Message) bool {
	for i := range msgs {
		if msgs[i].IsRequest() {
			return true
		}
	}
	return false
}
