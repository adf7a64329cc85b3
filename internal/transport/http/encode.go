package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// SessionHeader はセッションIDを運ぶHTTPヘッダー名
const SessionHeader = "Mcp-Session-Id"

// writeJSON はレスポンス列をJSONボディとして書き込む
// 1件なら単一オブジェクト、複数なら順序を保った配列になる
// sessionIDが非空ならMcp-Session-Idヘッダーを付加する
func writeJSON(w http.ResponseWriter, responses []any, sessionID string) {
	if sessionID != "" {
		w.Header().Set(SessionHeader, sessionID)
	}
	w.Header().Set("Content-Type", "application/json")

	var body []byte
	if len(responses) == 1 {
		body, _ = json.Marshal(responses[0])
	} else {
		body, _ = json.Marshal(responses)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// writeEventStream はレスポンス列をSSEフレーム列として書き込む
// フレームは「idユニーク行 + data行 + 空行」で、生成順を保つ
// セッションヘッダーはストリーム冒頭のヘッダーに付加する（フレーム単位ではない）
func writeEventStream(w http.ResponseWriter, responses []any, sessionID string) {
	if sessionID != "" {
		w.Header().Set(SessionHeader, sessionID)
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for _, resp := range responses {
		data, _ := json.Marshal(resp)
		fmt.Fprintf(w, "id: %s\ndata: %s\n\n", uuid.NewString(), data)
		if flusher != nil {
			flusher.Flush()
		}
	}
}
