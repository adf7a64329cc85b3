package model

import "encoding/json"

// Message は受信したJSON-RPC 2.0メッセージ（リクエストまたは通知）
// IDはjson.RawMessageで保持し、「idフィールドなし」と「id: null」を区別する
// （nil = フィールドなし、"null" = 明示的なnull）
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsRequest はレスポンスを要求するリクエストかどうかを返す
// methodが非空かつidフィールドが存在する場合のみtrue（id: nullも存在扱い）
func (m *Message) IsRequest() bool {
	return m.Method != "" && m.ID != nil
}

// Response はJSON-RPC 2.0レスポンス（成功時）
// IDはリクエストのIDをそのままコピー（id: nullもそのまま）
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
}

// ErrorResponse はJSON-RPC 2.0エラーレスポンス
type ErrorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   RPCError        `json:"error"`
}

// RPCError はJSON-RPC 2.0エラーオブジェクト
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC 2.0 標準エラーコード
const (
	ErrCodeParseError     = -32700 // Invalid JSON
	ErrCodeInvalidRequest = -32600 // Invalid Request
	ErrCodeMethodNotFound = -32601 // Method not found
	ErrCodeInvalidParams  = -32602 // Invalid params
	ErrCodeInternalError  = -32603 // Internal error
)

// NewResponse は成功レスポンスを生成
func NewResponse(id json.RawMessage, result any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}

// NewErrorResponse はエラーレスポンスを生成
func NewErrorResponse(id json.RawMessage, code int, message string) *ErrorResponse {
	return &ErrorResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: RPCError{
			Code:    code,
			Message: message,
		},
	}
}

// NewParseError はパースエラーレスポンスを生成（IDはnull）
func NewParseError(data any) *ErrorResponse {
	return &ErrorResponse{
		JSONRPC: "2.0",
		ID:      nil,
		Error: RPCError{
			Code:    ErrCodeParseError,
			Message: "Parse error",
			Data:    data,
		},
	}
}

// NewMethodNotFound はメソッド未検出エラーレスポンスを生成
// メッセージ形式は "Unknown method: <method>" に固定
func NewMethodNotFound(id json.RawMessage, method string) *ErrorResponse {
	return NewErrorResponse(id, ErrCodeMethodNotFound, "Unknown method: "+method)
}

// NewToolNotFound はツール未検出エラーレスポンスを生成
// メッセージ形式は "Unknown tool: <name>" に固定
func NewToolNotFound(id json.RawMessage, name string) *ErrorResponse {
	return NewErrorResponse(id, ErrCodeMethodNotFound, "Unknown tool: "+name)
}

// NewInvalidParams は無効パラメータエラーレスポンスを生成
func NewInvalidParams(id json.RawMessage, message string) *ErrorResponse {
	return NewErrorResponse(id, ErrCodeInvalidParams, message)
}

// NewInternalError は内部エラーレスポンスを生成
func NewInternalError(id json.RawMessage, message string) *ErrorResponse {
	return NewErrorResponse(id, ErrCodeInternalError, message)
}
