package jsonrpc

import (
	"testing"
)

// TestParseMessages_Single は単一オブジェクトのパースをテスト
func TestParseMessages_Single(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize"}`)

	msgs, err := ParseMessages(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Method != "initialize" {
		t.Errorf("method = %q, want %q", msgs[0].Method, "initialize")
	}
	if !msgs[0].IsRequest() {
		t.Error("expected message to be a request")
	}
}

// TestParseMessages_Batch はバッチ（配列）のパースをテスト
func TestParseMessages_Batch(t *testing.T) {
	body := []byte(`[
		{"jsonrpc":"2.0","id":1,"method":"tools/list"},
		{"jsonrpc":"2.0","method":"notifications/initialized"}
	]`)

	msgs, err := ParseMessages(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if !msgs[0].IsRequest() {
		t.Error("first message should be a request")
	}
	if msgs[1].IsRequest() {
		t.Error("second message (no id) should be a notification")
	}
}

// TestParseMessages_LeadingWhitespace は先頭空白を許容することをテスト
func TestParseMessages_LeadingWhitespace(t *testing.T) {
	body := []byte("\n\t  [{\"jsonrpc\":\"2.0\",\"id\":1,\"method\":\"tools/list\"}]")

	msgs, err := ParseMessages(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
}

// TestParseMessages_Invalid は不正ボディのエラーをテスト
func TestParseMessages_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "壊れたJSON", body: `{"jsonrpc":`},
		{name: "空ボディ", body: ""},
		{name: "空白のみ", body: "   \n"},
		{name: "壊れた配列", body: `[{"jsonrpc":"2.0"},`},
		{name: "配列内の非オブジェクト", body: `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMessages([]byte(tt.body)); err == nil {
				t.Errorf("expected error for %q, got nil", tt.body)
			}
		})
	}
}

// TestIsRequest_NullID は id: null がリクエスト扱いになることをテスト
func TestIsRequest_NullID(t *testing.T) {
	msgs, err := ParseMessages([]byte(`{"jsonrpc":"2.0","id":null,"method":"tools/list"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// idフィールドが存在する限り（nullでも）レスポンスを要求する
	if !msgs[0].IsRequest() {
		t.Error("message with explicit null id should be a request")
	}
}

// TestHasRequests は通知のみ判定をテスト
func TestHasRequests(t *testing.T) {
	onlyNotifications, err := ParseMessages([]byte(`[
		{"jsonrpc":"2.0","method":"notifications/initialized"},
		{"jsonrpc":"2.0","method":"notifications/cancelled"}
	]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if HasRequests(onlyNotifications) {
		t.Error("notification-only batch should not have requests")
	}

	mixed, err := ParseMessages([]byte(`[
		{"jsonrpc":"2.0","method":"notifications/initialized"},
		{"jsonrpc":"2.0","id":5,"method":"tools/list"}
	]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !HasRequests(mixed) {
		t.Error("mixed batch should have requests")
	}
}
