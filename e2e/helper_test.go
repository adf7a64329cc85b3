//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brbranch/places_mcp/internal/bootstrap"
	httptransport "github.com/brbranch/places_mcp/internal/transport/http"
)

// testEnv はe2eテスト用の環境一式
type testEnv struct {
	// MCP はMCPサーバーのエンドポイントURL
	MCP string

	// Backend は偽のPlaces APIバックエンド
	Backend *httptest.Server

	// BackendCalls はバックエンドへの呼び出し回数
	BackendCalls int
}

// newTestEnv は偽Places APIバックエンドとMCPサーバーを起動する
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{}

	// "laksa"を含むクエリには2件、それ以外は0件を返す
	env.Backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.BackendCalls++

		if r.Header.Get("X-Goog-Api-Key") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		var req struct {
			TextQuery string `json:"textQuery"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		w.Header().Set("Content-Type", "application/json")
		if !strings.Contains(req.TextQuery, "laksa") {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"places": [
				{
					"displayName": {"text": "328 Katong Laksa"},
					"formattedAddress": "51 East Coast Rd, Singapore",
					"priceLevel": "PRICE_LEVEL_INEXPENSIVE",
					"rating": 4.4
				},
				{
					"displayName": {"text": "Sungei Road Laksa"},
					"formattedAddress": "27 Jalan Berseh, Singapore",
					"rating": 4.3
				}
			]
		}`))
	}))
	t.Cleanup(env.Backend.Close)

	services, cleanup, err := bootstrap.Initialize(context.Background(), bootstrap.Options{
		PlacesBaseURL: env.Backend.URL,
	})
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	t.Cleanup(cleanup)

	server := httptransport.New(services.Dispatcher, services.Sessions, services.Config, httptransport.Config{}, nil)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	env.MCP = ts.URL + "/mcp"
	return env
}

// postJSON はJSONボディをPOSTしてレスポンスを返す
func postJSON(t *testing.T, url, body string, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// decodeBody はレスポンスボディをJSONとしてデコードする
func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
}

// sseDataLines はSSEボディからdata行のペイロードを順に取り出す
func sseDataLines(t *testing.T, body string) []string {
	t.Helper()

	var payloads []string
	for _, line := range strings.Split(body, "\n") {
		if after, ok := strings.CutPrefix(line, "data: "); ok {
			payloads = append(payloads, after)
		}
	}
	return payloads
}
