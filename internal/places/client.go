// Package places implements the Google Places API (New) text search client.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/brbranch/places_mcp/internal/model"
)

const (
	// DefaultBaseURL はPlaces API (New) のベースURL
	DefaultBaseURL = "https://places.googleapis.com"

	// DefaultTimeout は外部検索呼び出しのタイムアウト
	// タイムアウト・ネットワーク障害時は即座にエラーを返す（リクエストを止めない）
	DefaultTimeout = 10 * time.Second

	// maxResultCount は1回の検索で取得する最大件数
	maxResultCount = 10

	// fieldMask は取得するフィールドの指定
	fieldMask = "places.displayName,places.formattedAddress,places.priceLevel,places.rating"
)

// Client はPlaces APIクライアント
type Client struct {
	httpClient *http.Client
	baseURL    string
	region     string
}

// Option はClientのオプション
type Option func(*Client)

// WithBaseURL はベースURLを設定（テスト用）
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient はHTTPクライアントを設定
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRegion は検索クエリに付加する地域名を設定
func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

// NewClient は新しいClientを作成
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		region:     "Singapore",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchTextRequest はPlaces APIリクエストの構造
type searchTextRequest struct {
	TextQuery      string `json:"textQuery"`
	MaxResultCount int    `json:"maxResultCount"`
}

// searchTextResponse はPlaces APIレスポンスの構造
type searchTextResponse struct {
	Places []placeData `json:"places"`
}

type placeData struct {
	DisplayName      *displayName `json:"displayName"`
	FormattedAddress string       `json:"formattedAddress"`
	PriceLevel       string       `json:"priceLevel"`
	Rating           *float64     `json:"rating"`
}

type displayName struct {
	Text string `json:"text"`
}

// SearchText はテキストクエリでレストランを検索する
// クエリには地域名（デフォルト "Singapore"）を付加する
// 結果0件は空スライス・エラーなしで返す
func (c *Client) SearchText(ctx context.Context, query, apiKey string) ([]model.Place, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	reqBody := searchTextRequest{
		TextQuery:      fmt.Sprintf("%s in %s", query, c.region),
		MaxResultCount: maxResultCount,
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	url := c.baseURL + "/v1/places:searchText"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// context.Canceledやcontext.DeadlineExceededはそのまま返す
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	var searchResp searchTextResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	results := make([]model.Place, 0, len(searchResp.Places))
	for _, p := range searchResp.Places {
		results = append(results, model.Place{
			Name:       nameOrDefault(p.DisplayName),
			Address:    stringOrDefault(p.FormattedAddress, "No address"),
			PriceLevel: stringOrDefault(p.PriceLevel, "Unknown"),
			Rating:     ratingOrDefault(p.Rating),
		})
	}

	return results, nil
}

// nameOrDefault は表示名を取得する（欠損時 "Unknown"）
func nameOrDefault(d *displayName) string {
	if d == nil || d.Text == "" {
		return "Unknown"
	}
	return d.Text
}

// stringOrDefault は空文字の場合にフォールバック値を返す
func stringOrDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ratingOrDefault は評価を文字列化する（欠損時 "No rating"）
func ratingOrDefault(r *float64) string {
	if r == nil {
		return "No rating"
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}
