package config

import "os"

// 環境変数名の定数
const (
	EnvGooglePlacesAPIKey = "GOOGLE_PLACES_API_KEY"
	EnvPort               = "PORT"
)

// ResolveAPIKey はGoogle Places APIキーを解決する
// クエリ設定の "apiKey" を優先し、なければ環境変数を使用
func ResolveAPIKey(store *Store) string {
	if key := store.GetString("apiKey"); key != "" {
		return key
	}
	return os.Getenv(EnvGooglePlacesAPIKey)
}

// PortFromEnv は環境変数PORTの値を返す（未設定なら空文字）
func PortFromEnv() string {
	return os.Getenv(EnvPort)
}
