package config

import (
	"net/url"
	"strings"

	"github.com/brbranch/places_mcp/internal/model"
)

// ParseQuery はURLクエリ文字列をドット記法でネストしたConfigMapに変換する
//
// 例: "apiKey=abc123&server.port=8080" は
// {"apiKey": "abc123", "server": {"port": "8080"}} になる
//
// 型変換は行わない（リーフは常に文字列）。同じキーが複数回現れた場合は
// 最初の値を採用する。空文字列は空のConfigMapを返す
func ParseQuery(rawQuery string) (model.ConfigMap, error) {
	out := model.ConfigMap{}
	if rawQuery == "" {
		return out, nil
	}

	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}

	for key, values := range params {
		// 値なしパラメータ（"key=" や "key"）は無視する
		if key == "" || len(values) == 0 || values[0] == "" {
			continue
		}
		setPath(out, strings.Split(key, "."), values[0])
	}

	return out, nil
}

// setPath はドット分割済みのパスに値を設定する
// 中間ノードが存在しない、またはConfigMapでない場合は新しいマップで置き換える
func setPath(m model.ConfigMap, path []string, value string) {
	current := m
	for _, key := range path[:len(path)-1] {
		nested, ok := current[key].(model.ConfigMap)
		if !ok {
			nested = model.ConfigMap{}
			current[key] = nested
		}
		current = nested
	}
	current[path[len(path)-1]] = value
}
