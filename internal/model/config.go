package model

// ConfigMap はプロセス設定のネストしたマッピング
// リーフは常にstring、中間はConfigMap（型変換なし）
type ConfigMap map[string]any

// Clone はConfigMapのディープコピーを返す
// セッション作成時のスナップショットに使用
func (c ConfigMap) Clone() ConfigMap {
	if c == nil {
		return ConfigMap{}
	}
	out := make(ConfigMap, len(c))
	for k, v := range c {
		if nested, ok := v.(ConfigMap); ok {
			out[k] = nested.Clone()
			continue
		}
		out[k] = v
	}
	return out
}

// GetString はパスを辿ってリーフの文字列値を取得する
// パスの途中が存在しない・リーフが文字列でない場合は空文字を返す
func (c ConfigMap) GetString(path ...string) string {
	if len(path) == 0 {
		return ""
	}
	current := c
	for _, key := range path[:len(path)-1] {
		nested, ok := current[key].(ConfigMap)
		if !ok {
			return ""
		}
		current = nested
	}
	value, _ := current[path[len(path)-1]].(string)
	return value
}
