package model

// Place は検索結果1件分のレストラン情報
// 全フィールドは文字列化済み（価格帯・評価も含む）
type Place struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	PriceLevel string `json:"price_level"`
	Rating     string `json:"rating"`
}
