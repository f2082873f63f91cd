package domain

import (
	"fmt"
	"strings"
)

// Kind はアセットの種別（キャラクター / シーン）を表します。
type Kind string

const (
	KindCharacter Kind = "character"
	KindScene     Kind = "scene"
)

// Prefix は ID 生成に使うアセット種別のプレフィックスを返します。
func (k Kind) Prefix() string {
	switch k {
	case KindCharacter:
		return "C"
	case KindScene:
		return "S"
	default:
		return ""
	}
}

// ParseKind は CLI 等から渡された文字列を Kind に変換します。複数形も受け付けます。
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "character", "characters", "char", "cast":
		return KindCharacter, nil
	case "scene", "scenes":
		return KindScene, nil
	default:
		return "", fmt.Errorf("不明なアセット種別です: '%s'", s)
	}
}

// Asset はキャラクターまたはシーンの定義を保持します。
// キャラクターは Details / Outfit / RefURL を、シーンは Desc / Lighting を使います。
type Asset struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Details  string `json:"details,omitempty"`  // キャラクターの外見・人物描写
	Desc     string `json:"desc,omitempty"`     // シーンの描写
	Outfit   string `json:"outfit,omitempty"`   // キャラクターの衣装
	RefURL   string `json:"refUrl,omitempty"`   // 一貫性保持のための参照画像URL
	Lighting string `json:"lighting,omitempty"` // シーンのライティング
	IsCustom bool   `json:"isCustom,omitempty"`
}

// IsEmpty は ID を持たない（カタログに載せられない）アセットかどうかを返します。
func (a Asset) IsEmpty() bool {
	return strings.TrimSpace(a.ID) == ""
}

// String はアセットの情報を文字列で返します。
func (a Asset) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

// Clone は Selection 等に保持するためのコピーをポインタで返します。
func (a Asset) Clone() *Asset {
	c := a
	return &c
}

// IDs はアセットのスライスから ID のみを抽出します。
func IDs(assets []Asset) []string {
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	return ids
}
