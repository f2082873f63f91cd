package bundle

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shouni/go-prompt-reel/pkg/domain"
)

const (
	// FormatBundle はコレクションバンドルのフォーマットタグです。
	FormatBundle = "REEL_BUNDLE"
	// FormatCharacterCard / FormatSceneCard は単体アセットのフォーマットタグです。
	FormatCharacterCard = "REEL_CHARACTER_CARD"
	FormatSceneCard     = "REEL_SCENE_CARD"
)

// Bundle はカスタムアセットのバックアップ形式です。
type Bundle struct {
	ExportDate string         `json:"export_date"`
	Format     string         `json:"format"`
	Characters []domain.Asset `json:"characters"`
	Scenes     []domain.Asset `json:"scenes"`
}

// Meta は単体カードに付与されるエクスポート情報です。
type Meta struct {
	Created string `json:"created"`
	Type    string `json:"type"`
}

// characterCard は判別フィールド details を常に出力するキャラクター用のカードです。
type characterCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Details  string `json:"details"`
	Outfit   string `json:"outfit,omitempty"`
	RefURL   string `json:"refUrl,omitempty"`
	IsCustom bool   `json:"isCustom,omitempty"`
	Meta     Meta   `json:"meta"`
}

// sceneCard は判別フィールド desc を常に出力するシーン用のカードです。
type sceneCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Desc     string `json:"desc"`
	Lighting string `json:"lighting,omitempty"`
	IsCustom bool   `json:"isCustom,omitempty"`
	Meta     Meta   `json:"meta"`
}

// IsExportable はバックアップ対象（ユーザー作成・インポート済み）のアセットかどうかを判定します。
func IsExportable(a domain.Asset) bool {
	return a.IsCustom || strings.Contains(a.ID, "USER") || strings.Contains(a.ID, "IMP")
}

func exportable(list []domain.Asset) []domain.Asset {
	out := make([]domain.Asset, 0, len(list))
	for _, a := range list {
		if !a.IsEmpty() && IsExportable(a) {
			out = append(out, a)
		}
	}
	return out
}

// NewBundle は実効カタログからカスタムアセットだけを抜き出したバンドルを作ります。
func NewBundle(characters, scenes []domain.Asset, now time.Time) Bundle {
	return Bundle{
		ExportDate: now.UTC().Format(time.RFC3339),
		Format:     FormatBundle,
		Characters: exportable(characters),
		Scenes:     exportable(scenes),
	}
}

// MarshalBundle はバンドルを整形済み JSON にします。
func MarshalBundle(b Bundle) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("バンドルのエンコードに失敗しました: %w", err)
	}
	return data, nil
}

// MarshalCard は単体アセットを再インポート可能なカード JSON にします。
func MarshalCard(kind domain.Kind, a domain.Asset, now time.Time) ([]byte, error) {
	created := now.UTC().Format(time.RFC3339)

	var doc any
	switch kind {
	case domain.KindCharacter:
		doc = characterCard{
			ID: a.ID, Name: a.Name, Category: a.Category, Details: a.Details,
			Outfit: a.Outfit, RefURL: a.RefURL, IsCustom: a.IsCustom,
			Meta: Meta{Created: created, Type: FormatCharacterCard},
		}
	case domain.KindScene:
		doc = sceneCard{
			ID: a.ID, Name: a.Name, Category: a.Category, Desc: a.Desc,
			Lighting: a.Lighting, IsCustom: a.IsCustom,
			Meta: Meta{Created: created, Type: FormatSceneCard},
		}
	default:
		return nil, fmt.Errorf("カードを作成できない種別です: '%s'", kind)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("カードのエンコードに失敗しました: %w", err)
	}
	return data, nil
}
