package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	defaultAuthoringCategory = "LIFE"
	defaultCharacterName     = "Unnamed Talent"
	defaultCharacterOutfit   = "As described in casting sheet"
	defaultSceneName         = "Unnamed Location"
	defaultSceneType         = "Interior"
	defaultSceneLighting     = "Natural ambient"
)

// CharacterForm はキャスティングシートの入力項目です。
type CharacterForm struct {
	Name       string
	Category   string
	Age        string
	Gender     string
	Ethnicity  string
	FaceShape  string
	NoseShape  string
	Eyes       string
	Hair       string
	Skin       string
	Outfit     string
	Expression string
	RefURL     string

	// Bio が空でない場合は自動生成のプロフィール文の代わりに使われます。
	Bio string
}

// SceneForm はシーンビルダーの入力項目です。
type SceneForm struct {
	Name       string
	Category   string
	Type       string // Interior / Exterior / Studio / Void など
	Location   string
	Lighting   string
	Atmosphere string
	Specs      string

	// Desc が空でない場合は自動生成の描写文の代わりに使われます。
	Desc string
}

// orPlaceholder は未入力の項目をプレースホルダに置き換えます。
func orPlaceholder(v, placeholder string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return placeholder
}

// Biography はフォームの項目からキャラクターのプロフィール文を組み立てます。
func (f CharacterForm) Biography() string {
	if s := strings.TrimSpace(f.Bio); s != "" {
		return s
	}
	return fmt.Sprintf("Subject is a %s year old %s, %s. Features include a %s face and a %s nose, paired with %s eyes and %s. Skin texture is %s. Wardrobe consists of %s. Expression is %s.",
		orPlaceholder(f.Age, "[Age]"),
		orPlaceholder(f.Gender, "[Gender]"),
		orPlaceholder(f.Ethnicity, "[Ethnicity]"),
		orPlaceholder(f.FaceShape, "[Face Shape]"),
		orPlaceholder(f.NoseShape, "[Nose Shape]"),
		orPlaceholder(f.Eyes, "[Eye Detail]"),
		orPlaceholder(f.Hair, "[Hair Detail]"),
		orPlaceholder(f.Skin, "[Skin Detail]"),
		orPlaceholder(f.Outfit, "[Outfit Detail]"),
		orPlaceholder(f.Expression, "[Expression Detail]"),
	)
}

// Description はフォームの項目からシーンの描写文を組み立てます。
func (f SceneForm) Description() string {
	if s := strings.TrimSpace(f.Desc); s != "" {
		return s
	}
	return fmt.Sprintf("%s Location: %s. The atmosphere is %s. Technical Specs: Shot on %s.",
		orPlaceholder(f.Type, defaultSceneType),
		orPlaceholder(f.Location, "[Location details]"),
		orPlaceholder(f.Atmosphere, "[Vibe]"),
		orPlaceholder(f.Specs, "[Lens/Camera info]"),
	)
}

// UserAssetID は作成時刻からユーザー作成アセットの ID を生成します。
func UserAssetID(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s_USER_%d", kind.Prefix(), now.UnixMilli())
}

// NewCharacter はキャスティングシートからカスタムキャラクターを生成します。
func NewCharacter(f CharacterForm, now time.Time) Asset {
	return Asset{
		ID:       UserAssetID(KindCharacter, now),
		Name:     orPlaceholder(f.Name, defaultCharacterName),
		Category: strings.ToUpper(orPlaceholder(f.Category, defaultAuthoringCategory)),
		Details:  f.Biography(),
		Outfit:   orPlaceholder(f.Outfit, defaultCharacterOutfit),
		RefURL:   strings.TrimSpace(f.RefURL),
		IsCustom: true,
	}
}

// NewScene はシーンビルダーの入力からカスタムシーンを生成します。
func NewScene(f SceneForm, now time.Time) Asset {
	return Asset{
		ID:       UserAssetID(KindScene, now),
		Name:     orPlaceholder(f.Name, defaultSceneName),
		Category: strings.ToUpper(orPlaceholder(f.Category, defaultAuthoringCategory)),
		Desc:     f.Description(),
		Lighting: orPlaceholder(f.Lighting, defaultSceneLighting),
		IsCustom: true,
	}
}
