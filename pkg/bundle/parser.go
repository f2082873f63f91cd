// Package bundle はアセットバンドルのインポート（形状判定付きデコード）とエクスポートを扱います。
package bundle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shouni/go-prompt-reel/pkg/domain"

	"github.com/google/uuid"
)

var (
	// ErrMalformedBundle は入力が想定した構造として解析できない場合に返されます。
	ErrMalformedBundle = errors.New("invalid bundle structure")
	// ErrEmptyBundle は構造は正しいがキャラクターもシーンも見つからない場合に返されます。
	ErrEmptyBundle = errors.New("no characters or scenes found")
)

const (
	fieldCharacters = "characters"
	fieldScenes     = "scenes"
	// fieldDetails / fieldDesc は単体レコードの種別を見分けるための判別フィールドです。
	fieldDetails = "details"
	fieldDesc    = "desc"
)

// Result はインポート対象として正規化されたアセットです。
type Result struct {
	Characters []domain.Asset
	Scenes     []domain.Asset
}

// Empty はインポート可能なアセットが1件もないかどうかを返します。
func (r Result) Empty() bool {
	return len(r.Characters) == 0 && len(r.Scenes) == 0
}

// IDGenerator はインポート時に ID を持たないレコードへ ID を採番します。
type IDGenerator func(kind domain.Kind) string

// Parser はバンドルのテキストをアセットに変換します。
type Parser struct {
	newID IDGenerator
}

// NewParser は Parser を生成します。gen が nil の場合は UUID ベースの採番を使います。
func NewParser(gen IDGenerator) *Parser {
	if gen == nil {
		gen = ImportID
	}
	return &Parser{newID: gen}
}

// ImportID は "<C|S>_USER_IMP_<ランダム9文字>" 形式の ID を生成します。
func ImportID(kind domain.Kind) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_USER_IMP_%s", kind.Prefix(), token[:9])
}

// Parse は既定の採番で raw を解析します。
func Parse(raw []byte) (Result, error) {
	return NewParser(nil).Parse(raw)
}

// Parse はバンドルを解析し、キャラクターとシーンに振り分けます。
//
// 1. コレクション: "characters" / "scenes" キーを持つオブジェクト
// 2. 単体レコード: "details" を持てばキャラクター、"desc" を持てばシーン
// 3. 配列: 要素ごとに 2 と同じ判別を行う
//
// どれにも当てはまらない場合は ErrEmptyBundle、JSON として不正な場合は ErrMalformedBundle を返します。
func (p *Parser) Parse(raw []byte) (Result, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Result{}, fmt.Errorf("%w: 入力が空です", ErrMalformedBundle)
	}

	var (
		chars, scenes []json.RawMessage
		err           error
	)
	switch trimmed[0] {
	case '{':
		chars, scenes, err = decodeObject(trimmed)
	case '[':
		chars, scenes, err = decodeArray(trimmed)
	default:
		err = fmt.Errorf("%w: オブジェクトまたは配列ではありません", ErrMalformedBundle)
	}
	if err != nil {
		return Result{}, err
	}

	var res Result
	if res.Characters, err = p.normalize(chars, domain.KindCharacter); err != nil {
		return Result{}, err
	}
	if res.Scenes, err = p.normalize(scenes, domain.KindScene); err != nil {
		return Result{}, err
	}
	if res.Empty() {
		return Result{}, ErrEmptyBundle
	}
	return res, nil
}

// decodeObject はオブジェクト形式の入力をコレクションまたは単体レコードとして解釈します。
func decodeObject(raw []byte) (chars, scenes []json.RawMessage, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedBundle, err)
	}

	if chars, err = pickList(fields, fieldCharacters, fieldDetails, raw); err != nil {
		return nil, nil, err
	}
	if scenes, err = pickList(fields, fieldScenes, fieldDesc, raw); err != nil {
		return nil, nil, err
	}
	return chars, scenes, nil
}

// pickList はコレクションキーを優先し、なければ判別フィールドで単体レコードを検出します。
func pickList(fields map[string]json.RawMessage, listKey, marker string, whole []byte) ([]json.RawMessage, error) {
	if v, ok := fields[listKey]; ok && !isNull(v) {
		var list []json.RawMessage
		if err := json.Unmarshal(v, &list); err != nil {
			return nil, fmt.Errorf("%w: '%s' が配列ではありません", ErrMalformedBundle, listKey)
		}
		return list, nil
	}
	if v, ok := fields[marker]; ok && !isNull(v) {
		return []json.RawMessage{json.RawMessage(whole)}, nil
	}
	return nil, nil
}

// decodeArray は配列の各要素を判別フィールドで振り分けます。
func decodeArray(raw []byte) (chars, scenes []json.RawMessage, err error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedBundle, err)
	}

	for i, item := range items {
		if isNull(item) {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			return nil, nil, fmt.Errorf("%w: %d 番目の要素がオブジェクトではありません", ErrMalformedBundle, i)
		}
		switch {
		case has(fields, fieldDetails):
			chars = append(chars, item)
		case has(fields, fieldDesc):
			scenes = append(scenes, item)
		}
	}
	return chars, scenes, nil
}

// normalize はレコードをデコードし、ID を補完して isCustom を立てます。
func (p *Parser) normalize(items []json.RawMessage, kind domain.Kind) ([]domain.Asset, error) {
	out := make([]domain.Asset, 0, len(items))
	for i, item := range items {
		if isNull(item) {
			continue
		}
		var a domain.Asset
		if err := json.Unmarshal(item, &a); err != nil {
			return nil, fmt.Errorf("%w: %s の %d 番目のレコードを解析できません: %v", ErrMalformedBundle, kind, i, err)
		}
		// ID がある場合はそのまま信頼する（エクスポート済みアセットの再インポートのため）
		if strings.TrimSpace(a.ID) == "" {
			a.ID = p.newID(kind)
		}
		a.IsCustom = true
		out = append(out, a)
	}
	return out, nil
}

func has(fields map[string]json.RawMessage, key string) bool {
	v, ok := fields[key]
	return ok && !isNull(v)
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || string(bytes.TrimSpace(v)) == "null"
}
