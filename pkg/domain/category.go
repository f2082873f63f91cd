package domain

import (
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// CategoryAll はフィルタなしを表す合成カテゴリです。
	CategoryAll = "ALL"
	// CategoryUser はユーザー作成アセットのカテゴリです。
	CategoryUser = "USER"
	// CategoryOther はどのルールにも当てはまらない場合のカテゴリです。
	CategoryOther = "OTHER"
)

// PresetCategoryOrder は一覧表示で常に先頭に並ぶカテゴリの順序です。
var PresetCategoryOrder = []string{CategoryAll, "CORP", "LIFE", "TECH", "LUXE", "UTIL", "VOID"}

var categoryLabels = map[string]string{
	CategoryAll:  "All",
	CategoryUser: "Custom",
	"STUDIO":     "Studio",
	"TECH":       "Tech",
	"LIFE":       "Life",
	"LUXE":       "Luxe",
	"UTIL":       "Util",
	"HORROR":     "Horror",
	"CORP":       "Corp",
	"ARMY":       "Army",
	"NAVY":       "Navy",
	"AGENCY":     "Agency",
	"ROMAN":      "Roman",
	"FANTASY":    "Fantasy",
	"VOID":       "Void",
}

// categoryRule は1つの分類ルールです。判定できた場合は true を返します。
type categoryRule func(a *Asset) (string, bool)

// categoryRules は優先順に評価されます。
var categoryRules = []categoryRule{
	explicitCategory,
	userAuthoredCategory,
	idTokenCategory,
}

// Classify はアセットのカテゴリコードを導出します。nil は OTHER になります。
func Classify(a *Asset) string {
	if a == nil {
		return CategoryOther
	}
	for _, rule := range categoryRules {
		if code, ok := rule(a); ok {
			return code
		}
	}
	return CategoryOther
}

func explicitCategory(a *Asset) (string, bool) {
	c := strings.TrimSpace(a.Category)
	if c == "" {
		return "", false
	}
	return strings.ToUpper(c), true
}

func userAuthoredCategory(a *Asset) (string, bool) {
	return CategoryUser, strings.Contains(a.ID, "USER")
}

// idTokenCategory は "S_TECH_042" のような ID の2番目のトークンを返します。
func idTokenCategory(a *Asset) (string, bool) {
	parts := strings.Split(a.ID, "_")
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// SortCategories はプリセット順を優先し、残りをアルファベット順に並べ替えます。
func SortCategories(codes []string) {
	slices.SortStableFunc(codes, func(a, b string) int {
		ia := slices.Index(PresetCategoryOrder, a)
		ib := slices.Index(PresetCategoryOrder, b)
		switch {
		case ia != -1 && ib != -1:
			return ia - ib
		case ia != -1:
			return -1
		case ib != -1:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})
}

// AvailableCategories はコレクションに現れるカテゴリを ALL 付きで重複なく返します。
func AvailableCategories(assets []Asset) []string {
	codes := []string{CategoryAll}
	seen := map[string]struct{}{CategoryAll: {}}
	for i := range assets {
		if assets[i].IsEmpty() {
			continue
		}
		code := Classify(&assets[i])
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	SortCategories(codes)
	return codes
}

// FilterByCategory は指定カテゴリのアセットだけを返します。ALL は空エントリ以外すべてです。
func FilterByCategory(assets []Asset, code string) []Asset {
	code = strings.ToUpper(strings.TrimSpace(code))
	out := make([]Asset, 0, len(assets))
	for i := range assets {
		if assets[i].IsEmpty() {
			continue
		}
		if code == "" || code == CategoryAll || Classify(&assets[i]) == code {
			out = append(out, assets[i])
		}
	}
	return out
}

// CategoryLabel は表示用ラベルを返します。未知のコードは先頭の1文字だけを大文字にし、残りは小文字にします。
func CategoryLabel(code string) string {
	if label, ok := categoryLabels[code]; ok {
		return label
	}
	if code == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(code)
	return cases.Upper(language.Und).String(string(first)) + cases.Lower(language.Und).String(code[size:])
}
