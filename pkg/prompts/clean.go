package prompts

import (
	"regexp"
	"strings"
)

var (
	// emptyActionRegex は名前も説明もない "ACTION: ()." の残骸に一致します。
	emptyActionRegex = regexp.MustCompile(`ACTION:\s*\(\s*\)\.?`)
	// sectionLabelRegex はセクションラベルに一致します。
	sectionLabelRegex = regexp.MustCompile(`\b(?:SUBJECT|ENSEMBLE|ACTION|SCENE|CINEMATOGRAPHY):`)
	whitespaceRegex   = regexp.MustCompile(`\s+`)
)

// CleanScript はエクスポート用にテキストを整えます。
// エンジンのプレフィックス、空の ACTION 行、セクションラベルを取り除き、空白を1つにまとめます。
// 画面表示用のテキストには適用しません。
func CleanScript(text string, markers []string) string {
	for _, m := range markers {
		if m = strings.TrimSpace(m); m != "" {
			text = strings.ReplaceAll(text, m, " ")
		}
	}
	text = emptyActionRegex.ReplaceAllString(text, " ")
	text = sectionLabelRegex.ReplaceAllString(text, " ")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
