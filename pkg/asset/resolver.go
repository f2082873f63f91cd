package asset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// ScriptFilePrefix はプレーンテキストのスクリプトファイル名の接頭辞です。
	ScriptFilePrefix = "REEL_SCRIPT_"
	// BackupFilePrefix はカタログ全体のバックアップファイル名の接頭辞です。
	BackupFilePrefix = "REEL_BACKUP_"
	// CardFileSuffix は単体アセットのカードファイル名の接尾辞です。
	CardFileSuffix = "_Card.json"
	// DefaultCardName はアセット名が空の場合に使うカード名です。
	DefaultCardName = "Untitled"

	backupDateLayout = "2006-01-02"
)

var (
	// ScriptFileRegex はスクリプトファイル (REEL_SCRIPT_1700000000000.txt 等) に一致します
	ScriptFileRegex = createStampedRegex(ScriptFilePrefix, `\d+`, ".txt")
	// BackupFileRegex はバックアップファイル (REEL_BACKUP_2026-10-17.json 等) に一致します
	BackupFileRegex = createStampedRegex(BackupFilePrefix, `\d{4}-\d{2}-\d{2}`, ".json")

	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ScriptFileName は now のミリ秒タイムスタンプを含むスクリプトファイル名を返します。
func ScriptFileName(now time.Time) string {
	return fmt.Sprintf("%s%d.txt", ScriptFilePrefix, now.UnixMilli())
}

// BackupFileName は now の日付 (UTC) を含むバックアップファイル名を返します。
func BackupFileName(now time.Time) string {
	return BackupFilePrefix + now.UTC().Format(backupDateLayout) + ".json"
}

// CardFileName はアセット名の空白をアンダースコアに置き換えたカードファイル名を返します。
// 例: "Neo Tokyo Loft" -> "Neo_Tokyo_Loft_Card.json"
func CardFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultCardName
	}
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	return whitespaceRegex.ReplaceAllString(name, "_") + CardFileSuffix
}

// createStampedRegex は、接頭辞・スタンプ部分・拡張子からファイル名用の正規表現を生成します。
func createStampedRegex(prefix, stamp, ext string) *regexp.Regexp {
	pattern := fmt.Sprintf(`^%s%s%s$`, regexp.QuoteMeta(prefix), stamp, regexp.QuoteMeta(ext))
	return regexp.MustCompile(pattern)
}
