package asset

import (
	"testing"
	"time"
)

func TestFileNames(t *testing.T) {
	now := time.Date(2026, 10, 17, 23, 30, 0, 0, time.FixedZone("JST", 9*60*60))

	script := ScriptFileName(now)
	if script != "REEL_SCRIPT_1792247400000.txt" {
		t.Errorf("スクリプト名: %s", script)
	}
	if !ScriptFileRegex.MatchString(script) {
		t.Errorf("ScriptFileRegex に一致しません: %s", script)
	}

	backup := BackupFileName(now)
	if backup != "REEL_BACKUP_2026-10-17.json" {
		t.Errorf("バックアップ名: %s", backup)
	}
	if !BackupFileRegex.MatchString(backup) {
		t.Errorf("BackupFileRegex に一致しません: %s", backup)
	}
}

func TestCardFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Neo Tokyo  Loft", "Neo_Tokyo_Loft_Card.json"},
		{"Rae", "Rae_Card.json"},
		{"  ", "Untitled_Card.json"},
		{"a/b", "a_b_Card.json"},
	}
	for _, tt := range tests {
		if got := CardFileName(tt.name); got != tt.want {
			t.Errorf("CardFileName(%q): 期待値 %s, 実際の値 %s", tt.name, tt.want, got)
		}
	}
}
