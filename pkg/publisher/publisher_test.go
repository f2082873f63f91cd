package publisher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-prompt-reel/pkg/bundle"
	"github.com/shouni/go-prompt-reel/pkg/domain"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func newTestPublisher(t *testing.T, w OutputWriter) (*ReelPublisher, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "out")
	p := NewReelPublisher(w, Options{OutputDir: dir}).WithClock(func() time.Time { return fixedNow })
	return p, dir
}

func TestPublishScript(t *testing.T) {
	ctx := context.Background()
	p, dir := newTestPublisher(t, nil)

	path, err := p.PublishScript(ctx, "Rae (courier). --seed 42")
	if err != nil {
		t.Fatalf("PublishScript失敗: %v", err)
	}
	want := filepath.Join(dir, "REEL_SCRIPT_1792227600000.txt")
	if path != want {
		t.Errorf("期待値 %s, 実際の値 %s", want, path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "Rae (courier). --seed 42" {
		t.Errorf("内容が一致しません: %q err=%v", data, err)
	}

	if _, err := p.PublishScript(ctx, "   "); err == nil {
		t.Error("空のスクリプトはエラーになるべきです")
	}
}

func TestPublishBundleAndCard(t *testing.T) {
	ctx := context.Background()
	p, dir := newTestPublisher(t, nil)

	custom := domain.Asset{ID: "C_USER_1", Name: "Night Rae", Details: "courier", IsCustom: true}
	builtin := domain.Asset{ID: "C_TECH_01", Name: "Exec", Details: "suit"}

	path, b, err := p.PublishBundle(ctx, []domain.Asset{custom, builtin}, nil)
	if err != nil {
		t.Fatalf("PublishBundle失敗: %v", err)
	}
	if filepath.Base(path) != "REEL_BACKUP_2026-10-17.json" {
		t.Errorf("ファイル名が不正です: %s", path)
	}
	if len(b.Characters) != 1 {
		t.Errorf("組み込みアセットは除外されるべきです: %+v", b.Characters)
	}
	raw, _ := os.ReadFile(path)
	res, err := bundle.Parse(raw)
	if err != nil || !reflect.DeepEqual(res.Characters, []domain.Asset{custom}) {
		t.Errorf("バンドルを再インポートできません: %+v err=%v", res, err)
	}

	cardPath, err := p.PublishCard(ctx, domain.KindCharacter, custom)
	if err != nil {
		t.Fatalf("PublishCard失敗: %v", err)
	}
	if cardPath != filepath.Join(dir, "Night_Rae_Card.json") {
		t.Errorf("カードのパスが不正です: %s", cardPath)
	}
}

type failingWriter struct{}

func (failingWriter) Write(context.Context, string, io.Reader, string) error {
	return errors.New("disk full")
}

func TestPublish_SinkError(t *testing.T) {
	p, _ := newTestPublisher(t, failingWriter{})
	_, err := p.PublishScript(context.Background(), "text")
	if !errors.Is(err, ErrExportSink) {
		t.Errorf("ErrExportSink を期待しましたが %v", err)
	}
}

func TestLocalWriter_Overwrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a", "b.txt")
	w := NewLocalWriter()

	for _, content := range []string{"first", "second"} {
		if err := w.Write(ctx, path, strings.NewReader(content), contentTypeText); err != nil {
			t.Fatalf("Write失敗: %v", err)
		}
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("上書きされていません: %q", data)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("一時ファイルが残っています: %v", entries)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := w.Write(cancelled, path, strings.NewReader("x"), contentTypeText); !errors.Is(err, context.Canceled) {
		t.Errorf("キャンセル済みのコンテキストではエラーになるべきです: %v", err)
	}
}
