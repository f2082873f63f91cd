package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-prompt-reel/pkg/asset"
	"github.com/shouni/go-prompt-reel/pkg/bundle"
	"github.com/shouni/go-prompt-reel/pkg/domain"
)

// ErrExportSink は出力先への書き出しに失敗したことを示します。
// 自動での再試行は行わず、呼び出し側に一時的なエラーとして伝えます。
var ErrExportSink = errors.New("出力先への書き出しに失敗しました")

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// ReelPublisher はスクリプトやバンドルなどの成果物の書き出しを担います。
type ReelPublisher struct {
	writer OutputWriter
	opts   Options
	now    func() time.Time
}

// NewReelPublisher は ReelPublisher を生成します。writer が nil の場合はローカルに書き出します。
func NewReelPublisher(writer OutputWriter, opts Options) *ReelPublisher {
	if writer == nil {
		writer = NewLocalWriter()
	}
	return &ReelPublisher{
		writer: writer,
		opts:   opts,
		now:    time.Now,
	}
}

// WithClock は時刻の取得関数を差し替えた ReelPublisher を返します。
func (p *ReelPublisher) WithClock(now func() time.Time) *ReelPublisher {
	cp := *p
	cp.now = now
	return &cp
}

// PublishScript は整形済みのプロンプトをテキストファイルとして書き出し、そのパスを返します。
func (p *ReelPublisher) PublishScript(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("書き出すスクリプトが空です")
	}
	return p.publish(ctx, asset.ScriptFileName(p.now()), []byte(text), contentTypeText)
}

// PublishBundle はエクスポート対象のアセットをバンドルとして書き出し、そのパスを返します。
func (p *ReelPublisher) PublishBundle(ctx context.Context, characters, scenes []domain.Asset) (string, bundle.Bundle, error) {
	now := p.now()
	b := bundle.NewBundle(characters, scenes, now)
	data, err := bundle.MarshalBundle(b)
	if err != nil {
		return "", b, fmt.Errorf("バンドルのエンコードに失敗しました: %w", err)
	}
	path, err := p.publish(ctx, asset.BackupFileName(now), data, contentTypeJSON)
	return path, b, err
}

// PublishCard は単体アセットをカードとして書き出し、そのパスを返します。
func (p *ReelPublisher) PublishCard(ctx context.Context, kind domain.Kind, a domain.Asset) (string, error) {
	data, err := bundle.MarshalCard(kind, a, p.now())
	if err != nil {
		return "", fmt.Errorf("カードのエンコードに失敗しました: %w", err)
	}
	return p.publish(ctx, asset.CardFileName(a.Name), data, contentTypeJSON)
}

func (p *ReelPublisher) publish(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	path, err := asset.ResolveOutputPath(p.opts.OutputDir, fileName)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, path, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExportSink, path, err)
	}
	slog.InfoContext(ctx, "ファイルを書き出しました", "path", path, "bytes", len(data))
	return path, nil
}
