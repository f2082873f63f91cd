package bundle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-prompt-reel/pkg/domain"
)

// Merger はカタログへのマージ操作の契約です。catalog.Store が満たします。
type Merger interface {
	MergeAndPersist(ctx context.Context, kind domain.Kind, items []domain.Asset) (int, error)
}

// Report はインポート結果の件数です。
// Characters / Scenes は処理件数、Added* は既存と重複せず実際に追加された件数です。
type Report struct {
	Characters      int
	Scenes          int
	AddedCharacters int
	AddedScenes     int
}

// Importer はバンドルを解析してカタログにマージします。
type Importer struct {
	parser *Parser
	merger Merger
}

// NewImporter は Importer を生成します。
func NewImporter(parser *Parser, merger Merger) (*Importer, error) {
	if merger == nil {
		return nil, fmt.Errorf("Merger は必須です")
	}
	if parser == nil {
		parser = NewParser(nil)
	}
	return &Importer{parser: parser, merger: merger}, nil
}

// Import は raw を解析し、種別ごとに1回ずつマージします。
// 解析に失敗した場合（ErrMalformedBundle / ErrEmptyBundle）はカタログを変更しません。
func (im *Importer) Import(ctx context.Context, raw []byte) (Report, error) {
	res, err := im.parser.Parse(raw)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Characters: len(res.Characters), Scenes: len(res.Scenes)}
	if len(res.Characters) > 0 {
		if rep.AddedCharacters, err = im.merger.MergeAndPersist(ctx, domain.KindCharacter, res.Characters); err != nil {
			return rep, fmt.Errorf("キャラクターのマージに失敗しました: %w", err)
		}
	}
	if len(res.Scenes) > 0 {
		if rep.AddedScenes, err = im.merger.MergeAndPersist(ctx, domain.KindScene, res.Scenes); err != nil {
			return rep, fmt.Errorf("シーンのマージに失敗しました: %w", err)
		}
	}

	slog.InfoContext(ctx, "バンドルをインポートしました",
		"characters", rep.Characters,
		"scenes", rep.Scenes,
		"added_characters", rep.AddedCharacters,
		"added_scenes", rep.AddedScenes)
	return rep, nil
}
