package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/shouni/go-prompt-reel/pkg/config"
	"github.com/shouni/go-prompt-reel/pkg/domain"
	"github.com/shouni/go-prompt-reel/pkg/storage"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownKind は未知のアセット種別が指定された場合に返されます。
var ErrUnknownKind = errors.New("unknown asset kind")

// Store は組み込みアセットとカスタムアセットを保持するカタログです。
// カスタムアセットだけが変更・永続化され、組み込みアセットはプロセス中不変です。
// 単一のイベントループから使うことを前提としており、並行呼び出しには対応しません。
type Store struct {
	kv storage.Store

	builtinCharacters []domain.Asset
	builtinScenes     []domain.Asset

	customCharacters []domain.Asset
	customScenes     []domain.Asset

	// characters / scenes は custom ++ builtin から導出される実効カタログです。
	characters []domain.Asset
	scenes     []domain.Asset

	index *cache.Cache
}

// NewStore は永続ストアと組み込みアセットから Store を生成します。
// カスタムアセットは Load を呼ぶまで空です。
func NewStore(kv storage.Store, builtinCharacters, builtinScenes []domain.Asset) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("storage.Store は必須です")
	}
	s := &Store{
		kv:                kv,
		builtinCharacters: slices.Clone(builtinCharacters),
		builtinScenes:     slices.Clone(builtinScenes),
		index:             cache.New(cache.NoExpiration, 0),
	}
	s.recompute()
	return s, nil
}

// storageKey はアセット種別に対応する永続ストレージのキーを返します。
func storageKey(kind domain.Kind) (string, error) {
	switch kind {
	case domain.KindCharacter:
		return config.KeyCustomCharacters, nil
	case domain.KindScene:
		return config.KeyCustomScenes, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownKind, kind)
	}
}

// Load は永続ストアから両方のカスタムリストを読み込みます。
// 値が存在しない・壊れている場合は空リストとして扱い、警告ログだけを残します。
func (s *Store) Load(ctx context.Context) error {
	var chars, scenes []domain.Asset

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		chars = s.readCustom(egCtx, domain.KindCharacter)
		return egCtx.Err()
	})
	eg.Go(func() error {
		scenes = s.readCustom(egCtx, domain.KindScene)
		return egCtx.Err()
	})
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("カスタムアセットの読み込みが中断されました: %w", err)
	}

	s.customCharacters = chars
	s.customScenes = scenes
	s.recompute()

	slog.DebugContext(ctx, "カスタムアセットを読み込みました",
		"characters", len(chars),
		"scenes", len(scenes))
	return nil
}

// readCustom は1種別分のカスタムリストを読み込みます。失敗時は空リストを返します。
func (s *Store) readCustom(ctx context.Context, kind domain.Kind) []domain.Asset {
	key, _ := storageKey(kind)

	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "永続ストレージの読み込みに失敗したため空リストで続行します", "key", key, "error", err)
		return []domain.Asset{}
	}
	if !ok {
		return []domain.Asset{}
	}

	var list []domain.Asset
	if err := json.Unmarshal(raw, &list); err != nil {
		slog.WarnContext(ctx, "永続データが壊れているため空リストで続行します", "key", key, "error", err)
		return []domain.Asset{}
	}
	if list == nil {
		list = []domain.Asset{}
	}
	return list
}

// MergeAndPersist は items をカスタムリストにマージし、変更があれば永続化します。
// 追加された（本当に新しい）件数を返します。書き込みに失敗した場合は状態を変更しません。
func (s *Store) MergeAndPersist(ctx context.Context, kind domain.Kind, items []domain.Asset) (int, error) {
	key, err := storageKey(kind)
	if err != nil {
		return 0, err
	}

	current := s.custom(kind)
	merged := MergeCustom(current, items)
	added := len(merged) - len(current)
	if added == 0 {
		return 0, nil
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return 0, fmt.Errorf("カスタムアセットのエンコードに失敗しました: %w", err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return 0, fmt.Errorf("カスタムアセットの保存に失敗しました: %w", err)
	}

	if kind == domain.KindCharacter {
		s.customCharacters = merged
	} else {
		s.customScenes = merged
	}
	s.recompute()

	slog.InfoContext(ctx, "カスタムアセットを保存しました", "kind", kind, "added", added, "total", len(merged))
	return added, nil
}

// Add はフォームから作成された1件のアセットを追加します。
func (s *Store) Add(ctx context.Context, kind domain.Kind, asset domain.Asset) (bool, error) {
	added, err := s.MergeAndPersist(ctx, kind, []domain.Asset{asset})
	return added > 0, err
}

// FactoryReset は永続ストアを全消去し、カスタムリストを空にします。
func (s *Store) FactoryReset(ctx context.Context) error {
	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("ファクトリーリセットに失敗しました: %w", err)
	}
	s.customCharacters = []domain.Asset{}
	s.customScenes = []domain.Asset{}
	s.recompute()
	slog.InfoContext(ctx, "すべてのカスタムアセットを削除しました")
	return nil
}

// recompute は実効カタログと ID インデックスを作り直します。
func (s *Store) recompute() {
	s.characters = dedupedConcat(s.customCharacters, s.builtinCharacters)
	s.scenes = dedupedConcat(s.customScenes, s.builtinScenes)

	s.index.Flush()
	for _, a := range s.characters {
		s.index.Set(indexKey(domain.KindCharacter, a.ID), a, cache.NoExpiration)
	}
	for _, a := range s.scenes {
		s.index.Set(indexKey(domain.KindScene, a.ID), a, cache.NoExpiration)
	}
	slog.Debug("カタログのインデックスを再構築しました", "entries", s.index.ItemCount())
}

func indexKey(kind domain.Kind, id string) string {
	return string(kind) + "/" + id
}

func (s *Store) custom(kind domain.Kind) []domain.Asset {
	if kind == domain.KindCharacter {
		return s.customCharacters
	}
	return s.customScenes
}

// Find は実効カタログから ID でアセットを引き当てます。
func (s *Store) Find(kind domain.Kind, id string) (domain.Asset, bool) {
	v, ok := s.index.Get(indexKey(kind, id))
	if !ok {
		return domain.Asset{}, false
	}
	a, ok := v.(domain.Asset)
	return a, ok
}

// All は種別ごとの実効カタログを返します。
func (s *Store) All(kind domain.Kind) []domain.Asset {
	if kind == domain.KindCharacter {
		return s.Characters()
	}
	return s.Scenes()
}

// Characters はカスタム → 組み込みの順に並んだキャラクター一覧のコピーを返します。
func (s *Store) Characters() []domain.Asset { return slices.Clone(s.characters) }

// Scenes はカスタム → 組み込みの順に並んだシーン一覧のコピーを返します。
func (s *Store) Scenes() []domain.Asset { return slices.Clone(s.scenes) }

// CustomCharacters は新しい順のカスタムキャラクター一覧のコピーを返します。
func (s *Store) CustomCharacters() []domain.Asset { return slices.Clone(s.customCharacters) }

// CustomScenes は新しい順のカスタムシーン一覧のコピーを返します。
func (s *Store) CustomScenes() []domain.Asset { return slices.Clone(s.customScenes) }

// BuiltinCharacters は組み込みキャラクター一覧のコピーを返します。
func (s *Store) BuiltinCharacters() []domain.Asset { return slices.Clone(s.builtinCharacters) }
