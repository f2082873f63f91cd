package catalog

import (
	"github.com/shouni/go-prompt-reel/pkg/domain"
)

// MergeCustom は既存リストに存在しない ID のアセットだけを先頭に追加した新しいリストを返します。
// 既存のアセットは削除・並べ替え・上書きされません。同じ入力で2回マージしても結果は変わりません。
func MergeCustom(existing, incoming []domain.Asset) []domain.Asset {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, a := range existing {
		seen[a.ID] = struct{}{}
	}

	trulyNew := make([]domain.Asset, 0, len(incoming))
	for _, a := range incoming {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		// 入力内の重複も1件にまとめる
		seen[a.ID] = struct{}{}
		trulyNew = append(trulyNew, a)
	}

	merged := make([]domain.Asset, 0, len(trulyNew)+len(existing))
	merged = append(merged, trulyNew...)
	merged = append(merged, existing...)
	return merged
}

// dedupedConcat はカスタム → 組み込みの順に連結し、空エントリと重複 ID を取り除きます。
// 重複時は先に現れた方（カスタム側）が残ります。
func dedupedConcat(custom, builtin []domain.Asset) []domain.Asset {
	out := make([]domain.Asset, 0, len(custom)+len(builtin))
	seen := make(map[string]struct{}, len(custom)+len(builtin))
	for _, list := range [][]domain.Asset{custom, builtin} {
		for _, a := range list {
			if a.IsEmpty() {
				continue
			}
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}
