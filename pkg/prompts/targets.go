package prompts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shouni/go-prompt-reel/pkg/config"
	"github.com/shouni/go-prompt-reel/pkg/domain"
)

// Registry はレンダーターゲットの一覧と、フラグ注入が可能なエンジンの許可リストを管理します。
type Registry struct {
	targets     []domain.RenderTarget
	byID        map[string]domain.RenderTarget
	flagCapable map[string]struct{}
}

// NewRegistry は targets と許可リストから Registry を生成します。
// 先頭のターゲットが未知の ID に対するフォールバックになります。
func NewRegistry(targets []domain.RenderTarget, flagCapable []string) (*Registry, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("レンダーターゲットが1件もありません")
	}

	r := &Registry{
		targets:     make([]domain.RenderTarget, 0, len(targets)),
		byID:        make(map[string]domain.RenderTarget, len(targets)),
		flagCapable: make(map[string]struct{}, len(flagCapable)),
	}
	for _, t := range targets {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, fmt.Errorf("ID のないレンダーターゲットがあります: %+v", t)
		}
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("レンダーターゲット '%s' が重複しています", id)
		}
		t.ID = id
		r.targets = append(r.targets, t)
		r.byID[id] = t
	}
	for _, id := range flagCapable {
		r.flagCapable[strings.TrimSpace(id)] = struct{}{}
	}
	return r, nil
}

// DefaultRegistry は組み込みのターゲット一覧から Registry を生成します。
func DefaultRegistry() *Registry {
	r, err := NewRegistry(config.DefaultRenderTargets, config.DefaultFlagCapable)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup は ID に一致するターゲットを返します。
func (r *Registry) Lookup(id string) (domain.RenderTarget, bool) {
	t, ok := r.byID[strings.TrimSpace(id)]
	return t, ok
}

// Resolve は ID に一致するターゲットを返し、未知の ID の場合は先頭のターゲットを返します。
func (r *Registry) Resolve(id string) domain.RenderTarget {
	if t, ok := r.Lookup(id); ok {
		return t
	}
	return r.targets[0]
}

// FlagCapable は --cref / --sref を付与できるエンジンかどうかを返します。
func (r *Registry) FlagCapable(id string) bool {
	_, ok := r.flagCapable[id]
	return ok
}

// Targets は登録順のターゲット一覧を返します。
func (r *Registry) Targets() []domain.RenderTarget {
	return slices.Clone(r.targets)
}

// Markers はエクスポート時に取り除くエンジンプレフィックスの一覧です。
func (r *Registry) Markers() []string {
	var markers []string
	for _, t := range r.targets {
		if p := strings.TrimSpace(t.Prefix); p != "" && !slices.Contains(markers, p) {
			markers = append(markers, p)
		}
	}
	return markers
}
