package session

import (
	"fmt"

	"github.com/shouni/go-prompt-reel/pkg/director"
	"github.com/shouni/go-prompt-reel/pkg/domain"
	"github.com/shouni/go-prompt-reel/pkg/prompts"
)

// Catalog はセッションが参照するカタログの読み取り契約です。catalog.Store が満たします。
type Catalog interface {
	Find(kind domain.Kind, id string) (domain.Asset, bool)
	Characters() []domain.Asset
	Scenes() []domain.Asset
	BuiltinCharacters() []domain.Asset
}

// Session は1つの作業セッションにおける選択状態と、その状態遷移を管理します。
// すべての操作は呼び出し側の単一のイベントループから行われる前提です。
type Session struct {
	catalog    Catalog
	composer   *prompts.Composer
	randomizer *director.Randomizer
	sel        domain.Selection
}

// Option は Session の初期状態を変更します。
type Option func(*Session)

// WithAction は初期アクションを設定します。
func WithAction(a domain.Action) Option {
	return func(s *Session) { s.sel.Action = a }
}

// WithInteraction は初期インタラクションを設定します。
func WithInteraction(interaction string) Option {
	return func(s *Session) { s.sel.Interaction = interaction }
}

// WithTarget は初期レンダーターゲットを ID で設定します。
func WithTarget(id string) Option {
	return func(s *Session) { s.sel.Target = s.composer.Registry().Resolve(id) }
}

// New は Session を生成します。
func New(catalog Catalog, composer *prompts.Composer, randomizer *director.Randomizer, opts ...Option) (*Session, error) {
	if catalog == nil {
		return nil, fmt.Errorf("カタログは必須です")
	}
	if composer == nil {
		composer = prompts.NewComposer(nil)
	}
	if randomizer == nil {
		randomizer = director.NewRandomizer()
	}

	s := &Session{
		catalog:    catalog,
		composer:   composer,
		randomizer: randomizer,
		sel: domain.Selection{
			ActiveSlot: domain.SlotActor1,
			Action:     domain.Action{ID: domain.ActionNoneID, Name: "None"},
		},
	}
	s.sel.Target = composer.Registry().Resolve("")
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Selection は現在の選択状態のコピーを返します。
func (s *Session) Selection() domain.Selection {
	sel := s.sel
	sel.Scene = clonePtr(s.sel.Scene)
	sel.Actor1 = clonePtr(s.sel.Actor1)
	sel.Actor2 = clonePtr(s.sel.Actor2)
	return sel
}

func clonePtr(a *domain.Asset) *domain.Asset {
	if a == nil {
		return nil
	}
	return a.Clone()
}

// SelectScene はシーンをトグル選択します。
func (s *Session) SelectScene(scene domain.Asset) {
	s.sel.Manual = false
	s.sel.Scene = domain.Toggle(s.sel.Scene, scene)
}

// SelectCharacter は現在アクティブな枠に対してキャラクターをトグル選択します。
func (s *Session) SelectCharacter(char domain.Asset) {
	s.sel.Manual = false
	if s.sel.ActiveSlot == domain.SlotActor2 {
		s.sel.Actor2 = domain.Toggle(s.sel.Actor2, char)
		return
	}
	s.sel.Actor1 = domain.Toggle(s.sel.Actor1, char)
}

// SelectByID は ID で指定したアセットを選択します。見つからない場合は false を返します。
func (s *Session) SelectByID(kind domain.Kind, id string) bool {
	a, ok := s.catalog.Find(kind, id)
	if !ok {
		return false
	}
	switch kind {
	case domain.KindScene:
		s.SelectScene(a)
	case domain.KindCharacter:
		s.SelectCharacter(a)
	default:
		return false
	}
	return true
}

// Cast は ID のキャラクターを指定した枠に配置します。SelectCharacter と異なりトグルはしません。
func (s *Session) Cast(slot int, id string) bool {
	a, ok := s.catalog.Find(domain.KindCharacter, id)
	if !ok {
		return false
	}
	s.sel.Manual = false
	if slot == domain.SlotActor2 {
		s.sel.Actor2 = a.Clone()
		return true
	}
	s.sel.Actor1 = a.Clone()
	return true
}

// SetActiveSlot は選択対象の枠を切り替えます。
// 2人目の枠に切り替えた際、2人目が未選択で1人目が選ばれていれば、組み込みの2番目のキャラクターを仮に配置します。
func (s *Session) SetActiveSlot(slot int) {
	if slot != domain.SlotActor2 {
		s.sel.ActiveSlot = domain.SlotActor1
		return
	}
	s.sel.ActiveSlot = domain.SlotActor2
	if s.sel.Actor2 == nil && s.sel.Actor1 != nil {
		if builtins := s.catalog.BuiltinCharacters(); len(builtins) > 1 {
			s.sel.Actor2 = builtins[1].Clone()
		}
	}
}

// RemoveActor2 は2人目を外し、1人目の枠に戻します。
func (s *Session) RemoveActor2() {
	s.sel.Actor2 = nil
	s.sel.ActiveSlot = domain.SlotActor1
}

// SetAction はアクションを設定します。手動モードは解除されます。
func (s *Session) SetAction(a domain.Action) {
	s.sel.Manual = false
	s.sel.Action = a
}

// SetInteraction はインタラクションを設定します。手動モードは解除されます。
func (s *Session) SetInteraction(interaction string) {
	s.sel.Manual = false
	s.sel.Interaction = interaction
}

// SetSeed はシード値を設定します。
func (s *Session) SetSeed(seed string) { s.sel.Seed = seed }

// SetStyleRef はスタイル参照コードを設定します。
func (s *Session) SetStyleRef(ref string) { s.sel.StyleRef = ref }

// SetTarget はレンダーターゲットを設定します。未知の ID は既定のターゲットになります。
func (s *Session) SetTarget(id string) {
	s.sel.Target = s.composer.Registry().Resolve(id)
}

// ToggleManual は手動編集モードを切り替えます。
// 自動モードから入る場合は、その時点の合成結果を編集用バッファに一度だけ写します。
func (s *Session) ToggleManual() bool {
	if s.sel.Manual {
		s.sel.Manual = false
		return false
	}
	s.sel.ManualText = s.composer.Compose(s.sel).String()
	s.sel.Manual = true
	return true
}

// SetManualText は手動編集バッファを書き換えます。手動モードでない場合は手動モードに入ります。
func (s *Session) SetManualText(text string) {
	s.sel.Manual = true
	s.sel.ManualText = text
}

// Randomize はカタログ全体からシーンと主役をランダムに選び直します。
func (s *Session) Randomize() {
	s.sel = s.randomizer.Randomize(s.catalog.Scenes(), s.catalog.Characters(), s.sel)
}

// Text は画面表示用のテキストを返します。
func (s *Session) Text() string {
	return s.composer.Render(s.sel)
}

// ExportText はコピー/保存用に整形したテキストを返します。
func (s *Session) ExportText() string {
	return s.composer.Export(s.sel)
}
