package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-prompt-reel/pkg/domain"
)

// セクションラベル。エクスポート時にはこれらが取り除かれます。
const (
	LabelSubject        = "SUBJECT:"
	LabelEnsemble       = "ENSEMBLE:"
	LabelAction         = "ACTION:"
	LabelScene          = "SCENE:"
	LabelCinematography = "CINEMATOGRAPHY:"

	cinematicLens = "Cinematic Lens"
)

// Segments は合成されたプロンプトの各セクションです。空文字は「出力しない」を意味します。
type Segments struct {
	Prefix         string
	Subject        string
	Ensemble       string
	Action         string
	Scene          string
	Cinematography string
	Tail           string // 先頭にスペースを含むエンジンフラグ列
}

// Lines は空でないセクションを固定順で返します。Prefix と Tail は含みません。
func (s Segments) Lines() []string {
	lines := make([]string, 0, 5)
	for _, seg := range []string{s.Subject, s.Ensemble, s.Action, s.Scene, s.Cinematography} {
		if seg != "" {
			lines = append(lines, seg)
		}
	}
	return lines
}

// String はプレフィックス、改行区切りのセクション、末尾フラグを連結した最終文字列を返します。
func (s Segments) String() string {
	var sb strings.Builder
	if s.Prefix != "" {
		sb.WriteString(s.Prefix)
		sb.WriteString(" ")
	}
	body := strings.Join(s.Lines(), "\n")
	if body != "" {
		sb.WriteString(body)
		sb.WriteString(s.Tail)
		return sb.String()
	}

	// 本文がない場合は末尾フラグの先頭スペースを重ねない
	head := strings.TrimRight(sb.String(), " ")
	tail := strings.TrimLeft(s.Tail, " ")
	switch {
	case head == "":
		return tail
	case tail == "":
		return head
	default:
		return head + " " + tail
	}
}

// Composer は選択状態からプロンプトを合成します。状態を持たない純粋な変換です。
type Composer struct {
	registry *Registry
}

// NewComposer は Composer を生成します。registry が nil の場合は組み込みの一覧を使います。
func NewComposer(registry *Registry) *Composer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Composer{registry: registry}
}

// Registry は Composer が参照しているターゲット一覧を返します。
func (c *Composer) Registry() *Registry {
	return c.registry
}

// Compose は選択状態を各セクションに変換します。
func (c *Composer) Compose(sel domain.Selection) Segments {
	seg := Segments{
		Prefix: strings.TrimSpace(sel.Target.Prefix),
		Tail:   c.commercialTail(sel),
	}

	if a1 := sel.Actor1; a1 != nil {
		seg.Subject = fmt.Sprintf("%s %s (%s), wearing %s.", LabelSubject, a1.Name, a1.Details, a1.Outfit)

		if a2 := sel.Actor2; a2 != nil {
			seg.Ensemble = fmt.Sprintf("%s %s %s (%s), wearing %s.", LabelEnsemble, sel.Interaction, a2.Name, a2.Details, a2.Outfit)
		}
		if !sel.Action.IsNone() {
			seg.Action = fmt.Sprintf("%s %s (%s).", LabelAction, sel.Action.Name, sel.Action.Desc)
		}
	}

	if sc := sel.Scene; sc != nil {
		seg.Scene = fmt.Sprintf("%s %s (%s).", LabelScene, sc.Name, sc.Desc)
		seg.Cinematography = fmt.Sprintf("%s %s, %s.", LabelCinematography, sc.Lighting, cinematicLens)
	}
	return seg
}

// commercialTail はエンジン固有のフラグとサフィックスを --cref, --sref, --seed, サフィックスの順に連結します。
func (c *Composer) commercialTail(sel domain.Selection) string {
	var sb strings.Builder
	if c.registry.FlagCapable(sel.Target.ID) {
		if sel.Actor1 != nil {
			if ref := strings.TrimSpace(sel.Actor1.RefURL); ref != "" {
				sb.WriteString(" --cref " + ref)
			}
		}
		if sref := strings.TrimSpace(sel.StyleRef); sref != "" {
			sb.WriteString(" --sref " + sref)
		}
	}
	if seed := strings.TrimSpace(sel.Seed); seed != "" {
		sb.WriteString(" --seed " + seed)
	}
	if suffix := strings.TrimSpace(sel.Target.Suffix); suffix != "" {
		sb.WriteString(" " + suffix)
	}
	return sb.String()
}

// Render は画面に表示するテキストを返します。手動モードでは入力バッファをそのまま返します。
func (c *Composer) Render(sel domain.Selection) string {
	if sel.Manual {
		return sel.ManualText
	}
	return c.Compose(sel).String()
}

// Export はコピー/保存用に、Render の結果から構造的な装飾を取り除いたテキストを返します。
func (c *Composer) Export(sel domain.Selection) string {
	return CleanScript(c.Render(sel), c.registry.Markers())
}
