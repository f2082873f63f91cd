package director

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// LineStyle は合成済みテキストの1行の表示種別です。
type LineStyle string

const (
	StyleScene   LineStyle = "scene"
	StyleSubject LineStyle = "subject"
	StyleAction  LineStyle = "action"
	StyleTech    LineStyle = "tech"
	StylePlain   LineStyle = "plain"
)

// 行の種別ごとの前景色（ANSI パレット番号）
var (
	colorScene   = lipgloss.Color("12")
	colorSubject = lipgloss.Color("214")
	colorAction  = lipgloss.Color("10")
	colorTech    = lipgloss.Color("8")
)

// EmptyPlaceholder は表示するテキストがない場合の案内文です。
const EmptyPlaceholder = "Ready for input..."

// StyleManager はコンソール表示用の行の色分けを管理します。
// エクスポート用のテキストには関与しません。
type StyleManager struct {
	styles      map[LineStyle]lipgloss.Style
	placeholder lipgloss.Style
}

// NewStyleManager は w に書き出すための StyleManager を生成します。
// profile が termenv.Ascii の場合は装飾を付けません。
func NewStyleManager(w io.Writer, profile termenv.Profile) *StyleManager {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &StyleManager{
		styles: map[LineStyle]lipgloss.Style{
			StyleScene:   r.NewStyle().Foreground(colorScene),
			StyleSubject: r.NewStyle().Foreground(colorSubject),
			StyleAction:  r.NewStyle().Foreground(colorAction),
			StyleTech:    r.NewStyle().Foreground(colorTech),
		},
		placeholder: r.NewStyle().Foreground(colorTech).Italic(true),
	}
}

// StyleLine は行頭のセクションラベルから表示種別を判定します。
func StyleLine(line string) LineStyle {
	switch {
	case strings.HasPrefix(line, "SCENE:"), strings.HasPrefix(line, "CINEMATOGRAPHY:"):
		return StyleScene
	case strings.HasPrefix(line, "SUBJECT:"), strings.HasPrefix(line, "ENSEMBLE:"):
		return StyleSubject
	case strings.HasPrefix(line, "ACTION:"):
		return StyleAction
	case strings.Contains(line, "--"):
		return StyleTech
	default:
		return StylePlain
	}
}

// Render は text を行ごとに色分けして返します。
func (s *StyleManager) Render(text string) string {
	if text == "" {
		return s.placeholder.Render(EmptyPlaceholder)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if st, ok := s.styles[StyleLine(line)]; ok {
			lines[i] = st.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
