package domain

import "strings"

const (
	// ActionNoneID は ACTION 行を出力しないことを示す番兵 ID です。
	ActionNoneID = "none"
	// DefaultIntensity は強度が未設定のアクションに適用される値です。
	DefaultIntensity = 5
)

// Action はキャラクターに与える動作の定義です。
type Action struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	Intensity int    `json:"intensity,omitempty"` // 1..10
}

// IsNone は番兵アクション（または未選択）かどうかを判定します。
func (a Action) IsNone() bool {
	id := strings.TrimSpace(a.ID)
	return id == "" || strings.EqualFold(id, ActionNoneID)
}

// EffectiveIntensity は未設定時に DefaultIntensity を返します。
func (a Action) EffectiveIntensity() int {
	if a.Intensity <= 0 {
		return DefaultIntensity
	}
	return a.Intensity
}

// FilterByIntensity は ID で重複を取り除き、指定強度のアクションだけを返します。
// 同じ ID が複数ある場合は後勝ちですが、並びは最初に現れた位置を保ちます。
func FilterByIntensity(actions []Action, level int) []Action {
	order := make([]string, 0, len(actions))
	byID := make(map[string]Action, len(actions))
	for _, a := range actions {
		if _, ok := byID[a.ID]; !ok {
			order = append(order, a.ID)
		}
		byID[a.ID] = a
	}

	out := make([]Action, 0, len(order))
	for _, id := range order {
		if a := byID[id]; a.EffectiveIntensity() == level {
			out = append(out, a)
		}
	}
	return out
}

// IntensityLabel は強度レベルの表示ラベルを返します。
func IntensityLabel(level int) string {
	switch {
	case level <= 2:
		return "LOW (Pose)"
	case level <= 4:
		return "MINOR (Casual)"
	case level <= 6:
		return "MODERATE (Active)"
	case level <= 8:
		return "VIGOROUS (Dynamic)"
	default:
		return "INTENSE (Conflict)"
	}
}

// FindAction は ID に一致するアクションを探します。
func FindAction(actions []Action, id string) (Action, bool) {
	for _, a := range actions {
		if strings.EqualFold(a.ID, id) {
			return a, true
		}
	}
	return Action{}, false
}
