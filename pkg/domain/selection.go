package domain

// RenderTarget は出力先エンジンごとのプレフィックス/サフィックスを定義します。
type RenderTarget struct {
	ID     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

const (
	// SlotActor1 はメインのキャラクター枠です。
	SlotActor1 = 1
	// SlotActor2 はアンサンブル用の2人目の枠です。
	SlotActor2 = 2
)

// Selection は現在の選択状態です。永続化はされません。
type Selection struct {
	Scene       *Asset
	Actor1      *Asset
	Actor2      *Asset
	ActiveSlot  int
	Action      Action
	Interaction string
	Seed        string
	StyleRef    string
	Target      RenderTarget

	// Manual が true の間、出力はコンポーザーを通さず ManualText がそのまま使われます。
	Manual     bool
	ManualText string
}

// Toggle は選択のトグル動作を表す純粋関数です。
// 既に選ばれているアセットを再度選んだ場合は選択を解除（nil）します。
func Toggle(current *Asset, clicked Asset) *Asset {
	if current != nil && current.ID == clicked.ID {
		return nil
	}
	return clicked.Clone()
}
