package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-prompt-reel/pkg/domain"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	return NewComposer(DefaultRegistry())
}

func TestCompose_FlagGating(t *testing.T) {
	c := newTestComposer(t)
	base := domain.Selection{
		Actor1:   &domain.Asset{ID: "C1", Name: "Rae", Details: "courier", Outfit: "coat", RefURL: "http://x"},
		StyleRef: "abc",
		Seed:     "42",
	}

	tests := []struct {
		name     string
		targetID string
		wantTail string
	}{
		{"mj7 ではすべてのフラグが付くこと", "mj7", " --cref http://x --sref abc --seed 42 --v 7 --style raw"},
		{"niji6 もフラグ対応であること", "niji6", " --cref http://x --sref abc --seed 42 --niji 6"},
		{"mj6 は --cref/--sref を付けないこと", "mj6", " --seed 42 --v 6.0 --style raw"},
		{"dalle3 は seed のみであること", "dalle3", " --seed 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := base
			sel.Target = c.Registry().Resolve(tt.targetID)
			if got := c.Compose(sel).Tail; got != tt.wantTail {
				t.Errorf("期待値 %q, 実際の値 %q", tt.wantTail, got)
			}
		})
	}
}

func TestCompose_Segments(t *testing.T) {
	c := newTestComposer(t)
	scene := &domain.Asset{ID: "S1", Name: "Rooftop", Desc: "rain soaked", Lighting: "neon haze"}
	a1 := &domain.Asset{ID: "C1", Name: "Rae", Details: "courier", Outfit: "rain shell"}
	a2 := &domain.Asset{ID: "C2", Name: "Jun", Details: "medic", Outfit: "scrubs"}
	run := domain.Action{ID: "run", Name: "Sprint", Desc: "full speed"}

	tests := []struct {
		name string
		sel  domain.Selection
		want string
	}{
		{
			name: "何も選択されていない場合は空文字になること",
			sel:  domain.Selection{Target: c.Registry().Resolve("generic")},
			want: "",
		},
		{
			name: "シーンとアクターがない場合は末尾フラグのみになること",
			sel:  domain.Selection{Seed: "7", Target: c.Registry().Resolve("mj7"), Action: run},
			want: "--seed 7 --v 7 --style raw",
		},
		{
			name: "シーンのみの場合は先頭に改行が入らないこと",
			sel:  domain.Selection{Scene: scene},
			want: "SCENE: Rooftop (rain soaked).\nCINEMATOGRAPHY: neon haze, Cinematic Lens.",
		},
		{
			name: "全セクション",
			sel: domain.Selection{
				Scene: scene, Actor1: a1, Actor2: a2, Action: run,
				Interaction: "shoulder to shoulder with", Seed: "42",
				Target: c.Registry().Resolve("dalle3"),
			},
			want: "SUBJECT: Rae (courier), wearing rain shell.\n" +
				"ENSEMBLE: shoulder to shoulder with Jun (medic), wearing scrubs.\n" +
				"ACTION: Sprint (full speed).\n" +
				"SCENE: Rooftop (rain soaked).\n" +
				"CINEMATOGRAPHY: neon haze, Cinematic Lens. --seed 42",
		},
		{
			name: "none アクションは ACTION 行を出力しないこと",
			sel:  domain.Selection{Actor1: a1, Action: domain.Action{ID: domain.ActionNoneID, Name: "None"}},
			want: "SUBJECT: Rae (courier), wearing rain shell.",
		},
		{
			name: "actor1 がない場合は actor2 とアクションを無視すること",
			sel:  domain.Selection{Scene: scene, Actor2: a2, Action: run},
			want: "SCENE: Rooftop (rain soaked).\nCINEMATOGRAPHY: neon haze, Cinematic Lens.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Compose(tt.sel).String(); got != tt.want {
				t.Errorf("期待値:\n%q\n実際の値:\n%q", tt.want, got)
			}
		})
	}
}

func TestCompose_Prefix(t *testing.T) {
	reg, err := NewRegistry([]domain.RenderTarget{
		{ID: "generic", Label: "Generic"},
		{ID: "pony", Label: "Pony", Prefix: "score_9, score_8_up,", Suffix: "--ar 2:3"},
	}, nil)
	if err != nil {
		t.Fatalf("NewRegistry失敗: %v", err)
	}
	c := NewComposer(reg)
	sel := domain.Selection{
		Scene:  &domain.Asset{ID: "S1", Name: "Loft", Desc: "wide", Lighting: "soft"},
		Target: reg.Resolve("pony"),
	}

	want := "score_9, score_8_up, SCENE: Loft (wide).\nCINEMATOGRAPHY: soft, Cinematic Lens. --ar 2:3"
	if got := c.Render(sel); got != want {
		t.Errorf("期待値 %q, 実際の値 %q", want, got)
	}

	wantExport := "Loft (wide). soft, Cinematic Lens. --ar 2:3"
	if got := c.Export(sel); got != wantExport {
		t.Errorf("期待値 %q, 実際の値 %q", wantExport, got)
	}

	empty := domain.Selection{Target: reg.Resolve("pony")}
	if got := c.Render(empty); got != "score_9, score_8_up, --ar 2:3" {
		t.Errorf("本文なしの連結が不正です: %q", got)
	}
}

func TestRender_Manual(t *testing.T) {
	c := newTestComposer(t)
	sel := domain.Selection{
		Scene:      &domain.Asset{ID: "S1", Name: "Loft"},
		Manual:     true,
		ManualText: "SUBJECT:   hand   written\nACTION: ().",
	}
	if got := c.Render(sel); got != sel.ManualText {
		t.Errorf("手動モードでは入力がそのまま返るべきです: %q", got)
	}
	if got := c.Export(sel); got != "hand written" {
		t.Errorf("エクスポートでは整形されるべきです: %q", got)
	}
}

func TestCleanScript(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		markers []string
		want    string
	}{
		{"ラベルの除去", "SUBJECT: Rae.\nSCENE: Loft.", nil, "Rae. Loft."},
		{"空の ACTION の除去", "SUBJECT: Rae.\nACTION: ( ).\nSCENE: Loft.", nil, "Rae. Loft."},
		{"プレフィックスの除去", "masterpiece, SCENE: Loft", []string{"masterpiece,"}, "Loft"},
		{"空白の集約", "  a \t\n b  ", nil, "a b"},
		{"空のマーカーは無視", "CINEMATOGRAPHY: neon", []string{"", "  "}, "neon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanScript(tt.input, tt.markers); got != tt.want {
				t.Errorf("期待値 %q, 実際の値 %q", tt.want, got)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := DefaultRegistry()

	if got := reg.Resolve("unknown"); got.ID != "generic" {
		t.Errorf("未知の ID は先頭のターゲットに解決されるべきです: %+v", got)
	}
	if _, ok := reg.Lookup("mj7"); !ok {
		t.Error("mj7 が見つかりません")
	}
	for _, id := range []string{"mj61", "mj7", "niji6"} {
		if !reg.FlagCapable(id) {
			t.Errorf("%s はフラグ対応のはずです", id)
		}
	}
	if reg.FlagCapable("dalle3") {
		t.Error("dalle3 はフラグ非対応のはずです")
	}

	targets := reg.Targets()
	targets[0].ID = "mutated"
	if reg.Resolve("generic").ID != "generic" {
		t.Error("Targets の戻り値を書き換えると内部状態が変わってしまいます")
	}

	if _, err := NewRegistry(nil, nil); err == nil {
		t.Error("空の一覧はエラーになるべきです")
	}
	dup := []domain.RenderTarget{{ID: "a"}, {ID: " a "}}
	if _, err := NewRegistry(dup, nil); err == nil || !strings.Contains(err.Error(), "重複") {
		t.Errorf("重複はエラーになるべきです: %v", err)
	}
}
