package director

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/shouni/go-prompt-reel/pkg/domain"
)

func testCatalog(n int) ([]domain.Asset, []domain.Asset) {
	scenes := make([]domain.Asset, n)
	chars := make([]domain.Asset, n)
	for i := range n {
		scenes[i] = domain.Asset{ID: fmt.Sprintf("S_LIFE_%02d", i), Name: "scene", Desc: "d"}
		chars[i] = domain.Asset{ID: fmt.Sprintf("C_LIFE_%02d", i), Name: "char", Details: "d"}
	}
	return scenes, chars
}

func TestRandomize_Distribution(t *testing.T) {
	const trials = 1000
	scenes, chars := testCatalog(12)
	r := NewRandomizer(WithRand(rand.New(rand.NewPCG(1, 2))))

	sceneHits := make(map[string]int)
	emptyActor := 0
	for range trials {
		sel := r.Randomize(scenes, chars, domain.Selection{})
		if sel.Scene == nil {
			t.Fatal("シーンが選ばれていません")
		}
		sceneHits[sel.Scene.ID]++
		if sel.Actor1 == nil {
			emptyActor++
		}
	}

	for _, s := range scenes {
		if sceneHits[s.ID] == 0 {
			t.Errorf("シーン %s が一度も選ばれていません", s.ID)
		}
	}
	// 期待値は 200 件。二項分布の標準偏差はおよそ 12.6 なので ±5σ を許容する
	if emptyActor < 137 || emptyActor > 263 {
		t.Errorf("actor1 が空の割合が想定外です: %d/%d", emptyActor, trials)
	}
}

func TestRandomize_State(t *testing.T) {
	scenes, chars := testCatalog(3)
	r := NewRandomizer(WithRand(rand.New(rand.NewPCG(7, 7))), WithActorProbability(1))

	action := domain.Action{ID: "run", Name: "Sprint"}
	target := domain.RenderTarget{ID: "mj7"}
	before := domain.Selection{
		Actor2:      &chars[1],
		ActiveSlot:  domain.SlotActor2,
		Action:      action,
		Interaction: "facing",
		Target:      target,
		Manual:      true,
		ManualText:  "hand written",
	}

	got := r.Randomize(scenes, chars, before)
	if got.Actor1 == nil {
		t.Error("確率1では actor1 が必ず選ばれるべきです")
	}
	if got.Actor2 != nil || got.ActiveSlot != domain.SlotActor1 {
		t.Errorf("actor2 は外されるべきです: %+v", got.Actor2)
	}
	if got.Manual {
		t.Error("ランダム化後は自動モードに戻るべきです")
	}
	if got.Action != action || got.Interaction != "facing" || got.Target != target {
		t.Errorf("アクション/インタラクション/ターゲットが変更されました: %+v", got)
	}
	seed, err := strconv.Atoi(got.Seed)
	if err != nil || seed < 0 || seed >= 10_000_000 {
		t.Errorf("シード値が範囲外です: %q", got.Seed)
	}
	if before.Actor2 == nil || !before.Manual {
		t.Error("元の選択状態が書き換えられました")
	}
}

func TestRandomize_EmptyCatalog(t *testing.T) {
	r := NewRandomizer(WithSeedUpperBound(1))
	got := r.Randomize(nil, nil, domain.Selection{Scene: &domain.Asset{ID: "S1"}})
	if got.Scene != nil || got.Actor1 != nil {
		t.Errorf("空のカタログでは何も選ばれないはずです: %+v", got)
	}
	if got.Seed != "0" {
		t.Errorf("上限1ではシードは 0 のはずです: %q", got.Seed)
	}
}

func TestStyleLine(t *testing.T) {
	tests := []struct {
		line string
		want LineStyle
	}{
		{"SCENE: Loft (wide).", StyleScene},
		{"CINEMATOGRAPHY: neon, Cinematic Lens. --seed 1", StyleScene},
		{"SUBJECT: Rae (courier), wearing coat.", StyleSubject},
		{"ENSEMBLE: facing Jun (medic), wearing scrubs.", StyleSubject},
		{"ACTION: Sprint (fast).", StyleAction},
		{"--seed 42 --v 7", StyleTech},
		{"free text", StylePlain},
	}
	for _, tt := range tests {
		if got := StyleLine(tt.line); got != tt.want {
			t.Errorf("StyleLine(%q): 期待値 %s, 実際の値 %s", tt.line, tt.want, got)
		}
	}
}

func TestStyleManager_Render(t *testing.T) {
	text := "SUBJECT: Rae.\nfree"

	plain := NewStyleManager(io.Discard, termenv.Ascii)
	if got := plain.Render(text); got != text {
		t.Errorf("色なしでは入力がそのまま返るべきです: %q", got)
	}
	if got := plain.Render(""); got != EmptyPlaceholder {
		t.Errorf("空の場合は案内文が返るべきです: %q", got)
	}

	colored := NewStyleManager(io.Discard, termenv.ANSI256).Render(text)
	first, rest, _ := strings.Cut(colored, "\n")
	if !strings.HasPrefix(first, "\x1b[") || !strings.Contains(first, "SUBJECT: Rae.") || !strings.HasSuffix(first, "\x1b[0m") {
		t.Errorf("SUBJECT 行が色付けされていません: %q", colored)
	}
	if rest != "free" {
		t.Errorf("通常行は装飾されないはずです: %q", colored)
	}

	empty := NewStyleManager(io.Discard, termenv.ANSI256).Render("")
	if empty == EmptyPlaceholder || !strings.Contains(empty, EmptyPlaceholder) {
		t.Errorf("案内文が装飾されていません: %q", empty)
	}
}
