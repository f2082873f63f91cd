package domain

import (
	"reflect"
	"testing"
)

func TestFilterByIntensity(t *testing.T) {
	actions := []Action{
		{ID: "none", Name: "Standing", Intensity: 1},
		{ID: "walk", Name: "Walking", Intensity: 3},
		{ID: "talk", Name: "Talking"},
		{ID: "walk", Name: "Strolling", Intensity: 3},
		{ID: "fight", Name: "Fighting", Intensity: 9},
	}

	t.Run("重複IDは後勝ちで1件になること", func(t *testing.T) {
		got := FilterByIntensity(actions, 3)
		if len(got) != 1 || got[0].Name != "Strolling" {
			t.Errorf("期待値 [Strolling], 実際の値 %+v", got)
		}
	})

	t.Run("強度未設定は5として扱うこと", func(t *testing.T) {
		got := FilterByIntensity(actions, 5)
		if len(got) != 1 || got[0].ID != "talk" {
			t.Errorf("期待値 [talk], 実際の値 %+v", got)
		}
	})

	t.Run("該当なしは空", func(t *testing.T) {
		if got := FilterByIntensity(actions, 7); len(got) != 0 {
			t.Errorf("空を期待しましたが %+v", got)
		}
	})
}

func TestIntensityLabel(t *testing.T) {
	got := []string{IntensityLabel(2), IntensityLabel(4), IntensityLabel(6), IntensityLabel(8), IntensityLabel(10)}
	want := []string{"LOW (Pose)", "MINOR (Casual)", "MODERATE (Active)", "VIGOROUS (Dynamic)", "INTENSE (Conflict)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期待値 %v, 実際の値 %v", want, got)
	}
}

func TestAction_IsNone(t *testing.T) {
	if !(Action{}).IsNone() || !(Action{ID: "NONE"}).IsNone() {
		t.Error("空IDと none は番兵として扱われるべきです")
	}
	if (Action{ID: "walk"}).IsNone() {
		t.Error("通常のアクションが番兵扱いされました")
	}
}
