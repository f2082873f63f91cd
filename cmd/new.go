package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shouni/go-prompt-reel/pkg/domain"
)

var (
	characterForm domain.CharacterForm
	sceneForm     domain.SceneForm
)

// newCmd は、カスタムアセットを作成するコマンドのまとめなのだ。
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "カスタムキャラクターやシーンを作成するのだ。",
}

// newCharacterCmd は、キャスティングシートの項目からキャラクターを作成するのだ。
var newCharacterCmd = &cobra.Command{
	Use:   "character",
	Short: "キャスティングシートからキャラクターを作成するのだ。",
	Long: `未入力の項目はプレースホルダとしてプロフィール文に残るのだ。
--bio を指定した場合はテンプレートを使わずにその文章をそのまま使うのだよ。`,
	Args: cobra.NoArgs,
	RunE: newCharacterCommand,
}

// newSceneCmd は、シーンビルダーの項目からシーンを作成するのだ。
var newSceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "シーンビルダーの項目からシーンを作成するのだ。",
	Args:  cobra.NoArgs,
	RunE:  newSceneCommand,
}

func init() {
	f := newCharacterCmd.Flags()
	f.StringVar(&characterForm.Name, "name", "", "名前なのだ。")
	f.StringVar(&characterForm.Category, "category", "", "カテゴリなのだ（既定 LIFE）。")
	f.StringVar(&characterForm.Age, "age", "", "年齢なのだ。")
	f.StringVar(&characterForm.Gender, "gender", "", "性別なのだ。")
	f.StringVar(&characterForm.Ethnicity, "ethnicity", "", "民族的背景なのだ。")
	f.StringVar(&characterForm.FaceShape, "face", "", "顔の形なのだ。")
	f.StringVar(&characterForm.NoseShape, "nose", "", "鼻の形なのだ。")
	f.StringVar(&characterForm.Eyes, "eyes", "", "目の特徴なのだ。")
	f.StringVar(&characterForm.Hair, "hair", "", "髪の特徴なのだ。")
	f.StringVar(&characterForm.Skin, "skin", "", "肌の質感なのだ。")
	f.StringVar(&characterForm.Outfit, "outfit", "", "衣装なのだ。")
	f.StringVar(&characterForm.Expression, "expression", "", "表情なのだ。")
	f.StringVar(&characterForm.RefURL, "ref-url", "", "キャラクター参照画像の URL なのだ（--cref に使われるのだ）。")
	f.StringVar(&characterForm.Bio, "bio", "", "プロフィール文を直接指定するのだ。")

	s := newSceneCmd.Flags()
	s.StringVar(&sceneForm.Name, "name", "", "シーン名なのだ。")
	s.StringVar(&sceneForm.Category, "category", "", "カテゴリなのだ（既定 LIFE）。")
	s.StringVar(&sceneForm.Type, "type", "", "Interior / Exterior なのだ。")
	s.StringVar(&sceneForm.Location, "location", "", "場所の詳細なのだ。")
	s.StringVar(&sceneForm.Lighting, "lighting", "", "ライティングなのだ。")
	s.StringVar(&sceneForm.Atmosphere, "atmosphere", "", "雰囲気なのだ。")
	s.StringVar(&sceneForm.Specs, "specs", "", "レンズ・カメラ情報なのだ。")
	s.StringVar(&sceneForm.Desc, "desc", "", "描写文を直接指定するのだ。")

	newCmd.AddCommand(newCharacterCmd, newSceneCmd)
}

func saveNewAsset(cmd *cobra.Command, kind domain.Kind, a domain.Asset) error {
	added, err := appCtx.Catalog.Add(cmd.Context(), kind, a)
	if err != nil {
		return fmt.Errorf("%s の保存に失敗したのだ: %w", kind, err)
	}
	if !added {
		return fmt.Errorf("ID '%s' は既に存在するのだ", a.ID)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created: %s\n", a)
	return nil
}

func newCharacterCommand(cmd *cobra.Command, args []string) error {
	return saveNewAsset(cmd, domain.KindCharacter, domain.NewCharacter(characterForm, time.Now()))
}

func newSceneCommand(cmd *cobra.Command, args []string) error {
	return saveNewAsset(cmd, domain.KindScene, domain.NewScene(sceneForm, time.Now()))
}
