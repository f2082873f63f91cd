package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/go-prompt-reel/pkg/bundle"
	"github.com/shouni/go-prompt-reel/pkg/domain"
)

// importCmd は、バンドルやカードを読み込みカスタムカタログにマージするのだ。
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "バンドル（またはカード）をカタログに取り込むのだ。",
	Long: `エクスポートしたバンドルや単体カード、またはその配列を読み込むのだ。
既に存在する ID のアセットは上書きせず、新しいものだけを先頭に追加するのだよ。
FILE に '-' を指定すると標準入力から読み込むのだ。`,
	Args: cobra.ExactArgs(1),
	RunE: importCommand,
}

// exportCmd は、カスタムアセットをバックアップバンドルとして書き出すのだ。
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "カスタムアセットをバンドルとして書き出すのだ。",
	Args:  cobra.NoArgs,
	RunE:  exportCommand,
}

// cardCmd は、単体アセットをカードとして書き出すのだ。
var cardCmd = &cobra.Command{
	Use:   "card ID",
	Short: "単体アセットをカード（JSON）として書き出すのだ。",
	Args:  cobra.ExactArgs(1),
	RunE:  cardCommand,
}

var resetConfirmed bool

// resetCmd は、カスタムアセットをすべて削除するのだ。
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "保存されているカスタムアセットをすべて削除するのだ。",
	Args:  cobra.NoArgs,
	RunE:  resetCommand,
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "確認なしで削除するのだ。")
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func importCommand(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args[0])
	if err != nil {
		return fmt.Errorf("ファイルの読み込みに失敗したのだ: %w", err)
	}

	rep, err := appCtx.Importer.Import(cmd.Context(), raw)
	switch {
	case errors.Is(err, bundle.ErrMalformedBundle):
		return fmt.Errorf("invalid structure: バンドルの形式が正しくないのだ: %w", err)
	case errors.Is(err, bundle.ErrEmptyBundle):
		return fmt.Errorf("nothing found: 取り込めるキャラクターやシーンがなかったのだ: %w", err)
	case err != nil:
		return fmt.Errorf("インポートに失敗したのだ: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported: %d characters (%d new), %d scenes (%d new)\n",
		rep.Characters, rep.AddedCharacters, rep.Scenes, rep.AddedScenes)
	return nil
}

func exportCommand(cmd *cobra.Command, args []string) error {
	path, b, err := appCtx.Publisher.PublishBundle(cmd.Context(),
		appCtx.Catalog.CustomCharacters(), appCtx.Catalog.CustomScenes())
	if err != nil {
		return fmt.Errorf("エクスポートに失敗したのだ: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported: %d characters, %d scenes -> %s\n",
		len(b.Characters), len(b.Scenes), path)
	return nil
}

// findAnyAsset はキャラクター、シーンの順に ID を探すのだ。
func findAnyAsset(id string) (domain.Kind, domain.Asset, bool) {
	for _, kind := range []domain.Kind{domain.KindCharacter, domain.KindScene} {
		if a, ok := appCtx.Catalog.Find(kind, id); ok {
			return kind, a, true
		}
	}
	return "", domain.Asset{}, false
}

func cardCommand(cmd *cobra.Command, args []string) error {
	kind, a, ok := findAnyAsset(args[0])
	if !ok {
		return fmt.Errorf("アセット '%s' が見つからないのだ", args[0])
	}
	path, err := appCtx.Publisher.PublishCard(cmd.Context(), kind, a)
	if err != nil {
		return fmt.Errorf("カードの書き出しに失敗したのだ: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "card: %s -> %s\n", a, path)
	return nil
}

func resetCommand(cmd *cobra.Command, args []string) error {
	if !resetConfirmed {
		return fmt.Errorf("すべてのカスタムアセットが削除されるのだ。実行するには --yes を付けてほしいのだ")
	}
	if err := appCtx.Catalog.FactoryReset(cmd.Context()); err != nil {
		return fmt.Errorf("リセットに失敗したのだ: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "reset: custom catalog cleared")
	return nil
}
