package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-prompt-reel/internal/builder"
	"github.com/shouni/go-prompt-reel/pkg/director"
	"github.com/shouni/go-prompt-reel/pkg/domain"
	"github.com/shouni/go-prompt-reel/pkg/session"
)

// composeOptions は compose / random コマンドのフラグなのだ。
type composeOptions struct {
	scene       string
	actor1      string
	actor2      string
	action      string
	interaction string
	seed        string
	styleRef    string
	target      string
	manual      string
	clean       bool
	save        bool
}

var composeOpts composeOptions

// composeCmd は、指定した選択状態からプロンプトを合成するのだ。
var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "シーンとキャストを指定してプロンプトを合成するのだ。",
	Long: `--scene と --actor1 / --actor2 で ID を指定し、アクションやインタラクション、
レンダーターゲットを組み合わせたプロンプトを表示するのだ。
--clean でセクションラベルを除いたコピー用テキストを、--save でファイル保存を行うのだよ。`,
	Args: cobra.NoArgs,
	RunE: composeCommand,
}

// randomCmd は、シーンと主役をランダムに選んで合成するのだ。
var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "シーンと主役をランダムに選んでプロンプトを合成するのだ。",
	Args:  cobra.NoArgs,
	RunE:  randomCommand,
}

func init() {
	addSelectionFlags(composeCmd, true)
	addSelectionFlags(randomCmd, false)
}

func addSelectionFlags(c *cobra.Command, full bool) {
	if full {
		c.Flags().StringVar(&composeOpts.scene, "scene", "", "シーンの ID なのだ。")
		c.Flags().StringVar(&composeOpts.actor1, "actor1", "", "主役キャラクターの ID なのだ。")
		c.Flags().StringVar(&composeOpts.actor2, "actor2", "", "2人目のキャラクターの ID なのだ。")
		c.Flags().StringVar(&composeOpts.seed, "seed", "", "シード値なのだ。")
		c.Flags().StringVar(&composeOpts.manual, "manual", "", "合成の代わりに使う手入力テキストなのだ。")
	}
	c.Flags().StringVar(&composeOpts.action, "action", "", "アクションの ID なのだ（none で ACTION 行なし）。")
	c.Flags().StringVar(&composeOpts.interaction, "interaction", "", "2人目との関係を表すフレーズなのだ。")
	c.Flags().StringVar(&composeOpts.styleRef, "sref", "", "スタイル参照コードなのだ（対応エンジンのみ）。")
	c.Flags().StringVarP(&composeOpts.target, "target", "t", "", "レンダーターゲットの ID なのだ。")
	c.Flags().BoolVar(&composeOpts.clean, "clean", false, "ラベルを除いたコピー用テキストを出力するのだ。")
	c.Flags().BoolVar(&composeOpts.save, "save", false, "コピー用テキストをファイルに保存するのだ。")
}

// applyCommonOptions は compose と random で共通の設定をセッションに反映するのだ。
func applyCommonOptions(s *session.Session, opts composeOptions) error {
	if opts.target != "" {
		if _, ok := appCtx.Composer.Registry().Lookup(opts.target); !ok {
			return fmt.Errorf("レンダーターゲット '%s' が見つからないのだ（reel targets で一覧を確認できるのだ）", opts.target)
		}
		s.SetTarget(opts.target)
	}
	if opts.action != "" {
		a, ok := domain.FindAction(appCtx.Reel.Actions, opts.action)
		if !ok {
			return fmt.Errorf("アクション '%s' が見つからないのだ", opts.action)
		}
		s.SetAction(a)
	}
	if opts.interaction != "" {
		s.SetInteraction(opts.interaction)
	}
	if opts.styleRef != "" {
		s.SetStyleRef(opts.styleRef)
	}
	return nil
}

func composeCommand(cmd *cobra.Command, args []string) error {
	s, err := buildSession()
	if err != nil {
		return err
	}
	opts := composeOpts

	if opts.scene != "" && !s.SelectByID(domain.KindScene, opts.scene) {
		return fmt.Errorf("シーン '%s' が見つからないのだ", opts.scene)
	}
	if opts.actor1 != "" && !s.Cast(domain.SlotActor1, opts.actor1) {
		return fmt.Errorf("キャラクター '%s' が見つからないのだ", opts.actor1)
	}
	if opts.actor2 != "" {
		if opts.actor1 == "" {
			return fmt.Errorf("--actor2 を使うには --actor1 が必要なのだ")
		}
		if !s.Cast(domain.SlotActor2, opts.actor2) {
			return fmt.Errorf("キャラクター '%s' が見つからないのだ", opts.actor2)
		}
	}
	if err := applyCommonOptions(s, opts); err != nil {
		return err
	}
	s.SetSeed(opts.seed)
	if opts.manual != "" {
		s.SetManualText(opts.manual)
	}

	return emitScript(cmd, s, opts)
}

func randomCommand(cmd *cobra.Command, args []string) error {
	s, err := buildSession()
	if err != nil {
		return err
	}
	opts := composeOpts
	if err := applyCommonOptions(s, opts); err != nil {
		return err
	}
	s.Randomize()

	sel := s.Selection()
	slog.Debug("ランダムに選んだのだ", "scene", idOf(sel.Scene), "actor1", idOf(sel.Actor1), "seed", sel.Seed)
	return emitScript(cmd, s, opts)
}

func idOf(a *domain.Asset) string {
	if a == nil {
		return ""
	}
	return a.ID
}

func buildSession() (*session.Session, error) {
	s, err := builder.BuildSession(appCtx)
	if err != nil {
		return nil, fmt.Errorf("セッションの初期化に失敗したのだ: %w", err)
	}
	return s, nil
}

// emitScript は合成結果を表示し、必要ならファイルに保存するのだ。
func emitScript(cmd *cobra.Command, s *session.Session, opts composeOptions) error {
	out := cmd.OutOrStdout()
	if opts.clean {
		fmt.Fprintln(out, s.ExportText())
	} else {
		styles := director.NewStyleManager(out, colorProfile())
		fmt.Fprintln(out, styles.Render(s.Text()))
	}

	if !opts.save {
		return nil
	}
	path, err := appCtx.Publisher.PublishScript(cmd.Context(), s.ExportText())
	if err != nil {
		return fmt.Errorf("スクリプトの保存に失敗したのだ: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "saved: %s\n", path)
	return nil
}
