package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/shouni/go-prompt-reel/internal/builder"
	"github.com/shouni/go-prompt-reel/internal/config"
)

// globalOptions はすべてのサブコマンドに共通するフラグなのだ。
type globalOptions struct {
	verbose     bool
	configFile  string
	storagePath string
	outputDir   string
	noColor     bool
	ephemeral   bool
}

var (
	globals globalOptions
	appCtx  *builder.AppContext
)

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "シーンとキャストを組み合わせて画像生成用のプロンプトを作るのだ。",
	Long: `カタログからシーン・キャラクター・アクションを選び、
レンダーエンジンごとのフラグを付けたプロンプトを合成するのだ。
カスタムアセットはローカルの SQLite に保存され、バンドルとして入出力できるのだよ。`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE:  preRunAppE,
	PersistentPostRunE: postRunAppE,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globals.verbose, "verbose", "v", false, "デバッグログを出力するのだ。")
	rootCmd.PersistentFlags().StringVar(&globals.configFile, "config", "", "YAML 設定ファイルのパスなのだ（未指定なら REEL_CONFIG）。")
	rootCmd.PersistentFlags().StringVar(&globals.storagePath, "storage", "", "カスタムアセットを保存する SQLite ファイルなのだ。")
	rootCmd.PersistentFlags().StringVarP(&globals.outputDir, "output-dir", "o", "", "スクリプトやバンドルの書き出し先なのだ。")
	rootCmd.PersistentFlags().BoolVar(&globals.noColor, "no-color", false, "色付き表示を無効にするのだ。")
	rootCmd.PersistentFlags().BoolVar(&globals.ephemeral, "ephemeral", false, "カスタムアセットを保存せずに実行するのだ。")

	rootCmd.AddCommand(
		composeCmd,
		randomCmd,
		importCmd,
		exportCmd,
		cardCmd,
		newCmd,
		listCmd,
		categoriesCmd,
		actionsCmd,
		targetsCmd,
		resetCmd,
	)
}

// setupLogger は --verbose に応じて slog のデフォルトハンドラを差し替えるのだ。
func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// loadConfig は設定を読み込み、フラグで指定された値で上書きするのだ。
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.LoadConfigFrom(globals.configFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	if globals.storagePath != "" {
		cfg.StoragePath = globals.storagePath
	}
	if globals.outputDir != "" {
		cfg.OutputDir = globals.outputDir
	}
	if globals.ephemeral {
		cfg.Ephemeral = true
	}
	return cfg, nil
}

// preRunAppE は、コマンド実行前に設定を読み込みアプリケーションを組み立てるのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	setupLogger(globals.verbose)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗したのだ: %w", err)
	}

	appCtx, err = builder.BuildAppContext(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗したのだ: %w", err)
	}
	return nil
}

// postRunAppE はストレージを閉じるのだ。
func postRunAppE(cmd *cobra.Command, args []string) error {
	if appCtx == nil {
		return nil
	}
	err := appCtx.Close()
	appCtx = nil
	return err
}

// colorProfile は標準出力が端末のときだけ色付きのプロファイルを返すのだ。
// NO_COLOR や CLICOLOR_FORCE の扱いは termenv に任せるのだよ。
func colorProfile() termenv.Profile {
	if globals.noColor {
		return termenv.Ascii
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if appCtx != nil {
			appCtx.Close()
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
