package config

import (
	"github.com/shouni/go-prompt-reel/pkg/domain"
)

// デフォルト値の定義
const (
	DefaultTargetID         = "generic"
	DefaultStoragePath      = ".reel/reel.db"
	DefaultOutputDir        = "output"
	DefaultActorProbability = 0.8
	DefaultSeedUpperBound   = 10_000_000

	// KeyCustomCharacters / KeyCustomScenes は永続ストレージ上のキー名です。
	KeyCustomCharacters = "custom_characters"
	KeyCustomScenes     = "custom_scenes"
)

// DefaultRenderTargets は組み込みのレンダーターゲット一覧です。並び順は表示順を兼ねます。
var DefaultRenderTargets = []domain.RenderTarget{
	{ID: "generic", Label: "Generic (SDXL/Flux)"},
	{ID: "mj7", Label: "Midjourney v7", Suffix: "--v 7 --style raw"},
	{ID: "mj61", Label: "Midjourney v6.1", Suffix: "--v 6.1 --style raw"},
	{ID: "mj6", Label: "Midjourney v6.0", Suffix: "--v 6.0 --style raw"},
	{ID: "niji6", Label: "Niji Journey v6", Suffix: "--niji 6"},
	{ID: "dalle3", Label: "DALL-E 3"},
	{ID: "seed", Label: "SeaArt / CivitAI"},
}

// DefaultFlagCapable は --cref / --sref を受け付けるエンジンの ID です。
var DefaultFlagCapable = []string{"mj61", "mj7", "niji6"}

// Config はカタログとコンポーザーを動作させるための基本設定です。
type Config struct {
	// --- Storage Settings ---
	StoragePath string // SQLite ファイルのパス（":memory:" でメモリ上）
	Ephemeral   bool   // true の場合は永続化せずプロセス内だけで保持する

	// --- Output Settings ---
	OutputDir string // スクリプトやバンドルの書き出し先

	// --- Composer Settings ---
	DefaultTarget string
	RenderTargets []domain.RenderTarget
	FlagCapable   []string

	// --- Randomizer Settings ---
	ActorProbability float64
	SeedUpperBound   int
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	targets := make([]domain.RenderTarget, len(DefaultRenderTargets))
	copy(targets, DefaultRenderTargets)
	flags := make([]string, len(DefaultFlagCapable))
	copy(flags, DefaultFlagCapable)

	return Config{
		StoragePath:      DefaultStoragePath,
		OutputDir:        DefaultOutputDir,
		DefaultTarget:    DefaultTargetID,
		RenderTargets:    targets,
		FlagCapable:      flags,
		ActorProbability: DefaultActorProbability,
		SeedUpperBound:   DefaultSeedUpperBound,
	}
}
