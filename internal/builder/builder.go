package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-prompt-reel/examples"
	"github.com/shouni/go-prompt-reel/internal/config"
	"github.com/shouni/go-prompt-reel/pkg/bundle"
	"github.com/shouni/go-prompt-reel/pkg/catalog"
	"github.com/shouni/go-prompt-reel/pkg/director"
	"github.com/shouni/go-prompt-reel/pkg/prompts"
	"github.com/shouni/go-prompt-reel/pkg/publisher"
	"github.com/shouni/go-prompt-reel/pkg/session"
	"github.com/shouni/go-prompt-reel/pkg/storage"
)

// BuildAppContext はストレージを開き、カタログを読み込んだ AppContext を構築します。
// 呼び出し側は使用後に Close を呼ぶ必要があります。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	reel, err := examples.LoadDefaultReel()
	if err != nil {
		return nil, fmt.Errorf("組み込みデータの読み込みに失敗しました: %w", err)
	}

	kv, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ストレージの初期化に失敗しました: %w", err)
	}

	appCtx, err := buildWithStore(ctx, cfg, reel, kv)
	if err != nil {
		kv.Close()
		return nil, err
	}
	return appCtx, nil
}

// openStore は設定に応じて永続ストアを開きます。
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.Ephemeral {
		slog.InfoContext(ctx, "エフェメラルモードのためカスタムアセットは保存されません")
		return storage.NewMemoryStore(), nil
	}
	return storage.NewSQLiteStore(ctx, cfg.StoragePath)
}

func buildWithStore(ctx context.Context, cfg *config.Config, reel *examples.Reel, kv storage.Store) (*AppContext, error) {
	store, err := catalog.NewStore(kv, reel.Characters, reel.Scenes)
	if err != nil {
		return nil, fmt.Errorf("カタログの初期化に失敗しました: %w", err)
	}
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("カタログの読み込みに失敗しました: %w", err)
	}

	registry, err := prompts.NewRegistry(cfg.RenderTargets, cfg.FlagCapable)
	if err != nil {
		return nil, fmt.Errorf("レンダーターゲットの初期化に失敗しました: %w", err)
	}

	importer, err := bundle.NewImporter(nil, store)
	if err != nil {
		return nil, fmt.Errorf("インポーターの初期化に失敗しました: %w", err)
	}

	slog.DebugContext(ctx, "アプリケーションを構築しました",
		"storage", cfg.StoragePath,
		"characters", len(store.Characters()),
		"scenes", len(store.Scenes()))

	randomizer := director.NewRandomizer(
		director.WithActorProbability(cfg.ActorProbability),
		director.WithSeedUpperBound(cfg.SeedUpperBound),
	)
	pub := publisher.NewReelPublisher(publisher.NewLocalWriter(), publisher.Options{OutputDir: cfg.OutputDir})

	return &AppContext{
		Config:     cfg,
		Reel:       reel,
		Catalog:    store,
		Composer:   prompts.NewComposer(registry),
		Randomizer: randomizer,
		Importer:   importer,
		Publisher:  pub,
		kv:         kv,
	}, nil
}

// BuildSession は初期状態のセッションを構築します。
func BuildSession(appCtx *AppContext) (*session.Session, error) {
	return session.New(
		appCtx.Catalog,
		appCtx.Composer,
		appCtx.Randomizer,
		session.WithAction(appCtx.Reel.DefaultAction()),
		session.WithInteraction(appCtx.Reel.DefaultInteraction()),
		session.WithTarget(appCtx.Config.DefaultTarget),
	)
}
