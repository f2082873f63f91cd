package builder

import (
	"github.com/shouni/go-prompt-reel/examples"
	"github.com/shouni/go-prompt-reel/internal/config"
	"github.com/shouni/go-prompt-reel/pkg/bundle"
	"github.com/shouni/go-prompt-reel/pkg/catalog"
	"github.com/shouni/go-prompt-reel/pkg/director"
	"github.com/shouni/go-prompt-reel/pkg/prompts"
	"github.com/shouni/go-prompt-reel/pkg/publisher"
	"github.com/shouni/go-prompt-reel/pkg/storage"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各コマンドに渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config           // Configは、環境変数と設定ファイルから読み込まれた設定です。
	Reel       *examples.Reel           // Reelは、組み込みのアクション・インタラクション・アセット一式です。
	Catalog    *catalog.Store           // Catalogは、組み込みとカスタムを統合したアセットカタログです。
	Composer   *prompts.Composer        // Composerは、選択状態からプロンプトを合成します。
	Randomizer *director.Randomizer     // Randomizerは、シーンと主役をランダムに選びます。
	Importer   *bundle.Importer         // Importerは、バンドルを解析してカタログにマージします。
	Publisher  *publisher.ReelPublisher // Publisherは、スクリプトやバンドルを書き出します。
	kv         storage.Store            // kv はカスタムアセットを永続化するストレージ
}

// Close はストレージを閉じます。
func (a *AppContext) Close() error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}
