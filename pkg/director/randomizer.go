package director

import (
	"math/rand/v2"
	"strconv"

	"github.com/shouni/go-prompt-reel/pkg/config"
	"github.com/shouni/go-prompt-reel/pkg/domain"
)

// Randomizer はカタログからシーンと主役をランダムに選び、新しいシードを振ります。
type Randomizer struct {
	rng              *rand.Rand
	actorProbability float64
	seedUpperBound   int
}

// Option は Randomizer の設定を変更します。
type Option func(*Randomizer)

// WithRand は乱数源を差し替えます。テストで再現性が必要な場合に使います。
func WithRand(rng *rand.Rand) Option {
	return func(r *Randomizer) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithActorProbability は主役を選ぶ確率を設定します。範囲外の値は無視されます。
func WithActorProbability(p float64) Option {
	return func(r *Randomizer) {
		if p >= 0 && p <= 1 {
			r.actorProbability = p
		}
	}
}

// WithSeedUpperBound はシード値の上限（含まない）を設定します。
func WithSeedUpperBound(n int) Option {
	return func(r *Randomizer) {
		if n > 0 {
			r.seedUpperBound = n
		}
	}
}

// NewRandomizer は Randomizer を生成します。
func NewRandomizer(opts ...Option) *Randomizer {
	r := &Randomizer{
		rng:              rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		actorProbability: config.DefaultActorProbability,
		seedUpperBound:   config.DefaultSeedUpperBound,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Randomize は sel を元に新しい選択状態を返します。
// アクション、インタラクション、レンダーターゲットは維持し、2人目は常に外して手動モードを抜けます。
func (r *Randomizer) Randomize(scenes, characters []domain.Asset, sel domain.Selection) domain.Selection {
	next := sel

	next.Scene = nil
	if len(scenes) > 0 {
		next.Scene = scenes[r.rng.IntN(len(scenes))].Clone()
	}

	next.Actor1 = nil
	if len(characters) > 0 && r.rng.Float64() < r.actorProbability {
		next.Actor1 = characters[r.rng.IntN(len(characters))].Clone()
	}
	next.Actor2 = nil
	next.ActiveSlot = domain.SlotActor1

	next.Seed = strconv.Itoa(r.rng.IntN(r.seedUpperBound))
	next.Manual = false
	return next
}
