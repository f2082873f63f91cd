package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shouni/go-utils/envutil"
	"gopkg.in/yaml.v3"

	pkgconfig "github.com/shouni/go-prompt-reel/pkg/config"
	"github.com/shouni/go-prompt-reel/pkg/domain"
)

// 環境変数名の定義なのだ
const (
	EnvStoragePath   = "REEL_STORAGE_PATH"
	EnvOutputDir     = "REEL_OUTPUT_DIR"
	EnvConfigFile    = "REEL_CONFIG"
	EnvDefaultTarget = "REEL_DEFAULT_TARGET"
)

// FileConfig は YAML 設定ファイルの内容なのだ。未指定の項目はデフォルトのままになるのだ
type FileConfig struct {
	StoragePath      string                `yaml:"storage_path,omitempty"`
	OutputDir        string                `yaml:"output_dir,omitempty"`
	DefaultTarget    string                `yaml:"default_target,omitempty"`
	RenderTargets    []domain.RenderTarget `yaml:"render_targets,omitempty"`
	FlagCapable      []string              `yaml:"flag_capable,omitempty"`
	ActorProbability *float64              `yaml:"actor_probability,omitempty"`
	SeedUpperBound   int                   `yaml:"seed_upper_bound,omitempty"`
}

// Config はアプリケーション全体の設定を保持する構造体なのだ。
type Config struct {
	pkgconfig.Config

	// ConfigFile は読み込んだ YAML ファイルのパスなのだ（未使用なら空）
	ConfigFile string
}

// LoadConfig は環境変数（と REEL_CONFIG が指す YAML ファイル）から設定を読み込むのだ！
// 優先順位は デフォルト < YAML < 環境変数 なのだ
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(envutil.GetEnv(EnvConfigFile, ""))
}

// LoadConfigFrom は path の YAML ファイルを読み込み、環境変数で上書きした設定を返すのだ。
// path が空の場合は YAML を読まないのだ
func LoadConfigFrom(path string) (*Config, error) {
	cfg := &Config{Config: pkgconfig.DefaultConfig(), ConfigFile: path}

	if path != "" {
		fc, err := readFile(path)
		if err != nil {
			return nil, err
		}
		fc.apply(&cfg.Config)
	}

	cfg.StoragePath = envutil.GetEnv(EnvStoragePath, cfg.StoragePath)
	cfg.OutputDir = envutil.GetEnv(EnvOutputDir, cfg.OutputDir)
	cfg.DefaultTarget = envutil.GetEnv(EnvDefaultTarget, cfg.DefaultTarget)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("設定ファイル '%s' の解析に失敗しました: %w", path, err)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(c *pkgconfig.Config) {
	if fc.StoragePath != "" {
		c.StoragePath = fc.StoragePath
	}
	if fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}
	if fc.DefaultTarget != "" {
		c.DefaultTarget = fc.DefaultTarget
	}
	if len(fc.RenderTargets) > 0 {
		c.RenderTargets = fc.RenderTargets
	}
	if fc.FlagCapable != nil {
		c.FlagCapable = fc.FlagCapable
	}
	if fc.ActorProbability != nil {
		c.ActorProbability = *fc.ActorProbability
	}
	if fc.SeedUpperBound > 0 {
		c.SeedUpperBound = fc.SeedUpperBound
	}
}

// Validate は設定値の整合性を確認するのだ
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.StoragePath) == "" {
		errs = append(errs, fmt.Errorf("storage_path が空です"))
	}
	if c.ActorProbability < 0 || c.ActorProbability > 1 {
		errs = append(errs, fmt.Errorf("actor_probability は 0 から 1 の範囲で指定してください: %v", c.ActorProbability))
	}
	if c.SeedUpperBound <= 0 {
		errs = append(errs, fmt.Errorf("seed_upper_bound は正の値で指定してください: %d", c.SeedUpperBound))
	}

	known := false
	for _, t := range c.RenderTargets {
		if t.ID == c.DefaultTarget {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("default_target '%s' が render_targets に存在しません", c.DefaultTarget))
	}
	return errors.Join(errs...)
}
