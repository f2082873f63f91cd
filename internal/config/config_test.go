package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	pkgconfig "github.com/shouni/go-prompt-reel/pkg/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvStoragePath, EnvOutputDir, EnvConfigFile, EnvDefaultTarget} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig失敗: %v", err)
	}
	if !reflect.DeepEqual(cfg.Config, pkgconfig.DefaultConfig()) {
		t.Errorf("デフォルト設定と一致しません: %+v", cfg.Config)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "reel.yaml")
	content := `storage_path: /tmp/from-file.db
output_dir: renders
default_target: pony
render_targets:
  - id: generic
    label: Generic
  - id: pony
    label: Pony Diffusion
    prefix: "score_9,"
    suffix: "--ar 2:3"
flag_capable: []
actor_probability: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("設定ファイルの書き込みに失敗: %v", err)
	}
	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvOutputDir, "from-env")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig失敗: %v", err)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile: %s", cfg.ConfigFile)
	}
	if cfg.StoragePath != "/tmp/from-file.db" {
		t.Errorf("YAML の storage_path が反映されていません: %s", cfg.StoragePath)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("環境変数が YAML より優先されるべきです: %s", cfg.OutputDir)
	}
	if len(cfg.RenderTargets) != 2 || cfg.RenderTargets[1].Prefix != "score_9," {
		t.Errorf("render_targets が反映されていません: %+v", cfg.RenderTargets)
	}
	if len(cfg.FlagCapable) != 0 {
		t.Errorf("空の flag_capable で上書きされるべきです: %v", cfg.FlagCapable)
	}
	if cfg.ActorProbability != 0.5 || cfg.SeedUpperBound != pkgconfig.DefaultSeedUpperBound {
		t.Errorf("ランダマイザ設定が不正です: %v %d", cfg.ActorProbability, cfg.SeedUpperBound)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	if _, err := LoadConfigFrom(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("存在しないファイルはエラーになるべきです")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("render_targets: {"), 0o644)
	if _, err := LoadConfigFrom(broken); err == nil {
		t.Error("不正な YAML はエラーになるべきです")
	}

	t.Setenv(EnvDefaultTarget, "unknown-engine")
	if _, err := LoadConfigFrom(""); err == nil {
		t.Error("未知の default_target はエラーになるべきです")
	}
}
