package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"gridcut/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("GRIDCUT_FOOTAGE_DIR", "")
	t.Setenv("GRIDCUT_PLAY_DIR", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantFootage := filepath.Join(tempHome, ".local", "share", "gridcut", "footage")
	if cfg.Paths.FootageDir != wantFootage {
		t.Fatalf("unexpected footage dir: got %q want %q", cfg.Paths.FootageDir, wantFootage)
	}
	if cfg.Paths.PlayDir != filepath.Join(tempHome, ".local", "share", "gridcut", "plays") {
		t.Fatalf("unexpected play dir: %q", cfg.Paths.PlayDir)
	}
	if cfg.Paths.FeedCacheDir != filepath.Join(tempHome, ".cache", "gridcut", "feeds") {
		t.Fatalf("unexpected feed cache dir: %q", cfg.Paths.FeedCacheDir)
	}
	if cfg.Slicing.Concurrency != 4 {
		t.Fatalf("unexpected default concurrency: %d", cfg.Slicing.Concurrency)
	}
	if cfg.Slicing.BroadcastMaxDuration != 25 {
		t.Fatalf("unexpected broadcast cap: %d", cfg.Slicing.BroadcastMaxDuration)
	}
	if cfg.Slicing.CoachMaxDuration != 0 {
		t.Fatalf("coach clips should be uncapped by default, got %d", cfg.Slicing.CoachMaxDuration)
	}
	if cfg.Footage.Quality != "1600" {
		t.Fatalf("unexpected default quality: %q", cfg.Footage.Quality)
	}
	if cfg.Logging.Format != "auto" {
		t.Fatalf("unexpected default log format: %q", cfg.Logging.Format)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.FootageDir, cfg.Paths.PlayDir, cfg.Paths.FeedCacheDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "gridcut.toml")

	type payload struct {
		Paths struct {
			FootageDir string `toml:"footage_dir"`
		} `toml:"paths"`
		Slicing struct {
			Concurrency          int `toml:"concurrency"`
			BroadcastMaxDuration int `toml:"broadcast_max_duration"`
		} `toml:"slicing"`
		Footage struct {
			Quality string `toml:"quality"`
		} `toml:"footage"`
	}
	custom := payload{}
	custom.Paths.FootageDir = filepath.Join(tempDir, "footage")
	custom.Slicing.Concurrency = 8
	custom.Slicing.BroadcastMaxDuration = 30
	custom.Footage.Quality = "800"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.FootageDir != custom.Paths.FootageDir {
		t.Fatalf("expected footage dir from file, got %q", cfg.Paths.FootageDir)
	}
	if cfg.Slicing.Concurrency != 8 {
		t.Fatalf("expected concurrency 8, got %d", cfg.Slicing.Concurrency)
	}
	if cfg.Slicing.BroadcastMaxDuration != 30 {
		t.Fatalf("expected broadcast cap 30, got %d", cfg.Slicing.BroadcastMaxDuration)
	}
	if cfg.Footage.Quality != "800" {
		t.Fatalf("expected quality 800, got %q", cfg.Footage.Quality)
	}
}

func TestEnvVarFillsEmptyDirectories(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("GRIDCUT_PLAY_DIR", filepath.Join(tempDir, "plays"))
	t.Setenv("GRIDCUT_FOOTAGE_DIR", filepath.Join(tempDir, "footage"))

	configPath := filepath.Join(tempDir, "gridcut.toml")
	if err := os.WriteFile(configPath, []byte("[slicing]\nconcurrency = 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.PlayDir != filepath.Join(tempDir, "plays") {
		t.Fatalf("expected play dir from env, got %q", cfg.Paths.PlayDir)
	}
	if cfg.Paths.FootageDir != filepath.Join(tempDir, "footage") {
		t.Fatalf("expected footage dir from env, got %q", cfg.Paths.FootageDir)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "broadcast_max_duration") {
		t.Fatalf("sample config missing slicing keys: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}

	if runtime.GOOS != "windows" {
		if !strings.Contains(cfg.Paths.FootageDir, "gridcut") {
			t.Fatalf("expected footage dir to contain gridcut, got %q", cfg.Paths.FootageDir)
		}
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Slicing.BroadcastMaxDuration = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive broadcast cap")
	}

	cfg = config.Default()
	cfg.Slicing.ScoreboardTrimSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative scoreboard trim")
	}

	cfg = config.Default()
	cfg.Footage.Quality = "1080"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown quality tier")
	}

	cfg = config.Default()
	cfg.Footage.FeedBaseURL = "http://example.com/feed.xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for feed url without verbs")
	}
}

func TestNormalizeLogFormatFallsBackToAuto(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "gridcut.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nformat = \"fancy\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Format != "auto" {
		t.Fatalf("unknown formats should normalize to auto, got %q", cfg.Logging.Format)
	}
}
