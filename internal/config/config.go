package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// FootageDir holds full-game footage files, one per game.
	FootageDir string `toml:"footage_dir"`
	// PlayDir holds per-game subdirectories of sliced play clips.
	PlayDir string `toml:"play_dir"`
	// FeedCacheDir holds gzipped timing feeds for finished games.
	FeedCacheDir string `toml:"feed_cache_dir"`
	LogDir       string `toml:"log_dir"`
}

// Slicing contains configuration for cutting footage into play clips.
type Slicing struct {
	Concurrency int `toml:"concurrency"`
	// BroadcastMaxDuration caps broadcast clip length in seconds; timing
	// drift in the feed can otherwise produce absurdly long clips.
	BroadcastMaxDuration int `toml:"broadcast_max_duration"`
	// CoachMaxDuration caps coach clip length in seconds. Zero disables
	// the cap; coach timing is reliable enough not to need one.
	CoachMaxDuration int `toml:"coach_max_duration"`
	// ScoreboardTrimSeconds shaves the scoreboard slate off the front of
	// coach tape clips.
	ScoreboardTrimSeconds float64 `toml:"scoreboard_trim_seconds"`
	// FinalPlaySeconds is the assumed length of the last play of the
	// feed, which has no following row to take an end from.
	FinalPlaySeconds float64 `toml:"final_play_seconds"`
	// ClipTimeout bounds each ffmpeg invocation, in seconds.
	ClipTimeout int `toml:"clip_timeout"`
}

// Footage contains configuration for acquiring full-game video.
type Footage struct {
	// Quality selects the broadcast stream bitrate tier.
	Quality     string `toml:"quality"`
	FeedBaseURL string `toml:"feed_base_url"`
	// MinFreeGiB is the disk space required before a download starts.
	MinFreeGiB int `toml:"min_free_gib"`
	// DownloadTimeout bounds a whole download, in seconds. Zero disables
	// the bound; full games take as long as they take.
	DownloadTimeout int `toml:"download_timeout"`
}

// Playlist contains configuration for watching sliced plays.
type Playlist struct {
	VLCBinary   string `toml:"vlc_binary"`
	HideMarquee bool   `toml:"hide_marquee"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for gridcut.
//
// Configuration sections by subsystem:
//   - Paths: footage, play clip, feed cache, and log directories
//   - Slicing: clip boundary policy and worker pool sizing
//   - Footage: download source, quality, and disk preflight
//   - Playlist: vlc playback settings
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Slicing  Slicing  `toml:"slicing"`
	Footage  Footage  `toml:"footage"`
	Playlist Playlist `toml:"playlist"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/gridcut/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("gridcut.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories every command needs.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.FootageDir, c.Paths.PlayDir, c.Paths.FeedCacheDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// PlayDirFor returns the per-game clip directory under the play dir.
func (c *Config) PlayDirFor(eid string) string {
	return filepath.Join(c.Paths.PlayDir, eid)
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// RTMPDumpBinary returns the rtmpdump executable name used for coach tape.
func (c *Config) RTMPDumpBinary() string {
	return "rtmpdump"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
