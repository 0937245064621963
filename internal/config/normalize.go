package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSlicing()
	c.normalizeFootage()
	c.normalizePlaylist()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.FootageDir) == "" {
		c.Paths.FootageDir = envOrDefault("GRIDCUT_FOOTAGE_DIR", defaultFootageDir)
	}
	if c.Paths.FootageDir, err = expandPath(c.Paths.FootageDir); err != nil {
		return fmt.Errorf("paths.footage_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.PlayDir) == "" {
		c.Paths.PlayDir = envOrDefault("GRIDCUT_PLAY_DIR", defaultPlayDir)
	}
	if c.Paths.PlayDir, err = expandPath(c.Paths.PlayDir); err != nil {
		return fmt.Errorf("paths.play_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.FeedCacheDir) == "" {
		c.Paths.FeedCacheDir = defaultFeedCacheDir()
	}
	if c.Paths.FeedCacheDir, err = expandPath(c.Paths.FeedCacheDir); err != nil {
		return fmt.Errorf("paths.feed_cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSlicing() {
	if c.Slicing.Concurrency <= 0 {
		c.Slicing.Concurrency = defaultConcurrency
	}
	if c.Slicing.FinalPlaySeconds <= 0 {
		c.Slicing.FinalPlaySeconds = defaultFinalPlaySeconds
	}
	if c.Slicing.ClipTimeout <= 0 {
		c.Slicing.ClipTimeout = defaultClipTimeout
	}
}

func (c *Config) normalizeFootage() {
	c.Footage.Quality = strings.TrimSpace(c.Footage.Quality)
	if c.Footage.Quality == "" {
		c.Footage.Quality = defaultQuality
	}
	c.Footage.FeedBaseURL = strings.TrimSpace(c.Footage.FeedBaseURL)
	if c.Footage.FeedBaseURL == "" {
		c.Footage.FeedBaseURL = defaultFeedBaseURL
	}
	if c.Footage.MinFreeGiB < 0 {
		c.Footage.MinFreeGiB = 0
	}
	if c.Footage.DownloadTimeout < 0 {
		c.Footage.DownloadTimeout = 0
	}
}

func (c *Config) normalizePlaylist() {
	c.Playlist.VLCBinary = strings.TrimSpace(c.Playlist.VLCBinary)
	if c.Playlist.VLCBinary == "" {
		c.Playlist.VLCBinary = defaultVLCBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "auto":
		c.Logging.Format = "auto"
	case "console", "json":
	default:
		c.Logging.Format = "auto"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
