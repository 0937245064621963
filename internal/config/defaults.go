package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultFootageDir = "~/.local/share/gridcut/footage"
	defaultPlayDir    = "~/.local/share/gridcut/plays"
	defaultLogDir     = "~/.local/share/gridcut/logs"

	defaultConcurrency           = 4
	defaultBroadcastMaxDuration  = 25
	defaultCoachMaxDuration      = 0
	defaultScoreboardTrimSeconds = 3.0
	defaultFinalPlaySeconds      = 40.0
	defaultClipTimeout           = 300

	defaultQuality         = "1600"
	defaultFeedBaseURL     = "http://e2.cdnl3.neulion.com/nfl/edl/nflgr/%d/%s.xml"
	defaultMinFreeGiB      = 3
	defaultDownloadTimeout = 0

	defaultVLCBinary = "vlc"
	defaultLogFormat = "auto"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults. Footage and
// play directories are left empty so environment overrides can apply during
// normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Slicing: Slicing{
			Concurrency:           defaultConcurrency,
			BroadcastMaxDuration:  defaultBroadcastMaxDuration,
			CoachMaxDuration:      defaultCoachMaxDuration,
			ScoreboardTrimSeconds: defaultScoreboardTrimSeconds,
			FinalPlaySeconds:      defaultFinalPlaySeconds,
			ClipTimeout:           defaultClipTimeout,
		},
		Footage: Footage{
			Quality:         defaultQuality,
			FeedBaseURL:     defaultFeedBaseURL,
			MinFreeGiB:      defaultMinFreeGiB,
			DownloadTimeout: defaultDownloadTimeout,
		},
		Playlist: Playlist{
			VLCBinary: defaultVLCBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultFeedCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "gridcut", "feeds")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/gridcut/feeds"
	}
	return filepath.Join(home, ".cache", "gridcut", "feeds")
}
