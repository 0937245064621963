package footage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gridcut/internal/games"
	"gridcut/internal/services"
)

const (
	// rtmpIncompleteExit is rtmpdump's exit status for a stream that
	// stopped before completion; the partial file is still usable and the
	// download is retry-worthy.
	rtmpIncompleteExit = 2

	rtmpTimeoutSeconds = 10
	dryRunStopSeconds  = 30
	httpTimeoutSeconds = 120
)

// Options configure footage downloads.
type Options struct {
	// Quality selects the broadcast stream bitrate tier (400..4500).
	Quality string
	// Condensed downloads the short recap stream instead of the whole
	// broadcast.
	Condensed bool
	// DryRun caps the download at thirty seconds of footage.
	DryRun bool
	// MinFreeBytes is the disk space required before a download starts.
	MinFreeBytes uint64
	// DownloadTimeout bounds the whole external invocation; zero disables
	// the bound.
	DownloadTimeout time.Duration

	FFmpegBinary   string
	RTMPDumpBinary string
}

// Downloader acquires full-game footage files.
type Downloader struct {
	runner services.Runner
	logger *slog.Logger
	client *http.Client
	opts   Options
	probe  func(ctx context.Context, client *http.Client, urls []string) (string, error)
}

// NewDownloader constructs a Downloader. client may be nil.
func NewDownloader(runner services.Runner, logger *slog.Logger, client *http.Client, opts Options) *Downloader {
	if strings.TrimSpace(opts.Quality) == "" {
		opts.Quality = "1600"
	}
	if strings.TrimSpace(opts.FFmpegBinary) == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(opts.RTMPDumpBinary) == "" {
		opts.RTMPDumpBinary = "rtmpdump"
	}
	return &Downloader{
		runner: runner,
		logger: logger,
		client: client,
		opts:   opts,
		probe:  FirstValidBroadcastURL,
	}
}

// FullFootagePath returns where the game's complete footage file lives
// inside a footage directory.
func FullFootagePath(footageDir string, game games.Game) string {
	return filepath.Join(footageDir, game.EID+".mp4")
}

// Broadcast downloads the televised recording of the game via ffmpeg and
// returns the footage file path.
func (d *Downloader) Broadcast(ctx context.Context, game games.Game, footageDir string) (string, error) {
	dest, err := d.prepareDest(game, footageDir)
	if err != nil {
		return "", err
	}

	urls := BroadcastURLs(game, d.opts.Quality, d.opts.Condensed)
	url, err := d.probe(ctx, d.client, urls)
	if err != nil {
		return "", fmt.Errorf("game %s: %w", game.EID, err)
	}

	args := make([]string, 0, 12)
	if !d.isAvconv(ctx) {
		args = append(args, "-timeout", fmt.Sprint(httpTimeoutSeconds))
	}
	args = append(args, "-i", url)
	if d.opts.DryRun {
		args = append(args, "-t", fmt.Sprint(dryRunStopSeconds))
	}
	args = append(args,
		"-absf", "aac_adtstoasc",
		"-acodec", "copy",
		"-vcodec", "copy",
		dest,
	)

	d.logger.Info("downloading broadcast footage",
		slog.String("game", game.Description()),
		slog.String("url", url),
	)
	runCtx, cancel := d.invocationCtx(ctx)
	defer cancel()
	result, err := d.runner.Run(runCtx, d.opts.FFmpegBinary, args...)
	if err != nil {
		return "", fmt.Errorf("download game %s: %w\n%s", game.EID, err, services.Indent(result.Output))
	}
	d.logger.Info("broadcast download complete", slog.String("game", game.EID), slog.String("path", dest))
	return dest, nil
}

// Coach downloads the unedited coach tape via rtmpdump and returns the
// footage file path. rtmpdump exiting with status 2 leaves a usable partial
// file behind and is reported as incomplete rather than failed.
func (d *Downloader) Coach(ctx context.Context, game games.Game, footageDir string) (string, error) {
	dest, err := d.prepareDest(game, footageDir)
	if err != nil {
		return "", err
	}

	loc := CoachLocation(game)
	args := []string{
		"--rtmp", loc.Server,
		"--app", loc.App,
		"--playpath", loc.PlayPath,
		"--timeout", fmt.Sprint(rtmpTimeoutSeconds),
	}
	if d.opts.DryRun {
		args = append(args, "--stop", fmt.Sprint(dryRunStopSeconds))
	}
	args = append(args, "-o", dest)

	d.logger.Info("downloading coach footage",
		slog.String("game", game.Description()),
		slog.String("playpath", loc.PlayPath),
	)
	runCtx, cancel := d.invocationCtx(ctx)
	defer cancel()
	result, err := d.runner.Run(runCtx, d.opts.RTMPDumpBinary, args...)
	if err != nil {
		if result.ExitCode == rtmpIncompleteExit {
			d.logger.Warn("coach download incomplete but retry-worthy", slog.String("game", game.EID))
			return dest, services.Wrap(services.ErrToolIncomplete, "footage", "download coach "+game.EID, nil)
		}
		_ = os.Remove(dest)
		return "", fmt.Errorf("download game %s: %w\n%s", game.EID, err, services.Indent(result.Output))
	}

	info, statErr := os.Stat(dest)
	if statErr != nil || info.Size() == 0 {
		_ = os.Remove(dest)
		return "", services.Wrap(services.ErrExternalTool, "footage",
			fmt.Sprintf("download coach %s: no data retrieved; coach footage may not exist yet", game.EID), nil)
	}
	d.logger.Info("coach download complete", slog.String("game", game.EID), slog.String("path", dest))
	return dest, nil
}

// prepareDest ensures the footage directory exists, enough disk is free,
// and no footage is already present at the destination.
func (d *Downloader) prepareDest(game games.Game, footageDir string) (string, error) {
	if err := game.Validate(); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "footage", err.Error(), nil)
	}
	if err := os.MkdirAll(footageDir, 0o755); err != nil {
		return "", fmt.Errorf("create footage directory %q: %w", footageDir, err)
	}
	dest := FullFootagePath(footageDir, game)
	if _, err := os.Stat(dest); err == nil {
		return "", services.Wrap(services.ErrOutputExists, "footage", dest, nil)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("check footage path %q: %w", dest, err)
	}
	if d.opts.MinFreeBytes > 0 {
		if err := CheckDiskSpace(footageDir, d.opts.MinFreeBytes); err != nil {
			return "", err
		}
	}
	return dest, nil
}

func (d *Downloader) invocationCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.opts.DownloadTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.opts.DownloadTimeout)
}

// isAvconv reports whether the configured ffmpeg binary is actually the
// avconv fork, which rejects the -timeout flag.
func (d *Downloader) isAvconv(ctx context.Context) bool {
	result, err := d.runner.Run(ctx, d.opts.FFmpegBinary, "-version")
	if err != nil {
		return false
	}
	return strings.Contains(result.Output, "DEPRECATED")
}
