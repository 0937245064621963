package slicer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gridcut/internal/games"
	"gridcut/internal/media/ffprobe"
	"gridcut/internal/pbp"
	"gridcut/internal/services"
)

// dryRunPlayLimit bounds a dry run to the first plays of the feed so a full
// end-to-end pass stays fast.
const dryRunPlayLimit = 10

// Options configure a slicing run.
type Options struct {
	// Concurrency is the worker pool size; each worker owns one blocking
	// ffmpeg invocation at a time.
	Concurrency int
	// MaxDurationSeconds caps clip length; zero means uncapped.
	MaxDurationSeconds int
	// TrimLeadInSeconds removes the scoreboard lead-in from each clip.
	TrimLeadInSeconds float64
	// FinalPlaySeconds bounds the feed's final, otherwise unbounded play.
	FinalPlaySeconds float64
	// ClipTimeout bounds one ffmpeg invocation; zero disables the bound.
	ClipTimeout time.Duration
	// DryRun restricts the run to the first plays of the feed.
	DryRun bool

	FFmpegBinary  string
	FFprobeBinary string
}

// Outcome summarizes a slicing run for logs and CLI output.
type Outcome struct {
	Scheduled     int
	Completed     int
	FailedPlayIDs []string
	OffsetSeconds float64
}

// Slicer turns timed play intervals into per-play clip files.
type Slicer struct {
	runner services.Runner
	logger *slog.Logger
	opts   Options
}

// New constructs a Slicer.
func New(runner services.Runner, logger *slog.Logger, opts Options) *Slicer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if strings.TrimSpace(opts.FFmpegBinary) == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(opts.FFprobeBinary) == "" {
		opts.FFprobeBinary = "ffprobe"
	}
	return &Slicer{runner: runner, logger: logger, opts: opts}
}

// Unsliced returns the plays with no readable clip file in outDir, in feed
// order. A dry run considers only the first plays of the feed.
func Unsliced(plays *pbp.PlayMap, outDir string, dryRun bool) []pbp.Play {
	var unsliced []pbp.Play
	for i, p := range plays.Plays() {
		if dryRun && i >= dryRunPlayLimit {
			break
		}
		if !readable(filepath.Join(outDir, p.FileName())) {
			unsliced = append(unsliced, p)
		}
	}
	return unsliced
}

// Run slices every play of the game that has no clip yet. Per-play
// failures are isolated and reported through the Outcome; they do not abort
// sibling work. Run blocks until every dispatched invocation has finished.
func (s *Slicer) Run(ctx context.Context, game games.Game, plays *pbp.PlayMap, dialect pbp.Dialect, videoPath, outDir string) (Outcome, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Outcome{}, fmt.Errorf("create play directory %q: %w", outDir, err)
	}

	// One slicing run per game directory at a time; a second run would
	// race the same clip files.
	lock := flock.New(filepath.Join(outDir, ".gridcut.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return Outcome{}, fmt.Errorf("acquire slice lock: %w", err)
	}
	if !locked {
		return Outcome{}, fmt.Errorf("game %s is already being sliced", game.EID)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	logger := s.logger.With(
		slog.String("game", game.EID),
		slog.String("dialect", dialect.String()),
		slog.String("run_id", uuid.NewString()),
	)

	unsliced := Unsliced(plays, outDir, s.opts.DryRun)
	if len(unsliced) == 0 {
		switch {
		case countClips(outDir) == 0:
			// Nothing sliced and nothing to slice: the timing data is
			// missing or corrupt, not merely finished.
			logger.Warn("no unsliced plays remain and no clips exist; timing data may be unavailable or corrupt")
		case s.opts.DryRun:
			// Plays beyond the dry-run window may still be unsliced.
			logger.Info("first plays already sliced; dry run has nothing to do")
		default:
			logger.Info("all plays already sliced")
		}
		return Outcome{}, nil
	}

	offset := 0.0
	if dialect == pbp.Broadcast {
		offset = s.broadcastOffset(ctx, logger, unsliced[0], videoPath)
	}

	params := Params{
		OffsetSeconds:      offset,
		MaxDurationSeconds: s.opts.MaxDurationSeconds,
		TrimLeadInSeconds:  s.opts.TrimLeadInSeconds,
		FinalPlaySeconds:   s.opts.FinalPlaySeconds,
	}

	logger.Info("slicing plays",
		slog.Int("unsliced", len(unsliced)),
		slog.Int("concurrency", s.opts.Concurrency),
		slog.Float64("offset_seconds", offset),
		slog.Bool("dry_run", s.opts.DryRun),
	)

	var (
		mu     sync.Mutex
		failed []string
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.Concurrency)
	for _, play := range unsliced {
		play := play
		group.Go(func() error {
			if err := s.slicePlay(groupCtx, play, videoPath, outDir, params); err != nil {
				logger.Error("slice play failed", slog.String("play", play.ID), slog.Any("error", err))
				mu.Lock()
				failed = append(failed, play.ID)
				mu.Unlock()
			}
			// Failures never cancel sibling plays.
			return nil
		})
	}
	_ = group.Wait()

	outcome := Outcome{
		Scheduled:     len(unsliced),
		Completed:     len(unsliced) - len(failed),
		FailedPlayIDs: failed,
		OffsetSeconds: offset,
	}
	logger.Info("slicing finished",
		slog.Int("completed", outcome.Completed),
		slog.Int("failed", len(failed)),
	)
	return outcome, nil
}

// broadcastOffset reconciles the feed's reported end of broadcast against
// the probed duration of the downloaded file. Either value missing degrades
// to a zero offset with a warning rather than aborting the run.
func (s *Slicer) broadcastOffset(ctx context.Context, logger *slog.Logger, sample pbp.Play, videoPath string) float64 {
	if sample.BroadcastEnd == nil {
		logger.Warn("feed carries no end-of-broadcast timestamp; slicing without offset")
		return 0
	}
	duration, err := ffprobe.Duration(ctx, s.runner, s.opts.FFprobeBinary, videoPath)
	if err != nil {
		logger.Warn("video duration probe failed; slicing without offset", slog.Any("error", err))
		return 0
	}
	return ComputeOffset(*sample.BroadcastEnd, duration)
}

func (s *Slicer) slicePlay(ctx context.Context, play pbp.Play, videoPath, outDir string, params Params) error {
	task, err := Build(play, videoPath, outDir, params)
	if err != nil {
		return err
	}

	clipCtx := ctx
	if s.opts.ClipTimeout > 0 {
		var cancel context.CancelFunc
		clipCtx, cancel = context.WithTimeout(ctx, s.opts.ClipTimeout)
		defer cancel()
	}

	result, err := s.runner.Run(clipCtx, s.opts.FFmpegBinary, task.Args()...)
	if err != nil {
		// A partial clip would be mistaken for a finished one on the
		// next run; remove it so the play is re-selected.
		_ = os.Remove(task.Dest)
		if result.Output != "" {
			return fmt.Errorf("%w\n%s", err, services.Indent(result.Output))
		}
		return err
	}
	return nil
}

func readable(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

func countClips(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".mp4") {
			count++
		}
	}
	return count
}
