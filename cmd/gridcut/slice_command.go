package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gridcut/internal/config"
	"gridcut/internal/footage"
	"gridcut/internal/pbp"
	"gridcut/internal/slicer"
)

// sliceTuning resolves the dialect-specific slicing knobs. Coach tape opens
// every play on a scoreboard slate, so the lead-in trim applies there;
// broadcast footage starts at live action but its loose timing needs the
// duration cap instead.
func sliceTuning(cfg *config.Config, broadcast bool) (pbp.Dialect, int, float64) {
	if broadcast {
		return pbp.Broadcast, cfg.Slicing.BroadcastMaxDuration, 0
	}
	return pbp.Coach, cfg.Slicing.CoachMaxDuration, cfg.Slicing.ScoreboardTrimSeconds
}

func newSliceCommand(ctx *commandContext) *cobra.Command {
	var gf gameFlags
	var broadcast bool
	var dryRun bool
	var footagePath string

	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Slice game footage into per-play clips",
		Long: "Slice cuts the game's full footage file into one clip per play using\n" +
			"the vendor timing feed. Plays that already have a clip are skipped, so\n" +
			"re-running after a growing feed or a partial failure only cuts what is\n" +
			"missing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			game, err := gf.game()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			dialect, maxDuration, trim := sliceTuning(cfg, broadcast)

			video := strings.TrimSpace(footagePath)
			if video == "" {
				video = footage.FullFootagePath(cfg.Paths.FootageDir, game)
			}
			if _, err := os.Stat(video); err != nil {
				return fmt.Errorf("footage file %s: %w (download it with `gridcut footage`)", video, err)
			}

			source := pbp.NewFeedSource(cfg.Paths.FeedCacheDir, cfg.Footage.FeedBaseURL, nil)
			plays, err := pbp.NewCache(source).Plays(cmd.Context(), game, dialect)
			if err != nil {
				if errors.Is(err, pbp.ErrNoTimingData) {
					return fmt.Errorf("game %s: %w", game.EID, err)
				}
				return err
			}

			s := slicer.New(ctx.runner(), logger, slicer.Options{
				Concurrency:        cfg.Slicing.Concurrency,
				MaxDurationSeconds: maxDuration,
				TrimLeadInSeconds:  trim,
				FinalPlaySeconds:   cfg.Slicing.FinalPlaySeconds,
				ClipTimeout:        time.Duration(cfg.Slicing.ClipTimeout) * time.Second,
				DryRun:             dryRun,
				FFmpegBinary:       cfg.FFmpegBinary(),
				FFprobeBinary:      cfg.FFprobeBinary(),
			})

			outcome, err := s.Run(cmd.Context(), game, plays, dialect, video, cfg.PlayDirFor(game.EID))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sliced %d of %d plays into %s\n", outcome.Completed, outcome.Scheduled, cfg.PlayDirFor(game.EID))
			if len(outcome.FailedPlayIDs) > 0 {
				fmt.Fprintf(out, "Failed plays: %s\n", strings.Join(outcome.FailedPlayIDs, ", "))
				return fmt.Errorf("%d plays failed; re-run to retry them", len(outcome.FailedPlayIDs))
			}
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().BoolVar(&broadcast, "broadcast", false, "Footage is a broadcast recording rather than coach tape")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Slice only the first plays of the feed")
	cmd.Flags().StringVar(&footagePath, "footage", "", "Footage file to slice (defaults to the footage directory)")
	return cmd
}
