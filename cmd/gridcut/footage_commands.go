package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gridcut/internal/config"
	"gridcut/internal/footage"
	"gridcut/internal/games"
	"gridcut/internal/services"
)

func newFootageCommand(ctx *commandContext) *cobra.Command {
	footageCmd := &cobra.Command{
		Use:   "footage",
		Short: "Download full-game footage",
	}

	footageCmd.AddCommand(newFootageBroadcastCommand(ctx))
	footageCmd.AddCommand(newFootageCoachCommand(ctx))

	return footageCmd
}

func newFootageBroadcastCommand(ctx *commandContext) *cobra.Command {
	var gf gameFlags
	var quality string
	var condensed bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Download the televised recording of a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			game, err := gf.game()
			if err != nil {
				return err
			}
			d, err := newDownloader(ctx, cfg, footage.Options{
				Quality:   strings.TrimSpace(quality),
				Condensed: condensed,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}

			path, err := d.Broadcast(cmd.Context(), game, cfg.Paths.FootageDir)
			if err != nil {
				return describeDownloadError(err, game)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Broadcast footage saved to %s\n", path)
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().StringVar(&quality, "quality", "", "Stream bitrate tier (defaults to footage.quality)")
	cmd.Flags().BoolVar(&condensed, "condensed", false, "Download the short recap stream instead of the whole broadcast")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Download only the first 30 seconds")
	return cmd
}

func newFootageCoachCommand(ctx *commandContext) *cobra.Command {
	var gf gameFlags
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Download the unedited coach tape of a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			game, err := gf.game()
			if err != nil {
				return err
			}
			d, err := newDownloader(ctx, cfg, footage.Options{DryRun: dryRun})
			if err != nil {
				return err
			}

			path, err := d.Coach(cmd.Context(), game, cfg.Paths.FootageDir)
			if errors.Is(err, services.ErrToolIncomplete) {
				fmt.Fprintf(cmd.OutOrStdout(), "Download stopped early; partial footage kept at %s. Re-run later for the rest.\n", path)
				return err
			}
			if err != nil {
				return describeDownloadError(err, game)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Coach footage saved to %s\n", path)
			return nil
		},
	}

	gf.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Download only the first 30 seconds")
	return cmd
}

func newDownloader(ctx *commandContext, cfg *config.Config, opts footage.Options) (*footage.Downloader, error) {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	if opts.Quality == "" {
		opts.Quality = cfg.Footage.Quality
	}
	opts.MinFreeBytes = uint64(cfg.Footage.MinFreeGiB) << 30
	opts.DownloadTimeout = time.Duration(cfg.Footage.DownloadTimeout) * time.Second
	opts.FFmpegBinary = cfg.FFmpegBinary()
	opts.RTMPDumpBinary = cfg.RTMPDumpBinary()
	return footage.NewDownloader(ctx.runner(), logger, nil, opts), nil
}

func describeDownloadError(err error, game games.Game) error {
	switch {
	case errors.Is(err, services.ErrOutputExists):
		return fmt.Errorf("footage for game %s is already downloaded: %w", game.EID, err)
	case errors.Is(err, footage.ErrNoValidURL):
		return fmt.Errorf("no stream found for game %s; it may not be published yet: %w", game.EID, err)
	default:
		return err
	}
}
