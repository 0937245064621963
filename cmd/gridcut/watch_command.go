package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gridcut/internal/pbp"
	"gridcut/internal/playlist"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var gf gameFlags
	var broadcast bool
	var hideMarquee bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the game's sliced plays in vlc",
		Long: "Watch builds a playlist over the game's sliced clips and opens it in\n" +
			"vlc. Unless disabled, each play gets a marquee overlay showing the\n" +
			"game situation and the play description from the timing feed.",
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

			dialect := pbp.Coach
			if broadcast {
				dialect = pbp.Broadcast
			}
			source := pbp.NewFeedSource(cfg.Paths.FeedCacheDir, cfg.Footage.FeedBaseURL, nil)
			plays, err := pbp.NewCache(source).Plays(cmd.Context(), game, dialect)
			if err != nil {
				return err
			}

			entries := playlist.Entries(game, plays, cfg.PlayDirFor(game.EID))
			if len(entries) == 0 {
				return fmt.Errorf("no clips found for game %s in %s (slice it with `gridcut slice`)", game.EID, cfg.PlayDirFor(game.EID))
			}

			return playlist.Watch(cmd.Context(), ctx.runner(), logger, entries, playlist.WatchOptions{
				Binary:      cfg.Playlist.VLCBinary,
				HideMarquee: hideMarquee || cfg.Playlist.HideMarquee,
			})
		},
	}

	gf.register(cmd)
	cmd.Flags().BoolVar(&broadcast, "broadcast", false, "Clips were sliced from broadcast footage")
	cmd.Flags().BoolVar(&hideMarquee, "hide-marquee", false, "Play clips without the overlay text")
	return cmd
}
