package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gridcut/internal/games"
)

// gameFlags carry the schedule details every footage operation needs. The
// vendor endpoints cannot be queried for this metadata, so the operator
// supplies it on the command line.
type gameFlags struct {
	eid        string
	gameKey    string
	away       string
	home       string
	season     int
	week       int
	seasonType string
	live       bool
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.eid, "eid", "", "Game event id, ten digits of YYYYMMDDNN")
	cmd.Flags().StringVar(&f.gameKey, "gamekey", "", "Vendor game key used in feed and stream URLs")
	cmd.Flags().StringVar(&f.away, "away", "", "Away team abbreviation")
	cmd.Flags().StringVar(&f.home, "home", "", "Home team abbreviation")
	cmd.Flags().IntVar(&f.season, "season", 0, "Season year (derived from the event id when omitted)")
	cmd.Flags().IntVar(&f.week, "week", 0, "Week number")
	cmd.Flags().StringVar(&f.seasonType, "season-type", "REG", "PRE, REG, or POST")
	cmd.Flags().BoolVar(&f.live, "live", false, "Game is still in progress; its timing feed is not cached")
	_ = cmd.MarkFlagRequired("eid")
	_ = cmd.MarkFlagRequired("gamekey")
}

func (f *gameFlags) game() (games.Game, error) {
	var seasonType games.SeasonType
	switch strings.ToUpper(strings.TrimSpace(f.seasonType)) {
	case "PRE":
		seasonType = games.Preseason
	case "REG", "":
		seasonType = games.RegularSeason
	case "POST":
		seasonType = games.Postseason
	default:
		return games.Game{}, fmt.Errorf("season type %q: expected PRE, REG, or POST", f.seasonType)
	}

	game := games.Game{
		EID:        strings.TrimSpace(f.eid),
		Key:        strings.TrimSpace(f.gameKey),
		Season:     f.season,
		Week:       f.week,
		Home:       strings.ToUpper(strings.TrimSpace(f.home)),
		Away:       strings.ToUpper(strings.TrimSpace(f.away)),
		SeasonType: seasonType,
		Final:      !f.live,
	}
	if game.Season == 0 {
		game.Season = game.FeedYear()
	}
	if err := game.Validate(); err != nil {
		return games.Game{}, err
	}
	return game, nil
}
