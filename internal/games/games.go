package games

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SeasonType identifies the portion of the football season a game belongs
// to. Broadcast stream URLs encode it as a digit.
type SeasonType string

const (
	Preseason     SeasonType = "PRE"
	RegularSeason SeasonType = "REG"
	Postseason    SeasonType = "POST"
)

// StreamDigit returns the season-type component used in broadcast stream
// URLs.
func (s SeasonType) StreamDigit() int {
	switch s {
	case Postseason:
		return 3
	case Preseason:
		return 1
	default:
		return 2
	}
}

// Game identifies one game and carries the schedule details needed to
// locate its footage and timing feed.
type Game struct {
	// EID is the vendor event id, ten digits of YYYYMMDDNN.
	EID string
	// Key is the vendor game key used in feed and stream URLs.
	Key        string
	Season     int
	Week       int
	Home       string
	Away       string
	SeasonType SeasonType
	// Final reports whether the game has finished; timing feeds for
	// final games are cached to disk since they no longer change.
	Final bool
}

var titleCaser = cases.Title(language.Und)

// Validate checks the identifying fields required by every operation.
func (g Game) Validate() error {
	if len(g.EID) != 10 {
		return fmt.Errorf("event id %q: expected 10 digits", g.EID)
	}
	if _, err := strconv.Atoi(g.EID); err != nil {
		return fmt.Errorf("event id %q: not numeric", g.EID)
	}
	if strings.TrimSpace(g.Key) == "" {
		return errors.New("game key required")
	}
	return nil
}

// Date returns the year, month, and day components encoded in the event id.
func (g Game) Date() (year, month, day string) {
	if len(g.EID) < 8 {
		return "", "", ""
	}
	return g.EID[0:4], g.EID[4:6], g.EID[6:8]
}

// FeedYear returns the season year used in timing-feed URLs. Games played
// January through March belong to the prior season.
func (g Game) FeedYear() int {
	year, month, _ := g.Date()
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return y
	}
	if m <= 3 {
		y--
	}
	return y
}

// Description renders a human-readable label for status output and logs.
func (g Game) Description() string {
	matchup := ""
	if g.Away != "" && g.Home != "" {
		matchup = fmt.Sprintf("%s at %s", titleCaser.String(g.Away), titleCaser.String(g.Home))
	}
	parts := []string{g.EID}
	if matchup != "" {
		parts = append(parts, matchup)
	}
	if g.Season > 0 {
		parts = append(parts, fmt.Sprintf("season %d week %d", g.Season, g.Week))
	}
	return strings.Join(parts, " ")
}
