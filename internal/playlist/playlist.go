package playlist

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gridcut/internal/games"
	"gridcut/internal/pbp"
)

// Entry pairs one play's clip file with the metadata shown while it plays.
type Entry struct {
	PlayID string
	Path   string
	// Description is the game label plus the play text, clock stripped.
	Description string
	// Situation is the game clock prefix from the play text, when present.
	Situation string
}

var clockPrefix = regexp.MustCompile(`^\(([^)]+)\)`)

// splitClock separates the parenthesized game clock from the play text.
func splitClock(description string) (clock, rest string) {
	m := clockPrefix.FindStringSubmatch(description)
	if m == nil {
		return "", strings.TrimSpace(description)
	}
	return m[1], strings.TrimSpace(description[len(m[0]):])
}

// Entries returns playlist entries for every play that has a clip on disk,
// in feed order. Plays without footage are skipped, so the result may be
// shorter than the play map.
func Entries(game games.Game, plays *pbp.PlayMap, playDir string) []Entry {
	out := make([]Entry, 0, plays.Len())
	for _, play := range plays.Plays() {
		path := filepath.Join(playDir, play.FileName())
		if _, err := os.Stat(path); err != nil {
			continue
		}
		clock, text := splitClock(play.Description)
		desc := game.Description()
		if text != "" {
			desc += "\n" + text
		}
		out = append(out, Entry{
			PlayID:      play.ID,
			Path:        path,
			Description: desc,
			Situation:   clock,
		})
	}
	return out
}
