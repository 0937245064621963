package playlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gridcut/internal/services"
)

// ErrNoFootage reports that none of the requested plays have a clip on
// disk.
var ErrNoFootage = errors.New("no play footage found")

// marqueeTemplate overlays the play description, the position in the
// playlist, and the game situation. The verbs ($d, $n, $b) pull from the
// XSPF annotation, trackNum, and album elements.
const marqueeTemplate = "marq{marquee=$d,size=18}" +
	":marq{marquee=$n/%d,size=18,position=9}" +
	":marq{marquee=$b,size=18,position=10}"

// WatchOptions configure how vlc is launched.
type WatchOptions struct {
	// Binary is the vlc executable, "vlc" when empty.
	Binary string
	// HideMarquee plays the clips without overlay text.
	HideMarquee bool
}

// Watch opens vlc on the entries. With the marquee enabled the entries are
// wrapped in a temporary XSPF playlist so vlc can overlay per-play
// metadata; the playlist file is removed when vlc exits.
func Watch(ctx context.Context, runner services.Runner, logger *slog.Logger, entries []Entry, opts WatchOptions) error {
	if len(entries) == 0 {
		return ErrNoFootage
	}
	binary := opts.Binary
	if strings.TrimSpace(binary) == "" {
		binary = "vlc"
	}

	var args []string
	if opts.HideMarquee {
		for _, entry := range entries {
			args = append(args, entry.Path)
		}
	} else {
		path, err := WriteTemp("gridcut playlist", entries)
		if err != nil {
			return err
		}
		defer os.Remove(path)
		args = []string{"--sub-filter", fmt.Sprintf(marqueeTemplate, len(entries)), path}
	}

	logger.Info("launching vlc", slog.Int("plays", len(entries)))
	result, err := runner.Run(ctx, binary, args...)
	if err != nil {
		return fmt.Errorf("vlc: %w\n%s", err, services.Indent(result.Output))
	}
	return nil
}
