package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// gameStatus summarizes what exists on disk for one game.
type gameStatus struct {
	eid     string
	footage bool
	clips   int
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show downloaded footage and sliced clip counts per game",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses, err := collectStatuses(cfg.Paths.FootageDir, cfg.Paths.PlayDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(statuses) == 0 {
				fmt.Fprintln(out, "No footage or clips found. Download a game with `gridcut footage`.")
				return nil
			}

			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				rows = append(rows, []string{s.eid, yesNo(s.footage), strconv.Itoa(s.clips)})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Game", "Footage", "Clips"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
}

// collectStatuses merges what the footage and play directories hold, keyed
// by event id.
func collectStatuses(footageDir, playDir string) ([]gameStatus, error) {
	byEID := map[string]*gameStatus{}
	lookup := func(eid string) *gameStatus {
		if s, ok := byEID[eid]; ok {
			return s
		}
		s := &gameStatus{eid: eid}
		byEID[eid] = s
		return s
	}

	if entries, err := os.ReadDir(footageDir); err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".mp4") {
				continue
			}
			lookup(strings.TrimSuffix(name, ".mp4")).footage = true
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read footage directory: %w", err)
	}

	if entries, err := os.ReadDir(playDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			lookup(entry.Name()).clips = countClips(filepath.Join(playDir, entry.Name()))
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read play directory: %w", err)
	}

	statuses := make([]gameStatus, 0, len(byEID))
	for _, s := range byEID {
		statuses = append(statuses, *s)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].eid < statuses[j].eid })
	return statuses, nil
}

func countClips(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".mp4") {
			count++
		}
	}
	return count
}
