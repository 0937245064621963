package slicer

import (
	"fmt"
	"path/filepath"

	"gridcut/internal/pbp"
	"gridcut/internal/timecode"
)

// Params control how a play interval becomes a clip.
type Params struct {
	// OffsetSeconds is subtracted from the recorded start (broadcast
	// drift correction, zero for coach footage).
	OffsetSeconds float64
	// MaxDurationSeconds caps clip length; zero means uncapped.
	MaxDurationSeconds int
	// TrimLeadInSeconds removes the scoreboard overlay shown before live
	// action. The trim is applied after the max-duration cap has been
	// computed from the untrimmed start.
	TrimLeadInSeconds float64
	// FinalPlaySeconds is the assumed length of the feed's last play,
	// which has no following row to bound it.
	FinalPlaySeconds float64
}

// Task is one fully resolved transcode invocation: a source file, a start
// offset, a duration, and a destination clip path.
type Task struct {
	PlayID   string
	Start    timecode.TimePoint
	Duration timecode.TimePoint
	Source   string
	Dest     string
}

// Args returns the ffmpeg argument list for the task. The streams are
// copied, not re-encoded; seek accuracy is ffmpeg's problem.
func (t Task) Args() []string {
	return []string{
		"-ss", t.Start.Clock(),
		"-i", t.Source,
		"-acodec", "copy",
		"-vcodec", "copy",
		"-t", t.Duration.Clock(),
		t.Dest,
	}
}

// Build resolves one play interval into a Task.
func Build(play pbp.Play, videoPath, outDir string, p Params) (Task, error) {
	start := play.Start.AddSeconds(-p.OffsetSeconds)

	// The end boundary keeps its recorded value; only the start is
	// drift-corrected. The max-duration cap bounds the overshoot this
	// introduces in broadcast mode.
	var end timecode.TimePoint
	if play.End != nil {
		end = *play.End
	} else {
		end = start.AddSeconds(p.FinalPlaySeconds)
	}

	if p.MaxDurationSeconds > 0 && end.WholeSeconds()-start.WholeSeconds() > p.MaxDurationSeconds {
		end = start.AddSeconds(float64(p.MaxDurationSeconds))
	}

	if p.TrimLeadInSeconds > 0 {
		start = start.AddSeconds(p.TrimLeadInSeconds)
	}

	duration := end.Seconds() - start.Seconds()
	if duration <= 0 {
		return Task{}, fmt.Errorf("play %s: non-positive clip duration %.3fs", play.ID, duration)
	}

	return Task{
		PlayID:   play.ID,
		Start:    start,
		Duration: timecode.FromSeconds(duration),
		Source:   videoPath,
		Dest:     filepath.Join(outDir, play.FileName()),
	}, nil
}
