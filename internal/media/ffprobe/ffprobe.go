package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gridcut/internal/services"
)

// Result represents the parsed container-level output of an ffprobe
// inspection.
type Result struct {
	Format Format `json:"format"`
}

// Format captures the container metadata this pipeline consumes.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response.
func Inspect(ctx context.Context, runner services.Runner, binary, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	res, err := runner.Run(ctx, binary, "-loglevel", "error", "-show_format", "-print_format", "json", path)
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, res.Output)
	}

	var result Result
	if err := json.Unmarshal([]byte(res.Output), &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the container duration in fractional seconds, or
// an error when ffprobe reported none.
func (r Result) DurationSeconds() (float64, error) {
	cleaned := strings.TrimSpace(r.Format.Duration)
	if cleaned == "" {
		return 0, errors.New("ffprobe: no duration in format metadata")
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: parse duration %q: %w", cleaned, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("ffprobe: negative duration %v", parsed)
	}
	return parsed, nil
}

// Duration probes the file at path and returns its duration in seconds. It
// is the single entry point the offset reconciler depends on.
func Duration(ctx context.Context, runner services.Runner, binary, path string) (float64, error) {
	result, err := Inspect(ctx, runner, binary, path)
	if err != nil {
		return 0, err
	}
	return result.DurationSeconds()
}
