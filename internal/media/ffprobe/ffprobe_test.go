package ffprobe

import (
	"context"
	"errors"
	"testing"

	"gridcut/internal/services"
)

type stubRunner struct {
	output string
	err    error
	binary string
	args   []string
}

func (s *stubRunner) Run(ctx context.Context, binary string, args ...string) (services.CommandResult, error) {
	s.binary = binary
	s.args = args
	return services.CommandResult{Output: s.output}, s.err
}

func TestInspectParsesFormat(t *testing.T) {
	runner := &stubRunner{output: `{"format":{"filename":"game.mp4","duration":"7150.250","size":"2000000","format_name":"mov,mp4"}}`}
	result, err := Inspect(context.Background(), runner, "", "game.mp4")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if runner.binary != "ffprobe" {
		t.Fatalf("expected default binary, got %q", runner.binary)
	}
	duration, err := result.DurationSeconds()
	if err != nil {
		t.Fatalf("DurationSeconds returned error: %v", err)
	}
	if duration != 7150.25 {
		t.Fatalf("unexpected duration: %v", duration)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), &stubRunner{}, "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestInspectPropagatesToolFailure(t *testing.T) {
	runner := &stubRunner{output: "file not found", err: services.ErrExternalTool}
	if _, err := Inspect(context.Background(), runner, "ffprobe", "missing.mp4"); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestDurationSecondsRejectsBadValues(t *testing.T) {
	for _, duration := range []string{"", "abc", "-10"} {
		r := Result{Format: Format{Duration: duration}}
		if _, err := r.DurationSeconds(); err == nil {
			t.Fatalf("expected error for duration %q", duration)
		}
	}
}

func TestDurationProbesFile(t *testing.T) {
	runner := &stubRunner{output: `{"format":{"duration":"7210.0"}}`}
	duration, err := Duration(context.Background(), runner, "ffprobe", "game.mp4")
	if err != nil {
		t.Fatalf("Duration returned error: %v", err)
	}
	if duration != 7210.0 {
		t.Fatalf("unexpected duration: %v", duration)
	}
}
