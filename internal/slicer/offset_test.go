package slicer

import (
	"testing"

	"gridcut/internal/timecode"
)

func TestComputeOffsetAddsPadding(t *testing.T) {
	feedEnd := timecode.FromSeconds(7200.0)
	if got := ComputeOffset(feedEnd, 7150.0); got != 52.0 {
		t.Fatalf("expected 52.0, got %v", got)
	}
}

func TestComputeOffsetClampsNegative(t *testing.T) {
	feedEnd := timecode.FromSeconds(7200.0)
	if got := ComputeOffset(feedEnd, 7210.0); got != 0.0 {
		t.Fatalf("expected clamp to zero, got %v", got)
	}
}
