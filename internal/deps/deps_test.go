package deps

import (
	"os"
	"path/filepath"
	"testing"

	"gridcut/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
}

func TestRequirementsCoverEveryTool(t *testing.T) {
	cfg := config.Default()
	reqs := Requirements(&cfg)

	byName := map[string]Requirement{}
	for _, req := range reqs {
		byName[req.Name] = req
	}
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		req, ok := byName[name]
		if !ok {
			t.Fatalf("missing requirement %s", name)
		}
		if req.Optional {
			t.Fatalf("%s must not be optional", name)
		}
	}
	for _, name := range []string{"rtmpdump", "vlc"} {
		req, ok := byName[name]
		if !ok {
			t.Fatalf("missing requirement %s", name)
		}
		if !req.Optional {
			t.Fatalf("%s should be optional", name)
		}
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Name: "ffmpeg", Available: false},
		{Name: "rtmpdump", Available: false, Optional: true},
		{Name: "ffprobe", Available: true},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "ffmpeg" {
		t.Fatalf("expected only ffmpeg to be reported, got %v", missing)
	}
}
