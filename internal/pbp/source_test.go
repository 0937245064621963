package pbp

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"gridcut/internal/games"
)

func gzipBytes(t *testing.T, path string, raw []byte) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	zw := gzip.NewWriter(file)
	if _, err := zw.Write(raw); err != nil {
		t.Fatalf("write gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
}

func TestFeedSourcePrefersLocalCache(t *testing.T) {
	dir := t.TempDir()
	game := games.Game{EID: "2013092200", Key: "57272"}
	want := []byte("<dataset><row><id>1</id></row></dataset>")

	source := NewFeedSource(dir, "http://127.0.0.1:0/%d/%s.xml", nil)
	gzipBytes(t, source.CachePath(game), want)

	got, err := source.Feed(context.Background(), game)
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("unexpected feed bytes: %q", got)
	}
}

func TestFeedSourceFetchesAndCachesFinalGames(t *testing.T) {
	want := "<dataset><row><id>1</id></row></dataset>"
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/2013/57272.xml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(want))
	}))
	defer server.Close()

	dir := t.TempDir()
	game := games.Game{EID: "2013092200", Key: "57272", Final: true}
	source := NewFeedSource(dir, server.URL+"/%d/%s.xml", server.Client())

	got, err := source.Feed(context.Background(), game)
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}
	if string(got) != want {
		t.Fatalf("unexpected feed bytes: %q", got)
	}

	// Second read must come from the gzip cache.
	got, err = source.Feed(context.Background(), game)
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}
	if string(got) != want {
		t.Fatalf("unexpected cached bytes: %q", got)
	}
	if requests != 1 {
		t.Fatalf("expected a single HTTP fetch, got %d", requests)
	}
}

func TestFeedSourceDoesNotCacheLiveGames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<dataset/>"))
	}))
	defer server.Close()

	dir := t.TempDir()
	game := games.Game{EID: "2013092200", Key: "57272", Final: false}
	source := NewFeedSource(dir, server.URL+"/%d/%s.xml", server.Client())

	if _, err := source.Feed(context.Background(), game); err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}
	if _, err := os.Stat(source.CachePath(game)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no cache file for a live game, got %v", err)
	}
}

func TestFeedSourceReportsMissingFeeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	source := NewFeedSource(t.TempDir(), server.URL+"/%d/%s.xml", server.Client())
	game := games.Game{EID: "2013092200", Key: "57272"}

	if _, err := source.Feed(context.Background(), game); !errors.Is(err, ErrNoTimingData) {
		t.Fatalf("expected ErrNoTimingData, got %v", err)
	}
}
