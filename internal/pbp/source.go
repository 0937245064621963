package pbp

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gridcut/internal/games"
)

// Source supplies raw timing-feed bytes for a game. Implementations return
// ErrNoTimingData when the feed cannot be obtained.
type Source interface {
	Feed(ctx context.Context, game games.Game) ([]byte, error)
}

const fetchTimeout = 10 * time.Second

// FeedSource reads raw feeds from a local gzip cache, falling back to the
// vendor HTTP endpoint. Feeds for final games are written back to the cache
// since they no longer change.
type FeedSource struct {
	cacheDir string
	baseURL  string
	client   *http.Client
}

// NewFeedSource builds a feed source. baseURL must contain two verbs: the
// feed year (%d) and the game key (%s).
func NewFeedSource(cacheDir, baseURL string, client *http.Client) *FeedSource {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &FeedSource{cacheDir: cacheDir, baseURL: baseURL, client: client}
}

// Feed returns the raw feed bytes for the game.
func (s *FeedSource) Feed(ctx context.Context, game games.Game) ([]byte, error) {
	if raw, err := s.readCached(game); err == nil {
		return raw, nil
	}

	raw, err := s.fetch(ctx, game)
	if err != nil {
		return nil, err
	}
	if game.Final {
		// Best-effort: a failed cache write only costs a refetch later.
		_ = s.writeCached(game, raw)
	}
	return raw, nil
}

// CachePath returns the on-disk location of the game's compressed feed.
func (s *FeedSource) CachePath(game games.Game) string {
	return filepath.Join(s.cacheDir, game.EID+".xml.gz")
}

func (s *FeedSource) readCached(game games.Game) ([]byte, error) {
	file, err := os.Open(s.CachePath(game))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("open cached feed: %w", err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func (s *FeedSource) writeCached(game games.Game, raw []byte) error {
	if s.cacheDir == "" {
		return errors.New("feed cache directory not configured")
	}
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return fmt.Errorf("create feed cache directory: %w", err)
	}
	path := s.CachePath(game)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cached feed: %w", err)
	}
	zw := gzip.NewWriter(file)
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		file.Close()
		return fmt.Errorf("write cached feed: %w", err)
	}
	if err := zw.Close(); err != nil {
		file.Close()
		return fmt.Errorf("flush cached feed: %w", err)
	}
	return file.Close()
}

func (s *FeedSource) fetch(ctx context.Context, game games.Game) ([]byte, error) {
	url := fmt.Sprintf(s.baseURL, game.FeedYear(), game.Key)

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build feed request: %v", ErrNoTimingData, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch feed: %v", ErrNoTimingData, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed endpoint returned %s", ErrNoTimingData, resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read feed body: %v", ErrNoTimingData, err)
	}
	return raw, nil
}
