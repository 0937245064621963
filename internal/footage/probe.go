package footage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/grafov/m3u8"
)

// ErrNoValidURL reports that none of the candidate broadcast URLs served a
// parsable playlist.
var ErrNoValidURL = errors.New("no valid broadcast url")

const probeTimeout = 15 * time.Second

// FirstValidBroadcastURL probes the candidate URLs in order and returns the
// first one that answers 200 with a playlist that actually decodes. A URL
// that merely exists is not enough: the vendor serves empty or malformed
// playlists for streams that were never recorded.
func FirstValidBroadcastURL(ctx context.Context, client *http.Client, urls []string) (string, error) {
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}
	for _, url := range urls {
		if probePlaylist(ctx, client, url) {
			return url, nil
		}
	}
	return "", fmt.Errorf("%w: tried %d candidates", ErrNoValidURL, len(urls))
}

func probePlaylist(ctx context.Context, client *http.Client, url string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	_, _, err = m3u8.DecodeFrom(resp.Body, true)
	return err == nil
}
