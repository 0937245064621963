package config

import (
	"errors"
	"fmt"
	"strings"
)

// qualityTiers are the bitrate tiers the footage vendor serves.
var qualityTiers = map[string]struct{}{
	"400": {}, "800": {}, "1200": {}, "1600": {}, "2400": {}, "3000": {}, "4500": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSlicing(); err != nil {
		return err
	}
	if err := c.validateFootage(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSlicing() error {
	if err := ensurePositiveMap(map[string]int{
		"slicing.concurrency":            c.Slicing.Concurrency,
		"slicing.broadcast_max_duration": c.Slicing.BroadcastMaxDuration,
		"slicing.clip_timeout":           c.Slicing.ClipTimeout,
	}); err != nil {
		return err
	}
	if c.Slicing.CoachMaxDuration < 0 {
		return errors.New("slicing.coach_max_duration must be >= 0 (0 disables the cap)")
	}
	if c.Slicing.ScoreboardTrimSeconds < 0 {
		return errors.New("slicing.scoreboard_trim_seconds must be >= 0")
	}
	if c.Slicing.FinalPlaySeconds <= 0 {
		return errors.New("slicing.final_play_seconds must be positive")
	}
	return nil
}

func (c *Config) validateFootage() error {
	if _, ok := qualityTiers[c.Footage.Quality]; !ok {
		return fmt.Errorf("footage.quality %q is not a known tier (400, 800, 1200, 1600, 2400, 3000, 4500)", c.Footage.Quality)
	}
	if !strings.Contains(c.Footage.FeedBaseURL, "%d") || !strings.Contains(c.Footage.FeedBaseURL, "%s") {
		return errors.New("footage.feed_base_url must carry a %d year verb and a %s game key verb")
	}
	if c.Footage.MinFreeGiB < 0 {
		return errors.New("footage.min_free_gib must be >= 0")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
