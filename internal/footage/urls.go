package footage

import (
	"fmt"
	"strings"

	"gridcut/internal/games"
)

// RTMPLocation addresses coach footage on the vendor's RTMP server.
type RTMPLocation struct {
	Server   string
	App      string
	PlayPath string
}

const (
	defaultBroadcastURLTemplate = "http://nlds82.cdnl3nl.neulion.com/nlds_vod/nfl/vod/%s/%s/%s/%s/%d_%s_%s_%s_%d_h_%s_%s_%s.mp4.m3u8"

	coachRTMPServer       = "rtmp://neulionms.fcod.llnwd.net"
	coachRTMPApp          = "a5306/e1"
	coachPlayPathTemplate = "mp4:u/nfl/nfl/coachtapes/%d/%s_all_1600"
)

// streamOrdinals are probed highest first: when several streams exist for
// one game, higher ordinals have been observed to carry the complete
// recording while lower ones may be truncated.
var streamOrdinals = []string{"3", "2", "1", "4a"}

// BroadcastURLs returns the candidate HLS playlist URLs for the game, in
// probe order. The vendor's URL scheme varies unpredictably per game, so
// candidates must be validated before download. Condensed selects the
// short recap stream instead of the whole broadcast.
func BroadcastURLs(game games.Game, quality string, condensed bool) []string {
	year, month, day := game.Date()
	kind := "whole"
	if condensed {
		kind = "snap2w"
	}

	urls := make([]string, 0, len(streamOrdinals))
	for _, ordinal := range streamOrdinals {
		urls = append(urls, fmt.Sprintf(defaultBroadcastURLTemplate,
			year, month, day, game.Key,
			game.SeasonType.StreamDigit(), game.Key,
			strings.ToLower(game.Away), strings.ToLower(game.Home),
			game.Season, kind, ordinal, quality,
		))
	}
	return urls
}

// CoachLocation returns the RTMP triple for the game's coach tape. Coach
// footage only exists in 1600 quality.
func CoachLocation(game games.Game) RTMPLocation {
	return RTMPLocation{
		Server:   coachRTMPServer,
		App:      coachRTMPApp,
		PlayPath: fmt.Sprintf(coachPlayPathTemplate, game.Season, game.Key),
	}
}
