package slicer

import "gridcut/internal/timecode"

// offsetPadding is added to every broadcast offset. The feed's reported end
// of broadcast consistently lands slightly before the true end of the
// delivered file; two seconds of slack keeps play starts from being
// clipped.
const offsetPadding = 2.0

// ComputeOffset derives the correction, in seconds, subtracted from every
// broadcast play start before slicing. The feed's reported end-of-broadcast
// timestamp is unreliable relative to the downloaded file, so the
// difference against the probed duration estimates the drift. A negative
// result means the heuristic broke down; zero is the safe fallback.
//
// Coach footage never needs this: its timestamps are defined against the
// delivered file.
func ComputeOffset(feedEnd timecode.TimePoint, probedSeconds float64) float64 {
	offset := feedEnd.Seconds() - probedSeconds + offsetPadding
	if offset < 0 {
		return 0
	}
	return offset
}
