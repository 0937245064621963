// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The slicing pipeline needs exactly one fact from the probe: the real
// duration of a downloaded footage file, which the offset reconciler
// compares against the timing feed's reported end of broadcast.
package ffprobe
