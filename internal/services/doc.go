// Package services defines shared utilities consumed by the slicing and
// footage pipelines.
//
// Key responsibilities:
//   - The Runner abstraction that makes external tool invocations (ffmpeg,
//     ffprobe, rtmpdump, vlc) injectable in tests.
//   - Structured error markers plus the Wrap helper so failures carry a
//     classification alongside component and operation context.
//
// Use these helpers when wiring new pipeline logic so error handling and
// external-process behaviour stay uniform across commands.
package services
