// Package main hosts the gridcut CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full footage workflow: download a
// game's broadcast recording or coach tape, slice it into per-play clips
// from the vendor timing feed, inspect what exists on disk, and open the
// sliced plays in vlc. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
