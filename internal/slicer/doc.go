// Package slicer schedules and executes per-play transcode invocations.
//
// A slicing run selects the plays with no clip file on disk, reconciles
// broadcast timestamps against the real file duration, and fans the
// remaining intervals out across a bounded worker pool where each worker
// drives one external ffmpeg invocation. Failures are isolated per play;
// failed plays are naturally retried by the next run because their clip
// files never materialized.
package slicer
