// Package timecode models moments within a video timeline at millisecond
// precision.
//
// Vendor timing feeds write timestamps as HH:MM:SS:fff with two distinct
// fractional dialects: a three-digit field already in milliseconds and a
// two-digit field in tens of milliseconds. Parse normalizes both into one
// canonical representation so the rest of the pipeline never has to care
// which feed dialect produced a value.
package timecode
