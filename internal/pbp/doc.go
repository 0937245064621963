// Package pbp parses vendor play-by-play timing feeds into ordered play
// intervals.
//
// A feed is one XML document per game in which every row records the start
// timestamp of a play inside the continuous game recording. The parser
// pairs each play's start with the following row's start to form an
// interval, excludes administrative rows (timeouts, two-minute warnings)
// without breaking the pairing chain, and drops rows that arrive out of
// chronological order.
//
// Raw feeds are obtained through a Source: a gzip file cache backed by the
// vendor HTTP endpoint. Parsed results for finished games are held in an
// explicit write-once Cache for the life of the process.
package pbp
