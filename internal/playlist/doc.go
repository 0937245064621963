// Package playlist builds XSPF playlists over sliced play clips and opens
// them with vlc. The playlist shoe-horns per-play metadata into XSPF
// elements so vlc's marquee filter can overlay the game situation and play
// description while each clip runs.
package playlist
