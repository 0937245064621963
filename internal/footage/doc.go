// Package footage locates and downloads full-game video. Broadcast
// recordings are fetched over HLS with ffmpeg after probing the vendor's
// candidate playlist URLs; coach tape is pulled over RTMP with rtmpdump.
// Downloads refuse to overwrite existing footage and check free disk
// space up front.
package footage
