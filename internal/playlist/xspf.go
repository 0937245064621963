package playlist

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// XSPF carries per-track metadata that vlc's marquee filter can render
// over the video: the annotation element feeds $d, trackNum feeds $n, and
// album feeds $b.

type xspfTrack struct {
	Title      string `xml:"title"`
	Annotation string `xml:"annotation,omitempty"`
	Location   string `xml:"location"`
	TrackNum   int    `xml:"trackNum"`
	Album      string `xml:"album,omitempty"`
}

type xspfDocument struct {
	XMLName  xml.Name    `xml:"playlist"`
	Xmlns    string      `xml:"xmlns,attr"`
	XmlnsVLC string      `xml:"xmlns:vlc,attr"`
	Version  string      `xml:"version,attr"`
	Title    string      `xml:"title"`
	Tracks   []xspfTrack `xml:"trackList>track"`
}

// Write renders the entries as an XSPF playlist document.
func Write(w io.Writer, title string, entries []Entry) error {
	doc := xspfDocument{
		Xmlns:    "http://xspf.org/ns/0/",
		XmlnsVLC: "http://www.videolan.org/vlc/playlist/ns/0/",
		Version:  "1",
		Title:    title,
	}
	for i, entry := range entries {
		location, err := fileURL(entry.Path)
		if err != nil {
			return err
		}
		doc.Tracks = append(doc.Tracks, xspfTrack{
			Title:      entry.PlayID,
			Annotation: entry.Description,
			Location:   location,
			TrackNum:   i + 1,
			Album:      entry.Situation,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode playlist: %w", err)
	}
	return enc.Close()
}

// WriteTemp writes the playlist to a temporary .xspf file and returns its
// path. The caller removes the file when vlc exits.
func WriteTemp(title string, entries []Entry) (string, error) {
	f, err := os.CreateTemp("", "gridcut-*.xspf")
	if err != nil {
		return "", fmt.Errorf("create playlist file: %w", err)
	}
	if err := Write(f, title, entries); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve clip path %q: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
