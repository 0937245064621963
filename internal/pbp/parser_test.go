package pbp

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const feedHeader = `<?xml version="1.0" encoding="UTF-8"?>`

func coachRow(id, catin, desc string) string {
	attr := ""
	if desc != "" {
		attr = fmt.Sprintf(" PlayDescription=%q", desc)
	}
	return fmt.Sprintf(`<row%s><id>%s</id><CATIN>%s</CATIN></row>`, attr, id, catin)
}

func wrapFeed(endtime string, rows ...string) []byte {
	attr := ""
	if endtime != "" {
		attr = fmt.Sprintf(" endTime=%q", endtime)
	}
	return []byte(feedHeader + fmt.Sprintf(`<dataset%s>%s</dataset>`, attr, strings.Join(rows, "")))
}

func TestParsePairsConsecutiveStarts(t *testing.T) {
	raw := wrapFeed("",
		coachRow("54", "00:10:00:000", ""),
		coachRow("79", "00:10:20:000", ""),
		coachRow("102", "00:10:45:500", ""),
	)
	plays, err := Parse(raw, Coach)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if plays.Len() != 3 {
		t.Fatalf("expected 3 plays, got %d", plays.Len())
	}

	withEnd := 0
	for _, p := range plays.Plays() {
		if p.End != nil {
			withEnd++
		}
	}
	if withEnd != 2 {
		t.Fatalf("expected 2 plays with a defined end, got %d", withEnd)
	}

	first, _ := plays.Get("54")
	if first.End == nil || first.End.String() != "00:10:20:000" {
		t.Fatalf("unexpected end for first play: %v", first.End)
	}
	last, _ := plays.Get("102")
	if last.End != nil {
		t.Fatalf("expected final play to have no end, got %v", last.End)
	}
}

func TestParseKeepsDocumentOrder(t *testing.T) {
	raw := wrapFeed("",
		coachRow("200", "00:01:00:000", ""),
		coachRow("3", "00:02:00:000", ""),
		coachRow("41", "00:03:00:000", ""),
	)
	plays, err := Parse(raw, Coach)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	ids := plays.IDs()
	want := []string{"200", "3", "41"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
}

func TestParseExcludesTimeoutsWithoutBreakingBoundaries(t *testing.T) {
	raw := wrapFeed("",
		coachRow("1", "00:10:00:000", ""),
		coachRow("2", "00:10:20:000", "Timeout #1 by Home Team"),
		coachRow("3", "00:10:40:000", ""),
	)
	plays, err := Parse(raw, Coach)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if _, ok := plays.Get("2"); ok {
		t.Fatal("expected timeout row to be excluded")
	}
	// The excluded row still bounds its predecessor.
	first, _ := plays.Get("1")
	if first.End == nil || first.End.String() != "00:10:20:000" {
		t.Fatalf("expected neighbor boundary from excluded row, got %v", first.End)
	}
	next, _ := plays.Get("3")
	if next.Start.String() != "00:10:40:000" {
		t.Fatalf("unexpected start for play 3: %s", next.Start)
	}
}

func TestParseExcludesTwoMinuteWarningAndPrePlayTimeouts(t *testing.T) {
	raw := wrapFeed("",
		coachRow("1", "00:10:00:000", "Two-Minute Warning"),
		`<row PrePlayByPlay="Timeout at 02:00."><id>2</id><CATIN>00:10:20:000</CATIN></row>`,
		coachRow("3", "00:10:40:000", ""),
	)
	plays, err := Parse(raw, Coach)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if plays.Len() != 1 {
		t.Fatalf("expected only play 3 retained, got %v", plays.IDs())
	}
}

func TestParseDropsOutOfOrderRows(t *testing.T) {
	raw := wrapFeed("",
		coachRow("1", "00:10:00:000", ""),
		coachRow("2", "00:05:00:000", ""),
		coachRow("3", "00:10:30:000", ""),
	)
	plays, err := Parse(raw, Coach)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if _, ok := plays.Get("2"); ok {
		t.Fatal("expected out-of-order row to be dropped")
	}
	first, _ := plays.Get("1")
	if first.End == nil || first.End.String() != "00:10:30:000" {
		t.Fatalf("expected end from next retained row, got %v", first.End)
	}
}

func TestParseSelectsDialectField(t *testing.T) {
	raw := wrapFeed("",
		`<row><id>1</id><CATIN>00:10:00:000</CATIN><ArchiveTCIN>01:10:00:00</ArchiveTCIN></row>`,
		`<row><id>2</id><CATIN>00:10:20:000</CATIN><ArchiveTCIN>01:10:20:00</ArchiveTCIN></row>`,
	)
	coach, err := Parse(raw, Coach)
	if err != nil {
		t.Fatalf("Parse(coach) returned error: %v", err)
	}
	broadcast, err := Parse(raw, Broadcast)
	if err != nil {
		t.Fatalf("Parse(broadcast) returned error: %v", err)
	}
	cp, _ := coach.Get("1")
	bp, _ := broadcast.Get("1")
	if cp.Start.String() != "00:10:00:000" {
		t.Fatalf("unexpected coach start: %s", cp.Start)
	}
	if bp.Start.String() != "01:10:00:000" {
		t.Fatalf("unexpected broadcast start: %s", bp.Start)
	}
}

func TestParseReadsPlayIDAttributeFallback(t *testing.T) {
	raw := wrapFeed("",
		`<row PlayID=" 77 "><CATIN>00:10:00:000</CATIN></row>`,
		coachRow("78", "00:10:20:000", ""),
	)
	plays, err := Parse(raw, Coach)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if _, ok := plays.Get("77"); !ok {
		t.Fatalf("expected play id from attribute, got %v", plays.IDs())
	}
}

func TestParseSkipsRowsMissingIDOrTiming(t *testing.T) {
	raw := wrapFeed("",
		`<row><CATIN>00:09:00:000</CATIN></row>`,
		`<row><id>2</id></row>`,
		`<row><id>3</id><CATIN>garbage</CATIN></row>`,
		coachRow("4", "00:10:00:000", ""),
	)
	plays, err := Parse(raw, Coach)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if plays.Len() != 1 {
		t.Fatalf("expected only the valid row, got %v", plays.IDs())
	}
}

func TestParseCarriesBroadcastEndTime(t *testing.T) {
	raw := wrapFeed("03:10:21:45",
		`<row><id>1</id><ArchiveTCIN>00:10:00:00</ArchiveTCIN></row>`,
		`<row><id>2</id><ArchiveTCIN>00:10:20:00</ArchiveTCIN></row>`,
	)
	plays, err := Parse(raw, Broadcast)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	for _, p := range plays.Plays() {
		if p.BroadcastEnd == nil {
			t.Fatalf("expected broadcast end on play %s", p.ID)
		}
		if p.BroadcastEnd.String() != "03:10:21:450" {
			t.Fatalf("unexpected broadcast end: %s", p.BroadcastEnd)
		}
	}
}

func TestParseFailsWithoutUsableRows(t *testing.T) {
	for _, raw := range [][]byte{
		nil,
		[]byte("complete garbage, not markup at all"),
		wrapFeed(""),
		wrapFeed("", `<row><id>1</id></row>`),
	} {
		if _, err := Parse(raw, Coach); !errors.Is(err, ErrNoTimingData) {
			t.Fatalf("expected ErrNoTimingData for %q, got %v", raw, err)
		}
	}
}

func TestPlayFileNames(t *testing.T) {
	p := Play{ID: "54"}
	if p.FileID() != "0054" || p.FileName() != "0054.mp4" {
		t.Fatalf("unexpected numeric file id: %s", p.FileName())
	}
	p = Play{ID: "alt-7"}
	if p.FileName() != "alt-7.mp4" {
		t.Fatalf("expected non-numeric id to pass through, got %s", p.FileName())
	}
}
