package pbp

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"gridcut/internal/timecode"
)

// ErrNoTimingData reports a feed that is absent, unparsable, or contains no
// usable timing rows. Callers treat all three identically.
var ErrNoTimingData = errors.New("no usable timing data")

// feedRow is one buffered timing row in document order.
type feedRow struct {
	id          string
	start       timecode.TimePoint
	description string
	prePlay     string
}

// Parse reads the vendor timing feed and returns the ordered play map for
// the requested dialect.
//
// Rows are buffered in document order so each play's end can be taken from
// the following row's start. Administrative rows (timeouts, two-minute
// warnings) are excluded only after end pairing, so an excluded row still
// supplies its neighbor's boundary. Rows whose start precedes the previous
// retained row are dropped to guard against out-of-order feed corruption.
func Parse(raw []byte, dialect Dialect) (*PlayMap, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty feed", ErrNoTimingData)
	}

	rows, broadcastEnd, err := scanRows(raw, dialect)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTimingData, err)
	}

	plays := NewPlayMap()
	for i, row := range rows {
		if excluded(row) {
			continue
		}
		var end *timecode.TimePoint
		if i < len(rows)-1 {
			next := rows[i+1].start
			end = &next
		}
		plays.add(Play{
			ID:           row.id,
			Start:        row.start,
			End:          end,
			BroadcastEnd: broadcastEnd,
			Description:  row.description,
		})
	}
	if plays.Len() == 0 {
		return nil, fmt.Errorf("%w: no timing rows", ErrNoTimingData)
	}
	return plays, nil
}

// scanRows walks the markup leniently, matching element and attribute names
// case-insensitively the way the vendor's inconsistent feeds require.
func scanRows(raw []byte, dialect Dialect) ([]feedRow, *timecode.TimePoint, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Strict = false

	var (
		rows         []feedRow
		broadcastEnd *timecode.TimePoint
		inRow        bool
		curAttrs     map[string]string
		curFields    map[string]*strings.Builder
		curField     string
		sawElement   bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse markup: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawElement = true
			name := strings.ToLower(t.Name.Local)
			switch {
			case name == "dataset":
				for _, attr := range t.Attr {
					if strings.EqualFold(attr.Name.Local, "endtime") {
						if tp, err := timecode.Parse(attr.Value); err == nil {
							broadcastEnd = &tp
						}
					}
				}
			case name == "row":
				inRow = true
				curField = ""
				curAttrs = make(map[string]string, len(t.Attr))
				curFields = make(map[string]*strings.Builder)
				for _, attr := range t.Attr {
					curAttrs[strings.ToLower(attr.Name.Local)] = attr.Value
				}
			case inRow:
				curField = name
				if _, ok := curFields[name]; !ok {
					curFields[name] = &strings.Builder{}
				}
			}
		case xml.CharData:
			if inRow && curField != "" {
				curFields[curField].Write(t)
			}
		case xml.EndElement:
			name := strings.ToLower(t.Name.Local)
			switch {
			case name == "row" && inRow:
				inRow = false
				if row, ok := buildRow(curAttrs, curFields, dialect); ok {
					if len(rows) > 0 && row.start.Before(rows[len(rows)-1].start) {
						// Out-of-order feed corruption; drop the row.
						continue
					}
					rows = append(rows, row)
				}
			case name == curField:
				curField = ""
			}
		}
	}

	if !sawElement {
		return nil, nil, errors.New("no markup elements found")
	}
	return rows, broadcastEnd, nil
}

// buildRow assembles a timing row from the captured attributes and child
// elements. Rows without a play id or a parsable start timestamp for the
// requested dialect are dropped.
func buildRow(attrs map[string]string, fields map[string]*strings.Builder, dialect Dialect) (feedRow, bool) {
	id := fieldText(fields, "id")
	if id == "" {
		id = strings.TrimSpace(attrs["playid"])
	}
	if id == "" {
		return feedRow{}, false
	}

	startText := fieldText(fields, dialect.timingField())
	if startText == "" {
		return feedRow{}, false
	}
	start, err := timecode.Parse(startText)
	if err != nil {
		// Malformed timestamps invalidate the row, not the feed.
		return feedRow{}, false
	}

	return feedRow{
		id:          id,
		start:       start,
		description: attrs["playdescription"],
		prePlay:     attrs["preplaybyplay"],
	}, true
}

func fieldText(fields map[string]*strings.Builder, name string) string {
	if b, ok := fields[name]; ok {
		return strings.TrimSpace(b.String())
	}
	return ""
}

// excluded reports rows that consume clock but carry no play footage worth
// keeping: timeouts and two-minute warnings.
func excluded(row feedRow) bool {
	desc := strings.ToLower(row.description)
	if strings.HasPrefix(desc, "timeout") || strings.HasPrefix(desc, "two-minute") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(row.prePlay), "timeout")
}
