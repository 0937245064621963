package pbp

import (
	"fmt"
	"strconv"

	"gridcut/internal/timecode"
)

// Dialect selects which timing stream of the feed applies to the footage
// being sliced.
type Dialect string

const (
	// Coach timing (the CATIN field) is aligned to the unedited coach
	// tape and needs no offset correction.
	Coach Dialect = "coach"
	// Broadcast timing (the ArchiveTCIN field) is aligned to the televised
	// recording and must be reconciled against the real file duration.
	Broadcast Dialect = "broadcast"
)

// timingField returns the row element carrying the start timestamp for the
// dialect.
func (d Dialect) timingField() string {
	if d == Coach {
		return "catin"
	}
	return "archivetcin"
}

func (d Dialect) String() string {
	return string(d)
}

// Play is the timed interval of a single play within game footage. Values
// are immutable once parsed.
type Play struct {
	// ID is the vendor-assigned play identifier, unique within a game.
	ID string
	// Start is the recorded start of the play.
	Start timecode.TimePoint
	// End is the start of the following row, or nil for the final play of
	// the feed.
	End *timecode.TimePoint
	// BroadcastEnd carries the feed-level end-of-broadcast timestamp when
	// the feed supplies one. It is identical across every play of a game
	// and feeds the offset reconciler.
	BroadcastEnd *timecode.TimePoint
	// Description is the vendor's human-readable play text, usually
	// prefixed with the game clock in parentheses.
	Description string
}

// FileID returns the identifier used in output file names: numeric play ids
// are zero-padded to four digits, anything else passes through unchanged.
func (p Play) FileID() string {
	return fileID(p.ID)
}

// FileName returns the clip file name for the play.
func (p Play) FileName() string {
	return p.FileID() + ".mp4"
}

func (p Play) String() string {
	end := "none"
	if p.End != nil {
		end = p.End.String()
	}
	return fmt.Sprintf("(%s, %s, %s)", p.ID, p.Start, end)
}

func fileID(id string) string {
	if n, err := strconv.Atoi(id); err == nil {
		return fmt.Sprintf("%04d", n)
	}
	return id
}

// PlayMap is an insertion-ordered collection of plays keyed by play id.
// Insertion order matches the chronological order of the feed.
type PlayMap struct {
	order []string
	byID  map[string]Play
}

// NewPlayMap returns an empty ordered play collection.
func NewPlayMap() *PlayMap {
	return &PlayMap{byID: make(map[string]Play)}
}

func (m *PlayMap) add(p Play) {
	if _, ok := m.byID[p.ID]; !ok {
		m.order = append(m.order, p.ID)
	}
	m.byID[p.ID] = p
}

// Len returns the number of plays.
func (m *PlayMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Get returns the play for id.
func (m *PlayMap) Get(id string) (Play, bool) {
	if m == nil {
		return Play{}, false
	}
	p, ok := m.byID[id]
	return p, ok
}

// IDs returns the play identifiers in feed order.
func (m *PlayMap) IDs() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Plays returns the plays in feed order.
func (m *PlayMap) Plays() []Play {
	if m == nil {
		return nil
	}
	out := make([]Play, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}
