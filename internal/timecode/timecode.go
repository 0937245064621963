package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMalformed reports a timestamp field that does not match the
	// expected HH:MM:SS:fff shape.
	ErrMalformed = errors.New("malformed timecode")
	// ErrOutOfOrder reports a subtraction whose right operand does not
	// chronologically precede the left operand.
	ErrOutOfOrder = errors.New("out of order timecode")
)

// TimePoint is a moment within a video's timeline, held with millisecond
// precision. The zero value is 00:00:00:000.
type TimePoint struct {
	hour   int
	minute int
	second int
	milli  int
}

// Parse reads a timestamp of the form HH:MM:SS:fff where fff is either two
// or three digits. Vendor feeds disagree on the unit of the fourth
// component: three digits carry true milliseconds, while the two-digit form
// carries tens of milliseconds and is multiplied by 10 here. The returned
// TimePoint always holds true milliseconds.
func Parse(text string) (TimePoint, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 4 {
		return TimePoint{}, fmt.Errorf("%w: expected 4 parts in %q", ErrMalformed, text)
	}
	values := make([]int, 4)
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return TimePoint{}, fmt.Errorf("%w: %q", ErrMalformed, text)
		}
		if v < 0 {
			return TimePoint{}, fmt.Errorf("%w: negative component in %q", ErrMalformed, text)
		}
		values[i] = v
	}
	milli := values[3]
	if len(parts[3]) != 3 {
		milli *= 10
	}
	if milli > 999 {
		return TimePoint{}, fmt.Errorf("%w: millisecond field out of range in %q", ErrMalformed, text)
	}
	return TimePoint{hour: values[0], minute: values[1], second: values[2], milli: milli}, nil
}

// FromSeconds builds a TimePoint from a fractional second count. Negative
// inputs clamp to zero.
func FromSeconds(value float64) TimePoint {
	if value < 0 {
		value = 0
	}
	milli := int(math.Round(value * 1000))
	second := milli / 1000
	milli -= second * 1000
	hour := second / 3600
	second -= hour * 3600
	minute := second / 60
	second -= minute * 60
	return TimePoint{hour: hour, minute: minute, second: second, milli: milli}
}

// Seconds returns the fractional-second value of the time point.
func (t TimePoint) Seconds() float64 {
	secs := t.hour*3600 + t.minute*60 + t.second
	return float64(secs*1000+t.milli) / 1000.0
}

// AddSeconds returns a new TimePoint shifted by delta seconds. Results that
// would fall before the start of the timeline clamp to zero.
func (t TimePoint) AddSeconds(delta float64) TimePoint {
	return FromSeconds(t.Seconds() + delta)
}

// WholeSeconds returns the time point rounded to the nearest whole second,
// rounding half up.
func (t TimePoint) WholeSeconds() int {
	secs := t.hour*3600 + t.minute*60 + t.second
	if t.milli >= 500 {
		secs++
	}
	return secs
}

// Sub returns the difference between t and earlier, rounded to the nearest
// second. The earlier operand must not chronologically follow t.
func (t TimePoint) Sub(earlier TimePoint) (int, error) {
	if t.Compare(earlier) < 0 {
		return 0, fmt.Errorf("%w: %s is after %s", ErrOutOfOrder, earlier, t)
	}
	return int(math.Round(t.Seconds() - earlier.Seconds())), nil
}

// Compare orders two time points by their fractional-second value. It
// returns -1 when t is earlier than other, 0 when equal, and +1 when later.
func (t TimePoint) Compare(other TimePoint) int {
	a, b := t.Seconds(), other.Seconds()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether t is strictly earlier than other.
func (t TimePoint) Before(other TimePoint) bool {
	return t.Compare(other) < 0
}

// Milliseconds returns the normalized millisecond remainder in [0, 999].
func (t TimePoint) Milliseconds() int {
	return t.milli
}

// String renders the canonical feed form HH:MM:SS:mmm.
func (t TimePoint) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%03d", t.hour, t.minute, t.second, t.milli)
}

// Clock renders the HH:MM:SS.mmm form accepted by ffmpeg for seek and
// duration arguments.
func (t TimePoint) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.hour, t.minute, t.second, t.milli)
}
