package timecode

import (
	"errors"
	"math"
	"testing"
)

func TestParseNormalizesTensOfMilliseconds(t *testing.T) {
	tp, err := Parse("01:02:03:45")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tp.Milliseconds() != 450 {
		t.Fatalf("expected 450ms from two-digit field, got %d", tp.Milliseconds())
	}
	if tp.String() != "01:02:03:450" {
		t.Fatalf("unexpected canonical form: %s", tp)
	}
}

func TestParseKeepsTrueMilliseconds(t *testing.T) {
	tp, err := Parse("00:10:00:457")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tp.Milliseconds() != 457 {
		t.Fatalf("expected 457ms from three-digit field, got %d", tp.Milliseconds())
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"00:10:00",
		"00:10:00:12:9",
		"aa:10:00:457",
		"00:10:00:bad",
		"-1:10:00:457",
	}
	for _, input := range cases {
		if _, err := Parse(input); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Parse(%q): expected ErrMalformed, got %v", input, err)
		}
	}
}

func TestFromSecondsRoundTrips(t *testing.T) {
	for _, value := range []float64{0, 0.5, 61.25, 3599.999, 3600, 7210.002} {
		tp := FromSeconds(value)
		if math.Abs(tp.Seconds()-value) > 0.001 {
			t.Fatalf("FromSeconds(%v).Seconds() = %v", value, tp.Seconds())
		}
	}
}

func TestFromSecondsMatchesParsedForm(t *testing.T) {
	parsed, err := Parse("02:15:30:250")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	rebuilt := FromSeconds(parsed.Seconds())
	if rebuilt.String() != parsed.String() {
		t.Fatalf("string forms diverge: %s vs %s", rebuilt, parsed)
	}
}

func TestFromSecondsClampsNegative(t *testing.T) {
	tp := FromSeconds(-12.5)
	if tp.Seconds() != 0 {
		t.Fatalf("expected clamp to zero, got %v", tp.Seconds())
	}
}

func TestAddSecondsComposesWithPlainAddition(t *testing.T) {
	base, err := Parse("00:10:00:000")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	chained := base.AddSeconds(12.25).AddSeconds(7.5)
	direct := base.AddSeconds(19.75)
	if math.Abs(chained.Seconds()-direct.Seconds()) > 0.001 {
		t.Fatalf("chained %v != direct %v", chained.Seconds(), direct.Seconds())
	}
}

func TestWholeSecondsRoundsHalfUp(t *testing.T) {
	tp, err := Parse("00:00:10:500")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tp.WholeSeconds() != 11 {
		t.Fatalf("expected 11, got %d", tp.WholeSeconds())
	}
	tp, err = Parse("00:00:10:499")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tp.WholeSeconds() != 10 {
		t.Fatalf("expected 10, got %d", tp.WholeSeconds())
	}
}

func TestSubRoundsToNearestSecond(t *testing.T) {
	later := FromSeconds(125.6)
	earlier := FromSeconds(100.0)
	diff, err := later.Sub(earlier)
	if err != nil {
		t.Fatalf("Sub returned error: %v", err)
	}
	if diff != 26 {
		t.Fatalf("expected 26, got %d", diff)
	}
}

func TestSubRejectsOutOfOrderOperands(t *testing.T) {
	later := FromSeconds(200)
	earlier := FromSeconds(100)
	if _, err := earlier.Sub(later); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("expected ErrOutOfOrder, got %v", err)
	}
}

func TestCompareIsConsistentWithSeconds(t *testing.T) {
	a := FromSeconds(10)
	b := FromSeconds(10.001)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Fatal("Compare ordering inconsistent")
	}
	if !a.Before(b) || b.Before(a) {
		t.Fatal("Before inconsistent with Compare")
	}
}

func TestClockFormatsForFFmpeg(t *testing.T) {
	tp, err := Parse("00:10:03:005")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if tp.Clock() != "00:10:03.005" {
		t.Fatalf("unexpected clock form: %s", tp.Clock())
	}
}
