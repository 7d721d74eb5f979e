package transcript

import (
	"strings"
	"testing"
)

func TestSplit_Empty(t *testing.T) {
	segments := Split(nil, SegmentWindow)
	if len(segments) != 0 {
		t.Errorf("Split(nil) got %d segments, want 0", len(segments))
	}

	segments = Split([]Entry{}, SegmentWindow)
	if len(segments) != 0 {
		t.Errorf("Split(empty) got %d segments, want 0", len(segments))
	}
}

func TestSplit_SingleWindow(t *testing.T) {
	entries := []Entry{
		{Text: "hello", Start: 0, Duration: 2},
		{Text: "world", Start: 2.5, Duration: 2},
		{Text: "again", Start: 100, Duration: 2},
	}

	segments := Split(entries, SegmentWindow)
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].Timestamp != "0:00" {
		t.Errorf("timestamp = %q, want 0:00", segments[0].Timestamp)
	}
	if segments[0].Text != "hello world again" {
		t.Errorf("text = %q", segments[0].Text)
	}
}

func TestSplit_MultipleWindows(t *testing.T) {
	entries := []Entry{
		{Text: "a", Start: 0},
		{Text: "b", Start: 60},
		{Text: "c", Start: 121}, // crosses the boundary, closes first segment
		{Text: "d", Start: 180},
		{Text: "e", Start: 250}, // crosses again
	}

	segments := Split(entries, SegmentWindow)
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segments), segments)
	}

	// The closing entry is included in the segment it closes, and each
	// segment is labeled with the boundary it was opened at. Entry e both
	// closed the second segment and emptied the accumulator, so no trailing
	// segment follows it.
	want := []Segment{
		{Timestamp: "0:00", Text: "a b c"},
		{Timestamp: "2:01", Text: "d e"},
	}
	for i, w := range want {
		if segments[i] != w {
			t.Errorf("segment[%d] = %+v, want %+v", i, segments[i], w)
		}
	}
}

func TestSplit_LateFirstEntryKeepsZeroLabel(t *testing.T) {
	// A single entry starting past the window still lands in one segment
	// labeled with the initial boundary, because the first entry is always
	// accumulated before any close can trigger.
	entries := []Entry{{Text: "late", Start: 500}}

	segments := Split(entries, SegmentWindow)
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].Timestamp != "0:00" {
		t.Errorf("timestamp = %q, want 0:00", segments[0].Timestamp)
	}
}

func TestSplit_TextReassembly(t *testing.T) {
	entries := []Entry{
		{Text: "one", Start: 0},
		{Text: "two", Start: 119},
		{Text: "three", Start: 125},
		{Text: "four", Start: 240},
		{Text: "five", Start: 366},
		{Text: "six", Start: 400},
	}

	segments := Split(entries, SegmentWindow)

	// Concatenating all segments' untruncated text reproduces the full
	// transcript word for word.
	var joined []string
	for _, s := range segments {
		joined = append(joined, s.Text)
	}
	if got, want := strings.Join(joined, " "), FullText(entries); got != want {
		t.Errorf("reassembled = %q, want %q", got, want)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59.9, "0:59"},
		{60, "1:00"},
		{125, "2:05"},
		{3600, "60:00"},
		{731.4, "12:11"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestOverview_TruncatesPreviewOnly(t *testing.T) {
	long := strings.Repeat("x", 150)
	segments := []Segment{
		{Timestamp: "0:00", Text: long},
		{Timestamp: "2:00", Text: "short"},
	}

	overview := Overview(segments)
	lines := strings.Split(overview, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if want := "[0:00] " + strings.Repeat("x", 100) + "..."; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if want := "[2:00] short..."; lines[1] != want {
		t.Errorf("line 1 = %q, want %q", lines[1], want)
	}

	// Truncation must not leak back into the segments themselves.
	if len(segments[0].Text) != 150 {
		t.Errorf("segment text mutated, len = %d", len(segments[0].Text))
	}
}

func TestFullText(t *testing.T) {
	entries := []Entry{
		{Text: "never", Start: 0},
		{Text: "gonna", Start: 1},
		{Text: "give you up", Start: 2},
	}
	if got, want := FullText(entries), "never gonna give you up"; got != want {
		t.Errorf("FullText = %q, want %q", got, want)
	}
	if got := FullText(nil); got != "" {
		t.Errorf("FullText(nil) = %q, want empty", got)
	}
}
