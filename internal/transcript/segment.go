// Package transcript turns timed caption entries into the segment overview
// and full text used to prompt the summarizer.
package transcript

import (
	"fmt"
	"strings"
)

const (
	// SegmentWindow is the coarse grouping window in seconds. A new segment
	// starts once an entry begins more than this far after the current
	// segment's boundary.
	SegmentWindow = 120.0

	// PreviewLength caps each segment's rendered preview line. Truncation is
	// display-only; the full transcript text is never truncated here.
	PreviewLength = 100
)

// Entry is one timed line of transcribed speech.
type Entry struct {
	Text     string
	Start    float64
	Duration float64
}

// Segment groups consecutive entries spanning roughly one window.
type Segment struct {
	// Timestamp is the segment boundary label in M:SS form. Note: a segment
	// is labeled with the boundary at which it was *opened*, so the first
	// segment is always labeled 0:00 even when its entries start later.
	// Downstream prompts reference these labels; keep the numbering as is.
	Timestamp string
	Text      string
}

// Split groups entries into window-sized segments. An empty input yields nil.
func Split(entries []Entry, window float64) []Segment {
	var segments []Segment
	var current []string
	boundary := 0.0

	for _, e := range entries {
		current = append(current, e.Text)
		if e.Start-boundary > window {
			segments = append(segments, Segment{
				Timestamp: FormatTimestamp(boundary),
				Text:      strings.Join(current, " "),
			})
			current = nil
			boundary = e.Start
		}
	}

	if len(current) > 0 {
		segments = append(segments, Segment{
			Timestamp: FormatTimestamp(boundary),
			Text:      strings.Join(current, " "),
		})
	}

	return segments
}

// FormatTimestamp renders an offset in seconds as M:SS.
func FormatTimestamp(seconds float64) string {
	m := int(seconds / 60)
	s := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// Overview renders the segments as timestamp-anchored preview lines, one per
// segment, each preview truncated to PreviewLength characters.
func Overview(segments []Segment) string {
	lines := make([]string, len(segments))
	for i, s := range segments {
		text := s.Text
		if len(text) > PreviewLength {
			text = text[:PreviewLength]
		}
		lines[i] = fmt.Sprintf("[%s] %s...", s.Timestamp, text)
	}
	return strings.Join(lines, "\n")
}

// FullText joins all entry texts with single spaces, untruncated and in
// original order.
func FullText(entries []Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Text
	}
	return strings.Join(parts, " ")
}
