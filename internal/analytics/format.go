package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TranscriptDocument is the input to the flat-text transcript export.
type TranscriptDocument struct {
	Title      string
	Presenter  string
	Date       time.Time
	Duration   *float64 // seconds; nil renders "N/A"
	Confidence int      // percentage
	FullText   string
	Segments   []DocumentSegment
	Highlights []string // nil omits the highlights section entirely
}

// DocumentSegment is one pre-rendered transcript line.
type DocumentSegment struct {
	Timestamp string
	Speaker   string
	Text      string
}

// FormatTranscriptDocument renders a transcript and its insights as a plain
// text document: header block, per-segment body (falling back to the raw full
// text when no segments exist), and an optional highlights section.
func FormatTranscriptDocument(doc TranscriptDocument) string {
	var b strings.Builder

	b.WriteString("WEBINAR TRANSCRIPT\n")
	b.WriteString("==================\n\n")
	fmt.Fprintf(&b, "Title: %s\n", doc.Title)
	fmt.Fprintf(&b, "Presenter: %s\n", doc.Presenter)
	fmt.Fprintf(&b, "Date: %s\n", doc.Date.Format("1/2/2006"))
	if doc.Duration != nil {
		fmt.Fprintf(&b, "Duration: %d minutes\n", int(math.Round(*doc.Duration/60)))
	} else {
		b.WriteString("Duration: N/A\n")
	}
	fmt.Fprintf(&b, "Confidence: %d%%\n\n", doc.Confidence)

	b.WriteString("TRANSCRIPT\n")
	b.WriteString("==========\n\n")

	switch {
	case len(doc.Segments) > 0:
		for _, seg := range doc.Segments {
			fmt.Fprintf(&b, "[%s] %s: %s\n\n", seg.Timestamp, seg.Speaker, seg.Text)
		}
	case doc.FullText != "":
		b.WriteString(doc.FullText)
	default:
		b.WriteString("No transcript available.")
	}

	if doc.Highlights != nil {
		b.WriteString("\n\nKEY HIGHLIGHTS\n")
		b.WriteString("==============\n\n")
		for i, highlight := range doc.Highlights {
			fmt.Fprintf(&b, "%d. %s\n", i+1, highlight)
		}
	}

	b.WriteString("\n\n--- Generated by VocallQ Analytics ---")
	return b.String()
}
