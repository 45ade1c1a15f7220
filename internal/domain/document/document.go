// Package document normalizes raw extracted statement text into a clean,
// line-oriented form that the detector, field engine, and transaction parser
// all consume. Normalization is deterministic and side-effect free.
package document

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidText indicates the input could not be decoded as text at all.
// This is the only whole-document rejection; everything downstream degrades
// per field instead of failing.
var ErrInvalidText = errors.New("document text is not valid UTF-8")

// BoundingBox holds optional layout metadata for a line, as reported by the
// upstream PDF text extractor. Coordinates are in the extractor's page space.
type BoundingBox struct {
	Page int     `json:"page"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

// SourceLine is one line of extracted text with optional position metadata.
type SourceLine struct {
	Text string
	BBox *BoundingBox
}

// Line is a normalized line of statement text.
type Line struct {
	Number int    // 1-based position within the document
	Text   string // whitespace-collapsed text
	BBox   *BoundingBox
}

// RawDocument is the normalized view of one statement's extracted text.
// It is immutable once produced; all downstream passes share it read-only.
type RawDocument struct {
	Lines  []Line
	Joined string // single-string view for multi-line pattern matches
}

// Empty reports whether the document contains no text.
func (d *RawDocument) Empty() bool {
	return d == nil || len(d.Lines) == 0
}

// LineTexts returns the normalized line texts in order.
func (d *RawDocument) LineTexts() []string {
	out := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l.Text
	}
	return out
}

// Snippet returns at most n bytes of the joined view, for diagnostics. The
// cut always lands on a rune boundary so the snippet stays valid UTF-8.
func (d *RawDocument) Snippet(n int) string {
	if d == nil || n <= 0 {
		return ""
	}
	if len(d.Joined) <= n {
		return d.Joined
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(d.Joined[cut]) {
		cut--
	}
	return d.Joined[:cut]
}

// Normalize cleans raw extracted text and splits it into logical lines.
// Empty input yields an empty document, not an error; the only failure is
// text that cannot be decoded at all.
func Normalize(raw string) (*RawDocument, error) {
	if !utf8.ValidString(raw) {
		return nil, ErrInvalidText
	}

	src := make([]SourceLine, 0, 64)
	for _, line := range strings.Split(raw, "\n") {
		src = append(src, SourceLine{Text: line})
	}
	return NormalizeLines(src)
}

// NormalizeLines is the metadata-preserving variant of Normalize, for callers
// whose extractor reports per-line bounding boxes.
func NormalizeLines(lines []SourceLine) (*RawDocument, error) {
	doc := &RawDocument{}

	for _, src := range lines {
		if !utf8.ValidString(src.Text) {
			return nil, ErrInvalidText
		}
		text := CollapseSpaces(cleanArtifacts(src.Text))
		if text == "" {
			continue
		}
		doc.Lines = append(doc.Lines, Line{
			Number: len(doc.Lines) + 1,
			Text:   text,
			BBox:   src.BBox,
		})
	}

	doc.Joined = joinLines(doc.Lines)
	return doc, nil
}

// CollapseSpaces trims a string and collapses any whitespace run to one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanArtifacts removes common PDF extraction artifacts: non-breaking and
// zero-width spaces, BOMs, and stray control characters.
func cleanArtifacts(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\u00a0': // non-breaking space
			b.WriteRune(' ')
		case '\u200b', '\ufeff': // zero-width space, BOM
			continue
		default:
			if unicode.IsControl(r) && r != '\t' {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// joinLines builds the single-string view. A line ending in a hyphen followed
// by a lowercase continuation is re-joined, undoing extraction hyphenation.
func joinLines(lines []Line) string {
	var b strings.Builder
	for i, l := range lines {
		text := l.Text
		if i < len(lines)-1 && strings.HasSuffix(text, "-") && startsLower(lines[i+1].Text) {
			b.WriteString(strings.TrimSuffix(text, "-"))
			continue
		}
		b.WriteString(text)
		if i < len(lines)-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}
