package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	// Format: [timestamp] [phase/event]
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	switch d := event.Data.(type) {
	case ParseStartData:
		s.writeParseStart(d)
	case FontHeaderData:
		s.writeFontHeader(d)
	case ParseEndData:
		s.writeParseEnd(d)
	case RenderStartData:
		s.writeRenderStart(d)
	case RenderEndData:
		s.writeRenderEnd(d)
	case GlyphData:
		s.writeGlyph(d)
	case RuneSkippedData:
		s.writeRuneSkipped(d)
	case SmushAmountRowData:
		s.writeSmushAmountRow(d)
	case SmushDecisionData:
		s.writeSmushDecision(d)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		s.writeMapInt64(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeParseStart(d ParseStartData) {
	if d.Name != "" {
		fmt.Fprintf(s.w, "  name: %s\n", d.Name)
	}
	fmt.Fprintf(s.w, "  bytes: %d\n", d.Bytes)
}

func (s *PrettySink) writeFontHeader(d FontHeaderData) {
	fmt.Fprintf(s.w, "  hardblank: %s, height: %d, baseline: %d, max_length: %d\n",
		runeStr(d.Hardblank), d.Height, d.Baseline, d.MaxLength)
	fmt.Fprintf(s.w, "  old_layout: %d, comment_lines: %d, print_dir: %s\n",
		d.OldLayout, d.CommentLines, dirStr(d.PrintDirection))
	if d.FullLayoutSet {
		fmt.Fprintf(s.w, "  full_layout: 0x%02X\n", d.FullLayout)
	}
}

func (s *PrettySink) writeParseEnd(d ParseEndData) {
	fmt.Fprintf(s.w, "  glyphs: %d (%d extended), elapsed_ms: %d\n", d.Glyphs, d.Extended, d.ElapsedMs)
}

func (s *PrettySink) writeRenderStart(d RenderStartData) {
	fmt.Fprintf(s.w, "  text: %q (length: %d)\n", d.Text, d.TextLength)
	fmt.Fprintf(s.w, "  char_height: %d, hardblank: %s\n", d.CharHeight, runeStr(d.Hardblank))
	fmt.Fprintf(s.w, "  width: %d, print_dir: %s, justify: %d\n", d.Width, dirStr(d.PrintDir), d.Justify)
	fmt.Fprintf(s.w, "  smush_mode: 0x%02X (%s)\n", d.SmushMode, strings.Join(d.SmushRules, "|"))
}

func (s *PrettySink) writeRenderEnd(d RenderEndData) {
	fmt.Fprintf(s.w, "  total_lines: %d, total_runes: %d, total_glyphs: %d\n",
		d.TotalLines, d.TotalRunes, d.TotalGlyphs)
	fmt.Fprintf(s.w, "  elapsed_ms: %d, bytes_written: %d\n", d.ElapsedMs, d.BytesWritten)
}

func (s *PrettySink) writeGlyph(d GlyphData) {
	fmt.Fprintf(s.w, "  index: %d, rune: %s, width: %d, overlap: %d\n",
		d.Index, runeStr(d.Rune), d.Width, d.Overlap)
}

func (s *PrettySink) writeRuneSkipped(d RuneSkippedData) {
	fmt.Fprintf(s.w, "  index: %d, rune: %s (no glyph)\n", d.Index, runeStr(d.Rune))
}

func (s *PrettySink) writeSmushAmountRow(d SmushAmountRowData) {
	fmt.Fprintf(s.w, "  row: %d\n", d.Row)
	fmt.Fprintf(s.w, "  boundaries: line=%d (%s), char=%d (%s)\n",
		d.LineBoundaryIdx, runeStr(d.Ch1),
		d.CharBoundaryIdx, runeStr(d.Ch2))
	fmt.Fprintf(s.w, "  amount: %d (%s)\n", d.Amount, d.Reason)
	if d.RTL {
		fmt.Fprintf(s.w, "  direction: RTL\n")
	}
}

func (s *PrettySink) writeSmushDecision(d SmushDecisionData) {
	fmt.Fprintf(s.w, "  position: row=%d, col=%d\n", d.Row, d.Col)
	fmt.Fprintf(s.w, "  characters: %s + %s → %s\n",
		runeStr(d.Lch), runeStr(d.Rch), runeStr(d.Result))
	fmt.Fprintf(s.w, "  rule: %s\n", d.Rule)
}

func (s *PrettySink) writeMap(d map[string]interface{}) {
	for k, v := range d {
		fmt.Fprintf(s.w, "  %s: %v\n", k, v)
	}
}

func (s *PrettySink) writeMapInt64(d map[string]int64) {
	for k, v := range d {
		fmt.Fprintf(s.w, "  %s: %d\n", k, v)
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

// runeStr formats a rune for display: 'X' (0x58) or NUL for 0.
func runeStr(r rune) string {
	if r == 0 {
		return "NUL"
	}
	if r >= 32 && r < 127 {
		return fmt.Sprintf("'%c' (0x%02X)", r, r)
	}
	return fmt.Sprintf("0x%02X", r)
}

// dirStr converts print direction to a string.
func dirStr(dir int) string {
	if dir == 0 {
		return "LTR"
	}
	return "RTL"
}
