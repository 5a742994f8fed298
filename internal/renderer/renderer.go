package renderer

import (
	"bytes"
	"io"
	"time"
	"unicode/utf8"

	"github.com/figkit/figkit/internal/common"
	"github.com/figkit/figkit/internal/debug"
	"github.com/figkit/figkit/internal/parser"
)

// Render lays out text in the given font and returns the banner: one
// line per font row joined by newlines, with a trailing newline, and
// hardblanks replaced by spaces. Empty input yields height empty
// lines. Runes the font has no glyph for are skipped.
func Render(text string, font *parser.Font, opts *Options) string {
	st := acquireState(font, opts)
	defer releaseState(st)

	st.renderText(text)

	buf := acquireWriteBuffer()
	defer releaseWriteBuffer(buf)
	st.appendTo(buf)

	out := buf.String()
	st.emitEnd(text, len(out))
	return out
}

// RenderTo streams the banner into w. Layout itself cannot fail; only
// writer errors surface.
func RenderTo(w io.Writer, text string, font *parser.Font, opts *Options) error {
	st := acquireState(font, opts)
	defer releaseState(st)

	st.renderText(text)

	buf := acquireWriteBuffer()
	defer releaseWriteBuffer(buf)
	st.appendTo(buf)

	n, err := w.Write(buf.Bytes())
	st.emitEnd(text, n)
	return err
}

// renderText lays every input rune's glyph into the buffer, then
// applies justification. The buffer starts empty, so the first glyph's
// own leading spaces are consumed by the same overlap arithmetic that
// positions every later glyph.
func (s *state) renderText(text string) {
	trace := s.dbg != nil
	if trace {
		s.start = time.Now()
		s.dbg.Emit("render", "RenderStart", debug.RenderStartData{
			Text:       text,
			TextLength: utf8.RuneCountInString(text),
			CharHeight: s.font.Height,
			Hardblank:  s.hardblank,
			Width:      s.width,
			PrintDir:   boolToDir(s.rightToLeft),
			Justify:    s.justify,
			SmushMode:  s.smushMode,
			SmushRules: debug.FormatSmushRules(s.smushMode),
		})
	}

	idx := 0
	for _, r := range text {
		g, ok := s.font.Glyphs[r]
		if !ok {
			if trace {
				s.dbg.Emit("render", "RuneSkipped", debug.RuneSkippedData{
					Index: idx,
					Rune:  r,
				})
			}
			idx++
			continue
		}

		s.curCharWidth = g.Width
		s.loadGlyph(g)

		overlap := s.smushAmount()
		for row := range s.rows {
			s.mergeRow(row, overlap)
		}

		s.prevCharWidth = s.curCharWidth
		s.glyphCount++

		if trace {
			s.dbg.Emit("render", "Glyph", debug.GlyphData{
				Index:   idx,
				Rune:    r,
				Width:   g.Width,
				Overlap: overlap,
			})
		}
		idx++
	}

	s.justifyRows()
}

// loadGlyph fills the glyph scratch with g's rows as runes. The parser
// guarantees exactly Height rows per glyph, though rows may be ragged.
func (s *state) loadGlyph(g parser.Glyph) {
	for i, row := range g.Rows {
		s.glyph[i] = appendRunes(s.glyph[i][:0], row)
	}
}

// mergeRow folds glyph row into buffer row with the given overlap.
// Left-to-right appends the glyph after the buffer; right-to-left
// swaps the operands so the glyph goes in front. Within the overlap
// window each column pair is offered to smushem, and the left operand
// keeps its rune when no merge is produced. Ragged rows shorter than
// the window clamp instead of failing.
func (s *state) mergeRow(row, overlap int) {
	left, right := s.rows[row], s.glyph[row]
	if s.rightToLeft {
		left, right = right, left
	}

	trace := s.dbg != nil

	for i := 0; i < overlap; i++ {
		idx := len(left) - overlap + i
		if idx < 0 || idx >= len(left) || i >= len(right) {
			continue
		}
		merged, ok := s.smushem(left[idx], right[i])
		if !ok {
			continue
		}
		if trace {
			s.dbg.Emit("render", "SmushDecision", debug.SmushDecisionData{
				Row:    row,
				Col:    i,
				Lch:    left[idx],
				Rch:    right[i],
				Result: merged,
				Rule:   debug.ClassifySmushRule(left[idx], right[i], merged, s.smushMode, s.hardblank),
			})
		}
		left[idx] = merged
	}

	start := overlap
	if start > len(right) {
		start = len(right)
	}
	tail := right[start:]

	if s.rightToLeft {
		// left aliases the glyph scratch here; the buffer row needs
		// its own storage.
		merged := make([]rune, 0, len(left)+len(tail))
		merged = append(merged, left...)
		merged = append(merged, tail...)
		s.rows[row] = merged
	} else {
		s.rows[row] = append(left, tail...)
	}
}

// justifyRows pads rows on the left according to the resolved
// justification. Right justification keeps one column free at the
// edge, matching figlet output. Rows already wider than the width are
// left alone.
func (s *state) justifyRows() {
	switch s.justify {
	case common.JustifyRight:
		for i := range s.rows {
			s.rows[i] = padLeft(s.rows[i], s.width-len(s.rows[i])-1)
		}
	case common.JustifyCenter:
		for i := range s.rows {
			s.rows[i] = padLeft(s.rows[i], (s.width-len(s.rows[i]))/2)
		}
	}
}

// appendTo emits the buffer rows, one per line with a trailing
// newline. Hardblanks become spaces here, at the last moment, so the
// merge logic saw them as visible characters throughout.
func (s *state) appendTo(buf *bytes.Buffer) {
	for _, row := range s.rows {
		for _, r := range row {
			if r == s.hardblank {
				r = ' '
			}
			buf.WriteRune(r)
		}
		buf.WriteByte('\n')
	}
}

func (s *state) emitEnd(text string, bytesWritten int) {
	if s.dbg == nil {
		return
	}
	s.dbg.Emit("render", "RenderEnd", debug.RenderEndData{
		TotalLines:   len(s.rows),
		TotalRunes:   utf8.RuneCountInString(text),
		TotalGlyphs:  s.glyphCount,
		ElapsedMs:    time.Since(s.start).Milliseconds(),
		BytesWritten: bytesWritten,
	})
}

// padLeft prepends n spaces, doing nothing for n <= 0.
func padLeft(rs []rune, n int) []rune {
	if n <= 0 {
		return rs
	}
	out := make([]rune, 0, n+len(rs))
	for i := 0; i < n; i++ {
		out = append(out, ' ')
	}
	return append(out, rs...)
}

func appendRunes(dst []rune, s string) []rune {
	for _, r := range s {
		dst = append(dst, r)
	}
	return dst
}

func boolToDir(rtl bool) int {
	if rtl {
		return common.PrintRTL
	}
	return common.PrintLTR
}
