package renderer

import (
	"unicode"

	"github.com/figkit/figkit/internal/debug"
)

// smushAmount reports how many columns the incoming glyph may overlap
// the output buffer, zero when the mode calls for full width. The
// window starts at the glyph's full width and shrinks to the tightest
// row.
//
// Per row, the left boundary is the last visible rune of the buffer
// row and the right boundary the first visible rune of the glyph row.
// Right-to-left swaps the operands: there the buffer's left edge meets
// the glyph's right edge, and swapping lets one calculation serve both
// directions. The gap between the boundaries is the base amount; one
// extra column is granted when the left boundary row is blank or the
// boundary pair smushes.
func (s *state) smushAmount() int {
	if s.smushMode&(smSmush|smKern) == 0 {
		return 0
	}

	trace := s.dbg != nil
	maxSmush := s.curCharWidth

	for row := range s.rows {
		lineLeft, lineRight := s.rows[row], s.glyph[row]
		if s.rightToLeft {
			lineLeft, lineRight = lineRight, lineLeft
		}

		// linebd indexes the last visible rune on the left. An empty
		// row leaves ch1 unset, an all-blank row yields its first
		// rune, which is blank and handled the same way below.
		linebd := rstripLen(lineLeft) - 1
		if linebd < 0 {
			linebd = 0
		}
		var ch1 rune
		if linebd < len(lineLeft) {
			ch1 = lineLeft[linebd]
		} else {
			linebd = 0
		}

		// charbd indexes the first visible rune on the right, or one
		// past the end when the row is blank.
		charbd := leadingSpace(lineRight)
		var ch2 rune
		if charbd < len(lineRight) {
			ch2 = lineRight[charbd]
		}

		amt := charbd + len(lineLeft) - 1 - linebd

		reason := "none"
		if ch1 == 0 || ch1 == ' ' {
			amt++
			reason = "ch1_blank"
		} else if ch2 != 0 {
			if _, ok := s.smushem(ch1, ch2); ok {
				amt++
				reason = "smushable"
			}
		}

		if trace {
			s.dbg.Emit("render", "SmushAmountRow", debug.SmushAmountRowData{
				Row:             row,
				LineBoundaryIdx: linebd,
				CharBoundaryIdx: charbd,
				Ch1:             ch1,
				Ch2:             ch2,
				Amount:          amt,
				Reason:          reason,
				RTL:             s.rightToLeft,
			})
		}

		if amt < maxSmush {
			maxSmush = amt
		}
	}

	return maxSmush
}

// rstripLen is the length of rs with trailing whitespace removed.
// Hardblanks are not whitespace and anchor the boundary like any
// visible rune.
func rstripLen(rs []rune) int {
	n := len(rs)
	for n > 0 && unicode.IsSpace(rs[n-1]) {
		n--
	}
	return n
}

// leadingSpace counts the whitespace runes opening rs.
func leadingSpace(rs []rune) int {
	i := 0
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		i++
	}
	return i
}
