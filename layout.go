package figkit

import (
	"strings"

	"github.com/figkit/figkit/internal/common"
	"github.com/figkit/figkit/internal/parser"
)

// SmushMode is the horizontal layout bitmask that controls how glyphs
// are fitted together. Bits 1-32 are smushing rules, bit 64 selects
// kerning and bit 128 selects smushing; with neither fitting bit set,
// glyphs render at full width.
//
// The values match the FIGfont v2 fullLayout header field, so a font's
// raw header value is directly usable with WithSmushMode.
type SmushMode int

// Smushing mode bits.
const (
	// SMEqual merges two identical characters into one. Hardblanks
	// are excluded; they merge only under SMHardblank.
	SMEqual SmushMode = common.SMEqual

	// SMLowline lets an underscore yield to any of |/\[]{}()<>.
	SMLowline SmushMode = common.SMLowline

	// SMHierarchy resolves clashes between the border classes
	// | /\ [] {} () <> by keeping the character from the later,
	// weaker class.
	SMHierarchy SmushMode = common.SMHierarchy

	// SMPair collapses opposite bracket pairs into a vertical bar.
	SMPair SmushMode = common.SMPair

	// SMBigX merges /\ into |, \/ into Y and >< into X.
	SMBigX SmushMode = common.SMBigX

	// SMHardblank merges two hardblanks into one.
	SMHardblank SmushMode = common.SMHardblank

	// SMKern moves glyphs together until they touch, without overlap.
	SMKern SmushMode = common.SMKern

	// SMSmush lets adjacent glyphs overlap. With no rule bits set the
	// overlap is universal and the later character in the text wins;
	// otherwise the rule bits above arbitrate each column.
	SMSmush SmushMode = common.SMSmush
)

// smushModeFromHeader resolves a font's working layout from its header
// fields. A font that carries the newer fullLayout field uses it raw.
// Older fonts carry only oldLayout: 0 means kerning, negative means
// full width, and anything positive means smushing with the low five
// bits as rules.
func smushModeFromHeader(pf *parser.Font) SmushMode {
	if pf.FullLayoutSet {
		return SmushMode(pf.FullLayout)
	}
	switch {
	case pf.OldLayout == 0:
		return SMKern
	case pf.OldLayout < 0:
		return 0
	default:
		return SmushMode(pf.OldLayout&31) | SMSmush
	}
}

// String renders the mode for logs and test failure output: "full",
// "kern", "smush(universal)" or "smush(equal|pair|...)".
func (m SmushMode) String() string {
	if m&SMSmush == 0 {
		if m&SMKern != 0 {
			return "kern"
		}
		return "full"
	}

	var rules []string
	if m&SMEqual != 0 {
		rules = append(rules, "equal")
	}
	if m&SMLowline != 0 {
		rules = append(rules, "lowline")
	}
	if m&SMHierarchy != 0 {
		rules = append(rules, "hierarchy")
	}
	if m&SMPair != 0 {
		rules = append(rules, "pair")
	}
	if m&SMBigX != 0 {
		rules = append(rules, "bigx")
	}
	if m&SMHardblank != 0 {
		rules = append(rules, "hardblank")
	}

	if len(rules) == 0 {
		return "smush(universal)"
	}
	return "smush(" + strings.Join(rules, "|") + ")"
}
