// Package renderer lays fig-characters into an output buffer, applying
// kerning, smushing, print direction and justification.
package renderer

import (
	"time"

	"github.com/figkit/figkit/internal/common"
	"github.com/figkit/figkit/internal/debug"
	"github.com/figkit/figkit/internal/parser"
)

// Local aliases for the shared smushing bits keep the hot paths terse.
const (
	smEqual     = common.SMEqual
	smLowline   = common.SMLowline
	smHierarchy = common.SMHierarchy
	smPair      = common.SMPair
	smBigX      = common.SMBigX
	smHardblank = common.SMHardblank
	smKern      = common.SMKern
	smSmush     = common.SMSmush

	ruleMask = common.RuleMask
)

// Options carries fully resolved render settings. The root package
// maps its public options and the font's defaults onto these before
// calling Render; "auto" never reaches this package.
type Options struct {
	// SmushMode is the layout bitmask driving kerning and smushing.
	SmushMode int

	// PrintDirection is 0 for left-to-right, 1 for right-to-left.
	PrintDirection int

	// Justify is one of common.JustifyLeft, JustifyCenter or
	// JustifyRight.
	Justify int

	// Width is the output width consumed by justification.
	Width int

	// Debug receives trace events; nil disables tracing.
	Debug *debug.Session
}

// state is one render call's working set. States are pooled; every
// field is reinitialised by acquireState.
//
// Buffer representation: rows hold the output as rune slices, one per
// font row, so overlap arithmetic works in columns rather than bytes.
// glyph is scratch holding the current fig-character's rows as runes;
// it is reloaded for every glyph and may be scribbled on freely during
// a right-to-left merge.
type state struct {
	font *parser.Font

	rows  [][]rune
	glyph [][]rune

	// prevCharWidth and curCharWidth feed the width guard in smushem:
	// glyphs narrower than two columns never overlap.
	prevCharWidth int
	curCharWidth  int

	smushMode   int
	hardblank   rune
	rightToLeft bool
	justify     int
	width       int

	glyphCount int
	start      time.Time
	dbg        *debug.Session
}
