package figkit

import (
	"errors"
	"fmt"
	"sort"

	"github.com/figkit/figkit/internal/parser"
)

// Font is an immutable FIGfont. A Font is built once by a loader and
// never modified afterwards, so it is safe for concurrent renders
// without locking.
type Font struct {
	// Name identifies the font. Loaders set it from the asset or file
	// name; fonts parsed from a raw reader have an empty name.
	Name string

	pf        *parser.Font
	smushMode SmushMode
}

func newFont(pf *parser.Font) *Font {
	return &Font{pf: pf, smushMode: smushModeFromHeader(pf)}
}

// Height returns the number of rows every glyph has.
func (f *Font) Height() int { return f.pf.Height }

// Baseline returns the header's baseline row count. It is parsed and
// kept for inspection; rendering does not use it.
func (f *Font) Baseline() int { return f.pf.Baseline }

// MaxLength returns the header's declared maximum glyph line length.
func (f *Font) MaxLength() int { return f.pf.MaxLength }

// Hardblank returns the font's hardblank rune. It behaves as a visible
// character during layout and becomes a space only in final output.
func (f *Font) Hardblank() rune { return f.pf.Hardblank }

// PrintDirection returns the raw header value: 0 (or absent) lays text
// out left to right, 1 right to left. Render treats anything else as
// left to right.
func (f *Font) PrintDirection() int { return f.pf.PrintDirection }

// SmushMode returns the layout bitmask resolved from the font header.
func (f *Font) SmushMode() SmushMode { return f.smushMode }

// Comments returns the font file's comment block, one line per entry.
// The returned slice must not be modified.
func (f *Font) Comments() []string { return f.pf.Comments }

// Glyph returns the fig-character for r. The second result is false
// when the font has no glyph for r; Render skips such runes.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	if f == nil || f.pf == nil {
		return Glyph{}, false
	}
	g, ok := f.pf.Glyphs[r]
	if !ok {
		return Glyph{}, false
	}
	return Glyph{Rows: g.Rows, Width: g.Width}, true
}

// Runes returns the codepoints the font has glyphs for, sorted
// ascending.
func (f *Font) Runes() []rune {
	rs := make([]rune, 0, len(f.pf.Glyphs))
	for r := range f.pf.Glyphs {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return rs
}

// Glyph is one fig-character: exactly Height rows with endmarks
// stripped. Rows keep their original, possibly differing lengths;
// Width is the largest row length in runes. The rows must not be
// modified.
type Glyph struct {
	Rows  []string
	Width int
}

// Sentinel errors.
var (
	// ErrFontNotFound reports a font name or path with nothing behind
	// it. It wraps lookup misses only; malformed font data surfaces as
	// a *FontError instead.
	ErrFontNotFound = errors.New("font not found")

	// ErrNilFont is returned by Render and RenderTo for a nil font.
	ErrNilFont = errors.New("font cannot be nil")
)

// FontError wraps a font parse failure with the font's identifier.
// Use errors.As to recover it and errors.Is/Unwrap to inspect the
// cause.
type FontError struct {
	Font string
	Err  error
}

func (e *FontError) Error() string {
	if e.Font == "" {
		return fmt.Sprintf("font: %v", e.Err)
	}
	return fmt.Sprintf("font %s: %v", e.Font, e.Err)
}

func (e *FontError) Unwrap() error { return e.Err }

// Direction selects the layout direction of a render.
type Direction int

const (
	// DirectionAuto follows the font's printDirection header field.
	DirectionAuto Direction = iota

	// LeftToRight lays glyphs out left to right.
	LeftToRight

	// RightToLeft lays glyphs out right to left. The input string is
	// not reversed; glyphs are assembled from the right edge instead.
	RightToLeft
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	default:
		return "auto"
	}
}

// Justify selects the horizontal alignment of output rows within the
// render width.
type Justify int

const (
	// JustifyAuto aligns left for left-to-right output and right for
	// right-to-left output.
	JustifyAuto Justify = iota

	// JustifyLeft leaves rows unpadded.
	JustifyLeft

	// JustifyCenter pads rows to the middle of the width.
	JustifyCenter

	// JustifyRight pads rows to the right edge, keeping one column
	// free.
	JustifyRight
)

func (j Justify) String() string {
	switch j {
	case JustifyLeft:
		return "left"
	case JustifyCenter:
		return "center"
	case JustifyRight:
		return "right"
	default:
		return "auto"
	}
}

// Option configures a single Render or RenderTo call.
type Option func(*options)

type options struct {
	direction *Direction
	justify   *Justify
	width     *int
	smushMode *SmushMode
}

func defaultOptions() *options {
	return &options{}
}

// WithDirection overrides the font's print direction. Values other
// than LeftToRight and RightToLeft fall back to DirectionAuto.
func WithDirection(d Direction) Option {
	return func(opts *options) {
		opts.direction = &d
	}
}

// WithJustify overrides the direction-derived justification. Values
// outside the Justify constants fall back to JustifyAuto.
func WithJustify(j Justify) Option {
	return func(opts *options) {
		opts.justify = &j
	}
}

// WithWidth sets the output width consumed by justification. Rows are
// never wrapped or truncated; a row longer than the width is emitted
// as is. The default is 80.
func WithWidth(width int) Option {
	return func(opts *options) {
		opts.width = &width
	}
}

// WithSmushMode overrides the font's resolved layout bitmask for this
// render. WithSmushMode(0) forces full-width output; a font header
// value can be passed through raw.
func WithSmushMode(m SmushMode) Option {
	return func(opts *options) {
		opts.smushMode = &m
	}
}
