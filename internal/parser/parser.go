// Package parser reads FIGlet font files (FLF) and their TOIlet
// cousins (TLF) into the form the renderer consumes.
//
// The parser is forgiving where the format's common implementations
// are: it takes the first rune of the hardblank token, keeps ragged
// glyph rows exactly as stripped, and skips unrecognised lines between
// code-tagged glyphs. It is strict about structure: a short header, a
// non-numeric field, or input ending inside a glyph all fail the
// parse, and a failed parse never yields a partial font.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// minHeaderFields counts the hardblank token plus the five
	// required numeric fields.
	minHeaderFields = 6

	// The mandatory glyph range. Every font carries the printable
	// ASCII set in codepoint order; everything else is code-tagged.
	asciiFirst = 32
	asciiLast  = 126

	requiredGlyphs = asciiLast - asciiFirst + 1
)

// Parse failures wrap one of these sentinels so callers can classify
// them without matching message text.
var (
	// ErrBadMagic means the first line does not open with the
	// "flf2"/"tlf2" signature.
	ErrBadMagic = errors.New("missing flf2/tlf2 signature")

	// ErrMalformedHeader covers missing, invalid or non-numeric
	// header fields.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrBadGlyph covers structural problems inside a glyph body.
	ErrBadGlyph = errors.New("malformed glyph")

	// ErrUnexpectedEOF means the input ended inside the comment block
	// or a glyph body.
	ErrUnexpectedEOF = errors.New("unexpected end of font data")
)

// Glyph is one fig-character: its rows with the endmarks stripped, and
// the advance width the renderer uses. Rows keep whatever lengths the
// strip left behind; short rows are not padded.
type Glyph struct {
	Rows  []string
	Width int
}

// Font is the raw result of a parse. The root package wraps it in the
// public immutable Font type; nothing mutates it after Parse returns.
type Font struct {
	// Hardblank is the first rune of the header's hardblank token.
	Hardblank rune

	// Height is the number of rows per glyph, always at least 1.
	Height int

	// Baseline and MaxLength are carried from the header but not
	// consumed by rendering.
	Baseline  int
	MaxLength int

	// OldLayout is the pre-fullLayout layout field, kept for the
	// smush-mode migration in the root package.
	OldLayout int

	// CommentLines is the declared size of the comment block.
	CommentLines int

	// PrintDirection is the raw optional header value; absent reads
	// as 0. Anything other than 1 renders left to right.
	PrintDirection int

	// FullLayout is the optional full layout field; FullLayoutSet
	// records whether the header carried it.
	FullLayout    int
	FullLayoutSet bool

	// Comments holds the comment block lines verbatim.
	Comments []string

	// Glyphs maps codepoints to their fig-characters. Glyphs whose
	// stripped rows are all empty are absent.
	Glyphs map[rune]Glyph
}

// Parse reads a complete font from r. The input is decoded as UTF-8
// with invalid bytes replaced, so a read can only fail on I/O errors.
func Parse(r io.Reader) (*Font, error) {
	scanner, buf := newPooledScanner(decodeLossy(r))
	defer releaseScannerBuffer(buf)

	ls := &lineScanner{s: scanner}

	headerLine, ok := ls.next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading font header: %w", err)
		}
		return nil, fmt.Errorf("%w: empty input", ErrBadMagic)
	}

	font, err := parseHeader(headerLine)
	if err != nil {
		return nil, err
	}

	font.Comments = make([]string, 0, font.CommentLines)
	for i := 0; i < font.CommentLines; i++ {
		line, ok := ls.next()
		if !ok {
			return nil, ls.eof("comment block")
		}
		font.Comments = append(font.Comments, line)
	}

	font.Glyphs = make(map[rune]Glyph, requiredGlyphs)

	scratch := acquireRowScratch(font.Height)
	defer releaseRowScratch(scratch)

	for cp := rune(asciiFirst); cp <= asciiLast; cp++ {
		g, keep, err := readGlyph(ls, font.Height, scratch)
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", cp, err)
		}
		if keep {
			font.Glyphs[cp] = g
		}
	}

	// Code-tagged section: a line whose first token is a hex codepoint
	// starts another glyph, anything else is skipped.
	for {
		line, ok := ls.next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading font at line %d: %w", ls.line, err)
			}
			break
		}
		tag, _, _ := strings.Cut(strings.TrimSpace(line), " ")
		if !isCodeTag(tag) {
			continue
		}
		cp, err := parseCodeTag(tag)
		if err != nil {
			return nil, fmt.Errorf("code tag %q at line %d: %w", tag, ls.line, err)
		}
		g, keep, err := readGlyph(ls, font.Height, scratch)
		if err != nil {
			return nil, fmt.Errorf("glyph %s: %w", tag, err)
		}
		if keep {
			font.Glyphs[cp] = g
		}
	}

	return font, nil
}

// lineScanner tracks line numbers for error reporting.
type lineScanner struct {
	s    *bufio.Scanner
	line int
}

func (ls *lineScanner) next() (string, bool) {
	if !ls.s.Scan() {
		return "", false
	}
	ls.line++
	return ls.s.Text(), true
}

// eof converts an exhausted scanner into the right error for a place
// where more input was required.
func (ls *lineScanner) eof(where string) error {
	if err := ls.s.Err(); err != nil {
		return fmt.Errorf("reading %s at line %d: %w", where, ls.line, err)
	}
	return fmt.Errorf("%w: in %s after line %d", ErrUnexpectedEOF, where, ls.line)
}

// HasMagic reports whether line opens with the five-rune signature:
// "flf2" or "tlf2" plus one version rune.
func HasMagic(line string) bool {
	_, ok := trimMagic(line)
	return ok
}

// trimMagic strips the signature and returns the rest of the header
// line.
func trimMagic(line string) (string, bool) {
	if len(line) < 5 || (line[0] != 'f' && line[0] != 't') || line[1:4] != "lf2" {
		return "", false
	}
	_, size := utf8.DecodeRuneInString(line[4:])
	return line[4+size:], true
}

// parseHeader reads the signature line: the hardblank token, five
// required integers and up to two optional ones. Trailing fields
// beyond those (the codetag count figlet writes) are ignored.
func parseHeader(line string) (*Font, error) {
	rest, ok := trimMagic(line)
	if !ok {
		return nil, ErrBadMagic
	}

	fields := strings.Fields(rest)
	if len(fields) < minHeaderFields {
		return nil, fmt.Errorf("%w: got %d of %d required fields", ErrMalformedHeader, len(fields), minHeaderFields)
	}

	hb, _ := utf8.DecodeRuneInString(fields[0])
	switch hb {
	case 0, ' ', '\r', '\n':
		return nil, fmt.Errorf("%w: invalid hardblank %q", ErrMalformedHeader, hb)
	}

	font := &Font{Hardblank: hb}

	var err error
	if font.Height, err = headerInt(fields[1], "height"); err != nil {
		return nil, err
	}
	if font.Baseline, err = headerInt(fields[2], "baseline"); err != nil {
		return nil, err
	}
	if font.MaxLength, err = headerInt(fields[3], "maxLength"); err != nil {
		return nil, err
	}
	if font.OldLayout, err = headerInt(fields[4], "oldLayout"); err != nil {
		return nil, err
	}
	if font.CommentLines, err = headerInt(fields[5], "commentLines"); err != nil {
		return nil, err
	}

	if font.Height < 1 {
		return nil, fmt.Errorf("%w: height %d", ErrMalformedHeader, font.Height)
	}
	if font.CommentLines < 0 {
		return nil, fmt.Errorf("%w: negative comment count %d", ErrMalformedHeader, font.CommentLines)
	}

	if len(fields) > 6 {
		if font.PrintDirection, err = headerInt(fields[6], "printDirection"); err != nil {
			return nil, err
		}
	}
	if len(fields) > 7 {
		if font.FullLayout, err = headerInt(fields[7], "fullLayout"); err != nil {
			return nil, err
		}
		font.FullLayoutSet = true
	}

	return font, nil
}

func headerInt(s, name string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrMalformedHeader, name, s)
	}
	return n, nil
}

// readGlyph consumes height rows and strips their endmarks. keep is
// false when every stripped row came out empty; such glyphs are
// dropped from the font.
func readGlyph(ls *lineScanner, height int, scratch []string) (Glyph, bool, error) {
	var (
		em    string
		width int
		keep  bool
	)
	for i := 0; i < height; i++ {
		line, ok := ls.next()
		if !ok {
			return Glyph{}, false, ls.eof("glyph body")
		}
		if i == 0 {
			endmark, ok := endmarkOf(line)
			if !ok {
				return Glyph{}, false, fmt.Errorf("%w: empty first row at line %d", ErrBadGlyph, ls.line)
			}
			em = string(endmark)
		}
		row := stripEndmark(line, em)
		if n := utf8.RuneCountInString(row); n > width {
			width = n
		}
		if row != "" {
			keep = true
		}
		scratch[i] = row
	}
	if !keep {
		return Glyph{}, false, nil
	}
	rows := make([]string, height)
	copy(rows, scratch)
	return Glyph{Rows: rows, Width: width}, true, nil
}

// endmarkOf picks the endmark for a glyph from its first row: the last
// rune that is not whitespace, or the first rune when the whole row is
// whitespace. An empty row has no endmark.
func endmarkOf(row string) (rune, bool) {
	trimmed := strings.TrimRightFunc(row, unicode.IsSpace)
	if trimmed != "" {
		r, _ := utf8.DecodeLastRuneInString(trimmed)
		return r, true
	}
	r, size := utf8.DecodeRuneInString(row)
	if size == 0 {
		return 0, false
	}
	return r, true
}

// stripEndmark removes one or two trailing copies of the endmark.
// Copies buried under trailing whitespace stay put; the reference
// loaders anchor the strip at the exact end of the line.
func stripEndmark(row, em string) string {
	row = strings.TrimSuffix(row, em)
	return strings.TrimSuffix(row, em)
}

// isCodeTag reports whether the token introduces a code-tagged glyph.
// A tag with nothing after the prefix still counts; it fails later in
// parseCodeTag rather than being skipped.
func isCodeTag(tag string) bool {
	return strings.HasPrefix(tag, "0x") || strings.HasPrefix(tag, "0X")
}

// parseCodeTag converts a "0x"-prefixed token into a codepoint.
func parseCodeTag(tag string) (rune, error) {
	cp, err := strconv.ParseInt(tag[2:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadGlyph, err)
	}
	return rune(cp), nil
}
