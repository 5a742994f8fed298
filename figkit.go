// Package figkit renders text as multi-line ASCII-art banners using
// FIGlet fonts.
//
// Fonts in the FLF and TLF line formats are parsed into immutable Font
// values that are safe for concurrent use. Rendering follows the
// classic figlet pipeline: glyphs are laid into a row buffer with
// kerning or smushing, justified, and emitted with hardblanks replaced
// by spaces.
//
//	font, err := figkit.LoadFont("standard")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := figkit.Render("hello", font)
//
// Bundled fonts are listed by ListFonts; arbitrary fonts load through
// LoadFontFile, LoadFontFS or ParseFont. ZIP-compressed font files are
// unwrapped transparently.
package figkit

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/figkit/figkit/internal/common"
	"github.com/figkit/figkit/internal/debug"
	"github.com/figkit/figkit/internal/parser"
	"github.com/figkit/figkit/internal/renderer"
)

// ParseFont reads a FIGfont from r and returns an immutable Font.
// The reader is consumed entirely; compressed fonts are unwrapped.
func ParseFont(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return parseNamed(data, "")
}

// ParseFontBytes parses a FIGfont from raw bytes.
func ParseFontBytes(data []byte) (*Font, error) {
	return parseNamed(data, "")
}

// LoadFontFS loads a FIGfont from fsys at fontPath. The font name is
// derived from the file name. Missing files map to ErrFontNotFound;
// malformed data to a *FontError.
func LoadFontFS(fsys fs.FS, fontPath string) (*Font, error) {
	if fsys == nil {
		return nil, errors.New("filesystem cannot be nil")
	}

	clean, err := cleanFSPath(fontPath)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(fsys, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", clean, ErrFontNotFound)
		}
		return nil, fmt.Errorf("open font %s: %w", clean, err)
	}

	return parseNamed(data, baseName(clean))
}

// LoadFontFile loads a FIGfont from the local filesystem. Relative and
// absolute paths are both accepted.
func LoadFontFile(fontPath string) (*Font, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", fontPath, ErrFontNotFound)
		}
		return nil, fmt.Errorf("open font %s: %w", fontPath, err)
	}

	name := strings.TrimSuffix(filepath.Base(fontPath), filepath.Ext(fontPath))
	return parseNamed(data, name)
}

// parseNamed parses font data, unwrapping a ZIP container when the
// bytes begin with one, and tags any failure with name.
func parseNamed(data []byte, name string) (*Font, error) {
	dbg := debug.NewEnvSession()
	defer dbg.Close()

	start := time.Now()
	dbg.Emit("parse", "ParseStart", debug.ParseStartData{
		Name:  name,
		Bytes: len(data),
	})

	raw, err := unwrapZip(data)
	if err != nil {
		return nil, &FontError{Font: name, Err: err}
	}

	pf, err := parser.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, &FontError{Font: name, Err: err}
	}

	f := newFont(pf)
	f.Name = name

	if dbg != nil {
		ascii := 0
		for r := range pf.Glyphs {
			if r >= 32 && r <= 126 {
				ascii++
			}
		}
		dbg.Emit("parse", "FontHeader", debug.FontHeaderData{
			Hardblank:      pf.Hardblank,
			Height:         pf.Height,
			Baseline:       pf.Baseline,
			MaxLength:      pf.MaxLength,
			OldLayout:      pf.OldLayout,
			CommentLines:   pf.CommentLines,
			PrintDirection: pf.PrintDirection,
			FullLayout:     pf.FullLayout,
			FullLayoutSet:  pf.FullLayoutSet,
		})
		dbg.Emit("parse", "ParseEnd", debug.ParseEndData{
			Glyphs:    len(pf.Glyphs),
			Extended:  len(pf.Glyphs) - ascii,
			ElapsedMs: time.Since(start).Milliseconds(),
		})
	}

	return f, nil
}

// unwrapZip returns the first file of a ZIP archive when data carries
// the ZIP signature, and data unchanged otherwise. Compressed FIGfonts
// are ZIP archives holding the font as their first entry.
func unwrapZip(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return data, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("compressed font: %w", err)
	}
	if len(zr.File) == 0 {
		return nil, errors.New("compressed font: empty archive")
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("compressed font: %w", err)
	}
	defer rc.Close()

	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("compressed font: %w", err)
	}
	return out, nil
}

// cleanFSPath validates and cleans a path for use with fs.FS. fs.FS
// paths are slash-separated, relative, and must not escape the root.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// baseName strips the directory and one extension from a slash path.
func baseName(p string) string {
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}

// Render lays out text in f and returns the banner: Height rows joined
// by newlines with one trailing newline, hardblanks replaced by
// spaces. Runes without a glyph in f are skipped, so rendering itself
// never fails; the only error is ErrNilFont.
func Render(text string, f *Font, opts ...Option) (string, error) {
	ro, err := renderOptions(f, opts)
	if err != nil {
		return "", err
	}

	dbg := debug.NewEnvSession()
	defer dbg.Close()
	ro.Debug = dbg

	return renderer.Render(text, f.pf, ro), nil
}

// RenderTo streams the banner for text into w. Apart from ErrNilFont,
// only writer errors surface.
func RenderTo(w io.Writer, text string, f *Font, opts ...Option) error {
	ro, err := renderOptions(f, opts)
	if err != nil {
		return err
	}

	dbg := debug.NewEnvSession()
	defer dbg.Close()
	ro.Debug = dbg

	return renderer.RenderTo(w, text, f.pf, ro)
}

func renderOptions(f *Font, opts []Option) (*renderer.Options, error) {
	if f == nil || f.pf == nil {
		return nil, ErrNilFont
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o.resolve(f), nil
}

// resolve maps the caller's options and the font's defaults onto the
// renderer's fully resolved settings. Explicit direction wins over the
// font header; explicit justification wins over the direction-derived
// default.
func (o *options) resolve(f *Font) *renderer.Options {
	ro := &renderer.Options{
		SmushMode: int(f.smushMode),
		Width:     common.DefaultWidth,
	}

	dir := DirectionAuto
	if o.direction != nil {
		dir = *o.direction
	}
	switch dir {
	case LeftToRight:
		ro.PrintDirection = common.PrintLTR
	case RightToLeft:
		ro.PrintDirection = common.PrintRTL
	default:
		if f.pf.PrintDirection == common.PrintRTL {
			ro.PrintDirection = common.PrintRTL
		} else {
			ro.PrintDirection = common.PrintLTR
		}
	}

	jus := JustifyAuto
	if o.justify != nil {
		jus = *o.justify
	}
	switch jus {
	case JustifyLeft:
		ro.Justify = common.JustifyLeft
	case JustifyCenter:
		ro.Justify = common.JustifyCenter
	case JustifyRight:
		ro.Justify = common.JustifyRight
	default:
		if ro.PrintDirection == common.PrintRTL {
			ro.Justify = common.JustifyRight
		} else {
			ro.Justify = common.JustifyLeft
		}
	}

	if o.width != nil {
		ro.Width = *o.width
	}
	if o.smushMode != nil {
		ro.SmushMode = int(*o.smushMode)
	}

	return ro
}
