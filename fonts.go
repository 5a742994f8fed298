package figkit

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/figkit/figkit/internal/parser"
)

// DefaultFont is the bundled font used when callers do not name one.
const DefaultFont = "standard"

//go:embed fonts/*.flf fonts/*.tlf
var bundledFonts embed.FS

// LoadFont loads a bundled font by name, trying "<name>.tlf" before
// "<name>.flf". Unknown names return ErrFontNotFound.
func LoadFont(name string) (*Font, error) {
	data, err := readBundled(name)
	if err != nil {
		return nil, err
	}
	return parseNamed(data, name)
}

func readBundled(name string) ([]byte, error) {
	for _, ext := range []string{".tlf", ".flf"} {
		data, err := bundledFonts.ReadFile("fonts/" + name + ext)
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrFontNotFound)
}

// ListFonts returns the names of the bundled fonts, sorted. Only
// assets whose first line carries a valid FLF or TLF signature are
// listed.
func ListFonts() ([]string, error) {
	entries, err := bundledFonts.ReadDir("fonts")
	if err != nil {
		return nil, fmt.Errorf("list bundled fonts: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".flf") && !strings.HasSuffix(name, ".tlf") {
			continue
		}
		data, err := bundledFonts.ReadFile("fonts/" + name)
		if err != nil || !parser.HasMagic(firstLine(data)) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, path.Ext(name)))
	}

	sort.Strings(names)
	return names, nil
}

// InfoFont returns the informational text of a bundled font, without
// keeping the parsed font around: the first hundred lines minus the
// signature line, glyph rows and BDF metadata lines. For most fonts
// this is the author's comment block.
func InfoFont(name string) (string, error) {
	data, err := readBundled(name)
	if err != nil {
		return "", err
	}
	raw, err := unwrapZip(data)
	if err != nil {
		return "", &FontError{Font: name, Err: err}
	}

	var infos []string
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for n := 0; n < 100 && sc.Scan(); n++ {
		line := sc.Text()
		if parser.HasMagic(line) || hasBDFPrefix(line) || endsWithEndmark(line) {
			continue
		}
		infos = append(infos, line)
	}
	return strings.Join(infos, "\n"), nil
}

// bdfPrefixes are metadata keywords left behind by BDF-to-FIGfont
// conversion tools; InfoFont filters lines starting with any of them.
var bdfPrefixes = []string{
	"FONT", "COMMENT", "FONTNAME_REGISTRY", "FAMILY_NAME", "FOUNDRY",
	"WEIGHT_NAME", "SETWIDTH_NAME", "SLANT", "ADD_STYLE_NAME",
	"PIXEL_SIZE", "POINT_SIZE", "RESOLUTION_X", "RESOLUTION_Y",
	"SPACING", "AVERAGE_WIDTH", "FONT_DESCENT", "FONT_ASCENT",
	"CAP_HEIGHT", "X_HEIGHT", "FACE_NAME", "FULL_NAME", "COPYRIGHT",
	"_DEC_", "DEFAULT_CHAR", "NOTICE", "RELATIVE_",
}

func hasBDFPrefix(line string) bool {
	for _, p := range bdfPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// endsWithEndmark reports whether line ends in one of the common glyph
// endmark characters.
func endsWithEndmark(line string) bool {
	if line == "" {
		return false
	}
	switch line[len(line)-1] {
	case '@', '#', '$':
		return true
	}
	return false
}

// firstLine returns data up to the first line break.
func firstLine(data []byte) string {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	return strings.TrimSuffix(string(data), "\r")
}
