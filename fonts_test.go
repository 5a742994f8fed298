package figkit

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFontStandard(t *testing.T) {
	f, err := LoadFont("standard")
	if err != nil {
		t.Fatalf("LoadFont(standard) error = %v", err)
	}

	if f.Name != "standard" {
		t.Errorf("Name = %q, want %q", f.Name, "standard")
	}
	if f.Height() != 5 {
		t.Errorf("Height() = %d, want 5", f.Height())
	}
	if f.Baseline() != 4 {
		t.Errorf("Baseline() = %d, want 4", f.Baseline())
	}
	if f.Hardblank() != '$' {
		t.Errorf("Hardblank() = %q, want '$'", f.Hardblank())
	}
	if got, want := f.SmushMode(), SMSmush|SMEqual|SMLowline|SMHierarchy|SMPair; got != want {
		t.Errorf("SmushMode() = %v, want %v", got, want)
	}

	// 95 ASCII glyphs plus the seven code-tagged umlauts and sharp s.
	if got := len(f.Runes()); got != 102 {
		t.Errorf("len(Runes()) = %d, want 102", got)
	}
	for _, r := range "ÄÖÜäöüß" {
		if _, ok := f.Glyph(r); !ok {
			t.Errorf("Glyph(%q) missing", r)
		}
	}
}

func TestLoadFontTerm(t *testing.T) {
	f, err := LoadFont("term")
	if err != nil {
		t.Fatalf("LoadFont(term) error = %v", err)
	}

	if f.Height() != 1 {
		t.Errorf("Height() = %d, want 1", f.Height())
	}
	if got := f.SmushMode(); got != 0 {
		t.Errorf("SmushMode() = %v, want full width for oldLayout -1", got)
	}

	out, err := Render("ok", f)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "ok\n"; out != want {
		t.Errorf("Render(\"ok\") = %q, want %q", out, want)
	}
}

func TestLoadFontDouble(t *testing.T) {
	f, err := LoadFont("double")
	if err != nil {
		t.Fatalf("LoadFont(double) error = %v", err)
	}

	if f.Height() != 2 {
		t.Errorf("Height() = %d, want 2", f.Height())
	}
	if got := f.SmushMode(); got != SMKern {
		t.Errorf("SmushMode() = %v, want kern for oldLayout 0", got)
	}

	out, err := Render("go", f)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "go\ngo\n"; out != want {
		t.Errorf("Render(\"go\") = %q, want %q", out, want)
	}
}

func TestLoadFontUnknown(t *testing.T) {
	_, err := LoadFont("no-such-font")
	if !errors.Is(err, ErrFontNotFound) {
		t.Errorf("error = %v, want ErrFontNotFound", err)
	}
}

func TestDefaultFontLoads(t *testing.T) {
	f, err := LoadFont(DefaultFont)
	if err != nil {
		t.Fatalf("LoadFont(DefaultFont) error = %v", err)
	}
	if f.Name != "standard" {
		t.Errorf("Name = %q, want %q", f.Name, "standard")
	}
}

func TestListFonts(t *testing.T) {
	names, err := ListFonts()
	if err != nil {
		t.Fatalf("ListFonts() error = %v", err)
	}

	want := []string{"double", "standard", "term"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("ListFonts() mismatch (-want +got):\n%s", diff)
	}
}

func TestInfoFont(t *testing.T) {
	info, err := InfoFont("standard")
	if err != nil {
		t.Fatalf("InfoFont(standard) error = %v", err)
	}

	if !strings.HasPrefix(info, "standard.flf - figkit's default face") {
		t.Errorf("info starts %q, want the comment block", firstInfoLine(info))
	}
	if strings.Contains(info, "flf2a") {
		t.Error("info contains the signature line")
	}
	if strings.Contains(info, "@") {
		t.Error("info contains glyph rows")
	}
	if got := len(strings.Split(info, "\n")); got != 4 {
		t.Errorf("info has %d lines, want 4", got)
	}
}

func TestInfoFontUnknown(t *testing.T) {
	_, err := InfoFont("no-such-font")
	if !errors.Is(err, ErrFontNotFound) {
		t.Errorf("error = %v, want ErrFontNotFound", err)
	}
}

func firstInfoLine(info string) string {
	if i := strings.IndexByte(info, '\n'); i >= 0 {
		return info[:i]
	}
	return info
}
