package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fontSource builds a parseable font: a header line, the comment
// block, then the same body rows for each of the 95 required glyphs.
func fontSource(header string, comments []string, glyphBody ...string) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	for _, c := range comments {
		sb.WriteString(c)
		sb.WriteByte('\n')
	}
	for cp := asciiFirst; cp <= asciiLast; cp++ {
		for _, row := range glyphBody {
			sb.WriteString(row)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func mustParse(t *testing.T, src string) *Font {
	t.Helper()
	font, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() unexpected error = %v", err)
	}
	return font
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		validate func(t *testing.T, f *Font)
		name     string
		input    string
		wantErr  error
	}{
		{
			name:  "all_fields",
			input: "flf2a$ 6 5 20 15 3 1 24463",
			validate: func(t *testing.T, f *Font) {
				if f.Hardblank != '$' {
					t.Errorf("Hardblank = %q, want %q", f.Hardblank, '$')
				}
				if f.Height != 6 {
					t.Errorf("Height = %d, want %d", f.Height, 6)
				}
				if f.Baseline != 5 {
					t.Errorf("Baseline = %d, want %d", f.Baseline, 5)
				}
				if f.MaxLength != 20 {
					t.Errorf("MaxLength = %d, want %d", f.MaxLength, 20)
				}
				if f.OldLayout != 15 {
					t.Errorf("OldLayout = %d, want %d", f.OldLayout, 15)
				}
				if f.CommentLines != 3 {
					t.Errorf("CommentLines = %d, want %d", f.CommentLines, 3)
				}
				if f.PrintDirection != 1 {
					t.Errorf("PrintDirection = %d, want %d", f.PrintDirection, 1)
				}
				if f.FullLayout != 24463 {
					t.Errorf("FullLayout = %d, want %d", f.FullLayout, 24463)
				}
				if !f.FullLayoutSet {
					t.Error("FullLayoutSet = false, want true")
				}
			},
		},
		{
			name:  "required_fields_only",
			input: "flf2a$ 4 3 10 -1 0",
			validate: func(t *testing.T, f *Font) {
				if f.OldLayout != -1 {
					t.Errorf("OldLayout = %d, want %d", f.OldLayout, -1)
				}
				if f.PrintDirection != 0 {
					t.Errorf("PrintDirection = %d, want %d", f.PrintDirection, 0)
				}
				if f.FullLayoutSet {
					t.Error("FullLayoutSet = true, want false")
				}
			},
		},
		{
			name:  "tlf_signature",
			input: "tlf2a# 2 2 3 0 1",
			validate: func(t *testing.T, f *Font) {
				if f.Hardblank != '#' {
					t.Errorf("Hardblank = %q, want %q", f.Hardblank, '#')
				}
				if f.Height != 2 {
					t.Errorf("Height = %d, want %d", f.Height, 2)
				}
			},
		},
		{
			name:  "codetag_count_ignored",
			input: "flf2a$ 6 5 20 15 3 0 64 229",
			validate: func(t *testing.T, f *Font) {
				if f.FullLayout != 64 {
					t.Errorf("FullLayout = %d, want %d", f.FullLayout, 64)
				}
			},
		},
		{
			name:  "multi_rune_hardblank_token",
			input: "flf2a$$ 6 5 20 15 3",
			validate: func(t *testing.T, f *Font) {
				if f.Hardblank != '$' {
					t.Errorf("Hardblank = %q, want %q", f.Hardblank, '$')
				}
			},
		},
		{
			name:  "unicode_hardblank",
			input: "flf2aé 6 5 20 15 3",
			validate: func(t *testing.T, f *Font) {
				if f.Hardblank != 'é' {
					t.Errorf("Hardblank = %q, want %q", f.Hardblank, 'é')
				}
			},
		},
		{
			name:    "bad_magic",
			input:   "flf3a$ 6 5 20 15 3",
			wantErr: ErrBadMagic,
		},
		{
			name:    "truncated_magic",
			input:   "flf2",
			wantErr: ErrBadMagic,
		},
		{
			name:    "too_few_fields",
			input:   "flf2a$ 6 5 20",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "non_numeric_height",
			input:   "flf2a$ six 5 20 15 3",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "zero_height",
			input:   "flf2a$ 0 0 20 15 3",
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "negative_comment_lines",
			input:   "flf2a$ 6 5 20 15 -1",
			wantErr: ErrMalformedHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			font, err := parseHeader(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("parseHeader() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHeader() unexpected error = %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, font)
			}
		})
	}
}

func TestParse_MinimalFont(t *testing.T) {
	src := fontSource("flf2a$ 2 2 4 0 0", nil, "X@", "X@@")

	font := mustParse(t, src)

	if len(font.Glyphs) != requiredGlyphs {
		t.Errorf("len(Glyphs) = %d, want %d", len(font.Glyphs), requiredGlyphs)
	}
	g, ok := font.Glyphs['A']
	if !ok {
		t.Fatal("glyph 'A' not found")
	}
	if len(g.Rows) != 2 || g.Rows[0] != "X" || g.Rows[1] != "X" {
		t.Errorf("glyph rows = %q, want [X X]", g.Rows)
	}
	if g.Width != 1 {
		t.Errorf("glyph width = %d, want 1", g.Width)
	}
}

func TestParse_CommentsKeptVerbatim(t *testing.T) {
	comments := []string{"Standard by Somebody", "", "  indented, with trailing  "}
	src := fontSource("flf2a$ 1 1 4 0 3", comments, "X@")

	font := mustParse(t, src)

	if len(font.Comments) != 3 {
		t.Fatalf("len(Comments) = %d, want 3", len(font.Comments))
	}
	for i, want := range comments {
		if font.Comments[i] != want {
			t.Errorf("Comments[%d] = %q, want %q", i, font.Comments[i], want)
		}
	}
}

func TestParse_CRLFLineEndings(t *testing.T) {
	src := fontSource("flf2a$ 1 1 4 0 1", []string{"comment"}, "X@")
	src = strings.ReplaceAll(src, "\n", "\r\n")

	font := mustParse(t, src)

	if got := font.Glyphs['X'].Rows[0]; got != "X" {
		t.Errorf("glyph row = %q, want %q", got, "X")
	}
	if font.Comments[0] != "comment" {
		t.Errorf("Comments[0] = %q, want %q", font.Comments[0], "comment")
	}
}

func TestParse_Deterministic(t *testing.T) {
	src := fontSource("flf2a$ 2 1 6 15 2 1 143", []string{"first comment", "second comment"}, "ab $@", "c@@") +
		"0x00E9 LATIN SMALL LETTER E WITH ACUTE\née@\né@@\n"

	first := mustParse(t, src)
	second := mustParse(t, src)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Parse() mismatch (-first +second):\n%s", diff)
	}
}

func TestParse_EOFInComments(t *testing.T) {
	src := "flf2a$ 1 1 4 0 3\nonly one comment line\n"

	_, err := Parse(strings.NewReader(src))
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Parse() error = %v, want %v", err, ErrUnexpectedEOF)
	}
}

func TestParse_EOFInGlyphBody(t *testing.T) {
	// Height 2, but the input stops after the first row of the space
	// glyph.
	src := "flf2a$ 2 2 4 0 0\n X@\n"

	_, err := Parse(strings.NewReader(src))
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("Parse() error = %v, want %v", err, ErrUnexpectedEOF)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("Parse() error = %v, want %v", err, ErrBadMagic)
	}
}

func TestHasMagic(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"flf2a$ 6 5 20 15 3", true},
		{"tlf2a$ 2 2 3 0 1", true},
		{"flf2x anything", true},
		{"flf2", false},
		{"FLF2a$ 6 5 20 15 3", false},
		{"totally not a font", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := HasMagic(tt.line); got != tt.want {
			t.Errorf("HasMagic(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
