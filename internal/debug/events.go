package debug

// ParseStartData contains information about the start of a font parse.
type ParseStartData struct {
	Name  string `json:"name,omitempty"`
	Bytes int    `json:"bytes"`
}

// FontHeaderData contains the parsed font header fields.
type FontHeaderData struct {
	Hardblank      rune `json:"hardblank"`
	Height         int  `json:"height"`
	Baseline       int  `json:"baseline"`
	MaxLength      int  `json:"max_length"`
	OldLayout      int  `json:"old_layout"`
	CommentLines   int  `json:"comment_lines"`
	PrintDirection int  `json:"print_direction"`
	FullLayout     int  `json:"full_layout"`
	FullLayoutSet  bool `json:"full_layout_set"`
}

// ParseEndData contains information about a completed font parse.
type ParseEndData struct {
	Glyphs    int   `json:"glyphs"`
	Extended  int   `json:"extended"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

// RenderStartData contains information about the start of a render
// operation.
type RenderStartData struct {
	Text       string   `json:"text"`
	TextLength int      `json:"text_length"`
	CharHeight int      `json:"char_height"`
	Hardblank  rune     `json:"hardblank"`
	Width      int      `json:"width"`
	PrintDir   int      `json:"print_dir"`
	Justify    int      `json:"justify"`
	SmushMode  int      `json:"smush_mode"`
	SmushRules []string `json:"smush_rules"`
}

// GlyphData contains information about a glyph laid into the buffer.
type GlyphData struct {
	Index   int  `json:"index"`
	Rune    rune `json:"rune"`
	Width   int  `json:"width"`
	Overlap int  `json:"overlap"`
}

// RuneSkippedData records an input rune with no glyph in the font.
type RuneSkippedData struct {
	Index int  `json:"index"`
	Rune  rune `json:"rune"`
}

// SmushAmountRowData contains per-row overlap calculation details.
type SmushAmountRowData struct {
	Row             int    `json:"row"`
	LineBoundaryIdx int    `json:"line_boundary_idx"`
	CharBoundaryIdx int    `json:"char_boundary_idx"`
	Ch1             rune   `json:"ch1"`
	Ch2             rune   `json:"ch2"`
	Amount          int    `json:"amount"`
	Reason          string `json:"reason"` // "none", "ch1_blank", "smushable"
	RTL             bool   `json:"rtl"`
}

// SmushDecisionData contains information about one merge decision in
// the overlap window.
type SmushDecisionData struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Lch    rune   `json:"lch"`
	Rch    rune   `json:"rch"`
	Result rune   `json:"result"`
	Rule   string `json:"rule"`
}

// RenderEndData contains information about the end of a render
// operation.
type RenderEndData struct {
	TotalLines   int   `json:"total_lines"`
	TotalRunes   int   `json:"total_runes"`
	TotalGlyphs  int   `json:"total_glyphs"`
	ElapsedMs    int64 `json:"elapsed_ms"`
	BytesWritten int   `json:"bytes_written"`
}
