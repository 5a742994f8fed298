package renderer

import (
	"bytes"
	"sync"

	"github.com/figkit/figkit/internal/common"
	"github.com/figkit/figkit/internal/parser"
)

const (
	// Most fonts are under 20 rows tall; pooled states keep this many
	// row headers ready.
	defaultMaxHeight = 20

	// Retention thresholds. Buffers that grew beyond these during an
	// unusually large render are dropped instead of pinned in the
	// pool.
	maxRetainRowCap    = 4096
	maxRetainBufferCap = 64 * 1024
)

// statePool reuses render states across calls. A state carries one
// rune slice per buffer row plus glyph scratch, which would otherwise
// be reallocated for every render.
var statePool = sync.Pool{
	New: func() interface{} {
		return &state{
			rows:  make([][]rune, 0, defaultMaxHeight),
			glyph: make([][]rune, 0, defaultMaxHeight),
		}
	},
}

// writeBufferPool reuses output assembly buffers.
var writeBufferPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Buffer{}
	},
}

// acquireState readies a pooled state for one render call. opts must
// carry resolved values; the font must be parsed and non-nil.
func acquireState(font *parser.Font, opts *Options) *state {
	st, ok := statePool.Get().(*state)
	if !ok {
		st = &state{}
	}

	st.font = font
	st.hardblank = font.Hardblank
	st.smushMode = opts.SmushMode
	st.rightToLeft = opts.PrintDirection == common.PrintRTL
	st.justify = opts.Justify
	st.width = opts.Width
	st.dbg = opts.Debug

	st.prevCharWidth = 0
	st.curCharWidth = 0
	st.glyphCount = 0

	st.rows = sizeRuneRows(st.rows, font.Height)
	st.glyph = sizeRuneRows(st.glyph, font.Height)

	return st
}

// releaseState returns a state to the pool, dropping oversized row
// buffers and clearing references so the font can be collected.
func releaseState(st *state) {
	if st == nil {
		return
	}

	st.font = nil
	st.dbg = nil

	trimRuneRows(st.rows)
	trimRuneRows(st.glyph)

	statePool.Put(st)
}

// sizeRuneRows shapes rows to n entries, each emptied but keeping its
// backing storage for reuse.
func sizeRuneRows(rows [][]rune, n int) [][]rune {
	if cap(rows) < n {
		grown := make([][]rune, n)
		copy(grown, rows)
		rows = grown
	} else {
		rows = rows[:n]
	}
	for i := range rows {
		rows[i] = rows[i][:0]
	}
	return rows
}

// trimRuneRows drops row backings that grew past the retention cap.
func trimRuneRows(rows [][]rune) {
	for i := range rows {
		if cap(rows[i]) > maxRetainRowCap {
			rows[i] = nil
		}
	}
}

// acquireWriteBuffer gets an empty assembly buffer from the pool.
func acquireWriteBuffer() *bytes.Buffer {
	buf, ok := writeBufferPool.Get().(*bytes.Buffer)
	if !ok {
		return &bytes.Buffer{}
	}
	buf.Reset()
	return buf
}

// releaseWriteBuffer returns a buffer to the pool unless it grew past
// the retention cap.
func releaseWriteBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxRetainBufferCap {
		return
	}
	writeBufferPool.Put(buf)
}
