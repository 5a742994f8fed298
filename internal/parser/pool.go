package parser

import (
	"bufio"
	"io"
	"sync"
)

const (
	// Scanner buffers start at 64KB, plenty for any font line, and are
	// allowed to grow to 4MB before a line is considered hostile.
	scannerBufferSize    = 64 * 1024
	maxScannerBufferSize = 4 * 1024 * 1024

	// Row scratch slices below this capacity are not worth pooling.
	minPooledRows = 8
)

// scannerPool recycles the scanner's line buffer across parses. Fonts
// are often parsed in bursts (listing, cache warm-up), and the buffer
// is the parser's single biggest allocation.
var scannerPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, scannerBufferSize)
		return &buf
	},
}

// rowScratchPool recycles the per-glyph row scratch. Most fonts have a
// height well under 20 rows.
var rowScratchPool = sync.Pool{
	New: func() interface{} {
		s := make([]string, 0, 20)
		return &s
	},
}

// newPooledScanner wraps r in a line scanner backed by a pooled
// buffer. The caller must hand buf back via releaseScannerBuffer.
func newPooledScanner(r io.Reader) (*bufio.Scanner, []byte) {
	scanner := bufio.NewScanner(r)
	buf := acquireScannerBuffer()
	scanner.Buffer(buf, maxScannerBufferSize)
	return scanner, buf
}

func acquireScannerBuffer() []byte {
	bufPtr, ok := scannerPool.Get().(*[]byte)
	if !ok {
		return make([]byte, 0, scannerBufferSize)
	}
	return (*bufPtr)[:0]
}

// releaseScannerBuffer returns a scanner buffer to the pool unless it
// shrank below usefulness or grew past the cap while scanning.
func releaseScannerBuffer(buf []byte) {
	if buf == nil || cap(buf) < scannerBufferSize/2 || cap(buf) > maxScannerBufferSize {
		return
	}
	buf = buf[:0]
	scannerPool.Put(&buf)
}

// acquireRowScratch returns a reusable slice with len height. The rows
// stored in a Font are copied out of it, never aliased.
func acquireRowScratch(height int) []string {
	slicePtr, ok := rowScratchPool.Get().(*[]string)
	if !ok {
		return make([]string, height)
	}
	s := *slicePtr
	if cap(s) < height {
		return make([]string, height)
	}
	return s[:height]
}

func releaseRowScratch(s []string) {
	if cap(s) < minPooledRows {
		return
	}
	// Drop string references so pooled scratch does not pin glyph data.
	for i := range s {
		s[i] = ""
	}
	s = s[:0]
	rowScratchPool.Put(&s)
}
