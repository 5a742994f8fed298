package parser

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeLossy wraps r so that invalid UTF-8 comes out as U+FFFD
// instead of failing the read. Old font archives are full of stray
// Latin-1 bytes, usually in comment blocks; the reference loaders
// decode them lossily and so do we.
func decodeLossy(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8.NewDecoder())
}
