package figkit

import "strings"

// Mirror reflects a rendered banner horizontally: each row is reversed
// and direction-sensitive characters are swapped with their mirror
// twins, so "/\" stays a peak instead of becoming "\/". The input is a
// block as produced by Render (rows joined by newlines, one trailing
// newline) and the output has the same shape.
func Mirror(s string) string {
	rows := splitBlock(s)
	for i, row := range rows {
		rows[i] = reverseRunes(translateRow(row, &mirrorTable))
	}
	return joinBlock(rows)
}

// Flip turns a rendered banner upside down: row order is reversed and
// vertically asymmetric characters are replaced by their flipped
// counterparts. The translation is not an involution; for example R
// flips to b and b flips to P, so Flip(Flip(s)) can differ from s.
func Flip(s string) string {
	rows := splitBlock(s)
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	for i, row := range rows {
		rows[i] = translateRow(row, &flipTable)
	}
	return joinBlock(rows)
}

// mirrorTable swaps the bracket and slash pairs; everything else maps
// to itself.
var mirrorTable = buildTable(map[byte]byte{
	'(': ')', ')': '(',
	'/': '\\', '\\': '/',
	'<': '>', '>': '<',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
})

// flipTable maps characters onto their vertical reflections. P and R
// both flip to b, which is why the table is not an involution.
var flipTable = buildTable(map[byte]byte{
	'/': '\\', '\\': '/',
	'A': 'V', 'V': 'A',
	'M': 'W', 'W': 'M',
	'P': 'b', 'R': 'b', 'b': 'P',
	'^': 'v', 'v': '^',
	'_': '-',
	'm': 'w', 'w': 'm',
})

func buildTable(deltas map[byte]byte) [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	for from, to := range deltas {
		t[from] = to
	}
	return t
}

// translateRow maps each rune below 256 through the table; larger
// runes pass through untouched.
func translateRow(row string, table *[256]byte) string {
	var b strings.Builder
	b.Grow(len(row))
	for _, r := range row {
		if r < 256 {
			b.WriteRune(rune(table[r]))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func reverseRunes(s string) string {
	rs := []rune(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}

// splitBlock cuts a rendered banner into rows, dropping the single
// trailing newline Render appends.
func splitBlock(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func joinBlock(rows []string) string {
	return strings.Join(rows, "\n") + "\n"
}
