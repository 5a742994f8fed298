package parser

import (
	"strings"
	"testing"
)

// benchFont approximates a real font: height 6, rows of mixed art
// characters, plus a small code-tagged section.
func benchFont() string {
	body := []string{
		`  __  __ @`,
		` |  \/  |@`,
		` | \  / |@`,
		` | |\/| |@`,
		` |_|  |_|@`,
		`         @@`,
	}
	src := fontSource("flf2a$ 6 5 12 15 2", []string{"bench font", "second line"}, body...)
	var sb strings.Builder
	sb.WriteString(src)
	for _, tag := range []string{"0x00C4", "0x00D6", "0x00DC"} {
		sb.WriteString(tag)
		sb.WriteByte('\n')
		for _, row := range body {
			sb.WriteString(row)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func BenchmarkParse(b *testing.B) {
	src := benchFont()
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Parse(strings.NewReader(src)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseParallel(b *testing.B) {
	src := benchFont()
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := Parse(strings.NewReader(src)); err != nil {
				b.Fatal(err)
			}
		}
	})
}
