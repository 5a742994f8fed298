package figkit

import (
	"fmt"
	"testing"
)

// benchFonts returns n parseable fonts with distinct content hashes.
// Varying the maxLength field changes the bytes without changing how
// the font parses.
func benchFonts(n int) [][]byte {
	fonts := make([][]byte, n)
	for i := range fonts {
		fonts[i] = []byte(testFontSource(fmt.Sprintf("flf2a$ 2 1 %d -1 1", 4+i)))
	}
	return fonts
}

func BenchmarkFontCache(b *testing.B) {
	data := []byte(ltrFontSource())

	b.Run("LoadWithoutCache", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := LoadFont(DefaultFont); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("LoadWithCache", func(b *testing.B) {
		cache := NewFontCache(10)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := cache.LoadFont(DefaultFont); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("ParseBytesWithoutCache", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := ParseFontBytes(data); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("ParseBytesWithCache", func(b *testing.B) {
		cache := NewFontCache(10)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := cache.ParseFont(data); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkCacheHitRate(b *testing.B) {
	fonts := benchFonts(10)

	b.Run("HighHitRate", func(b *testing.B) {
		cache := NewFontCache(5)
		for i := 0; i < 3; i++ {
			if _, err := cache.ParseFont(fonts[i]); err != nil {
				b.Fatal(err)
			}
		}

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			// Mostly the three warm fonts, the rest cycling cold.
			idx := i % 10
			if idx >= 7 {
				idx %= 3
			}
			cache.ParseFont(fonts[idx])
		}
		b.ReportMetric(cache.Stats().HitRate(), "hit_rate_%")
	})

	b.Run("LowHitRate", func(b *testing.B) {
		// Ten fonts cycling through a five-slot cache.
		cache := NewFontCache(5)
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			cache.ParseFont(fonts[i%10])
		}
		b.ReportMetric(cache.Stats().HitRate(), "hit_rate_%")
	})
}

func BenchmarkCacheConcurrent(b *testing.B) {
	cache := NewFontCache(20)
	fonts := benchFonts(5)

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			cache.ParseFont(fonts[i%5])
			i++
		}
	})
	b.ReportMetric(cache.Stats().HitRate(), "hit_rate_%")
}

func BenchmarkLRUEviction(b *testing.B) {
	cache := NewFontCache(3)
	fonts := benchFonts(10)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		cache.ParseFont(fonts[i%10])
	}
	b.ReportMetric(float64(cache.Stats().Evictions), "evictions")
}
