package flare

import "testing"

func BenchmarkPixmapSetPixel(b *testing.B) {
	pm := NewPixmap(1000, 1000)
	color := Red
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pm.SetPixel(i%1000, 500, color)
	}
}

func BenchmarkPixmapClear(b *testing.B) {
	pm := NewPixmap(1000, 1000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pm.Clear(Black)
	}
}
