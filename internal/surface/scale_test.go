package surface

import (
	"image"
	"testing"
)

func TestScaleToImage(t *testing.T) {
	bounds := image.Rect(0, 0, 1000, 400)

	tests := []struct {
		name       string
		x, y, w, h float64
		bounds     image.Rectangle
		want       image.Point
	}{
		{"natural size", 12.9, 40.2, 0, 0, bounds, image.Pt(12, 40)},
		{"half size", 250.6, 100.2, 500, 200, bounds, image.Pt(501, 200)},
		{"double size", 300, 80, 2000, 800, bounds, image.Pt(150, 40)},
		{"offset bounds", 10, 10, 0, 0, image.Rect(5, 5, 50, 50), image.Pt(15, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleToImage(tt.x, tt.y, tt.w, tt.h, tt.bounds); got != tt.want {
				t.Errorf("ScaleToImage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFitWindow(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{800, 600, 1500, 900, 800, 600},
		{3000, 600, 1500, 900, 1500, 300},
		{1000, 1800, 1500, 900, 500, 900},
		{0, 0, 1500, 900, 1500, 900},
	}

	for _, tt := range tests {
		gotW, gotH := FitWindow(tt.w, tt.h, tt.maxW, tt.maxH)
		if gotW != tt.wantW || gotH != tt.wantH {
			t.Errorf("FitWindow(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, gotW, gotH, tt.wantW, tt.wantH)
		}
	}
}

func TestDashSegments(t *testing.T) {
	segs := DashSegments(25, 6, 4)
	want := [][2]int{{0, 6}, {10, 16}, {20, 25}}
	if len(segs) != len(want) {
		t.Fatalf("Expected %d segments, got %v", len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("Segment %d: got %v, want %v", i, segs[i], want[i])
		}
	}

	if DashSegments(0, 6, 4) != nil || DashSegments(10, 0, 4) != nil {
		t.Error("Expected no segments for empty span or dash")
	}
}
