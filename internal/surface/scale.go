package surface

import (
	"image"
	"math"
)

// ScaleToImage converts a click on a displayed, possibly resized copy of
// the chart into chart pixel coordinates. A non-positive display size
// means the chart is shown at its natural size.
//
// Example:
//
//	chart 1000x400 shown at 500x200
//	click (250.6, 100.2) -> pixel (501, 200)
func ScaleToImage(x, y, displayWidth, displayHeight float64, bounds image.Rectangle) image.Point {
	xScale, yScale := 1.0, 1.0
	if displayWidth > 0 && displayHeight > 0 {
		xScale = float64(bounds.Dx()) / displayWidth
		yScale = float64(bounds.Dy()) / displayHeight
	}

	return image.Pt(
		bounds.Min.X+int(math.Floor(x*xScale)),
		bounds.Min.Y+int(math.Floor(y*yScale)),
	)
}

// FitWindow scales a chart size down, keeping its aspect ratio, until it
// fits within maxWidth x maxHeight. Charts that already fit are unchanged.
func FitWindow(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return maxWidth, maxHeight
	}
	scale := math.Min(1, math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height)))
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// DashSegments splits a horizontal span [0, length) into dash intervals
func DashSegments(length, dash, gap int) [][2]int {
	if length <= 0 || dash <= 0 {
		return nil
	}
	if gap < 0 {
		gap = 0
	}
	var segs [][2]int
	for start := 0; start < length; start += dash + gap {
		end := start + dash
		if end > length {
			end = length
		}
		segs = append(segs, [2]int{start, end})
	}
	return segs
}
