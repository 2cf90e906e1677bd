// Package calibration maps chart pixel rows to real-world axis values using
// two reference points on the y-axis.
package calibration

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDivideByZero indicates a degenerate calibration: the reference
	// points share a value or a pixel row, so no finite scale exists.
	ErrDivideByZero = errors.New("calibration: division by zero")

	// ErrNonFinite indicates a NaN or infinite reference value.
	ErrNonFinite = errors.New("calibration: non-finite reference value")
)

// ReferencePoint is a pixel row whose real-world axis value is known.
type ReferencePoint struct {
	PixelY int     `json:"pixel_y"`
	Value  float64 `json:"value"`
}

// Calibration is the linear pixel-to-value scale derived from two
// reference points. The zero value is not usable; obtain one from Build.
type Calibration struct {
	pixelPerUnit float64
	bottom       ReferencePoint
}

// Build derives a calibration from the top and bottom reference points of
// an axis. Pixel rows grow downwards, so for a typical axis top.PixelY is
// smaller than bottom.PixelY and top.Value is larger than bottom.Value.
func Build(top, bottom ReferencePoint) (Calibration, error) {
	for _, v := range []float64{top.Value, bottom.Value} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Calibration{}, fmt.Errorf("%w: %v", ErrNonFinite, v)
		}
	}
	if top.Value == bottom.Value {
		return Calibration{}, fmt.Errorf("%w: top and bottom values are both %g", ErrDivideByZero, top.Value)
	}
	if top.PixelY == bottom.PixelY {
		return Calibration{}, fmt.Errorf("%w: top and bottom share pixel row %d", ErrDivideByZero, top.PixelY)
	}

	ppu := float64(bottom.PixelY-top.PixelY) / (top.Value - bottom.Value)
	if math.IsInf(ppu, 0) || ppu == 0 {
		// value difference underflowed or overflowed the division
		return Calibration{}, fmt.Errorf("%w: scale %g is not usable", ErrDivideByZero, ppu)
	}

	return Calibration{pixelPerUnit: ppu, bottom: bottom}, nil
}

// PixelPerUnit returns the number of pixels spanned by one unit of value.
func (c Calibration) PixelPerUnit() float64 {
	return c.pixelPerUnit
}

// Bottom returns the bottom reference point conversions are anchored to.
func (c Calibration) Bottom() ReferencePoint {
	return c.bottom
}

// Convert returns the real-world value at pixel row pixelY. Rows outside
// the reference range extrapolate linearly.
func (c Calibration) Convert(pixelY int) (float64, error) {
	if c.pixelPerUnit == 0 {
		return 0, fmt.Errorf("%w: calibration has no scale", ErrDivideByZero)
	}
	pixelHeight := float64(c.bottom.PixelY - pixelY)
	return c.bottom.Value + pixelHeight/c.pixelPerUnit, nil
}
