package calibration

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func mustBuild(t *testing.T, top, bottom ReferencePoint) Calibration {
	t.Helper()
	cal, err := Build(top, bottom)
	if err != nil {
		t.Fatalf("Build(%+v, %+v) returned error: %v", top, bottom, err)
	}
	return cal
}

func TestBuild_Example(t *testing.T) {
	cal := mustBuild(t, ReferencePoint{PixelY: 50, Value: 1.4}, ReferencePoint{PixelY: 250, Value: 0})

	if !approxEqual(cal.PixelPerUnit(), 200/1.4) {
		t.Errorf("Expected pixel per unit %f, got %f", 200/1.4, cal.PixelPerUnit())
	}
	if cal.Bottom() != (ReferencePoint{PixelY: 250, Value: 0}) {
		t.Errorf("Unexpected bottom reference: %+v", cal.Bottom())
	}

	got, err := cal.Convert(150)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if !approxEqual(got, 0.7) {
		t.Errorf("Expected 0.700 at y=150, got %.6f", got)
	}
}

func TestBuild_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		top    ReferencePoint
		bottom ReferencePoint
		want   error
	}{
		{
			name:   "equal values",
			top:    ReferencePoint{PixelY: 50, Value: 2},
			bottom: ReferencePoint{PixelY: 250, Value: 2},
			want:   ErrDivideByZero,
		},
		{
			name:   "equal pixel rows",
			top:    ReferencePoint{PixelY: 120, Value: 10},
			bottom: ReferencePoint{PixelY: 120, Value: 0},
			want:   ErrDivideByZero,
		},
		{
			name:   "NaN value",
			top:    ReferencePoint{PixelY: 50, Value: math.NaN()},
			bottom: ReferencePoint{PixelY: 250, Value: 0},
			want:   ErrNonFinite,
		},
		{
			name:   "infinite value",
			top:    ReferencePoint{PixelY: 50, Value: 1},
			bottom: ReferencePoint{PixelY: 250, Value: math.Inf(-1)},
			want:   ErrNonFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.top, tt.bottom)
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConvert_ZeroCalibration(t *testing.T) {
	var cal Calibration
	v, err := cal.Convert(10)
	if !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("Expected ErrDivideByZero, got value %v and error %v", v, err)
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	pairs := []struct {
		top, bottom ReferencePoint
	}{
		{ReferencePoint{50, 1.4}, ReferencePoint{250, 0}},
		{ReferencePoint{12, 100}, ReferencePoint{480, -20}},
		{ReferencePoint{300, 0.001}, ReferencePoint{301, 0}},
		// inverted axis: value grows downwards
		{ReferencePoint{40, -5}, ReferencePoint{400, 5}},
		// top clicked below bottom
		{ReferencePoint{500, 3}, ReferencePoint{100, 9}},
	}

	for _, p := range pairs {
		cal := mustBuild(t, p.top, p.bottom)

		gotTop, err := cal.Convert(p.top.PixelY)
		if err != nil {
			t.Fatalf("Convert(top) error: %v", err)
		}
		gotBottom, err := cal.Convert(p.bottom.PixelY)
		if err != nil {
			t.Fatalf("Convert(bottom) error: %v", err)
		}

		if !approxEqual(gotTop, p.top.Value) {
			t.Errorf("%+v: expected top value %g, got %g", p, p.top.Value, gotTop)
		}
		if !approxEqual(gotBottom, p.bottom.Value) {
			t.Errorf("%+v: expected bottom value %g, got %g", p, p.bottom.Value, gotBottom)
		}
	}
}

func TestConvert_Linearity(t *testing.T) {
	cal := mustBuild(t, ReferencePoint{PixelY: 37, Value: 12.5}, ReferencePoint{PixelY: 411, Value: -3})

	for _, ys := range [][2]int{{0, 400}, {37, 411}, {100, 102}, {-50, 900}, {411, 37}} {
		mid := (ys[0] + ys[1]) / 2
		if (ys[0]+ys[1])%2 != 0 {
			continue
		}
		v1, _ := cal.Convert(ys[0])
		v2, _ := cal.Convert(ys[1])
		vm, _ := cal.Convert(mid)
		if !approxEqual(vm, (v1+v2)/2) {
			t.Errorf("Midpoint %d: expected %g, got %g", mid, (v1+v2)/2, vm)
		}
	}

	// a straight-line fit over many rows must be exact
	var xs, vs []float64
	for y := -100; y <= 700; y += 7 {
		v, err := cal.Convert(y)
		if err != nil {
			t.Fatalf("Convert(%d) error: %v", y, err)
		}
		xs = append(xs, float64(y))
		vs = append(vs, v)
	}
	alpha, beta := stat.LinearRegression(xs, vs, nil, false)
	if r2 := stat.RSquared(xs, vs, nil, alpha, beta); !approxEqual(r2, 1) {
		t.Errorf("Expected R^2 of 1, got %v", r2)
	}
	if !approxEqual(beta, -1/cal.PixelPerUnit()) {
		t.Errorf("Expected slope %g, got %g", -1/cal.PixelPerUnit(), beta)
	}
}

func TestConvert_Monotonic(t *testing.T) {
	cal := mustBuild(t, ReferencePoint{PixelY: 50, Value: 1.4}, ReferencePoint{PixelY: 250, Value: 0})

	prev, _ := cal.Convert(-200)
	for y := -199; y <= 600; y++ {
		v, _ := cal.Convert(y)
		if v > prev {
			t.Fatalf("Value increased moving down: y=%d gives %g after %g", y, v, prev)
		}
		prev = v
	}
}

func TestConvert_Extrapolates(t *testing.T) {
	cal := mustBuild(t, ReferencePoint{PixelY: 50, Value: 1.4}, ReferencePoint{PixelY: 250, Value: 0})

	above, _ := cal.Convert(0)
	if !approxEqual(above, 1.75) {
		t.Errorf("Expected 1.75 above the top reference, got %g", above)
	}
	below, _ := cal.Convert(300)
	if !approxEqual(below, -0.35) {
		t.Errorf("Expected -0.35 below the bottom reference, got %g", below)
	}
}
