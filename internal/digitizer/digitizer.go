// Package digitizer runs an interactive bar chart digitizing session: two
// axis reference clicks, their real values typed on the console, then one
// click on the top of each bar.
package digitizer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"go-bar-digitizer/internal/calibration"
	apperrors "go-bar-digitizer/internal/errors"
	"go-bar-digitizer/internal/logger"
	"go-bar-digitizer/internal/observer"
	"go-bar-digitizer/internal/report"
	"go-bar-digitizer/internal/storage"
	"go-bar-digitizer/internal/surface"

	"github.com/sirupsen/logrus"
)

const referencePoints = 2

const (
	axisTitle = "Click: (1) Top of Y-axis, (2) Bottom of Y-axis"
	barsTitle = "Click at the TOP of each bar (left to right)"
)

// Bar is one measured bar, in the order it was clicked
type Bar struct {
	Index int         `json:"index"`
	Point image.Point `json:"point"`
	Value float64     `json:"value"`
}

// Result is everything a completed session produced
type Result struct {
	Calibration calibration.Calibration    `json:"-"`
	Top         calibration.ReferencePoint `json:"top"`
	Bottom      calibration.ReferencePoint `json:"bottom"`
	Bars        []Bar                      `json:"bars"`
}

// Values returns the bar values in click order
func (r *Result) Values() []float64 {
	values := make([]float64, len(r.Bars))
	for i, b := range r.Bars {
		values[i] = b.Value
	}
	return values
}

// ReportBars converts the bars for the results report
func (r *Result) ReportBars() []report.Bar {
	bars := make([]report.Bar, len(r.Bars))
	for i, b := range r.Bars {
		bars[i] = report.Bar{Index: b.Index, Value: b.Value}
	}
	return bars
}

// Digitizer drives one session against a surface
type Digitizer struct {
	surface surface.Surface
	prompt  *Prompt
	out     io.Writer
	events  observer.Subject
}

// New creates a digitizer. Instructions and echoes go to out, axis values
// are read from in.
func New(surf surface.Surface, in io.Reader, out io.Writer, events observer.Subject) *Digitizer {
	if events == nil {
		events = observer.NewEventPublisher()
	}
	return &Digitizer{
		surface: surf,
		prompt:  NewPrompt(in, out),
		out:     out,
		events:  events,
	}
}

// Run executes the session for chart. It must be called from within the
// surface's Run.
func (d *Digitizer) Run(ctx context.Context, chart *storage.Chart) (*Result, error) {
	log := logger.WithFields(logrus.Fields{
		"source": chart.Source,
		"width":  chart.Width(),
		"height": chart.Height(),
	})

	result, err := d.run(ctx, chart.Source)
	if err != nil {
		log.WithError(err).Debug("Digitizing session stopped")
		d.publish(ctx, observer.SessionEvent{
			EventType: observer.SessionFailed,
			Source:    chart.Source,
			Metadata:  map[string]interface{}{"error": err.Error()},
		})
		return nil, err
	}

	log.WithField("bars", len(result.Bars)).Info("Digitizing session completed")
	return result, nil
}

func (d *Digitizer) run(ctx context.Context, source string) (*Result, error) {
	d.printInstructions()

	top, bottom, err := d.collectAxis(ctx, source)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(d.out, "\nEnter the actual values for these reference points:")
	if top.Value, err = d.readValue(ctx, fmt.Sprintf("  Value at top (y=%d): ", top.PixelY)); err != nil {
		return nil, err
	}
	if bottom.Value, err = d.readValue(ctx, fmt.Sprintf("  Value at bottom (y=%d): ", bottom.PixelY)); err != nil {
		return nil, err
	}

	cal, err := calibration.Build(top, bottom)
	if err != nil {
		return nil, apperrors.NewDegenerateCalibrationError("reference points do not define a scale", err)
	}
	fmt.Fprintf(d.out, "\n✓ Scale: %.2f pixels per unit\n", cal.PixelPerUnit())
	d.publish(ctx, observer.SessionEvent{
		EventType: observer.CalibrationBuilt,
		Source:    source,
		Metadata: map[string]interface{}{
			"pixel_per_unit": cal.PixelPerUnit(),
			"top_y":          top.PixelY,
			"bottom_y":       bottom.PixelY,
		},
	})

	bars, err := d.collectBars(ctx, source, cal)
	if err != nil {
		return nil, err
	}

	return &Result{
		Calibration: cal,
		Top:         top,
		Bottom:      bottom,
		Bars:        bars,
	}, nil
}

func (d *Digitizer) printInstructions() {
	report.Banner(d.out, "INSTRUCTIONS:")
	fmt.Fprintln(d.out, "1. The image will be displayed")
	fmt.Fprintln(d.out, "2. Click on two points to define the y-axis scale:")
	fmt.Fprintln(d.out, "   - First click: Top of y-axis (max value, e.g., 1.4 M)")
	fmt.Fprintln(d.out, "   - Second click: Bottom of y-axis (min value, e.g., 0 M)")
	fmt.Fprintln(d.out, "3. Close the image window when done")
	report.Rule(d.out)
}

func (d *Digitizer) collectAxis(ctx context.Context, source string) (top, bottom calibration.ReferencePoint, err error) {
	req := surface.Request{
		Phase: surface.PhaseAxis,
		Title: axisTitle,
		Limit: referencePoints,
		Mark: func(n int, p image.Point) string {
			fmt.Fprintf(d.out, "  Click %d: x=%d, y=%d\n", n, p.X, p.Y)
			if n == referencePoints {
				fmt.Fprintln(d.out, "\n✓ Got both reference points. Close the window to continue.")
			}
			d.publish(ctx, observer.SessionEvent{
				EventType: observer.ClickRecorded,
				Source:    source,
				Phase:     surface.PhaseAxis.String(),
				X:         p.X,
				Y:         p.Y,
				Count:     n,
			})
			return ""
		},
	}

	clicks, err := d.collect(ctx, source, req)
	if err != nil {
		return top, bottom, err
	}
	if len(clicks) < referencePoints {
		return top, bottom, apperrors.NewInsufficientPointsError(len(clicks), referencePoints)
	}

	top = calibration.ReferencePoint{PixelY: clicks[0].Y}
	bottom = calibration.ReferencePoint{PixelY: clicks[1].Y}
	return top, bottom, nil
}

func (d *Digitizer) collectBars(ctx context.Context, source string, cal calibration.Calibration) ([]Bar, error) {
	report.Banner(d.out, "BAR MEASUREMENT MODE")
	fmt.Fprintln(d.out, "For each bar, click at the TOP of the bar")
	fmt.Fprintln(d.out, "Close window when done with all bars")
	report.Rule(d.out)

	zero := cal.Bottom().PixelY
	req := surface.Request{
		Phase:    surface.PhaseBars,
		Title:    barsTitle,
		ZeroLine: &zero,
		Mark: func(n int, p image.Point) string {
			value, err := cal.Convert(p.Y)
			if err != nil {
				logger.WithError(err).Warn("Bar value could not be computed")
				return ""
			}
			fmt.Fprintf(d.out, "  Bar %d: x=%d, y=%d → Value=%.3f\n", n, p.X, p.Y, value)
			d.publish(ctx, observer.SessionEvent{
				EventType: observer.BarMeasured,
				Source:    source,
				Phase:     surface.PhaseBars.String(),
				X:         p.X,
				Y:         p.Y,
				Value:     value,
				Count:     n,
			})
			return fmt.Sprintf("%.2f", value)
		},
	}

	clicks, err := d.collect(ctx, source, req)
	if err != nil {
		return nil, err
	}

	bars := make([]Bar, 0, len(clicks))
	for i, p := range clicks {
		value, err := cal.Convert(p.Y)
		if err != nil {
			return nil, apperrors.NewDegenerateCalibrationError("bar value could not be computed", err)
		}
		bars = append(bars, Bar{Index: i + 1, Point: p, Value: value})
	}
	return bars, nil
}

// collect runs one phase on the surface and classifies its failure
func (d *Digitizer) collect(ctx context.Context, source string, req surface.Request) ([]image.Point, error) {
	d.publish(ctx, observer.SessionEvent{
		EventType: observer.PhaseStarted,
		Source:    source,
		Phase:     req.Phase.String(),
	})

	clicks, err := d.surface.Collect(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewCancelledError(err)
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.NewSurfaceError("failed to collect "+req.Phase.String()+" clicks", err)
	}

	d.publish(ctx, observer.SessionEvent{
		EventType: observer.PhaseClosed,
		Source:    source,
		Phase:     req.Phase.String(),
		Count:     len(clicks),
	})
	return clicks, nil
}

func (d *Digitizer) readValue(ctx context.Context, label string) (float64, error) {
	v, err := d.prompt.Float(ctx, label)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 0, apperrors.NewCancelledError(err)
	default:
		return 0, apperrors.NewInvalidInputError("no value entered for reference point", err)
	}
}

func (d *Digitizer) publish(ctx context.Context, event observer.SessionEvent) {
	d.events.NotifyObservers(ctx, event)
}
