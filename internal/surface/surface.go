// Package surface presents a chart to the user and reports the pixels they
// click, one acquisition phase at a time.
package surface

import (
	"context"
	"image"
)

// Surface is a display/input collaborator. Run owns the toolkit for the
// whole session and calls work, which in turn calls Collect once per phase.
type Surface interface {
	Run(ctx context.Context, work func(context.Context) error) error
	Collect(ctx context.Context, req Request) ([]image.Point, error)
}

// Phase identifies what the user is clicking
type Phase int

const (
	// PhaseAxis collects the top and bottom y-axis reference points
	PhaseAxis Phase = iota
	// PhaseBars collects the top of each bar, left to right
	PhaseBars
)

func (p Phase) String() string {
	switch p {
	case PhaseAxis:
		return "axis"
	case PhaseBars:
		return "bars"
	default:
		return "unknown"
	}
}

// MarkFunc is called for each recorded click, n counting from 1. It
// returns the label drawn next to the click, or "" for none.
type MarkFunc func(n int, p image.Point) string

// Request describes one acquisition phase
type Request struct {
	Phase Phase
	Title string
	// Limit caps the recorded clicks; further clicks are ignored. Zero
	// means unbounded.
	Limit int
	// ZeroLine draws a dashed guide across the chart at this pixel row.
	ZeroLine *int
	Mark     MarkFunc
}

// Mark is a click drawn on the chart
type Mark struct {
	Phase Phase  `json:"-"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// State is a snapshot of the open phase, shared by all surfaces
type State struct {
	Phase    string `json:"phase"`
	Title    string `json:"title"`
	Open     bool   `json:"open"`
	Limit    int    `json:"limit,omitempty"`
	Count    int    `json:"count"`
	ZeroLine *int   `json:"zero_line,omitempty"`
	Marks    []Mark `json:"marks"`
}

// MarkHalfWidth is the half length of the horizontal tick drawn at a click
func MarkHalfWidth(p Phase) int {
	if p == PhaseAxis {
		return 5
	}
	return 4
}

// LabelOffset is how far above a bar mark its label is drawn
const LabelOffset = 20

// ZeroLineLabel names the dashed guide drawn at the bottom reference row
const ZeroLineLabel = "Zero line"
