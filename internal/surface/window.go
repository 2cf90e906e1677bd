//go:build cgo || !(linux || freebsd || openbsd || netbsd)

package surface

import (
	"context"
	"image"
	"image/color"
	"sync"

	apperrors "go-bar-digitizer/internal/errors"
	"go-bar-digitizer/internal/logger"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	axisColor = color.RGBA{R: 0xff, A: 0xff}
	barColor  = color.RGBA{G: 0x80, A: 0xff}
)

// WindowSurface shows the chart in a native window. The window stays open
// across phases: closing it (or pressing Enter/Escape) ends the open
// phase, and the window itself goes away once the work has returned.
type WindowSurface struct {
	chart      image.Image
	maxWidth   int
	maxHeight  int
	session    *session
	mu         sync.Mutex
	finished   bool
	workErr    error
	ctx        context.Context
	chartImage *ebiten.Image
}

// NewWindowSurface prepares a window for chart, scaled down to fit
// maxWidth x maxHeight
func NewWindowSurface(chart image.Image, maxWidth, maxHeight int) (Surface, error) {
	return &WindowSurface{
		chart:     chart,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		session:   newSession(),
	}, nil
}

// Run blocks on the window event loop, which must own the calling
// goroutine, while work runs on another goroutine.
func (w *WindowSurface) Run(ctx context.Context, work func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.ctx = ctx

	go func() {
		err := work(ctx)
		w.mu.Lock()
		w.finished = true
		w.workErr = err
		w.mu.Unlock()
	}()

	bounds := w.chart.Bounds()
	width, height := FitWindow(bounds.Dx(), bounds.Dy(), w.maxWidth, w.maxHeight)
	ebiten.SetWindowTitle("Bar digitizer")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(&windowGame{w: w}); err != nil {
		return apperrors.NewSurfaceError("window failed", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.finished {
		return apperrors.NewCancelledError(ctx.Err())
	}
	return w.workErr
}

// Collect opens a phase in the window and waits until the user closes it
func (w *WindowSurface) Collect(ctx context.Context, req Request) ([]image.Point, error) {
	return w.session.collect(ctx, req)
}

func (w *WindowSurface) isFinished() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.finished
}

type windowGame struct {
	w *WindowSurface
}

func (g *windowGame) Update() error {
	if g.w.isFinished() || g.w.ctx.Err() != nil {
		return ebiten.Termination
	}

	if ebiten.IsWindowBeingClosed() ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !g.w.session.close() {
			logger.Warn("No phase is open; finish entering values in the console")
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		bounds := g.w.chart.Bounds()
		p := image.Pt(x, y).Add(bounds.Min)
		if p.In(bounds) {
			if _, err := g.w.session.record(p); err != nil {
				logger.WithError(err).Debug("Click ignored")
			}
		}
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.w.chartImage == nil {
		g.w.chartImage = ebiten.NewImageFromImage(g.w.chart)
	}
	screen.DrawImage(g.w.chartImage, nil)

	origin := g.w.chart.Bounds().Min
	st := g.w.session.state()

	if st.ZeroLine != nil {
		y := float32(*st.ZeroLine - origin.Y)
		for _, seg := range DashSegments(screen.Bounds().Dx(), 6, 4) {
			vector.StrokeLine(screen, float32(seg[0]), y, float32(seg[1]), y, 1, axisColor, false)
		}
		labelX := screen.Bounds().Dx() - len(ZeroLineLabel)*6 - 4
		ebitenutil.DebugPrintAt(screen, ZeroLineLabel, labelX, int(y)-16)
	}

	for _, m := range st.Marks {
		clr := barColor
		if m.Phase == PhaseAxis {
			clr = axisColor
		}
		half := float32(MarkHalfWidth(m.Phase))
		x, y := float32(m.X-origin.X), float32(m.Y-origin.Y)
		vector.StrokeLine(screen, x-half, y, x+half, y, 2, clr, true)
		if m.Label != "" {
			// debug font glyphs are 6px wide
			ebitenutil.DebugPrintAt(screen, m.Label, int(x)-len(m.Label)*3, int(y)-LabelOffset)
		}
	}

	title := st.Title
	if !st.Open {
		title = "Continue in the console"
	}
	ebitenutil.DebugPrintAt(screen, title, 4, 4)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	bounds := g.w.chart.Bounds()
	return bounds.Dx(), bounds.Dy()
}
