package surface

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net"
	"net/http"
	"time"

	apperrors "go-bar-digitizer/internal/errors"
	"go-bar-digitizer/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ClickRequest is a click reported by the browser page, in displayed
// coordinates of the chart element
type ClickRequest struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	DisplayWidth  float64 `json:"display_width"`
	DisplayHeight float64 `json:"display_height"`
}

// ErrorResponse is the body of a rejected request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BrowserSurface serves the chart to a page on a local address and
// records clicks posted back by it
type BrowserSurface struct {
	addr    string
	bounds  image.Rectangle
	chart   []byte
	page    []byte
	session *session
	handler http.Handler
	out     io.Writer
}

// NewBrowserSurface prepares a surface for chart on addr. Notices for the
// user are written to out.
func NewBrowserSurface(addr string, chart image.Image, out io.Writer) (*BrowserSurface, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, chart); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}

	bounds := chart.Bounds()
	page, err := renderPage(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	b := &BrowserSurface{
		addr:    addr,
		bounds:  bounds,
		chart:   buf.Bytes(),
		page:    page,
		session: newSession(),
		out:     out,
	}
	b.handler = b.routes()
	return b, nil
}

// Handler returns the HTTP handler serving the page and its API
func (b *BrowserSurface) Handler() http.Handler {
	return b.handler
}

func (b *BrowserSurface) routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/", b.servePage)
	r.GET("/chart.png", b.serveChart)
	r.GET("/state", b.serveState)
	r.POST("/click", b.recordClick)
	r.POST("/close", b.closePhase)

	return r
}

// Run listens on the configured address for the duration of work
func (b *BrowserSurface) Run(ctx context.Context, work func(context.Context) error) error {
	ln, err := net.Listen("tcp", b.addr)
	if err != nil {
		return apperrors.NewSurfaceError("failed to listen on "+b.addr, err)
	}

	server := &http.Server{
		Handler:           b.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	url := "http://" + ln.Addr().String() + "/"
	logger.WithField("url", url).Info("Browser surface listening")
	fmt.Fprintf(b.out, "\nOpen %s in a browser to see the chart.\n", url)

	workErr := work(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("Browser surface did not shut down cleanly")
	}

	if workErr != nil {
		return workErr
	}
	if err := <-serveErr; err != nil {
		return apperrors.NewSurfaceError("browser surface stopped", err)
	}
	return nil
}

// Collect opens a phase on the page and waits until the user closes it
func (b *BrowserSurface) Collect(ctx context.Context, req Request) ([]image.Point, error) {
	return b.session.collect(ctx, req)
}

func (b *BrowserSurface) servePage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", b.page)
}

func (b *BrowserSurface) serveChart(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", b.chart)
}

func (b *BrowserSurface) serveState(c *gin.Context) {
	c.JSON(http.StatusOK, b.session.state())
}

func (b *BrowserSurface) recordClick(c *gin.Context) {
	var req ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid click", err)
		return
	}

	p := ScaleToImage(req.X, req.Y, req.DisplayWidth, req.DisplayHeight, b.bounds)
	if !p.In(b.bounds) {
		respondError(c, http.StatusBadRequest, "click outside chart", fmt.Errorf("pixel %v not in %v", p, b.bounds))
		return
	}

	mark, err := b.session.record(p)
	switch {
	case errors.Is(err, errNoPhase), errors.Is(err, errLimit):
		respondError(c, http.StatusConflict, "click not recorded", err)
		return
	case err != nil:
		respondError(c, http.StatusInternalServerError, "click not recorded", err)
		return
	}

	c.JSON(http.StatusOK, mark)
}

func (b *BrowserSurface) closePhase(c *gin.Context) {
	b.session.close()
	c.JSON(http.StatusOK, b.session.state())
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("Browser surface request")
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
	}).Debug("Request rejected")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
