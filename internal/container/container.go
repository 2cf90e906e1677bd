package container

import (
	"context"
	"fmt"
	"io"

	"go-bar-digitizer/internal/config"
	"go-bar-digitizer/internal/digitizer"
	apperrors "go-bar-digitizer/internal/errors"
	"go-bar-digitizer/internal/factory"
	"go-bar-digitizer/internal/logger"
	"go-bar-digitizer/internal/observer"
	"go-bar-digitizer/internal/storage"
	"go-bar-digitizer/internal/surface"
	"go-bar-digitizer/pkg/validation"

	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	config  *config.Config
	factory *factory.ComponentFactory
	loader  storage.ImageLoader
	sources *validation.SourceValidator
	events  *observer.EventPublisher
	stats   *observer.StatsObserver
	in      io.Reader
	out     io.Writer
}

// NewContainer creates a new dependency injection container. Console
// input is read from in; instructions, echoes and prompts go to out.
func NewContainer(cfg *config.Config, in io.Reader, out io.Writer) (*Container, error) {
	components := factory.NewComponentFactory(cfg, out)

	loader, err := components.SourceLoader()
	if err != nil {
		return nil, apperrors.NewConfigError("failed to build image loaders", err)
	}

	events := observer.NewEventPublisher()
	stats := observer.NewStatsObserver()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(stats)

	return &Container{
		config:  cfg,
		factory: components,
		loader:  loader,
		sources: validation.NewSourceValidator(cfg.AllowedHosts),
		events:  events,
		stats:   stats,
		in:      in,
		out:     out,
	}, nil
}

// LoadChart reads the chart image from a file path or URL
func (c *Container) LoadChart(ctx context.Context, source string) (*storage.Chart, error) {
	if err := c.sources.ValidateSource(source); err != nil {
		return nil, apperrors.NewImageLoadError(fmt.Sprintf("could not read image at %s", source), err)
	}

	kind := storage.ClassifySource(source)
	if kind != storage.SourceFile {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.ImageFetchTimeout)
		defer cancel()
	}

	chart, err := c.loader.Load(ctx, source)
	if err != nil {
		return nil, apperrors.NewImageLoadError(fmt.Sprintf("could not read image at %s", source), err)
	}

	c.events.NotifyObservers(ctx, observer.SessionEvent{
		EventType: observer.ChartLoaded,
		Source:    source,
		Metadata: map[string]interface{}{
			"kind":   kind,
			"format": chart.Format,
			"width":  chart.Width(),
			"height": chart.Height(),
		},
	})
	return chart, nil
}

// NewSurface creates the configured surface showing chart
func (c *Container) NewSurface(chart *storage.Chart) (surface.Surface, error) {
	surf, err := c.factory.SurfaceFactory.CreateSurface(c.config.Surface, chart.Image)
	if err != nil {
		return nil, apperrors.NewSurfaceError(fmt.Sprintf("failed to open %s surface", c.config.Surface), err)
	}
	return surf, nil
}

// NewDigitizer creates a digitizer driving surf
func (c *Container) NewDigitizer(surf surface.Surface) *digitizer.Digitizer {
	return digitizer.New(surf, c.in, c.out, c.events)
}

// Digitize runs a full session for chart on surf. The surface owns the
// calling goroutine until the session ends.
func (c *Container) Digitize(ctx context.Context, surf surface.Surface, chart *storage.Chart) (*digitizer.Result, error) {
	d := c.NewDigitizer(surf)

	var result *digitizer.Result
	err := surf.Run(ctx, func(ctx context.Context) error {
		var err error
		result, err = d.Run(ctx, chart)
		return err
	})

	logger.WithFields(logrus.Fields(c.stats.GetStats())).Debug("Session stats")
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
