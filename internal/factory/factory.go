package factory

import (
	"fmt"
	"image"
	"io"

	"go-bar-digitizer/internal/config"
	"go-bar-digitizer/internal/storage"
	"go-bar-digitizer/internal/surface"
)

// SurfaceFactory creates display surfaces for a loaded chart
type SurfaceFactory interface {
	CreateSurface(surfaceType config.SurfaceType, chart image.Image) (surface.Surface, error)
}

// StorageFactory creates image loaders
type StorageFactory interface {
	CreateStorage(kind storage.SourceKind) (storage.ImageLoader, error)
}

// surfaceFactory implements SurfaceFactory
type surfaceFactory struct {
	cfg *config.Config
	out io.Writer
}

// NewSurfaceFactory creates a new surface factory. User notices from the
// browser surface are written to out.
func NewSurfaceFactory(cfg *config.Config, out io.Writer) SurfaceFactory {
	return &surfaceFactory{cfg: cfg, out: out}
}

// CreateSurface creates a surface based on the specified type
func (f *surfaceFactory) CreateSurface(surfaceType config.SurfaceType, chart image.Image) (surface.Surface, error) {
	switch surfaceType {
	case config.SurfaceWindow:
		return surface.NewWindowSurface(chart, f.cfg.WindowMaxWidth, f.cfg.WindowMaxHeight)
	case config.SurfaceBrowser:
		return surface.NewBrowserSurface(f.cfg.ListenAddr, chart, f.out)
	default:
		return nil, fmt.Errorf("unsupported surface type: %s", surfaceType)
	}
}

// storageFactory implements StorageFactory
type storageFactory struct {
	cfg *config.Config
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{cfg: cfg}
}

// CreateStorage creates a loader for the specified source kind
func (f *storageFactory) CreateStorage(kind storage.SourceKind) (storage.ImageLoader, error) {
	switch kind {
	case storage.SourceHTTP:
		return storage.NewHTTPImageFetcher(f.cfg.ImageFetchTimeout), nil
	case storage.SourceAzure:
		return storage.NewAzureBlobLoader(f.cfg.AzureAccountName, f.cfg.AzureAccountKey, f.cfg.AzureEndpoint)
	case storage.SourceFile:
		return storage.NewFileImageLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", kind)
	}
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	SurfaceFactory SurfaceFactory
	StorageFactory StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config, out io.Writer) *ComponentFactory {
	return &ComponentFactory{
		SurfaceFactory: NewSurfaceFactory(cfg, out),
		StorageFactory: NewStorageFactory(cfg),
	}
}

// SourceLoader builds a loader routing every source kind to its backend
func (f *ComponentFactory) SourceLoader() (*storage.SourceLoader, error) {
	file, err := f.StorageFactory.CreateStorage(storage.SourceFile)
	if err != nil {
		return nil, err
	}
	remote, err := f.StorageFactory.CreateStorage(storage.SourceHTTP)
	if err != nil {
		return nil, err
	}
	azure, err := f.StorageFactory.CreateStorage(storage.SourceAzure)
	if err != nil {
		return nil, err
	}
	return storage.NewSourceLoader(file, remote, azure), nil
}
