package factory

import (
	"image"
	"io"
	"testing"
	"time"

	"go-bar-digitizer/internal/config"
	"go-bar-digitizer/internal/storage"
	"go-bar-digitizer/internal/surface"
)

func testConfig() *config.Config {
	return &config.Config{
		Surface:           config.SurfaceBrowser,
		ListenAddr:        "127.0.0.1:0",
		ImageFetchTimeout: time.Second,
		GroupSize:         3,
		WindowMaxWidth:    1500,
		WindowMaxHeight:   900,
	}
}

func TestCreateStorage(t *testing.T) {
	f := NewStorageFactory(testConfig())

	tests := []struct {
		kind    storage.SourceKind
		wantErr bool
	}{
		{storage.SourceFile, false},
		{storage.SourceHTTP, false},
		{storage.SourceAzure, false},
		{storage.SourceKind("ftp"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			loader, err := f.CreateStorage(tt.kind)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateStorage(%s) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			}
			if !tt.wantErr && loader == nil {
				t.Errorf("Expected a loader for %s", tt.kind)
			}
		})
	}
}

func TestCreateSurface(t *testing.T) {
	f := NewSurfaceFactory(testConfig(), io.Discard)
	chart := image.NewRGBA(image.Rect(0, 0, 10, 10))

	surf, err := f.CreateSurface(config.SurfaceBrowser, chart)
	if err != nil {
		t.Fatalf("CreateSurface(browser) error: %v", err)
	}
	if _, ok := surf.(*surface.BrowserSurface); !ok {
		t.Errorf("Expected *surface.BrowserSurface, got %T", surf)
	}

	if _, err := f.CreateSurface(config.SurfaceType("terminal"), chart); err == nil {
		t.Error("Expected error for unknown surface type")
	}
}

func TestComponentFactory_SourceLoader(t *testing.T) {
	cf := NewComponentFactory(testConfig(), io.Discard)
	loader, err := cf.SourceLoader()
	if err != nil {
		t.Fatalf("SourceLoader() error: %v", err)
	}
	if loader == nil {
		t.Fatal("Expected a source loader")
	}
}
