package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageLoader loads a chart image from a source string
type ImageLoader interface {
	Load(ctx context.Context, source string) (*Chart, error)
}

// Chart is a decoded chart image together with where it came from
type Chart struct {
	Source string
	Format string
	Image  image.Image
}

// Width returns the chart width in pixels
func (c *Chart) Width() int { return c.Image.Bounds().Dx() }

// Height returns the chart height in pixels
func (c *Chart) Height() int { return c.Image.Bounds().Dy() }

// decodeChart decodes an image stream, keeping the detected format
func decodeChart(source string, r io.Reader) (*Chart, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Chart{Source: source, Format: format, Image: img}, nil
}

// SourceKind classifies where a chart source lives
type SourceKind string

const (
	SourceFile  SourceKind = "file"
	SourceHTTP  SourceKind = "http"
	SourceAzure SourceKind = "azure"
)

const azureBlobHostSuffix = ".blob.core.windows.net"

// ClassifySource decides which loader serves a source string
func ClassifySource(source string) SourceKind {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		return SourceFile
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		if strings.HasSuffix(strings.ToLower(parsed.Hostname()), azureBlobHostSuffix) {
			return SourceAzure
		}
		return SourceHTTP
	default:
		return SourceFile
	}
}

// SourceLoader routes a source to the file, HTTP or Azure loader
type SourceLoader struct {
	file  ImageLoader
	http  ImageLoader
	azure ImageLoader
}

// NewSourceLoader creates a routing loader; azure may be nil when blob
// sources should go through the plain HTTP fetcher
func NewSourceLoader(file, http, azure ImageLoader) *SourceLoader {
	return &SourceLoader{file: file, http: http, azure: azure}
}

// Load picks the loader for source and delegates to it
func (l *SourceLoader) Load(ctx context.Context, source string) (*Chart, error) {
	loader, err := l.loaderFor(ClassifySource(source))
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx, source)
}

func (l *SourceLoader) loaderFor(kind SourceKind) (ImageLoader, error) {
	switch kind {
	case SourceAzure:
		if l.azure != nil {
			return l.azure, nil
		}
		if l.http != nil {
			return l.http, nil
		}
	case SourceHTTP:
		if l.http != nil {
			return l.http, nil
		}
	case SourceFile:
		if l.file != nil {
			return l.file, nil
		}
	}
	return nil, fmt.Errorf("no loader configured for %s sources", kind)
}
