//go:build !cgo && (linux || freebsd || openbsd || netbsd)

package surface

import (
	"errors"
	"image"
)

// NewWindowSurface reports that the native window is unavailable in this build
func NewWindowSurface(_ image.Image, _, _ int) (Surface, error) {
	return nil, errors.New("window surface requires cgo (build with CGO_ENABLED=1) or set DIGITIZER_SURFACE=browser")
}
