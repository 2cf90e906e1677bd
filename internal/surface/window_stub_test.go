//go:build !cgo && (linux || freebsd || openbsd || netbsd)

package surface

import (
	"image"
	"strings"
	"testing"
)

func TestNewWindowSurface_Unavailable(t *testing.T) {
	surf, err := NewWindowSurface(image.NewRGBA(image.Rect(0, 0, 10, 10)), 1500, 900)
	if err == nil {
		t.Fatalf("Expected error without cgo, got %T", surf)
	}
	if !strings.Contains(err.Error(), "DIGITIZER_SURFACE=browser") {
		t.Errorf("Expected hint to use the browser surface, got: %v", err)
	}
}
