package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	cause := errors.New("no such file")
	err := NewImageLoadError("failed to open chart.png", cause)

	msg := err.Error()
	if !strings.Contains(msg, "image_load") || !strings.Contains(msg, "no such file") {
		t.Errorf("Unexpected error message: %s", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}

	bare := NewInsufficientPointsError(1, 2)
	if bare.Error() != "insufficient_points: need 2 reference points, got 1" {
		t.Errorf("Unexpected message: %s", bare.Error())
	}
	if bare.Details != "got 1" {
		t.Errorf("Unexpected details: %s", bare.Details)
	}
}

func TestIsType(t *testing.T) {
	wrapped := fmt.Errorf("digitize: %w", NewDegenerateCalibrationError("equal axis values", nil))

	if !IsType(wrapped, ErrorTypeDegenerateCalibration) {
		t.Error("Expected wrapped error to match degenerate_calibration")
	}
	if IsType(wrapped, ErrorTypeImageLoad) {
		t.Error("Did not expect wrapped error to match image_load")
	}
	if IsType(errors.New("plain"), ErrorTypeImageLoad) {
		t.Error("Did not expect plain error to match any type")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), ExitCodeFailure},
		{"image load", NewImageLoadError("x", nil), ExitCodeFailure},
		{"config", NewConfigError("bad", nil), ExitCodeConfig},
		{"wrapped cancel", fmt.Errorf("run: %w", NewCancelledError(context.Canceled)), ExitCodeCancelled},
		{"surface", NewSurfaceError("x", nil), ExitCodeFailure},
		{"input", NewInvalidInputError("x", nil), ExitCodeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
