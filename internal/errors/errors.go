package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeImageLoad             ErrorType = "image_load"
	ErrorTypeInsufficientPoints    ErrorType = "insufficient_points"
	ErrorTypeDegenerateCalibration ErrorType = "degenerate_calibration"
	ErrorTypeInvalidInput          ErrorType = "invalid_input"
	ErrorTypeConfig                ErrorType = "config"
	ErrorTypeSurface               ErrorType = "surface"
	ErrorTypeCancelled             ErrorType = "cancelled"
)

// Process exit codes reported for each error type
const (
	ExitCodeFailure   = 1
	ExitCodeConfig    = 2
	ExitCodeCancelled = 130
)

// AppError represents a structured application error
type AppError struct {
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	Details  string    `json:"details,omitempty"`
	ExitCode int       `json:"exit_code"`
	Cause    error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if e.Details != "" {
		msg = fmt.Sprintf("%s, %s", msg, e.Details)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewImageLoadError reports a chart image that could not be read or decoded
func NewImageLoadError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeImageLoad,
		Message:  message,
		ExitCode: ExitCodeFailure,
		Cause:    cause,
	}
}

// NewInsufficientPointsError reports an axis phase closed with fewer than two clicks
func NewInsufficientPointsError(got, want int) *AppError {
	return &AppError{
		Type:     ErrorTypeInsufficientPoints,
		Message:  fmt.Sprintf("need %d reference points", want),
		Details:  fmt.Sprintf("got %d", got),
		ExitCode: ExitCodeFailure,
	}
}

// NewDegenerateCalibrationError reports reference points that do not define a scale
func NewDegenerateCalibrationError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeDegenerateCalibration,
		Message:  message,
		ExitCode: ExitCodeFailure,
		Cause:    cause,
	}
}

// NewInvalidInputError reports console input that could not be used
func NewInvalidInputError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeInvalidInput,
		Message:  message,
		ExitCode: ExitCodeFailure,
		Cause:    cause,
	}
}

// NewConfigError reports invalid environment configuration
func NewConfigError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeConfig,
		Message:  message,
		ExitCode: ExitCodeConfig,
		Cause:    cause,
	}
}

// NewSurfaceError reports a display surface that failed to start or run
func NewSurfaceError(message string, cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeSurface,
		Message:  message,
		ExitCode: ExitCodeFailure,
		Cause:    cause,
	}
}

// NewCancelledError reports a run interrupted before it finished
func NewCancelledError(cause error) *AppError {
	return &AppError{
		Type:     ErrorTypeCancelled,
		Message:  "run cancelled",
		ExitCode: ExitCodeCancelled,
		Cause:    cause,
	}
}

// IsType checks if the error chain contains an AppError of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetExitCode extracts the process exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}
	return ExitCodeFailure
}
