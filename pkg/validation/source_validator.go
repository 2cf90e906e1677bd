package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptySource is returned for a blank image argument
var ErrEmptySource = errors.New("image source cannot be empty")

// SourceValidator checks an image source argument before it is loaded
type SourceValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewSourceValidator creates a validator accepting local paths and
// http(s) URLs. A non-empty allowedHosts restricts URL sources to those
// hosts.
func NewSourceValidator(allowedHosts []string) *SourceValidator {
	return &SourceValidator{
		allowedSchemes: []string{"http", "https"},
		allowedHosts:   allowedHosts,
	}
}

// ValidateSource accepts any non-empty local path, and URLs whose scheme
// and host are allowed
func (v *SourceValidator) ValidateSource(source string) error {
	if strings.TrimSpace(source) == "" {
		return ErrEmptySource
	}

	// plain paths, including Windows drive letters, are not URLs
	if !strings.Contains(source, "://") {
		return nil
	}

	parsed, err := url.Parse(source)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if !v.isSchemeAllowed(strings.ToLower(parsed.Scheme)) {
		return fmt.Errorf("URL scheme %q not allowed", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("URL must have a valid host")
	}
	if !v.isHostAllowed(parsed.Hostname()) {
		return fmt.Errorf("URL host %q not allowed", parsed.Hostname())
	}
	return nil
}

func (v *SourceValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

// isHostAllowed returns true if no host restrictions are set
func (v *SourceValidator) isHostAllowed(host string) bool {
	if len(v.allowedHosts) == 0 {
		return true
	}
	for _, allowed := range v.allowedHosts {
		if strings.EqualFold(host, allowed) {
			return true
		}
	}
	return false
}
