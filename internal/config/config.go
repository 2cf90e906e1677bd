package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arbovm/levenshtein"
)

// SurfaceType names a display/input surface implementation
type SurfaceType string

const (
	// SurfaceWindow opens a native window
	SurfaceWindow SurfaceType = "window"
	// SurfaceBrowser serves the chart to a local browser page
	SurfaceBrowser SurfaceType = "browser"
)

// DefaultAzureEndpoint is the public Azure blob service URL format
const DefaultAzureEndpoint = "https://%s.blob.core.windows.net"

// KnownSurfaces lists every accepted DIGITIZER_SURFACE value
var KnownSurfaces = []SurfaceType{SurfaceWindow, SurfaceBrowser}

type Config struct {
	Surface           SurfaceType
	ListenAddr        string
	ImageFetchTimeout time.Duration
	GroupSize         int
	WindowMaxWidth    int
	WindowMaxHeight   int
	AzureAccountName  string
	AzureAccountKey   string
	// AzureEndpoint is the blob service URL with %s for the account name
	AzureEndpoint string
	// AllowedHosts restricts URL sources; empty allows any host
	AllowedHosts []string
}

// HasAzureCredentials reports whether a shared key is configured
func (c *Config) HasAzureCredentials() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != ""
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Surface:           SurfaceType(strings.ToLower(strings.TrimSpace(getEnvOrDefault("DIGITIZER_SURFACE", string(SurfaceWindow))))),
		ListenAddr:        strings.TrimSpace(getEnvOrDefault("DIGITIZER_LISTEN_ADDR", "127.0.0.1:8765")),
		ImageFetchTimeout: parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		GroupSize:         int(parseIntOrDefault("DIGITIZER_GROUP_SIZE", 3)),
		WindowMaxWidth:    int(parseIntOrDefault("DIGITIZER_WINDOW_MAX_WIDTH", 1500)),
		WindowMaxHeight:   int(parseIntOrDefault("DIGITIZER_WINDOW_MAX_HEIGHT", 900)),
		AzureAccountName:  strings.TrimSpace(os.Getenv("AZURE_STORAGE_ACCOUNT")),
		AzureAccountKey:   strings.TrimSpace(os.Getenv("AZURE_STORAGE_KEY")),
		AzureEndpoint:     strings.TrimSpace(getEnvOrDefault("AZURE_STORAGE_ENDPOINT", DefaultAzureEndpoint)),
		AllowedHosts:      parseListOrDefault("DIGITIZER_ALLOWED_HOSTS", nil),
	}

	if !isKnownSurface(cfg.Surface) {
		return nil, fmt.Errorf("invalid DIGITIZER_SURFACE %q (did you mean %q?)", cfg.Surface, suggestSurface(string(cfg.Surface)))
	}
	if _, _, err := net.SplitHostPort(cfg.ListenAddr); err != nil {
		return nil, fmt.Errorf("invalid DIGITIZER_LISTEN_ADDR %q: %w", cfg.ListenAddr, err)
	}
	if cfg.GroupSize <= 0 {
		return nil, fmt.Errorf("DIGITIZER_GROUP_SIZE must be > 0 (got %d)", cfg.GroupSize)
	}
	if cfg.WindowMaxWidth <= 0 || cfg.WindowMaxHeight <= 0 {
		return nil, fmt.Errorf("window bounds must be > 0 (got %dx%d)", cfg.WindowMaxWidth, cfg.WindowMaxHeight)
	}
	if (cfg.AzureAccountName == "") != (cfg.AzureAccountKey == "") {
		return nil, fmt.Errorf("AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY must be set together")
	}
	if strings.Count(cfg.AzureEndpoint, "%s") != 1 {
		return nil, fmt.Errorf("AZURE_STORAGE_ENDPOINT must contain exactly one %%s for the account (got %q)", cfg.AzureEndpoint)
	}
	if u, err := url.Parse(fmt.Sprintf(cfg.AzureEndpoint, "account")); err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid AZURE_STORAGE_ENDPOINT %q", cfg.AzureEndpoint)
	}
	return cfg, nil
}

func isKnownSurface(s SurfaceType) bool {
	for _, known := range KnownSurfaces {
		if s == known {
			return true
		}
	}
	return false
}

// suggestSurface returns the known surface name closest to s
func suggestSurface(s string) string {
	best := string(KnownSurfaces[0])
	bestDist := levenshtein.Distance(s, best)
	for _, known := range KnownSurfaces[1:] {
		if d := levenshtein.Distance(s, string(known)); d < bestDist {
			best, bestDist = string(known), d
		}
	}
	return best
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
