package app

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config holds runtime configuration for one gallery run.
type Config struct {
	AlbumURL   string
	OutputPath string
	// PDFPath enables the optional PDF contact sheet when non-empty.
	PDFPath string

	// Title overrides the album title derived from the page.
	Title string

	// Rendered selects the headless-browser snapshot fetch instead of the
	// plain HTTP fetch.
	Rendered      bool
	RenderTimeout time.Duration

	FetchTimeout time.Duration
	UserAgent    string

	Verbose bool
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.AlbumURL) == "" {
		return errors.New("config: album URL is required")
	}
	u, err := url.Parse(cfg.AlbumURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("config: album URL must be http(s)")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	if cfg.FetchTimeout < 0 || cfg.RenderTimeout < 0 {
		return errors.New("config: negative timeouts are not allowed")
	}
	return nil
}
