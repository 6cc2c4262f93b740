package app

import (
	"os"
	"strconv"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.AlbumURL == "" {
		cfg.AlbumURL = os.Getenv("ALBUM_URL")
	}
	if cfg.OutputPath == "" || cfg.OutputPath == OutputDefault {
		if v := os.Getenv("GALLERY_OUT"); v != "" {
			cfg.OutputPath = v
		}
	}
	if cfg.Title == "" {
		cfg.Title = os.Getenv("GALLERY_TITLE")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("FETCH_UA")
	}
	if cfg.FetchTimeout == 0 || cfg.FetchTimeout == FetchTimeoutDefault {
		if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				cfg.FetchTimeout = d
			}
		}
	}
	if !cfg.Rendered {
		if v := os.Getenv("RENDER"); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				cfg.Rendered = b
			}
		}
	}
	if cfg.RenderTimeout == 0 || cfg.RenderTimeout == RenderTimeoutDefault {
		if v := os.Getenv("RENDER_TIMEOUT"); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				cfg.RenderTimeout = d
			}
		}
	}
}
