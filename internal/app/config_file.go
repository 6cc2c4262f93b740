package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to flags.
type FileConfig struct {
	Album  string `yaml:"album" json:"album"`
	Output string `yaml:"output" json:"output"`
	PDF    string `yaml:"pdf" json:"pdf"`
	Title  string `yaml:"title" json:"title"`

	Render struct {
		Enable  bool          `yaml:"enable" json:"enable"`
		Timeout time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"render" json:"render"`

	Fetch struct {
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
		UserAgent string        `yaml:"ua" json:"ua"`
	} `yaml:"fetch" json:"fetch"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// Defaults that flag parsing establishes; file config may override a value
// only when the flag was left at its default.
const (
	OutputDefault        = "gallery.html"
	FetchTimeoutDefault  = 20 * time.Second
	RenderTimeoutDefault = 90 * time.Second
)

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// currently unset or at their flag default. Flags should already have been
// parsed; explicit flag values win over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.AlbumURL == "" && fc.Album != "" {
		cfg.AlbumURL = fc.Album
	}
	if (cfg.OutputPath == "" || cfg.OutputPath == OutputDefault) && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.PDFPath == "" && fc.PDF != "" {
		cfg.PDFPath = fc.PDF
	}
	if cfg.Title == "" && fc.Title != "" {
		cfg.Title = fc.Title
	}
	if !cfg.Rendered && fc.Render.Enable {
		cfg.Rendered = true
	}
	if (cfg.RenderTimeout == 0 || cfg.RenderTimeout == RenderTimeoutDefault) && fc.Render.Timeout > 0 {
		cfg.RenderTimeout = fc.Render.Timeout
	}
	if (cfg.FetchTimeout == 0 || cfg.FetchTimeout == FetchTimeoutDefault) && fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = fc.Fetch.Timeout
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
