package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stillpage/gallerygen/internal/app"
	"github.com/stillpage/gallerygen/internal/extract"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env is optional; flags and real environment still win.
	_ = godotenv.Load()

	var (
		albumURL      string
		outPath       string
		pdfPath       string
		titleOverride string
		configPath    string
		rendered      bool
		renderTimeout time.Duration
		fetchTimeout  time.Duration
		userAgent     string
		verbose       bool
	)

	flag.StringVar(&albumURL, "album", "", "Public shared album URL (photos.app.goo.gl or goo.gl/photos link)")
	flag.StringVar(&outPath, "out", app.OutputDefault, "Path to write the gallery HTML")
	flag.StringVar(&pdfPath, "pdf", "", "Optional path for a PDF contact sheet")
	flag.StringVar(&titleOverride, "title", "", "Override the album title (auto-detected from the page if omitted)")
	flag.StringVar(&configPath, "config", "", "Optional YAML or JSON config file")
	flag.BoolVar(&rendered, "render", false, "Render the page in a headless browser to force lazy-loaded photos")
	flag.DurationVar(&renderTimeout, "render.timeout", app.RenderTimeoutDefault, "Overall budget for the rendered fetch")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", app.FetchTimeoutDefault, "Per-request timeout for the plain HTTP fetch")
	flag.StringVar(&userAgent, "fetch.ua", "", "Override the browser-like User-Agent")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		AlbumURL:      albumURL,
		OutputPath:    outPath,
		PDFPath:       pdfPath,
		Title:         titleOverride,
		Rendered:      rendered,
		RenderTimeout: renderTimeout,
		FetchTimeout:  fetchTimeout,
		UserAgent:     userAgent,
		Verbose:       verbose,
	}

	// Precedence: flags, then environment, then the config file. Both
	// overlays only fill fields still at their defaults, so order matters.
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 when the album yields no photos (usually a
		// sharing-permission problem), 1 for everything else.
		if errors.Is(err, extract.ErrNoImages) {
			fmt.Fprintln(os.Stderr, "No images found. The album may be private or the URL may be incorrect.")
			fmt.Fprintln(os.Stderr, "Make sure the album is set to 'Anyone with the link can view'.")
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}
