package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/stillpage/gallerygen/internal/extract"
	"github.com/stillpage/gallerygen/internal/fetch"
	"github.com/stillpage/gallerygen/internal/gallery"
	"github.com/stillpage/gallerygen/internal/render"
	"github.com/stillpage/gallerygen/internal/title"
)

// App runs one album-to-gallery pipeline. Each run is independent and
// stateless; nothing is shared across invocations.
type App struct {
	cfg Config

	// pageLoader is swappable for tests.
	pageLoader func(ctx context.Context) (extract.Page, error)
}

func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg}
	a.pageLoader = a.loadPage
	return a, nil
}

// Run fetches the album page, extracts the image collection, and writes the
// gallery document. All fatal conditions surface before any file is written.
func (a *App) Run(ctx context.Context) error {
	log.Info().Str("album", a.cfg.AlbumURL).Bool("rendered", a.cfg.Rendered).Msg("fetching album")
	page, err := a.pageLoader(ctx)
	if err != nil {
		return fmt.Errorf("fetch album page: %w", err)
	}

	images, err := a.extractor().Extract(page)
	if err != nil {
		// ErrNoImages passes through for the CLI's exit code mapping.
		return err
	}
	log.Info().Int("images", len(images)).Msg("extracted image collection")

	albumTitle := strings.TrimSpace(a.cfg.Title)
	if albumTitle == "" {
		albumTitle = title.FromHTML([]byte(page.HTML))
	}
	log.Debug().Str("title", albumTitle).Msg("album title")

	doc, err := gallery.Build(images, a.cfg.AlbumURL, albumTitle)
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.cfg.OutputPath, doc, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Int("images", len(images)).Str("out", a.cfg.OutputPath).Msg("wrote gallery")

	if a.cfg.PDFPath != "" {
		// The contact sheet is a secondary artifact; its failure does not
		// unwrite the gallery.
		if err := gallery.WriteContactSheet(images, a.cfg.AlbumURL, albumTitle, a.cfg.PDFPath); err != nil {
			log.Warn().Err(err).Msg("contact sheet failed")
		} else {
			log.Info().Str("out", a.cfg.PDFPath).Msg("wrote contact sheet")
		}
	}
	return nil
}

// extractor picks the extraction path matching the fetch strategy: raw-text
// scanning for plain HTTP, the DOM sweep for rendered snapshots.
func (a *App) extractor() extract.Extractor {
	if a.cfg.Rendered {
		return extract.SnapshotExtractor{}
	}
	return extract.HTMLExtractor{}
}

func (a *App) loadPage(ctx context.Context) (extract.Page, error) {
	if a.cfg.Rendered {
		rctx := ctx
		if a.cfg.RenderTimeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(ctx, a.cfg.RenderTimeout)
			defer cancel()
		}
		snap, err := (&render.Renderer{}).Capture(rctx, a.cfg.AlbumURL)
		if err != nil {
			return extract.Page{}, err
		}
		elements := make([]extract.Element, 0, len(snap.Images))
		for _, el := range snap.Images {
			elements = append(elements, extract.Element{Src: el.Src, Title: el.Title})
		}
		return extract.Page{HTML: snap.HTML, Elements: elements}, nil
	}

	client := &fetch.Client{
		UserAgent:         a.cfg.UserAgent,
		MaxAttempts:       1,
		PerRequestTimeout: a.cfg.FetchTimeout,
	}
	body, _, err := client.Get(ctx, a.cfg.AlbumURL)
	if err != nil {
		return extract.Page{}, err
	}
	return extract.Page{HTML: string(body)}, nil
}
