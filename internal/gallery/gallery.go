// Package gallery renders an image collection into a self-contained static
// HTML document with a masonry grid and a client-side lightbox viewer.
package gallery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/stillpage/gallerygen/internal/extract"
)

// dataEntry is one element of the inline data array the lightbox script
// consumes.
type dataEntry struct {
	Src   string `json:"src"`
	Thumb string `json:"thumb"`
}

type pageData struct {
	Title    string
	AlbumURL string
	Images   []extract.Image
	Count    int
	Data     template.JS
}

// Build renders the complete gallery document. The collection order is the
// presentation order; ThumbURL and DisplayURL are used verbatim as resource
// references.
func Build(images []extract.Image, albumURL, albumTitle string) ([]byte, error) {
	entries := make([]dataEntry, 0, len(images))
	for _, img := range images {
		entries = append(entries, dataEntry{Src: img.DisplayURL, Thumb: img.ThumbURL})
	}
	// json.Marshal escapes '<' and '>', so the blob is safe inside <script>.
	blob, err := json.MarshalIndent(entries, "    ", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode image data: %w", err)
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		Title:    albumTitle,
		AlbumURL: albumURL,
		Images:   images,
		Count:    len(images),
		Data:     template.JS(blob),
	})
	if err != nil {
		return nil, fmt.Errorf("render gallery: %w", err)
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{.Title}}</title>
  <style>
    :root {
      --ink:   #1a1a18;
      --paper: #f7f5f0;
      --muted: #8a8880;
      --rule:  #dedad4;
    }
    *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
    body { background: var(--paper); color: var(--ink); font-family: Georgia, serif; line-height: 1.6; }
    .container { max-width: 960px; margin: 0 auto; padding: 0 2rem; }
    header { padding: 3rem 0 2rem; }
    h1 { font-weight: 300; font-size: 2rem; }
    .meta { display: flex; align-items: baseline; gap: 1rem; margin: 1rem 0 2rem; }
    .meta .rule { flex: 1; height: 1px; background: var(--rule); }
    .count { font-size: 0.8rem; color: var(--muted); font-family: monospace; }
    .album-link { display: inline-block; margin: 2rem 0 3rem; font-size: 0.8rem; font-family: monospace; color: var(--muted); text-decoration: none; border-bottom: 1px solid var(--rule); }
    .album-link:hover { color: var(--ink); }
    .gallery { columns: 3 160px; column-gap: 0.6rem; }
    .gal-item { break-inside: avoid; margin-bottom: 0.6rem; cursor: pointer; overflow: hidden; border-radius: 2px; background: var(--rule); }
    .gal-item img { display: block; width: 100%; height: auto; transition: transform 0.35s ease, opacity 0.2s; opacity: 0; }
    .gal-item img.loaded { opacity: 1; }
    .gal-item:hover img { transform: scale(1.03); }
    #lightbox { display: none; position: fixed; inset: 0; background: rgba(20,20,18,0.96); z-index: 1000; align-items: center; justify-content: center; flex-direction: column; }
    #lightbox.open { display: flex; }
    #lb-img { max-width: min(92vw, 1100px); max-height: 85vh; object-fit: contain; display: block; }
    #lb-counter { font-family: monospace; font-size: 0.7rem; color: rgba(255,255,255,0.4); margin-top: 1rem; }
    .lb-btn { position: fixed; top: 50%; transform: translateY(-50%); background: none; border: none; color: rgba(255,255,255,0.5); font-size: 2rem; cursor: pointer; padding: 1rem; font-family: monospace; }
    .lb-btn:hover { color: #fff; }
    #lb-prev { left: 1rem; }
    #lb-next { right: 1rem; }
    #lb-close { position: fixed; top: 1.25rem; right: 1.5rem; background: none; border: none; color: rgba(255,255,255,0.5); font-size: 1.5rem; cursor: pointer; font-family: monospace; }
    #lb-close:hover { color: #fff; }
    @media (max-width: 540px) { .gallery { columns: 2 120px; } }
  </style>
</head>
<body>
  <main>
    <div class="container">
      <header>
        <h1>{{.Title}}</h1>
        <div class="meta">
          <span class="rule"></span>
          <span class="count">{{.Count}} photos</span>
        </div>
      </header>

      <div class="gallery">
{{- range $i, $img := .Images}}
        <figure class="gal-item" data-index="{{$i}}"><img src="{{$img.ThumbURL}}" alt="{{$img.Alt}}"{{if and $img.Width $img.Height}} width="{{$img.Width}}" height="{{$img.Height}}"{{end}} loading="lazy" /></figure>
{{- end}}
      </div>

      <a class="album-link" href="{{.AlbumURL}}" target="_blank" rel="noopener">View full album &rarr;</a>
    </div>
  </main>

  <div id="lightbox" role="dialog" aria-modal="true" aria-label="Photo viewer">
    <button id="lb-close" aria-label="Close">&times;</button>
    <button class="lb-btn" id="lb-prev" aria-label="Previous">&#8592;</button>
    <img id="lb-img" src="" alt="" />
    <p id="lb-counter"></p>
    <button class="lb-btn" id="lb-next" aria-label="Next">&#8594;</button>
  </div>

  <script>
    document.querySelectorAll('.gal-item img').forEach(img => {
      if (img.complete) { img.classList.add('loaded'); }
      else { img.addEventListener('load', () => img.classList.add('loaded')); }
    });

    const IMAGES = {{.Data}};

    const lb      = document.getElementById('lightbox');
    const lbImg   = document.getElementById('lb-img');
    const lbCount = document.getElementById('lb-counter');
    let current   = 0;

    function showImage() {
      lbImg.src = IMAGES[current].src;
      lbCount.textContent = (current + 1) + ' / ' + IMAGES.length;
    }
    function openLightbox(index) {
      current = index;
      showImage();
      lb.classList.add('open');
      document.body.style.overflow = 'hidden';
    }
    function closeLightbox() {
      lb.classList.remove('open');
      document.body.style.overflow = '';
    }
    function prev() { current = (current - 1 + IMAGES.length) % IMAGES.length; showImage(); }
    function next() { current = (current + 1) % IMAGES.length; showImage(); }

    document.querySelectorAll('.gal-item').forEach(fig => {
      fig.addEventListener('click', () => openLightbox(parseInt(fig.dataset.index)));
    });
    document.getElementById('lb-close').addEventListener('click', closeLightbox);
    document.getElementById('lb-prev').addEventListener('click', prev);
    document.getElementById('lb-next').addEventListener('click', next);
    lb.addEventListener('click', e => { if (e.target === lb) closeLightbox(); });
    document.addEventListener('keydown', e => {
      if (!lb.classList.contains('open')) return;
      if (e.key === 'ArrowLeft')  prev();
      if (e.key === 'ArrowRight') next();
      if (e.key === 'Escape')     closeLightbox();
    });
  </script>
</body>
</html>
`))
